// Package grocery builds grocery lists from recipe ingredients and the pantry,
// and groups and sorts them for display.
package grocery

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/korjavin/matchmygrocery/pkg/ingredient"
	"github.com/korjavin/matchmygrocery/pkg/models"
	"github.com/korjavin/matchmygrocery/pkg/pantry"
	"github.com/korjavin/matchmygrocery/pkg/quantity"
)

var lineParser = ingredient.NewParser(ingredient.WithDescriptorReordering())

// Match joins the ingredient lines of recipe sections against a pantry
// snapshot. Every line with a name becomes one GroceryItem, in section order.
// The pantry is looked up by the cleaned name first ("Diced tomatoes") and by
// the name as written second ("tomatoes, diced").
func Match(sections []models.RecipeSection, items []models.PantryItem, now time.Time) []models.GroceryItem {
	result := make([]models.GroceryItem, 0)
	for _, section := range sections {
		for _, line := range section.Items {
			item, ok := matchLine(line, items)
			if !ok {
				continue
			}
			item.Section = strings.TrimSpace(section.Title)
			item.AddedAt = now
			result = append(result, item)
		}
	}
	return result
}

// MatchLines is Match for a flat list of lines without section titles
func MatchLines(lines []string, items []models.PantryItem, now time.Time) []models.GroceryItem {
	return Match([]models.RecipeSection{{Items: lines}}, items, now)
}

func matchLine(line string, items []models.PantryItem) (models.GroceryItem, bool) {
	parsed := lineParser.Parse(line)
	if parsed.Name == "" {
		return models.GroceryItem{}, false
	}

	item := models.GroceryItem{
		ID:       uuid.New().String(),
		Name:     parsed.Name,
		Source:   strings.TrimSpace(line),
		Quantity: parsed.Quantity,
		Unit:     parsed.Unit,
	}

	if found, ok := lookup(item.Name, item.Source, items); ok {
		applyPantryItem(&item, found)
	}
	return item, true
}

// lookup finds the pantry row for an ingredient by its cleaned name, then by
// the name as written in source
func lookup(name, source string, items []models.PantryItem) (*models.PantryItem, bool) {
	if found, ok := pantry.FindInPantry(name, items); ok {
		return found, true
	}
	if source == "" {
		return nil, false
	}
	raw := ingredient.Parse(source)
	if raw.Name == name {
		return nil, false
	}
	return pantry.FindInPantry(raw.Name, items)
}

// Refresh recomputes the pantry fields of items against a new pantry snapshot.
// Checked state, IDs and sections are kept. A category copied from a pantry
// row that no longer matches is dropped so it gets inferred again.
func Refresh(items []models.GroceryItem, pantryItems []models.PantryItem) []models.GroceryItem {
	result := make([]models.GroceryItem, len(items))
	for i, item := range items {
		item.InPantry = false
		item.Shortfall = ""
		item.Category = ""
		if found, ok := lookup(item.Name, item.Source, pantryItems); ok {
			applyPantryItem(&item, found)
		}
		result[i] = item
	}
	return result
}

func applyPantryItem(item *models.GroceryItem, found *models.PantryItem) {
	item.InPantry = true
	if found.Category != "" {
		item.Category = found.Category
	}
	if !ingredient.CompatibleUnits(item.Unit, found.Unit) {
		return
	}
	if shortfall, ok := quantity.Shortfall(item.Quantity, found.Quantity); ok {
		item.Shortfall = shortfall
	}
}

// NeedsBuying reports whether item has to be bought: it is not in the pantry,
// or the pantry holds less than the recipe asks for.
func NeedsBuying(item models.GroceryItem) bool {
	if !item.InPantry {
		return true
	}
	return quantity.ParseOrZero(item.Shortfall).IsPositive()
}
