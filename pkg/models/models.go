package models

import (
	"encoding/json"
	"time"
)

// ParsedIngredient is a structured view of a free-text ingredient line.
// Quantity and Unit are empty when the line carried none.
type ParsedIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// RecipeSection is a named group of ingredient lines, e.g. "For the Sauce"
type RecipeSection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// Recipe represents an AI-generated recipe
type Recipe struct {
	Name         string          `json:"name"`
	Cuisine      string          `json:"cuisine,omitempty"`
	Servings     int             `json:"servings,omitempty"`
	Sections     []RecipeSection `json:"sections"`
	Instructions []string        `json:"instructions,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Pantry represents the ingredients a chat has at home
type Pantry struct {
	ID          string       `json:"id"`
	ChatID      int64        `json:"chat_id"`
	Items       []PantryItem `json:"items"`
	LastUpdated time.Time    `json:"last_updated"`
}

// PantryItem represents a single ingredient in the pantry
type PantryItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Quantity string    `json:"quantity"`
	Unit     string    `json:"unit,omitempty"`
	Category string    `json:"category,omitempty"`
	AddedAt  time.Time `json:"added_at"`
}

// GroceryItem is a recipe ingredient joined against the pantry.
// InPantry is serialised as both "available" and "inPantry". Source keeps the
// ingredient line as written so later pantry lookups see the same spellings.
type GroceryItem struct {
	ID        string
	Name      string
	Source    string
	Quantity  string
	Unit      string
	InPantry  bool
	Shortfall string
	Category  string
	Section   string
	Checked   bool
	AddedAt   time.Time
}

type groceryItemJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source,omitempty"`
	Quantity  string    `json:"quantity"`
	Unit      string    `json:"unit"`
	Available bool      `json:"available"`
	InPantry  bool      `json:"inPantry"`
	Shortfall string    `json:"shortfall,omitempty"`
	Category  string    `json:"category,omitempty"`
	Section   string    `json:"section,omitempty"`
	Checked   bool      `json:"checked"`
	AddedAt   time.Time `json:"added_at"`
}

// MarshalJSON implements json.Marshaler
func (g GroceryItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(groceryItemJSON{
		ID:        g.ID,
		Name:      g.Name,
		Source:    g.Source,
		Quantity:  g.Quantity,
		Unit:      g.Unit,
		Available: g.InPantry,
		InPantry:  g.InPantry,
		Shortfall: g.Shortfall,
		Category:  g.Category,
		Section:   g.Section,
		Checked:   g.Checked,
		AddedAt:   g.AddedAt,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Either flag being set marks the
// item as in the pantry.
func (g *GroceryItem) UnmarshalJSON(data []byte) error {
	var raw groceryItemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*g = GroceryItem{
		ID:        raw.ID,
		Name:      raw.Name,
		Source:    raw.Source,
		Quantity:  raw.Quantity,
		Unit:      raw.Unit,
		InPantry:  raw.InPantry || raw.Available,
		Shortfall: raw.Shortfall,
		Category:  raw.Category,
		Section:   raw.Section,
		Checked:   raw.Checked,
		AddedAt:   raw.AddedAt,
	}
	return nil
}

// GroceryList is the persisted grocery list of a chat
type GroceryList struct {
	ID          string        `json:"id"`
	ChatID      int64         `json:"chat_id"`
	Items       []GroceryItem `json:"items"`
	Recipes     []string      `json:"recipes,omitempty"`
	LastUpdated time.Time     `json:"last_updated"`
}
