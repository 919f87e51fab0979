package pantry

import (
	"strings"

	"github.com/korjavin/matchmygrocery/pkg/models"
)

// FindInPantry returns the first pantry item whose name equals name, ignoring
// case and surrounding whitespace. Names must match exactly otherwise, so
// "Tomato" does not find "Tomatoes".
func FindInPantry(name string, items []models.PantryItem) (*models.PantryItem, bool) {
	key := normalizeName(name)
	if key == "" {
		return nil, false
	}

	for i := range items {
		if normalizeName(items[i].Name) == key {
			return &items[i], true
		}
	}
	return nil, false
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
