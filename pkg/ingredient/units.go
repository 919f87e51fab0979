package ingredient

import "strings"

// unitNormalization maps unit spellings to a canonical singular unit
var unitNormalization = map[string]string{
	// Volume - small
	"tsp":          "teaspoon",
	"teaspoons":    "teaspoon",
	"tbsp":         "tablespoon",
	"tbs":          "tablespoon",
	"tablespoons":  "tablespoon",
	"fl oz":        "fluid ounce",
	"floz":         "fluid ounce",
	"fluid ounces": "fluid ounce",

	// Volume - medium
	"cups":   "cup",
	"pt":     "pint",
	"pints":  "pint",
	"qt":     "quart",
	"quarts": "quart",

	// Volume - large
	"gal":         "gallon",
	"gallons":     "gallon",
	"l":           "liter",
	"liters":      "liter",
	"litre":       "liter",
	"litres":      "liter",
	"ml":          "milliliter",
	"milliliters": "milliliter",
	"millilitre":  "milliliter",
	"millilitres": "milliliter",

	// Weight
	"oz":        "ounce",
	"ounces":    "ounce",
	"lb":        "pound",
	"lbs":       "pound",
	"pounds":    "pound",
	"g":         "gram",
	"grams":     "gram",
	"kg":        "kilogram",
	"kilograms": "kilogram",

	// Count
	"pc":       "piece",
	"pcs":      "piece",
	"pieces":   "piece",
	"ct":       "count",
	"pkg":      "package",
	"packages": "package",
	"bunches":  "bunch",
	"heads":    "head",
	"cloves":   "clove",
	"sprigs":   "sprig",
	"stalks":   "stalk",
	"slices":   "slice",
	"cans":     "can",
	"jars":     "jar",
	"bags":     "bag",
	"boxes":    "box",
	"bottles":  "bottle",
	"sticks":   "stick",
	"dashes":   "dash",
	"pinches":  "pinch",
	"handfuls": "handful",
}

// NormalizeUnit returns the canonical spelling of unit ("cups" -> "cup",
// "lbs" -> "pound"). Unknown units are returned lowercased and trimmed.
func NormalizeUnit(unit string) string {
	unit = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(unit), ".")))
	if normalized, ok := unitNormalization[unit]; ok {
		return normalized
	}
	return unit
}

// CompatibleUnits reports whether quantities in a and b can be compared
// directly. An empty unit is compatible with anything.
func CompatibleUnits(a, b string) bool {
	a, b = NormalizeUnit(a), NormalizeUnit(b)
	return a == "" || b == "" || a == b
}
