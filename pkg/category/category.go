// Package category infers the grocery aisle of an ingredient from its name.
package category

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Other is the fallback category for names no keyword matches
const Other = "Other"

// Aisle categories, in the order a store walk usually visits them
const (
	Produce   = "Produce"
	Meat      = "Meat & Seafood"
	Dairy     = "Dairy"
	Bakery    = "Bakery"
	Pantry    = "Pantry"
	Spices    = "Spices & Herbs"
	Frozen    = "Frozen"
	Beverages = "Beverages"
)

// All lists every category Categorize can return, Other last
var All = []string{Produce, Meat, Dairy, Bakery, Pantry, Spices, Frozen, Beverages, Other}

// Categorize returns the category for an ingredient name. Matching is
// case-insensitive: an exact keyword first, then the first keyword found as a
// whole word (plurals allowed). Unknown names fall back to Other.
func Categorize(name string) string {
	name = strings.ToLower(strings.Join(strings.Fields(name), " "))
	if name == "" {
		return Other
	}

	if cat, ok := exact[name]; ok {
		return cat
	}

	for _, kw := range keywords {
		if containsWord(name, kw.word) {
			return kw.category
		}
	}

	return Other
}

var exact = map[string]string{
	"milk":         Dairy,
	"butter":       Dairy,
	"eggs":         Dairy,
	"egg":          Dairy,
	"cream":        Dairy,
	"yogurt":       Dairy,
	"parmesan":     Dairy,
	"mozzarella":   Dairy,
	"ricotta":      Dairy,
	"feta":         Dairy,
	"salt":         Spices,
	"pepper":       Spices,
	"basil":        Spices,
	"oregano":      Spices,
	"thyme":        Spices,
	"rosemary":     Spices,
	"cumin":        Spices,
	"paprika":      Spices,
	"cinnamon":     Spices,
	"nutmeg":       Spices,
	"bay leaves":   Spices,
	"garlic":       Produce,
	"ginger":       Produce,
	"lemon":        Produce,
	"lime":         Produce,
	"avocado":      Produce,
	"zucchini":     Produce,
	"eggplant":     Produce,
	"spinach":      Produce,
	"rice":         Pantry,
	"flour":        Pantry,
	"sugar":        Pantry,
	"honey":        Pantry,
	"vinegar":      Pantry,
	"olive oil":    Pantry,
	"water":        Beverages,
	"wine":         Beverages,
	"ice cream":    Frozen,
	"frozen peas":  Frozen,
	"bread":        Bakery,
	"baguette":     Bakery,
	"chicken":      Meat,
	"beef":         Meat,
	"pork":         Meat,
	"bacon":        Meat,
	"salmon":       Meat,
	"shrimp":       Meat,
	"tofu":         Produce,
	"cheese":       Dairy,
	"sour cream":   Dairy,
	"coconut milk": Pantry,
}

type keyword struct {
	word     string
	category string
}

// keywords is searched in order; multi-word and more specific entries come
// before the single words they contain.
var keywords = []keyword{
	// multi-word first
	{"coconut milk", Pantry},
	{"almond milk", Beverages},
	{"oat milk", Beverages},
	{"peanut butter", Pantry},
	{"black pepper", Spices},
	{"white pepper", Spices},
	{"red pepper flakes", Spices},
	{"chili powder", Spices},
	{"garlic powder", Spices},
	{"onion powder", Spices},
	{"bell pepper", Produce},
	{"chili pepper", Produce},
	{"green onion", Produce},
	{"spring onion", Produce},
	{"sweet potato", Produce},
	{"tomato paste", Pantry},
	{"tomato sauce", Pantry},
	{"canned tomato", Pantry},
	{"soy sauce", Pantry},
	{"fish sauce", Pantry},
	{"ice cream", Frozen},
	{"puff pastry", Frozen},
	{"sour cream", Dairy},
	{"cream cheese", Dairy},
	{"heavy cream", Dairy},
	{"ground beef", Meat},
	{"chicken stock", Pantry},
	{"chicken broth", Pantry},
	{"beef stock", Pantry},
	{"vegetable stock", Pantry},
	{"eggplant", Produce},

	// frozen goods are frozen whatever they are
	{"frozen", Frozen},

	// meat and seafood
	{"chicken", Meat},
	{"beef", Meat},
	{"pork", Meat},
	{"lamb", Meat},
	{"turkey", Meat},
	{"bacon", Meat},
	{"sausage", Meat},
	{"ham", Meat},
	{"mince", Meat},
	{"steak", Meat},
	{"salmon", Meat},
	{"tuna", Meat},
	{"cod", Meat},
	{"shrimp", Meat},
	{"prawn", Meat},
	{"fish", Meat},
	{"mussel", Meat},

	// dairy
	{"milk", Dairy},
	{"butter", Dairy},
	{"cheese", Dairy},
	{"cream", Dairy},
	{"yogurt", Dairy},
	{"egg", Dairy},
	{"parmesan", Dairy},
	{"mozzarella", Dairy},

	// spices and dried herbs
	{"salt", Spices},
	{"peppercorn", Spices},
	{"cumin", Spices},
	{"paprika", Spices},
	{"cinnamon", Spices},
	{"oregano", Spices},
	{"thyme", Spices},
	{"spice", Spices},
	{"seasoning", Spices},
	{"vanilla", Spices},

	// produce
	{"tomato", Produce},
	{"potato", Produce},
	{"onion", Produce},
	{"garlic", Produce},
	{"carrot", Produce},
	{"celery", Produce},
	{"spinach", Produce},
	{"lettuce", Produce},
	{"cabbage", Produce},
	{"broccoli", Produce},
	{"cucumber", Produce},
	{"mushroom", Produce},
	{"pepper", Produce},
	{"apple", Produce},
	{"banana", Produce},
	{"lemon", Produce},
	{"lime", Produce},
	{"berry", Produce},
	{"berries", Produce},
	{"parsley", Produce},
	{"cilantro", Produce},
	{"basil", Produce},
	{"herb", Produce},
	{"ginger", Produce},
	{"leek", Produce},
	{"squash", Produce},

	// bakery
	{"bread", Bakery},
	{"bun", Bakery},
	{"roll", Bakery},
	{"tortilla", Bakery},
	{"pita", Bakery},
	{"bagel", Bakery},

	// pantry staples
	{"flour", Pantry},
	{"sugar", Pantry},
	{"rice", Pantry},
	{"pasta", Pantry},
	{"spaghetti", Pantry},
	{"noodle", Pantry},
	{"oil", Pantry},
	{"vinegar", Pantry},
	{"sauce", Pantry},
	{"stock", Pantry},
	{"broth", Pantry},
	{"bean", Pantry},
	{"lentil", Pantry},
	{"chickpea", Pantry},
	{"oats", Pantry},
	{"honey", Pantry},
	{"nut", Pantry},
	{"yeast", Pantry},

	// beverages
	{"juice", Beverages},
	{"coffee", Beverages},
	{"tea", Beverages},
	{"wine", Beverages},
	{"beer", Beverages},
	{"water", Beverages},
}

// containsWord reports whether word occurs in s on word boundaries. A plural
// "s" or "es" directly after word still counts ("tomatoes" contains "tomato").
func containsWord(s, word string) bool {
	for offset := 0; offset < len(s); {
		idx := strings.Index(s[offset:], word)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(word)

		if boundaryBefore(s, start) && boundaryAfter(s[end:]) {
			return true
		}
		offset = start + 1
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !unicode.IsLetter(r)
}

func boundaryAfter(rest string) bool {
	for _, suffix := range []string{"", "s", "es"} {
		if !strings.HasPrefix(rest, suffix) {
			continue
		}
		tail := rest[len(suffix):]
		if tail == "" {
			return true
		}
		r, _ := utf8.DecodeRuneInString(tail)
		if !unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
