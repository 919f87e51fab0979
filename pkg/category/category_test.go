package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"milk", Dairy},
		{"Whole Milk", Dairy},
		{"  MILK ", Dairy},
		{"Diced tomatoes", Produce},
		{"Chopped spinach", Produce},
		{"chicken breast", Meat},
		{"steak", Meat},
		{"eggplant", Produce},
		{"grilled eggplant", Produce},
		{"large eggs", Dairy},
		{"black pepper", Spices},
		{"red bell pepper", Produce},
		{"frozen spinach", Frozen},
		{"sea salt", Spices},
		{"unsalted butter", Dairy},
		{"burger buns", Bakery},
		{"green tea", Beverages},
		{"coconut milk", Pantry},
		{"fresh berries", Produce},
		{"graham crackers", Other},
		{"xyzzy", Other},
		{"", Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.name))
		})
	}
}

func TestCategorize_AlwaysKnownCategory(t *testing.T) {
	known := make(map[string]bool, len(All))
	for _, c := range All {
		known[c] = true
	}

	for _, cat := range exact {
		assert.True(t, known[cat], cat)
	}
	for _, kw := range keywords {
		assert.True(t, known[kw.category], kw.word)
	}
}

func TestContainsWord(t *testing.T) {
	assert.True(t, containsWord("tomatoes", "tomato"))
	assert.True(t, containsWord("cherry tomato, halved", "tomato"))
	assert.True(t, containsWord("eggs", "egg"))
	assert.False(t, containsWord("steak", "tea"))
	assert.False(t, containsWord("unsalted", "salt"))
	assert.False(t, containsWord("eggplant", "egg"))
	assert.False(t, containsWord("", "egg"))
}
