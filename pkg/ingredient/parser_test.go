package ingredient

import (
	"testing"

	"github.com/korjavin/matchmygrocery/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want models.ParsedIngredient
	}{
		{"quantity unit name", "2 cups spinach", models.ParsedIngredient{Name: "spinach", Quantity: "2", Unit: "cups"}},
		{"name dash quantity unit", "Tomatoes - 3 lbs", models.ParsedIngredient{Name: "Tomatoes", Quantity: "3", Unit: "lbs"}},
		{"quantity name", "3 eggs", models.ParsedIngredient{Name: "eggs", Quantity: "3"}},
		{"empty", "", models.ParsedIngredient{}},
		{"whitespace only", "   ", models.ParsedIngredient{}},
		{"decimal with comma after unit", "1.5 cups, diced tomatoes", models.ParsedIngredient{Name: "diced tomatoes", Quantity: "1.5", Unit: "cups"}},
		{"comma decimal", "1,5 kg potatoes", models.ParsedIngredient{Name: "potatoes", Quantity: "1,5", Unit: "kg"}},
		{"unit lowercased", "2 Tbsp Olive Oil", models.ParsedIngredient{Name: "Olive Oil", Quantity: "2", Unit: "tbsp"}},
		{"unit glued to quantity", "200g flour", models.ParsedIngredient{Name: "flour", Quantity: "200", Unit: "g"}},
		{"of after unit", "2 cups of flour", models.ParsedIngredient{Name: "flour", Quantity: "2", Unit: "cups"}},
		{"fraction", "1/2 tsp salt", models.ParsedIngredient{Name: "salt", Quantity: "1/2", Unit: "tsp"}},
		{"mixed fraction", "1 1/2 cups milk", models.ParsedIngredient{Name: "milk", Quantity: "1 1/2", Unit: "cups"}},
		{"unicode fraction", "½ onion", models.ParsedIngredient{Name: "onion", Quantity: "½"}},
		{"adjective is not a unit", "2 large eggs", models.ParsedIngredient{Name: "large eggs", Quantity: "2"}},
		{"single letter unit needs a space", "2 garlic bulbs", models.ParsedIngredient{Name: "garlic bulbs", Quantity: "2"}},
		{"dash without unit", "Eggs - 12", models.ParsedIngredient{Name: "Eggs", Quantity: "12"}},
		{"dash inside name", "Low-fat milk - 2 cups", models.ParsedIngredient{Name: "Low-fat milk", Quantity: "2", Unit: "cups"}},
		{"dash with size word and unit", "Salt - 2 large pinches", models.ParsedIngredient{Name: "large Salt", Quantity: "2", Unit: "pinches"}},
		{"dash with size word only", "Eggs - 12 large", models.ParsedIngredient{Name: "large Eggs", Quantity: "12"}},
		{"dash with single letter unit", "Milk - 2 l", models.ParsedIngredient{Name: "Milk", Quantity: "2", Unit: "l"}},
		{"unparseable", "  salt and pepper to taste ", models.ParsedIngredient{Name: "salt and pepper to taste"}},
		{"range falls back", "1-2 cloves garlic", models.ParsedIngredient{Name: "1-2 cloves garlic"}},
		{"quantity only", "2", models.ParsedIngredient{Quantity: "2"}},
		{"unit without name", "1 cup", models.ParsedIngredient{Name: "cup", Quantity: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.line))
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	line := "1.5 cups, diced tomatoes"
	assert.Equal(t, Parse(line), Parse(line))
}

func TestParser_DescriptorReordering(t *testing.T) {
	p := NewParser(WithDescriptorReordering())

	tests := []struct {
		line string
		want models.ParsedIngredient
	}{
		{"2 cups chopped spinach", models.ParsedIngredient{Name: "Chopped spinach", Quantity: "2", Unit: "cups"}},
		{"3 tomatoes, diced", models.ParsedIngredient{Name: "Diced tomatoes", Quantity: "3"}},
		{"2 cups spinach", models.ParsedIngredient{Name: "spinach", Quantity: "2", Unit: "cups"}},
		{"onion, finely chopped", models.ParsedIngredient{Name: "Finely chopped onion"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Parse(tt.line))
		})
	}
}

func TestParser_Explain(t *testing.T) {
	p := NewParser()

	tests := []struct {
		line    string
		pattern string
	}{
		{"2 cups spinach", "quantity-unit-name"},
		{"Tomatoes - 3 lbs", "name-dash-quantity-unit"},
		{"3 eggs", "quantity-name"},
		{"7", "quantity-only"},
		{"salt", "unparsed"},
		{"", "empty"},
	}

	for _, tt := range tests {
		_, pattern := p.Explain(tt.line)
		assert.Equal(t, tt.pattern, pattern, tt.line)
	}
}

func TestString_RoundTrip(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"2 cups spinach", "2 cups spinach"},
		{"Tomatoes - 3 lbs", "3 lbs Tomatoes"},
		{"3 eggs", "3 eggs"},
		{"  2   cups   spinach ", "2 cups spinach"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, String(Parse(tt.line)), tt.line)
	}
}
