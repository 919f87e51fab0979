package grocery

import (
	"testing"
	"time"

	"github.com/korjavin/matchmygrocery/pkg/category"
	"github.com/korjavin/matchmygrocery/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	now := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

	sections := []models.RecipeSection{
		{
			Title: "For the Sauce",
			Items: []string{
				"2 cups chopped spinach",
				"Milk - 2 l",
				"3 eggs",
				"salt to taste",
				"",
				"2",
			},
		},
		{
			Title: " Mains ",
			Items: []string{"1 tomatoes diced"},
		},
	}

	pantryItems := []models.PantryItem{
		{ID: "p1", Name: "chopped spinach", Quantity: "0.5", Unit: "cup", Category: "Greens"},
		{ID: "p2", Name: "milk", Quantity: "500", Unit: "ml"},
		{ID: "p3", Name: "Eggs", Quantity: "12"},
		{ID: "p4", Name: "tomatoes diced", Quantity: "a few"},
	}

	items := Match(sections, pantryItems, now)
	require.Len(t, items, 5)

	spinach := items[0]
	assert.Equal(t, "Chopped spinach", spinach.Name)
	assert.Equal(t, "2", spinach.Quantity)
	assert.Equal(t, "cups", spinach.Unit)
	assert.True(t, spinach.InPantry)
	assert.Equal(t, "1.5", spinach.Shortfall)
	assert.Equal(t, "Greens", spinach.Category)
	assert.Equal(t, "For the Sauce", spinach.Section)
	assert.Equal(t, now, spinach.AddedAt)
	assert.True(t, NeedsBuying(spinach))

	milk := items[1]
	assert.Equal(t, "Milk", milk.Name)
	assert.True(t, milk.InPantry)
	assert.Empty(t, milk.Shortfall, "l and ml are not compared")

	eggs := items[2]
	assert.True(t, eggs.InPantry)
	assert.Equal(t, "0", eggs.Shortfall)
	assert.False(t, NeedsBuying(eggs))

	salt := items[3]
	assert.Equal(t, "salt to taste", salt.Name)
	assert.False(t, salt.InPantry)
	assert.Empty(t, salt.Shortfall)
	assert.Empty(t, salt.Category)
	assert.True(t, NeedsBuying(salt))

	tomatoes := items[4]
	assert.Equal(t, "Diced tomatoes", tomatoes.Name)
	assert.True(t, tomatoes.InPantry, "found by the name as written")
	assert.Empty(t, tomatoes.Shortfall, "pantry quantity is not numeric")
	assert.Equal(t, "Mains", tomatoes.Section)

	ids := make(map[string]bool)
	for _, item := range items {
		assert.NotEmpty(t, item.ID)
		assert.False(t, ids[item.ID], "duplicate id")
		ids[item.ID] = true
	}
}

func TestMatch_EmptyPantry(t *testing.T) {
	items := MatchLines([]string{"2 cups spinach", "Tomatoes - 3 lbs"}, nil, time.Now())
	require.Len(t, items, 2)
	for _, item := range items {
		assert.False(t, item.InPantry)
		assert.Empty(t, item.Shortfall)
	}
	assert.Equal(t, "Tomatoes", items[1].Name)
	assert.Equal(t, "lbs", items[1].Unit)
}

func TestMatch_NoSections(t *testing.T) {
	items := Match(nil, nil, time.Now())
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRefresh(t *testing.T) {
	items := []models.GroceryItem{
		{ID: "a", Name: "Milk", Quantity: "2", Unit: "l", Checked: true},
		{ID: "b", Name: "Flour", Quantity: "500", Unit: "g", InPantry: true, Shortfall: "100"},
	}
	pantryItems := []models.PantryItem{
		{Name: "milk", Quantity: "1", Unit: "l", Category: category.Dairy},
	}

	refreshed := Refresh(items, pantryItems)
	require.Len(t, refreshed, 2)

	assert.True(t, refreshed[0].InPantry)
	assert.Equal(t, "1", refreshed[0].Shortfall)
	assert.True(t, refreshed[0].Checked)
	assert.Equal(t, category.Dairy, refreshed[0].Category)

	assert.False(t, refreshed[1].InPantry)
	assert.Empty(t, refreshed[1].Shortfall)

	// input untouched
	assert.False(t, items[0].InPantry)
}

func TestRefresh_FindsNameAsWritten(t *testing.T) {
	pantryItems := []models.PantryItem{{Name: "tomatoes, diced", Quantity: "1", Unit: "cup"}}

	matched := MatchLines([]string{"2 cups tomatoes, diced"}, pantryItems, time.Now())
	require.Len(t, matched, 1)
	assert.True(t, matched[0].InPantry)
	assert.Equal(t, "1", matched[0].Shortfall)
	assert.Equal(t, "2 cups tomatoes, diced", matched[0].Source)

	refreshed := Refresh(matched, pantryItems)
	require.Len(t, refreshed, 1)
	assert.Equal(t, matched[0].InPantry, refreshed[0].InPantry)
	assert.Equal(t, matched[0].Shortfall, refreshed[0].Shortfall)
}

func TestRefresh_DropsStaleCategory(t *testing.T) {
	items := []models.GroceryItem{
		{ID: "a", Name: "oat drink", Quantity: "1", Unit: "l", InPantry: true, Category: category.Dairy},
	}

	refreshed := Refresh(items, []models.PantryItem{{Name: "eggs", Quantity: "6"}})
	require.Len(t, refreshed, 1)
	assert.False(t, refreshed[0].InPantry)
	assert.Empty(t, refreshed[0].Category)

	refreshed = Refresh(items, []models.PantryItem{{Name: "Oat drink", Quantity: "2", Unit: "l", Category: category.Beverages}})
	assert.Equal(t, category.Beverages, refreshed[0].Category)
}
