package pantry

import (
	"testing"

	"github.com/korjavin/matchmygrocery/pkg/category"
	"github.com/korjavin/matchmygrocery/pkg/models"
	"github.com/korjavin/matchmygrocery/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindInPantry(t *testing.T) {
	items := []models.PantryItem{
		{ID: "1", Name: "Tomatoes", Quantity: "3"},
		{ID: "2", Name: "milk", Quantity: "1"},
		{ID: "3", Name: " Milk ", Quantity: "2"},
	}

	tests := []struct {
		name   string
		lookup string
		wantID string
		found  bool
	}{
		{"exact", "Tomatoes", "1", true},
		{"case insensitive", "tomatoes", "1", true},
		{"trimmed", "  TOMATOES ", "1", true},
		{"singular does not match plural", "Tomato", "", false},
		{"first match wins", "MILK", "2", true},
		{"empty name", "", "", false},
		{"missing", "eggs", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := FindInPantry(tt.lookup, items)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				require.NotNil(t, item)
				assert.Equal(t, tt.wantID, item.ID)
			} else {
				assert.Nil(t, item)
			}
		})
	}
}

func TestFindInPantry_EmptySnapshot(t *testing.T) {
	item, ok := FindInPantry("milk", nil)
	assert.False(t, ok)
	assert.Nil(t, item)
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store)
}

func TestService_GetPantryEmpty(t *testing.T) {
	s := newTestService(t)

	p, err := s.GetPantry(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.ChatID)
	assert.Equal(t, "pantry:42", p.ID)
	assert.Empty(t, p.Items)
}

func TestService_AddItem(t *testing.T) {
	s := newTestService(t)

	item, err := s.AddItem(1, "Milk", "1", "l")
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, category.Dairy, item.Category)

	// same name replaces quantity and keeps the ID
	again, err := s.AddItem(1, "milk", "2", "l")
	require.NoError(t, err)
	assert.Equal(t, item.ID, again.ID)

	items, err := s.ListItems(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].Quantity)
	assert.Equal(t, "Milk", items[0].Name)

	_, err = s.AddItem(1, "  ", "1", "")
	assert.Error(t, err)
}

func TestService_AddLines(t *testing.T) {
	s := newTestService(t)

	added, err := s.AddLines(7, []string{
		"2 cups flour",
		"Eggs - 12",
		"",
		"3",
		"tomatoes, diced",
	})
	require.NoError(t, err)
	require.Len(t, added, 3)

	assert.Equal(t, "flour", added[0].Name)
	assert.Equal(t, "2", added[0].Quantity)
	assert.Equal(t, "cups", added[0].Unit)
	assert.Equal(t, "Eggs", added[1].Name)
	assert.Equal(t, "12", added[1].Quantity)
	assert.Equal(t, "Diced tomatoes", added[2].Name)

	items, err := s.ListItems(7)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	// other chats are untouched
	other, err := s.ListItems(8)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestService_AddLinesNothingToAdd(t *testing.T) {
	s := newTestService(t)

	added, err := s.AddLines(1, []string{"", "  ", "5"})
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestService_RemoveItem(t *testing.T) {
	s := newTestService(t)

	milk, err := s.AddItem(1, "Milk", "1", "")
	require.NoError(t, err)
	_, err = s.AddItem(1, "Butter", "200", "g")
	require.NoError(t, err)

	require.NoError(t, s.RemoveItem(1, "butter"))
	require.NoError(t, s.RemoveItem(1, milk.ID))

	items, err := s.ListItems(1)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = s.RemoveItem(1, "cheese")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestService_UpdateItemsAndHasIngredients(t *testing.T) {
	s := newTestService(t)

	require.NoError(t, s.UpdateItems(3, []models.ParsedIngredient{
		{Name: "Rice", Quantity: "500", Unit: "g"},
		{Name: "Onion", Quantity: "2"},
		{Name: ""},
	}))

	ok, missing, err := s.HasIngredients(3, []string{"rice", "onion"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, missing)

	ok, missing, err = s.HasIngredients(3, []string{"rice", "Onions", "garlic"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"Onions", "garlic"}, missing)
}

func TestService_ResetPantry(t *testing.T) {
	s := newTestService(t)

	_, err := s.AddItem(1, "Milk", "1", "")
	require.NoError(t, err)
	require.NoError(t, s.ResetPantry(1))

	items, err := s.ListItems(1)
	require.NoError(t, err)
	assert.Empty(t, items)
}
