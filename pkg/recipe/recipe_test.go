package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/korjavin/matchmygrocery/pkg/models"
	"github.com/korjavin/matchmygrocery/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	calls int
	err   error
}

func (f *fakeGenerator) GenerateRecipe(_ context.Context, dishName, cuisine string) (*models.Recipe, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.Recipe{
		Name:    dishName,
		Cuisine: cuisine,
		Sections: []models.RecipeSection{
			{Title: "Main", Items: []string{"2 eggs", "1 cup milk"}},
		},
	}, nil
}

func newTestService(t *testing.T, gen Generator) *Service {
	t.Helper()
	store, err := storage.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store, gen)
}

func TestGetRecipe_Caches(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestService(t, gen)
	ctx := context.Background()

	first, err := s.GetRecipe(ctx, "Pancakes", "American")
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", first.Name)

	second, err := s.GetRecipe(ctx, "  pancakes ", "")
	require.NoError(t, err)
	assert.Equal(t, first.Sections, second.Sections)
	assert.Equal(t, 1, gen.calls)

	recipes, err := s.ListRecipes()
	require.NoError(t, err)
	assert.Len(t, recipes, 1)

	require.NoError(t, s.DeleteRecipe("PANCAKES"))
	_, err = s.GetRecipe(ctx, "Pancakes", "")
	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls)
}

func TestGetRecipe_GeneratorError(t *testing.T) {
	boom := errors.New("boom")
	s := newTestService(t, &fakeGenerator{err: boom})

	_, err := s.GetRecipe(context.Background(), "Soup", "")
	assert.ErrorIs(t, err, boom)

	recipes, err := s.ListRecipes()
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestGetRecipe_EmptyName(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestService(t, gen)

	_, err := s.GetRecipe(context.Background(), " ", "")
	assert.Error(t, err)
	assert.Zero(t, gen.calls)
}
