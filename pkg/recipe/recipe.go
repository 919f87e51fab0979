// Package recipe fetches recipes from the LLM and caches them in the store.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/korjavin/matchmygrocery/pkg/logger"
	"github.com/korjavin/matchmygrocery/pkg/models"
	"github.com/korjavin/matchmygrocery/pkg/storage"
)

// Generator produces a recipe for a dish
type Generator interface {
	GenerateRecipe(ctx context.Context, dishName, cuisine string) (*models.Recipe, error)
}

// Service provides recipe lookup functionality
type Service struct {
	store     *storage.Store
	generator Generator
	logger    *logger.Logger
}

// New creates a new recipe service
func New(store *storage.Store, generator Generator) *Service {
	return &Service{
		store:     store,
		generator: generator,
		logger:    logger.New("recipe"),
	}
}

func recipeKey(dishName string) string {
	return "recipe:" + strings.ToLower(strings.Join(strings.Fields(dishName), " "))
}

// GetRecipe returns the cached recipe for dishName, asking the generator when
// the dish has not been seen before.
func (s *Service) GetRecipe(ctx context.Context, dishName, cuisine string) (*models.Recipe, error) {
	if strings.TrimSpace(dishName) == "" {
		return nil, fmt.Errorf("dish name is empty")
	}

	key := recipeKey(dishName)

	var recipe models.Recipe
	err := s.store.Get(key, &recipe)
	if err == nil {
		s.logger.Debug("Recipe cache hit for %s", key)
		return &recipe, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	generated, err := s.generator.GenerateRecipe(ctx, dishName, cuisine)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recipe for %s: %w", dishName, err)
	}

	if err := s.store.Set(key, generated); err != nil {
		// The recipe is still usable even if caching failed
		s.logger.Error("Failed to save recipe %s: %v", key, err)
	}

	return generated, nil
}

// ListRecipes returns all cached recipes
func (s *Service) ListRecipes() ([]models.Recipe, error) {
	keys, err := s.store.List("recipe:")
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	recipes := make([]models.Recipe, 0, len(keys))
	for _, key := range keys {
		var recipe models.Recipe
		if err := s.store.Get(key, &recipe); err != nil {
			s.logger.Error("Failed to get recipe %s: %v", key, err)
			continue
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// DeleteRecipe removes a recipe from the cache
func (s *Service) DeleteRecipe(dishName string) error {
	return s.store.Delete(recipeKey(dishName))
}
