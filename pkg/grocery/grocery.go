package grocery

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/korjavin/matchmygrocery/pkg/logger"
	"github.com/korjavin/matchmygrocery/pkg/models"
	"github.com/korjavin/matchmygrocery/pkg/storage"
)

var (
	// ErrItemNotFound is returned when a grocery item ID is not on the list
	ErrItemNotFound = errors.New("grocery item not found")
	// ErrRecipeAlreadyAdded is returned when a recipe is added to a list twice
	ErrRecipeAlreadyAdded = errors.New("recipe already on the grocery list")
)

// PantrySource provides the pantry snapshot a recipe is matched against
type PantrySource interface {
	ListItems(chatID int64) ([]models.PantryItem, error)
}

// Service provides the persisted grocery list of each chat
type Service struct {
	store  *storage.Store
	pantry PantrySource
	logger *logger.Logger
}

// New creates a new grocery list service
func New(store *storage.Store, pantry PantrySource) *Service {
	return &Service{
		store:  store,
		pantry: pantry,
		logger: logger.New("grocery"),
	}
}

func listKey(chatID int64) string {
	return fmt.Sprintf("grocery:%d", chatID)
}

// ChatIDs returns the IDs of every chat that has a stored grocery list
func (s *Service) ChatIDs() ([]int64, error) {
	keys, err := s.store.List("grocery:")
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(keys))
	for _, key := range keys {
		id, err := strconv.ParseInt(strings.TrimPrefix(key, "grocery:"), 10, 64)
		if err != nil {
			s.logger.Warn("Skipping malformed grocery key %q", key)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func emptyList(chatID int64) models.GroceryList {
	return models.GroceryList{
		ID:          listKey(chatID),
		ChatID:      chatID,
		Items:       []models.GroceryItem{},
		LastUpdated: time.Now(),
	}
}

// GetList retrieves the grocery list of a chat. A chat without a list gets an
// empty one.
func (s *Service) GetList(chatID int64) (*models.GroceryList, error) {
	var list models.GroceryList
	err := s.store.Get(listKey(chatID), &list)
	if errors.Is(err, storage.ErrNotFound) {
		list = emptyList(chatID)
		return &list, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grocery list: %w", err)
	}
	return &list, nil
}

func (s *Service) update(chatID int64, fn func(l *models.GroceryList) error) error {
	var list models.GroceryList
	err := s.store.Update(listKey(chatID), &list, func(found bool) error {
		if !found {
			list = emptyList(chatID)
		}
		if err := fn(&list); err != nil {
			return err
		}
		list.LastUpdated = time.Now()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update grocery list: %w", err)
	}
	return nil
}

// AddRecipe matches the ingredients of recipe against the current pantry of
// the chat and appends them to its grocery list. It returns the new items.
func (s *Service) AddRecipe(chatID int64, recipe models.Recipe) ([]models.GroceryItem, error) {
	pantryItems, err := s.pantry.ListItems(chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pantry: %w", err)
	}

	items := Match(recipe.Sections, pantryItems, time.Now())

	err = s.update(chatID, func(l *models.GroceryList) error {
		for _, name := range l.Recipes {
			if strings.EqualFold(name, recipe.Name) {
				return fmt.Errorf("%w: %s", ErrRecipeAlreadyAdded, recipe.Name)
			}
		}
		l.Items = append(l.Items, items...)
		if recipe.Name != "" {
			l.Recipes = append(l.Recipes, recipe.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Added %d items from %q to grocery list of chat %d", len(items), recipe.Name, chatID)
	return items, nil
}

// RefreshPantry re-checks every item on the list against the current pantry
func (s *Service) RefreshPantry(chatID int64) error {
	pantryItems, err := s.pantry.ListItems(chatID)
	if err != nil {
		return fmt.Errorf("failed to load pantry: %w", err)
	}

	return s.update(chatID, func(l *models.GroceryList) error {
		l.Items = Refresh(l.Items, pantryItems)
		return nil
	})
}

// ToggleItem flips the checked state of an item and returns the updated item
func (s *Service) ToggleItem(chatID int64, itemID string) (*models.GroceryItem, error) {
	var toggled models.GroceryItem
	err := s.update(chatID, func(l *models.GroceryList) error {
		for i := range l.Items {
			if l.Items[i].ID == itemID {
				l.Items[i].Checked = !l.Items[i].Checked
				toggled = l.Items[i]
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	})
	if err != nil {
		return nil, err
	}
	return &toggled, nil
}

// RemoveChecked drops every checked item and returns how many were removed
func (s *Service) RemoveChecked(chatID int64) (int, error) {
	removed := 0
	err := s.update(chatID, func(l *models.GroceryList) error {
		kept := make([]models.GroceryItem, 0, len(l.Items))
		for _, item := range l.Items {
			if item.Checked {
				removed++
				continue
			}
			kept = append(kept, item)
		}
		l.Items = kept
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Removed %d checked items from grocery list of chat %d", removed, chatID)
	return removed, nil
}

// ResetList empties the grocery list of a chat
func (s *Service) ResetList(chatID int64) error {
	if err := s.store.Set(listKey(chatID), emptyList(chatID)); err != nil {
		return fmt.Errorf("failed to reset grocery list: %w", err)
	}
	s.logger.Info("Reset grocery list of chat %d", chatID)
	return nil
}

// SortedItems returns the items of the chat's list in the given order
func (s *Service) SortedItems(chatID int64, option SortOption) ([]models.GroceryItem, error) {
	list, err := s.GetList(chatID)
	if err != nil {
		return nil, err
	}
	return Sort(list.Items, option), nil
}

// GroupedItems returns the chat's list sorted by option and grouped by category
func (s *Service) GroupedItems(chatID int64, option SortOption) ([]Group, error) {
	items, err := s.SortedItems(chatID, option)
	if err != nil {
		return nil, err
	}
	return GroupItems(items), nil
}
