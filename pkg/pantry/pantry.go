// Package pantry keeps the per-chat pantry snapshot and matches ingredient
// names against it.
package pantry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/korjavin/matchmygrocery/pkg/category"
	"github.com/korjavin/matchmygrocery/pkg/ingredient"
	"github.com/korjavin/matchmygrocery/pkg/logger"
	"github.com/korjavin/matchmygrocery/pkg/models"
	"github.com/korjavin/matchmygrocery/pkg/storage"
)

// ErrItemNotFound is returned when removing an item the pantry does not hold
var ErrItemNotFound = errors.New("pantry item not found")

// Service provides pantry management functionality
type Service struct {
	store  *storage.Store
	parser *ingredient.Parser
	logger *logger.Logger
}

// New creates a new pantry service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		parser: ingredient.NewParser(ingredient.WithDescriptorReordering()),
		logger: logger.New("pantry"),
	}
}

func pantryKey(chatID int64) string {
	return fmt.Sprintf("pantry:%d", chatID)
}

func emptyPantry(chatID int64) models.Pantry {
	return models.Pantry{
		ID:          pantryKey(chatID),
		ChatID:      chatID,
		Items:       []models.PantryItem{},
		LastUpdated: time.Now(),
	}
}

// GetPantry retrieves the pantry for a chat. A chat without a stored pantry
// gets an empty one.
func (s *Service) GetPantry(chatID int64) (*models.Pantry, error) {
	var pantry models.Pantry
	err := s.store.Get(pantryKey(chatID), &pantry)
	if errors.Is(err, storage.ErrNotFound) {
		pantry = emptyPantry(chatID)
		return &pantry, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pantry: %w", err)
	}
	return &pantry, nil
}

// ListItems returns the pantry items of a chat in insertion order
func (s *Service) ListItems(chatID int64) ([]models.PantryItem, error) {
	pantry, err := s.GetPantry(chatID)
	if err != nil {
		return nil, err
	}
	return pantry.Items, nil
}

// update applies fn to the stored pantry inside one transaction
func (s *Service) update(chatID int64, fn func(p *models.Pantry) error) error {
	var pantry models.Pantry
	err := s.store.Update(pantryKey(chatID), &pantry, func(found bool) error {
		if !found {
			pantry = emptyPantry(chatID)
		}
		if err := fn(&pantry); err != nil {
			return err
		}
		pantry.LastUpdated = time.Now()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update pantry: %w", err)
	}
	return nil
}

// AddItem adds an ingredient to the pantry. An item with the same name is
// replaced in place, keeping its ID.
func (s *Service) AddItem(chatID int64, name, quantity, unit string) (*models.PantryItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("ingredient name is empty")
	}

	var added models.PantryItem
	err := s.update(chatID, func(p *models.Pantry) error {
		added = upsert(p, models.ParsedIngredient{Name: name, Quantity: quantity, Unit: unit})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Added %q to pantry of chat %d", name, chatID)
	return &added, nil
}

// AddLines parses free-text ingredient lines ("2 cups flour", "Eggs - 12")
// and adds each one to the pantry. Blank lines and lines without a name are
// skipped.
func (s *Service) AddLines(chatID int64, lines []string) ([]models.PantryItem, error) {
	parsed := make([]models.ParsedIngredient, 0, len(lines))
	for _, line := range lines {
		p := s.parser.Parse(line)
		if p.Name == "" {
			continue
		}
		parsed = append(parsed, p)
	}
	if len(parsed) == 0 {
		return nil, nil
	}

	added := make([]models.PantryItem, 0, len(parsed))
	err := s.update(chatID, func(p *models.Pantry) error {
		for _, ing := range parsed {
			added = append(added, upsert(p, ing))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Added %d items to pantry of chat %d", len(added), chatID)
	return added, nil
}

// UpdateItems adds or replaces several parsed ingredients at once
func (s *Service) UpdateItems(chatID int64, items []models.ParsedIngredient) error {
	return s.update(chatID, func(p *models.Pantry) error {
		for _, ing := range items {
			if strings.TrimSpace(ing.Name) == "" {
				continue
			}
			upsert(p, ing)
		}
		return nil
	})
}

// RemoveItem removes an ingredient from the pantry by name or ID
func (s *Service) RemoveItem(chatID int64, nameOrID string) error {
	return s.update(chatID, func(p *models.Pantry) error {
		for i, item := range p.Items {
			if item.ID == nameOrID || normalizeName(item.Name) == normalizeName(nameOrID) {
				p.Items = append(p.Items[:i], p.Items[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrItemNotFound, nameOrID)
	})
}

// HasIngredients checks if the pantry has all the specified ingredients and
// returns the names it is missing
func (s *Service) HasIngredients(chatID int64, names []string) (bool, []string, error) {
	items, err := s.ListItems(chatID)
	if err != nil {
		return false, nil, err
	}

	missing := make([]string, 0)
	for _, name := range names {
		if _, ok := FindInPantry(name, items); !ok {
			missing = append(missing, name)
		}
	}
	return len(missing) == 0, missing, nil
}

// ResetPantry empties the pantry for a chat
func (s *Service) ResetPantry(chatID int64) error {
	if err := s.store.Set(pantryKey(chatID), emptyPantry(chatID)); err != nil {
		return fmt.Errorf("failed to reset pantry: %w", err)
	}
	s.logger.Info("Reset pantry of chat %d", chatID)
	return nil
}

// upsert stores ing in p and returns the stored item
func upsert(p *models.Pantry, ing models.ParsedIngredient) models.PantryItem {
	name := strings.TrimSpace(ing.Name)
	if existing, ok := FindInPantry(name, p.Items); ok {
		existing.Quantity = ing.Quantity
		existing.Unit = ing.Unit
		existing.AddedAt = time.Now()
		return *existing
	}

	item := models.PantryItem{
		ID:       uuid.New().String(),
		Name:     name,
		Quantity: ing.Quantity,
		Unit:     ing.Unit,
		Category: category.Categorize(name),
		AddedAt:  time.Now(),
	}
	p.Items = append(p.Items, item)
	return item
}
