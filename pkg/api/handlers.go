package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/korjavin/matchmygrocery/pkg/grocery"
	"github.com/korjavin/matchmygrocery/pkg/models"
	"github.com/korjavin/matchmygrocery/pkg/pantry"
	"github.com/korjavin/matchmygrocery/pkg/quantity"
)

// ParseRequest is the body of POST /api/ingredients/parse
type ParseRequest struct {
	Line    string   `json:"line"`
	Lines   []string `json:"lines"`
	Reorder bool     `json:"reorder"`
}

// ParsedLine is one parsed ingredient line with the shape that matched it
type ParsedLine struct {
	Line    string `json:"line"`
	Pattern string `json:"pattern"`
	models.ParsedIngredient
}

// ReconcileRequest is the body of POST /api/quantity/reconcile
type ReconcileRequest struct {
	Required  string `json:"required"`
	Available string `json:"available"`
}

// MatchRequest is the body of POST /api/grocery/match
type MatchRequest struct {
	Sections []models.RecipeSection `json:"sections"`
	Lines    []string               `json:"lines"`
	Pantry   []models.PantryItem    `json:"pantry"`
	Sort     string                 `json:"sort"`
}

// MatchResponse holds the matched grocery items, sorted and grouped
type MatchResponse struct {
	Items  []models.GroceryItem `json:"items"`
	Groups []grocery.Group      `json:"groups"`
}

// PantryRequest is the body of POST /api/pantry/:chat. Either Lines or Name is set.
type PantryRequest struct {
	Lines    []string `json:"lines"`
	Name     string   `json:"name"`
	Quantity string   `json:"quantity"`
	Unit     string   `json:"unit"`
}

// RecipeRequest is the body of POST /api/grocery/:chat/recipes. Either a dish
// to look up or a complete recipe is given.
type RecipeRequest struct {
	Dish    string         `json:"dish"`
	Cuisine string         `json:"cuisine"`
	Recipe  *models.Recipe `json:"recipe"`
}

// ParseIngredients parses free-text ingredient lines
func (h *Handler) ParseIngredients(c *fiber.Ctx) error {
	var req ParseRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	lines := req.Lines
	if req.Line != "" {
		lines = append([]string{req.Line}, lines...)
	}
	if len(lines) == 0 {
		return Error(c, fiber.StatusBadRequest, "line or lines is required")
	}

	parser := h.parser
	if req.Reorder {
		parser = h.reorder
	}

	result := make([]ParsedLine, 0, len(lines))
	for _, line := range lines {
		parsed, pattern := parser.Explain(line)
		result = append(result, ParsedLine{Line: line, Pattern: pattern, ParsedIngredient: parsed})
	}
	return Success(c, result)
}

// ReconcileQuantity returns how much of the required quantity is missing
func (h *Handler) ReconcileQuantity(c *fiber.Ctx) error {
	var req ReconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	shortfall, _ := quantity.Shortfall(req.Required, req.Available)
	return Success(c, fiber.Map{
		"needed":    quantity.Reconcile(req.Required, req.Available),
		"shortfall": shortfall,
	})
}

// MatchGrocery matches recipe ingredients against a pantry supplied in the
// request, without touching stored state.
func (h *Handler) MatchGrocery(c *fiber.Ctx) error {
	var req MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	option, err := h.sortOption(req.Sort)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, err.Error())
	}

	sections := req.Sections
	if len(req.Lines) > 0 {
		sections = append(sections, models.RecipeSection{Items: req.Lines})
	}

	items := grocery.Sort(grocery.Match(sections, req.Pantry, time.Now()), option)
	return Success(c, MatchResponse{
		Items:  items,
		Groups: grocery.GroupItems(items),
	})
}

// GetPantry returns the pantry items of a chat
func (h *Handler) GetPantry(c *fiber.Ctx) error {
	id, err := chatID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid chat ID")
	}

	items, err := h.pantry.ListItems(id)
	if err != nil {
		h.logger.Error("Failed to list pantry of chat %d: %v", id, err)
		return Error(c, fiber.StatusInternalServerError, "Failed to load pantry")
	}
	return Success(c, items)
}

// AddPantryItems adds ingredient lines or a single structured item to a
// chat's pantry and refreshes the chat's grocery list against it.
func (h *Handler) AddPantryItems(c *fiber.Ctx) error {
	id, err := chatID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid chat ID")
	}

	var req PantryRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var added []models.PantryItem
	switch {
	case len(req.Lines) > 0:
		added, err = h.pantry.AddLines(id, req.Lines)
	case strings.TrimSpace(req.Name) != "":
		var item *models.PantryItem
		item, err = h.pantry.AddItem(id, req.Name, req.Quantity, req.Unit)
		if item != nil {
			added = []models.PantryItem{*item}
		}
	default:
		return Error(c, fiber.StatusBadRequest, "lines or name is required")
	}
	if err != nil {
		h.logger.Error("Failed to add pantry items for chat %d: %v", id, err)
		return Error(c, fiber.StatusInternalServerError, "Failed to update pantry")
	}

	if err := h.grocery.RefreshPantry(id); err != nil {
		h.logger.Warn("Failed to refresh grocery list of chat %d: %v", id, err)
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{Success: true, Data: added})
}

// RemovePantryItem removes one item, by name or ID, from a chat's pantry
func (h *Handler) RemovePantryItem(c *fiber.Ctx) error {
	id, err := chatID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid chat ID")
	}

	err = h.pantry.RemoveItem(id, c.Params("item"))
	if errors.Is(err, pantry.ErrItemNotFound) {
		return Error(c, fiber.StatusNotFound, "Pantry item not found")
	}
	if err != nil {
		h.logger.Error("Failed to remove pantry item for chat %d: %v", id, err)
		return Error(c, fiber.StatusInternalServerError, "Failed to update pantry")
	}

	if err := h.grocery.RefreshPantry(id); err != nil {
		h.logger.Warn("Failed to refresh grocery list of chat %d: %v", id, err)
	}
	return Success(c, nil)
}

// ResetPantry empties a chat's pantry
func (h *Handler) ResetPantry(c *fiber.Ctx) error {
	id, err := chatID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid chat ID")
	}

	if err := h.pantry.ResetPantry(id); err != nil {
		h.logger.Error("Failed to reset pantry of chat %d: %v", id, err)
		return Error(c, fiber.StatusInternalServerError, "Failed to reset pantry")
	}
	if err := h.grocery.RefreshPantry(id); err != nil {
		h.logger.Warn("Failed to refresh grocery list of chat %d: %v", id, err)
	}
	return Success(c, nil)
}

// GetGroceryList returns a chat's grocery list. The sort query parameter picks
// the order; group=false returns a flat list instead of category groups.
func (h *Handler) GetGroceryList(c *fiber.Ctx) error {
	id, err := chatID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid chat ID")
	}

	option, err := h.sortOption(c.Query("sort"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, err.Error())
	}

	if c.Query("group") == "false" {
		items, err := h.grocery.SortedItems(id, option)
		if err != nil {
			h.logger.Error("Failed to load grocery list of chat %d: %v", id, err)
			return Error(c, fiber.StatusInternalServerError, "Failed to load grocery list")
		}
		return Success(c, items)
	}

	groups, err := h.grocery.GroupedItems(id, option)
	if err != nil {
		h.logger.Error("Failed to load grocery list of chat %d: %v", id, err)
		return Error(c, fiber.StatusInternalServerError, "Failed to load grocery list")
	}
	return Success(c, groups)
}

// AddRecipe adds a recipe's ingredients to a chat's grocery list
func (h *Handler) AddRecipe(c *fiber.Ctx) error {
	id, err := chatID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid chat ID")
	}

	var req RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	recipe := req.Recipe
	if recipe == nil {
		if strings.TrimSpace(req.Dish) == "" {
			return Error(c, fiber.StatusBadRequest, "dish or recipe is required")
		}
		if h.recipes == nil {
			return Error(c, fiber.StatusServiceUnavailable, "Recipe lookup is not configured")
		}
		recipe, err = h.recipes.GetRecipe(c.UserContext(), req.Dish, req.Cuisine)
		if err != nil {
			h.logger.Error("Failed to get recipe %q: %v", req.Dish, err)
			return Error(c, fiber.StatusBadGateway, "Failed to get recipe")
		}
	}

	items, err := h.grocery.AddRecipe(id, *recipe)
	if errors.Is(err, grocery.ErrRecipeAlreadyAdded) {
		return Error(c, fiber.StatusConflict, err.Error())
	}
	if err != nil {
		h.logger.Error("Failed to add recipe %q for chat %d: %v", recipe.Name, id, err)
		return Error(c, fiber.StatusInternalServerError, "Failed to update grocery list")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{Success: true, Data: items})
}

// RefreshGroceryList re-matches a chat's grocery list against its pantry
func (h *Handler) RefreshGroceryList(c *fiber.Ctx) error {
	id, err := chatID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid chat ID")
	}

	if err := h.grocery.RefreshPantry(id); err != nil {
		h.logger.Error("Failed to refresh grocery list of chat %d: %v", id, err)
		return Error(c, fiber.StatusInternalServerError, "Failed to refresh grocery list")
	}

	list, err := h.grocery.GetList(id)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "Failed to load grocery list")
	}
	return Success(c, list.Items)
}

// ToggleGroceryItem flips the checked flag of a grocery item
func (h *Handler) ToggleGroceryItem(c *fiber.Ctx) error {
	id, err := chatID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid chat ID")
	}

	item, err := h.grocery.ToggleItem(id, c.Params("id"))
	if errors.Is(err, grocery.ErrItemNotFound) {
		return Error(c, fiber.StatusNotFound, "Grocery item not found")
	}
	if err != nil {
		h.logger.Error("Failed to toggle grocery item for chat %d: %v", id, err)
		return Error(c, fiber.StatusInternalServerError, "Failed to update grocery list")
	}
	return Success(c, item)
}

// RemoveCheckedItems drops every checked item from a chat's grocery list
func (h *Handler) RemoveCheckedItems(c *fiber.Ctx) error {
	id, err := chatID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid chat ID")
	}

	removed, err := h.grocery.RemoveChecked(id)
	if err != nil {
		h.logger.Error("Failed to clear checked items for chat %d: %v", id, err)
		return Error(c, fiber.StatusInternalServerError, "Failed to update grocery list")
	}
	return Success(c, fiber.Map{"removed": removed})
}

// ResetGroceryList empties a chat's grocery list
func (h *Handler) ResetGroceryList(c *fiber.Ctx) error {
	id, err := chatID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid chat ID")
	}

	if err := h.grocery.ResetList(id); err != nil {
		h.logger.Error("Failed to reset grocery list of chat %d: %v", id, err)
		return Error(c, fiber.StatusInternalServerError, "Failed to reset grocery list")
	}
	return Success(c, nil)
}

func (h *Handler) sortOption(raw string) (grocery.SortOption, error) {
	if raw == "" {
		return h.defaultSort, nil
	}
	return grocery.ParseSortOption(raw)
}
