package messages

import (
	"context"
	"fmt"
	"strings"

	"github.com/korjavin/matchmygrocery/pkg/grocery"
	"github.com/korjavin/matchmygrocery/pkg/ingredient"
	"github.com/korjavin/matchmygrocery/pkg/logger"
	"github.com/korjavin/matchmygrocery/pkg/models"
	"github.com/korjavin/matchmygrocery/pkg/openai"
)

// ChatGenerator writes chat messages for an intent
type ChatGenerator interface {
	GenerateChatMessage(ctx context.Context, intent string, contextData map[string]interface{}) (string, error)
}

// Service provides message generation functionality
type Service struct {
	generator ChatGenerator
	logger    *logger.Logger
}

// New creates a new message service
func New(generator ChatGenerator) *Service {
	return &Service{
		generator: generator,
		logger:    logger.New("messages"),
	}
}

func (s *Service) generate(ctx context.Context, intent string, data map[string]interface{}, fallback string) string {
	if s.generator == nil {
		return fallback
	}
	msg, err := s.generator.GenerateChatMessage(ctx, intent, data)
	if err != nil || strings.TrimSpace(msg) == "" {
		s.logger.Error("Failed to generate %s message: %v", intent, err)
		return fallback
	}
	return msg
}

// GenerateWelcomeMessage generates a welcome message
func (s *Service) GenerateWelcomeMessage(ctx context.Context) string {
	return s.generate(ctx, "welcome", map[string]interface{}{
		"purpose":  "Turn recipes into a grocery list that skips what the family already has",
		"commands": []string{"/pantry", "/sync_pantry", "/recipe <dish>", "/grocery", "/suggest"},
	}, "👋 Welcome to MatchMyGrocery! Tell me what's in your pantry with /sync_pantry, "+
		"then add a recipe with /recipe <dish> and I'll build your grocery list with /grocery.")
}

// GenerateEmptyPantryMessage generates a message for an empty pantry
func (s *Service) GenerateEmptyPantryMessage(ctx context.Context) string {
	return s.generate(ctx, "empty_pantry", map[string]interface{}{},
		"Your pantry is empty! Add ingredients with /sync_pantry.")
}

// GenerateErrorMessage generates an error message
func (s *Service) GenerateErrorMessage(ctx context.Context, action string) string {
	return s.generate(ctx, "error", map[string]interface{}{
		"context": action,
	}, "😢 Sorry, something went wrong. Please try again later.")
}

// FormatPantry lists the pantry items of a chat
func FormatPantry(items []models.PantryItem) string {
	var b strings.Builder
	b.WriteString("🧺 Here's what's in your pantry:\n\n")
	for _, item := range items {
		b.WriteString("• ")
		b.WriteString(ingredient.String(models.ParsedIngredient{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
		}))
		if item.Category != "" {
			fmt.Fprintf(&b, " (%s)", item.Category)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatGroceryList renders grouped grocery items. Items are numbered across
// groups in display order so /check can refer to them.
func FormatGroceryList(groups []grocery.Group) string {
	if len(groups) == 0 {
		return "🛒 Your grocery list is empty. Add a recipe with /recipe <dish>."
	}

	var b strings.Builder
	b.WriteString("🛒 Grocery list\n")
	n := 0
	for _, group := range groups {
		fmt.Fprintf(&b, "\n%s\n", group.Category)
		for _, item := range group.Items {
			n++
			fmt.Fprintf(&b, "%d. %s\n", n, FormatItem(item))
		}
	}
	return b.String()
}

// FormatItem renders one grocery item with its checked and pantry status
func FormatItem(item models.GroceryItem) string {
	mark := "⬜"
	if item.Checked {
		mark = "✅"
	}

	line := mark + " " + ingredient.String(models.ParsedIngredient{
		Name:     item.Name,
		Quantity: item.Quantity,
		Unit:     item.Unit,
	})

	switch {
	case item.InPantry && !grocery.NeedsBuying(item):
		line += " 🏠 in pantry"
	case item.InPantry && item.Shortfall != "":
		line += " 🏠 need " + strings.TrimSpace(item.Shortfall+" "+item.Unit) + " more"
	case item.InPantry:
		line += " 🏠 some in pantry"
	}
	return line
}

// FormatRecipeAdded summarises a recipe that was added to the grocery list
func FormatRecipeAdded(recipe *models.Recipe, items []models.GroceryItem) string {
	toBuy := 0
	for _, item := range items {
		if grocery.NeedsBuying(item) {
			toBuy++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📖 %s", recipe.Name)
	if recipe.Cuisine != "" {
		fmt.Fprintf(&b, " (%s)", recipe.Cuisine)
	}
	fmt.Fprintf(&b, "\nAdded %d ingredients to your grocery list, %d to buy.\n", len(items), toBuy)
	for _, section := range recipe.Sections {
		if section.Title != "" {
			fmt.Fprintf(&b, "\n%s\n", section.Title)
		}
		for _, line := range section.Items {
			b.WriteString("• " + line + "\n")
		}
	}
	return b.String()
}

// FormatSuggestions lists dish suggestions
func FormatSuggestions(suggestions []openai.DishSuggestion) string {
	var b strings.Builder
	b.WriteString("🍽️ Here are some ideas for what you have:\n")
	for i, s := range suggestions {
		fmt.Fprintf(&b, "\n%d. %s", i+1, s.Name)
		if s.Cuisine != "" {
			fmt.Fprintf(&b, " (%s)", s.Cuisine)
		}
		if s.Description != "" {
			b.WriteString(" - " + s.Description)
		}
		if len(s.Missing) > 0 {
			b.WriteString("\n   missing: " + strings.Join(s.Missing, ", "))
		}
	}
	return b.String()
}

// FormatReminder lists the grocery items that still have to be bought
func FormatReminder(items []models.GroceryItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛒 You still have %d items to buy:\n", len(items))
	for _, item := range items {
		b.WriteString("\n" + FormatItem(item))
	}
	b.WriteString("\n\nUse /grocery to see the whole list.")
	return b.String()
}
