package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/korjavin/matchmygrocery/pkg/logger"
	"github.com/korjavin/matchmygrocery/pkg/models"
	"github.com/sashabaranov/go-openai"
)

// Client represents an OpenAI API client
type Client struct {
	client *openai.Client
	model  string
	logger *logger.Logger
}

// New creates a new OpenAI client
func New(apiKey, apiBase, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	if apiBase != "" {
		config.BaseURL = apiBase
	}

	client := openai.NewClientWithConfig(config)
	return &Client{
		client: client,
		model:  model,
		logger: logger.New("openai"),
	}
}

// recipeResponse is the JSON shape the model is asked to return
type recipeResponse struct {
	Name         string                 `json:"name"`
	Cuisine      string                 `json:"cuisine"`
	Servings     int                    `json:"servings"`
	Sections     []models.RecipeSection `json:"sections"`
	Ingredients  []string               `json:"ingredients"`
	Instructions []string               `json:"instructions"`
}

// DishSuggestion is a dish the model proposes for the ingredients at hand
type DishSuggestion struct {
	Name        string   `json:"name"`
	Cuisine     string   `json:"cuisine"`
	Description string   `json:"description"`
	Missing     []string `json:"ingredients_missing"`
}

// GenerateRecipe asks the LLM for a recipe whose ingredients are grouped into
// titled sections, one ingredient line per item ("2 cups flour").
func (c *Client) GenerateRecipe(ctx context.Context, dishName, cuisine string) (*models.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cuisineHint := "Determine the most likely cuisine for this dish."
	if cuisine != "" {
		cuisineHint = fmt.Sprintf("The dish is from %s cuisine.", cuisine)
	}

	prompt := fmt.Sprintf(`
You are a cooking expert. Please write a home-cooking recipe for "%s".
%s
Group the ingredients into sections such as "For the Sauce" or "For the Dough".
Write every ingredient as "<quantity> <unit> <name>", for example "2 cups chopped spinach".
Return the recipe in the following JSON format:
{
  "name": "Full dish name",
  "cuisine": "Cuisine type",
  "servings": 4,
  "sections": [{"title": "Section title", "items": ["ingredient line", ...]}],
  "instructions": ["step1", "step2", ...]
}
Only return the JSON, no other text.
`, dishName, cuisineHint)

	c.logger.Info("Requesting recipe for %s (cuisine %q)", dishName, cuisine)
	c.logger.Debug("OpenAI prompt (first 100 chars): %s", truncateString(prompt, 100))

	content, err := c.complete(ctx, []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: "You are a cooking expert who provides accurate recipes with exact ingredient quantities.",
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		},
	}, 0.3)
	if err != nil {
		return nil, err
	}

	var resp recipeResponse
	if err := json.Unmarshal([]byte(cleanJSONResponse(content)), &resp); err != nil {
		c.logger.Error("Failed to parse response: %v, Content: %s", err, content)
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	recipe := resp.toRecipe(dishName, cuisine)
	if len(recipe.Sections) == 0 {
		return nil, fmt.Errorf("recipe for %s has no ingredients", dishName)
	}

	c.logger.Info("Successfully got recipe for %s with %d sections", recipe.Name, len(recipe.Sections))
	return recipe, nil
}

// toRecipe fills in what the model left out and drops empty sections. A flat
// "ingredients" list becomes a single "Ingredients" section.
func (r recipeResponse) toRecipe(dishName, cuisine string) *models.Recipe {
	recipe := &models.Recipe{
		Name:         strings.TrimSpace(r.Name),
		Cuisine:      strings.TrimSpace(r.Cuisine),
		Servings:     r.Servings,
		Instructions: r.Instructions,
		CreatedAt:    time.Now(),
	}
	if recipe.Name == "" {
		recipe.Name = dishName
	}
	if recipe.Cuisine == "" {
		recipe.Cuisine = cuisine
	}

	sections := r.Sections
	if len(sections) == 0 && len(r.Ingredients) > 0 {
		sections = []models.RecipeSection{{Title: "Ingredients", Items: r.Ingredients}}
	}
	for _, section := range sections {
		items := make([]string, 0, len(section.Items))
		for _, item := range section.Items {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		recipe.Sections = append(recipe.Sections, models.RecipeSection{
			Title: strings.TrimSpace(section.Title),
			Items: items,
		})
	}
	return recipe
}

// GenerateChatMessage generates a chat message for a specific intent
func (c *Client) GenerateChatMessage(ctx context.Context, intent string, contextData map[string]interface{}) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	// Convert context to JSON string
	contextJSON, err := json.Marshal(contextData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal context: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a friendly grocery assistant bot for a Telegram group. Generate a short, engaging message for the following intent: "%s".
Use the context provided below to personalize the message. Keep it concise and mobile-friendly.
Add appropriate emojis for fun and readability.

Context:
%s

Return only the message text, no explanations or other text.
`, intent, string(contextJSON))

	c.logger.Info("Generating chat message for intent: %s", intent)

	content, err := c.complete(ctx, []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		},
	}, 0.7)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// ParseIngredientsFromText extracts ingredient lines from free-form text,
// keeping quantities and units ("2 cups flour").
func (c *Client) ParseIngredientsFromText(ctx context.Context, text string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(`
You are a cooking assistant. Extract all food ingredients from the following text.
Keep the quantity and unit of each ingredient when the text gives them.
Return only a JSON array of ingredient lines, no other text.
For example: ["12 eggs", "1 l milk", "3 tomatoes", "chicken breast"]

Text: %s
`, text)

	c.logger.Info("Parsing ingredients from text")
	c.logger.Debug("Text to parse (first 100 chars): %s", truncateString(text, 100))

	content, err := c.complete(ctx, []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		},
	}, 0.2)
	if err != nil {
		return nil, err
	}

	content = cleanJSONResponse(content)

	var ingredients []string
	if err := json.Unmarshal([]byte(content), &ingredients); err != nil {
		c.logger.Error("Failed to parse response: %v, Content: %s", err, content)

		// Try to extract ingredients using a more lenient approach
		extracted := extractIngredientsFromText(content)
		if len(extracted) > 0 {
			c.logger.Info("Extracted %d ingredients using fallback method", len(extracted))
			return extracted, nil
		}

		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	return ingredients, nil
}

// SuggestDishes suggests dishes based on the pantry contents and cuisines
func (c *Client) SuggestDishes(ctx context.Context, ingredients []string, cuisines []string, count int) ([]DishSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(`
You are a cooking expert. Based on the available ingredients and preferred cuisines, suggest %d dishes.
Prefer dishes that use what is already available.

Available ingredients: %s

Preferred cuisines: %s

Return the suggestions in the following JSON format:
[
  {
    "name": "Dish name",
    "cuisine": "Cuisine type",
    "description": "Brief description of the dish",
    "ingredients_missing": ["ingredient1", "ingredient2", ...]
  },
  ...
]

Only return the JSON array, no other text.
`, count, strings.Join(ingredients, ", "), strings.Join(cuisines, ", "))

	c.logger.Info("Requesting dish suggestions based on %d ingredients and %d cuisines", len(ingredients), len(cuisines))

	content, err := c.complete(ctx, []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: "You are a cooking expert who helps families cook with what they already have.",
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		},
	}, 0.7)
	if err != nil {
		return nil, err
	}

	var suggestions []DishSuggestion
	if err := json.Unmarshal([]byte(cleanJSONResponse(content)), &suggestions); err != nil {
		c.logger.Error("Failed to parse response: %v, Content: %s", err, content)
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	if len(suggestions) > count && count > 0 {
		suggestions = suggestions[:count]
	}

	c.logger.Info("Successfully generated %d dish suggestions", len(suggestions))
	return suggestions, nil
}

// complete sends one chat completion request and returns the first choice
func (c *Client) complete(ctx context.Context, messages []openai.ChatCompletionMessage, temperature float32) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: temperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI API")
	}

	content := resp.Choices[0].Message.Content
	c.logger.Debug("OpenAI response (first 100 chars): %s", truncateString(content, 100))
	return content, nil
}

// Helper functions

// truncateString truncates a string to at most maxLen bytes without splitting
// a multi-byte character
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	s = s[:maxLen]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// cleanJSONResponse strips the markdown code fence the model sometimes wraps
// its JSON in
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		// The first line may carry a language tag ("```json")
		if firstLineEnd := strings.Index(s, "\n"); firstLineEnd != -1 {
			s = s[firstLineEnd+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	return s
}

// extractIngredientsFromText splits a malformed JSON array into ingredient
// lines. It is the fallback when the model's answer does not parse.
func extractIngredientsFromText(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '"' || r == '[' || r == ']' || r == '\t'
	})

	var ingredients []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if len(part) <= 1 {
			continue
		}
		if part == "null" || part == "true" || part == "false" {
			continue
		}
		// bare numbers and punctuation are JSON debris, "2 eggs" is not
		if strings.Trim(part, "0123456789.:{} ") == "" {
			continue
		}
		ingredients = append(ingredients, part)
	}

	return ingredients
}
