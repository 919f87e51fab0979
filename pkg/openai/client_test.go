package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient serves every chat completion with content and records the
// last request body
func newTestClient(t *testing.T, content string, status int) (*Client, *map[string]interface{}) {
	t.Helper()
	var lastRequest map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &lastRequest)

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-4o-mini",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": content,
					},
				},
			},
		})
	}))
	t.Cleanup(srv.Close)

	return New("test-key", srv.URL+"/v1", "gpt-4o-mini"), &lastRequest
}

func TestGenerateRecipe(t *testing.T) {
	content := "```json\n" + `{
  "name": "Spaghetti Bolognese",
  "cuisine": "Italian",
  "servings": 4,
  "sections": [
    {"title": "For the Sauce", "items": ["500 g ground beef", "1 onion, diced", " "]},
    {"title": "Empty", "items": []},
    {"title": "For the Pasta", "items": ["400 g spaghetti"]}
  ],
  "instructions": ["Brown the beef", "Cook the pasta"]
}` + "\n```"

	c, req := newTestClient(t, content, http.StatusOK)

	recipe, err := c.GenerateRecipe(context.Background(), "bolognese", "Italian")
	require.NoError(t, err)

	assert.Equal(t, "Spaghetti Bolognese", recipe.Name)
	assert.Equal(t, "Italian", recipe.Cuisine)
	assert.Equal(t, 4, recipe.Servings)
	require.Len(t, recipe.Sections, 2)
	assert.Equal(t, "For the Sauce", recipe.Sections[0].Title)
	assert.Equal(t, []string{"500 g ground beef", "1 onion, diced"}, recipe.Sections[0].Items)
	assert.Equal(t, []string{"400 g spaghetti"}, recipe.Sections[1].Items)
	assert.Len(t, recipe.Instructions, 2)
	assert.False(t, recipe.CreatedAt.IsZero())

	assert.Equal(t, "gpt-4o-mini", (*req)["model"])
}

func TestGenerateRecipe_FlatIngredients(t *testing.T) {
	c, _ := newTestClient(t, `{"ingredients": ["2 eggs", "1 cup milk"]}`, http.StatusOK)

	recipe, err := c.GenerateRecipe(context.Background(), "Omelette", "French")
	require.NoError(t, err)
	assert.Equal(t, "Omelette", recipe.Name)
	assert.Equal(t, "French", recipe.Cuisine)
	require.Len(t, recipe.Sections, 1)
	assert.Equal(t, "Ingredients", recipe.Sections[0].Title)
}

func TestGenerateRecipe_NoIngredients(t *testing.T) {
	c, _ := newTestClient(t, `{"name": "Air"}`, http.StatusOK)

	_, err := c.GenerateRecipe(context.Background(), "Air", "")
	assert.Error(t, err)
}

func TestGenerateRecipe_BadJSON(t *testing.T) {
	c, _ := newTestClient(t, "I am not JSON", http.StatusOK)

	_, err := c.GenerateRecipe(context.Background(), "Soup", "")
	assert.ErrorContains(t, err, "failed to parse OpenAI response")
}

func TestGenerateRecipe_APIError(t *testing.T) {
	c, _ := newTestClient(t, "", http.StatusInternalServerError)

	_, err := c.GenerateRecipe(context.Background(), "Soup", "")
	assert.ErrorContains(t, err, "OpenAI API error")
}

func TestParseIngredientsFromText(t *testing.T) {
	c, _ := newTestClient(t, `["12 eggs", "1 l milk"]`, http.StatusOK)

	ingredients, err := c.ParseIngredientsFromText(context.Background(), "a dozen eggs and a litre of milk")
	require.NoError(t, err)
	assert.Equal(t, []string{"12 eggs", "1 l milk"}, ingredients)
}

func TestParseIngredientsFromText_Fallback(t *testing.T) {
	c, _ := newTestClient(t, `["12 eggs", "1 l milk",`, http.StatusOK)

	ingredients, err := c.ParseIngredientsFromText(context.Background(), "eggs and milk")
	require.NoError(t, err)
	assert.Equal(t, []string{"12 eggs", "1 l milk"}, ingredients)
}

func TestGenerateChatMessage(t *testing.T) {
	c, req := newTestClient(t, "  Hello family! 🛒 ", http.StatusOK)

	msg, err := c.GenerateChatMessage(context.Background(), "welcome", map[string]interface{}{"purpose": "groceries"})
	require.NoError(t, err)
	assert.Equal(t, "Hello family! 🛒", msg)

	messages, ok := (*req)["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].(map[string]interface{})["content"], `"welcome"`)
}

func TestSuggestDishes(t *testing.T) {
	c, _ := newTestClient(t, `[
  {"name": "Shakshuka", "cuisine": "Middle Eastern", "ingredients_missing": ["feta"]},
  {"name": "Frittata", "cuisine": "Italian"},
  {"name": "Omelette", "cuisine": "French"}
]`, http.StatusOK)

	suggestions, err := c.SuggestDishes(context.Background(), []string{"eggs", "tomatoes"}, []string{"Italian"}, 2)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Shakshuka", suggestions[0].Name)
	assert.Equal(t, []string{"feta"}, suggestions[0].Missing)
}

func TestCleanJSONResponse(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSONResponse("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `[1]`, cleanJSONResponse("  [1]  "))
	assert.Equal(t, `[1]`, cleanJSONResponse("```\n[1]```"))
}

func TestExtractIngredientsFromText(t *testing.T) {
	got := extractIngredientsFromText("[\"2 eggs\", \"milk\", 3, null, \"a\"]")
	assert.Equal(t, []string{"2 eggs", "milk"}, got)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", truncateString("abc", 5))
	assert.Equal(t, "ab...", truncateString("abcdef", 2))
	// "é" is two bytes; cutting at 2 would split the second one
	assert.Equal(t, "é...", truncateString("éé", 3))
	assert.True(t, utf8.ValidString(truncateString("½ cup crème fraîche", 14)))
}
