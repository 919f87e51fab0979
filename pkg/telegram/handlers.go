package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/matchmygrocery/pkg/grocery"
	"github.com/korjavin/matchmygrocery/pkg/logger"
	"github.com/korjavin/matchmygrocery/pkg/messages"
	"github.com/korjavin/matchmygrocery/pkg/models"
	"github.com/korjavin/matchmygrocery/pkg/openai"
	"github.com/korjavin/matchmygrocery/pkg/pantry"
	"github.com/korjavin/matchmygrocery/pkg/recipe"
	"github.com/korjavin/matchmygrocery/pkg/state"
)

// recipeCallbackPrefix marks "add this suggested dish" buttons
const recipeCallbackPrefix = "recipe:"

// maxCallbackData is Telegram's limit on callback data in bytes
const maxCallbackData = 64

// Sender is the part of Bot the handlers talk to
type Sender interface {
	SendMessage(chatID int64, text string) (tgbotapi.Message, error)
	SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	AnswerCallbackQuery(callbackID string, text string) error
	EditMessage(chatID int64, messageID int, text string) (tgbotapi.Message, error)
}

// Assistant is the LLM functionality the handlers use
type Assistant interface {
	ParseIngredientsFromText(ctx context.Context, text string) ([]string, error)
	SuggestDishes(ctx context.Context, ingredients []string, cuisines []string, count int) ([]openai.DishSuggestion, error)
}

// Handlers implements the bot's commands and callbacks
type Handlers struct {
	ctx         context.Context
	sender      Sender
	pantry      *pantry.Service
	grocery     *grocery.Service
	recipes     *recipe.Service
	assistant   Assistant
	messages    *messages.Service
	states      *state.Manager
	cuisines    []string
	defaultSort grocery.SortOption
	logger      *logger.Logger
}

// Deps groups the services the handlers need
type Deps struct {
	Sender      Sender
	Pantry      *pantry.Service
	Grocery     *grocery.Service
	Recipes     *recipe.Service
	Assistant   Assistant
	Messages    *messages.Service
	States      *state.Manager
	Cuisines    []string
	DefaultSort grocery.SortOption
}

// NewHandlers creates the bot handlers. ctx bounds every request they make.
func NewHandlers(ctx context.Context, deps Deps) *Handlers {
	sort := deps.DefaultSort
	if sort == "" {
		sort = grocery.SortCategory
	}
	return &Handlers{
		ctx:         ctx,
		sender:      deps.Sender,
		pantry:      deps.Pantry,
		grocery:     deps.Grocery,
		recipes:     deps.Recipes,
		assistant:   deps.Assistant,
		messages:    deps.Messages,
		states:      deps.States,
		cuisines:    deps.Cuisines,
		defaultSort: sort,
		logger:      logger.New("handlers"),
	}
}

// Commands returns the command handlers keyed by command name
func (h *Handlers) Commands() map[string]CommandHandler {
	return map[string]CommandHandler{
		"start":         h.handleStart,
		"help":          h.handleStart,
		"pantry":        h.handlePantry,
		"sync_pantry":   h.handleSyncPantry,
		"add":           h.handleAdd,
		"recipe":        h.handleRecipe,
		"suggest":       h.handleSuggest,
		"grocery":       h.handleGrocery,
		"sort":          h.handleSort,
		"check":         h.handleCheck,
		"clear_checked": h.handleClearChecked,
		"reset_grocery": h.handleResetGrocery,
	}
}

// Callbacks returns the callback handlers keyed by callback data prefix
func (h *Handlers) Callbacks() map[string]CallbackHandler {
	return map[string]CallbackHandler{
		"done_adding":        h.handleDoneAdding,
		"add_more":           h.handleAddMore,
		recipeCallbackPrefix: h.handleRecipeCallback,
	}
}

func (h *Handlers) send(chatID int64, text string) {
	if _, err := h.sender.SendMessage(chatID, text); err != nil {
		h.logger.Error("Failed to send message to chat %d: %v", chatID, err)
	}
}

func (h *Handlers) sendError(chatID int64, action string, err error) {
	h.logger.Error("Failed to %s for chat %d: %v", action, chatID, err)
	h.send(chatID, h.messages.GenerateErrorMessage(h.ctx, action))
}

func (h *Handlers) handleStart(message *tgbotapi.Message) {
	h.send(message.Chat.ID, h.messages.GenerateWelcomeMessage(h.ctx))
}

func (h *Handlers) handlePantry(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	items, err := h.pantry.ListItems(chatID)
	if err != nil {
		h.sendError(chatID, "retrieve pantry contents", err)
		return
	}

	if len(items) == 0 {
		h.send(chatID, h.messages.GenerateEmptyPantryMessage(h.ctx))
		return
	}

	h.send(chatID, messages.FormatPantry(items))
}

func (h *Handlers) handleSyncPantry(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if err := h.pantry.ResetPantry(chatID); err != nil {
		h.sendError(chatID, "reset pantry", err)
		return
	}

	h.states.SetState(chatID, state.StateAddingPantry)
	h.send(chatID, "🧹 Pantry reset! Now send me what you have, one ingredient per line (for example \"2 cups flour\" or \"Eggs - 12\"). You can send several messages.")
}

func (h *Handlers) handleAdd(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())
	if args == "" {
		h.send(chatID, "Usage: /add 2 cups flour")
		return
	}
	h.addPantryText(chatID, args, false)
}

// addPantryText adds the ingredients in text to the pantry, one per line
func (h *Handlers) addPantryText(chatID int64, text string, askForMore bool) {
	lines := splitLines(text)

	// a single comma separated line is a list, not one ingredient
	if h.assistant != nil && len(lines) == 1 && strings.Contains(lines[0], ",") {
		extracted, err := h.assistant.ParseIngredientsFromText(h.ctx, text)
		if err != nil {
			h.logger.Warn("Falling back to line parsing for chat %d: %v", chatID, err)
		} else if len(extracted) > 0 {
			lines = extracted
		}
	}

	added, err := h.pantry.AddLines(chatID, lines)
	if err != nil {
		h.sendError(chatID, "add pantry items", err)
		return
	}

	if len(added) == 0 {
		h.send(chatID, "I couldn't find any ingredients in your message. Please send one ingredient per line.")
		return
	}

	names := make([]string, len(added))
	for i, item := range added {
		names[i] = item.Name
	}
	h.send(chatID, fmt.Sprintf("✅ Added %d ingredients to your pantry: %s", len(added), strings.Join(names, ", ")))

	if err := h.grocery.RefreshPantry(chatID); err != nil {
		h.logger.Error("Failed to refresh grocery list of chat %d: %v", chatID, err)
	}

	if !askForMore {
		return
	}

	h.states.Touch(chatID)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Done adding ingredients", "done_adding"),
			tgbotapi.NewInlineKeyboardButtonData("Add more", "add_more"),
		),
	)
	if _, err := h.sender.SendMessageWithKeyboard(chatID, "Would you like to add more ingredients or are you done?", keyboard); err != nil {
		h.logger.Error("Failed to send keyboard to chat %d: %v", chatID, err)
	}
}

func (h *Handlers) handleRecipe(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	dish := strings.TrimSpace(message.CommandArguments())
	if dish == "" {
		h.send(chatID, "Usage: /recipe <dish>, for example /recipe Spaghetti Bolognese")
		return
	}
	h.addRecipe(chatID, dish)
}

func (h *Handlers) addRecipe(chatID int64, dish string) {
	rec, err := h.recipes.GetRecipe(h.ctx, dish, "")
	if err != nil {
		h.sendError(chatID, "get recipe", err)
		return
	}

	items, err := h.grocery.AddRecipe(chatID, *rec)
	if errors.Is(err, grocery.ErrRecipeAlreadyAdded) {
		h.send(chatID, fmt.Sprintf("📖 %s is already on your grocery list. Use /grocery to see it.", rec.Name))
		return
	}
	if err != nil {
		h.sendError(chatID, "update grocery list", err)
		return
	}

	h.send(chatID, messages.FormatRecipeAdded(rec, items))
}

func (h *Handlers) handleSuggest(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if h.assistant == nil {
		h.send(chatID, "Suggestions are not available right now.")
		return
	}

	items, err := h.pantry.ListItems(chatID)
	if err != nil {
		h.sendError(chatID, "retrieve pantry contents", err)
		return
	}
	if len(items) == 0 {
		h.send(chatID, h.messages.GenerateEmptyPantryMessage(h.ctx))
		return
	}

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}

	suggestions, err := h.assistant.SuggestDishes(h.ctx, names, h.cuisines, 3)
	if err != nil {
		h.sendError(chatID, "suggest dishes", err)
		return
	}
	if len(suggestions) == 0 {
		h.send(chatID, "😢 I couldn't come up with any dishes. Try adding more ingredients with /sync_pantry.")
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(suggestions))
	for _, s := range suggestions {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 "+s.Name, callbackData(recipeCallbackPrefix, s.Name)),
		))
	}

	if _, err := h.sender.SendMessageWithKeyboard(chatID, messages.FormatSuggestions(suggestions), tgbotapi.NewInlineKeyboardMarkup(rows...)); err != nil {
		h.logger.Error("Failed to send suggestions to chat %d: %v", chatID, err)
	}
}

func (h *Handlers) handleGrocery(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if arg := strings.TrimSpace(message.CommandArguments()); arg != "" {
		option, err := grocery.ParseSortOption(arg)
		if err != nil {
			h.send(chatID, sortUsage())
			return
		}
		h.states.SetSort(chatID, option)
	}

	h.sendGroceryList(chatID)
}

func (h *Handlers) handleSort(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	option, err := grocery.ParseSortOption(message.CommandArguments())
	if err != nil {
		h.send(chatID, sortUsage())
		return
	}

	h.states.SetSort(chatID, option)
	h.sendGroceryList(chatID)
}

// displayedItems returns the grocery items in the order the list is shown
func (h *Handlers) displayedItems(chatID int64) ([]grocery.Group, []models.GroceryItem, error) {
	groups, err := h.grocery.GroupedItems(chatID, h.states.GetSort(chatID, h.defaultSort))
	if err != nil {
		return nil, nil, err
	}
	return groups, grocery.Flatten(groups), nil
}

func (h *Handlers) sendGroceryList(chatID int64) {
	groups, _, err := h.displayedItems(chatID)
	if err != nil {
		h.sendError(chatID, "retrieve grocery list", err)
		return
	}
	h.send(chatID, messages.FormatGroceryList(groups))
}

func (h *Handlers) handleCheck(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	args := strings.Fields(message.CommandArguments())
	if len(args) == 0 {
		h.send(chatID, "Usage: /check <number> [number...], numbers as shown by /grocery")
		return
	}

	_, items, err := h.displayedItems(chatID)
	if err != nil {
		h.sendError(chatID, "retrieve grocery list", err)
		return
	}

	var toggled []string
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(items) {
			h.send(chatID, fmt.Sprintf("There is no item %s on your list.", arg))
			continue
		}

		item, err := h.grocery.ToggleItem(chatID, items[n-1].ID)
		if err != nil {
			h.sendError(chatID, "update grocery list", err)
			return
		}
		toggled = append(toggled, messages.FormatItem(*item))
	}

	if len(toggled) > 0 {
		h.send(chatID, strings.Join(toggled, "\n"))
	}
}

func (h *Handlers) handleClearChecked(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	removed, err := h.grocery.RemoveChecked(chatID)
	if err != nil {
		h.sendError(chatID, "clear checked items", err)
		return
	}
	h.send(chatID, fmt.Sprintf("🧹 Removed %d checked items.", removed))
}

func (h *Handlers) handleResetGrocery(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if err := h.grocery.ResetList(chatID); err != nil {
		h.sendError(chatID, "reset grocery list", err)
		return
	}
	h.send(chatID, "🧹 Grocery list cleared.")
}

func (h *Handlers) handleDoneAdding(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID

	h.states.ClearState(chatID)

	if err := h.sender.AnswerCallbackQuery(callback.ID, "Thanks! Your pantry is now updated."); err != nil {
		h.logger.Error("Failed to answer callback: %v", err)
	}
	if _, err := h.sender.EditMessage(chatID, callback.Message.MessageID, "✅ Pantry update complete! Use /pantry to see your ingredients or /recipe <dish> to plan a meal."); err != nil {
		h.logger.Error("Failed to edit message: %v", err)
	}
}

func (h *Handlers) handleAddMore(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID

	h.states.SetState(chatID, state.StateAddingPantry)

	if err := h.sender.AnswerCallbackQuery(callback.ID, "Please send more ingredients!"); err != nil {
		h.logger.Error("Failed to answer callback: %v", err)
	}
	if _, err := h.sender.EditMessage(chatID, callback.Message.MessageID, "Please send more ingredients. I'll add them to your pantry."); err != nil {
		h.logger.Error("Failed to edit message: %v", err)
	}
}

func (h *Handlers) handleRecipeCallback(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	dish := strings.TrimPrefix(callback.Data, recipeCallbackPrefix)

	if err := h.sender.AnswerCallbackQuery(callback.ID, "Adding "+dish+" to your grocery list..."); err != nil {
		h.logger.Error("Failed to answer callback: %v", err)
	}
	h.addRecipe(chatID, dish)
}

// HandleUpdate handles plain text messages: pantry lines while the chat is
// syncing its pantry, ignored otherwise.
func (h *Handlers) HandleUpdate(update tgbotapi.Update) {
	// Stale or unknown buttons still need an answer to stop the client spinner
	if update.CallbackQuery != nil {
		if err := h.sender.AnswerCallbackQuery(update.CallbackQuery.ID, ""); err != nil {
			h.logger.Error("Failed to answer callback: %v", err)
		}
		return
	}

	if update.Message == nil || update.Message.Text == "" || update.Message.IsCommand() {
		return
	}

	chatID := update.Message.Chat.ID
	if h.states.GetState(chatID) != state.StateAddingPantry {
		return
	}
	h.addPantryText(chatID, update.Message.Text, true)
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•*"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func sortUsage() string {
	options := make([]string, len(grocery.SortOptions))
	for i, o := range grocery.SortOptions {
		options[i] = string(o)
	}
	return "Usage: /sort <" + strings.Join(options, "|") + ">"
}

// callbackData joins prefix and value, cutting value to Telegram's limit on
// a rune boundary
func callbackData(prefix, value string) string {
	data := prefix + value
	if len(data) <= maxCallbackData {
		return data
	}
	data = data[:maxCallbackData]
	for len(data) > 0 && !utf8.ValidString(data) {
		data = data[:len(data)-1]
	}
	return data
}
