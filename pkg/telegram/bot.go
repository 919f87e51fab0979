package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/matchmygrocery/pkg/logger"
)

// Bot represents a Telegram bot instance
type Bot struct {
	api    *tgbotapi.BotAPI
	logger *logger.Logger
}

// HandlerFunc is a function that handles a Telegram update
type HandlerFunc func(update tgbotapi.Update)

// CommandHandler is a function that handles a Telegram command
type CommandHandler func(message *tgbotapi.Message)

// CallbackHandler is a function that handles a Telegram callback query
type CallbackHandler func(callback *tgbotapi.CallbackQuery)

// New creates a new Telegram bot instance
func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	bot := &Bot{
		api:    api,
		logger: logger.New("telegram"),
	}

	bot.logger.Info("Telegram bot created: @%s", api.Self.UserName)
	return bot, nil
}

// Start listens for updates until ctx is cancelled. Commands go to the
// matching command handler, callback queries to the handler whose key is a
// prefix of the callback data, everything else (unknown callbacks included)
// to defaultHandler.
func (b *Bot) Start(ctx context.Context, commandHandlers map[string]CommandHandler, callbackHandlers map[string]CallbackHandler, defaultHandler HandlerFunc) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			Dispatch(update, commandHandlers, callbackHandlers, defaultHandler)
		}
	}
}

// Dispatch routes one update to its handler
func Dispatch(update tgbotapi.Update, commandHandlers map[string]CommandHandler, callbackHandlers map[string]CallbackHandler, defaultHandler HandlerFunc) {
	// Use a chat-specific logger if we have a chat ID
	log := logger.New("telegram")
	if chatID := chatIDOf(update); chatID != 0 {
		log = logger.New(fmt.Sprintf("%d", chatID))
	}

	// Handle commands
	if update.Message != nil && update.Message.IsCommand() {
		command := update.Message.Command()
		if handler, ok := commandHandlers[command]; ok {
			log.Info("Handling command: %s from user %s", command, userName(update.Message.From))
			handler(update.Message)
			return
		}
	}

	// Handle callback queries, longest matching prefix first
	if update.CallbackQuery != nil {
		data := update.CallbackQuery.Data
		best := ""
		for prefix := range callbackHandlers {
			if strings.HasPrefix(data, prefix) && len(prefix) > len(best) {
				best = prefix
			}
		}
		if handler, ok := callbackHandlers[best]; ok && best != "" {
			log.Info("Handling callback: %s from user %s", data, userName(update.CallbackQuery.From))
			handler(update.CallbackQuery)
			return
		}
		log.Warn("Unknown callback: %s", data)
	}

	// Use default handler for other updates
	if defaultHandler != nil {
		defaultHandler(update)
	}
}

func chatIDOf(update tgbotapi.Update) int64 {
	switch {
	case update.Message != nil && update.Message.Chat != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil:
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}

func userName(u *tgbotapi.User) string {
	if u == nil {
		return "unknown"
	}
	return u.UserName
}

// SendMessage sends a text message to a chat
func (b *Bot) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	return b.api.Send(msg)
}

// SendMessageWithKeyboard sends a text message with an inline keyboard
func (b *Bot) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	return b.api.Send(msg)
}

// AnswerCallbackQuery answers a callback query
func (b *Bot) AnswerCallbackQuery(callbackID string, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	_, err := b.api.Request(callback)
	return err
}

// EditMessage replaces the text of a message and removes its inline keyboard
func (b *Bot) EditMessage(chatID int64, messageID int, text string) (tgbotapi.Message, error) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ReplyMarkup = &tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
	return b.api.Send(edit)
}

// Send sends a Chattable to Telegram
func (b *Bot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return b.api.Send(c)
}
