package scheduler

import (
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/matchmygrocery/pkg/grocery"
	"github.com/korjavin/matchmygrocery/pkg/logger"
	"github.com/korjavin/matchmygrocery/pkg/messages"
	"github.com/korjavin/matchmygrocery/pkg/models"
)

// Notifier delivers reminder messages to a chat
type Notifier interface {
	SendMessage(chatID int64, text string) (tgbotapi.Message, error)
}

// Service provides scheduling functionality for grocery lists
type Service struct {
	grocery         *grocery.Service
	notifier        Notifier
	logger          *logger.Logger
	refreshInterval time.Duration
	reminderHour    int
	now             func() time.Time

	mu           sync.Mutex
	lastReminded map[int64]string
	stopChan     chan struct{}
	stopOnce     sync.Once
}

// New creates a new scheduler service. A nil notifier or a negative
// reminderHour disables the daily reminder.
func New(groceryService *grocery.Service, notifier Notifier, refreshInterval time.Duration, reminderHour int) *Service {
	return &Service{
		grocery:         groceryService,
		notifier:        notifier,
		logger:          logger.New("scheduler"),
		refreshInterval: refreshInterval,
		reminderHour:    reminderHour,
		now:             time.Now,
		lastReminded:    make(map[int64]string),
		stopChan:        make(chan struct{}),
	}
}

// Start starts the scheduler
func (s *Service) Start() {
	s.logger.Info("Starting grocery scheduler")

	if s.refreshInterval > 0 {
		go s.runRefresher()
	}

	if s.notifier != nil && s.reminderHour >= 0 {
		go s.runDailyReminder()
	}
}

// Stop stops the scheduler
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping grocery scheduler")
		close(s.stopChan)
	})
}

// runRefresher re-matches every grocery list against its pantry
func (s *Service) runRefresher() {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RefreshAll()
		case <-s.stopChan:
			return
		}
	}
}

// runDailyReminder checks once a minute whether the reminder hour has come
func (s *Service) runDailyReminder() {
	s.logger.Info("Daily reminder scheduled for %02d:00", s.reminderHour)

	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if s.now().Hour() == s.reminderHour {
				s.RemindAll()
			}
		case <-s.stopChan:
			return
		}
	}
}

// RefreshAll refreshes the pantry state of every stored grocery list and
// returns how many lists were refreshed
func (s *Service) RefreshAll() int {
	chatIDs, err := s.grocery.ChatIDs()
	if err != nil {
		s.logger.Error("Failed to list grocery lists: %v", err)
		return 0
	}

	refreshed := 0
	for _, chatID := range chatIDs {
		if err := s.grocery.RefreshPantry(chatID); err != nil {
			s.logger.Error("Failed to refresh grocery list of chat %d: %v", chatID, err)
			continue
		}
		refreshed++
	}

	s.logger.Debug("Refreshed %d grocery lists", refreshed)
	return refreshed
}

// RemindAll sends every chat with unchecked items to buy a reminder, at most
// once per day per chat. It returns the number of reminders sent.
func (s *Service) RemindAll() int {
	if s.notifier == nil {
		return 0
	}

	chatIDs, err := s.grocery.ChatIDs()
	if err != nil {
		s.logger.Error("Failed to list grocery lists: %v", err)
		return 0
	}

	today := s.now().Format("2006-01-02")
	sent := 0
	for _, chatID := range chatIDs {
		if s.remindedOn(chatID) == today {
			continue
		}

		items, err := s.grocery.SortedItems(chatID, grocery.SortCategory)
		if err != nil {
			s.logger.Error("Failed to load grocery list of chat %d: %v", chatID, err)
			continue
		}

		toBuy := pending(items)
		if len(toBuy) == 0 {
			continue
		}

		if _, err := s.notifier.SendMessage(chatID, messages.FormatReminder(toBuy)); err != nil {
			s.logger.Error("Failed to send reminder to chat %d: %v", chatID, err)
			continue
		}

		s.markReminded(chatID, today)
		sent++
	}

	if sent > 0 {
		s.logger.Info("Sent %d shopping reminders", sent)
	}
	return sent
}

func (s *Service) remindedOn(chatID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReminded[chatID]
}

func (s *Service) markReminded(chatID int64, day string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastReminded[chatID] = day
}

// pending returns the unchecked items that still have to be bought
func pending(items []models.GroceryItem) []models.GroceryItem {
	result := make([]models.GroceryItem, 0, len(items))
	for _, item := range items {
		if !item.Checked && grocery.NeedsBuying(item) {
			result = append(result, item)
		}
	}
	return result
}
