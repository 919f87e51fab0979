package state

import (
	"sync"
	"time"

	"github.com/korjavin/matchmygrocery/pkg/grocery"
)

// State represents the state of a chat
type State string

const (
	// StateNormal is the normal state
	StateNormal State = "normal"
	// StateAddingPantry is the state when the user is sending pantry items
	StateAddingPantry State = "adding_pantry"
)

// DefaultTTL is how long a non-normal state lasts without activity
const DefaultTTL = 10 * time.Minute

// ChatState represents the state of a chat
type ChatState struct {
	State     State
	Timestamp time.Time
}

// Manager manages chat states and per-chat list preferences
type Manager struct {
	states map[int64]ChatState
	sorts  map[int64]grocery.SortOption
	ttl    time.Duration
	mu     sync.RWMutex
}

// New creates a new state manager
func New() *Manager {
	return NewWithTTL(DefaultTTL)
}

// NewWithTTL creates a state manager whose states expire after ttl
func NewWithTTL(ttl time.Duration) *Manager {
	return &Manager{
		states: make(map[int64]ChatState),
		sorts:  make(map[int64]grocery.SortOption),
		ttl:    ttl,
	}
}

// SetState sets the state for a chat
func (m *Manager) SetState(chatID int64, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[chatID] = ChatState{
		State:     state,
		Timestamp: time.Now(),
	}
}

// GetState gets the state for a chat. Expired states read as StateNormal.
func (m *Manager) GetState(chatID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.states[chatID]
	if !ok {
		return StateNormal
	}
	if time.Since(state.Timestamp) > m.ttl {
		delete(m.states, chatID)
		return StateNormal
	}
	return state.State
}

// Touch extends the current state of a chat
func (m *Manager) Touch(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok := m.states[chatID]; ok {
		state.Timestamp = time.Now()
		m.states[chatID] = state
	}
}

// ClearState clears the state for a chat
func (m *Manager) ClearState(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, chatID)
}

// SetSort remembers the grocery list order a chat asked for
func (m *Manager) SetSort(chatID int64, option grocery.SortOption) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sorts[chatID] = option
}

// GetSort returns the chat's grocery list order, or fallback if it never chose one
func (m *Manager) GetSort(chatID int64, fallback grocery.SortOption) grocery.SortOption {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if option, ok := m.sorts[chatID]; ok {
		return option
	}
	return fallback
}
