package status

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/innocencedq/hackathon-mpit-kitwit/internal/bus"
)

// State represents a sync engine view state.
type State string

const (
	// Suspended means identity is not yet available; no network activity.
	Suspended State = "SUSPENDED"
	// ListView means no chat is selected; chat-list polling is active.
	ListView State = "LIST_VIEW"
	// ConversationView means a chat is selected; message polling is active
	// alongside chat-list polling.
	ConversationView State = "CONVERSATION_VIEW"
	// Stopped is terminal: polling torn down, presence reported offline.
	Stopped State = "STOPPED"
)

// validTransitions defines allowed state transitions.
var validTransitions = map[State][]State{
	Suspended:        {ListView, Stopped},
	ListView:         {ConversationView, Stopped},
	ConversationView: {ListView, Stopped},
	Stopped:          {},
}

// Machine tracks and enforces sync engine view-state transitions.
type Machine struct {
	mu      sync.RWMutex
	current State
	bus     *bus.Bus
}

// NewMachine creates a new state machine starting in Suspended state.
func NewMachine(b *bus.Bus) *Machine {
	return &Machine{
		current: Suspended,
		bus:     b,
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Transition attempts to move to a new state. Returns error if transition is invalid.
// Transitioning to the current state is a no-op (reselecting an open chat).
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == to {
		return nil
	}

	allowed := validTransitions[m.current]
	if !slices.Contains(allowed, to) {
		return fmt.Errorf("invalid transition from %s to %s", m.current, to)
	}
	from := m.current
	m.current = to
	if m.bus != nil {
		m.bus.Publish(bus.Event{
			Kind:      "sync.view_changed",
			Timestamp: time.Now(),
			Payload: ViewChange{
				From: from,
				To:   to,
			},
		})
	}
	return nil
}

// ViewChange is the payload for view change events.
type ViewChange struct {
	From State
	To   State
}
