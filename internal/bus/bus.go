package bus

import (
	"strings"
	"sync"
)

// Bus carries kitwit's internal state signals: the sync engine and
// identity provider publish ("sync.chats_updated", "identity.ready"),
// the TUI subscribes and repaints from a fresh snapshot. Events are
// notifications, not data transfer: losing one only delays a repaint
// until the next signal, so publishing never blocks and a slow
// subscriber just misses signals.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]*subscription
	nextID int
}

type subscription struct {
	prefix string
	ch     chan Event
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		subs: make(map[int]*subscription),
	}
}

// Subscribe registers interest in every event whose Kind starts with
// prefix; "sync." selects the engine's events, "" selects everything.
// The returned function removes the subscription.
func (b *Bus) Subscribe(prefix string, bufSize int) (<-chan Event, func()) {
	ch := make(chan Event, bufSize)
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = &subscription{prefix: prefix, ch: ch}
	b.mu.Unlock()

	return ch, func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers evt to every matching subscriber whose buffer has
// room. A full subscriber is skipped, never waited on.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if strings.HasPrefix(evt.Kind, sub.prefix) {
			select {
			case sub.ch <- evt:
			default:
			}
		}
	}
}
