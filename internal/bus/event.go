package bus

import "time"

// Event represents a client-side state event published on the bus.
// Kinds are dot-namespaced: "sync.chats_updated", "identity.ready", ...
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
