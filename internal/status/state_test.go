package status

import (
	"testing"

	"github.com/innocencedq/hackathon-mpit-kitwit/internal/bus"
)

func TestInitialState(t *testing.T) {
	m := NewMachine(nil)
	if m.Current() != Suspended {
		t.Errorf("initial state = %s, want SUSPENDED", m.Current())
	}
}

func TestValidTransitions(t *testing.T) {
	tests := []struct {
		from State
		to   State
	}{
		{Suspended, ListView},
		{Suspended, Stopped},
		{ListView, ConversationView},
		{ListView, Stopped},
		{ConversationView, ListView},
		{ConversationView, Stopped},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			m := NewMachine(nil)
			walkTo(t, m, tt.from)
			if err := m.Transition(tt.to); err != nil {
				t.Errorf("Transition(%s -> %s) error = %v", tt.from, tt.to, err)
			}
			if m.Current() != tt.to {
				t.Errorf("state = %s, want %s", m.Current(), tt.to)
			}
		})
	}
}

// Identity gates all activity: a conversation cannot open before the
// engine has left SUSPENDED.
func TestSuspendedCannotOpenConversation(t *testing.T) {
	m := NewMachine(nil)
	if err := m.Transition(ConversationView); err == nil {
		t.Error("Transition(SUSPENDED -> CONVERSATION_VIEW) should fail")
	}
	if m.Current() != Suspended {
		t.Errorf("state = %s, want SUSPENDED (should not have changed)", m.Current())
	}
}

func TestStoppedIsTerminal(t *testing.T) {
	m := NewMachine(nil)
	walkTo(t, m, Stopped)

	if err := m.Transition(ListView); err == nil {
		t.Error("Transition(STOPPED -> LIST_VIEW) should fail")
	}
}

// Reselecting the already-open chat transitions CONVERSATION_VIEW to
// itself, which must be a silent no-op.
func TestSelfTransitionNoOp(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe("sync.", 10)
	defer unsub()

	m := NewMachine(b)
	walkTo(t, m, ConversationView)
	for len(ch) > 0 {
		<-ch
	}

	if err := m.Transition(ConversationView); err != nil {
		t.Errorf("self transition error = %v, want nil", err)
	}
	if len(ch) != 0 {
		t.Error("self transition published an event, want none")
	}
}

func TestTransitionEmitsEvent(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe("sync.", 10)
	defer unsub()

	m := NewMachine(b)
	if err := m.Transition(ListView); err != nil {
		t.Fatal(err)
	}

	evt := <-ch
	if evt.Kind != "sync.view_changed" {
		t.Errorf("event kind = %q, want sync.view_changed", evt.Kind)
	}
	change, ok := evt.Payload.(ViewChange)
	if !ok {
		t.Fatalf("payload type = %T, want ViewChange", evt.Payload)
	}
	if change.From != Suspended || change.To != ListView {
		t.Errorf("change = %v -> %v, want SUSPENDED -> LIST_VIEW", change.From, change.To)
	}
}

// TestSelectionLifecycle simulates the full client lifecycle:
// SUSPENDED → LIST_VIEW → CONVERSATION_VIEW → LIST_VIEW → STOPPED
func TestSelectionLifecycle(t *testing.T) {
	m := NewMachine(nil)

	steps := []State{ListView, ConversationView, ListView, Stopped}
	for _, s := range steps {
		if err := m.Transition(s); err != nil {
			t.Fatalf("Transition to %s: %v (current: %s)", s, err, m.Current())
		}
	}
	if m.Current() != Stopped {
		t.Errorf("final state = %s, want STOPPED", m.Current())
	}
}

// walkTo is a helper that transitions the machine to a target state.
func walkTo(t *testing.T, m *Machine, target State) {
	t.Helper()
	paths := map[State][]State{
		Suspended:        {},
		ListView:         {ListView},
		ConversationView: {ListView, ConversationView},
		Stopped:          {Stopped},
	}
	for _, s := range paths[target] {
		if err := m.Transition(s); err != nil {
			t.Fatalf("walkTo(%s): %v", target, err)
		}
	}
}
