package identity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/innocencedq/hackathon-mpit-kitwit/internal/backend"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/bus"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	mu       sync.Mutex
	failures int
	calls    int
	user     backend.User
}

func (f *fakeFetcher) CurrentUser(_ context.Context) (*backend.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("backend unreachable")
	}
	u := f.user
	return &u, nil
}

func TestCurrentUnavailableBeforeLoad(t *testing.T) {
	p := NewProvider(&fakeFetcher{}, bus.New(), zap.NewNop(), time.Second)

	if _, ok := p.Current(); ok {
		t.Error("Current() available before Load, want unavailable")
	}
}

func TestLoadResolvesIdentity(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe("identity.", 10)
	defer unsub()

	f := &fakeFetcher{user: backend.User{ID: 42, Name: "Bob"}}
	p := NewProvider(f, b, zap.NewNop(), time.Second)

	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	u, ok := p.Current()
	if !ok || u.ID != 42 || u.Name != "Bob" {
		t.Errorf("Current() = %+v, %v; want Bob/42 available", u, ok)
	}

	select {
	case evt := <-ch:
		if evt.Kind != "identity.ready" {
			t.Errorf("event kind = %q, want identity.ready", evt.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for identity.ready event")
	}
}

func TestLoadPublishesReadyOnce(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe("identity.", 10)
	defer unsub()

	f := &fakeFetcher{user: backend.User{ID: 42, Name: "Bob"}}
	p := NewProvider(f, b, zap.NewNop(), time.Second)

	_ = p.Load(context.Background())
	_ = p.Load(context.Background())

	<-ch
	select {
	case evt := <-ch:
		t.Errorf("unexpected second event: %v", evt)
	case <-time.After(50 * time.Millisecond):
		// Expected: ready fires once.
	}
}

func TestStartRetriesUntilAvailable(t *testing.T) {
	f := &fakeFetcher{failures: 2, user: backend.User{ID: 42, Name: "Bob"}}
	p := NewProvider(f, bus.New(), zap.NewNop(), 10*time.Millisecond)

	p.Start(context.Background())
	defer p.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := p.Current(); ok {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("identity never became available")
}
