package identity

import (
	"context"
	"sync"
	"time"

	"github.com/innocencedq/hackathon-mpit-kitwit/internal/backend"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/bus"
	"go.uber.org/zap"
)

// User is the resolved local identity.
type User struct {
	ID   int64
	Name string
}

// Fetcher is the backend call the provider depends on.
type Fetcher interface {
	CurrentUser(ctx context.Context) (*backend.User, error)
}

// Provider resolves the current user from the backend and caches it.
// Until the first successful fetch the identity is simply unavailable;
// consumers treat that as a valid suspended state, not an error.
type Provider struct {
	mu     sync.RWMutex
	user   *User
	api    Fetcher
	bus    *bus.Bus
	logger *zap.Logger
	retry  time.Duration
	cancel context.CancelFunc
}

// NewProvider creates an identity provider. retry is the interval between
// bootstrap attempts while the backend is unreachable.
func NewProvider(api Fetcher, b *bus.Bus, logger *zap.Logger, retry time.Duration) *Provider {
	return &Provider{
		api:    api,
		bus:    b,
		logger: logger,
		retry:  retry,
	}
}

// Current returns the cached identity and whether it is available yet.
func (p *Provider) Current() (User, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.user == nil {
		return User{}, false
	}
	return *p.user, true
}

// Load performs one identity fetch. On success the identity becomes
// available and "identity.ready" is published.
func (p *Provider) Load(ctx context.Context) error {
	u, err := p.api.CurrentUser(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	first := p.user == nil
	p.user = &User{ID: u.ID, Name: u.Name}
	p.mu.Unlock()

	if first {
		p.logger.Info("identity resolved", zap.Int64("user_id", u.ID), zap.String("name", u.Name))
		p.bus.Publish(bus.Event{
			Kind:      "identity.ready",
			Timestamp: time.Now(),
			Payload:   User{ID: u.ID, Name: u.Name},
		})
	}
	return nil
}

// Start retries Load in the background until it succeeds or the context
// is canceled.
func (p *Provider) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)

	go func() {
		for {
			err := p.Load(ctx)
			if err == nil {
				return
			}
			p.logger.Warn("identity fetch failed, retrying", zap.Error(err), zap.Duration("retry", p.retry))
			select {
			case <-time.After(p.retry):
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the bootstrap loop.
func (p *Provider) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
}
