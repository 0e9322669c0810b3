package app

import (
	"context"
	"time"

	"github.com/innocencedq/hackathon-mpit-kitwit/internal/backend"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/bus"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/config"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/identity"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/lock"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/logging"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/presence"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/profile"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/status"
	intsync "github.com/innocencedq/hackathon-mpit-kitwit/internal/sync"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/transport"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/tui"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// identityRetryInterval is the backoff between identity bootstrap attempts
// while the backend is unreachable.
const identityRetryInterval = 3 * time.Second

// Params holds the resolved profile configuration passed to the fx module.
type Params struct {
	ProfileName string
	Config      *config.Profile
}

// Module returns the fx module for the client, composing all providers and
// lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("kitwit",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideBus,
			provideStateMachine,
			provideLock,
			provideTransport,
			provideBackend,
			provideIdentity,
			providePresence,
			provideEngine,
			provideApp,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideLogger(p Params) (*zap.Logger, error) {
	// The TUI owns the terminal; log to file only.
	return logging.NewFileOnly(profile.LogPath(p.ProfileName), p.ProfileName)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStateMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := profile.EnsureDir(p.ProfileName); err != nil {
		return nil, err
	}
	logger.Info("acquiring profile lock", zap.String("profile", p.ProfileName))
	l, err := lock.Acquire(profile.LockPath(p.ProfileName))
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired")
	return l, nil
}

func provideTransport(p Params, logger *zap.Logger) *transport.Client {
	return transport.New(p.Config.APIBaseURL, p.Config.InitData, p.Config.RequestTimeout(), logger)
}

func provideBackend(tr *transport.Client, logger *zap.Logger) *backend.Client {
	return backend.NewClient(tr, logger)
}

func provideIdentity(api *backend.Client, b *bus.Bus, logger *zap.Logger) *identity.Provider {
	return identity.NewProvider(api, b, logger, identityRetryInterval)
}

func providePresence(api *backend.Client, id *identity.Provider, logger *zap.Logger) *presence.Reporter {
	return presence.NewReporter(api, id, logger)
}

func provideEngine(p Params, api *backend.Client, id *identity.Provider, pr *presence.Reporter, m *status.Machine, b *bus.Bus, logger *zap.Logger) *intsync.Engine {
	return intsync.NewEngine(api, id, pr, m, b, logger, intsync.Config{
		ChatPollInterval:    p.Config.ChatPollInterval(),
		MessagePollInterval: p.Config.MessagePollInterval(),
	})
}

func provideApp(p Params, e *intsync.Engine, id *identity.Provider, b *bus.Bus, logger *zap.Logger) *tui.App {
	return tui.NewApp(e, id, b, logger, p.ProfileName)
}

func registerLifecycle(lc fx.Lifecycle, shutdowner fx.Shutdowner, app *tui.App, lk *lock.Lock, id *identity.Provider, engine *intsync.Engine, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// Resolve identity in the background; the engine activates on
			// the identity.ready event.
			id.Start(context.Background())
			engine.Start(context.Background())

			// Run the TUI in the background; when the user quits, shut the
			// whole application down.
			go func() {
				if err := app.Run(); err != nil {
					logger.Error("tui error", zap.Error(err))
				}
				_ = shutdowner.Shutdown()
			}()

			return nil
		},
		OnStop: func(_ context.Context) error {
			app.Stop()
			engine.Stop()
			id.Stop()
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("client stopped")
			return nil
		},
	})
}
