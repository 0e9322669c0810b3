package presence

import (
	"context"

	"github.com/innocencedq/hackathon-mpit-kitwit/internal/backend"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/identity"
	"go.uber.org/zap"
)

// StatusAPI is the backend call the reporter depends on.
type StatusAPI interface {
	UpdateStatus(ctx context.Context, userID int64, userName string, online bool) (*backend.UserStatus, bool, error)
}

// Identity supplies the local user, if available.
type Identity interface {
	Current() (identity.User, bool)
}

// Reporter announces the local user's online/offline status. Presence is
// not user-critical: failures are logged and never surfaced as state
// errors.
type Reporter struct {
	api      StatusAPI
	identity Identity
	logger   *zap.Logger
}

// NewReporter creates a presence reporter.
func NewReporter(api StatusAPI, id Identity, logger *zap.Logger) *Reporter {
	return &Reporter{api: api, identity: id, logger: logger}
}

// Report fires a best-effort status update. No-op while identity is
// unavailable.
func (r *Reporter) Report(ctx context.Context, online bool) {
	user, ok := r.identity.Current()
	if !ok {
		return
	}

	if _, _, err := r.api.UpdateStatus(ctx, user.ID, user.Name, online); err != nil {
		r.logger.Warn("presence update failed",
			zap.Bool("online", online),
			zap.Error(err))
		return
	}
	r.logger.Info("presence reported", zap.Bool("online", online))
}
