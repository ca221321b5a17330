package setup

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/scheduler/internal/config"
	"github.com/pkg/errors"
)

// PurgeExpiredSessions removes the sessions past their expiry and returns
// how many were removed.
func PurgeExpiredSessions(ctx context.Context, conf *config.Config) (int64, error) {
	authManager, err := getAuthManagerFromConfig(ctx, conf)
	if err != nil {
		return 0, errors.Wrap(err, "could not create auth manager from config")
	}

	purged, err := authManager.PurgeExpiredSessions(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return purged, nil
}

// RunSessionPurger purges expired sessions every configured interval until
// ctx is done. A zero interval disables it.
func RunSessionPurger(ctx context.Context, conf *config.Config) {
	interval := conf.HTTP.Session.PurgeInterval
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := PurgeExpiredSessions(ctx, conf)
			if err != nil {
				slog.ErrorContext(ctx, "could not purge expired sessions", slogx.Error(err))
				continue
			}

			slog.DebugContext(ctx, "expired sessions purged", slog.Int64("purged", purged))
		}
	}
}
