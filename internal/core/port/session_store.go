package port

import (
	"context"
	"time"

	"github.com/bornholm/scheduler/internal/core/model"
)

type SessionStore interface {
	CreateSession(ctx context.Context, session model.Session) error

	// GetSessionByID returns ErrNotFound if the session does not exist
	GetSessionByID(ctx context.Context, id model.SessionID) (model.Session, error)

	// DeleteSession is a no-op for unknown sessions
	DeleteSession(ctx context.Context, id model.SessionID) error

	DeleteUserSessions(ctx context.Context, userID model.UserID) error

	// PurgeExpiredSessions deletes every session expired at the given time
	// and returns the number of deleted sessions
	PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
