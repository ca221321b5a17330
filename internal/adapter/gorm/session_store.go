package gorm

import (
	"context"
	"time"

	"github.com/bornholm/scheduler/internal/core/model"
	"github.com/bornholm/scheduler/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateSession implements port.SessionStore.
func (s *Store) CreateSession(ctx context.Context, session model.Session) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Omit(clause.Associations).Create(fromSession(session)).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// GetSessionByID implements port.SessionStore.
func (s *Store) GetSessionByID(ctx context.Context, id model.SessionID) (model.Session, error) {
	var session Session

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&session, "id = ?", string(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedSession{&session}, nil
}

// DeleteSession implements port.SessionStore.
func (s *Store) DeleteSession(ctx context.Context, id model.SessionID) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Delete(&Session{}, "id = ?", string(id)).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DeleteUserSessions implements port.SessionStore.
func (s *Store) DeleteUserSessions(ctx context.Context, userID model.UserID) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Delete(&Session{}, "user_id = ?", string(userID)).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// PurgeExpiredSessions implements port.SessionStore.
func (s *Store) PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	var purged int64

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		result := db.Delete(&Session{}, "expires_at <= ?", now.UnixMilli())
		if result.Error != nil {
			return errors.WithStack(result.Error)
		}

		purged = result.RowsAffected

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return purged, nil
}
