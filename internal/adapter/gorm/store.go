package gorm

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/bornholm/scheduler/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Store struct {
	getDatabase func(ctx context.Context) (*gorm.DB, error)
	backoff     time.Duration
	maxRetries  int
}

type contextKey string

const keyTransaction contextKey = "transaction"

func contextTransaction(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(keyTransaction).(*gorm.DB)
	return tx, ok
}

// Transact implements port.Transactor.
func (s *Store) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		return fn(ctx)
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// withRetry runs fn inside a transaction, retrying the whole transaction
// when it fails with one of the given sqlite error codes. If ctx already
// carries a transaction, fn joins it and no retry happens at this level.
func (s *Store) withRetry(ctx context.Context, fn func(ctx context.Context, db *gorm.DB) error, codes ...sqlite3.ErrorCode) error {
	if tx, ok := contextTransaction(ctx); ok {
		return fn(ctx, tx)
	}

	db, err := s.getDatabase(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	backoff := s.backoff
	retries := 0

	for {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			txCtx := context.WithValue(ctx, keyTransaction, tx)

			if err := fn(txCtx, tx); err != nil {
				return errors.WithStack(err)
			}

			return nil
		})
		if err != nil {
			if retries >= s.maxRetries {
				return errors.WithStack(err)
			}

			var sqliteErr *sqlite3.Error
			if errors.As(err, &sqliteErr) {
				if !slices.Contains(codes, sqliteErr.Code()) {
					return errors.WithStack(err)
				}

				slog.DebugContext(ctx, "transaction failed, will retry", slog.Int("retries", retries), slog.Duration("backoff", backoff), slog.Any("error", errors.WithStack(err)))

				retries++

				select {
				case <-ctx.Done():
					return errors.WithStack(ctx.Err())
				case <-time.After(backoff):
				}

				backoff *= 2
				continue
			}

			return errors.WithStack(err)
		}

		return nil
	}
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		getDatabase: createGetDatabase(db, &User{}, &Schedule{}, &Comment{}, &Session{}),
		backoff:     100 * time.Millisecond,
		maxRetries:  10,
	}
}

var (
	_ port.Transactor    = &Store{}
	_ port.UserStore     = &Store{}
	_ port.ScheduleStore = &Store{}
	_ port.CommentStore  = &Store{}
	_ port.SessionStore  = &Store{}
)

func createGetDatabase(db *gorm.DB, models ...any) func(ctx context.Context) (*gorm.DB, error) {
	var (
		migrateOnce sync.Once
		migrateErr  error
	)

	return func(ctx context.Context) (*gorm.DB, error) {
		migrateOnce.Do(func() {
			if err := db.AutoMigrate(models...); err != nil {
				migrateErr = errors.WithStack(err)
				return
			}
		})
		if migrateErr != nil {
			return nil, errors.WithStack(migrateErr)
		}

		return db, nil
	}
}

func isUniqueConstraintError(err error) bool {
	var sqliteErr *sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	return sqliteErr.ExtendedCode() == sqlite3.CONSTRAINT_UNIQUE || sqliteErr.ExtendedCode() == sqlite3.CONSTRAINT_PRIMARYKEY
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.WithStack(err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
