package gorm

import (
	"context"

	"github.com/bornholm/scheduler/internal/core/model"
	"github.com/bornholm/scheduler/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetUserByID implements port.UserStore.
func (s *Store) GetUserByID(ctx context.Context, userID model.UserID) (model.PersistedUser, error) {
	return s.findUser(ctx, "id = ?", string(userID))
}

// FindUserByEmail implements port.UserStore.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (model.PersistedUser, error) {
	return s.findUser(ctx, "email = ?", email)
}

// FindUserByUsername implements port.UserStore.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (model.PersistedUser, error) {
	return s.findUser(ctx, "username = ?", username)
}

func (s *Store) findUser(ctx context.Context, query string, args ...any) (model.PersistedUser, error) {
	var user User

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Where(query, args...).First(&user).Error; err != nil {
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

	return &wrappedUser{&user}, nil
}

// QueryUsers implements port.UserStore.
func (s *Store) QueryUsers(ctx context.Context, opts port.QueryUsersOptions) ([]model.PersistedUser, error) {
	var users []*User

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		query := db.Model(&User{})

		if opts.Page != nil {
			limit := 10
			if opts.Limit != nil {
				limit = *opts.Limit
			}
			query = query.Offset(*opts.Page * limit)
		}

		if opts.Limit != nil {
			query = query.Limit(*opts.Limit)
		}

		query = query.Order("created_at ASC").Order("id ASC")

		if err := query.Find(&users).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	wrappedUsers := make([]model.PersistedUser, 0, len(users))
	for _, u := range users {
		wrappedUsers = append(wrappedUsers, &wrappedUser{u})
	}

	return wrappedUsers, nil
}

// SaveUser implements port.UserStore.
func (s *Store) SaveUser(ctx context.Context, user model.User) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		gormUser := fromUser(user)
		now := nowNano()
		gormUser.CreatedAt = now
		gormUser.UpdatedAt = now

		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "email", "password_hash", "updated_at"}),
		}).Omit(clause.Associations).Create(gormUser).Error
		if err != nil {
			if isUniqueConstraintError(err) {
				return errors.WithStack(port.ErrConflict)
			}

			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DeleteUser implements port.UserStore.
func (s *Store) DeleteUser(ctx context.Context, userID model.UserID) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Delete(&Session{}, "user_id = ?", string(userID)).Error; err != nil {
			return errors.WithStack(err)
		}

		result := db.Delete(&User{}, "id = ?", string(userID))
		if result.Error != nil {
			return errors.WithStack(result.Error)
		}

		if result.RowsAffected == 0 {
			return errors.WithStack(port.ErrNotFound)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}
