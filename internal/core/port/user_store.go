package port

import (
	"context"

	"github.com/bornholm/scheduler/internal/core/model"
)

type UserStore interface {
	// GetUserByID finds a user by its ID, or returns ErrNotFound if not found
	GetUserByID(ctx context.Context, userID model.UserID) (model.PersistedUser, error)

	// FindUserByEmail finds a user by its email, or returns ErrNotFound if not found
	FindUserByEmail(ctx context.Context, email string) (model.PersistedUser, error)

	// FindUserByUsername finds a user by its username, or returns ErrNotFound if not found
	FindUserByUsername(ctx context.Context, username string) (model.PersistedUser, error)

	// QueryUsers lists users ordered by creation date
	QueryUsers(ctx context.Context, opts QueryUsersOptions) ([]model.PersistedUser, error)

	// SaveUser creates or updates a user. It returns ErrConflict when the
	// email or the username is already used by another user.
	SaveUser(ctx context.Context, user model.User) error

	// DeleteUser deletes a user by its ID, or returns ErrNotFound if not found
	DeleteUser(ctx context.Context, userID model.UserID) error
}

type QueryUsersOptions struct {
	Page  *int
	Limit *int
}
