package service

import (
	"context"
	"log/slog"

	"github.com/bornholm/scheduler/internal/core/model"
	"github.com/bornholm/scheduler/internal/core/port"
	"github.com/bornholm/scheduler/internal/metrics"
	"github.com/pkg/errors"
)

type UserManager struct {
	transactor port.Transactor
	users      port.UserStore
	schedules  port.ScheduleStore
	comments   port.CommentStore
	sessions   port.SessionStore
	hasher     PasswordHasher
}

type UserUpdate struct {
	Username        string
	Email           string
	CurrentPassword string
	NewPassword     model.Optional[string]
}

func (m *UserManager) Register(ctx context.Context, username, email, password string) (model.PersistedUser, error) {
	if err := validateInput(registrationInput{Username: username, Email: email, Password: password}); err != nil {
		return nil, err
	}

	hash, err := m.hasher.Hash(password)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	user := model.NewUser(username, email, hash)

	err = m.transactor.Transact(ctx, func(ctx context.Context) error {
		if err := m.assertUnique(ctx, user); err != nil {
			return errors.WithStack(err)
		}

		if err := m.users.SaveUser(ctx, user); err != nil {
			return m.translateConflict(ctx, user, err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	metrics.RegisteredUsers.Inc()

	slog.InfoContext(ctx, "user registered", slog.String("user", model.UserString(user)))

	return m.GetUser(ctx, user.ID())
}

func (m *UserManager) GetUser(ctx context.Context, userID model.UserID) (model.PersistedUser, error) {
	user, err := m.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, translateNotFound(err, ErrUserNotFound)
	}

	return user, nil
}

func (m *UserManager) ListUsers(ctx context.Context) ([]model.PersistedUser, error) {
	users, err := m.users.QueryUsers(ctx, port.QueryUsersOptions{})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return users, nil
}

// UpdateUser changes the profile of the user. The current password must be
// given. The password is changed only when update.NewPassword is set.
func (m *UserManager) UpdateUser(ctx context.Context, identity model.Identity, userID model.UserID, update UserUpdate) (model.PersistedUser, error) {
	input := profileInput{
		Username:        update.Username,
		Email:           update.Email,
		CurrentPassword: update.CurrentPassword,
	}
	if newPassword, ok := update.NewPassword.Get(); ok {
		input.NewPassword = &newPassword
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	err := m.transactor.Transact(ctx, func(ctx context.Context) error {
		user, err := m.getOwnUser(ctx, identity, userID, update.CurrentPassword)
		if err != nil {
			return errors.WithStack(err)
		}

		hash := user.PasswordHash()
		if newPassword, ok := update.NewPassword.Get(); ok {
			hash, err = m.hasher.Hash(newPassword)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		updated := model.NewBaseUser(user.ID(), update.Username, update.Email, hash)

		if err := m.assertUnique(ctx, updated); err != nil {
			return errors.WithStack(err)
		}

		if err := m.users.SaveUser(ctx, updated); err != nil {
			return m.translateConflict(ctx, updated, err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return m.GetUser(ctx, userID)
}

func (m *UserManager) ChangePassword(ctx context.Context, identity model.Identity, userID model.UserID, currentPassword, newPassword string) error {
	if err := validateInput(passwordChangeInput{CurrentPassword: currentPassword, NewPassword: newPassword}); err != nil {
		return err
	}

	hash, err := m.hasher.Hash(newPassword)
	if err != nil {
		return errors.WithStack(err)
	}

	err = m.transactor.Transact(ctx, func(ctx context.Context) error {
		user, err := m.getOwnUser(ctx, identity, userID, currentPassword)
		if err != nil {
			return errors.WithStack(err)
		}

		updated := model.NewBaseUser(user.ID(), user.Username(), user.Email(), hash)

		if err := m.users.SaveUser(ctx, updated); err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DeleteUser deletes the account of the authenticated user and revokes its
// sessions. Schedules and comments are not deleted along with their owner,
// the deletion is refused while the user still owns some.
func (m *UserManager) DeleteUser(ctx context.Context, identity model.Identity, userID model.UserID) error {
	err := m.transactor.Transact(ctx, func(ctx context.Context) error {
		if _, err := m.users.GetUserByID(ctx, userID); err != nil {
			return translateNotFound(err, ErrUserNotFound)
		}

		if identity.UserID != userID {
			return errors.WithStack(ErrForbidden)
		}

		schedules, err := m.schedules.CountUserSchedules(ctx, userID)
		if err != nil {
			return errors.WithStack(err)
		}

		comments, err := m.comments.CountUserComments(ctx, userID)
		if err != nil {
			return errors.WithStack(err)
		}

		if schedules > 0 || comments > 0 {
			return errors.WithStack(ErrUserHasContent)
		}

		if err := m.sessions.DeleteUserSessions(ctx, userID); err != nil {
			return errors.WithStack(err)
		}

		if err := m.users.DeleteUser(ctx, userID); err != nil {
			return translateNotFound(err, ErrUserNotFound)
		}

		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	metrics.DeletedUsers.Inc()

	return nil
}

func (m *UserManager) getOwnUser(ctx context.Context, identity model.Identity, userID model.UserID, currentPassword string) (model.PersistedUser, error) {
	user, err := m.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, translateNotFound(err, ErrUserNotFound)
	}

	if identity.UserID != user.ID() {
		return nil, errors.WithStack(ErrForbidden)
	}

	matches, err := m.hasher.Verify(user.PasswordHash(), currentPassword)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if !matches {
		return nil, errors.WithStack(ErrInvalidCredentials)
	}

	return user, nil
}

// assertUnique checks that no other user already uses the email or the
// username of the given user. The email is checked first.
func (m *UserManager) assertUnique(ctx context.Context, user model.User) error {
	existing, err := m.users.FindUserByEmail(ctx, user.Email())
	if err != nil && !errors.Is(err, port.ErrNotFound) {
		return errors.WithStack(err)
	}

	if existing != nil && existing.ID() != user.ID() {
		return errors.WithStack(ErrDuplicateEmail)
	}

	existing, err = m.users.FindUserByUsername(ctx, user.Username())
	if err != nil && !errors.Is(err, port.ErrNotFound) {
		return errors.WithStack(err)
	}

	if existing != nil && existing.ID() != user.ID() {
		return errors.WithStack(ErrDuplicateUsername)
	}

	return nil
}

func (m *UserManager) translateConflict(ctx context.Context, user model.User, err error) error {
	if !errors.Is(err, port.ErrConflict) {
		return errors.WithStack(err)
	}

	if err := m.assertUnique(ctx, user); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(ErrDuplicateEmail)
}

func NewUserManager(transactor port.Transactor, users port.UserStore, schedules port.ScheduleStore, comments port.CommentStore, sessions port.SessionStore, hasher PasswordHasher) *UserManager {
	return &UserManager{
		transactor: transactor,
		users:      users,
		schedules:  schedules,
		comments:   comments,
		sessions:   sessions,
		hasher:     hasher,
	}
}
