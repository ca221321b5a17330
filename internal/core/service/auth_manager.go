package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/scheduler/internal/core/model"
	"github.com/bornholm/scheduler/internal/core/port"
	"github.com/bornholm/scheduler/internal/crypto"
	"github.com/bornholm/scheduler/internal/metrics"
	"github.com/pkg/errors"
)

type AuthManagerOptions struct {
	SessionTTL time.Duration
	Now        func() time.Time
}

type AuthManagerOptionFunc func(opts *AuthManagerOptions)

func NewAuthManagerOptions(funcs ...AuthManagerOptionFunc) *AuthManagerOptions {
	opts := &AuthManagerOptions{
		SessionTTL: 24 * time.Hour,
		Now:        time.Now,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithAuthManagerSessionTTL(ttl time.Duration) AuthManagerOptionFunc {
	return func(opts *AuthManagerOptions) {
		opts.SessionTTL = ttl
	}
}

func WithAuthManagerClock(now func() time.Time) AuthManagerOptionFunc {
	return func(opts *AuthManagerOptions) {
		opts.Now = now
	}
}

// AuthManager is the only component creating sessions, hence the only way
// for a user identity to enter the trust boundary.
type AuthManager struct {
	users    port.UserStore
	sessions port.SessionStore
	hasher   PasswordHasher

	sessionTTL time.Duration
	now        func() time.Time

	// Compared against when the email is unknown, so that both failure
	// paths cost a hash verification
	dummyHash string
}

// Login verifies the credentials and opens a new session. The previous
// session of the client, if any, is revoked.
func (m *AuthManager) Login(ctx context.Context, email, password string, previous model.SessionID) (model.Session, error) {
	if err := validateInput(credentialsInput{Email: email, Password: password}); err != nil {
		return nil, err
	}

	session, err := m.login(ctx, email, password, previous)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			metrics.Logins.WithLabelValues(metrics.StatusFailure).Inc()
		}

		return nil, errors.WithStack(err)
	}

	metrics.Logins.WithLabelValues(metrics.StatusSuccess).Inc()

	return session, nil
}

func (m *AuthManager) login(ctx context.Context, email, password string, previous model.SessionID) (model.Session, error) {
	user, err := m.users.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, port.ErrNotFound) {
		return nil, errors.WithStack(err)
	}

	if user == nil {
		if _, err := m.hasher.Verify(m.dummyHash, password); err != nil {
			slog.WarnContext(ctx, "could not verify dummy hash", slogx.Error(err))
		}

		return nil, errors.WithStack(ErrInvalidCredentials)
	}

	matches, err := m.hasher.Verify(user.PasswordHash(), password)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if !matches {
		return nil, errors.WithStack(ErrInvalidCredentials)
	}

	if previous != "" {
		if err := m.sessions.DeleteSession(ctx, previous); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	token, err := crypto.GenerateSecureToken()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	session := model.NewSession(model.SessionID(token), user, m.now().Add(m.sessionTTL))

	if err := m.sessions.CreateSession(ctx, session); err != nil {
		return nil, errors.WithStack(err)
	}

	slog.InfoContext(ctx, "user logged in", slog.String("user", model.UserString(user)))

	return session, nil
}

func (m *AuthManager) Logout(ctx context.Context, sessionID model.SessionID) error {
	if sessionID == "" {
		return nil
	}

	if err := m.sessions.DeleteSession(ctx, sessionID); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// ResolveSession returns the identity bound to a live session. Unknown and
// expired sessions, as well as sessions of deleted users, are rejected with
// ErrUnauthorized.
func (m *AuthManager) ResolveSession(ctx context.Context, sessionID model.SessionID) (model.Identity, error) {
	if sessionID == "" {
		return model.Identity{}, errors.WithStack(ErrUnauthorized)
	}

	session, err := m.sessions.GetSessionByID(ctx, sessionID)
	if err != nil {
		return model.Identity{}, translateNotFound(err, ErrUnauthorized)
	}

	if model.IsSessionExpired(session, m.now()) {
		if err := m.sessions.DeleteSession(ctx, sessionID); err != nil {
			slog.WarnContext(ctx, "could not delete expired session", slogx.Error(err))
		}

		return model.Identity{}, errors.WithStack(ErrUnauthorized)
	}

	user, err := m.users.GetUserByID(ctx, session.UserID())
	if err != nil {
		return model.Identity{}, translateNotFound(err, ErrUnauthorized)
	}

	return model.NewIdentity(user), nil
}

func (m *AuthManager) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	purged, err := m.sessions.PurgeExpiredSessions(ctx, m.now())
	if err != nil {
		return 0, errors.WithStack(err)
	}

	metrics.PurgedSessions.Add(float64(purged))

	return purged, nil
}

func NewAuthManager(users port.UserStore, sessions port.SessionStore, hasher PasswordHasher, funcs ...AuthManagerOptionFunc) (*AuthManager, error) {
	opts := NewAuthManagerOptions(funcs...)

	secret, err := crypto.GenerateSecureToken()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	dummyHash, err := hasher.Hash(secret[:MaxPasswordLength])
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &AuthManager{
		users:      users,
		sessions:   sessions,
		hasher:     hasher,
		sessionTTL: opts.SessionTTL,
		now:        opts.Now,
		dummyHash:  dummyHash,
	}, nil
}
