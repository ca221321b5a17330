package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/bornholm/scheduler/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice")

	_, err := env.auth.Login(ctx, "alice@example.net", "wr0ng!pass", "")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, "unknown@example.net", testPassword, "")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	session, err := env.auth.Login(ctx, "alice@example.net", testPassword, "")
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, session.UserID())
	assert.Equal(t, "alice", session.Username())

	identity, err := env.auth.ResolveSession(ctx, session.ID())
	require.NoError(t, err)
	assert.Equal(t, alice, identity)

	// A protected operation succeeds with the resolved identity
	_, err = env.schedules.CreateSchedule(ctx, identity, "title", "content")
	assert.NoError(t, err)
}

func TestLoginRotatesSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.register(t, "alice")

	first, err := env.auth.Login(ctx, "alice@example.net", testPassword, "")
	require.NoError(t, err)

	second, err := env.auth.Login(ctx, "alice@example.net", testPassword, first.ID())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID(), second.ID())

	_, err = env.auth.ResolveSession(ctx, first.ID())
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = env.auth.ResolveSession(ctx, second.ID())
	assert.NoError(t, err)
}

func TestResolveSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.register(t, "alice")

	_, err := env.auth.ResolveSession(ctx, "")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = env.auth.ResolveSession(ctx, "unknown")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	session, err := env.auth.Login(ctx, "alice@example.net", testPassword, "")
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, session.ID()))

	_, err = env.auth.ResolveSession(ctx, session.ID())
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	session, err = env.auth.Login(ctx, "alice@example.net", testPassword, "")
	require.NoError(t, err)

	env.now = env.now.Add(2 * time.Hour)

	_, err = env.auth.ResolveSession(ctx, session.ID())
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestPurgeExpiredSessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.register(t, "alice")

	_, err := env.auth.Login(ctx, "alice@example.net", testPassword, "")
	require.NoError(t, err)

	purged, err := env.auth.PurgeExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), purged)

	env.now = env.now.Add(2 * time.Hour)

	purged, err = env.auth.PurgeExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}
