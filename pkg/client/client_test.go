package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	gormAdapter "github.com/bornholm/scheduler/internal/adapter/gorm"
	"github.com/bornholm/scheduler/internal/core/service"
	"github.com/bornholm/scheduler/internal/http/handler/api"
	"github.com/bornholm/scheduler/internal/http/middleware/authn/session"
	"github.com/bornholm/scheduler/pkg/client"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/ncruces/go-sqlite3/embed"
)

func newTestClient(t *testing.T) *client.Client {
	t.Helper()

	db, err := gormAdapter.OpenSQLite(filepath.Join(t.TempDir(), "test.sqlite"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store := gormAdapter.NewStore(db)
	hasher := service.NewBcryptHasher(bcrypt.MinCost)

	authManager, err := service.NewAuthManager(store, store, hasher, service.WithAuthManagerSessionTTL(time.Hour))
	require.NoError(t, err)

	handler := api.NewHandler(
		service.NewUserManager(store, store, store, store, store, hasher),
		authManager,
		service.NewScheduleManager(store, store, store, store),
		service.NewCommentManager(store, store, store, store),
		session.NewAuthenticator(sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef")), "test_session", authManager),
	)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", handler))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	baseURL, err := url.Parse(server.URL)
	require.NoError(t, err)

	return client.New(client.WithBaseURL(baseURL))
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	_, err := c.ListSchedules(ctx, 1, 10)
	require.Error(t, err)
	assert.True(t, client.IsKind(err, api.KindUnauthorized))

	user, err := c.Register(ctx, "alice", "alice@example.net", "passw0rd!")
	require.NoError(t, err)

	_, err = c.Login(ctx, "alice@example.net", "passw0rd!")
	require.NoError(t, err)

	schedule, err := c.CreateSchedule(ctx, "Retro", "Every other friday")
	require.NoError(t, err)
	assert.Equal(t, user.ID, schedule.UserID)

	_, err = c.CreateComment(ctx, schedule.ID, "Bring snacks")
	require.NoError(t, err)

	page, err := c.ListSchedules(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(1), page.Content[0].CommentCount)

	_, err = c.CreateSchedule(ctx, "", "")
	require.Error(t, err)
	assert.True(t, client.IsKind(err, api.KindValidationFailed))

	require.NoError(t, c.DeleteSchedule(ctx, schedule.ID))

	_, err = c.GetSchedule(ctx, schedule.ID)
	assert.True(t, client.IsKind(err, api.KindScheduleNotFound))

	require.NoError(t, c.Logout(ctx))

	_, err = c.ListUsers(ctx)
	assert.True(t, client.IsKind(err, api.KindUnauthorized))
}
