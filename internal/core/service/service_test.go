package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	gormAdapter "github.com/bornholm/scheduler/internal/adapter/gorm"
	"github.com/bornholm/scheduler/internal/core/model"
	"github.com/bornholm/scheduler/internal/core/service"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/ncruces/go-sqlite3/embed"
)

const testPassword = "passw0rd!"

type testEnv struct {
	store     *gormAdapter.Store
	users     *service.UserManager
	auth      *service.AuthManager
	schedules *service.ScheduleManager
	comments  *service.CommentManager
	now       time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gormAdapter.OpenSQLite(filepath.Join(t.TempDir(), "test.sqlite"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store := gormAdapter.NewStore(db)
	hasher := service.NewBcryptHasher(bcrypt.MinCost)

	env := &testEnv{
		store:     store,
		users:     service.NewUserManager(store, store, store, store, store, hasher),
		schedules: service.NewScheduleManager(store, store, store, store),
		comments:  service.NewCommentManager(store, store, store, store),
		now:       time.Now(),
	}

	env.auth, err = service.NewAuthManager(store, store, hasher,
		service.WithAuthManagerSessionTTL(time.Hour),
		service.WithAuthManagerClock(func() time.Time { return env.now }),
	)
	require.NoError(t, err)

	return env
}

func (e *testEnv) register(t *testing.T, username string) model.Identity {
	t.Helper()

	user, err := e.users.Register(context.Background(), username, username+"@example.net", testPassword)
	require.NoError(t, err)

	return model.NewIdentity(user)
}
