package gorm

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/bornholm/scheduler/internal/core/model"
	"github.com/bornholm/scheduler/internal/core/port"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/ncruces/go-sqlite3/embed"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.sqlite")

	db, err := OpenSQLite(dsn, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return NewStore(db)
}

func createTestUser(t *testing.T, store *Store, username string) model.User {
	t.Helper()

	user := model.NewUser(username, username+"@example.net", "hash")
	if err := store.SaveUser(context.Background(), user); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return user
}

func TestUserStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice")

	found, err := store.FindUserByEmail(ctx, "alice@example.net")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := alice.ID(), found.ID(); e != g {
		t.Errorf("found.ID(): expected %v, got %v", e, g)
	}

	if found.CreatedAt().IsZero() {
		t.Errorf("found.CreatedAt(): expected non zero value")
	}

	if _, err := store.FindUserByUsername(ctx, "bob"); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("FindUserByUsername(bob): expected port.ErrNotFound, got %v", err)
	}

	duplicate := model.NewUser("other", "alice@example.net", "hash")
	if err := store.SaveUser(ctx, duplicate); !errors.Is(err, port.ErrConflict) {
		t.Errorf("SaveUser(duplicate): expected port.ErrConflict, got %v", err)
	}

	updated := model.NewBaseUser(alice.ID(), "alicia", "alicia@example.net", "new-hash")
	if err := store.SaveUser(ctx, updated); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	reloaded, err := store.GetUserByID(ctx, alice.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "alicia", reloaded.Username(); e != g {
		t.Errorf("reloaded.Username(): expected %v, got %v", e, g)
	}

	if e, g := found.CreatedAt().Unix(), reloaded.CreatedAt().Unix(); e != g {
		t.Errorf("reloaded.CreatedAt(): expected %v, got %v", e, g)
	}

	users, err := store.QueryUsers(ctx, port.QueryUsersOptions{})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(users); e != g {
		t.Errorf("len(users): expected %v, got %v", e, g)
	}

	if err := store.DeleteUser(ctx, alice.ID()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := store.DeleteUser(ctx, alice.ID()); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("DeleteUser(deleted): expected port.ErrNotFound, got %v", err)
	}
}

func TestScheduleSummariesPagination(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "owner")

	ids := make([]model.ScheduleID, 0, 15)
	for i := range 15 {
		schedule, err := store.CreateSchedule(ctx, model.NewSchedule(owner, fmt.Sprintf("schedule #%d", i), "content"))
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
		ids = append(ids, schedule.ID())
	}

	for i := range 3 {
		comment := model.NewComment(owner, ids[14], fmt.Sprintf("comment #%d", i))
		if _, err := store.CreateComment(ctx, comment); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	page, limit := 0, 10

	summaries, total, err := store.QueryScheduleSummaries(ctx, port.QuerySchedulesOptions{Page: &page, Limit: &limit})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(15), total; e != g {
		t.Errorf("total: expected %v, got %v", e, g)
	}

	if e, g := 10, len(summaries); e != g {
		t.Fatalf("len(summaries): expected %v, got %v", e, g)
	}

	for i, s := range summaries {
		if e, g := ids[14-i], s.Schedule.ID(); e != g {
			t.Errorf("summaries[%d].ID(): expected %v, got %v", i, e, g)
		}

		if e, g := "owner", s.Schedule.Owner().Username(); e != g {
			t.Errorf("summaries[%d].Owner().Username(): expected %v, got %v", i, e, g)
		}
	}

	if e, g := int64(3), summaries[0].CommentCount; e != g {
		t.Errorf("summaries[0].CommentCount: expected %v, got %v", e, g)
	}

	if e, g := int64(0), summaries[1].CommentCount; e != g {
		t.Errorf("summaries[1].CommentCount: expected %v, got %v", e, g)
	}

	page = 1

	summaries, _, err = store.QueryScheduleSummaries(ctx, port.QuerySchedulesOptions{Page: &page, Limit: &limit})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 5, len(summaries); e != g {
		t.Errorf("len(summaries): expected %v, got %v", e, g)
	}
}

func TestDeleteScheduleWithComments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "owner")

	schedule, err := store.CreateSchedule(ctx, model.NewSchedule(owner, "title", "content"))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	for i := range 2 {
		if _, err := store.CreateComment(ctx, model.NewComment(owner, schedule.ID(), fmt.Sprintf("comment #%d", i))); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	if err := store.DeleteScheduleWithComments(ctx, schedule.ID()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	count, err := store.CountScheduleComments(ctx, schedule.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(0), count; e != g {
		t.Errorf("count: expected %v, got %v", e, g)
	}

	if _, err := store.GetScheduleByID(ctx, schedule.ID()); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("GetScheduleByID(deleted): expected port.ErrNotFound, got %v", err)
	}

	if err := store.DeleteScheduleWithComments(ctx, schedule.ID()); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("DeleteScheduleWithComments(deleted): expected port.ErrNotFound, got %v", err)
	}
}

func TestTransactRollback(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "owner")

	schedule, err := store.CreateSchedule(ctx, model.NewSchedule(owner, "title", "content"))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	errAbort := errors.New("abort")

	err = store.Transact(ctx, func(ctx context.Context) error {
		if _, err := store.CreateComment(ctx, model.NewComment(owner, schedule.ID(), "comment")); err != nil {
			return errors.WithStack(err)
		}

		title := "updated"
		if _, err := store.UpdateSchedule(ctx, schedule.ID(), port.ScheduleUpdates{Title: &title}); err != nil {
			return errors.WithStack(err)
		}

		return errAbort
	})
	if !errors.Is(err, errAbort) {
		t.Fatalf("Transact(): expected errAbort, got %v", err)
	}

	count, err := store.CountScheduleComments(ctx, schedule.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(0), count; e != g {
		t.Errorf("count: expected %v, got %v", e, g)
	}

	reloaded, err := store.GetScheduleByID(ctx, schedule.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "title", reloaded.Title(); e != g {
		t.Errorf("reloaded.Title(): expected %v, got %v", e, g)
	}
}

func TestCommentsOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "owner")

	schedule, err := store.CreateSchedule(ctx, model.NewSchedule(owner, "title", "content"))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	ids := make([]model.CommentID, 0, 3)
	for i := range 3 {
		comment, err := store.CreateComment(ctx, model.NewComment(owner, schedule.ID(), fmt.Sprintf("comment #%d", i)))
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
		ids = append(ids, comment.ID())
	}

	comments, err := store.QueryScheduleComments(ctx, schedule.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 3, len(comments); e != g {
		t.Fatalf("len(comments): expected %v, got %v", e, g)
	}

	for i, c := range comments {
		if e, g := ids[2-i], c.ID(); e != g {
			t.Errorf("comments[%d].ID(): expected %v, got %v", i, e, g)
		}
	}
}

func TestSessionStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, store, "user")

	now := time.Now()

	expired := model.NewSession("expired", user, now.Add(-time.Minute))
	active := model.NewSession("active", user, now.Add(time.Hour))

	for _, s := range []model.Session{expired, active} {
		if err := store.CreateSession(ctx, s); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	purged, err := store.PurgeExpiredSessions(ctx, now)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(1), purged; e != g {
		t.Errorf("purged: expected %v, got %v", e, g)
	}

	session, err := store.GetSessionByID(ctx, "active")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := user.ID(), session.UserID(); e != g {
		t.Errorf("session.UserID(): expected %v, got %v", e, g)
	}

	if e, g := active.ExpiresAt().UnixMilli(), session.ExpiresAt().UnixMilli(); e != g {
		t.Errorf("session.ExpiresAt(): expected %v, got %v", e, g)
	}

	if err := store.DeleteUserSessions(ctx, user.ID()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := store.GetSessionByID(ctx, "active"); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("GetSessionByID(deleted): expected port.ErrNotFound, got %v", err)
	}
}
