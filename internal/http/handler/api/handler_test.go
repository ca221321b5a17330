package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	gormAdapter "github.com/bornholm/scheduler/internal/adapter/gorm"
	"github.com/bornholm/scheduler/internal/core/service"
	"github.com/bornholm/scheduler/internal/http/handler/api"
	"github.com/bornholm/scheduler/internal/http/middleware/authn/session"
	"github.com/bornholm/scheduler/internal/http/middleware/ratelimit"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/ncruces/go-sqlite3/embed"
)

const testPassword = "passw0rd!"

func newTestServer(t *testing.T, funcs ...api.OptionFunc) *httptest.Server {
	t.Helper()

	db, err := gormAdapter.OpenSQLite(filepath.Join(t.TempDir(), "test.sqlite"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store := gormAdapter.NewStore(db)
	hasher := service.NewBcryptHasher(bcrypt.MinCost)

	authManager, err := service.NewAuthManager(store, store, hasher, service.WithAuthManagerSessionTTL(time.Hour))
	require.NoError(t, err)

	cookieStore := sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))

	handler := api.NewHandler(
		service.NewUserManager(store, store, store, store, store, hasher),
		authManager,
		service.NewScheduleManager(store, store, store, store),
		service.NewCommentManager(store, store, store, store),
		session.NewAuthenticator(cookieStore, "test_session", authManager),
		funcs...,
	)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", handler))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

type testClient struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
}

func newTestClient(t *testing.T, server *httptest.Server) *testClient {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testClient{
		t:      t,
		server: server,
		client: &http.Client{Jar: jar},
	}
}

func (c *testClient) do(method, path string, body any, out any) int {
	c.t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&payload).Encode(body))
	}

	req, err := http.NewRequest(method, c.server.URL+path, &payload)
	require.NoError(c.t, err)

	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	require.NoError(c.t, err)

	defer res.Body.Close()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(res.Body).Decode(out))
	}

	return res.StatusCode
}

func (c *testClient) signUp(username string) api.User {
	c.t.Helper()

	var user api.User
	status := c.do(http.MethodPost, "/api/users", api.RegisterRequest{
		Username: username,
		Email:    username + "@example.net",
		Password: testPassword,
	}, &user)
	require.Equal(c.t, http.StatusCreated, status)

	status = c.do(http.MethodPost, "/api/users/login", api.LoginRequest{
		Email:    username + "@example.net",
		Password: testPassword,
	}, nil)
	require.Equal(c.t, http.StatusOK, status)

	return user
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/schedules"},
		{http.MethodGet, "/api/schedules/paged"},
		{http.MethodPost, "/api/schedules"},
		{http.MethodGet, "/api/users"},
		{http.MethodPost, "/api/users/logout"},
		{http.MethodGet, "/api/unknown"},
	}

	for _, p := range paths {
		var res api.ErrorResponse
		status := client.do(p.method, p.path, nil, &res)

		assert.Equal(t, http.StatusUnauthorized, status, "%s %s", p.method, p.path)
		assert.Equal(t, api.KindUnauthorized, res.Error, "%s %s", p.method, p.path)
	}
}

func TestScheduleLifecycle(t *testing.T) {
	server := newTestServer(t)
	alice := newTestClient(t, server)
	bob := newTestClient(t, server)

	aliceUser := alice.signUp("alice")
	bob.signUp("bob")

	var schedule api.Schedule
	status := alice.do(http.MethodPost, "/api/schedules", api.ScheduleRequest{Title: "Standup", Content: "Daily at 9"}, &schedule)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, aliceUser.ID, schedule.UserID)
	assert.Equal(t, "alice", schedule.Username)

	var comment api.Comment
	status = bob.do(http.MethodPost, "/api/schedules/"+schedule.ID+"/comments", api.CommentRequest{Content: "See you there"}, &comment)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, schedule.ID, comment.ScheduleID)
	assert.Equal(t, "bob", comment.Username)

	var page api.SchedulePageResponse
	status = bob.do(http.MethodGet, "/api/schedules/paged?page=1&size=10", nil, &page)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(1), page.Content[0].CommentCount)
	assert.Equal(t, int64(1), page.TotalElements)
	assert.Equal(t, 1, page.TotalPages)

	var errRes api.ErrorResponse
	status = bob.do(http.MethodPut, "/api/schedules/"+schedule.ID, api.ScheduleRequest{Title: "Hijacked", Content: "-"}, &errRes)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, api.KindForbidden, errRes.Error)

	status = bob.do(http.MethodDelete, "/api/schedules/"+schedule.ID, nil, &errRes)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, api.KindForbidden, errRes.Error)

	status = alice.do(http.MethodDelete, "/api/schedules/"+schedule.ID, nil, nil)
	require.Equal(t, http.StatusOK, status)

	status = alice.do(http.MethodGet, "/api/schedules/"+schedule.ID+"/comments", nil, &errRes)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, api.KindScheduleNotFound, errRes.Error)
}

func TestErrorPayloads(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)

	client.signUp("alice")

	var res api.ErrorResponse

	status := client.do(http.MethodPost, "/api/users", api.RegisterRequest{
		Username: "waytoolongname",
		Email:    "not-an-email",
		Password: "short",
	}, &res)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, api.KindValidationFailed, res.Error)
	assert.Contains(t, res.Fields, "username")
	assert.Contains(t, res.Fields, "email")
	assert.Contains(t, res.Fields, "password")

	res = api.ErrorResponse{}
	status = client.do(http.MethodPost, "/api/users", api.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.net",
		Password: testPassword,
	}, &res)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, api.KindDuplicateEmail, res.Error)

	res = api.ErrorResponse{}
	status = client.do(http.MethodPost, "/api/users/login", api.LoginRequest{
		Email:    "alice@example.net",
		Password: "wr0ng!pass",
	}, &res)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, api.KindInvalidCredentials, res.Error)

	res = api.ErrorResponse{}
	status = client.do(http.MethodGet, "/api/schedules/unknown", nil, &res)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, api.KindScheduleNotFound, res.Error)

	res = api.ErrorResponse{}
	status = client.do(http.MethodGet, "/api/unknown", nil, &res)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, api.KindNotFound, res.Error)
}

func TestMalformedBody(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/users", bytes.NewBufferString("{"))
	require.NoError(t, err)

	res, err := client.client.Do(req)
	require.NoError(t, err)

	defer res.Body.Close()

	var payload api.ErrorResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, api.KindValidationFailed, payload.Error)
}

func TestLogout(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)

	client.signUp("alice")

	status := client.do(http.MethodGet, "/api/schedules", nil, nil)
	require.Equal(t, http.StatusOK, status)

	status = client.do(http.MethodPost, "/api/users/logout", nil, nil)
	require.Equal(t, http.StatusOK, status)

	status = client.do(http.MethodGet, "/api/schedules", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLoginThrottle(t *testing.T) {
	server := newTestServer(t, api.WithThrottle(ratelimit.Middleware(
		ratelimit.WithLimit(time.Hour, 1),
		ratelimit.WithOnLimited(api.HandleTooManyRequests),
	)))
	client := newTestClient(t, server)

	login := api.LoginRequest{Email: "nobody@example.net", Password: testPassword}

	status := client.do(http.MethodPost, "/api/users/login", login, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var res api.ErrorResponse
	status = client.do(http.MethodPost, "/api/users/login", login, &res)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, api.KindTooManyRequests, res.Error)
}

func TestPagingParameters(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)

	client.signUp("alice")

	type testCase struct {
		Query         string
		ExpectedField string
	}

	testCases := []testCase{
		{Query: "page=abc&size=10", ExpectedField: "page"},
		{Query: "page=1&size=ten", ExpectedField: "size"},
		{Query: "page=1.5", ExpectedField: "page"},
		{Query: "page=0&size=10", ExpectedField: "page"},
		{Query: "page=1&size=-1", ExpectedField: "size"},
	}

	for _, tc := range testCases {
		t.Run(tc.Query, func(t *testing.T) {
			var res api.ErrorResponse
			status := client.do(http.MethodGet, "/api/schedules/paged?"+tc.Query, nil, &res)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, api.KindValidationFailed, res.Error)
			assert.Contains(t, res.Fields, tc.ExpectedField)
		})
	}

	var page api.SchedulePageResponse
	status := client.do(http.MethodGet, "/api/schedules/paged", nil, &page)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Size)
}

func TestTimestampFields(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)

	client.signUp("alice")

	var schedule map[string]any
	status := client.do(http.MethodPost, "/api/schedules", api.ScheduleRequest{Title: "Standup", Content: "Daily at 9"}, &schedule)
	require.Equal(t, http.StatusCreated, status)
	assert.Contains(t, schedule, "createdAt")
	assert.Contains(t, schedule, "modifiedAt")
	assert.NotContains(t, schedule, "updatedAt")

	var comment map[string]any
	status = client.do(http.MethodPost, "/api/schedules/"+schedule["id"].(string)+"/comments", api.CommentRequest{Content: "See you there"}, &comment)
	require.Equal(t, http.StatusCreated, status)
	assert.Contains(t, comment, "createdAt")
	assert.Contains(t, comment, "modifiedAt")
	assert.NotContains(t, comment, "updatedAt")
}
