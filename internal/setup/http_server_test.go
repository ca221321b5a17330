package setup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/bornholm/scheduler/internal/config"
	"github.com/pkg/errors"

	_ "github.com/ncruces/go-sqlite3/embed"
)

func TestNewHTTPServerFromConfig(t *testing.T) {
	t.Setenv("SCHEDULER_STORAGE_DATABASE_DSN", filepath.Join(t.TempDir(), "test.sqlite"))
	t.Setenv("SCHEDULER_STORAGE_DATABASE_BCRYPT_COST", "4")
	t.Setenv("SCHEDULER_METRICS_BASIC_AUTH_USERNAME", "prometheus")
	t.Setenv("SCHEDULER_METRICS_BASIC_AUTH_PASSWORD", "secret")

	conf, err := config.Parse()
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	ctx := context.Background()

	server, err := NewHTTPServerFromConfig(ctx, conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	type testCase struct {
		Path           string
		Credentials    bool
		ExpectedStatus int
	}

	testCases := []testCase{
		{Path: "/healthz", ExpectedStatus: http.StatusOK},
		{Path: "/api/schedules", ExpectedStatus: http.StatusUnauthorized},
		{Path: "/metrics", ExpectedStatus: http.StatusUnauthorized},
		{Path: "/metrics", Credentials: true, ExpectedStatus: http.StatusOK},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest(http.MethodGet, tc.Path, nil)
		if tc.Credentials {
			req.SetBasicAuth("prometheus", "secret")
		}

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		if e, g := tc.ExpectedStatus, rec.Code; e != g {
			t.Errorf("GET %s: expected status %v, got %v", tc.Path, e, g)
		}
	}

	purged, err := PurgeExpiredSessions(ctx, conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(0), purged; e != g {
		t.Errorf("purged: expected %v, got %v", e, g)
	}
}
