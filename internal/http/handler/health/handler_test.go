package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
)

type pingerFunc func(ctx context.Context) error

func (fn pingerFunc) Ping(ctx context.Context) error {
	return fn(ctx)
}

func TestHandler(t *testing.T) {
	type testCase struct {
		Name           string
		Err            error
		ExpectedStatus int
	}

	testCases := []testCase{
		{Name: "healthy", Err: nil, ExpectedStatus: http.StatusOK},
		{Name: "unhealthy", Err: errors.New("database is gone"), ExpectedStatus: http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			handler := NewHandler(pingerFunc(func(ctx context.Context) error { return tc.Err }), time.Second)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if e, g := tc.ExpectedStatus, rec.Code; e != g {
				t.Errorf("rec.Code: expected %v, got %v", e, g)
			}
		})
	}
}
