package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Response struct {
	Status string `json:"status"`
}

type Handler struct {
	pinger  Pinger
	timeout time.Duration
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	res := Response{Status: "ok"}

	if err := h.pinger.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "health check failed", slogx.Error(errors.WithStack(err)))
		status = http.StatusServiceUnavailable
		res.Status = "unavailable"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.ErrorContext(ctx, "could not encode response", slogx.Error(errors.WithStack(err)))
	}
}

func NewHandler(pinger Pinger, timeout time.Duration) *Handler {
	return &Handler{
		pinger:  pinger,
		timeout: timeout,
	}
}

var _ http.Handler = &Handler{}
