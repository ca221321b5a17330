package client

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// RateLimitTransport retries requests answered with 429 Too Many Requests,
// waiting as long as the Retry-After header asks.
type RateLimitTransport struct {
	Base        http.RoundTripper
	MaxRetries  int
	DefaultWait time.Duration
}

func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Base
	if transport == nil {
		transport = http.DefaultTransport
	}

	for attempt := 0; ; attempt++ {
		res, err := transport.RoundTrip(req)
		if err != nil {
			return nil, err
		}

		if res.StatusCode != http.StatusTooManyRequests || attempt >= t.MaxRetries {
			return res, nil
		}

		if req.Body != nil && req.GetBody == nil {
			return res, nil
		}

		io.Copy(io.Discard, res.Body)
		res.Body.Close()

		wait := t.retryAfter(res)

		slog.WarnContext(req.Context(), "rate limited, will retry", slog.Duration("wait", wait), slog.Int("attempt", attempt+1), slog.Int("max_retries", t.MaxRetries))

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(wait):
		}

		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, errors.Wrap(err, "could not rewind request body")
			}

			req.Body = body
		}
	}
}

func (t *RateLimitTransport) retryAfter(res *http.Response) time.Duration {
	raw := res.Header.Get("Retry-After")
	if raw == "" {
		return t.DefaultWait
	}

	if seconds, err := strconv.Atoi(raw); err == nil {
		wait := time.Duration(seconds) * time.Second
		jitter := time.Duration(rand.Int64N(int64(wait)/4 + 1))
		return wait + jitter
	}

	if date, err := http.ParseTime(raw); err == nil {
		return time.Until(date)
	}

	return t.DefaultWait
}

var _ http.RoundTripper = &RateLimitTransport{}
