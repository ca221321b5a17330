package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/bornholm/scheduler/internal/http/handler/api"
	"github.com/pkg/errors"
)

func (c *Client) request(ctx context.Context, method string, path string, query url.Values, payload any, result any) error {
	url := c.baseURL.JoinPath("/api", path)
	if query != nil {
		url.RawQuery = query.Encode()
	}

	slog.DebugContext(ctx, "new client request",
		slog.String("method", method),
		slog.String("path", url.Path),
		slog.String("host", url.Host),
	)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.WithStack(err)
		}

		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url.String(), body)
	if err != nil {
		return errors.WithStack(err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}

	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusBadRequest {
		var errRes api.ErrorResponse
		if err := json.NewDecoder(res.Body).Decode(&errRes); err != nil {
			return errors.Errorf("unexpected response code %d (%s)", res.StatusCode, res.Status)
		}

		return errors.WithStack(&Error{
			StatusCode: res.StatusCode,
			Kind:       errRes.Error,
			Message:    errRes.Message,
			Fields:     errRes.Fields,
		})
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(result); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
