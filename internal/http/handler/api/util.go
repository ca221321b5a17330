package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/scheduler/internal/core/model"
	"github.com/bornholm/scheduler/internal/core/service"
	httpCtx "github.com/bornholm/scheduler/internal/http/context"
	"github.com/pkg/errors"
)

const maxBodySize = 1 << 20

func getQueryPage(query url.Values, defaultValue int) (int, error) {
	return getQueryInt(query, "page", defaultValue)
}

func getQuerySize(query url.Values, defaultValue int) (int, error) {
	return getQueryInt(query, "size", defaultValue)
}

// getQueryInt returns defaultValue when the parameter is absent and a
// *service.ValidationError when it is not an integer.
func getQueryInt(query url.Values, name string, defaultValue int) (int, error) {
	raw := query.Get(name)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, errors.WithStack(&service.ValidationError{
			Fields: map[string]string{name: "must be an integer"},
		})
	}

	return int(value), nil
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(v); err != nil {
		return errors.WithStack(&malformedBodyError{err: err})
	}

	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := encoder.Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", slogx.Error(errors.WithStack(err)))
	}
}

// identity returns the authenticated identity. Handlers calling it are
// always mounted behind the authn middleware.
func identity(r *http.Request) model.Identity {
	identity, _ := httpCtx.Identity(r.Context())
	return identity
}

type MessageResponse struct {
	Message string `json:"message"`
}
