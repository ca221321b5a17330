package api

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/scheduler/internal/core/service"
	"github.com/pkg/errors"
)

const (
	KindValidationFailed   = "ValidationFailed"
	KindUserNotFound       = "UserNotFound"
	KindScheduleNotFound   = "ScheduleNotFound"
	KindCommentNotFound    = "CommentNotFound"
	KindForbidden          = "Forbidden"
	KindScheduleMismatch   = "ScheduleMismatch"
	KindDuplicateEmail     = "DuplicateEmail"
	KindDuplicateUsername  = "DuplicateUsername"
	KindInvalidCredentials = "InvalidCredentials"
	KindUserHasContent     = "UserHasContent"
	KindUnauthorized       = "Unauthorized"
	KindNotFound           = "NotFound"
	KindTooManyRequests    = "TooManyRequests"
	KindInternal           = "Internal"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type malformedBodyError struct {
	err error
}

func (e *malformedBodyError) Error() string {
	return "malformed request body: " + e.err.Error()
}

func (e *malformedBodyError) Unwrap() error {
	return e.err
}

var errorKinds = []struct {
	err  error
	kind string
}{
	{service.ErrUserNotFound, KindUserNotFound},
	{service.ErrScheduleNotFound, KindScheduleNotFound},
	{service.ErrCommentNotFound, KindCommentNotFound},
	{service.ErrForbidden, KindForbidden},
	{service.ErrScheduleMismatch, KindScheduleMismatch},
	{service.ErrDuplicateEmail, KindDuplicateEmail},
	{service.ErrDuplicateUsername, KindDuplicateUsername},
	{service.ErrInvalidCredentials, KindInvalidCredentials},
	{service.ErrUserHasContent, KindUserHasContent},
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, r, http.StatusBadRequest, ErrorResponse{
			Error:   KindValidationFailed,
			Message: service.ErrValidationFailed.Error(),
			Fields:  validationErr.Fields,
		})
		return
	}

	var malformedErr *malformedBodyError
	if errors.As(err, &malformedErr) {
		writeJSON(w, r, http.StatusBadRequest, ErrorResponse{
			Error:   KindValidationFailed,
			Message: malformedErr.Error(),
		})
		return
	}

	if errors.Is(err, service.ErrUnauthorized) {
		h.handleUnauthorized(w, r)
		return
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			writeJSON(w, r, http.StatusBadRequest, ErrorResponse{
				Error:   k.kind,
				Message: k.err.Error(),
			})
			return
		}
	}

	slog.ErrorContext(r.Context(), "unexpected error", slogx.Error(err))

	writeJSON(w, r, http.StatusInternalServerError, ErrorResponse{
		Error:   KindInternal,
		Message: "internal server error",
	})
}

func (h *Handler) handleUnauthorized(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusUnauthorized, ErrorResponse{
		Error:   KindUnauthorized,
		Message: "authentication required",
	})
}

func (h *Handler) handleAuthnError(w http.ResponseWriter, r *http.Request, err error) {
	h.handleError(w, r, err)
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusNotFound, ErrorResponse{
		Error:   KindNotFound,
		Message: "no such route",
	})
}

// HandleTooManyRequests answers requests rejected by the rate limiter.
func HandleTooManyRequests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusTooManyRequests, ErrorResponse{
		Error:   KindTooManyRequests,
		Message: "too many requests",
	})
}
