package service

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bornholm/scheduler/internal/core/port"
	"github.com/pkg/errors"
)

var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrUserNotFound       = errors.New("user not found")
	ErrScheduleNotFound   = errors.New("schedule not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrForbidden          = errors.New("forbidden")
	ErrScheduleMismatch   = errors.New("comment does not belong to schedule")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrDuplicateUsername  = errors.New("username already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUserHasContent     = errors.New("user still owns schedules or comments")
)

// ValidationError carries one message per rejected field.
type ValidationError struct {
	Fields map[string]string
}

// Error implements error.
func (e *ValidationError) Error() string {
	var sb strings.Builder

	sb.WriteString(ErrValidationFailed.Error())

	for i, field := range slices.Sorted(maps.Keys(e.Fields)) {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", field, e.Fields[field])
	}

	return sb.String()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

func translateNotFound(err error, target error) error {
	if errors.Is(err, port.ErrNotFound) {
		return errors.WithStack(target)
	}

	return errors.WithStack(err)
}
