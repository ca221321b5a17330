package client

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Error is returned when the server answers with an error payload.
type Error struct {
	StatusCode int
	Kind       string
	Message    string
	Fields     map[string]string
}

func (e *Error) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s (%d): %s", e.Kind, e.StatusCode, e.Message)

	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		fmt.Fprintf(&sb, "\n  %s: %s", field, e.Fields[field])
	}

	return sb.String()
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind string) bool {
	var clientErr *Error
	if !errors.As(err, &clientErr) {
		return false
	}

	return clientErr.Kind == kind
}
