// Package validation checks request input before any upstream call or
// store mutation. Failures carry field-specific messages for the 400 body.
package validation

import (
	"fmt"
	"strings"
)

// Error aggregates per-field validation messages for one request.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}
