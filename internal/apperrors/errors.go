package apperrors

import (
	"errors"
	"fmt"
)

// Store errors represent copy-set operations referencing missing entities.
// Request-input validation lives in the validation package; its errors are
// surfaced immediately as a 400 and never reach this layer.
var (
	// ErrTraderNotCopied indicates the referenced trader is not in the copied set.
	ErrTraderNotCopied = errors.New("trader is not copied")
)

// UpstreamError is a network failure or non-2xx response from an external
// provider. It is caught at the client-wrapper boundary, logged, and converted
// to an empty/default result plus an error flag; it is never allowed to crash
// the API-route layer.
type UpstreamError struct {
	Source  string // "gamma", "data-api", "activity-subgraph", "positions-subgraph"
	Status  int    // HTTP status code, 0 for transport failures
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: upstream returned %d: %s", e.Source, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamStatusError builds an UpstreamError for a non-2xx response.
func NewUpstreamStatusError(source string, status int, statusText string) *UpstreamError {
	return &UpstreamError{Source: source, Status: status, Message: statusText}
}

// NewUpstreamTransportError builds an UpstreamError for a failed request.
func NewUpstreamTransportError(source string, err error) *UpstreamError {
	return &UpstreamError{Source: source, Message: err.Error(), Err: err}
}

// IsUpstream reports whether err is (or wraps) an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
