package catalog

import (
	"errors"
	"fmt"
)

// ErrEmptyCriteria is returned when a filter is requested with no
// conditions at all. An unfiltered scan of the catalog is unbounded
// and is refused rather than capped silently.
var ErrEmptyCriteria = errors.New("catalog: filter criteria is empty")

// UnknownFieldError reports a filter field that does not map to any
// catalog attribute.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("catalog: unknown filter field %q", e.Field)
}

// BadFilterError reports a filter the catalog rejected (HTTP 4xx).
// These are never retried.
type BadFilterError struct {
	StatusCode int
	Message    string
}

func (e *BadFilterError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog: request rejected with status %d", e.StatusCode)
	}
	return fmt.Sprintf("catalog: request rejected with status %d: %s", e.StatusCode, e.Message)
}

// ParseError reports a response page that could not be decoded. Any
// records collected from earlier pages are discarded when this occurs.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("catalog: malformed response page: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TransientError reports a network or server-side failure that
// persisted through the retry budget.
type TransientError struct {
	Attempts int
	Err      error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("catalog: request failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }
