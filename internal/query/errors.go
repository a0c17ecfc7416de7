package query

import "errors"

// ErrInvalidInput marks malformed or missing selectors and out-of-range ids
// or weeks. ErrNotFound marks selectors that match nothing. Both are wrapped
// with fmt.Errorf("%w: ...") so callers can branch with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)
