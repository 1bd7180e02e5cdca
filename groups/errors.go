package groups

import "errors"

var (
	// ErrInvalidInput is returned before any external call when an address
	// argument is malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrTotalFailure is returned when every data source for a read failed.
	// The individual causes are joined into the returned error.
	ErrTotalFailure = errors.New("all data sources failed")
)

// sourceResult carries the outcome of one data source. Value may hold
// partial data even when Err is set.
type sourceResult[T any] struct {
	Value T
	Err   error
}

func (r sourceResult[T]) ok() bool {
	return r.Err == nil
}
