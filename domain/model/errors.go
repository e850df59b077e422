package model

import (
	"errors"
	"fmt"
)

var (
	// ErrIO is returned when a file cannot be opened or read
	ErrIO = errors.New("csvtable: i/o error")

	// ErrDialectIndeterminate is returned when sniffing cannot settle on a delimiter
	ErrDialectIndeterminate = errors.New("csvtable: could not determine delimiter")

	// ErrMalformedRow is returned for structurally unparseable input
	ErrMalformedRow = errors.New("csvtable: malformed row")

	// ErrIndexOutOfRange is returned when a row or column index is outside the table
	ErrIndexOutOfRange = errors.New("csvtable: index out of range")

	// ErrInvalidDialect is returned when a Dialect violates its invariants
	ErrInvalidDialect = errors.New("csvtable: invalid dialect")

	// ErrInvalidSkip is returned for a negative skip count
	ErrInvalidSkip = errors.New("csvtable: invalid skip count")
)

// IOError records a failed file operation.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements error.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports ErrIO as a match.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// MalformedRowError reports input the parser could not recover from.
type MalformedRowError struct {
	// Line is the 1-based input line where the offending record started.
	Line int
	// Err describes the problem.
	Err error
}

// Error implements error.
func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("record on line %d: %v", e.Line, e.Err)
}

// Unwrap returns the cause.
func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

// Is reports ErrMalformedRow as a match.
func (e *MalformedRowError) Is(target error) bool {
	return target == ErrMalformedRow
}
