package csvtable

import (
	"fmt"
	"strings"

	"github.com/nao1215/csvtable/domain/model"
)

// Errors returned by Table. They are the sentinels of the model package, so
// errors.Is works with either name.
var (
	// ErrIO indicates the file could not be opened or read
	ErrIO = model.ErrIO

	// ErrDialectIndeterminate indicates sniffing found no consistent delimiter
	ErrDialectIndeterminate = model.ErrDialectIndeterminate

	// ErrMalformedRow indicates structurally unparseable input
	ErrMalformedRow = model.ErrMalformedRow

	// ErrIndexOutOfRange indicates a row or column outside the table
	ErrIndexOutOfRange = model.ErrIndexOutOfRange

	// ErrInvalidDialect indicates a dialect violating its invariants
	ErrInvalidDialect = model.ErrInvalidDialect

	// ErrInvalidSkip indicates a negative skip count
	ErrInvalidSkip = model.ErrInvalidSkip
)

type (
	// IOError records a failed file operation; it matches ErrIO.
	IOError = model.IOError
	// MalformedRowError carries the line of an unparseable row; it matches ErrMalformedRow.
	MalformedRowError = model.MalformedRowError
)

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	FilePath  string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, filePath string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		FilePath:  filePath,
	}
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context
func (ec *ErrorContext) Error(baseErr error) error {
	var parts []string
	parts = append(parts, fmt.Sprintf("csvtable: %s failed", ec.Operation))

	if ec.FilePath != "" {
		parts = append(parts, "file: "+ec.FilePath)
	}

	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", context, baseErr)
	}
	return fmt.Errorf("%s", context)
}
