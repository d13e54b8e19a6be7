// Package rangeerr defines the structured error kinds raised by the
// transform and chunk-map packages.
package rangeerr

import "fmt"

// ErrorType represents a kind of failure raised by the decoder pipeline.
type ErrorType int

const (
	// ConfigurationError signals a bad construction-time argument, such
	// as an encoding label that does not resolve to a known charset.
	ConfigurationError ErrorType = iota
	// OutOfCoverage signals an output range with no corresponding chunk
	// mapping. Unreachable for a correctly built decoder; a contract
	// violation by the caller.
	OutOfCoverage
	// InsufficientSource signals that the source bytes handed to Decode
	// do not cover the range the decoder asked for.
	InsufficientSource
	// SourceReadError wraps a failure from the underlying FileSource.
	SourceReadError
)

// Error is a structured error carrying the kind of failure and enough
// context to locate it.
type Error struct {
	Type    ErrorType
	Message string
	Context string
	Err     error // wrapped cause, set only for SourceReadError
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rangedecode: %s (context: %s): %v", e.Message, e.Context, e.Err)
	}
	return fmt.Sprintf("rangedecode: %s (context: %s)", e.Message, e.Context)
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error carrying no wrapped cause.
func New(errType ErrorType, message, context string) *Error {
	return &Error{Type: errType, Message: message, Context: context}
}

// Wrap creates a SourceReadError wrapping the given cause.
func Wrap(message, context string, err error) *Error {
	return &Error{Type: SourceReadError, Message: message, Context: context, Err: err}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind ErrorType) bool {
	e, ok := err.(*Error)
	return ok && e.Type == kind
}
