package errs

import (
	"errors"
	"fmt"
)

// Code identifies the kind of failure.
type Code string

const (
	EmptyInput         Code = "EMPTY_INPUT"
	MalformedInput     Code = "MALFORMED_INPUT"
	DegradedCapability Code = "DEGRADED_CAPABILITY"
	ResolutionFailure  Code = "RESOLUTION_FAILURE"
	UnsupportedFormat  Code = "UNSUPPORTED_FORMAT"
	OCRFailed          Code = "OCR_FAILED"
	TranslationFailed  Code = "TRANSLATION_FAILED"
)

// Error is a coded error. Only MalformedInput is fatal inside the engine; the
// other engine codes describe degraded results.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a coded error.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a coded error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
