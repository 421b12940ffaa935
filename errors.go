package smartenum

import (
	"fmt"
	"maps"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeOutOfRange ErrorCode = "out_of_range"
	CodeNotFound   ErrorCode = "not_found"
	CodeInvalid    ErrorCode = "invalid"
	CodeUndeclared ErrorCode = "undeclared" // item references a name the declaration does not have
	CodeDuplicate  ErrorCode = "duplicate"
	CodeOverflow   ErrorCode = "overflow"
)

// Sentinels for use with errors.Is. Matching is by code only.
var (
	ErrOutOfRange = NewError(CodeOutOfRange, "index out of range")
	ErrNotFound   = NewError(CodeNotFound, "name not found")
	ErrInvalid    = NewError(CodeInvalid, "invalid declaration")
	ErrUndeclared = NewError(CodeUndeclared, "undeclared symbol")
	ErrDuplicate  = NewError(CodeDuplicate, "duplicate symbol")
	ErrOverflow   = NewError(CodeOverflow, "value overflows underlying type")
)

// Error is returned by every fallible operation in this package.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NewError creates a new error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	maps.Copy(details, e.Details)
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// WithDetails returns a new Error with the provided map merged into details.
// For multiple details, this is more efficient than chaining WithDetail calls.
func (e *Error) WithDetails(details map[string]any) *Error {
	if len(details) == 0 {
		return e
	}
	merged := make(map[string]any, len(e.Details)+len(details))
	maps.Copy(merged, e.Details)
	maps.Copy(merged, details)
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: merged,
	}
}
