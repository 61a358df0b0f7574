// Package errors provides coded errors for disparo.
// Every error carries a code, optional context and the stack where it was raised.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// Code identifies an error class for programmatic handling.
type Code string

const (
	// Filesystem errors (1xx)
	CodeFileCreate Code = "E101"
	CodeFileWrite  Code = "E102"
	CodeFileRemove Code = "E103"

	// Input errors (2xx)
	CodeInvalidConfig   Code = "E201"
	CodeInvalidRowCount Code = "E202"

	// System errors (4xx)
	CodeContextCanceled Code = "E401"

	CodeUnknown Code = "E999"
)

// DisparoError is the base error type for all disparo errors.
type DisparoError struct {
	Code       Code
	Message    string
	Cause      error
	Context    map[string]interface{}
	StackTrace []Frame
}

// Frame represents a stack frame.
type Frame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface.
func (e *DisparoError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%s=%v", k, e.Context[k]))
		}
		sb.WriteString(")")
	}

	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}

	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *DisparoError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DisparoError with the same code.
func (e *DisparoError) Is(target error) bool {
	if t, ok := target.(*DisparoError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithContext adds context to the error. It is a no-op on a nil error.
func (e *DisparoError) WithContext(key string, value interface{}) *DisparoError {
	if e == nil {
		return nil
	}
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new DisparoError.
func New(code Code, message string) *DisparoError {
	return &DisparoError{
		Code:       code,
		Message:    message,
		StackTrace: captureStack(2),
	}
}

// Wrap wraps an existing error with a code and message.
// It returns nil when err is nil.
func Wrap(err error, code Code, message string) *DisparoError {
	if err == nil {
		return nil
	}

	return &DisparoError{
		Code:       code,
		Message:    message,
		Cause:      err,
		StackTrace: captureStack(2),
	}
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, code Code, format string, args ...interface{}) *DisparoError {
	if err == nil {
		return nil
	}

	return &DisparoError{
		Code:       code,
		Message:    fmt.Sprintf(format, args...),
		Cause:      err,
		StackTrace: captureStack(2),
	}
}

func captureStack(skip int) []Frame {
	var frames []Frame
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pcs)
	pcs = pcs[:n]

	cf := runtime.CallersFrames(pcs)
	for {
		frame, more := cf.Next()
		frames = append(frames, Frame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more || len(frames) >= 10 {
			break
		}
	}
	return frames
}

// FormatStack returns a formatted stack trace.
func (e *DisparoError) FormatStack() string {
	var sb strings.Builder
	for _, f := range e.StackTrace {
		sb.WriteString(fmt.Sprintf("  at %s\n    %s:%d\n", f.Function, f.File, f.Line))
	}
	return sb.String()
}

// --- Convenience constructors ---

// FileCreate wraps a failure to create a file.
func FileCreate(path string, err error) *DisparoError {
	return Wrap(err, CodeFileCreate, "failed to create file").WithContext("path", path)
}

// FileWrite wraps a failure to write or flush a file.
func FileWrite(path string, err error) *DisparoError {
	return Wrap(err, CodeFileWrite, "failed to write file").WithContext("path", path)
}

// FileRemove wraps a failure to delete a file.
func FileRemove(path string, err error) *DisparoError {
	return Wrap(err, CodeFileRemove, "failed to remove file").WithContext("path", path)
}

// InvalidRowCount reports a negative row count.
func InvalidRowCount(n int) *DisparoError {
	return New(CodeInvalidRowCount, "row count must not be negative").WithContext("rows", n)
}

// InvalidConfig reports a rejected configuration value.
func InvalidConfig(field string, value interface{}) *DisparoError {
	return New(CodeInvalidConfig, "invalid configuration value").
		WithContext("field", field).
		WithContext("value", value)
}

// ContextCanceled wraps a cancellation observed during operation.
func ContextCanceled(operation string, err error) *DisparoError {
	return Wrap(err, CodeContextCanceled, "operation canceled").WithContext("operation", operation)
}

// --- Error checking utilities ---

// IsCode reports whether any error in err's tree carries code.
// Joined errors are searched too.
func IsCode(err error, code Code) bool {
	return errors.Is(err, &DisparoError{Code: code})
}

// GetCode extracts the error code from an error.
func GetCode(err error) Code {
	var dErr *DisparoError
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return CodeUnknown
}
