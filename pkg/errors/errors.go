// Package errors provides structured error reporting for dnd controllers and
// the tools built on them.
//
// The drag-and-drop core never returns errors from pointer handling. Situations
// where it silently degrades (a missing accept marker, a zero-area hit-test
// rectangle) and panics recovered from user callbacks are sent to a pluggable
// [ErrorHandler] instead.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindDegraded indicates an operation that was skipped or fell back to a
	// default instead of failing.
	KindDegraded
	// KindParsing indicates a scene or settings decoding failure.
	KindParsing
	// KindConfig indicates invalid configuration values.
	KindConfig
	// KindHost indicates a failure in the host collaborator (terminal, audio).
	KindHost
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindDegraded:
		return "degraded"
	case KindParsing:
		return "parsing"
	case KindConfig:
		return "config"
	case KindHost:
		return "host"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// DndError represents a structured error reported by a dnd controller.
type DndError struct {
	// Op is the operation that failed (e.g., "dnd.reconcile").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Category is the draggable or droppable category involved, if any.
	Category string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *DndError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("%s [%s] category=%s: %v", e.Op, e.Kind, e.Category, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *DndError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "dnd.HandlePointer").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents a failure to decode a scene or settings document.
type ParseError struct {
	// Source is the file or stream that was being decoded.
	Source string
	// Field is the offending field path, if known.
	Field string
	// Got is the value that could not be interpreted.
	Got any
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("failed to parse %s in %s: got %v", e.Field, e.Source, e.Got)
	}
	return fmt.Sprintf("failed to parse %s: got %v", e.Source, e.Got)
}

// ErrorHandler receives errors reported by dnd controllers.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *DndError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
