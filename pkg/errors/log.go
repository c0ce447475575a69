package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables degraded-operation reports and stack traces.
	Verbose bool
	// Out overrides the destination. Nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// HandleError logs a DndError. Degraded reports are dropped unless Verbose.
func (h *LogHandler) HandleError(err *DndError) {
	if err == nil {
		return
	}
	w := h.out()
	if !h.Verbose {
		if err.Kind == KindDegraded {
			return
		}
		fmt.Fprintf(w, "[dnd error] %s: %v\n", err.Op, err.Err)
		return
	}
	fmt.Fprintf(w, "[dnd error] %s [%s]", err.Op, err.Kind)
	if err.Category != "" {
		fmt.Fprintf(w, " category=%s", err.Category)
	}
	fmt.Fprintf(w, ": %v\n", err.Err)
	if err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	if err.Op != "" {
		fmt.Fprintf(w, "[dnd panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "[dnd panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}
