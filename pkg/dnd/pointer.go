package dnd

import (
	"github.com/go-drift/dnd/pkg/errors"
	"github.com/go-drift/dnd/pkg/geometry"
)

// PointerPhase is the phase of a pointer event.
type PointerPhase int

const (
	PointerPhaseDown PointerPhase = iota
	PointerPhaseMove
	PointerPhaseUp
	PointerPhaseCancel
)

func (p PointerPhase) String() string {
	switch p {
	case PointerPhaseDown:
		return "down"
	case PointerPhaseMove:
		return "move"
	case PointerPhaseUp:
		return "up"
	case PointerPhaseCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent is a pointer sample delivered by the host's input source.
type PointerEvent[E comparable] struct {
	Phase PointerPhase
	// Position is in page coordinates.
	Position geometry.Offset
	// Target is the element under the pointer. Only read on down.
	Target E
}

// HandlePointer routes a pointer event into the session state machine.
// Panics raised by callbacks are recovered and reported through the errors
// package, and the session is aborted so the overlap set is left empty.
func (c *Controller[E]) HandlePointer(ev PointerEvent[E]) {
	defer errors.RecoverWithCallback("dnd.HandlePointer", func(any) {
		c.dropping = false
		c.Abort()
	})

	switch ev.Phase {
	case PointerPhaseDown:
		if c.isDraggable(ev.Target) {
			c.Begin(ev.Target, ev.Position)
		}
	case PointerPhaseMove:
		c.Update(ev.Position)
	case PointerPhaseUp:
		c.End()
	case PointerPhaseCancel:
		c.Abort()
	}
}

func (c *Controller[E]) isDraggable(target E) bool {
	var zero E
	if target == zero {
		return false
	}
	for _, category := range c.registry.Draggables() {
		if c.host.HasClass(target, string(category)) {
			return true
		}
	}
	return false
}
