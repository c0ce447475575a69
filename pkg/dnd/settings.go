package dnd

import (
	"fmt"
	"strconv"
	"strings"
)

// Tolerance selects how much of the proxy must overlap a drop target before
// the target counts as overlapped.
type Tolerance int

const (
	// ToleranceTouch counts any non-zero intersection.
	ToleranceTouch Tolerance = 1
	// TolerancePartial requires at least half of the proxy's area.
	TolerancePartial Tolerance = 2
	// ToleranceFull requires the whole proxy to be inside the target.
	ToleranceFull Tolerance = 3
)

// Threshold returns the minimum overlap percentage for t. Touch, and any
// unrecognized value, has no percentage threshold.
func (t Tolerance) Threshold() float64 {
	switch t {
	case TolerancePartial:
		return 50
	case ToleranceFull:
		return 100
	default:
		return 0
	}
}

func (t Tolerance) String() string {
	switch t {
	case ToleranceTouch:
		return "touch"
	case TolerancePartial:
		return "partial"
	case ToleranceFull:
		return "full"
	default:
		return "Tolerance(" + strconv.Itoa(int(t)) + ")"
	}
}

// ParseTolerance accepts either the numeric form (1, 2, 3) or the names
// touch, partial and full.
func ParseTolerance(s string) (Tolerance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "touch":
		return ToleranceTouch, nil
	case "2", "partial":
		return TolerancePartial, nil
	case "3", "full":
		return ToleranceFull, nil
	}
	return 0, fmt.Errorf("unknown tolerance %q (want touch, partial or full)", s)
}

// Settings holds the per-controller configuration. The zero string disables
// a presentation class.
type Settings struct {
	// DragOverClass is added to a drop target while it is overlapped.
	DragOverClass string
	// DropClass is added to every overlapped target when the pointer is
	// released.
	DropClass string
	// DraggingClass is added to the proxy for the duration of the drag.
	DraggingClass string
	// Clone moves a copy of the source instead of the source itself.
	Clone bool
	// Tolerance is the overlap policy shared by all droppable categories.
	Tolerance Tolerance
	// AcceptClass, when set, restricts hit testing to the first element of
	// the proxy subtree that carries this class.
	AcceptClass string
}

// DefaultSettings returns the settings used by New.
func DefaultSettings() Settings {
	return Settings{
		DragOverClass: "active",
		DropClass:     "dropped",
		DraggingClass: "dragging",
		Clone:         true,
		Tolerance:     ToleranceTouch,
	}
}

// Option adjusts controller settings at construction time.
type Option func(*Settings)

// WithSettings replaces all settings.
func WithSettings(s Settings) Option {
	return func(dst *Settings) { *dst = s }
}

// WithTolerance sets the overlap policy.
func WithTolerance(t Tolerance) Option {
	return func(s *Settings) { s.Tolerance = t }
}

// WithClone selects between a cloned proxy and moving the source in place.
func WithClone(clone bool) Option {
	return func(s *Settings) { s.Clone = clone }
}

// WithAcceptClass sets the hit-test marker class.
func WithAcceptClass(class string) Option {
	return func(s *Settings) { s.AcceptClass = class }
}

// WithClasses sets the drag-over and drop presentation classes.
func WithClasses(dragOver, drop string) Option {
	return func(s *Settings) {
		s.DragOverClass = dragOver
		s.DropClass = drop
	}
}
