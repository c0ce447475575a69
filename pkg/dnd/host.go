package dnd

import "github.com/go-drift/dnd/pkg/geometry"

// Positioning is how a proxy position is interpreted by the host.
type Positioning int

const (
	// PositionRelative offsets the element from its normal layout slot.
	PositionRelative Positioning = iota
	// PositionAbsolute places the element relative to the container.
	PositionAbsolute
)

func (p Positioning) String() string {
	if p == PositionAbsolute {
		return "absolute"
	}
	return "relative"
}

// ElementTree gives access to the container's elements. Categories and
// presentation effects are both classes on host elements.
type ElementTree[E comparable] interface {
	// ElementsByClass returns the current members of class inside the
	// container, in document order. Results must reflect the live tree.
	ElementsByClass(class string) []E
	// HasClass reports whether e carries class.
	HasClass(e E, class string) bool
	// QueryClass returns the first descendant of e that carries class.
	QueryClass(e E, class string) (E, bool)
	// Clone returns a detached copy of e.
	Clone(e E) E
	// Append attaches e to the container.
	Append(e E)
	// Remove detaches e from the container.
	Remove(e E)
}

// Layout answers geometric queries and applies positional styles.
type Layout[E comparable] interface {
	// BoundingRect returns e's rectangle in page coordinates.
	BoundingRect(e E) geometry.Rect
	// OffsetOf returns e's cumulative offset relative to the container.
	OffsetOf(e E) geometry.Offset
	// Position returns the positional style currently applied to e.
	Position(e E) geometry.Offset
	// SetPosition applies a positional style to e.
	SetPosition(e E, pos geometry.Offset, mode Positioning)
}

// Presenter toggles presentation classes.
type Presenter[E comparable] interface {
	AddClass(e E, class string)
	RemoveClass(e E, class string)
}

// Host is everything a Controller needs from the embedding UI.
type Host[E comparable] interface {
	ElementTree[E]
	Layout[E]
	Presenter[E]
}
