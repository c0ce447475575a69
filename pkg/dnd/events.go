package dnd

import (
	"strings"

	"github.com/go-drift/dnd/pkg/geometry"
)

// Category names a group of draggable or droppable elements.
type Category string

// EventKind identifies a lifecycle callback slot.
type EventKind int

const (
	// EventUnknown is returned by ParseEventKind for unrecognized names.
	// Registrations with it are accepted and never fire.
	EventUnknown EventKind = iota
	// EventStart fires when a drag session begins.
	EventStart
	// EventMove fires on every pointer move of an active session.
	EventMove
	// EventDropOver fires when a drop target starts to be overlapped.
	EventDropOver
	// EventDropOut fires when a drop target stops being overlapped.
	EventDropOut
	// EventDrop fires on release for every category with overlapped targets.
	EventDrop
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventMove:
		return "move"
	case EventDropOver:
		return "dropover"
	case EventDropOut:
		return "dropout"
	case EventDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// Namespace is the registry half a kind belongs to.
type Namespace int

const (
	NamespaceNone Namespace = iota
	NamespaceDraggable
	NamespaceDroppable
)

// Namespace reports whether k is a draggable or droppable event.
func (k EventKind) Namespace() Namespace {
	switch k {
	case EventStart, EventMove:
		return NamespaceDraggable
	case EventDropOver, EventDropOut, EventDrop:
		return NamespaceDroppable
	default:
		return NamespaceNone
	}
}

// ParseEventKind maps an event name to its kind. The legacy names dragstart
// and drag are accepted for start and move.
func ParseEventKind(name string) EventKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "start", "dragstart":
		return EventStart
	case "move", "drag":
		return EventMove
	case "dropover", "enter":
		return EventDropOver
	case "dropout", "exit":
		return EventDropOut
	case "drop":
		return EventDrop
	default:
		return EventUnknown
	}
}

// Event is the payload passed to a Handler. The concrete type is one of
// StartEvent, MoveEvent, EnterEvent, ExitEvent or DropEvent.
type Event[E comparable] interface {
	Kind() EventKind
	EventCategory() Category
}

// Handler is a lifecycle callback.
type Handler[E comparable] func(Event[E])

// StartEvent is delivered to start callbacks.
type StartEvent[E comparable] struct {
	Category Category
	Source   E
	Proxy    E
	// Pointer is the page position of the pointer-down.
	Pointer geometry.Offset
}

// MoveEvent is delivered to move callbacks after the proxy was repositioned.
type MoveEvent[E comparable] struct {
	Category Category
	Source   E
	Proxy    E
	Pointer  geometry.Offset
	// Position is the proxy position just written to the host.
	Position geometry.Offset
}

// EnterEvent is delivered to dropover callbacks.
type EnterEvent[E comparable] struct {
	Category Category
	// Overlapped holds every element of Category currently overlapped,
	// including the one that just entered.
	Overlapped []E
	Source     E
	Proxy      E
}

// ExitEvent is delivered to dropout callbacks.
type ExitEvent[E comparable] struct {
	Category Category
	// Element is the target that stopped being overlapped.
	Element E
	Source  E
	Proxy   E
}

// DropEvent is delivered to drop callbacks.
type DropEvent[E comparable] struct {
	Category Category
	Dropped  []E
	Source   E
	Proxy    E
}

func (StartEvent[E]) Kind() EventKind { return EventStart }
func (MoveEvent[E]) Kind() EventKind  { return EventMove }
func (EnterEvent[E]) Kind() EventKind { return EventDropOver }
func (ExitEvent[E]) Kind() EventKind  { return EventDropOut }
func (DropEvent[E]) Kind() EventKind  { return EventDrop }

func (e StartEvent[E]) EventCategory() Category { return e.Category }
func (e MoveEvent[E]) EventCategory() Category  { return e.Category }
func (e EnterEvent[E]) EventCategory() Category { return e.Category }
func (e ExitEvent[E]) EventCategory() Category  { return e.Category }
func (e DropEvent[E]) EventCategory() Category  { return e.Category }
