package dnd

import "slices"

type entry[E comparable] struct {
	id uint64
	fn Handler[E]
}

type namespace[E comparable] struct {
	order []Category
	slots map[Category]map[EventKind][]entry[E]
}

func newNamespace[E comparable]() *namespace[E] {
	return &namespace[E]{slots: make(map[Category]map[EventKind][]entry[E])}
}

func (n *namespace[E]) ensure(category Category) map[EventKind][]entry[E] {
	slot, ok := n.slots[category]
	if !ok {
		slot = make(map[EventKind][]entry[E])
		n.slots[category] = slot
		n.order = append(n.order, category)
	}
	return slot
}

// Registry maps (category, event kind) to ordered callback lists. Draggable
// and droppable categories are kept apart. Callbacks run in registration
// order, and categories are visited in the order they were first registered.
type Registry[E comparable] struct {
	draggables *namespace[E]
	droppables *namespace[E]
	nextID     uint64
}

// NewRegistry returns an empty registry.
func NewRegistry[E comparable]() *Registry[E] {
	return &Registry[E]{
		draggables: newNamespace[E](),
		droppables: newNamespace[E](),
	}
}

// Registration identifies a single registered callback.
type Registration struct {
	remove func()
}

// Remove unregisters the callback. The category stays registered. Calling
// Remove more than once, or on the zero Registration, does nothing.
func (r Registration) Remove() {
	if r.remove != nil {
		r.remove()
	}
}

func (r *Registry[E]) namespaceOf(kind EventKind) *namespace[E] {
	switch kind.Namespace() {
	case NamespaceDraggable:
		return r.draggables
	case NamespaceDroppable:
		return r.droppables
	default:
		return nil
	}
}

// On registers fn for kind on category. Registrations accumulate. A nil fn
// still registers the category in its namespace. Unknown kinds are ignored.
func (r *Registry[E]) On(kind EventKind, category Category, fn Handler[E]) Registration {
	ns := r.namespaceOf(kind)
	if ns == nil {
		return Registration{}
	}
	slot := ns.ensure(category)
	if fn == nil {
		return Registration{}
	}
	r.nextID++
	id := r.nextID
	slot[kind] = append(slot[kind], entry[E]{id: id, fn: fn})
	return Registration{remove: func() {
		slot[kind] = slices.DeleteFunc(slot[kind], func(e entry[E]) bool { return e.id == id })
	}}
}

// Draggables returns the registered draggable categories.
func (r *Registry[E]) Draggables() []Category {
	return slices.Clone(r.draggables.order)
}

// Droppables returns the registered droppable categories.
func (r *Registry[E]) Droppables() []Category {
	return slices.Clone(r.droppables.order)
}

// IsDraggable reports whether category has been registered as draggable.
func (r *Registry[E]) IsDraggable(category Category) bool {
	_, ok := r.draggables.slots[category]
	return ok
}

// Count returns the number of callbacks registered for (kind, category).
func (r *Registry[E]) Count(kind EventKind, category Category) int {
	ns := r.namespaceOf(kind)
	if ns == nil {
		return 0
	}
	return len(ns.slots[category][kind])
}

// Fire invokes every callback for (ev.Kind(), ev.EventCategory()). The list
// is snapshotted first, so callbacks registered during dispatch run from the
// next event on.
func (r *Registry[E]) Fire(ev Event[E]) {
	ns := r.namespaceOf(ev.Kind())
	if ns == nil {
		return
	}
	slot, ok := ns.slots[ev.EventCategory()]
	if !ok {
		return
	}
	for _, e := range slices.Clone(slot[ev.Kind()]) {
		e.fn(ev)
	}
}
