package dnd

import "github.com/go-drift/dnd/pkg/geometry"

// SessionState is the drag session state machine: Idle -> Active -> Idle.
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionActive
)

func (s SessionState) String() string {
	if s == SessionActive {
		return "active"
	}
	return "idle"
}

// Session is the state of a single drag gesture. A Controller owns exactly
// one Session value, which makes "one active drag at a time" structural.
type Session[E comparable] struct {
	state  SessionState
	source E
	proxy  E
	cloned bool

	initialPointer geometry.Offset
	initialOffset  geometry.Offset
	position       geometry.Offset
}

// State returns the current state.
func (s Session[E]) State() SessionState { return s.state }

// Active reports whether a drag is in progress.
func (s Session[E]) Active() bool { return s.state == SessionActive }

// Source returns the element the drag started on.
func (s Session[E]) Source() E { return s.source }

// Proxy returns the element being moved.
func (s Session[E]) Proxy() E { return s.proxy }

// Cloned reports whether the proxy is a clone owned by the session.
func (s Session[E]) Cloned() bool { return s.cloned }

// Position returns the proxy position last written to the host.
func (s Session[E]) Position() geometry.Offset { return s.position }

func (s Session[E]) positioning() Positioning {
	if s.cloned {
		return PositionAbsolute
	}
	return PositionRelative
}

// Begin starts a drag of source at the given pointer page position. An
// active session is aborted first, without firing drop callbacks.
func (c *Controller[E]) Begin(source E, pointer geometry.Offset) {
	if c.session.Active() {
		c.Abort()
	}
	c.tracker.Reset()

	proxy := source
	var start geometry.Offset
	if c.Settings.Clone {
		proxy = c.host.Clone(source)
		start = c.host.OffsetOf(source)
		c.host.SetPosition(proxy, start, PositionAbsolute)
		c.host.Append(proxy)
	} else {
		start = c.host.Position(source)
		c.host.SetPosition(proxy, start, PositionRelative)
	}
	if cls := c.Settings.DraggingClass; cls != "" {
		c.host.AddClass(proxy, cls)
	}

	c.gen++
	c.session = Session[E]{
		state:          SessionActive,
		source:         source,
		proxy:          proxy,
		cloned:         c.Settings.Clone,
		initialPointer: pointer,
		initialOffset:  start,
		position:       start,
	}

	gen := c.gen
	for _, category := range c.proxyCategories() {
		if !c.alive(gen) {
			return
		}
		c.registry.Fire(StartEvent[E]{
			Category: category,
			Source:   source,
			Proxy:    proxy,
			Pointer:  pointer,
		})
	}
}

// Update moves the proxy to follow the pointer, fires move callbacks and
// reconciles the overlap set. It does nothing while idle.
func (c *Controller[E]) Update(pointer geometry.Offset) {
	if !c.session.Active() {
		return
	}
	gen := c.gen
	s := &c.session
	pos := s.initialOffset.Add(pointer.Sub(s.initialPointer))
	c.host.SetPosition(s.proxy, pos, s.positioning())
	s.position = pos

	for _, category := range c.proxyCategories() {
		c.registry.Fire(MoveEvent[E]{
			Category: category,
			Source:   s.source,
			Proxy:    s.proxy,
			Pointer:  pointer,
			Position: pos,
		})
		if !c.alive(gen) {
			return
		}
	}
	c.reconcile(gen)
}

// End drops on every overlapped target and tears the session down. It does
// nothing while idle.
func (c *Controller[E]) End() {
	if !c.session.Active() || c.dropping {
		return
	}
	gen := c.gen
	c.finalize()
	if !c.alive(gen) {
		return
	}
	c.tracker.Reset()
	c.teardown()
}

// finalize fires drop callbacks with nested End calls suppressed. The guard
// is released even when a callback panics.
func (c *Controller[E]) finalize() {
	c.dropping = true
	defer func() { c.dropping = false }()
	c.tracker.Finalize()
}

// Abort tears the session down without dropping. Drag-over classes are
// removed and no callbacks fire.
func (c *Controller[E]) Abort() {
	if c.session.Active() {
		c.tracker.revert()
		c.tracker.Reset()
		c.teardown()
		return
	}
	c.tracker.Reset()
}

// alive reports whether the session started as generation gen is still the
// active one. Callbacks may end or restart the session mid-dispatch.
func (c *Controller[E]) alive(gen uint64) bool {
	return c.session.Active() && c.gen == gen
}

func (c *Controller[E]) teardown() {
	s := c.session
	c.session = Session[E]{}
	if s.cloned {
		c.host.Remove(s.proxy)
	} else if cls := c.Settings.DraggingClass; cls != "" {
		c.host.RemoveClass(s.proxy, cls)
	}
}

// proxyCategories returns the draggable categories the proxy carries, in
// registration order.
func (c *Controller[E]) proxyCategories() []Category {
	var out []Category
	for _, category := range c.registry.Draggables() {
		if c.host.HasClass(c.session.proxy, string(category)) {
			out = append(out, category)
		}
	}
	return out
}
