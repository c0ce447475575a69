package dnd

// Controller drives drag and drop for one container. It owns the callback
// registry, the overlap set and the drag session; controllers over disjoint
// containers share nothing.
type Controller[E comparable] struct {
	// Settings may be changed between gestures. Changes made during a drag
	// take effect on the next tick.
	Settings Settings

	host     Host[E]
	registry *Registry[E]
	tracker  *Tracker[E]
	session  Session[E]
	gen      uint64
	dropping bool
}

// New returns a controller bound to host, configured with DefaultSettings
// and then opts.
func New[E comparable](host Host[E], opts ...Option) *Controller[E] {
	c := &Controller[E]{
		Settings: DefaultSettings(),
		host:     host,
		registry: NewRegistry[E](),
	}
	for _, opt := range opts {
		opt(&c.Settings)
	}
	c.tracker = newTracker[E](host, c.registry, &c.Settings, &c.session)
	return c
}

// On registers fn for kind on category. See Registry.On.
func (c *Controller[E]) On(kind EventKind, category Category, fn Handler[E]) Registration {
	return c.registry.On(kind, category, fn)
}

// OnNamed registers fn using an event name such as "dropover" or "drag".
// Unknown names register nothing.
func (c *Controller[E]) OnNamed(name string, category Category, fn Handler[E]) Registration {
	return c.registry.On(ParseEventKind(name), category, fn)
}

// OnStart registers a start callback for a draggable category. A nil fn
// only marks the category draggable.
func (c *Controller[E]) OnStart(category Category, fn func(StartEvent[E])) Registration {
	if fn == nil {
		return c.registry.On(EventStart, category, nil)
	}
	return c.registry.On(EventStart, category, func(ev Event[E]) { fn(ev.(StartEvent[E])) })
}

// OnMove registers a move callback for a draggable category.
func (c *Controller[E]) OnMove(category Category, fn func(MoveEvent[E])) Registration {
	if fn == nil {
		return c.registry.On(EventMove, category, nil)
	}
	return c.registry.On(EventMove, category, func(ev Event[E]) { fn(ev.(MoveEvent[E])) })
}

// OnDropOver registers an enter callback for a droppable category.
func (c *Controller[E]) OnDropOver(category Category, fn func(EnterEvent[E])) Registration {
	if fn == nil {
		return c.registry.On(EventDropOver, category, nil)
	}
	return c.registry.On(EventDropOver, category, func(ev Event[E]) { fn(ev.(EnterEvent[E])) })
}

// OnDropOut registers an exit callback for a droppable category.
func (c *Controller[E]) OnDropOut(category Category, fn func(ExitEvent[E])) Registration {
	if fn == nil {
		return c.registry.On(EventDropOut, category, nil)
	}
	return c.registry.On(EventDropOut, category, func(ev Event[E]) { fn(ev.(ExitEvent[E])) })
}

// OnDrop registers a drop callback for a droppable category.
func (c *Controller[E]) OnDrop(category Category, fn func(DropEvent[E])) Registration {
	if fn == nil {
		return c.registry.On(EventDrop, category, nil)
	}
	return c.registry.On(EventDrop, category, func(ev Event[E]) { fn(ev.(DropEvent[E])) })
}

// Registry exposes the callback registry.
func (c *Controller[E]) Registry() *Registry[E] { return c.registry }

// Tracker exposes the overlap set for inspection.
func (c *Controller[E]) Tracker() *Tracker[E] { return c.tracker }

// Session returns a copy of the current session state.
func (c *Controller[E]) Session() Session[E] { return c.session }

// Active reports whether a drag is in progress.
func (c *Controller[E]) Active() bool { return c.session.Active() }
