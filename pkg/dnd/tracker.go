package dnd

import "slices"

// Tracker is the overlap set: for every droppable category, the targets the
// proxy currently overlaps. It applies presentation classes and fires
// dropover, dropout and drop callbacks on membership transitions.
//
// An element appears at most once per category, so repeated reports of the
// same target are free and fire nothing.
type Tracker[E comparable] struct {
	host     Presenter[E]
	registry *Registry[E]
	settings *Settings
	session  *Session[E]

	order   []Category
	members map[Category][]E
}

func newTracker[E comparable](host Presenter[E], registry *Registry[E], settings *Settings, session *Session[E]) *Tracker[E] {
	return &Tracker[E]{
		host:     host,
		registry: registry,
		settings: settings,
		session:  session,
		members:  make(map[Category][]E),
	}
}

// Report records that element overlaps a target of category. The first
// report adds the drag-over class and fires dropover callbacks.
func (t *Tracker[E]) Report(element E, category Category) {
	list, seen := t.members[category]
	if slices.Contains(list, element) {
		return
	}
	if !seen {
		t.order = append(t.order, category)
	}
	t.members[category] = append(list, element)

	if cls := t.settings.DragOverClass; cls != "" {
		t.host.AddClass(element, cls)
	}
	t.registry.Fire(EnterEvent[E]{
		Category:   category,
		Overlapped: slices.Clone(t.members[category]),
		Source:     t.session.source,
		Proxy:      t.session.proxy,
	})
}

// Clear removes element from every category that holds it, removing the
// drag-over class and firing dropout callbacks for each such category.
func (t *Tracker[E]) Clear(element E) {
	for _, category := range slices.Clone(t.order) {
		list := t.members[category]
		i := slices.Index(list, element)
		if i < 0 {
			continue
		}
		t.members[category] = slices.Delete(list, i, i+1)

		if cls := t.settings.DragOverClass; cls != "" {
			t.host.RemoveClass(element, cls)
		}
		t.registry.Fire(ExitEvent[E]{
			Category: category,
			Element:  element,
			Source:   t.session.source,
			Proxy:    t.session.proxy,
		})
	}
}

// Finalize adds the drop class to every overlapped target and fires one drop
// per category that has at least one member. Membership is left untouched;
// call Reset afterwards.
func (t *Tracker[E]) Finalize() {
	for _, category := range slices.Clone(t.order) {
		list := slices.Clone(t.members[category])
		if len(list) == 0 {
			continue
		}
		if cls := t.settings.DropClass; cls != "" {
			for _, el := range list {
				t.host.AddClass(el, cls)
			}
		}
		t.registry.Fire(DropEvent[E]{
			Category: category,
			Dropped:  list,
			Source:   t.session.source,
			Proxy:    t.session.proxy,
		})
	}
}

// Reset empties the set without firing callbacks or touching classes.
func (t *Tracker[E]) Reset() {
	t.order = nil
	clear(t.members)
}

// revert removes the drag-over class from every member.
func (t *Tracker[E]) revert() {
	cls := t.settings.DragOverClass
	if cls == "" {
		return
	}
	for _, category := range t.order {
		for _, el := range t.members[category] {
			t.host.RemoveClass(el, cls)
		}
	}
}

// Members returns the overlapped targets of category in entry order.
func (t *Tracker[E]) Members(category Category) []E {
	return slices.Clone(t.members[category])
}

// Contains reports whether element is overlapped under category.
func (t *Tracker[E]) Contains(element E, category Category) bool {
	return slices.Contains(t.members[category], element)
}

// Categories returns the categories with at least one member.
func (t *Tracker[E]) Categories() []Category {
	var out []Category
	for _, category := range t.order {
		if len(t.members[category]) > 0 {
			out = append(out, category)
		}
	}
	return out
}

// Len returns the total number of (element, category) pairs.
func (t *Tracker[E]) Len() int {
	n := 0
	for _, list := range t.members {
		n += len(list)
	}
	return n
}
