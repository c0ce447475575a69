package testing

import (
	"github.com/go-drift/dnd/pkg/dnd"
	"github.com/go-drift/dnd/pkg/scene"
)

// Recorder keeps every event it is handed, in firing order.
type Recorder struct {
	events []dnd.Event[*scene.Node]
}

// Handle is a dnd.Handler that records ev.
func (r *Recorder) Handle(ev dnd.Event[*scene.Node]) {
	r.events = append(r.events, ev)
}

// Events returns the recorded events.
func (r *Recorder) Events() []dnd.Event[*scene.Node] {
	return r.events
}

// Lines returns the recorded events formatted with scene.Describe.
func (r *Recorder) Lines() []string {
	lines := make([]string, len(r.events))
	for i, ev := range r.events {
		lines[i] = scene.Describe(ev)
	}
	return lines
}

// Filter returns the lines of events of the given kinds only.
func (r *Recorder) Filter(kinds ...dnd.EventKind) []string {
	var lines []string
	for _, ev := range r.events {
		for _, k := range kinds {
			if ev.Kind() == k {
				lines = append(lines, scene.Describe(ev))
				break
			}
		}
	}
	return lines
}

// Count returns how many events of kind were recorded.
func (r *Recorder) Count(kind dnd.EventKind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind() == kind {
			n++
		}
	}
	return n
}

// Reset forgets all recorded events.
func (r *Recorder) Reset() {
	r.events = nil
}
