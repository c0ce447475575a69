package dnd

import (
	"slices"
	"testing"
)

func TestRegistryOrderAndNamespaces(t *testing.T) {
	r := NewRegistry[string]()
	var calls []string
	mk := func(name string) Handler[string] {
		return func(Event[string]) { calls = append(calls, name) }
	}

	r.On(EventDrop, "bin", mk("first"))
	r.On(EventDrop, "bin", mk("second"))
	r.On(EventStart, "item", mk("start"))
	r.On(EventDropOver, "shelf", nil)
	r.On(EventUnknown, "ghost", mk("never"))

	r.Fire(DropEvent[string]{Category: "bin"})
	r.Fire(StartEvent[string]{Category: "item"})
	r.Fire(DropEvent[string]{Category: "item"})
	r.Fire(StartEvent[string]{Category: "bin"})

	if want := []string{"first", "second", "start"}; !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	if got := r.Droppables(); !slices.Equal(got, []Category{"bin", "shelf"}) {
		t.Errorf("Droppables = %v", got)
	}
	if got := r.Draggables(); !slices.Equal(got, []Category{"item"}) {
		t.Errorf("Draggables = %v", got)
	}
	if r.IsDraggable("bin") || !r.IsDraggable("item") {
		t.Error("namespaces should be independent")
	}
	if r.Count(EventDrop, "bin") != 2 {
		t.Errorf("Count = %d, want 2", r.Count(EventDrop, "bin"))
	}
}

func TestRegistrationRemove(t *testing.T) {
	r := NewRegistry[string]()
	var calls []string
	a := r.On(EventMove, "item", func(Event[string]) { calls = append(calls, "a") })
	r.On(EventMove, "item", func(Event[string]) { calls = append(calls, "b") })

	a.Remove()
	a.Remove()
	Registration{}.Remove()

	r.Fire(MoveEvent[string]{Category: "item"})
	if !slices.Equal(calls, []string{"b"}) {
		t.Errorf("calls = %v, want [b]", calls)
	}
	if !r.IsDraggable("item") {
		t.Error("category stays registered after Remove")
	}
}

func TestRegistryFireSnapshotsCallbacks(t *testing.T) {
	r := NewRegistry[string]()
	n := 0
	r.On(EventDrop, "bin", func(Event[string]) {
		n++
		r.On(EventDrop, "bin", func(Event[string]) { n += 10 })
	})
	r.Fire(DropEvent[string]{Category: "bin"})
	if n != 1 {
		t.Errorf("callback added during dispatch ran early, n = %d", n)
	}
}

func TestParseEventKind(t *testing.T) {
	tests := []struct {
		name string
		want EventKind
		ns   Namespace
	}{
		{"start", EventStart, NamespaceDraggable},
		{"dragstart", EventStart, NamespaceDraggable},
		{"drag", EventMove, NamespaceDraggable},
		{"move", EventMove, NamespaceDraggable},
		{"dropover", EventDropOver, NamespaceDroppable},
		{"DropOut", EventDropOut, NamespaceDroppable},
		{"drop", EventDrop, NamespaceDroppable},
		{"hover", EventUnknown, NamespaceNone},
	}
	for _, tt := range tests {
		got := ParseEventKind(tt.name)
		if got != tt.want || got.Namespace() != tt.ns {
			t.Errorf("ParseEventKind(%q) = %v (%v), want %v (%v)", tt.name, got, got.Namespace(), tt.want, tt.ns)
		}
	}
}

func TestTolerance(t *testing.T) {
	tests := []struct {
		in        string
		want      Tolerance
		threshold float64
	}{
		{"1", ToleranceTouch, 0},
		{"touch", ToleranceTouch, 0},
		{"2", TolerancePartial, 50},
		{"Partial", TolerancePartial, 50},
		{"3", ToleranceFull, 100},
		{"full", ToleranceFull, 100},
	}
	for _, tt := range tests {
		got, err := ParseTolerance(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseTolerance(%q) = %v, %v", tt.in, got, err)
		}
		if got.Threshold() != tt.threshold {
			t.Errorf("%v.Threshold() = %v, want %v", got, got.Threshold(), tt.threshold)
		}
	}
	if _, err := ParseTolerance("4"); err == nil {
		t.Error("expected error for tolerance 4")
	}
	if Tolerance(7).String() != "Tolerance(7)" {
		t.Errorf("String = %q", Tolerance(7).String())
	}
}
