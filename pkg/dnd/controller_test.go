package dnd_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/go-drift/dnd/pkg/dnd"
	"github.com/go-drift/dnd/pkg/errors"
	"github.com/go-drift/dnd/pkg/geometry"
	"github.com/go-drift/dnd/pkg/scene"
)

type node = *scene.Node

// fixture is a board with one draggable "item" and one droppable "bin".
type fixture struct {
	board *scene.Board
	c     *dnd.Controller[node]
	item  node
	bin   node
	log   []string
}

func newFixture(t *testing.T, itemRect, binRect geometry.Rect, opts ...dnd.Option) *fixture {
	t.Helper()
	b := scene.NewBoard(geometry.Offset{}, geometry.Size{Width: 400, Height: 400})
	f := &fixture{
		board: b,
		item:  b.Add(nil, "item", itemRect, "item"),
		bin:   b.Add(nil, "bin", binRect, "bin"),
	}
	f.c = dnd.New[node](b, opts...)
	f.c.OnStart("item", func(e dnd.StartEvent[node]) {
		f.log = append(f.log, fmt.Sprintf("start %s", e.Source))
	})
	f.c.OnDropOver("bin", func(e dnd.EnterEvent[node]) {
		f.log = append(f.log, fmt.Sprintf("enter %v", e.Overlapped))
	})
	f.c.OnDropOut("bin", func(e dnd.ExitEvent[node]) {
		f.log = append(f.log, fmt.Sprintf("exit %v", e.Element))
	})
	f.c.OnDrop("bin", func(e dnd.DropEvent[node]) {
		f.log = append(f.log, fmt.Sprintf("drop %v", e.Dropped))
	})
	return f
}

func (f *fixture) down(target node, x, y float64) {
	f.c.HandlePointer(dnd.PointerEvent[node]{Phase: dnd.PointerPhaseDown, Position: geometry.Offset{X: x, Y: y}, Target: target})
}

func (f *fixture) move(x, y float64) {
	f.c.HandlePointer(dnd.PointerEvent[node]{Phase: dnd.PointerPhaseMove, Position: geometry.Offset{X: x, Y: y}})
}

func (f *fixture) up() {
	f.c.HandlePointer(dnd.PointerEvent[node]{Phase: dnd.PointerPhaseUp})
}

func (f *fixture) expectLog(t *testing.T, want ...string) {
	t.Helper()
	if !slices.Equal(f.log, want) {
		t.Errorf("event log = %q, want %q", f.log, want)
	}
	f.log = nil
}

func collect(t *testing.T) *errors.Collector {
	t.Helper()
	c := &errors.Collector{}
	prev := errors.SetHandler(c)
	t.Cleanup(func() { errors.SetHandler(prev) })
	return c
}

func TestEndToEndDrop(t *testing.T) {
	f := newFixture(t, geometry.RectFromLTWH(0, 0, 50, 50), geometry.RectFromLTWH(40, 40, 60, 60))

	f.down(f.item, 10, 10)
	if !f.c.Active() {
		t.Fatal("expected an active session")
	}
	proxy := f.c.Session().Proxy()
	if proxy == f.item {
		t.Fatal("clone mode should create a separate proxy")
	}
	if !proxy.HasClass("dragging") {
		t.Error("proxy should carry the dragging class")
	}
	f.move(40, 40)

	want := geometry.RectFromLTWH(30, 30, 50, 50)
	if got := f.board.BoundingRect(proxy); got != want {
		t.Errorf("proxy rect = %v, want %v", got, want)
	}
	f.expectLog(t, "start item", "enter [bin]")
	if !f.bin.HasClass("active") {
		t.Error("bin should carry the drag-over class")
	}

	f.up()
	f.expectLog(t, "drop [bin]")
	if !f.bin.HasClass("dropped") {
		t.Error("bin should carry the drop class")
	}
	if f.c.Active() {
		t.Error("session should be idle after release")
	}
	if f.c.Tracker().Len() != 0 {
		t.Error("overlap set should be empty after release")
	}
	if _, ok := f.board.Node(proxy.ID); ok {
		t.Error("clone should be removed from the container")
	}
	if f.board.OffsetOf(f.item) != (geometry.Offset{}) {
		t.Error("source must not move in clone mode")
	}
}

func TestNonOverlapDrop(t *testing.T) {
	// The bin shares only a corner with the item.
	f := newFixture(t, geometry.RectFromLTWH(0, 0, 50, 50), geometry.RectFromLTWH(50, 50, 50, 50))
	f.down(f.item, 10, 10)
	f.move(10, 10)
	f.up()
	f.expectLog(t, "start item")
	if f.bin.HasClass("active") || f.bin.HasClass("dropped") {
		t.Error("bin should be untouched")
	}
}

func TestEnterExitAcrossTicks(t *testing.T) {
	f := newFixture(t, geometry.RectFromLTWH(0, 0, 50, 50), geometry.RectFromLTWH(100, 0, 50, 50))
	f.down(f.item, 0, 0)
	f.move(60, 0)
	f.move(70, 0)
	f.move(0, 0)
	f.move(60, 0)
	f.up()
	f.expectLog(t, "start item", "enter [bin]", "exit bin", "enter [bin]", "drop [bin]")
}

func TestToleranceMonotonicity(t *testing.T) {
	tests := []struct {
		name      string
		item      geometry.Rect
		tolerance dnd.Tolerance
		entered   bool
	}{
		{"contained touch", geometry.RectFromLTWH(110, 110, 10, 10), dnd.ToleranceTouch, true},
		{"contained partial", geometry.RectFromLTWH(110, 110, 10, 10), dnd.TolerancePartial, true},
		{"contained full", geometry.RectFromLTWH(110, 110, 10, 10), dnd.ToleranceFull, true},
		{"forty percent touch", geometry.RectFromLTWH(94, 100, 10, 10), dnd.ToleranceTouch, true},
		{"forty percent partial", geometry.RectFromLTWH(94, 100, 10, 10), dnd.TolerancePartial, false},
		{"forty percent full", geometry.RectFromLTWH(94, 100, 10, 10), dnd.ToleranceFull, false},
		{"half partial", geometry.RectFromLTWH(95, 100, 10, 10), dnd.TolerancePartial, true},
		{"half full", geometry.RectFromLTWH(95, 100, 10, 10), dnd.ToleranceFull, false},
		{"unknown tolerance acts as touch", geometry.RectFromLTWH(94, 100, 10, 10), dnd.Tolerance(9), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.item, geometry.RectFromLTWH(100, 100, 100, 100), dnd.WithTolerance(tt.tolerance))
			f.down(f.item, 1, 1)
			f.move(1, 1)
			if got := f.c.Tracker().Contains(f.bin, "bin"); got != tt.entered {
				t.Errorf("bin overlapped = %v, want %v", got, tt.entered)
			}
		})
	}
}

func TestPartialToleranceExit(t *testing.T) {
	f := newFixture(t, geometry.RectFromLTWH(0, 0, 10, 10), geometry.RectFromLTWH(100, 0, 100, 100), dnd.WithTolerance(dnd.TolerancePartial))
	f.down(f.item, 1, 1)
	f.move(95, 1) // proxy at 94..104: 40% inside
	f.move(97, 1) // 60%
	f.move(95, 1) // back to 40%, still intersecting
	f.up()
	f.expectLog(t, "start item", "enter [bin]", "exit bin")
}

func TestZeroAreaProxyNeverReports(t *testing.T) {
	for _, tol := range []dnd.Tolerance{dnd.TolerancePartial, dnd.ToleranceFull} {
		t.Run(tol.String(), func(t *testing.T) {
			errs := collect(t)
			f := newFixture(t, geometry.RectFromLTWH(0, 0, 0, 10), geometry.RectFromLTWH(0, 0, 50, 50), dnd.WithTolerance(tol))
			f.c.Begin(f.item, geometry.Offset{})
			f.c.Update(geometry.Offset{X: 20, Y: 20})
			f.c.End()
			f.expectLog(t, "start item")
			if errs.Count(errors.KindDegraded) == 0 {
				t.Error("expected a degraded report for the zero-area rectangle")
			}
		})
	}
}

func TestInPlaceDrag(t *testing.T) {
	f := newFixture(t, geometry.RectFromLTWH(0, 0, 50, 50), geometry.RectFromLTWH(40, 40, 60, 60), dnd.WithClone(false))
	f.down(f.item, 10, 10)
	if f.c.Session().Proxy() != f.item {
		t.Fatal("proxy should be the source in in-place mode")
	}
	f.move(40, 40)
	f.move(50, 50)
	if got := f.board.OffsetOf(f.item); got != (geometry.Offset{X: 40, Y: 40}) {
		t.Errorf("item offset = %v, want (40,40)", got)
	}
	_, mode, _ := f.item.Style()
	if mode != dnd.PositionRelative {
		t.Errorf("positioning = %v, want relative", mode)
	}
	f.up()
	f.expectLog(t, "start item", "enter [bin]", "drop [bin]")
	if f.item.HasClass("dragging") {
		t.Error("dragging class should be removed from an in-place proxy")
	}

	// A second drag continues from the applied position.
	f.down(f.item, 45, 45)
	f.move(55, 45)
	if got := f.board.OffsetOf(f.item); got != (geometry.Offset{X: 50, Y: 40}) {
		t.Errorf("item offset after second drag = %v, want (50,40)", got)
	}
}

func TestAcceptClass(t *testing.T) {
	t.Run("missing marker skips the pass", func(t *testing.T) {
		errs := collect(t)
		f := newFixture(t, geometry.RectFromLTWH(0, 0, 50, 50), geometry.RectFromLTWH(40, 40, 60, 60), dnd.WithAcceptClass("handle"))
		moves := 0
		f.c.OnMove("item", func(dnd.MoveEvent[node]) { moves++ })
		f.down(f.item, 10, 10)
		f.move(40, 40)
		f.up()
		f.expectLog(t, "start item")
		if moves != 1 {
			t.Errorf("move callbacks = %d, want 1", moves)
		}
		if errs.Count(errors.KindDegraded) != 1 {
			t.Errorf("degraded reports = %d, want 1", errs.Count(errors.KindDegraded))
		}
	})

	t.Run("descendant marker drives hit testing", func(t *testing.T) {
		f := newFixture(t, geometry.RectFromLTWH(0, 0, 50, 50), geometry.RectFromLTWH(60, 0, 40, 40), dnd.WithAcceptClass("handle"))
		f.board.Add(f.item, "grip", geometry.RectFromLTWH(0, 0, 10, 10), "handle")
		f.down(f.item, 5, 5)
		f.move(20, 5) // item at 15..65 overlaps the bin, grip at 15..25 does not
		if f.c.Tracker().Len() != 0 {
			t.Error("only the grip rectangle should count")
		}
		f.move(60, 5) // grip at 55..65
		f.up()
		f.expectLog(t, "start item", "enter [bin]", "drop [bin]")
	})

	t.Run("proxy carrying the marker uses its own rect", func(t *testing.T) {
		f := newFixture(t, geometry.RectFromLTWH(0, 0, 50, 50), geometry.RectFromLTWH(40, 40, 60, 60), dnd.WithAcceptClass("item"))
		f.down(f.item, 10, 10)
		f.move(20, 20)
		f.up()
		f.expectLog(t, "start item", "enter [bin]", "drop [bin]")
	})
}

func TestReentrantBeginAbortsPreviousSession(t *testing.T) {
	f := newFixture(t, geometry.RectFromLTWH(0, 0, 50, 50), geometry.RectFromLTWH(40, 40, 60, 60))
	f.down(f.item, 10, 10)
	f.move(20, 20)
	first := f.c.Session().Proxy()

	f.down(f.item, 10, 10)
	f.expectLog(t, "start item", "enter [bin]", "start item")
	if _, ok := f.board.Node(first.ID); ok {
		t.Error("previous proxy should be discarded")
	}
	if f.bin.HasClass("active") {
		t.Error("aborted session should revert drag-over classes")
	}
	if f.c.Tracker().Len() != 0 {
		t.Error("overlap set should be empty when a session starts")
	}
	if f.c.Session().Proxy() == first {
		t.Error("expected a fresh proxy")
	}
}

func TestBeginFromCallback(t *testing.T) {
	f := newFixture(t, geometry.RectFromLTWH(0, 0, 50, 50), geometry.RectFromLTWH(40, 40, 60, 60))
	restarted := false
	f.c.OnDrop("bin", func(e dnd.DropEvent[node]) {
		if !restarted {
			restarted = true
			f.c.Begin(e.Source, geometry.Offset{})
		}
	})
	f.down(f.item, 10, 10)
	f.move(20, 20)
	f.up()
	if !f.c.Active() {
		t.Fatal("session started from a drop callback should survive the release")
	}
	if f.c.Session().Source() != f.item {
		t.Error("unexpected source")
	}
}

func TestPointerCancel(t *testing.T) {
	f := newFixture(t, geometry.RectFromLTWH(0, 0, 50, 50), geometry.RectFromLTWH(40, 40, 60, 60))
	f.down(f.item, 10, 10)
	f.move(20, 20)
	f.c.HandlePointer(dnd.PointerEvent[node]{Phase: dnd.PointerPhaseCancel})
	f.up()
	f.expectLog(t, "start item", "enter [bin]")
	if len(f.board.ElementsByClass("item")) != 1 {
		t.Error("clone should be removed on cancel")
	}
}

func TestPanickingCallbackAbortsSession(t *testing.T) {
	errs := collect(t)
	f := newFixture(t, geometry.RectFromLTWH(0, 0, 50, 50), geometry.RectFromLTWH(40, 40, 60, 60))
	f.c.OnDropOver("bin", func(dnd.EnterEvent[node]) { panic("callback failure") })

	f.down(f.item, 10, 10)
	f.move(20, 20)

	if len(errs.Panics) != 1 || errs.Panics[0].Op != "dnd.HandlePointer" {
		t.Fatalf("expected one recovered panic, got %v", errs.Panics)
	}
	if f.c.Active() || f.c.Tracker().Len() != 0 {
		t.Error("session should be aborted with an empty overlap set")
	}
	if len(f.board.ElementsByClass("item")) != 1 {
		t.Error("clone should be removed")
	}
}

func TestDownOnNonDraggable(t *testing.T) {
	f := newFixture(t, geometry.RectFromLTWH(0, 0, 50, 50), geometry.RectFromLTWH(100, 100, 60, 60))
	f.down(f.bin, 120, 120)
	f.down(nil, 300, 300)
	f.move(10, 10)
	f.up()
	if f.c.Active() || len(f.log) != 0 {
		t.Errorf("no session expected, log = %v", f.log)
	}
}

func TestLiveMembership(t *testing.T) {
	f := newFixture(t, geometry.RectFromLTWH(0, 0, 50, 50), geometry.RectFromLTWH(300, 300, 10, 10))
	f.down(f.item, 10, 10)
	f.move(10, 10)
	late := f.board.Add(nil, "late", geometry.RectFromLTWH(20, 20, 10, 10), "bin")
	f.move(11, 11)
	f.up()
	f.expectLog(t, "start item", "enter [late]", "drop [late]")
	if !late.HasClass("dropped") {
		t.Error("element added mid-drag should be dropped on")
	}
}

func TestMultipleCategories(t *testing.T) {
	b := scene.NewBoard(geometry.Offset{}, geometry.Size{Width: 400, Height: 400})
	b.Add(nil, "card", geometry.RectFromLTWH(0, 0, 20, 20), "card", "item")
	b.Add(nil, "col1", geometry.RectFromLTWH(10, 0, 50, 50), "column")
	b.Add(nil, "col2", geometry.RectFromLTWH(15, 0, 50, 50), "column", "trash")
	c := dnd.New[node](b)

	var log []string
	rec := func(ev dnd.Event[node]) { log = append(log, scene.Describe(ev)) }
	c.On(dnd.EventStart, "card", rec)
	c.On(dnd.EventStart, "item", rec)
	c.On(dnd.EventDrop, "trash", rec)
	c.On(dnd.EventDrop, "column", rec)
	c.OnNamed("hover", "column", rec)

	card, _ := b.Node("card")
	c.Begin(card, geometry.Offset{})
	c.Update(geometry.Offset{X: 5})
	c.End()

	want := []string{
		"start card source=card proxy=card#1 at (0,0)",
		"start item source=card proxy=card#1 at (0,0)",
		"drop trash [col2] source=card",
		"drop column [col1 col2] source=card",
	}
	if !slices.Equal(log, want) {
		t.Errorf("log = %q\nwant %q", log, want)
	}
}

func TestSortableCategoryReportsSourceAndProxy(t *testing.T) {
	b := scene.NewBoard(geometry.Offset{}, geometry.Size{Width: 400, Height: 400})
	a := b.Add(nil, "a", geometry.RectFromLTWH(0, 0, 40, 40), "card")
	far := b.Add(nil, "b", geometry.RectFromLTWH(200, 0, 40, 40), "card")
	c := dnd.New[node](b)
	c.On(dnd.EventStart, "card", nil)
	c.On(dnd.EventDrop, "card", nil)

	c.Begin(a, geometry.Offset{X: 10, Y: 10})
	c.Update(geometry.Offset{X: 10, Y: 10})

	proxy := c.Session().Proxy()
	for _, el := range []node{a, proxy} {
		if !c.Tracker().Contains(el, "card") {
			t.Errorf("%s should overlap the proxy", el)
		}
	}
	if c.Tracker().Contains(far, "card") {
		t.Error("distant card should not be reported")
	}
	c.End()
	if !a.HasClass("dropped") {
		t.Error("source under the proxy should receive the drop")
	}
}

func TestTypedHelpersAcceptNilCallback(t *testing.T) {
	errs := collect(t)
	b := scene.NewBoard(geometry.Offset{}, geometry.Size{Width: 400, Height: 400})
	item := b.Add(nil, "item", geometry.RectFromLTWH(0, 0, 50, 50), "item")
	bin := b.Add(nil, "bin", geometry.RectFromLTWH(100, 0, 50, 50), "bin")
	c := dnd.New[node](b)
	c.OnStart("item", nil)
	c.OnMove("item", nil)
	c.OnDropOver("bin", nil)
	c.OnDropOut("bin", nil)
	c.OnDrop("bin", nil)

	c.HandlePointer(dnd.PointerEvent[node]{Phase: dnd.PointerPhaseDown, Position: geometry.Offset{X: 10, Y: 10}, Target: item})
	c.HandlePointer(dnd.PointerEvent[node]{Phase: dnd.PointerPhaseMove, Position: geometry.Offset{X: 110, Y: 10}})
	if !c.Active() {
		t.Fatal("nil start callback should still make the category draggable")
	}
	c.HandlePointer(dnd.PointerEvent[node]{Phase: dnd.PointerPhaseUp})

	if len(errs.Panics) != 0 {
		t.Fatalf("unexpected panics: %v", errs.Panics)
	}
	if !bin.HasClass("dropped") {
		t.Error("bin should be dropped on")
	}
}

func TestPanickingDropReleasesEndGuard(t *testing.T) {
	f := newFixture(t, geometry.RectFromLTWH(0, 0, 50, 50), geometry.RectFromLTWH(40, 40, 60, 60))
	fail := true
	f.c.OnDrop("bin", func(dnd.DropEvent[node]) {
		if fail {
			fail = false
			panic("drop failure")
		}
	})
	f.c.Begin(f.item, geometry.Offset{})
	f.c.Update(geometry.Offset{X: 10, Y: 10})

	func() {
		defer func() { _ = recover() }()
		f.c.End()
	}()
	if !f.c.Active() {
		t.Fatal("session should still be active after the panicking End")
	}

	f.c.End()
	if f.c.Active() {
		t.Error("a later End should tear the session down")
	}
	if len(f.board.ElementsByClass("item")) != 1 {
		t.Error("clone should be removed")
	}
}
