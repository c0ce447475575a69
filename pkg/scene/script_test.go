package scene

import (
	"slices"
	"testing"

	"github.com/go-drift/dnd/pkg/dnd"
	"github.com/go-drift/dnd/pkg/geometry"
)

func TestReplayBasic(t *testing.T) {
	sc, err := Load("testdata/basic.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c := sc.NewController()
	var log []string
	sc.Wire(c, func(ev dnd.Event[*Node]) { log = append(log, Describe(ev)) })

	if err := sc.Replay(c); err != nil {
		t.Fatalf("Replay: %v", err)
	}

	want := []string{
		"start item source=item proxy=item#1 at (25,25)",
		"move item proxy=item#1 to (30,30)",
		"enter bin [bin]",
		"drop bin [bin] source=item",
	}
	if !slices.Equal(log, want) {
		t.Errorf("event log:\n%q\nwant:\n%q", log, want)
	}
	if c.Active() {
		t.Error("session should be idle after up")
	}
	if _, ok := sc.Board.Node("item#1"); ok {
		t.Error("clone should be removed from the board")
	}
	bin, _ := sc.Board.Node("bin")
	if !bin.HasClass("active") {
		t.Error("bin keeps the drag-over class after the drop")
	}
	if bin.HasClass("dropped") {
		t.Error("dropClass was disabled by the scene")
	}
}

func TestCursor(t *testing.T) {
	b := NewBoard(geometry.Offset{X: 10, Y: 10}, geometry.Size{Width: 100, Height: 100})
	item := b.Add(nil, "item", geometry.RectFromLTWH(0, 0, 20, 20), "item")
	cur := &Cursor{Board: b}

	ev, err := cur.Next(Step{Phase: "down", Target: "item"})
	if err != nil {
		t.Fatal(err)
	}
	if ev.Target != item || ev.Position != (geometry.Offset{X: 20, Y: 20}) {
		t.Errorf("down = %+v, want item at its center (20,20)", ev)
	}

	ev, _ = cur.Next(Step{Phase: "move", DX: 5, DY: -5})
	if ev.Phase != dnd.PointerPhaseMove || ev.Position != (geometry.Offset{X: 25, Y: 15}) {
		t.Errorf("move = %+v", ev)
	}

	x, y := 15.0, 15.0
	ev, _ = cur.Next(Step{Phase: "down", X: &x, Y: &y})
	if ev.Target != item {
		t.Errorf("down without target should hit test, got %v", ev.Target)
	}

	if _, err := cur.Next(Step{Phase: "down", Target: "ghost"}); err == nil {
		t.Error("expected error for unknown target")
	}
}
