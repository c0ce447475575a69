package testing

import (
	"fmt"

	"github.com/go-drift/dnd/pkg/dnd"
	"github.com/go-drift/dnd/pkg/geometry"
	"github.com/go-drift/dnd/pkg/scene"
)

// pointerState tracks the pointer between down and up.
type pointerState struct {
	position geometry.Offset
}

// Drag simulates a drag on the first node matched by finder, starting at its
// center. The node is used as the pointer-down target even when another node
// is painted above it.
func (t *Tester) Drag(finder Finder, delta geometry.Offset) error {
	return t.DragSteps(finder, delta, 1)
}

// DragSteps is like Drag but reaches delta in steps evenly spaced moves.
func (t *Tester) DragSteps(finder Finder, delta geometry.Offset, steps int) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Drag: finder matched no nodes: %s", finder.Description())
	}
	n := result.First()
	start := t.Center(n)
	if err := t.sendDown(start, n); err != nil {
		return err
	}
	if err := t.moveBy(start, delta, steps); err != nil {
		return err
	}
	return t.SendPointerUp(start.Add(delta))
}

// DragFrom simulates a drag from start by delta. The pointer-down target is
// found by hit testing start.
func (t *Tester) DragFrom(start, delta geometry.Offset) error {
	if err := t.SendPointerDown(start); err != nil {
		return err
	}
	if err := t.moveBy(start, delta, 1); err != nil {
		return err
	}
	return t.SendPointerUp(start.Add(delta))
}

func (t *Tester) moveBy(start, delta geometry.Offset, steps int) error {
	if steps < 1 {
		steps = 1
	}
	for i := 1; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		pos := geometry.Offset{X: start.X + delta.X*frac, Y: start.Y + delta.Y*frac}
		if err := t.SendPointerMove(pos); err != nil {
			return err
		}
	}
	return nil
}

// SendPointerDown hit tests pos and sends a pointer-down event there.
func (t *Tester) SendPointerDown(pos geometry.Offset) error {
	target, _ := t.board.NodeAt(pos)
	return t.sendDown(pos, target)
}

// SendPointerDownOn sends a pointer-down event at pos targeting n.
func (t *Tester) SendPointerDownOn(n *scene.Node, pos geometry.Offset) error {
	return t.sendDown(pos, n)
}

func (t *Tester) sendDown(pos geometry.Offset, target *scene.Node) error {
	if t.pointer != nil {
		return fmt.Errorf("pointer already down at (%g,%g)", t.pointer.position.X, t.pointer.position.Y)
	}
	t.pointer = &pointerState{position: pos}
	t.controller.HandlePointer(dnd.PointerEvent[*scene.Node]{
		Phase:    dnd.PointerPhaseDown,
		Position: pos,
		Target:   target,
	})
	return nil
}

// SendPointerMove sends a pointer-move event at pos.
func (t *Tester) SendPointerMove(pos geometry.Offset) error {
	if t.pointer == nil {
		return fmt.Errorf("pointer move without pointer down")
	}
	t.pointer.position = pos
	t.controller.HandlePointer(dnd.PointerEvent[*scene.Node]{
		Phase:    dnd.PointerPhaseMove,
		Position: pos,
	})
	return nil
}

// SendPointerUp sends a pointer-up event at pos.
func (t *Tester) SendPointerUp(pos geometry.Offset) error {
	if t.pointer == nil {
		return fmt.Errorf("pointer up without pointer down")
	}
	t.pointer = nil
	t.controller.HandlePointer(dnd.PointerEvent[*scene.Node]{
		Phase:    dnd.PointerPhaseUp,
		Position: pos,
	})
	return nil
}

// SendPointerCancel cancels the pointer at its last position.
func (t *Tester) SendPointerCancel() error {
	if t.pointer == nil {
		return fmt.Errorf("pointer cancel without pointer down")
	}
	pos := t.pointer.position
	t.pointer = nil
	t.controller.HandlePointer(dnd.PointerEvent[*scene.Node]{
		Phase:    dnd.PointerPhaseCancel,
		Position: pos,
	})
	return nil
}
