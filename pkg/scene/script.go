package scene

import (
	"fmt"
	"strings"

	"github.com/go-drift/dnd/pkg/dnd"
	"github.com/go-drift/dnd/pkg/geometry"
)

// Step is one scripted pointer sample.
//
// The pointer position is X/Y in page coordinates when both are given,
// otherwise the previous position moved by DX/DY. A down step with a Target
// and no X/Y starts at the target's center.
type Step struct {
	Phase  string   `yaml:"phase"`
	Target string   `yaml:"target,omitempty"`
	X      *float64 `yaml:"x,omitempty"`
	Y      *float64 `yaml:"y,omitempty"`
	DX     float64  `yaml:"dx,omitempty"`
	DY     float64  `yaml:"dy,omitempty"`
}

// PointerPhase parses the step's phase name.
func (s Step) PointerPhase() (dnd.PointerPhase, error) {
	switch strings.ToLower(s.Phase) {
	case "down":
		return dnd.PointerPhaseDown, nil
	case "move":
		return dnd.PointerPhaseMove, nil
	case "up":
		return dnd.PointerPhaseUp, nil
	case "cancel":
		return dnd.PointerPhaseCancel, nil
	}
	return 0, fmt.Errorf("unknown pointer phase %q", s.Phase)
}

// Cursor turns script steps into pointer events against a board, carrying
// the pointer position between steps.
type Cursor struct {
	Board    *Board
	Position geometry.Offset
}

// Next resolves step into a pointer event and advances the cursor.
func (c *Cursor) Next(step Step) (dnd.PointerEvent[*Node], error) {
	phase, err := step.PointerPhase()
	if err != nil {
		return dnd.PointerEvent[*Node]{}, err
	}

	var target *Node
	if step.Target != "" {
		n, ok := c.Board.Node(step.Target)
		if !ok {
			return dnd.PointerEvent[*Node]{}, fmt.Errorf("unknown target %q", step.Target)
		}
		target = n
	}

	switch {
	case step.X != nil && step.Y != nil:
		c.Position = geometry.Offset{X: *step.X, Y: *step.Y}
	case phase == dnd.PointerPhaseDown && target != nil:
		r := c.Board.BoundingRect(target)
		c.Position = geometry.Offset{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
	default:
		c.Position = c.Position.Add(geometry.Offset{X: step.DX, Y: step.DY})
	}

	if phase == dnd.PointerPhaseDown && target == nil {
		target, _ = c.Board.NodeAt(c.Position)
	}
	return dnd.PointerEvent[*Node]{Phase: phase, Position: c.Position, Target: target}, nil
}

// Replay feeds every script step into c.
func (s *Scene) Replay(c *dnd.Controller[*Node]) error {
	cur := &Cursor{Board: s.Board}
	for i, step := range s.File.Script {
		ev, err := cur.Next(step)
		if err != nil {
			return fmt.Errorf("script[%d]: %w", i, err)
		}
		c.HandlePointer(ev)
	}
	return nil
}
