package scene

import (
	"fmt"
	"strings"

	"github.com/go-drift/dnd/pkg/dnd"
)

// Scene is a built scene file: a board plus resolved settings.
type Scene struct {
	Source   string
	File     *File
	Board    *Board
	Settings dnd.Settings
}

// NewController returns a controller over the scene's board using the
// scene's settings.
func (s *Scene) NewController() *dnd.Controller[*Node] {
	return dnd.New[*Node](s.Board, dnd.WithSettings(s.Settings))
}

// Wire registers fn for every event kind of the scene's declared draggable
// and droppable categories.
func (s *Scene) Wire(c *dnd.Controller[*Node], fn dnd.Handler[*Node]) {
	for _, category := range s.File.Draggables {
		c.On(dnd.EventStart, dnd.Category(category), fn)
		c.On(dnd.EventMove, dnd.Category(category), fn)
	}
	for _, category := range s.File.Droppables {
		c.On(dnd.EventDropOver, dnd.Category(category), fn)
		c.On(dnd.EventDropOut, dnd.Category(category), fn)
		c.On(dnd.EventDrop, dnd.Category(category), fn)
	}
}

// Describe formats an event as a single log line, e.g. "enter bin [bin1]".
func Describe(ev dnd.Event[*Node]) string {
	switch e := ev.(type) {
	case dnd.StartEvent[*Node]:
		return fmt.Sprintf("start %s source=%s proxy=%s at (%g,%g)", e.Category, e.Source, e.Proxy, e.Pointer.X, e.Pointer.Y)
	case dnd.MoveEvent[*Node]:
		return fmt.Sprintf("move %s proxy=%s to (%g,%g)", e.Category, e.Proxy, e.Position.X, e.Position.Y)
	case dnd.EnterEvent[*Node]:
		return fmt.Sprintf("enter %s %s", e.Category, ids(e.Overlapped))
	case dnd.ExitEvent[*Node]:
		return fmt.Sprintf("exit %s %s", e.Category, e.Element)
	case dnd.DropEvent[*Node]:
		return fmt.Sprintf("drop %s %s source=%s", e.Category, ids(e.Dropped), e.Source)
	default:
		return fmt.Sprintf("%s %s", ev.Kind(), ev.EventCategory())
	}
}

func ids(nodes []*Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
