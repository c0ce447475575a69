// Package scene provides an in-memory element tree that implements
// dnd.Host, along with a YAML scene format for describing boards, settings
// and scripted pointer input.
package scene

import (
	"fmt"
	"strconv"

	"github.com/go-drift/dnd/pkg/dnd"
	"github.com/go-drift/dnd/pkg/geometry"
)

// Board is the drag-and-drop container. Node positions are relative to the
// board; Origin places the board on the page.
type Board struct {
	Origin geometry.Offset
	Size   geometry.Size

	root   *Node
	clones int
}

var _ dnd.Host[*Node] = (*Board)(nil)

// NewBoard returns an empty board at origin.
func NewBoard(origin geometry.Offset, size geometry.Size) *Board {
	return &Board{
		Origin: origin,
		Size:   size,
		root:   &Node{ID: "board", Size: size},
	}
}

// Root returns the container node.
func (b *Board) Root() *Node { return b.root }

// Add creates a node under parent (the board when parent is nil) with the
// given layout rectangle, relative to parent.
func (b *Board) Add(parent *Node, id string, rect geometry.Rect, classes ...string) *Node {
	if parent == nil {
		parent = b.root
	}
	n := &Node{
		ID:     id,
		Offset: rect.TopLeft(),
		Size:   rect.Size(),
	}
	for _, c := range classes {
		n.AddClass(c)
	}
	parent.appendChild(n)
	return n
}

// Node returns the attached node with the given ID.
func (b *Board) Node(id string) (*Node, bool) {
	var found *Node
	b.root.walk(func(n *Node) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// Nodes returns every attached node in document order.
func (b *Board) Nodes() []*Node {
	var out []*Node
	b.root.walk(func(n *Node) bool {
		out = append(out, n)
		return true
	})
	return out
}

// NodeAt returns the deepest, last-painted node whose bounding rectangle
// contains the page position p.
func (b *Board) NodeAt(p geometry.Offset) (*Node, bool) {
	var hit *Node
	b.root.walk(func(n *Node) bool {
		if b.BoundingRect(n).Contains(p) {
			hit = n
		}
		return true
	})
	return hit, hit != nil
}

// Remove detaches a node from the board.
func (b *Board) Remove(n *Node) {
	if n == nil || n == b.root {
		return
	}
	n.detach()
}

// ElementsByClass implements dnd.ElementTree.
func (b *Board) ElementsByClass(class string) []*Node {
	var out []*Node
	b.root.walk(func(n *Node) bool {
		if n.HasClass(class) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// HasClass implements dnd.ElementTree.
func (b *Board) HasClass(n *Node, class string) bool {
	return n != nil && n.HasClass(class)
}

// QueryClass implements dnd.ElementTree.
func (b *Board) QueryClass(n *Node, class string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	var found *Node
	n.walk(func(d *Node) bool {
		if d.HasClass(class) {
			found = d
			return false
		}
		return true
	})
	return found, found != nil
}

// Clone implements dnd.ElementTree. The copy includes descendants and gets
// a fresh ID suffix; it stays detached until appended.
func (b *Board) Clone(n *Node) *Node {
	b.clones++
	return n.deepCopy("#" + strconv.Itoa(b.clones))
}

// Append implements dnd.ElementTree.
func (b *Board) Append(n *Node) {
	b.root.appendChild(n)
}

// OffsetOf implements dnd.Layout: the node's rendered position relative to
// the board, accumulated through its ancestors.
func (b *Board) OffsetOf(n *Node) geometry.Offset {
	var off geometry.Offset
	for cur := n; cur != nil && cur != b.root; cur = cur.parent {
		if cur.styled && cur.positioned == dnd.PositionAbsolute {
			return off.Add(cur.style)
		}
		off = off.Add(cur.Offset)
		if cur.styled {
			off = off.Add(cur.style)
		}
	}
	return off
}

// BoundingRect implements dnd.Layout.
func (b *Board) BoundingRect(n *Node) geometry.Rect {
	return geometry.RectFromOffsetSize(b.Origin.Add(b.OffsetOf(n)), n.Size)
}

// Position implements dnd.Layout.
func (b *Board) Position(n *Node) geometry.Offset {
	return n.style
}

// SetPosition implements dnd.Layout.
func (b *Board) SetPosition(n *Node, pos geometry.Offset, mode dnd.Positioning) {
	n.styled = true
	n.style = pos
	n.positioned = mode
}

// AddClass implements dnd.Presenter.
func (b *Board) AddClass(n *Node, class string) { n.AddClass(class) }

// RemoveClass implements dnd.Presenter.
func (b *Board) RemoveClass(n *Node, class string) { n.RemoveClass(class) }

// String renders a short description of a node for logs.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.ID
}

// Describe returns "id(l,t)-(r,b)" for n on this board.
func (b *Board) Describe(n *Node) string {
	r := b.BoundingRect(n)
	return fmt.Sprintf("%s(%g,%g)-(%g,%g)", n.ID, r.Left, r.Top, r.Right, r.Bottom)
}
