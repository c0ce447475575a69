package scene

import (
	"slices"

	"github.com/go-drift/dnd/pkg/dnd"
	"github.com/go-drift/dnd/pkg/geometry"
)

// Node is an element of a Board. Its layout slot is Offset (relative to the
// parent) and Size; a positional style may shift it from there.
type Node struct {
	ID    string
	Label string
	// Offset is the layout position relative to the parent node.
	Offset geometry.Offset
	Size   geometry.Size

	classes  []string
	parent   *Node
	children []*Node

	styled     bool
	style      geometry.Offset
	positioned dnd.Positioning
}

// Classes returns the node's classes in insertion order.
func (n *Node) Classes() []string {
	return slices.Clone(n.classes)
}

// HasClass reports whether n carries class.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.classes, class)
}

// AddClass adds class unless already present.
func (n *Node) AddClass(class string) {
	if !n.HasClass(class) {
		n.classes = append(n.classes, class)
	}
}

// RemoveClass removes class if present.
func (n *Node) RemoveClass(class string) {
	n.classes = slices.DeleteFunc(n.classes, func(c string) bool { return c == class })
}

// Parent returns the parent node, or nil when detached or for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes in document order.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// Style returns the positional style and whether one has been applied.
func (n *Node) Style() (geometry.Offset, dnd.Positioning, bool) {
	return n.style, n.positioned, n.styled
}

func (n *Node) appendChild(child *Node) {
	child.detach()
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.children = slices.DeleteFunc(p.children, func(c *Node) bool { return c == n })
	n.parent = nil
}

// walk visits n's descendants depth first in document order until fn
// returns false.
func (n *Node) walk(fn func(*Node) bool) bool {
	for _, child := range n.children {
		if !fn(child) || !child.walk(fn) {
			return false
		}
	}
	return true
}

func (n *Node) deepCopy(suffix string) *Node {
	cp := &Node{
		ID:         n.ID + suffix,
		Label:      n.Label,
		Offset:     n.Offset,
		Size:       n.Size,
		classes:    slices.Clone(n.classes),
		styled:     n.styled,
		style:      n.style,
		positioned: n.positioned,
	}
	for _, child := range n.children {
		cc := child.deepCopy(suffix)
		cc.parent = cp
		cp.children = append(cp.children, cc)
	}
	return cp
}
