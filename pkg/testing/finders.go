package testing

import (
	"fmt"

	"github.com/go-drift/dnd/pkg/scene"
)

// Finder locates nodes on a board.
type Finder interface {
	// Evaluate returns all matching nodes (depth-first pre-order).
	Evaluate(board *scene.Board) []*scene.Node
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []*scene.Node
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *scene.Node {
	if len(r.nodes) == 0 {
		panic(fmt.Sprintf("Finder found no nodes: %s", r.describe()))
	}
	return r.nodes[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *scene.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*scene.Node { return r.nodes }

// Count returns the number of matches.
func (r FinderResult) Count() int { return len(r.nodes) }

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool { return len(r.nodes) > 0 }

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// ByID finds the node with the given ID.
func ByID(id string) Finder { return idFinder(id) }

type idFinder string

func (f idFinder) Evaluate(board *scene.Board) []*scene.Node {
	if n, ok := board.Node(string(f)); ok {
		return []*scene.Node{n}
	}
	return nil
}

func (f idFinder) Description() string { return fmt.Sprintf("ByID(%q)", string(f)) }

// ByClass finds every node carrying class.
func ByClass(class string) Finder { return classFinder(class) }

type classFinder string

func (f classFinder) Evaluate(board *scene.Board) []*scene.Node {
	return board.ElementsByClass(string(f))
}

func (f classFinder) Description() string { return fmt.Sprintf("ByClass(%q)", string(f)) }
