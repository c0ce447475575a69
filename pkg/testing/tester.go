package testing

import (
	"testing"

	"github.com/go-drift/dnd/pkg/dnd"
	"github.com/go-drift/dnd/pkg/errors"
	"github.com/go-drift/dnd/pkg/geometry"
	"github.com/go-drift/dnd/pkg/scene"
)

// Tester drives a drag-and-drop controller over a scene board the way a
// single pointer would. Every event fired for a category registered through
// the tester is captured by its Recorder, and errors reported during the
// test go to an in-memory collector instead of stderr.
type Tester struct {
	board      *scene.Board
	controller *dnd.Controller[*scene.Node]
	recorder   *Recorder
	collector  *errors.Collector
	prev       errors.ErrorHandler
	pointer    *pointerState
}

// NewTester creates a tester for board. Call Cleanup() when done, or use
// NewTesterWithT() instead.
func NewTester(board *scene.Board, opts ...dnd.Option) *Tester {
	collector := &errors.Collector{}
	return &Tester{
		board:      board,
		controller: dnd.New[*scene.Node](board, opts...),
		recorder:   &Recorder{},
		collector:  collector,
		prev:       errors.SetHandler(collector),
	}
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T, board *scene.Board, opts ...dnd.Option) *Tester {
	tester := NewTester(board, opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// FromScene creates a tester for a loaded scene, using its settings and
// recording every category the scene declares.
func FromScene(t *testing.T, sc *scene.Scene) *Tester {
	tester := NewTesterWithT(t, sc.Board, dnd.WithSettings(sc.Settings))
	sc.Wire(tester.controller, tester.recorder.Handle)
	return tester
}

// Cleanup aborts any drag still in flight and restores the previous error
// handler. Must be called if not using NewTesterWithT.
func (t *Tester) Cleanup() {
	t.controller.Abort()
	t.pointer = nil
	errors.SetHandler(t.prev)
}

// Board returns the board under test.
func (t *Tester) Board() *scene.Board { return t.board }

// Controller returns the controller under test.
func (t *Tester) Controller() *dnd.Controller[*scene.Node] { return t.controller }

// Recorder returns the event recorder.
func (t *Tester) Recorder() *Recorder { return t.recorder }

// Errors returns everything reported through pkg/errors since the tester
// was created.
func (t *Tester) Errors() *errors.Collector { return t.collector }

// Draggable registers the recorder for start and move events of each
// category.
func (t *Tester) Draggable(categories ...dnd.Category) {
	for _, category := range categories {
		t.controller.On(dnd.EventStart, category, t.recorder.Handle)
		t.controller.On(dnd.EventMove, category, t.recorder.Handle)
	}
}

// Droppable registers the recorder for dropover, dropout and drop events of
// each category.
func (t *Tester) Droppable(categories ...dnd.Category) {
	for _, category := range categories {
		t.controller.On(dnd.EventDropOver, category, t.recorder.Handle)
		t.controller.On(dnd.EventDropOut, category, t.recorder.Handle)
		t.controller.On(dnd.EventDrop, category, t.recorder.Handle)
	}
}

// Find evaluates finder against the board.
func (t *Tester) Find(finder Finder) FinderResult {
	return FinderResult{nodes: finder.Evaluate(t.board), finder: finder}
}

// Center returns the page-space center of n.
func (t *Tester) Center(n *scene.Node) geometry.Offset {
	r := t.board.BoundingRect(n)
	return geometry.Offset{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}
