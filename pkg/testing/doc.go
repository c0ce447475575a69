// Package testing provides a drag-and-drop test harness for scene boards.
//
// # Quick Start
//
// Build a board, register categories, drag, and assert on the event log:
//
//	func TestDropOnBin(t *testing.T) {
//	    board := scene.NewBoard(geometry.Offset{}, geometry.Size{Width: 200, Height: 200})
//	    board.Add(nil, "card", geometry.RectFromLTWH(0, 0, 40, 40), "card")
//	    board.Add(nil, "bin", geometry.RectFromLTWH(100, 0, 60, 60), "bin")
//
//	    tester := dndtest.NewTesterWithT(t, board)
//	    tester.Draggable("card")
//	    tester.Droppable("bin")
//
//	    tester.Drag(dndtest.ByID("card"), geometry.Offset{X: 110})
//
//	    if tester.Recorder().Count(dnd.EventDrop) != 1 {
//	        t.Errorf("events: %q", tester.Recorder().Lines())
//	    }
//	}
//
// # Snapshot Testing
//
// Capture the event log and board state and compare against a golden file:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/drop_on_bin.snapshot.json")
//
// Update snapshots with:
//
//	DND_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import dndtest "github.com/go-drift/dnd/pkg/testing"
package testing
