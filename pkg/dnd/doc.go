// Package dnd implements pointer-driven drag and drop for a bounded container.
//
// A [Controller] is bound to one container through a [Host] implementation,
// which supplies element lookup, bounding rectangles, offsets, cloning and
// class toggling. Elements are opaque handles of any comparable type.
//
// # Categories
//
// Elements are grouped into categories, expressed as classes on host
// elements. Draggable and droppable categories live in separate namespaces:
// registering a start or move callback makes a category draggable, and
// registering a dropover, dropout or drop callback makes it droppable.
//
//	c := dnd.New[*scene.Node](board, dnd.WithTolerance(dnd.TolerancePartial))
//	c.OnStart("card", func(e dnd.StartEvent[*scene.Node]) { ... })
//	c.OnDropOver("column", func(e dnd.EnterEvent[*scene.Node]) { ... })
//	c.OnDrop("column", func(e dnd.DropEvent[*scene.Node]) { ... })
//
// # Lifecycle
//
// Pointer-down on an element carrying a draggable category starts a session
// and creates the proxy (a clone of the source, or the source itself). Every
// pointer-move repositions the proxy, fires move callbacks and reconciles the
// set of overlapped drop targets: each droppable element that starts to
// overlap fires exactly one dropover, and each one that stops fires exactly
// one dropout. Pointer-up fires one drop per category that still has
// overlapped members and tears the session down.
//
// Callbacks run synchronously on the caller's goroutine, in registration
// order. A Controller is not safe for concurrent use.
package dnd
