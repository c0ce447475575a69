// Package term hosts a scene in the terminal: the board is drawn as cells and
// mouse input drives the drag-and-drop controller.
package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/dnd/pkg/dnd"
	"github.com/go-drift/dnd/pkg/geometry"
	"github.com/go-drift/dnd/pkg/scene"
)

// Fill runes per node state.
const (
	runeIdle     = '·'
	runeActive   = '▒'
	runeDropped  = '█'
	runeDragging = '▓'
)

const logLines = 3

// Options configures an App.
type Options struct {
	// CellWidth and CellHeight are the page units covered by one cell.
	CellWidth  float64
	CellHeight float64
	Tones      Tones
}

// App is a single-goroutine terminal host for one scene.
type App struct {
	screen     tcell.Screen
	scene      *scene.Scene
	controller *dnd.Controller[*scene.Node]
	opts       Options

	buttons tcell.ButtonMask
	cell    [2]int
	log     []string
}

// New wires a controller for sc and draws onto screen, which must already
// be initialized.
func New(screen tcell.Screen, sc *scene.Scene, opts Options) *App {
	if opts.CellWidth <= 0 {
		opts.CellWidth = 5
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 10
	}
	a := &App{
		screen:     screen,
		scene:      sc,
		controller: sc.NewController(),
		opts:       opts,
	}
	sc.Wire(a.controller, a.onEvent)
	return a
}

// Run opens the terminal, hosts sc until the user quits, and restores the
// terminal.
func Run(sc *scene.Scene, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	New(screen, sc, opts).Loop()
	return nil
}

// Controller returns the hosted controller.
func (a *App) Controller() *dnd.Controller[*scene.Node] { return a.controller }

// Log returns the most recent event lines, oldest first.
func (a *App) Log() []string { return a.log }

// Loop draws and handles events until quit or the screen is finalized.
func (a *App) Loop() {
	a.Draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		if !a.HandleEvent(ev) {
			return
		}
		a.Draw()
	}
}

// HandleEvent processes one terminal event. It returns false when the user
// asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			a.controller.Abort()
			return false
		}
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.handleMouse(x, y, ev.Buttons())
	}
	return true
}

func (a *App) handleMouse(x, y int, buttons tcell.ButtonMask) {
	prev := a.buttons
	a.buttons = buttons
	moved := a.cell != [2]int{x, y}
	a.cell = [2]int{x, y}
	pos := a.PagePoint(x, y)

	pressed := buttons&tcell.Button1 != 0
	wasPressed := prev&tcell.Button1 != 0

	switch {
	case pressed && !wasPressed:
		target, _ := a.scene.Board.NodeAt(pos)
		a.controller.HandlePointer(dnd.PointerEvent[*scene.Node]{Phase: dnd.PointerPhaseDown, Position: pos, Target: target})
	case pressed && buttons&tcell.Button2 != 0:
		a.controller.HandlePointer(dnd.PointerEvent[*scene.Node]{Phase: dnd.PointerPhaseCancel, Position: pos})
	case pressed && moved:
		a.controller.HandlePointer(dnd.PointerEvent[*scene.Node]{Phase: dnd.PointerPhaseMove, Position: pos})
	case !pressed && wasPressed:
		if moved {
			a.controller.HandlePointer(dnd.PointerEvent[*scene.Node]{Phase: dnd.PointerPhaseMove, Position: pos})
		}
		a.controller.HandlePointer(dnd.PointerEvent[*scene.Node]{Phase: dnd.PointerPhaseUp, Position: pos})
	}
}

// PagePoint maps the center of cell (x, y) to page coordinates.
func (a *App) PagePoint(x, y int) geometry.Offset {
	return a.scene.Board.Origin.Add(geometry.Offset{
		X: (float64(x) + 0.5) * a.opts.CellWidth,
		Y: (float64(y) + 0.5) * a.opts.CellHeight,
	})
}

func (a *App) cellRect(n *scene.Node) (x0, y0, x1, y1 int) {
	r := a.scene.Board.BoundingRect(n)
	o := a.scene.Board.Origin
	x0 = int(math.Floor((r.Left - o.X) / a.opts.CellWidth))
	y0 = int(math.Floor((r.Top - o.Y) / a.opts.CellHeight))
	x1 = max(int(math.Ceil((r.Right-o.X)/a.opts.CellWidth)), x0+1)
	y1 = max(int(math.Ceil((r.Bottom-o.Y)/a.opts.CellHeight)), y0+1)
	return x0, y0, x1, y1
}

func (a *App) onEvent(ev dnd.Event[*scene.Node]) {
	a.log = append(a.log, scene.Describe(ev))
	if len(a.log) > logLines {
		a.log = a.log[len(a.log)-logLines:]
	}
	if a.opts.Tones == nil {
		return
	}
	switch ev.Kind() {
	case dnd.EventDropOver:
		a.opts.Tones.Tone(enterTone, toneLen)
	case dnd.EventDrop:
		a.opts.Tones.Tone(dropTone, toneLen)
	}
}

// Draw paints the board and the event log.
func (a *App) Draw() {
	a.screen.Clear()
	board := a.scene.Board
	settings := a.controller.Settings

	for _, n := range board.Nodes() {
		if n == board.Root() {
			continue
		}
		fill, style := nodeLook(n, settings)
		x0, y0, x1, y1 := a.cellRect(n)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				a.screen.SetContent(x, y, fill, nil, style)
			}
		}
		name := n.Label
		if name == "" {
			name = n.ID
		}
		a.drawText(x0, y0, x1, name, style.Bold(true))
	}

	w, h := a.screen.Size()
	status := fmt.Sprintf("%s  tolerance=%s  esc quits", a.scene.Source, settings.Tolerance)
	a.drawText(0, h-1, w, status, tcell.StyleDefault.Reverse(true))
	for i, line := range a.log {
		a.drawText(0, h-1-len(a.log)+i, w, line, tcell.StyleDefault)
	}
	a.screen.Show()
}

func (a *App) drawText(x, y, limit int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= limit {
			return
		}
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func nodeLook(n *scene.Node, settings dnd.Settings) (rune, tcell.Style) {
	has := func(class string) bool { return class != "" && n.HasClass(class) }
	switch {
	case has(settings.DraggingClass):
		return runeDragging, tcell.StyleDefault.Foreground(tcell.ColorBlue)
	case has(settings.DropClass):
		return runeDropped, tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case has(settings.DragOverClass):
		return runeActive, tcell.StyleDefault.Foreground(tcell.ColorOrange)
	default:
		return runeIdle, tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
}
