package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-drift/dnd/cmd/dnd/internal/raster"
	"github.com/go-drift/dnd/pkg/dnd"
	"github.com/go-drift/dnd/pkg/errors"
	"github.com/go-drift/dnd/pkg/scene"
)

func init() {
	RegisterCommand(&Command{
		Name:  "replay",
		Short: "Replay a scene's scripted pointer input",
		Long: `Feed a scene's script through the drag-and-drop controller and print
every fired event, followed by the final classes of each element.

Flags:
  -v, --verbose    Also report degraded reconciliation passes
  --no-moves       Omit move events from the log
  --png FILE       Write the final board as a PNG image

The PNG scale comes from replay.scale in dnd.yaml.`,
		Usage: "dnd replay <scene.yaml> [-v] [--no-moves] [--png FILE]",
		Run:   runReplay,
	})
}

type replayOptions struct {
	verbose bool
	noMoves bool
	png     string
}

func runReplay(env *Env, args []string) error {
	var path string
	var opts replayOptions
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-v", "--verbose":
			opts.verbose = true
		case "--no-moves":
			opts.noMoves = true
		case "--png":
			if i+1 >= len(args) {
				return fmt.Errorf("--png requires a file path")
			}
			opts.png = args[i+1]
			i++
		default:
			if strings.HasPrefix(args[i], "-") {
				return fmt.Errorf("unknown flag %q", args[i])
			}
			if path != "" {
				return fmt.Errorf("replay takes a single scene file")
			}
			path = args[i]
		}
	}
	if path == "" {
		return fmt.Errorf("scene file is required\n\nUsage: dnd replay <scene.yaml>")
	}

	sc, err := loadScene(env, path)
	if err != nil {
		return err
	}

	prev := errors.SetHandler(&errors.LogHandler{Verbose: opts.verbose, Out: env.Stderr})
	defer errors.SetHandler(prev)

	c := sc.NewController()
	sc.Wire(c, func(ev dnd.Event[*scene.Node]) {
		if opts.noMoves && ev.Kind() == dnd.EventMove {
			return
		}
		fmt.Fprintln(env.Stdout, scene.Describe(ev))
	})
	if err := sc.Replay(c); err != nil {
		return err
	}
	if c.Active() {
		fmt.Fprintln(env.Stdout, "warning: script ended mid-drag; aborting")
		c.Abort()
	}

	fmt.Fprintln(env.Stdout, "final:")
	for _, n := range sc.Board.Nodes() {
		if n == sc.Board.Root() {
			continue
		}
		fmt.Fprintf(env.Stdout, "  %s [%s]\n", sc.Board.Describe(n), strings.Join(n.Classes(), " "))
	}

	if opts.png != "" {
		if err := writePNG(opts.png, sc, env.Config.Scale); err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "wrote %s\n", opts.png)
	}
	return nil
}

func writePNG(path string, sc *scene.Scene, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := raster.WritePNG(f, sc.Board, sc.Settings, scale); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
