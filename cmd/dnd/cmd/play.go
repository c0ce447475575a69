package cmd

import (
	"fmt"
	"strings"

	"github.com/go-drift/dnd/cmd/dnd/internal/term"
	"github.com/go-drift/dnd/pkg/errors"
)

func init() {
	RegisterCommand(&Command{
		Name:  "play",
		Short: "Drag elements of a scene with the mouse",
		Long: `Host a scene in the terminal. Press the left button on a draggable
element, move, and release to drop. A right click during a drag cancels it.
Esc, q or Ctrl-C quits.

Flags:
  --sound    Play a tone on drop-over and drop (also play.sound in dnd.yaml)

One terminal cell covers play.cellWidth x play.cellHeight page units
(default 5x10).`,
		Usage: "dnd play <scene.yaml> [--sound]",
		Run:   runPlay,
	})
}

func runPlay(env *Env, args []string) error {
	var path string
	sound := env.Config.Sound
	for _, arg := range args {
		switch arg {
		case "--sound":
			sound = true
		default:
			if strings.HasPrefix(arg, "-") {
				return fmt.Errorf("unknown flag: %s", arg)
			}
			if path != "" {
				return fmt.Errorf("play takes a single scene file")
			}
			path = arg
		}
	}
	if path == "" {
		return fmt.Errorf("scene file is required\n\nUsage: dnd play <scene.yaml>")
	}

	sc, err := loadScene(env, path)
	if err != nil {
		return err
	}

	opts := term.Options{
		CellWidth:  env.Config.CellWidth,
		CellHeight: env.Config.CellHeight,
	}
	prev := errors.SetHandler(&errors.LogHandler{Out: env.Stderr})
	defer errors.SetHandler(prev)

	if sound {
		if tones, closeFn := openTones(); tones != nil {
			defer closeFn()
			opts.Tones = tones
		}
	}
	return term.Run(sc, opts)
}

var newSpeaker = term.NewSpeaker

// openTones opens the audio device. A failure is reported and play continues
// silently.
func openTones() (term.Tones, func()) {
	sp, err := newSpeaker()
	if err != nil {
		errors.Report(&errors.DndError{
			Op:   "term.NewSpeaker",
			Kind: errors.KindHost,
			Err:  fmt.Errorf("sound disabled: %w", err),
		})
		return nil, nil
	}
	return sp, sp.Close
}
