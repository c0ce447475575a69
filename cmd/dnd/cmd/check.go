package cmd

import (
	"fmt"

	"github.com/go-drift/dnd/pkg/scene"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Validate scene files",
		Long: `Load and validate one or more scene files.

Each file is parsed, its format version checked, its element tree built and
its script targets resolved. Declared categories that match no element are
reported as warnings.`,
		Usage: "dnd check <scene.yaml>...",
		Run:   runCheck,
	})
}

func runCheck(env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one scene file is required\n\nUsage: dnd check <scene.yaml>...")
	}

	failed := 0
	for _, path := range args {
		sc, err := loadScene(env, path)
		if err != nil {
			fmt.Fprintf(env.Stderr, "FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(env.Stdout, "ok   %s  %d elements, %d steps, tolerance=%s\n",
			path, len(sc.Board.Nodes())-1, len(sc.File.Script), sc.Settings.Tolerance)
		for _, w := range sceneWarnings(sc) {
			fmt.Fprintf(env.Stdout, "     warning: %s\n", w)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenes failed", failed, len(args))
	}
	return nil
}

func loadScene(env *Env, path string) (*scene.Scene, error) {
	sc, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	env.Config.Apply(sc)
	return sc, nil
}

func sceneWarnings(sc *scene.Scene) []string {
	var out []string
	check := func(kind string, categories []string) {
		for _, c := range categories {
			if len(sc.Board.ElementsByClass(c)) == 0 {
				out = append(out, fmt.Sprintf("%s category %q matches no element", kind, c))
			}
		}
	}
	check("draggable", sc.File.Draggables)
	check("droppable", sc.File.Droppables)
	if len(sc.File.Draggables) == 0 {
		out = append(out, "no draggable categories declared")
	}
	return out
}
