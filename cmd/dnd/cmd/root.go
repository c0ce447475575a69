// Package cmd implements the dnd CLI commands.
//
// A root command dispatches to subcommands (check, replay, play), each
// registered from its own file.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-drift/dnd/cmd/dnd/internal/config"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(env *Env, args []string) error
	SubCommands []*Command
}

// Env is what a command runs against: output streams and the resolved
// dnd.yaml configuration.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Config *config.Resolved
}

var rootCmd = &Command{
	Name:  "dnd",
	Short: "dnd - drag-and-drop scene runner",
	Long: `dnd loads drag-and-drop scene files, validates them, replays their
scripted pointer input through the overlap tracker, and hosts them
interactively in the terminal.

Use "dnd <command> --help" for more information about a command.`,
	Usage: "dnd <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printHelp(stdout, rootCmd)
		return nil
	}

	// Handle global flags and extract --config
	var configPath string
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(stdout, rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "dnd version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--config":
			if i+1 >= len(args) {
				return fmt.Errorf("--config requires a file path")
			}
			configPath = args[i+1]
			i++
		default:
			if strings.HasPrefix(arg, "--config=") {
				configPath = strings.TrimPrefix(arg, "--config=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(stdout, rootCmd)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(stderr, rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(stdout, cmd)
			return nil
		}
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	return cmd.Run(&Env{Stdout: stdout, Stderr: stderr, Config: cfg}, cmdArgs)
}

func loadConfig(path string) (*config.Resolved, error) {
	if path != "" {
		return config.ResolveFile(path)
	}
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Resolve(dir)
}

func printHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  --version            Show version information")
	fmt.Fprintln(w, "  --config FILE        Settings file (default: ./dnd.yaml when present)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  dnd check scenes/*.yaml          Validate scene files")
	fmt.Fprintln(w, "  dnd replay board.yaml --png out.png")
	fmt.Fprintln(w, "  dnd play board.yaml --sound      Drag with the mouse in the terminal")
}

func printCommandHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
}
