// Package cmd implements the CLI command structure for taskbook.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskbook/internal/config"
	"github.com/nibzard/taskbook/internal/logging"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries what every subcommand needs.
type app struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	logger  *log.Logger
	stdout  io.Writer
	stderr  io.Writer
}

// Run executes the taskbook CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskbook", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}

	a := &app{
		cfg:     cws.Config,
		sources: cws,
		stdout:  stdout,
		stderr:  stderr,
	}
	if *showVersion {
		return a.versionCommand()
	}

	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	opts, err := logging.OptionsFromStrings(a.cfg.LogLevel, a.cfg.LogFormat, a.cfg.LogTimestamps, a.cfg.LogCaller)
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	a.logger = logging.New(stderr, opts)
	a.logger.Debug("config loaded", "task_file", a.cfg.TaskFile, "files", cws.Files)

	// Determine the subcommand
	// If no args or first arg is a flag, use "list" as default
	subcommand := "list"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	// Execute the subcommand
	switch subcommand {
	case "add":
		return a.addCommand(remainingArgs, "")
	case "todo":
		return a.addCommand(remainingArgs, "todo")
	case "list", "ls":
		return a.listCommand(remainingArgs)
	case "done", "mark":
		return a.markCommand(remainingArgs, true)
	case "undone", "unmark":
		return a.markCommand(remainingArgs, false)
	case "delete", "rm":
		return a.deleteCommand(remainingArgs)
	case "update":
		return a.updateCommand(remainingArgs)
	case "records":
		return a.recordsCommand(remainingArgs)
	case "import":
		return a.importCommand(remainingArgs)
	case "validate":
		return a.validateCommand(remainingArgs)
	case "init":
		return a.initCommand(remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "schema":
		return a.schemaCommand(remainingArgs)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// versionCommand prints version information.
func (a *app) versionCommand() error {
	fmt.Fprintf(a.stdout, "taskbook version %s\n", Version)
	return nil
}

// newFlagSet returns a subcommand flag set that reports errors to stderr.
func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("taskbook "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Taskbook - a small task list keeper")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskbook [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list [-done|-pending]             List tasks (default command)")
	fmt.Fprintln(w, "  add [-kind K] [-priority P] text  Add a task")
	fmt.Fprintln(w, "  todo text                         Add a todo task")
	fmt.Fprintln(w, "  done <n>                          Mark task n done")
	fmt.Fprintln(w, "  undone <n>                        Mark task n not done")
	fmt.Fprintln(w, "  delete <n>                        Delete task n")
	fmt.Fprintln(w, "  update <n> [-desc D] [-priority P] [-clear-priority]")
	fmt.Fprintln(w, "                                    Change a task's description or priority")
	fmt.Fprintln(w, "  records [-o file]                 Write tasks as one-line records")
	fmt.Fprintln(w, "  import <file>                     Append tasks from a records file (- for stdin)")
	fmt.Fprintln(w, "  validate [file]                   Check a task file against the JSON Schema")
	fmt.Fprintln(w, "  init [-skip-config]               Create an empty task file and taskbook.toml")
	fmt.Fprintln(w, "  tui                               Launch terminal UI")
	fmt.Fprintln(w, "  config [-show]                    Print example config, or the effective values")
	fmt.Fprintln(w, "  schema                            Print the task file JSON Schema")
	fmt.Fprintln(w, "  version                           Show version information")
	fmt.Fprintln(w, "  help                              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Kinds: todo, deadline, event. Priority is a whole number; omit it for none.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
