package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nibzard/taskbook/internal/config"
	"github.com/nibzard/taskbook/internal/tasklist"
	"github.com/nibzard/taskbook/internal/ui"
)

// initCommand creates an empty task file and a project config file. Files
// that already exist are left alone unless -force is given.
func (a *app) initCommand(args []string) error {
	fs := a.newFlagSet("init")
	force := fs.Bool("force", false, "Overwrite existing files")
	skipConfig := fs.Bool("skip-config", false, "Do not write taskbook.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if err := a.writeIfMissing(a.cfg.TaskFile, *force, func(path string) error {
		return tasklist.New().Save(path)
	}); err != nil {
		return err
	}

	if *skipConfig {
		return nil
	}
	configPath := filepath.Join(a.cfg.ProjectRoot, config.ConfigFileName)
	return a.writeIfMissing(configPath, *force, func(path string) error {
		return os.WriteFile(path, []byte(config.ExampleConfig()), 0644)
	})
}

func (a *app) writeIfMissing(path string, force bool, write func(string) error) error {
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(a.stdout, "Skipped %s (already exists)\n", path)
		return nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if err := write(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	a.logger.Info("file created", "path", path)
	fmt.Fprintf(a.stdout, "Created %s\n", path)
	return nil
}

// tuiCommand launches the TUI.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("tui")
	refresh := fs.Duration("refresh", ui.DefaultRefreshInterval, "How often to reload the task file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return ui.RunTUI(ctx, a.cfg.TaskFile, ui.WithRefreshInterval(*refresh), ui.WithLogger(a.logger))
}

// configCommand prints the example config, or with -show the effective
// values and where each came from.
func (a *app) configCommand(args []string) error {
	fs := a.newFlagSet("config")
	show := fs.Bool("show", false, "Show effective configuration and sources")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if !*show {
		fmt.Fprint(a.stdout, config.ExampleConfig())
		return nil
	}

	cfg := a.cfg
	src := a.sources.Sources
	schema := cfg.SchemaFile
	if schema == "" {
		schema = "(embedded)"
	}
	if file := a.sources.ConfigFile(); file != "" {
		fmt.Fprintf(a.stdout, "# config file: %s\n", file)
	}
	fmt.Fprintf(a.stdout, "task_file = %q  # %s\n", cfg.TaskFile, src["task_file"])
	fmt.Fprintf(a.stdout, "schema_file = %q  # %s\n", schema, src["schema_file"])
	fmt.Fprintf(a.stdout, "default_kind = %q  # %s\n", cfg.DefaultKind, src["default_kind"])
	fmt.Fprintf(a.stdout, "log_level = %q  # %s\n", cfg.LogLevel, src["log_level"])
	fmt.Fprintf(a.stdout, "log_format = %q  # %s\n", cfg.LogFormat, src["log_format"])
	fmt.Fprintf(a.stdout, "log_timestamps = %v  # %s\n", cfg.LogTimestamps, src["log_timestamps"])
	fmt.Fprintf(a.stdout, "log_caller = %v  # %s\n", cfg.LogCaller, src["log_caller"])
	return nil
}

// schemaCommand prints the embedded task file JSON Schema.
func (a *app) schemaCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	fmt.Fprint(a.stdout, tasklist.Schema())
	return nil
}
