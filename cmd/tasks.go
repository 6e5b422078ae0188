package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nibzard/taskbook/internal/record"
	"github.com/nibzard/taskbook/internal/task"
	"github.com/nibzard/taskbook/internal/tasklist"
)

// load reads the configured task file. A missing file is an empty list.
func (a *app) load() (*tasklist.File, error) {
	f, err := tasklist.LoadOrEmpty(a.cfg.TaskFile)
	if err != nil {
		return nil, fmt.Errorf("loading task file: %w", err)
	}
	a.logger.Debug("task file loaded", "path", a.cfg.TaskFile, "tasks", f.Len())
	return f, nil
}

func (a *app) save(f *tasklist.File) error {
	if err := f.Save(a.cfg.TaskFile); err != nil {
		return fmt.Errorf("saving task file: %w", err)
	}
	a.logger.Debug("task file saved", "path", a.cfg.TaskFile, "tasks", f.Len())
	return nil
}

// flagWasSet reports whether name was given on the command line.
func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// parsePosition parses a 1-based task number argument.
func parsePosition(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("missing task number")
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid task number %q", args[0])
	}
	return n, nil
}

// addCommand appends a new task. A non-empty fixedKind skips the -kind flag.
func (a *app) addCommand(args []string, fixedKind task.Kind) error {
	name := "add"
	if fixedKind != "" {
		name = string(fixedKind)
	}
	fs := a.newFlagSet(name)
	var kindFlag *string
	if fixedKind == "" {
		kindFlag = fs.String("kind", string(a.cfg.Kind()), "Task kind (todo, deadline, event)")
	}
	priorityFlag := fs.String("priority", "", "Task priority (whole number)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	description := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%s: description is required", name)
	}
	if err := record.CheckDescription(description); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	kind := fixedKind
	if kindFlag != nil {
		k, err := task.ParseKind(*kindFlag)
		if err != nil {
			return err
		}
		kind = k
	}

	var t *task.Task
	switch {
	case flagWasSet(fs, "priority"):
		var err error
		t, err = task.NewWithPriority(description, kind, *priorityFlag)
		if err != nil {
			return err
		}
	case kind == task.KindTodo:
		t = task.NewTodo(description)
	default:
		t = task.New(description, kind)
	}

	f, err := a.load()
	if err != nil {
		return err
	}
	n := f.Add(t)
	if err := a.save(f); err != nil {
		return err
	}

	a.logger.Info("task added", "position", n, "kind", kind)
	fmt.Fprintf(a.stdout, "Added %d. %s\n", n, t)
	return nil
}

// listCommand prints tasks with their positions.
func (a *app) listCommand(args []string) error {
	fs := a.newFlagSet("list")
	onlyDone := fs.Bool("done", false, "Show only done tasks")
	onlyPending := fs.Bool("pending", false, "Show only pending tasks")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *onlyDone && *onlyPending {
		return errors.New("list: -done and -pending are mutually exclusive")
	}

	f, err := a.load()
	if err != nil {
		return err
	}

	var keep func(*task.Task) bool
	switch {
	case *onlyDone:
		keep = (*task.Task).Done
	case *onlyPending:
		keep = func(t *task.Task) bool { return !t.Done() }
	}

	entries := f.Filter(keep)
	if len(entries) == 0 {
		fmt.Fprintln(a.stdout, "No tasks found.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(a.stdout, "%d. %s\n", e.Position, e.Task)
	}
	return nil
}

// markCommand marks a task done or pending.
func (a *app) markCommand(args []string, done bool) error {
	n, err := parsePosition(args)
	if err != nil {
		return err
	}
	f, err := a.load()
	if err != nil {
		return err
	}

	var t *task.Task
	if done {
		t, err = f.Mark(n)
	} else {
		t, err = f.Unmark(n)
	}
	if err != nil {
		return err
	}
	if err := a.save(f); err != nil {
		return err
	}

	a.logger.Info("task marked", "position", n, "done", done)
	if done {
		fmt.Fprintf(a.stdout, "Marked done: %d. %s\n", n, t)
	} else {
		fmt.Fprintf(a.stdout, "Marked not done: %d. %s\n", n, t)
	}
	return nil
}

// deleteCommand removes a task.
func (a *app) deleteCommand(args []string) error {
	n, err := parsePosition(args)
	if err != nil {
		return err
	}
	f, err := a.load()
	if err != nil {
		return err
	}
	t, err := f.Remove(n)
	if err != nil {
		return err
	}
	if err := a.save(f); err != nil {
		return err
	}

	a.logger.Info("task deleted", "position", n)
	fmt.Fprintf(a.stdout, "Deleted %d. %s\n", n, t)
	return nil
}

// updateCommand changes a task's description and/or priority.
func (a *app) updateCommand(args []string) error {
	fs := a.newFlagSet("update")
	desc := fs.String("desc", "", "New description")
	priorityText := fs.String("priority", "", "New priority (whole number)")
	clearPriority := fs.Bool("clear-priority", false, "Remove the priority")
	if len(args) == 0 {
		return errors.New("missing task number")
	}
	// The task number comes first so flags may follow it.
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	n, err := parsePosition(args[:1])
	if err != nil {
		return err
	}

	setDesc := flagWasSet(fs, "desc")
	setPriority := flagWasSet(fs, "priority")
	if !setDesc && !setPriority && !*clearPriority {
		return errors.New("update: nothing to update, use -desc, -priority, or -clear-priority")
	}
	if setPriority && *clearPriority {
		return errors.New("update: -priority and -clear-priority are mutually exclusive")
	}
	if setDesc {
		if err := record.CheckDescription(*desc); err != nil {
			return fmt.Errorf("update: %w", err)
		}
	}

	f, err := a.load()
	if err != nil {
		return err
	}
	t, err := f.Get(n)
	if err != nil {
		return err
	}

	switch {
	case setDesc && setPriority:
		p, err := task.ParsePriority(*priorityText)
		if err != nil {
			return err
		}
		if v, ok := p.Value(); ok {
			t.Update(*desc, v)
		} else {
			t.UpdateDescription(*desc)
			t.ClearPriority()
		}
	case setPriority:
		if err := t.UpdatePriorityText(*priorityText); err != nil {
			return err
		}
	case setDesc:
		t.UpdateDescription(*desc)
	}
	if *clearPriority {
		t.ClearPriority()
	}

	if err := a.save(f); err != nil {
		return err
	}
	a.logger.Info("task updated", "position", n, "description", setDesc, "priority", setPriority || *clearPriority)
	fmt.Fprintf(a.stdout, "Updated: %d. %s\n", n, t)
	return nil
}

// recordsCommand writes every task in the one-line record format.
func (a *app) recordsCommand(args []string) error {
	fs := a.newFlagSet("records")
	out := fs.String("o", "", "Write to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	f, err := a.load()
	if err != nil {
		return err
	}

	if *out == "" {
		return f.Records(a.stdout)
	}

	if dir := filepath.Dir(*out); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create records dir: %w", err)
		}
	}
	file, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create records file: %w", err)
	}
	if err := f.Records(file); err != nil {
		file.Close()
		return fmt.Errorf("write records: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	a.logger.Info("records written", "path", *out, "tasks", f.Len())
	return nil
}

// importCommand appends tasks decoded from a records file.
func (a *app) importCommand(args []string) error {
	if len(args) != 1 {
		return errors.New("import: expected one records file (- for stdin)")
	}

	var r io.Reader = os.Stdin
	if args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open records file: %w", err)
		}
		defer file.Close()
		r = file
	}

	f, err := a.load()
	if err != nil {
		return err
	}
	added, err := f.ImportRecords(r)
	if err != nil {
		return err
	}
	if err := a.save(f); err != nil {
		return err
	}

	a.logger.Info("records imported", "source", args[0], "added", added)
	fmt.Fprintf(a.stdout, "Imported %d tasks (%d total).\n", added, f.Len())
	return nil
}

// validateCommand checks a task file against the JSON Schema.
func (a *app) validateCommand(args []string) error {
	fs := a.newFlagSet("validate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}
	path := a.cfg.TaskFile
	if fs.NArg() == 1 {
		path = fs.Arg(0)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading task file: %w", err)
	}

	result := tasklist.ValidateData(data, tasklist.ValidationOptions{SchemaPath: a.cfg.SchemaFile})
	for _, w := range result.Warnings {
		a.logger.Warn(w)
	}
	if !result.Valid {
		fmt.Fprintf(a.stdout, "%s: invalid\n", path)
		for _, e := range result.Errors {
			fmt.Fprintf(a.stdout, "  - %v\n", e)
		}
		return fmt.Errorf("validation failed: %d errors", len(result.Errors))
	}

	mode := "JSON Schema"
	if !result.UsedSchema {
		mode = "minimal checks"
	}
	fmt.Fprintf(a.stdout, "%s: valid (%s)\n", path, mode)
	return nil
}
