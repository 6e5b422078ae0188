package tasklist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nibzard/taskbook/internal/record"
	"github.com/nibzard/taskbook/internal/task"
)

// SchemaVersion is the task list file version this package writes.
const SchemaVersion = 1

// ErrOutOfRange is returned when a task position does not exist.
var ErrOutOfRange = errors.New("task number out of range")

// File is a task list document.
type File struct {
	SchemaVersion int          `json:"schema_version"`
	Tasks         []*task.Task `json:"tasks"`
}

// New returns an empty task list.
func New() *File {
	return &File{
		SchemaVersion: SchemaVersion,
		Tasks:         []*task.Task{},
	}
}

// Load reads and parses a task list file from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}

	f, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	if f.Tasks == nil {
		f.Tasks = []*task.Task{}
	}

	return f, nil
}

// decode parses a task list document. A task that fails to decode is
// reported as a *ValidationError naming its position.
func decode(data []byte) (*File, error) {
	var raw struct {
		SchemaVersion int               `json:"schema_version"`
		Tasks         []json.RawMessage `json:"tasks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	f := &File{SchemaVersion: raw.SchemaVersion}
	if raw.Tasks == nil {
		return f, nil
	}
	f.Tasks = make([]*task.Task, len(raw.Tasks))
	for i, msg := range raw.Tasks {
		path := fmt.Sprintf("tasks[%d]", i)
		if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
			return nil, &ValidationError{Path: path, Err: errors.New("task is null")}
		}
		var t task.Task
		if err := json.Unmarshal(msg, &t); err != nil {
			return nil, &ValidationError{Path: path, Err: err}
		}
		f.Tasks[i] = &t
	}
	return f, nil
}

// LoadOrEmpty is Load, but a missing file yields an empty list.
func LoadOrEmpty(path string) (*File, error) {
	f, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, err
	}
	return f, nil
}

// Save writes the task list to path with 2-space indentation, creating the
// parent directory if needed.
func (f *File) Save(path string) error {
	out := *f
	if out.SchemaVersion == 0 {
		out.SchemaVersion = SchemaVersion
	}
	if out.Tasks == nil {
		out.Tasks = []*task.Task{}
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create task file dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}

	return nil
}

// Len returns the number of tasks.
func (f *File) Len() int {
	return len(f.Tasks)
}

// Add appends a task and returns its 1-based position.
func (f *File) Add(t *task.Task) int {
	f.Tasks = append(f.Tasks, t)
	return len(f.Tasks)
}

// Get returns the task at 1-based position n.
func (f *File) Get(n int) (*task.Task, error) {
	if n < 1 || n > len(f.Tasks) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrOutOfRange, n, len(f.Tasks))
	}
	return f.Tasks[n-1], nil
}

// Remove deletes and returns the task at 1-based position n.
func (f *File) Remove(n int) (*task.Task, error) {
	t, err := f.Get(n)
	if err != nil {
		return nil, err
	}
	f.Tasks = append(f.Tasks[:n-1], f.Tasks[n:]...)
	return t, nil
}

// Mark marks the task at position n done.
func (f *File) Mark(n int) (*task.Task, error) {
	return f.update(n, (*task.Task).MarkDone)
}

// Unmark marks the task at position n pending.
func (f *File) Unmark(n int) (*task.Task, error) {
	return f.update(n, (*task.Task).UnmarkDone)
}

func (f *File) update(n int, updater func(*task.Task)) (*task.Task, error) {
	t, err := f.Get(n)
	if err != nil {
		return nil, err
	}
	updater(t)
	return t, nil
}

// Entry is a task together with its 1-based position in the list.
type Entry struct {
	Position int
	Task     *task.Task
}

// Filter returns the tasks for which keep returns true, in list order. A nil
// keep returns every task.
func (f *File) Filter(keep func(*task.Task) bool) []Entry {
	var out []Entry
	for i, t := range f.Tasks {
		if keep == nil || keep(t) {
			out = append(out, Entry{Position: i + 1, Task: t})
		}
	}
	return out
}

// Counts returns the number of pending and done tasks.
func (f *File) Counts() (pending, done int) {
	for _, t := range f.Tasks {
		if t.Done() {
			done++
		} else {
			pending++
		}
	}
	return pending, done
}

// Records writes every task in the record format.
func (f *File) Records(w io.Writer) error {
	return record.NewWriter(w).WriteAll(f.Tasks)
}

// ImportRecords appends every record read from r and returns how many were
// added. Nothing is appended if any line fails to decode.
func (f *File) ImportRecords(r io.Reader) (int, error) {
	tasks, err := record.NewReader(r).ReadAll()
	if err != nil {
		return 0, fmt.Errorf("import records: %w", err)
	}
	f.Tasks = append(f.Tasks, tasks...)
	return len(tasks), nil
}
