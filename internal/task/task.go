package task

import (
	"encoding/json"
	"fmt"
)

// Task is a single unit of work.
type Task struct {
	description string
	done        bool
	kind        Kind
	priority    Priority
}

// New creates a pending task with no priority.
func New(description string, kind Kind) *Task {
	return &Task{
		description: description,
		kind:        kind,
	}
}

// NewWithPriority creates a pending task with a priority parsed from text.
// It returns a *ParseError if text is not an integer literal.
func NewWithPriority(description string, kind Kind, priorityText string) (*Task, error) {
	p, err := ParsePriority(priorityText)
	if err != nil {
		return nil, err
	}
	t := New(description, kind)
	t.priority = p
	return t, nil
}

// NewTodo creates a pending to-do task with no priority.
func NewTodo(description string) *Task {
	return New(description, KindTodo)
}

// Description returns the task description.
func (t *Task) Description() string {
	return t.description
}

// SetDescription replaces the description.
func (t *Task) SetDescription(description string) {
	t.description = description
}

// Kind returns the category the task was created with.
func (t *Task) Kind() Kind {
	return t.kind
}

// Done reports whether the task is marked done.
func (t *Task) Done() bool {
	return t.done
}

// Priority returns the task priority.
func (t *Task) Priority() Priority {
	return t.priority
}

// StatusIcon returns "[X]" for a done task and "[ ]" otherwise.
func (t *Task) StatusIcon() string {
	if t.done {
		return "[X]"
	}
	return "[ ]"
}

// MarkDone marks the task done.
func (t *Task) MarkDone() {
	t.done = true
}

// UnmarkDone marks the task pending.
func (t *Task) UnmarkDone() {
	t.done = false
}

// UpdatePriority replaces the priority.
func (t *Task) UpdatePriority(priority int) {
	t.priority = PriorityOf(priority)
}

// UpdatePriorityText parses text and replaces the priority. On a parse
// error the task is left unchanged.
func (t *Task) UpdatePriorityText(text string) error {
	p, err := ParsePriority(text)
	if err != nil {
		return err
	}
	t.priority = p
	return nil
}

// ClearPriority removes the priority.
func (t *Task) ClearPriority() {
	t.priority = NoPriority()
}

// UpdateDescription replaces the description.
func (t *Task) UpdateDescription(description string) {
	t.description = description
}

// Update replaces both the description and the priority.
func (t *Task) Update(description string, priority int) {
	t.description = description
	t.priority = PriorityOf(priority)
}

// String returns the display form of the task, for example
// "[T][ ] read book priority: no priority".
func (t *Task) String() string {
	return t.kind.Bracket() + t.StatusIcon() + " " + t.description + " priority: " + t.priority.String()
}

// FileFormat returns the record form of the task, for example
// "T | 1 | read book".
func (t *Task) FileFormat() string {
	marked := "0"
	if t.done {
		marked = "1"
	}
	return t.kind.Letter() + " | " + marked + " | " + t.description
}

type taskJSON struct {
	Kind        Kind   `json:"kind"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
	Priority    *int   `json:"priority,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (t *Task) MarshalJSON() ([]byte, error) {
	out := taskJSON{
		Kind:        t.kind,
		Description: t.description,
		Done:        t.done,
	}
	if v, ok := t.priority.Value(); ok {
		out.Priority = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Task) UnmarshalJSON(data []byte) error {
	var in taskJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decode task: %w", err)
	}
	if !in.Kind.Valid() {
		return fmt.Errorf("decode task: %w", unknownKind(string(in.Kind)))
	}
	t.kind = in.Kind
	t.description = in.Description
	t.done = in.Done
	t.priority = NoPriority()
	if in.Priority != nil {
		t.priority = PriorityOf(*in.Priority)
	}
	return nil
}
