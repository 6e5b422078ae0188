// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskbook/internal/logging"
	"github.com/nibzard/taskbook/internal/task"
	"github.com/nibzard/taskbook/internal/tasklist"
)

// DefaultRefreshInterval is how often the viewer reloads the task file.
const DefaultRefreshInterval = 2 * time.Second

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiModel)

// WithRefreshInterval sets how often the task file is reloaded from disk.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(m *tuiModel) {
		if d > 0 {
			m.tickInterval = d
		}
	}
}

// WithLogger routes viewer diagnostics to logger.
func WithLogger(logger *log.Logger) TUIOption {
	return func(m *tuiModel) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// RunTUI starts the task viewer over the task file at path.
func RunTUI(ctx context.Context, path string, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(path, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*tuiModel); ok && m.saveErr != nil {
		return m.saveErr
	}
	return nil
}

// filterMode selects which tasks the list shows.
type filterMode int

const (
	filterAll filterMode = iota
	filterPending
	filterDone
)

func (f filterMode) String() string {
	switch f {
	case filterPending:
		return "pending"
	case filterDone:
		return "done"
	default:
		return "all"
	}
}

func (f filterMode) keep(t *task.Task) bool {
	switch f {
	case filterPending:
		return !t.Done()
	case filterDone:
		return t.Done()
	default:
		return true
	}
}

type tuiModel struct {
	path         string
	logger       *log.Logger
	file         *tasklist.File
	loadErr      error
	saveErr      error
	cursor       int
	filter       filterMode
	showHelp     bool
	message      string
	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(path string, opts ...TUIOption) *tuiModel {
	m := &tuiModel{
		path:         path,
		logger:       logging.Discard(),
		tickInterval: DefaultRefreshInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case " ", "x":
			m.toggleSelected()
		case "r", "f5":
			m.refresh()
			m.message = "Reloaded."
		case "h", "?":
			m.showHelp = !m.showHelp
		case "1":
			m.setFilter(filterPending)
		case "2":
			m.setFilter(filterDone)
		case "0":
			m.setFilter(filterAll)
		}
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString("Error loading task file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}
	if m.file == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeOverview(&b, m.file)
	if m.filter != filterAll {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", m.filter))
	}
	writeRows(&b, m.rows(), m.cursor)
	if m.saveErr != nil {
		b.WriteString("Error saving task file: " + m.saveErr.Error() + "\n\n")
	} else if m.message != "" {
		b.WriteString(m.message + "\n\n")
	}
	b.WriteString(fmt.Sprintf("File: %s\n\n", m.path))
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh reloads the task file. A missing file shows as an empty list.
func (m *tuiModel) refresh() {
	f, err := tasklist.LoadOrEmpty(m.path)
	if err != nil {
		m.loadErr = err
		m.file = nil
		m.logger.Warn("task file reload failed", "path", m.path, "err", err)
		return
	}
	m.loadErr = nil
	m.file = f
	m.clampCursor()
}

// rows returns the tasks visible under the current filter.
func (m *tuiModel) rows() []tasklist.Entry {
	if m.file == nil {
		return nil
	}
	return m.file.Filter(m.filter.keep)
}

func (m *tuiModel) setFilter(f filterMode) {
	m.filter = f
	m.cursor = 0
	m.message = ""
}

func (m *tuiModel) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *tuiModel) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// toggleSelected flips the selected task between done and pending and
// saves the file.
func (m *tuiModel) toggleSelected() {
	rows := m.rows()
	if m.cursor >= len(rows) {
		return
	}
	r := rows[m.cursor]

	var err error
	if r.Task.Done() {
		_, err = m.file.Unmark(r.Position)
	} else {
		_, err = m.file.Mark(r.Position)
	}
	if err == nil {
		err = m.file.Save(m.path)
	}
	if err != nil {
		m.saveErr = err
		m.logger.Error("toggle failed", "position", r.Position, "err", err)
		return
	}

	m.saveErr = nil
	if r.Task.Done() {
		m.message = fmt.Sprintf("Marked %d done.", r.Position)
	} else {
		m.message = fmt.Sprintf("Marked %d pending.", r.Position)
	}
	m.logger.Debug("task toggled", "position", r.Position, "done", r.Task.Done())
	m.clampCursor()
}

func writeTitle(b *strings.Builder) {
	title := "Taskbook"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, f *tasklist.File) {
	pending, done := f.Counts()
	b.WriteString(fmt.Sprintf("  Pending: %d  Done: %d  Total: %d\n\n", pending, done, f.Len()))
}

func writeRows(b *strings.Builder, rows []tasklist.Entry, cursor int) {
	if len(rows) == 0 {
		b.WriteString("  No tasks.\n\n")
		return
	}
	for i, r := range rows {
		marker := "  "
		if i == cursor {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%d. %s\n", marker, r.Position, r.Task))
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  j, down      Move down\n")
	b.WriteString("  k, up        Move up\n")
	b.WriteString("  space, x     Toggle done and save\n")
	b.WriteString("  r, F5        Reload task file\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Show pending tasks\n")
	b.WriteString("  2            Show done tasks\n")
	b.WriteString("  0            Show all tasks\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(fmt.Sprintf("Press ? for help | q to quit | Reloading every %s\n", interval))
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
