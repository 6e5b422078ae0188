// Package record encodes and decodes tasks in the one-line file-record
// format:
//
//	{letter} | {0|1} | {description}
//
// Decoding splits on the first two separators only, so a description that
// itself contains " | " survives a round trip. A record is exactly one line,
// so descriptions containing a line break cannot be encoded. Lines have no
// length limit. Priority is not part of the format; decoded tasks have none.
package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/taskbook/internal/task"
)

// Separator is the field separator of a record line.
const Separator = " | "

// ErrMalformed is wrapped by every decode error.
var ErrMalformed = errors.New("malformed record")

// SyntaxError describes a record line that could not be decoded.
type SyntaxError struct {
	Line int // 1-based line number, 0 when decoding a single line
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, ErrMalformed, e.Msg)
	}
	return fmt.Sprintf("%s: %s", ErrMalformed, e.Msg)
}

// Unwrap returns ErrMalformed.
func (e *SyntaxError) Unwrap() error {
	return ErrMalformed
}

// Encode returns the record line for t, without a trailing newline.
// Callers that write records should check the description with
// CheckDescription first.
func Encode(t *task.Task) string {
	return t.FileFormat()
}

// CheckDescription reports whether description fits on a record line.
func CheckDescription(description string) error {
	if strings.ContainsAny(description, "\r\n") {
		return &SyntaxError{Msg: "description contains a line break"}
	}
	return nil
}

// Decode parses a single record line.
func Decode(line string) (*task.Task, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.ContainsAny(line, "\r\n") {
		return nil, &SyntaxError{Msg: "record spans more than one line"}
	}
	parts := strings.SplitN(line, Separator, 3)
	if len(parts) != 3 {
		return nil, &SyntaxError{Msg: fmt.Sprintf("expected 3 fields separated by %q, got %d", Separator, len(parts))}
	}

	kind, ok := task.KindFromLetter(parts[0])
	if !ok {
		return nil, &SyntaxError{Msg: fmt.Sprintf("unknown type letter %q", parts[0])}
	}

	t := task.New(parts[2], kind)
	switch parts[1] {
	case "0":
	case "1":
		t.MarkDone()
	default:
		return nil, &SyntaxError{Msg: fmt.Sprintf("done flag must be 0 or 1, got %q", parts[1])}
	}
	return t, nil
}

// Reader decodes records from an input stream, one per line. Blank lines
// are skipped.
type Reader struct {
	r    *bufio.Reader
	line int
	eof  bool
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Read returns the next task, or io.EOF when the input is exhausted.
func (r *Reader) Read() (*task.Task, error) {
	for !r.eof {
		text, err := r.r.ReadString('\n')
		if err == io.EOF {
			r.eof = true
			if text == "" {
				break
			}
		} else if err != nil {
			return nil, fmt.Errorf("read records: %w", err)
		}

		r.line++
		if strings.TrimSpace(text) == "" {
			continue
		}
		t, err := Decode(text)
		if err != nil {
			var se *SyntaxError
			if errors.As(err, &se) {
				se.Line = r.line
			}
			return nil, err
		}
		return t, nil
	}
	return nil, io.EOF
}

// ReadAll reads every remaining record.
func (r *Reader) ReadAll() ([]*task.Task, error) {
	var tasks []*task.Task
	for {
		t, err := r.Read()
		if err == io.EOF {
			return tasks, nil
		}
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
}

// Writer encodes records to an output stream, one per line.
type Writer struct {
	w *bufio.Writer
}

// NewWriter returns a Writer writing to w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write writes a single record line. A description containing a line break
// is rejected and nothing is written.
func (w *Writer) Write(t *task.Task) error {
	if err := CheckDescription(t.Description()); err != nil {
		return err
	}
	if _, err := w.w.WriteString(Encode(t)); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// WriteAll writes every task and flushes. If any description cannot be
// encoded, nothing is written and the error names the task's 1-based
// position.
func (w *Writer) WriteAll(tasks []*task.Task) error {
	for i, t := range tasks {
		if err := CheckDescription(t.Description()); err != nil {
			return fmt.Errorf("task %d: %w", i+1, err)
		}
	}
	for _, t := range tasks {
		if err := w.Write(t); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("flush records: %w", err)
	}
	return nil
}
