package task

import (
	"fmt"
	"strconv"
)

// LegacyNoPriority is the integer older task data uses to mean "no priority".
const LegacyNoPriority = 100000

// Priority is an optional integer priority. The zero value is absent.
type Priority struct {
	value int
	set   bool
}

// NoPriority returns an absent priority.
func NoPriority() Priority {
	return Priority{}
}

// PriorityOf returns a present priority holding n.
// LegacyNoPriority yields an absent priority.
func PriorityOf(n int) Priority {
	if n == LegacyNoPriority {
		return Priority{}
	}
	return Priority{value: n, set: true}
}

// ParsePriority parses a base-10, 32-bit integer literal with an optional
// sign. Surrounding whitespace is not accepted.
func ParsePriority(text string) (Priority, error) {
	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return Priority{}, &ParseError{Input: text, Err: unwrapNumError(err)}
	}
	return PriorityOf(int(n)), nil
}

// IsSet reports whether the priority is present.
func (p Priority) IsSet() bool {
	return p.set
}

// Value returns the priority and whether it is present.
func (p Priority) Value() (int, bool) {
	return p.value, p.set
}

// String returns the decimal value, or "no priority" when absent.
func (p Priority) String() string {
	if !p.set {
		return "no priority"
	}
	return strconv.Itoa(p.value)
}

// ParseError reports a priority text that is not a valid integer literal.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid priority %q: %v", e.Input, e.Err)
}

// Unwrap returns the underlying error (strconv.ErrSyntax or strconv.ErrRange).
func (e *ParseError) Unwrap() error {
	return e.Err
}

func unwrapNumError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}
