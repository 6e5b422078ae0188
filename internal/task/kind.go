package task

import (
	"fmt"
	"strings"
)

// Kind is the category tag of a task.
type Kind string

const (
	KindTodo     Kind = "todo"
	KindDeadline Kind = "deadline"
	KindEvent    Kind = "event"
)

type kindFormat struct {
	letter string
}

var kindTable = map[Kind]kindFormat{
	KindTodo:     {letter: "T"},
	KindDeadline: {letter: "D"},
	KindEvent:    {letter: "E"},
}

// Kinds returns every known kind in display order.
func Kinds() []Kind {
	return []Kind{KindTodo, KindDeadline, KindEvent}
}

// Valid reports whether k is in the kind table.
func (k Kind) Valid() bool {
	_, ok := kindTable[k]
	return ok
}

// Letter returns the record prefix for k, or "" for an unknown kind.
func (k Kind) Letter() string {
	return kindTable[k].letter
}

// Bracket returns the display prefix for k, such as "[T]", or "" for an
// unknown kind.
func (k Kind) Bracket() string {
	letter := k.Letter()
	if letter == "" {
		return ""
	}
	return "[" + letter + "]"
}

// ParseKind resolves a kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", unknownKind(s)
	}
	return k, nil
}

func unknownKind(s string) error {
	return fmt.Errorf("unknown kind %q, must be one of: todo, deadline, event", s)
}

// KindFromLetter resolves a record prefix letter back to its kind.
func KindFromLetter(letter string) (Kind, bool) {
	for k, f := range kindTable {
		if f.letter == letter {
			return k, true
		}
	}
	return "", false
}
