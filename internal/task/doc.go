// Package task models a single unit of work: a description, a done flag,
// a category kind, and an optional priority.
//
// # Rendering
//
// A task renders in two forms. The display form (String) is
//
//	{bracket}{icon} {description} priority: {priority}
//
// where icon is "[X]" for a done task and "[ ]" otherwise, and priority is
// the decimal value or the literal "no priority". The record form
// (FileFormat) is
//
//	{letter} | {0|1} | {description}
//
// Bracket and letter come from the kind table:
//
//	todo      T  [T]
//	deadline  D  [D]
//	event     E  [E]
//
// A kind outside the table renders with neither.
//
// # Priority
//
// Priority is optional. The value 100000 is the legacy "no priority"
// marker; it is accepted on every input path and stored as an absent
// priority, so no present priority ever equals it.
package task
