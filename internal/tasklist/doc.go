// Package tasklist loads, validates, and updates task list files.
//
// A task list file is JSON:
//
//	{
//	  "schema_version": 1,
//	  "tasks": [
//	    {"kind": "todo", "description": "read book", "done": false, "priority": 2},
//	    {"kind": "event", "description": "team lunch", "done": true}
//	  ]
//	}
//
// Tasks are addressed by 1-based position, the way they are listed.
//
// # Validation
//
// Validation runs the embedded JSON Schema (draft 2020-12) unless a schema
// file path is given. When the schema cannot be loaded or compiled, a
// minimal structural check runs instead and a warning is recorded.
//
// # File Format
//
// Files are written with 2-space indentation and a trailing newline.
// Records and ImportRecords bridge to the one-line record format of
// package record.
package tasklist
