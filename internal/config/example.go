package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Taskbook configuration file
# Values can be overridden by TASKBOOK_* environment variables or CLI flags

# Task list file (supports ~ and $VAR expansion; relative to the working directory)
task_file = "~/.taskbook/tasks.json"

# JSON Schema used by "taskbook validate" (empty uses the built-in schema)
# schema_file = "tasks.schema.json"

# Kind for "taskbook add" without -kind: todo, deadline, or event
default_kind = "todo"

# Logging (written to stderr)
log_level = "warn"       # debug, info, warn, error
log_format = "text"      # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
