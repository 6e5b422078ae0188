package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/nibzard/taskbook/internal/task"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json", "logfmt"}
)

// Validate reports every invalid setting in cfg.
func (c *Config) Validate() error {
	var errs []error

	if c.TaskFile == "" {
		errs = append(errs, errors.New("task_file: must not be empty"))
	}
	if _, err := task.ParseKind(c.DefaultKind); err != nil {
		errs = append(errs, fmt.Errorf("default_kind: %w", err))
	}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level: unknown level %q, must be one of: %s",
			c.LogLevel, strings.Join(validLogLevels, ", ")))
	}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		errs = append(errs, fmt.Errorf("log_format: unknown format %q, must be one of: %s",
			c.LogFormat, strings.Join(validLogFormats, ", ")))
	}

	return errors.Join(errs...)
}

// Kind returns the configured default kind, falling back to todo.
func (c *Config) Kind() task.Kind {
	k, err := task.ParseKind(c.DefaultKind)
	if err != nil {
		return task.KindTodo
	}
	return k
}
