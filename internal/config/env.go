package config

import "os"

// Environment variables read by loadFromEnv.
const (
	EnvTaskFile      = "TASKBOOK_FILE"
	EnvSchemaFile    = "TASKBOOK_SCHEMA"
	EnvDefaultKind   = "TASKBOOK_KIND"
	EnvLogLevel      = "TASKBOOK_LOG_LEVEL"
	EnvLogFormat     = "TASKBOOK_LOG_FORMAT"
	EnvLogTimestamps = "TASKBOOK_LOG_TIMESTAMPS"
	EnvLogCaller     = "TASKBOOK_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv(EnvTaskFile); v != "" {
		cfg.TaskFile = v
		set("task_file")
	}
	if v := os.Getenv(EnvSchemaFile); v != "" {
		cfg.SchemaFile = v
		set("schema_file")
	}
	if v := os.Getenv(EnvDefaultKind); v != "" {
		cfg.DefaultKind = v
		set("default_kind")
	}

	// Logging configuration
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
}
