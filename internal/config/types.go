package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource

	// Files lists the config files that were read, user file first.
	Files []string
}

// Default values.
const (
	DefaultTaskFile    = "~/.taskbook/tasks.json"
	DefaultKind        = "todo"
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
	ConfigFileName     = "taskbook.toml"
	HiddenConfigName   = ".taskbook.toml"
	userConfigDirName  = ".taskbook"
	osConfigSubdirName = "taskbook"
)

// Config holds the full configuration for taskbook.
type Config struct {
	// Paths
	TaskFile   string `toml:"task_file"`
	SchemaFile string `toml:"schema_file"` // empty selects the embedded schema

	// Kind used by "add" when -kind is not given
	DefaultKind string `toml:"default_kind"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}
