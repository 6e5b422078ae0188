// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.taskbook/taskbook.toml or OS-specific config directory)
// 3. Project config file (taskbook.toml or .taskbook.toml in the working directory)
// 4. Environment variables (TASKBOOK_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.taskbook/taskbook.toml (preferred)
// - Windows: %APPDATA%\taskbook\taskbook.toml
// - macOS: ~/Library/Application Support/taskbook/taskbook.toml
// - Linux/BSD: $XDG_CONFIG_HOME/taskbook/taskbook.toml or ~/.config/taskbook/taskbook.toml
//
// Project-level config locations (overrides user config):
// - ./taskbook.toml (preferred)
// - ./.taskbook.toml
package config
