// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/taskbook/internal/task"
)

// isolate points every config location at empty temp directories and
// clears TASKBOOK_* variables. It returns the home and project dirs.
func isolate(t *testing.T) (home, project string) {
	t.Helper()
	home = t.TempDir()
	project = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, name := range []string{
		EnvTaskFile, EnvSchemaFile, EnvDefaultKind,
		EnvLogLevel, EnvLogFormat, EnvLogTimestamps, EnvLogCaller,
	} {
		t.Setenv(name, "")
	}
	chdir(t, project)
	return home, project
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.TaskFile != DefaultTaskFile {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, DefaultTaskFile)
	}
	if cfg.SchemaFile != "" {
		t.Errorf("SchemaFile: got %q, want empty", cfg.SchemaFile)
	}
	if cfg.DefaultKind != "todo" {
		t.Errorf("DefaultKind: got %q, want todo", cfg.DefaultKind)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat: got %q, want text", cfg.LogFormat)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	home, _ := isolate(t)

	cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := filepath.Join(home, ".taskbook", "tasks.json")
	if cfg.TaskFile != want {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, want)
	}
	if cfg.SchemaFile != "" {
		t.Errorf("SchemaFile: got %q, want empty", cfg.SchemaFile)
	}
}

func TestLoadPriority(t *testing.T) {
	home, project := isolate(t)

	writeFile(t, filepath.Join(home, ".taskbook", "taskbook.toml"), `
task_file = "user.json"
default_kind = "event"
log_level = "info"
log_format = "json"
`)
	writeFile(t, filepath.Join(project, "taskbook.toml"), `
task_file = "project.json"
log_level = "debug"
`)
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogCaller, "yes")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cws, err := LoadWithSources(fs, []string{"-file", "flag.json", "list"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	if got, want := cfg.TaskFile, filepath.Join(project, "flag.json"); got != want {
		t.Errorf("TaskFile: got %q, want %q", got, want)
	}
	if cfg.DefaultKind != "event" {
		t.Errorf("DefaultKind: got %q, want event", cfg.DefaultKind)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel: got %q, want error", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat: got %q, want json", cfg.LogFormat)
	}
	if !cfg.LogCaller {
		t.Error("LogCaller: got false, want true")
	}
	if args := fs.Args(); len(args) != 1 || args[0] != "list" {
		t.Errorf("remaining args: got %v, want [list]", args)
	}

	wantSources := map[string]ConfigSource{
		"task_file":      SourceFlag,
		"schema_file":    SourceDefault,
		"default_kind":   SourceUserFile,
		"log_level":      SourceEnv,
		"log_format":     SourceUserFile,
		"log_timestamps": SourceDefault,
		"log_caller":     SourceEnv,
	}
	for field, want := range wantSources {
		if got := cws.Sources[field]; got != want {
			t.Errorf("Sources[%s]: got %q, want %q", field, got, want)
		}
	}

	if got, want := cws.ConfigFile(), filepath.Join(project, "taskbook.toml"); got != want {
		t.Errorf("ConfigFile: got %q, want %q", got, want)
	}
	if len(cws.Files) != 2 {
		t.Errorf("Files: got %v, want user and project files", cws.Files)
	}
}

func TestLoadHiddenProjectFile(t *testing.T) {
	_, project := isolate(t)
	writeFile(t, filepath.Join(project, ".taskbook.toml"), `default_kind = "deadline"`)

	cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Kind() != task.KindDeadline {
		t.Errorf("Kind: got %q, want deadline", cfg.Kind())
	}
}

func TestLoadBlankTaskFileFailsValidation(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, project string)
		args  []string
	}{
		{
			name: "project file",
			setup: func(t *testing.T, project string) {
				writeFile(t, filepath.Join(project, "taskbook.toml"), `task_file = "   "`)
			},
		},
		{
			name: "environment",
			setup: func(t *testing.T, _ string) {
				t.Setenv(EnvTaskFile, " ")
			},
		},
		{
			name:  "flag",
			setup: func(*testing.T, string) {},
			args:  []string{"-file", ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, project := isolate(t)
			tt.setup(t, project)

			cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), tt.args)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.TaskFile != "" {
				t.Errorf("TaskFile: got %q, want empty", cfg.TaskFile)
			}
			if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "task_file") {
				t.Errorf("Validate() = %v, want task_file error", err)
			}
		})
	}
}

func TestLoadXDGUserFile(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is Linux/BSD only")
	}
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".config", "taskbook", "taskbook.toml"), `log_format = "logfmt"`)

	cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogFormat != "logfmt" {
		t.Errorf("LogFormat: got %q, want logfmt", cfg.LogFormat)
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax error", `task_file = `, ""},
		{"unknown key", "task_file = \"a.json\"\nmax_iterations = 3\n", "unknown keys: max_iterations"},
		{"wrong type", `log_caller = "sometimes"`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "taskbook.toml")
			writeFile(t, path, tt.content)

			cfg := &Config{}
			err := loadConfigFile(cfg, path, nil, SourceProjFile)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvTaskFile, "env.json")
	t.Setenv(EnvSchemaFile, "env.schema.json")
	t.Setenv(EnvDefaultKind, "deadline")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "logfmt")
	t.Setenv(EnvLogTimestamps, "1")
	t.Setenv(EnvLogCaller, "off")

	cfg := &Config{}
	setDefaults(cfg)
	cfg.LogCaller = true
	sources := map[string]ConfigSource{}
	loadFromEnv(cfg, sources)

	if cfg.TaskFile != "env.json" {
		t.Errorf("TaskFile: got %q, want env.json", cfg.TaskFile)
	}
	if cfg.SchemaFile != "env.schema.json" {
		t.Errorf("SchemaFile: got %q, want env.schema.json", cfg.SchemaFile)
	}
	if cfg.DefaultKind != "deadline" {
		t.Errorf("DefaultKind: got %q, want deadline", cfg.DefaultKind)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "logfmt" {
		t.Errorf("logging: got %q/%q, want debug/logfmt", cfg.LogLevel, cfg.LogFormat)
	}
	if !cfg.LogTimestamps {
		t.Error("LogTimestamps: got false, want true")
	}
	if cfg.LogCaller {
		t.Error("LogCaller: got true, want false")
	}
	if len(sources) != 7 {
		t.Errorf("sources: got %d entries, want 7: %v", len(sources), sources)
	}
}

func TestParseFlags(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	args := []string{
		"-file", "flag.json",
		"-schema", "flag.schema.json",
		"-log-level", "info",
		"-log-format", "json",
		"-log-timestamps",
		"add", "-priority", "2", "buy milk",
	}

	if err := parseFlags(cfg, fs, args, nil); err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	if cfg.TaskFile != "flag.json" {
		t.Errorf("TaskFile: got %q, want flag.json", cfg.TaskFile)
	}
	if cfg.SchemaFile != "flag.schema.json" {
		t.Errorf("SchemaFile: got %q, want flag.schema.json", cfg.SchemaFile)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" || !cfg.LogTimestamps {
		t.Errorf("logging: got %q/%q/%v", cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps)
	}
	if got := strings.Join(fs.Args(), " "); got != "add -priority 2 buy milk" {
		t.Errorf("remaining args: got %q", got)
	}
}

func TestFinalizeConfig(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{
		TaskFile:    "tasks.json",
		SchemaFile:  "",
		DefaultKind: " Event ",
		LogLevel:    "INFO",
		LogFormat:   "Text",
		ProjectRoot: root,
	}
	finalizeConfig(cfg)

	if got, want := cfg.TaskFile, filepath.Join(root, "tasks.json"); got != want {
		t.Errorf("TaskFile: got %q, want %q", got, want)
	}
	if cfg.SchemaFile != "" {
		t.Errorf("SchemaFile: got %q, want empty", cfg.SchemaFile)
	}
	if cfg.DefaultKind != "event" || cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("normalized: got %q/%q/%q", cfg.DefaultKind, cfg.LogLevel, cfg.LogFormat)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []string
	}{
		{"defaults", func(*Config) {}, nil},
		{"empty task file", func(c *Config) { c.TaskFile = "" }, []string{"task_file"}},
		{"bad kind", func(c *Config) { c.DefaultKind = "chore" }, []string{"default_kind", `"chore"`}},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, []string{"log_level", "debug, info, warn, error"}},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, []string{"log_format"}},
		{
			"several",
			func(c *Config) {
				c.LogLevel = "x"
				c.LogFormat = "y"
			},
			[]string{"log_level", "log_format"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			setDefaults(cfg)
			tt.mutate(cfg)

			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() = %v, want containing %q", err, want)
				}
			}
		})
	}
}

func TestKindFallback(t *testing.T) {
	cfg := &Config{DefaultKind: "chore"}
	if cfg.Kind() != task.KindTodo {
		t.Errorf("Kind: got %q, want todo", cfg.Kind())
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	cfg := &Config{}
	md, err := toml.Decode(ExampleConfig(), cfg)
	if err != nil {
		t.Fatalf("ExampleConfig does not decode: %v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		t.Errorf("ExampleConfig has unknown keys: %v", undecoded)
	}
	if cfg.TaskFile != DefaultTaskFile || cfg.DefaultKind != DefaultKind {
		t.Errorf("ExampleConfig values: got %q/%q", cfg.TaskFile, cfg.DefaultKind)
	}
	if cfg.LogLevel != DefaultLogLevel || cfg.LogFormat != DefaultLogFormat {
		t.Errorf("ExampleConfig logging: got %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	t.Setenv("TASKBOOK_TEST_DIR", "/srv/tasks")

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"~/test", filepath.Join(home, "test")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
		{"$TASKBOOK_TEST_DIR/list.json", "/srv/tasks/list.json"},
		{"~user/x", "~user/x"},
	}
	if runtime.GOOS == "windows" {
		t.Setenv("TASKBOOK_TEST_HOME", home)
		tests = append(tests, struct {
			input string
			want  string
		}{`~\test`, filepath.Join(home, "test")}, struct {
			input string
			want  string
		}{`%TASKBOOK_TEST_HOME%\tasks`, filepath.Join(home, "tasks")})
	} else {
		tests = append(tests, struct {
			input string
			want  string
		}{`~\test`, `~\test`})
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := expandPath(tt.input)
			if got != tt.want {
				t.Errorf("expandPath(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpandPercentVars(t *testing.T) {
	t.Setenv("TB_A", "alpha")

	tests := []struct {
		input string
		want  string
	}{
		{"%TB_A%", "alpha"},
		{`%TB_A%\x\%TB_A%`, `alpha\x\alpha`},
		{"%TB_UNSET_VAR%", "%TB_UNSET_VAR%"},
		{"100%", "100%"},
		{"%%", "%%"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := expandPercentVars(tt.input); got != tt.want {
			t.Errorf("expandPercentVars(%q): got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"no", false},
		{"off", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := boolFromString(tt.input)
			if got != tt.want {
				t.Errorf("boolFromString(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			panic("chdir: restoring working directory: " + err.Error())
		}
	})
}
