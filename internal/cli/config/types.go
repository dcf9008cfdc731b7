// Package config provides configuration management for the leapsolve CLI.
//
// Values are layered with koanf: built-in defaults, then leapsolve.yaml,
// then LEAPSOLVE_* environment variables, then explicitly set flags.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	Verbose       bool          `koanf:"verbose"`
	OutputFormat  string        `koanf:"output"`
	MaxInputBytes int           `koanf:"max_input_bytes"`
	Units         UnitsConfig   `koanf:"units"`
	History       HistoryConfig `koanf:"history"`
	REPL          REPLConfig    `koanf:"repl"`
	Server        ServerConfig  `koanf:"server"`
	Batch         BatchConfig   `koanf:"batch"`
}

// UnitsConfig extends the built-in unit table.
type UnitsConfig struct {
	Aliases map[string]string `koanf:"aliases"` // alias -> unit symbol or existing alias
}

// HistoryConfig controls the solve history database.
type HistoryConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// REPLConfig configures the interactive solve prompt.
type REPLConfig struct {
	HistoryFile string `koanf:"history_file"`
	Prompt      string `koanf:"prompt"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr              string        `koanf:"addr"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
}

// BatchConfig configures batch solving.
type BatchConfig struct {
	Workers         int      `koanf:"workers"`
	WatchExtensions []string `koanf:"watch_extensions"`
}

// Default configuration values.
const (
	DefaultOutput            = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultMaxInputBytes     = 64 * 1024
	DefaultHistoryPath       = ".leapsolve/history.db"
	DefaultREPLHistoryFile   = ".leapsolve/repl_history"
	DefaultPrompt            = "leapsolve> "
	DefaultServerAddr        = "127.0.0.1:8080"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 5 * time.Second
	DefaultBatchWorkers      = 4
)

// DefaultWatchExtensions are the file types batch --watch reacts to.
var DefaultWatchExtensions = []string{".yaml", ".yml"}

// Output formats accepted by --output.
var OutputFormats = []string{"auto", "text", "markdown", "json"}

// Default returns a Config with every default applied.
func Default() *Config {
	return &Config{
		OutputFormat:  DefaultOutput,
		MaxInputBytes: DefaultMaxInputBytes,
		History:       HistoryConfig{Path: DefaultHistoryPath},
		REPL:          REPLConfig{HistoryFile: DefaultREPLHistoryFile, Prompt: DefaultPrompt},
		Server: ServerConfig{
			Addr:              DefaultServerAddr,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			ShutdownTimeout:   DefaultShutdownTimeout,
		},
		Batch: BatchConfig{
			Workers:         DefaultBatchWorkers,
			WatchExtensions: append([]string(nil), DefaultWatchExtensions...),
		},
	}
}
