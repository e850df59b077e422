// Package config loads the shell configuration from environment variables,
// applying defaults and validating the result.
package config

import "time"

// Config holds all shell configuration.
type Config struct {
	Logging LoggingConfig
	Sniff   SniffConfig
	Shell   ShellConfig
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"CSVTABLE_LOG_LEVEL" default:"warn"`

	// Format is the log output format: text, json (default: text)
	Format string `env:"CSVTABLE_LOG_FORMAT" default:"text"`
}

// SniffConfig holds dialect detection settings.
type SniffConfig struct {
	// SampleSize is how many bytes are sampled for sniffing (default: 1024)
	SampleSize int `env:"CSVTABLE_SAMPLE_SIZE" default:"1024"`

	// Delimiters lists the candidate delimiters, one character each, in
	// preference order. `\t` stands for a tab. Empty means the built-in set.
	Delimiters string `env:"CSVTABLE_DELIMITERS"`
}

// ShellConfig holds interactive shell settings.
type ShellConfig struct {
	// ShowRows is how many rows "show" prints without an argument (default: 20)
	ShowRows int `env:"CSVTABLE_SHOW_ROWS" default:"20"`

	// QueryTimeout bounds each "sql" command (default: 30s)
	QueryTimeout time.Duration `env:"CSVTABLE_QUERY_TIMEOUT" default:"30s"`
}
