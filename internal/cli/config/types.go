// Package config provides configuration management for the csvcode CLI.
//
// Values are layered with koanf: built-in defaults, then an optional
// csvcode.yaml file, then CSVCODE_* environment variables, then flags that
// were set explicitly on the command line.
package config

// Config holds all CLI configuration options.
type Config struct {
	Verbose     bool   `koanf:"verbose"`
	Python      string `koanf:"python"`
	Generator   string `koanf:"generator"`
	NumChars    int    `koanf:"num_chars"`
	CachePath   string `koanf:"cache_path"`
	NoCache     bool   `koanf:"no_cache"`
	HistoryFile string `koanf:"history_file"`
	Color       string `koanf:"color"`
	Output      string `koanf:"output"`
}

// Default configuration values.
const (
	DefaultPython    = "python3"
	DefaultGenerator = "csvcode"
	DefaultColor     = "auto"
	DefaultOutput    = "table"
	ConfigFileName   = "csvcode.yaml"
	EnvPrefix        = "CSVCODE_"
)

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		Python:      DefaultPython,
		Generator:   DefaultGenerator,
		CachePath:   defaultCachePath(),
		HistoryFile: defaultHistoryFile(),
		Color:       DefaultColor,
		Output:      DefaultOutput,
	}
}
