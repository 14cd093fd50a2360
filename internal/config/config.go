// Package config loads optional YAML defaults for the reltime command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no --config flag is
// given.
const EnvPath = "RELTIME_CONFIG"

// Config holds defaults for CLI flags. Explicit flags always win.
type Config struct {
	// Format is the output format, "text" or "json".
	Format string `yaml:"format"`

	// Layout is a Go time layout used for the first two text output lines.
	Layout string `yaml:"layout"`

	// Verbose enables debug logging on stderr.
	Verbose bool `yaml:"verbose"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format"`
}

func Default() Config {
	return Config{
		Format:    "text",
		Layout:    time.RFC1123,
		LogFormat: "text",
	}
}

// Path returns the config file to load: flagPath if set, else $RELTIME_CONFIG.
// An empty result means no file.
func Path(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return os.Getenv(EnvPath)
}

// Load reads path over the defaults. Unknown keys are rejected. An empty path
// returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	// An empty or comment-only file decodes as io.EOF.
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}
