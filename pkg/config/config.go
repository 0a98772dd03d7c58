// Package config loads the server configuration from a YAML file with
// sensible defaults for every field.
package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values can be written as "30s"
// style strings.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all server and solver settings.
type Config struct {
	// Network
	Addr           string   `yaml:"addr"`
	ReadTimeout    Duration `yaml:"read_timeout"`
	WriteTimeout   Duration `yaml:"write_timeout"`
	RequestTimeout Duration `yaml:"request_timeout"`
	MaxConcurrent  int      `yaml:"max_concurrent"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
	CORSOrigin     string   `yaml:"cors_origin"`

	// Logging
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Solver
	TwoOptMaxSweeps  int `yaml:"two_opt_max_sweeps"`
	GreedyAdvisoryAt int `yaml:"greedy_advisory_at"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		Addr:             ":8080",
		ReadTimeout:      Duration(30 * time.Second),
		WriteTimeout:     Duration(60 * time.Second),
		RequestTimeout:   Duration(60 * time.Second),
		MaxConcurrent:    runtime.NumCPU() * 2,
		MaxUploadBytes:   64 << 20,
		CORSOrigin:       "",
		LogLevel:         "info",
		TwoOptMaxSweeps:  1000,
		GreedyAdvisoryAt: 200,
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}
