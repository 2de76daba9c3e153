// Package config loads and validates solstat configuration from file,
// environment, and defaults. Any error returned from this package is fatal
// at startup; no partial analysis runs on a broken configuration.
package config

import (
	"errors"
	"fmt"
	"path"

	"github.com/dustin/go-humanize"
)

// Config is the top-level configuration struct for solstat.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Analyzers []string       `mapstructure:"analyzers"`
	Scan      ScanConfig     `mapstructure:"scan"`
	Output    OutputConfig   `mapstructure:"output"`
	Patterns  PatternsConfig `mapstructure:"patterns"`
}

// ScanConfig holds discovery and worker-pool knobs.
type ScanConfig struct {
	Workers      int      `mapstructure:"workers"`
	ExcludeGlobs []string `mapstructure:"exclude_globs"`
	MaxFileSize  string   `mapstructure:"max_file_size"`
}

// OutputConfig holds report shaping settings.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
	TopN   int    `mapstructure:"top_n"`
}

// PatternsConfig holds custom pattern registry settings.
type PatternsConfig struct {
	Files []string `mapstructure:"files"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidWorkers indicates the workers value is negative.
	ErrInvalidWorkers = errors.New("scan.workers must be non-negative")
	// ErrInvalidMaxFileSize indicates the max file size cannot be parsed.
	ErrInvalidMaxFileSize = errors.New("scan.max_file_size must be a size like 512KB or 1MB")
	// ErrInvalidExcludeGlob indicates a malformed exclude glob.
	ErrInvalidExcludeGlob = errors.New("scan.exclude_globs entry is not a valid glob")
	// ErrInvalidFormat indicates an unknown output format.
	ErrInvalidFormat = errors.New("output.format must be one of text, json, yaml, plot")
	// ErrInvalidTopN indicates a negative top-N value.
	ErrInvalidTopN = errors.New("output.top_n must be non-negative")
)

// Output formats accepted by the report layer.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatPlot = "plot"
)

// Validate checks config invariants and returns the first violation.
func (c *Config) Validate() error {
	if c.Scan.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Scan.Workers)
	}

	if c.Scan.MaxFileSize != "" {
		if _, err := humanize.ParseBytes(c.Scan.MaxFileSize); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidMaxFileSize, c.Scan.MaxFileSize)
		}
	}

	for _, glob := range c.Scan.ExcludeGlobs {
		if _, err := path.Match(glob, "probe"); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidExcludeGlob, glob)
		}
	}

	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML, FormatPlot:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}

	if c.Output.TopN < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTopN, c.Output.TopN)
	}

	return nil
}

// MaxFileSizeBytes returns the parsed scan size limit, 0 meaning unlimited.
func (c *Config) MaxFileSizeBytes() uint64 {
	if c.Scan.MaxFileSize == "" {
		return 0
	}

	size, err := humanize.ParseBytes(c.Scan.MaxFileSize)
	if err != nil {
		return 0
	}

	return size
}
