package config //nolint:testpackage // testing internal implementation.

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Scan:   ScanConfig{Workers: 4, MaxFileSize: "1MB"},
		Output: OutputConfig{Format: FormatText, TopN: 10},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{
			name:   "negative workers",
			mutate: func(c *Config) { c.Scan.Workers = -1 },
			want:   ErrInvalidWorkers,
		},
		{
			name:   "bad file size",
			mutate: func(c *Config) { c.Scan.MaxFileSize = "huge" },
			want:   ErrInvalidMaxFileSize,
		},
		{
			name:   "bad glob",
			mutate: func(c *Config) { c.Scan.ExcludeGlobs = []string{"[unclosed"} },
			want:   ErrInvalidExcludeGlob,
		},
		{
			name:   "unknown format",
			mutate: func(c *Config) { c.Output.Format = "xml" },
			want:   ErrInvalidFormat,
		},
		{
			name:   "negative top n",
			mutate: func(c *Config) { c.Output.TopN = -5 },
			want:   ErrInvalidTopN,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestConfig_MaxFileSizeBytes(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	assert.Equal(t, uint64(1000000), cfg.MaxFileSizeBytes())

	cfg.Scan.MaxFileSize = ""
	assert.Zero(t, cfg.MaxFileSizeBytes())

	cfg.Scan.MaxFileSize = "512KB"
	assert.Equal(t, uint64(512000), cfg.MaxFileSizeBytes())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultScanWorkers, cfg.Scan.Workers)
	assert.Equal(t, DefaultScanMaxFileSize, cfg.Scan.MaxFileSize)
	assert.Equal(t, DefaultOutputFormat, cfg.Output.Format)
	assert.Equal(t, DefaultOutputTopN, cfg.Output.TopN)
	assert.Empty(t, cfg.Patterns.Files)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solstat.yaml")
	content := `
scan:
  workers: 2
  exclude_globs:
    - "target/*"
output:
  format: json
  top_n: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Scan.Workers)
	assert.Equal(t, []string{"target/*"}, cfg.Scan.ExcludeGlobs)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, 5, cfg.Output.TopN)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solstat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan:\n  workers: -3\n"), 0o600))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidWorkers)
}
