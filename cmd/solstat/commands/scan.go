// Package commands implements the solstat CLI subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/solstat/solstat/internal/config"
	"github.com/solstat/solstat/internal/discover"
	"github.com/solstat/solstat/internal/engine"
	"github.com/solstat/solstat/internal/observability"
	"github.com/solstat/solstat/internal/report"
	"github.com/solstat/solstat/pkg/metrics"
	"github.com/solstat/solstat/pkg/patterns"
)

// scanFlags holds command-line overrides for the scan run.
type scanFlags struct {
	configPath   string
	analyzers    []string
	format       string
	output       string
	topN         int
	workers      int
	excludeGlobs []string
	maxFileSize  string
	patternFiles []string
	dumpMetrics  bool
	verbose      bool
	quiet        bool
}

// NewScanCommand creates the scan subcommand.
func NewScanCommand() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Analyze a Rust source tree or single file",
		Long: `Scan parses every Rust file under the given path (or exactly the given
file), extracts per-function risk metrics, and prints a banded repository
risk verdict.

Examples:
  solstat scan programs/vault
  solstat scan --format json --output report.json.lz4 .
  solstat scan --patterns my-idioms.json programs/pool/src/lib.rs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "path to config file (default .solstat.yaml in CWD or $HOME)")
	cmd.Flags().StringSliceVar(&flags.analyzers, "analyzers", nil, "analyzers to run: functions, calls, visibility (default all)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: text, json, yaml, plot")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default stdout; .lz4 suffix compresses)")
	cmd.Flags().IntVar(&flags.topN, "top", 0, "number of files/functions in rankings")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "analysis workers (default one per CPU)")
	cmd.Flags().StringSliceVar(&flags.excludeGlobs, "exclude", nil, "glob patterns to exclude")
	cmd.Flags().StringVar(&flags.maxFileSize, "max-file-size", "", "skip files larger than this (e.g. 512KB)")
	cmd.Flags().StringSliceVar(&flags.patternFiles, "patterns", nil, "custom pattern definition files (JSON)")
	cmd.Flags().BoolVar(&flags.dumpMetrics, "metrics", false, "dump run metrics to stderr after the scan")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "verbose logging")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "errors only")

	return cmd
}

func runScan(cmd *cobra.Command, root string, flags *scanFlags) error {
	logger := newLogger(flags)

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	registry, err := patterns.LoadRegistry(cfg.Patterns.Files)
	if err != nil {
		return fmt.Errorf("load pattern registry: %w", err)
	}

	sources, ioFailures, err := discover.Collect(root, discover.Options{
		ExcludeGlobs: cfg.Scan.ExcludeGlobs,
		MaxFileSize:  cfg.MaxFileSizeBytes(),
	}, logger)
	if err != nil {
		return err
	}

	logger.Info("scan started", "root", root, "files", len(sources))

	runMetrics := observability.NewRunMetrics()

	eng, err := engine.New(registry, engine.Options{
		Workers:   cfg.Scan.Workers,
		Analyzers: cfg.Analyzers,
		Metrics:   runMetrics,
	})
	if err != nil {
		return err
	}

	record := eng.AnalyzeRepository(cmd.Context(), root, sources)
	mergeFailures(record, ioFailures, runMetrics)

	logger.Info("scan finished",
		"files", record.FileCount,
		"functions", record.FunctionCount,
		"risk", record.Risk.Level,
		"score", record.Risk.Score,
		"failures", len(record.Failures))

	if err := writeReport(record, cfg); err != nil {
		return err
	}

	if flags.dumpMetrics {
		if err := runMetrics.Dump(os.Stderr); err != nil {
			return fmt.Errorf("dump run metrics: %w", err)
		}
	}

	return nil
}

// loadConfig loads the config file and applies flag overrides on top.
func loadConfig(flags *scanFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	if len(flags.analyzers) > 0 {
		cfg.Analyzers = flags.analyzers
	}

	if flags.format != "" {
		cfg.Output.Format = flags.format
	}

	if flags.output != "" {
		cfg.Output.Path = flags.output
	}

	if flags.topN > 0 {
		cfg.Output.TopN = flags.topN
	}

	if flags.workers > 0 {
		cfg.Scan.Workers = flags.workers
	}

	if len(flags.excludeGlobs) > 0 {
		cfg.Scan.ExcludeGlobs = append(cfg.Scan.ExcludeGlobs, flags.excludeGlobs...)
	}

	if flags.maxFileSize != "" {
		cfg.Scan.MaxFileSize = flags.maxFileSize
	}

	if len(flags.patternFiles) > 0 {
		cfg.Patterns.Files = append(cfg.Patterns.Files, flags.patternFiles...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeFailures folds discovery-time read failures into the report next to
// the engine's parse failures.
func mergeFailures(record *metrics.RepositoryRecord, ioFailures []metrics.FileFailure, runMetrics *observability.RunMetrics) {
	if len(ioFailures) == 0 {
		return
	}

	for range ioFailures {
		runMetrics.RecordFailure(string(metrics.FailureIO))
	}

	record.Failures = append(record.Failures, ioFailures...)
	sort.Slice(record.Failures, func(i, j int) bool {
		return record.Failures[i].Path < record.Failures[j].Path
	})
}

func writeReport(record *metrics.RepositoryRecord, cfg *config.Config) error {
	writer, err := report.Open(cfg.Output.Path)
	if err != nil {
		return err
	}

	renderErr := report.Render(record, report.Options{
		Format: cfg.Output.Format,
		TopN:   cfg.Output.TopN,
	}, writer)

	closeErr := writer.Close()

	if renderErr != nil {
		return renderErr
	}

	if closeErr != nil {
		return closeErr
	}

	return nil
}

func newLogger(flags *scanFlags) *slog.Logger {
	level := slog.LevelInfo

	switch {
	case flags.quiet:
		level = slog.LevelError
	case flags.verbose:
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
