// Package engine orchestrates analysis: a pure per-file analyzer mapped
// across a worker pool, reduced into one repository record. Per-file
// failures are collected and reported; they never abort a run.
package engine

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/solstat/solstat/internal/discover"
	"github.com/solstat/solstat/internal/observability"
	"github.com/solstat/solstat/pkg/analyzers/analyze"
	"github.com/solstat/solstat/pkg/analyzers/cpi"
	"github.com/solstat/solstat/pkg/analyzers/funcs"
	"github.com/solstat/solstat/pkg/analyzers/loc"
	"github.com/solstat/solstat/pkg/analyzers/visibility"
	"github.com/solstat/solstat/pkg/metrics"
	"github.com/solstat/solstat/pkg/patterns"
	"github.com/solstat/solstat/pkg/risk"
	"github.com/solstat/solstat/pkg/rustast"
)

// Analyzer IDs selectable through the analyzers config list.
const (
	AnalyzerFunctions  = "functions"
	AnalyzerCalls      = "calls"
	AnalyzerVisibility = "visibility"
)

// Descriptors returns metadata for every built-in analyzer.
func Descriptors() []analyze.Descriptor {
	return []analyze.Descriptor{
		{ID: AnalyzerFunctions, Description: "per-function arithmetic, control-flow, and safety profiles"},
		{ID: AnalyzerCalls, Description: "cross-program invocation classification"},
		{ID: AnalyzerVisibility, Description: "public and private function surface"},
	}
}

// Options configures an Engine.
type Options struct {
	// Workers is the analysis pool size; 0 means one worker per CPU.
	Workers int

	// Analyzers selects which analyzers run; empty means all.
	Analyzers []string

	// Metrics receives run instrumentation; nil disables it.
	Metrics *observability.RunMetrics
}

// Engine analyzes Rust source trees. It holds only immutable state after
// construction and is safe for concurrent use.
type Engine struct {
	parser   *rustast.Parser
	registry *patterns.Registry
	enabled  map[string]bool
	workers  int
	metrics  *observability.RunMetrics
}

// New creates an engine using the given pattern registry. It fails when
// opts.Analyzers names an unknown analyzer ID.
func New(registry *patterns.Registry, opts Options) (*Engine, error) {
	analyzerRegistry, err := analyze.NewRegistry(Descriptors())
	if err != nil {
		return nil, err
	}

	selected, err := analyzerRegistry.SelectedIDs(opts.Analyzers)
	if err != nil {
		return nil, err
	}

	enabled := make(map[string]bool, len(selected))
	for _, id := range selected {
		enabled[id] = true
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Engine{
		parser:   rustast.NewParser(),
		registry: registry,
		enabled:  enabled,
		workers:  workers,
		metrics:  opts.Metrics,
	}, nil
}

// AnalyzeFile analyzes one source file: parse, one traversal pass shared
// by all visitors, line counting, and file-level aggregation. It is a pure
// function of (path, content).
func (e *Engine) AnalyzeFile(ctx context.Context, path string, content []byte) (metrics.FileRecord, error) {
	ctx, span := observability.Tracer().Start(ctx, "solstat.analyze_file",
		trace.WithAttributes(attribute.String("file.path", path)))
	defer span.End()

	start := time.Now()

	root, err := e.parser.Parse(ctx, path, content)
	if err != nil {
		e.metrics.RecordFailure(string(metrics.FailureParse))

		return metrics.FileRecord{}, err
	}

	traverser := analyze.NewTraverser()

	var (
		functionVisitor   *funcs.Visitor
		callVisitor       *cpi.Visitor
		visibilityVisitor *visibility.Visitor
	)

	if e.enabled[AnalyzerFunctions] {
		functionVisitor = funcs.NewVisitor(content, e.registry)
		traverser.RegisterVisitor(functionVisitor)
	}

	if e.enabled[AnalyzerCalls] {
		callVisitor = cpi.NewVisitor()
		traverser.RegisterVisitor(callVisitor)
	}

	if e.enabled[AnalyzerVisibility] {
		visibilityVisitor = visibility.NewVisitor()
		traverser.RegisterVisitor(visibilityVisitor)
	}

	traverser.Traverse(root)

	functions := make([]metrics.FunctionRecord, 0)
	if functionVisitor != nil {
		functions = functionVisitor.Records()
	}

	calls := metrics.NewCallClassificationProfile()
	if callVisitor != nil {
		calls = callVisitor.Profile()
	}

	var visibilityProfile metrics.VisibilityProfile
	if visibilityVisitor != nil {
		visibilityProfile = visibilityVisitor.Profile()
	}

	record := metrics.FileRecord{
		Path:       path,
		Lines:      loc.Count(content),
		Functions:  functions,
		Aggregated: risk.AggregateFile(functions),
		Calls:      calls,
		Visibility: visibilityProfile,
		Patterns:   e.filePatterns(content),
	}

	e.metrics.ObserveFile(time.Since(start))

	return record, nil
}

func (e *Engine) filePatterns(content []byte) []string {
	if e.registry == nil {
		return make([]string, 0)
	}

	return e.registry.MatchText(string(content))
}

// reducer collects worker output under one lock.
type reducer struct {
	mu       sync.Mutex
	files    []metrics.FileRecord
	failures []metrics.FileFailure
}

func (r *reducer) addFile(record metrics.FileRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.files = append(r.files, record)
}

func (r *reducer) addFailure(failure metrics.FileFailure) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failures = append(r.failures, failure)
}

// AnalyzeRepository maps AnalyzeFile across the sources in parallel and
// reduces the results into one repository record. The reduction sorts by
// path and uses the order-independent aggregation formulas, so output does
// not depend on worker scheduling.
func (e *Engine) AnalyzeRepository(ctx context.Context, root string, sources []discover.SourceFile) *metrics.RepositoryRecord {
	ctx, span := observability.Tracer().Start(ctx, "solstat.analyze_repository",
		trace.WithAttributes(attribute.Int("file.count", len(sources))))
	defer span.End()

	red := &reducer{}
	fileChan := make(chan discover.SourceFile, e.workers)

	var wg sync.WaitGroup

	wg.Add(e.workers)

	for range e.workers {
		go e.fileWorker(ctx, &wg, fileChan, red)
	}

	for _, source := range sources {
		fileChan <- source
	}

	close(fileChan)
	wg.Wait()

	return e.buildRecord(root, red)
}

func (e *Engine) fileWorker(ctx context.Context, wg *sync.WaitGroup, fileChan <-chan discover.SourceFile, red *reducer) {
	defer wg.Done()

	for source := range fileChan {
		record, err := e.AnalyzeFile(ctx, source.Path, source.Content)
		if err != nil {
			red.addFailure(metrics.FileFailure{
				Path:   source.Path,
				Kind:   metrics.FailureParse,
				Reason: err.Error(),
			})

			continue
		}

		red.addFile(record)
	}
}

func (e *Engine) buildRecord(root string, red *reducer) *metrics.RepositoryRecord {
	sort.Slice(red.files, func(i, j int) bool { return red.files[i].Path < red.files[j].Path })
	sort.Slice(red.failures, func(i, j int) bool { return red.failures[i].Path < red.failures[j].Path })

	aggregated := risk.AggregateRepository(red.files)

	calls := metrics.NewCallClassificationProfile()

	var (
		visibilityTotals metrics.VisibilityProfile
		lineTotals       metrics.LineProfile
	)

	for i := range red.files {
		calls.Merge(red.files[i].Calls)
		visibilityTotals.Merge(red.files[i].Visibility)
		lineTotals.Merge(red.files[i].Lines)
	}

	record := &metrics.RepositoryRecord{
		Root:          root,
		FileCount:     len(red.files),
		TotalLines:    lineTotals.Total(),
		FunctionCount: aggregated.FunctionCount,
		Files:         red.files,
		Aggregated:    aggregated,
		Calls:         calls,
		Visibility:    visibilityTotals,
		Lines:         lineTotals,
		Risk:          risk.Assess(aggregated),
		Failures:      red.failures,
	}

	if record.Files == nil {
		record.Files = make([]metrics.FileRecord, 0)
	}

	if record.Failures == nil {
		record.Failures = make([]metrics.FileFailure, 0)
	}

	return record
}
