package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/solstat/solstat/pkg/metrics"
)

// plotFilesLimit caps the bar chart width.
const plotFilesLimit = 20

// renderPlot writes an HTML bar chart of per-file complexity and safety.
func renderPlot(record *metrics.RepositoryRecord, writer io.Writer) error {
	files := TopFiles(record.Files, plotFilesLimit)

	labels := make([]string, 0, len(files))
	complexity := make([]opts.BarData, 0, len(files))
	unsafeOps := make([]opts.BarData, 0, len(files))

	for i := range files {
		labels = append(labels, filepath.Base(files[i].Path))
		complexity = append(complexity, opts.BarData{Value: files[i].Aggregated.ComplexityScore})
		unsafeOps = append(unsafeOps, opts.BarData{Value: files[i].Aggregated.TotalUnsafeOps})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "solstat risk analysis: " + record.Root,
			Subtitle: fmt.Sprintf("risk %s (score %.1f), %d files, %d functions",
				record.Risk.Level, record.Risk.Score, record.FileCount, record.FunctionCount),
		}),
	)

	bar.SetXAxis(labels).
		AddSeries("complexity score", complexity).
		AddSeries("unsafe operations", unsafeOps)

	if err := bar.Render(writer); err != nil {
		return fmt.Errorf("render plot: %w", err)
	}

	return nil
}
