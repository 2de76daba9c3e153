package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/solstat/solstat/pkg/metrics"
)

const ratioPercent = 100

// riskColors maps each risk band to its display color.
var riskColors = map[metrics.RiskLevel]*color.Color{
	metrics.RiskLow:      color.New(color.FgGreen),
	metrics.RiskMedium:   color.New(color.FgYellow),
	metrics.RiskHigh:     color.New(color.FgRed),
	metrics.RiskCritical: color.New(color.FgRed, color.Bold),
}

// renderText writes the human-readable report.
func renderText(record *metrics.RepositoryRecord, topN int, writer io.Writer) error {
	var out strings.Builder

	out.WriteString(fmt.Sprintf("=== SOLSTAT RISK REPORT: %s ===\n\n", record.Root))

	writeSummary(&out, record)
	writeRisk(&out, record)
	writeTopFiles(&out, record, topN)
	writeTopFunctions(&out, record, topN)
	writeFailures(&out, record)

	if _, err := io.WriteString(writer, out.String()); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	return nil
}

func writeSummary(out *strings.Builder, record *metrics.RepositoryRecord) {
	agg := record.Aggregated

	out.WriteString(fmt.Sprintf("Files: %s | Functions: %s | Lines: %s (code %s, comments %s)\n",
		humanize.Comma(int64(record.FileCount)),
		humanize.Comma(int64(record.FunctionCount)),
		humanize.Comma(int64(record.TotalLines)),
		humanize.Comma(int64(record.Lines.Code)),
		humanize.Comma(int64(record.Lines.Comment))))

	out.WriteString(fmt.Sprintf("Arithmetic ops: %s (%.1f%% safe) | Math calls: %s | Unsafe ops: %s\n",
		humanize.Comma(int64(agg.TotalArithmeticOps)),
		agg.SafetyRatio*ratioPercent,
		humanize.Comma(int64(agg.TotalMathCalls)),
		humanize.Comma(int64(agg.TotalUnsafeOps))))

	out.WriteString(fmt.Sprintf("Complexity: avg %.2f, max %d | Visibility: %d public / %d private\n",
		agg.AvgComplexity, agg.MaxComplexity,
		record.Visibility.Public, record.Visibility.Private))

	if record.Calls != nil && record.Calls.TotalClassified() > 0 {
		out.WriteString(fmt.Sprintf("External calls: %d signed, %d unsigned across %s\n",
			record.Calls.SignedCalls, record.Calls.UnsignedCalls,
			strings.Join(record.Calls.DistinctTargets, ", ")))
	}

	out.WriteString("\n")
}

func writeRisk(out *strings.Builder, record *metrics.RepositoryRecord) {
	levelColor, known := riskColors[record.Risk.Level]
	if !known {
		levelColor = color.New(color.FgWhite)
	}

	out.WriteString(fmt.Sprintf("Risk: %s (score %.1f)\n",
		levelColor.Sprint(strings.ToUpper(string(record.Risk.Level))), record.Risk.Score))

	for _, factor := range record.Risk.Factors {
		out.WriteString("  ! " + factor + "\n")
	}

	for _, recommendation := range record.Risk.Recommendations {
		out.WriteString("  > " + recommendation + "\n")
	}

	out.WriteString("\n")
}

func writeTopFiles(out *strings.Builder, record *metrics.RepositoryRecord, topN int) {
	files := TopFiles(record.Files, topN)
	if len(files) == 0 {
		return
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"file", "functions", "complexity", "safety", "patterns"})

	for i := range files {
		tbl.AppendRow(table.Row{
			files[i].Path,
			files[i].Aggregated.FunctionCount,
			fmt.Sprintf("%.1f", files[i].Aggregated.ComplexityScore),
			fmt.Sprintf("%.0f%%", files[i].Aggregated.SafetyRatio*ratioPercent),
			strings.Join(files[i].Patterns, ","),
		})
	}

	out.WriteString("Riskiest files:\n" + tbl.Render() + "\n\n")
}

func writeTopFunctions(out *strings.Builder, record *metrics.RepositoryRecord, topN int) {
	functions := TopFunctions(record.Files, topN)
	if len(functions) == 0 {
		return
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"function", "file", "lines", "cyclomatic", "score"})

	for _, ranked := range functions {
		fn := ranked.Function
		tbl.AppendRow(table.Row{
			fn.Name,
			ranked.File,
			fmt.Sprintf("%d-%d", fn.StartLine, fn.EndLine),
			fn.ControlFlow.CyclomaticComplexity,
			fmt.Sprintf("%.1f", fn.Complexity),
		})
	}

	out.WriteString("Most complex functions:\n" + tbl.Render() + "\n\n")
}

func writeFailures(out *strings.Builder, record *metrics.RepositoryRecord) {
	if len(record.Failures) == 0 {
		return
	}

	out.WriteString(fmt.Sprintf("Skipped files (%d):\n", len(record.Failures)))

	for _, failure := range record.Failures {
		out.WriteString(fmt.Sprintf("  - %s [%s]: %s\n", failure.Path, failure.Kind, failure.Reason))
	}

	out.WriteString("\n")
}
