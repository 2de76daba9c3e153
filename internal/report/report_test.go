package report //nolint:testpackage // testing internal implementation.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solstat/solstat/internal/config"
	"github.com/solstat/solstat/pkg/metrics"
)

func sampleRecord() *metrics.RepositoryRecord {
	return &metrics.RepositoryRecord{
		Root:          "programs/vault",
		FileCount:     2,
		TotalLines:    120,
		FunctionCount: 3,
		Files: []metrics.FileRecord{
			{
				Path: "programs/vault/src/lib.rs",
				Functions: []metrics.FunctionRecord{
					{Name: "deposit", StartLine: 4, EndLine: 12, Complexity: 9.5,
						ControlFlow: metrics.ControlFlowProfile{CyclomaticComplexity: 3}},
					{Name: "fee", StartLine: 14, EndLine: 18, Complexity: 2.0,
						ControlFlow: metrics.ControlFlowProfile{CyclomaticComplexity: 1}},
				},
				Aggregated: metrics.AggregatedProfile{
					FunctionCount: 2, ComplexityScore: 11.5, SafetyRatio: 0.5,
				},
				Patterns: []string{"liquidity_management"},
			},
			{
				Path: "programs/vault/src/state.rs",
				Functions: []metrics.FunctionRecord{
					{Name: "space", StartLine: 3, EndLine: 5, Complexity: 0.8,
						ControlFlow: metrics.ControlFlowProfile{CyclomaticComplexity: 1}},
				},
				Aggregated: metrics.AggregatedProfile{
					FunctionCount: 1, ComplexityScore: 0.8, SafetyRatio: 1.0,
				},
			},
		},
		Aggregated: metrics.AggregatedProfile{
			TotalArithmeticOps: 4, SafeArithmeticOps: 2, FunctionCount: 3,
			AvgComplexity: 1.7, MaxComplexity: 3, SafetyRatio: 0.5,
		},
		Calls:      metrics.NewCallClassificationProfile(),
		Visibility: metrics.VisibilityProfile{Public: 2, Private: 1},
		Lines:      metrics.LineProfile{Code: 90, Comment: 20, Blank: 10},
		Risk: metrics.RiskVerdict{
			Level: metrics.RiskLow, Score: 20.0,
			Factors:         []string{"low arithmetic safety ratio"},
			Recommendations: []string{"use checked arithmetic"},
		},
		Failures: []metrics.FileFailure{
			{Path: "programs/vault/src/broken.rs", Kind: metrics.FailureParse, Reason: "syntax"},
		},
	}
}

func TestTopFiles(t *testing.T) {
	t.Parallel()

	record := sampleRecord()
	top := TopFiles(record.Files, 1)

	require.Len(t, top, 1)
	assert.Equal(t, "programs/vault/src/lib.rs", top[0].Path)
}

func TestTopFunctions(t *testing.T) {
	t.Parallel()

	record := sampleRecord()
	top := TopFunctions(record.Files, 2)

	require.Len(t, top, 2)
	assert.Equal(t, "deposit", top[0].Function.Name)
	assert.Equal(t, "fee", top[1].Function.Name)
}

func TestRender_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Render(sampleRecord(), Options{Format: config.FormatText, TopN: 10}, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "SOLSTAT RISK REPORT")
	assert.Contains(t, out, "deposit")
	assert.Contains(t, out, "Riskiest files:")
	assert.Contains(t, out, "Skipped files (1):")
	assert.Contains(t, out, "score 20.0")
}

func TestRender_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Render(sampleRecord(), Options{Format: config.FormatJSON}, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"root": "programs/vault"`)
	assert.Contains(t, buf.String(), `"complexity_score"`)
}

func TestRender_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Render(sampleRecord(), Options{Format: config.FormatYAML}, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "root: programs/vault")
	assert.Contains(t, buf.String(), "level: low")
}

func TestRender_Plot(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Render(sampleRecord(), Options{Format: config.FormatPlot}, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "<html>")
	assert.Contains(t, buf.String(), "lib.rs")
}

func TestRender_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Render(sampleRecord(), Options{Format: "xml"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestOpen_PlainFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json")

	writer, err := Open(path)
	require.NoError(t, err)

	_, err = writer.Write([]byte("{}"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(content))
}

func TestOpen_LZ4Roundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json.lz4")
	payload := strings.Repeat("solstat report line\n", 100)

	writer, err := Open(path)
	require.NoError(t, err)

	_, err = writer.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var decoded bytes.Buffer
	_, err = decoded.ReadFrom(lz4.NewReader(file))
	require.NoError(t, err)
	assert.Equal(t, payload, decoded.String())
}

func TestOpen_EmptyPathIsStdout(t *testing.T) {
	t.Parallel()

	writer, err := Open("")
	require.NoError(t, err)
	assert.NoError(t, writer.Close())
}
