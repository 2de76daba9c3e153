// Package report shapes repository records into the output formats: text,
// json, yaml, and plot, with optional lz4-compressed file output.
package report

import (
	"sort"

	"github.com/solstat/solstat/pkg/metrics"
)

// RankedFunction pairs a function record with its file for ranking output.
type RankedFunction struct {
	File     string                 `json:"file"     yaml:"file"`
	Function metrics.FunctionRecord `json:"function" yaml:"function"`
}

// TopFiles returns up to n files ranked by aggregate complexity score,
// ties broken by path so rankings are deterministic.
func TopFiles(files []metrics.FileRecord, n int) []metrics.FileRecord {
	ranked := make([]metrics.FileRecord, len(files))
	copy(ranked, files)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Aggregated.ComplexityScore != ranked[j].Aggregated.ComplexityScore {
			return ranked[i].Aggregated.ComplexityScore > ranked[j].Aggregated.ComplexityScore
		}

		return ranked[i].Path < ranked[j].Path
	})

	return limit(ranked, n)
}

// TopFunctions returns up to n functions across all files ranked by
// complexity score, ties broken by file path then name.
func TopFunctions(files []metrics.FileRecord, n int) []RankedFunction {
	ranked := make([]RankedFunction, 0)

	for i := range files {
		for _, fn := range files[i].Functions {
			ranked = append(ranked, RankedFunction{File: files[i].Path, Function: fn})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Function.Complexity != ranked[j].Function.Complexity {
			return ranked[i].Function.Complexity > ranked[j].Function.Complexity
		}

		if ranked[i].File != ranked[j].File {
			return ranked[i].File < ranked[j].File
		}

		return ranked[i].Function.Name < ranked[j].Function.Name
	})

	return limit(ranked, n)
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}

	return items
}
