package risk //nolint:testpackage // testing internal implementation.

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solstat/solstat/pkg/metrics"
)

func TestAggregateFile(t *testing.T) {
	t.Parallel()

	functions := []metrics.FunctionRecord{
		{
			Arithmetic:  metrics.ArithmeticProfile{CheckedAdd: 2, RawAdd: 2},
			Math:        metrics.MathFunctionProfile{Sqrt: 1},
			ControlFlow: metrics.ControlFlowProfile{CyclomaticComplexity: 3},
			Safety:      metrics.SafetyProfile{UnwrapCalls: 1},
			Complexity:  10.0,
		},
		{
			Arithmetic:  metrics.ArithmeticProfile{RawMul: 2},
			ControlFlow: metrics.ControlFlowProfile{CyclomaticComplexity: 7},
			Complexity:  6.0,
		},
	}

	profile := AggregateFile(functions)

	assert.Equal(t, 6, profile.TotalArithmeticOps)
	assert.Equal(t, 2, profile.SafeArithmeticOps)
	assert.Equal(t, 1, profile.TotalMathCalls)
	assert.Equal(t, 1, profile.TotalUnsafeOps)
	assert.Equal(t, 2, profile.FunctionCount)
	assert.InDelta(t, 5.0, profile.AvgComplexity, 1e-9)
	assert.Equal(t, 7, profile.MaxComplexity)
	assert.InDelta(t, 2.0/6.0, profile.SafetyRatio, 1e-9)
	assert.InDelta(t, 16.0, profile.ComplexityScore, 1e-9)
}

func TestAggregateFile_NoFunctions(t *testing.T) {
	t.Parallel()

	profile := AggregateFile(nil)

	assert.Zero(t, profile.FunctionCount)
	assert.Zero(t, profile.AvgComplexity)
	assert.InDelta(t, 1.0, profile.SafetyRatio, 1e-9)
}

func TestAggregateRepository_SafetyRatioIsOpsWeighted(t *testing.T) {
	t.Parallel()

	// One file without arithmetic (vacuous ratio 1.0) and one with ratio
	// 0.5 over 10 ops. The weighted ratio must stay 0.5, not drift to the
	// 0.75 a naive mean would give.
	files := []metrics.FileRecord{
		{
			Path: "a.rs",
			Aggregated: metrics.AggregatedProfile{
				SafetyRatio:   1.0,
				FunctionCount: 1,
				AvgComplexity: 2.0,
			},
		},
		{
			Path: "b.rs",
			Aggregated: metrics.AggregatedProfile{
				TotalArithmeticOps: 10,
				SafeArithmeticOps:  5,
				SafetyRatio:        0.5,
				FunctionCount:      1,
				AvgComplexity:      4.0,
			},
		},
	}

	profile := AggregateRepository(files)

	assert.InDelta(t, 0.5, profile.SafetyRatio, 1e-9)
	assert.InDelta(t, 3.0, profile.AvgComplexity, 1e-9)
}

func TestAggregateRepository_AvgComplexityIsFunctionWeighted(t *testing.T) {
	t.Parallel()

	files := []metrics.FileRecord{
		{Aggregated: metrics.AggregatedProfile{FunctionCount: 9, AvgComplexity: 2.0, MaxComplexity: 4}},
		{Aggregated: metrics.AggregatedProfile{FunctionCount: 1, AvgComplexity: 12.0, MaxComplexity: 12}},
	}

	profile := AggregateRepository(files)

	// (9*2 + 1*12) / 10, not the file mean 7.
	assert.InDelta(t, 3.0, profile.AvgComplexity, 1e-9)
	assert.Equal(t, 12, profile.MaxComplexity)
	assert.Equal(t, 10, profile.FunctionCount)
}

func TestAggregateRepository_OrderIndependent(t *testing.T) {
	t.Parallel()

	files := []metrics.FileRecord{
		{Aggregated: metrics.AggregatedProfile{TotalArithmeticOps: 3, SafeArithmeticOps: 1, FunctionCount: 2, AvgComplexity: 1.5, MaxComplexity: 2}},
		{Aggregated: metrics.AggregatedProfile{TotalArithmeticOps: 7, SafeArithmeticOps: 7, FunctionCount: 5, AvgComplexity: 3.0, MaxComplexity: 9}},
		{Aggregated: metrics.AggregatedProfile{FunctionCount: 1, AvgComplexity: 1.0, MaxComplexity: 1, SafetyRatio: 1.0}},
	}

	reversed := []metrics.FileRecord{files[2], files[1], files[0]}

	assert.Equal(t, AggregateRepository(files), AggregateRepository(reversed))
}
