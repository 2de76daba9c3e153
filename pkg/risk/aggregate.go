// Package risk rolls function metrics up to file and repository level and
// bands the result into a risk verdict.
package risk

import "github.com/solstat/solstat/pkg/metrics"

// AggregateFile folds the function records of one file into an
// AggregatedProfile. Average complexity is an arithmetic mean over
// functions, zero when the file defines none.
func AggregateFile(functions []metrics.FunctionRecord) metrics.AggregatedProfile {
	var profile metrics.AggregatedProfile

	totalComplexity := 0

	for i := range functions {
		fn := &functions[i]

		profile.TotalArithmeticOps += fn.Arithmetic.TotalOps()
		profile.SafeArithmeticOps += fn.Arithmetic.SafeOps()
		profile.TotalMathCalls += fn.Math.TotalCalls()
		profile.TotalUnsafeOps += fn.Safety.UnsafeOperations()
		profile.ComplexityScore += fn.Complexity

		totalComplexity += fn.ControlFlow.CyclomaticComplexity
		if fn.ControlFlow.CyclomaticComplexity > profile.MaxComplexity {
			profile.MaxComplexity = fn.ControlFlow.CyclomaticComplexity
		}
	}

	profile.FunctionCount = len(functions)
	if profile.FunctionCount > 0 {
		profile.AvgComplexity = float64(totalComplexity) / float64(profile.FunctionCount)
	}

	profile.SafetyRatio = safetyRatio(profile.SafeArithmeticOps, profile.TotalArithmeticOps)

	return profile
}

// AggregateRepository folds per-file profiles into one repository profile.
// The average complexity is weighted by function count and the safety
// ratio by arithmetic-op count, so empty or arithmetic-free files never
// dilute either signal. Both folds are built from accumulated
// numerator/denominator pairs and are independent of file order.
func AggregateRepository(files []metrics.FileRecord) metrics.AggregatedProfile {
	var profile metrics.AggregatedProfile

	weightedComplexity := 0.0

	for i := range files {
		agg := &files[i].Aggregated

		profile.TotalArithmeticOps += agg.TotalArithmeticOps
		profile.SafeArithmeticOps += agg.SafeArithmeticOps
		profile.TotalMathCalls += agg.TotalMathCalls
		profile.TotalUnsafeOps += agg.TotalUnsafeOps
		profile.FunctionCount += agg.FunctionCount
		profile.ComplexityScore += agg.ComplexityScore

		weightedComplexity += agg.AvgComplexity * float64(agg.FunctionCount)

		if agg.MaxComplexity > profile.MaxComplexity {
			profile.MaxComplexity = agg.MaxComplexity
		}
	}

	if profile.FunctionCount > 0 {
		profile.AvgComplexity = weightedComplexity / float64(profile.FunctionCount)
	}

	profile.SafetyRatio = safetyRatio(profile.SafeArithmeticOps, profile.TotalArithmeticOps)

	return profile
}

func safetyRatio(safe, total int) float64 {
	if total == 0 {
		return 1.0
	}

	return float64(safe) / float64(total)
}
