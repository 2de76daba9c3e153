package risk

import "github.com/solstat/solstat/pkg/metrics"

// Scoring thresholds and penalties.
const (
	safetyRatioThreshold = 0.8
	safetyRatioPenalty   = 20.0
	avgComplexityLimit   = 10.0
	avgComplexityPenalty = 15.0
	unsafeOpsLimit       = 10
	unsafeOpsPenalty     = 25.0
	lowBandUpperBound    = 25.0
	mediumBandUpperBound = 50.0
	highBandUpperBound   = 75.0
)

// Assess scores a repository profile against fixed thresholds and bands
// the total. Factors and recommendations are appended in threshold order,
// so verdicts are stable across runs.
func Assess(profile metrics.AggregatedProfile) metrics.RiskVerdict {
	verdict := metrics.RiskVerdict{
		Factors:         make([]string, 0),
		Recommendations: make([]string, 0),
	}

	if profile.SafetyRatio < safetyRatioThreshold {
		verdict.Score += safetyRatioPenalty
		verdict.Factors = append(verdict.Factors,
			"low arithmetic safety ratio: most arithmetic uses raw operators that can overflow silently")
		verdict.Recommendations = append(verdict.Recommendations,
			"replace raw arithmetic with checked_* or saturating_* forms on balance-affecting paths")
	}

	if profile.AvgComplexity > avgComplexityLimit {
		verdict.Score += avgComplexityPenalty
		verdict.Factors = append(verdict.Factors,
			"high average cyclomatic complexity: branching logic is hard to audit exhaustively")
		verdict.Recommendations = append(verdict.Recommendations,
			"split complex instruction handlers into smaller single-purpose functions")
	}

	if profile.TotalUnsafeOps > unsafeOpsLimit {
		verdict.Score += unsafeOpsPenalty
		verdict.Factors = append(verdict.Factors,
			"many unsafe operations: unwrap/expect/panic and unsafe blocks can abort execution mid-instruction")
		verdict.Recommendations = append(verdict.Recommendations,
			"propagate errors with ? instead of unwrapping, and isolate unsafe blocks behind audited helpers")
	}

	verdict.Level = band(verdict.Score)

	return verdict
}

// band maps a score onto a risk level using half-open intervals with
// inclusive upper bounds, so a score landing exactly on a boundary takes
// the lower band.
func band(score float64) metrics.RiskLevel {
	switch {
	case score <= lowBandUpperBound:
		return metrics.RiskLow
	case score <= mediumBandUpperBound:
		return metrics.RiskMedium
	case score <= highBandUpperBound:
		return metrics.RiskHigh
	default:
		return metrics.RiskCritical
	}
}
