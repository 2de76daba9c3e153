package metrics

import "sort"

// Weights of the per-function composite complexity score.
const (
	arithmeticWeight = 1.0
	mathWeight       = 1.2
	cyclomaticWeight = 0.8
	abortWeight      = 2.0
)

// FunctionRecord holds every metric extracted from one function definition.
type FunctionRecord struct {
	Name        string              `json:"name"            yaml:"name"`
	Signature   string              `json:"signature"       yaml:"signature"`
	StartLine   uint                `json:"start_line"      yaml:"start_line"`
	EndLine     uint                `json:"end_line"        yaml:"end_line"`
	Arithmetic  ArithmeticProfile   `json:"arithmetic"      yaml:"arithmetic"`
	Math        MathFunctionProfile `json:"math"            yaml:"math"`
	ControlFlow ControlFlowProfile  `json:"control_flow"    yaml:"control_flow"`
	Safety      SafetyProfile       `json:"safety"          yaml:"safety"`
	Patterns    []string            `json:"patterns"        yaml:"patterns"`
	Complexity  float64             `json:"complexity_score" yaml:"complexity_score"`
}

// ComplexityScore derives the composite complexity of one function from its
// profiles. Abort-style calls weigh heaviest since each is a reachable
// runtime halt.
func (r *FunctionRecord) ComplexityScore() float64 {
	return float64(r.Arithmetic.TotalOps())*arithmeticWeight +
		float64(r.Math.TotalCalls())*mathWeight +
		float64(r.ControlFlow.CyclomaticComplexity)*cyclomaticWeight +
		float64(r.Safety.AbortCalls()+r.Safety.PanicCallsTotal())*abortWeight
}

// CallCategory is the program-target bucket of a classified external call.
type CallCategory string

// Program-target buckets for classified calls.
const (
	CategoryToken      CallCategory = "token"
	CategorySystem     CallCategory = "system"
	CategoryAssociated CallCategory = "associated"
	CategoryOther      CallCategory = "other"
)

// CallClassificationProfile summarizes external (cross-program) calls found
// in one file: per-category counts, signed/unsigned split, and the set of
// distinct call targets.
type CallClassificationProfile struct {
	Categories      map[CallCategory]int `json:"categories"       yaml:"categories"`
	SignedCalls     int                  `json:"signed_calls"     yaml:"signed_calls"`
	UnsignedCalls   int                  `json:"unsigned_calls"   yaml:"unsigned_calls"`
	DistinctTargets []string             `json:"distinct_targets" yaml:"distinct_targets"`
}

// NewCallClassificationProfile returns an empty profile with an initialized
// category map.
func NewCallClassificationProfile() *CallClassificationProfile {
	return &CallClassificationProfile{
		Categories:      make(map[CallCategory]int),
		DistinctTargets: make([]string, 0),
	}
}

// TotalClassified returns the number of classified calls.
func (p *CallClassificationProfile) TotalClassified() int {
	return p.SignedCalls + p.UnsignedCalls
}

// AddTarget records a distinct call target, keeping the set sorted and
// deduplicated.
func (p *CallClassificationProfile) AddTarget(target string) {
	idx := sort.SearchStrings(p.DistinctTargets, target)
	if idx < len(p.DistinctTargets) && p.DistinctTargets[idx] == target {
		return
	}

	p.DistinctTargets = append(p.DistinctTargets, "")
	copy(p.DistinctTargets[idx+1:], p.DistinctTargets[idx:])
	p.DistinctTargets[idx] = target
}

// ComplexityScore derives the call-surface complexity: two points per
// distinct target plus up to ten points scaled by the signed-call ratio.
// The ratio term is zero when no call was classified.
func (p *CallClassificationProfile) ComplexityScore() float64 {
	score := float64(len(p.DistinctTargets)) * 2.0

	if total := p.TotalClassified(); total > 0 {
		score += float64(p.SignedCalls) / float64(total) * 10.0
	}

	return score
}

// Merge folds other into p. Targets stay deduplicated and sorted so merged
// profiles do not depend on file order.
func (p *CallClassificationProfile) Merge(other *CallClassificationProfile) {
	if other == nil {
		return
	}

	for category, count := range other.Categories {
		p.Categories[category] += count
	}

	p.SignedCalls += other.SignedCalls
	p.UnsignedCalls += other.UnsignedCalls

	for _, target := range other.DistinctTargets {
		p.AddTarget(target)
	}
}

// AggregatedProfile rolls per-function metrics up to one file or the whole
// repository. The safety ratio is weighted by arithmetic-op counts, so
// functions and files without arithmetic carry no weight.
type AggregatedProfile struct {
	TotalArithmeticOps int     `json:"total_arithmetic_ops" yaml:"total_arithmetic_ops"`
	SafeArithmeticOps  int     `json:"safe_arithmetic_ops"  yaml:"safe_arithmetic_ops"`
	TotalMathCalls     int     `json:"total_math_calls"     yaml:"total_math_calls"`
	TotalUnsafeOps     int     `json:"total_unsafe_ops"     yaml:"total_unsafe_ops"`
	FunctionCount      int     `json:"function_count"       yaml:"function_count"`
	AvgComplexity      float64 `json:"avg_complexity"       yaml:"avg_complexity"`
	MaxComplexity      int     `json:"max_complexity"       yaml:"max_complexity"`
	SafetyRatio        float64 `json:"safety_ratio"         yaml:"safety_ratio"`
	ComplexityScore    float64 `json:"complexity_score"     yaml:"complexity_score"`
}

// FileRecord is the full analysis result of one source file.
type FileRecord struct {
	Path       string                     `json:"path"       yaml:"path"`
	Lines      LineProfile                `json:"lines"      yaml:"lines"`
	Functions  []FunctionRecord           `json:"functions"  yaml:"functions"`
	Aggregated AggregatedProfile          `json:"aggregated" yaml:"aggregated"`
	Calls      *CallClassificationProfile `json:"calls"      yaml:"calls"`
	Visibility VisibilityProfile          `json:"visibility" yaml:"visibility"`
	Patterns   []string                   `json:"patterns"   yaml:"patterns"`
}

// RiskLevel is a discrete risk band.
type RiskLevel string

// Risk bands, ordered from least to most severe.
const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskVerdict is the banded outcome of repository aggregation.
type RiskVerdict struct {
	Level           RiskLevel `json:"level"           yaml:"level"`
	Score           float64   `json:"score"           yaml:"score"`
	Factors         []string  `json:"factors"         yaml:"factors"`
	Recommendations []string  `json:"recommendations" yaml:"recommendations"`
}

// RepositoryRecord is the top-level report handed to the output layer.
type RepositoryRecord struct {
	Root          string                     `json:"root"           yaml:"root"`
	FileCount     int                        `json:"file_count"     yaml:"file_count"`
	TotalLines    int                        `json:"total_lines"    yaml:"total_lines"`
	FunctionCount int                        `json:"function_count" yaml:"function_count"`
	Files         []FileRecord               `json:"files"          yaml:"files"`
	Aggregated    AggregatedProfile          `json:"aggregated"     yaml:"aggregated"`
	Calls         *CallClassificationProfile `json:"calls"          yaml:"calls"`
	Visibility    VisibilityProfile          `json:"visibility"     yaml:"visibility"`
	Lines         LineProfile                `json:"lines"          yaml:"lines"`
	Risk          RiskVerdict                `json:"risk"           yaml:"risk"`
	Failures      []FileFailure              `json:"failures"       yaml:"failures"`
}

// FailureKind identifies why a file could not be analyzed.
type FailureKind string

// Recoverable per-file failure kinds. Each skips the file and leaves the
// rest of the run intact.
const (
	FailureParse FailureKind = "parse"
	FailureIO    FailureKind = "io"
)

// FileFailure records one skipped file. Failures are additive; they are
// reported alongside results and never abort the run.
type FileFailure struct {
	Path   string      `json:"path"   yaml:"path"`
	Kind   FailureKind `json:"kind"   yaml:"kind"`
	Reason string      `json:"reason" yaml:"reason"`
}
