// Package metrics defines the data model produced by the analysis engine:
// per-function profiles, file records, aggregated repository metrics, and
// the risk verdict. All records are value types folded upward by pure
// reduction; nothing here holds process-wide state.
package metrics

// ArithmeticProfile counts arithmetic operations by safety class. Checked
// and saturating forms cannot silently overflow; wrapping and raw forms
// can.
type ArithmeticProfile struct {
	CheckedAdd int `json:"checked_add" yaml:"checked_add"`
	CheckedSub int `json:"checked_sub" yaml:"checked_sub"`
	CheckedMul int `json:"checked_mul" yaml:"checked_mul"`
	CheckedDiv int `json:"checked_div" yaml:"checked_div"`
	CheckedRem int `json:"checked_rem" yaml:"checked_rem"`
	CheckedPow int `json:"checked_pow" yaml:"checked_pow"`

	SaturatingAdd int `json:"saturating_add" yaml:"saturating_add"`
	SaturatingSub int `json:"saturating_sub" yaml:"saturating_sub"`
	SaturatingMul int `json:"saturating_mul" yaml:"saturating_mul"`
	SaturatingPow int `json:"saturating_pow" yaml:"saturating_pow"`

	WrappingAdd int `json:"wrapping_add" yaml:"wrapping_add"`
	WrappingSub int `json:"wrapping_sub" yaml:"wrapping_sub"`
	WrappingMul int `json:"wrapping_mul" yaml:"wrapping_mul"`

	RawAdd int `json:"raw_add" yaml:"raw_add"`
	RawSub int `json:"raw_sub" yaml:"raw_sub"`
	RawMul int `json:"raw_mul" yaml:"raw_mul"`
	RawDiv int `json:"raw_div" yaml:"raw_div"`
	RawRem int `json:"raw_rem" yaml:"raw_rem"`

	CeilDiv     int `json:"ceil_div"     yaml:"ceil_div"`
	IntegerSqrt int `json:"integer_sqrt" yaml:"integer_sqrt"`
	BitwiseOps  int `json:"bitwise_ops"  yaml:"bitwise_ops"`
}

// TotalOps returns the exact sum of every counter in the profile.
func (p ArithmeticProfile) TotalOps() int {
	return p.SafeOps() +
		p.WrappingAdd + p.WrappingSub + p.WrappingMul +
		p.RawAdd + p.RawSub + p.RawMul + p.RawDiv + p.RawRem +
		p.CeilDiv + p.IntegerSqrt + p.BitwiseOps
}

// SafeOps returns the number of overflow-safe operations (checked and
// saturating forms).
func (p ArithmeticProfile) SafeOps() int {
	return p.CheckedAdd + p.CheckedSub + p.CheckedMul + p.CheckedDiv +
		p.CheckedRem + p.CheckedPow +
		p.SaturatingAdd + p.SaturatingSub + p.SaturatingMul + p.SaturatingPow
}

// SafeOpsRatio returns SafeOps / TotalOps. A profile with no arithmetic is
// vacuously safe and reports 1.0.
func (p ArithmeticProfile) SafeOpsRatio() float64 {
	total := p.TotalOps()
	if total == 0 {
		return 1.0
	}

	return float64(p.SafeOps()) / float64(total)
}

// Merge adds the counters of other into p. Merging is associative and
// commutative, so file and repository totals do not depend on visit order.
func (p *ArithmeticProfile) Merge(other ArithmeticProfile) {
	p.CheckedAdd += other.CheckedAdd
	p.CheckedSub += other.CheckedSub
	p.CheckedMul += other.CheckedMul
	p.CheckedDiv += other.CheckedDiv
	p.CheckedRem += other.CheckedRem
	p.CheckedPow += other.CheckedPow
	p.SaturatingAdd += other.SaturatingAdd
	p.SaturatingSub += other.SaturatingSub
	p.SaturatingMul += other.SaturatingMul
	p.SaturatingPow += other.SaturatingPow
	p.WrappingAdd += other.WrappingAdd
	p.WrappingSub += other.WrappingSub
	p.WrappingMul += other.WrappingMul
	p.RawAdd += other.RawAdd
	p.RawSub += other.RawSub
	p.RawMul += other.RawMul
	p.RawDiv += other.RawDiv
	p.RawRem += other.RawRem
	p.CeilDiv += other.CeilDiv
	p.IntegerSqrt += other.IntegerSqrt
	p.BitwiseOps += other.BitwiseOps
}

// MathFunctionProfile counts transcendental, rounding, and min/max calls.
type MathFunctionProfile struct {
	Sqrt   int `json:"sqrt"    yaml:"sqrt"`
	Pow    int `json:"pow"     yaml:"pow"`
	Exp    int `json:"exp"     yaml:"exp"`
	Log    int `json:"log"     yaml:"log"`
	Floor  int `json:"floor"   yaml:"floor"`
	Ceil   int `json:"ceil"    yaml:"ceil"`
	Round  int `json:"round"   yaml:"round"`
	Abs    int `json:"abs"     yaml:"abs"`
	MinMax int `json:"min_max" yaml:"min_max"`
}

// TotalCalls returns the sum of all math-function counters.
func (p MathFunctionProfile) TotalCalls() int {
	return p.Sqrt + p.Pow + p.Exp + p.Log + p.Floor + p.Ceil +
		p.Round + p.Abs + p.MinMax
}

// Merge adds the counters of other into p.
func (p *MathFunctionProfile) Merge(other MathFunctionProfile) {
	p.Sqrt += other.Sqrt
	p.Pow += other.Pow
	p.Exp += other.Exp
	p.Log += other.Log
	p.Floor += other.Floor
	p.Ceil += other.Ceil
	p.Round += other.Round
	p.Abs += other.Abs
	p.MinMax += other.MinMax
}

// ControlFlowProfile captures branching structure of one function.
// CyclomaticComplexity is always at least 1 (straight-line base).
type ControlFlowProfile struct {
	CyclomaticComplexity int `json:"cyclomatic_complexity" yaml:"cyclomatic_complexity"`
	DecisionPoints       int `json:"decision_points"       yaml:"decision_points"`
	LoopCount            int `json:"loop_count"            yaml:"loop_count"`
	ConditionalCount     int `json:"conditional_count"     yaml:"conditional_count"`
	MaxLoopDepth         int `json:"max_loop_depth"        yaml:"max_loop_depth"`
	MaxConditionalDepth  int `json:"max_conditional_depth" yaml:"max_conditional_depth"`
}

// SafetyProfile counts constructs that can abort execution or bypass the
// borrow checker.
type SafetyProfile struct {
	UnsafeBlocks       int `json:"unsafe_blocks"       yaml:"unsafe_blocks"`
	RawPointerOps      int `json:"raw_pointer_ops"     yaml:"raw_pointer_ops"`
	UnwrapCalls        int `json:"unwrap_calls"        yaml:"unwrap_calls"`
	ExpectCalls        int `json:"expect_calls"        yaml:"expect_calls"`
	PanicCalls         int `json:"panic_calls"         yaml:"panic_calls"`
	TodoCalls          int `json:"todo_calls"          yaml:"todo_calls"`
	UnimplementedCalls int `json:"unimplemented_calls" yaml:"unimplemented_calls"`
}

// AbortCalls returns the number of calls that unwrap a possibly-absent
// value (unwrap/expect).
func (p SafetyProfile) AbortCalls() int {
	return p.UnwrapCalls + p.ExpectCalls
}

// PanicCallsTotal returns the number of explicit panic-style calls.
func (p SafetyProfile) PanicCallsTotal() int {
	return p.PanicCalls + p.TodoCalls + p.UnimplementedCalls
}

// UnsafeOperations returns the combined count of all unsafe-leaning
// constructs tracked by the profile.
func (p SafetyProfile) UnsafeOperations() int {
	return p.UnsafeBlocks + p.RawPointerOps + p.AbortCalls() + p.PanicCallsTotal()
}

// Merge adds the counters of other into p.
func (p *SafetyProfile) Merge(other SafetyProfile) {
	p.UnsafeBlocks += other.UnsafeBlocks
	p.RawPointerOps += other.RawPointerOps
	p.UnwrapCalls += other.UnwrapCalls
	p.ExpectCalls += other.ExpectCalls
	p.PanicCalls += other.PanicCalls
	p.TodoCalls += other.TodoCalls
	p.UnimplementedCalls += other.UnimplementedCalls
}

// VisibilityProfile counts function definitions by visibility.
type VisibilityProfile struct {
	Public  int `json:"public"  yaml:"public"`
	Private int `json:"private" yaml:"private"`
}

// Total returns the number of counted functions.
func (p VisibilityProfile) Total() int {
	return p.Public + p.Private
}

// Merge adds the counters of other into p.
func (p *VisibilityProfile) Merge(other VisibilityProfile) {
	p.Public += other.Public
	p.Private += other.Private
}

// LineProfile counts source lines by kind.
type LineProfile struct {
	Code    int `json:"code"    yaml:"code"`
	Comment int `json:"comment" yaml:"comment"`
	Blank   int `json:"blank"   yaml:"blank"`
}

// Total returns the total number of lines.
func (p LineProfile) Total() int {
	return p.Code + p.Comment + p.Blank
}

// Merge adds the counters of other into p.
func (p *LineProfile) Merge(other LineProfile) {
	p.Code += other.Code
	p.Comment += other.Comment
	p.Blank += other.Blank
}
