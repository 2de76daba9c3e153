package funcs

import "github.com/solstat/solstat/pkg/metrics"

// classifyMethodCall matches a method name against the fixed arithmetic,
// math, and abort-risk vocabularies and increments the matching counter.
// Unrecognized names are ignored.
func classifyMethodCall(record *metrics.FunctionRecord, name string) {
	arith := &record.Arithmetic
	math := &record.Math

	switch name {
	case "checked_add":
		arith.CheckedAdd++
	case "checked_sub":
		arith.CheckedSub++
	case "checked_mul":
		arith.CheckedMul++
	case "checked_div":
		arith.CheckedDiv++
	case "checked_rem":
		arith.CheckedRem++
	case "checked_pow":
		arith.CheckedPow++
	case "saturating_add":
		arith.SaturatingAdd++
	case "saturating_sub":
		arith.SaturatingSub++
	case "saturating_mul":
		arith.SaturatingMul++
	case "saturating_pow":
		arith.SaturatingPow++
	case "wrapping_add":
		arith.WrappingAdd++
	case "wrapping_sub":
		arith.WrappingSub++
	case "wrapping_mul":
		arith.WrappingMul++
	case "ceil_div", "checked_ceil_div", "div_ceil":
		arith.CeilDiv++
	case "isqrt", "integer_sqrt":
		arith.IntegerSqrt++
	case "sqrt":
		math.Sqrt++
	case "pow", "powf", "powi":
		math.Pow++
	case "exp", "exp2":
		math.Exp++
	case "ln", "log", "log2", "log10":
		math.Log++
	case "floor":
		math.Floor++
	case "ceil":
		math.Ceil++
	case "round":
		math.Round++
	case "abs":
		math.Abs++
	case "min", "max":
		math.MinMax++
	case "unwrap":
		record.Safety.UnwrapCalls++
	case "expect":
		record.Safety.ExpectCalls++
	}
}

// classifyBareCall matches a bare callee identifier against panic-style
// names.
func classifyBareCall(safety *metrics.SafetyProfile, name string) {
	switch name {
	case "panic":
		safety.PanicCalls++
	case "todo":
		safety.TodoCalls++
	case "unimplemented", "unreachable":
		safety.UnimplementedCalls++
	}
}

// classifyMacro matches a macro name against panic-style names. Macros are
// the usual spelling of these aborts in contract code.
func classifyMacro(record *metrics.FunctionRecord, name string) {
	classifyBareCall(&record.Safety, name)
}

// classifyOperator maps a raw binary or compound-assignment operator to
// the matching arithmetic counter. Comparison and logical operators carry
// no arithmetic risk and are ignored.
func classifyOperator(arith *metrics.ArithmeticProfile, operator string) {
	switch operator {
	case "+", "+=":
		arith.RawAdd++
	case "-", "-=":
		arith.RawSub++
	case "*", "*=":
		arith.RawMul++
	case "/", "/=":
		arith.RawDiv++
	case "%", "%=":
		arith.RawRem++
	case "<<", ">>", "&", "|", "^", "<<=", ">>=", "&=", "|=", "^=":
		arith.BitwiseOps++
	}
}
