package metrics //nolint:testpackage // testing internal implementation.

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArithmeticProfile_TotalOpsIsExactSum(t *testing.T) {
	t.Parallel()

	profile := ArithmeticProfile{
		CheckedAdd: 2, CheckedSub: 1, CheckedMul: 3, CheckedDiv: 1,
		CheckedRem: 1, CheckedPow: 1,
		SaturatingAdd: 2, SaturatingSub: 1, SaturatingMul: 1, SaturatingPow: 1,
		WrappingAdd: 1, WrappingSub: 2, WrappingMul: 1,
		RawAdd: 4, RawSub: 2, RawMul: 1, RawDiv: 3, RawRem: 1,
		CeilDiv: 1, IntegerSqrt: 1, BitwiseOps: 5,
	}

	sum := 2 + 1 + 3 + 1 + 1 + 1 +
		2 + 1 + 1 + 1 +
		1 + 2 + 1 +
		4 + 2 + 1 + 3 + 1 +
		1 + 1 + 5

	assert.Equal(t, sum, profile.TotalOps())
}

func TestArithmeticProfile_SafeOpsRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile ArithmeticProfile
		want    float64
	}{
		{name: "empty profile is vacuously safe", profile: ArithmeticProfile{}, want: 1.0},
		{name: "all checked", profile: ArithmeticProfile{CheckedAdd: 3, CheckedMul: 2}, want: 1.0},
		{name: "all raw", profile: ArithmeticProfile{RawAdd: 2, RawDiv: 2}, want: 0.0},
		{
			name:    "two checked one raw",
			profile: ArithmeticProfile{CheckedAdd: 2, RawAdd: 1},
			want:    2.0 / 3.0,
		},
		{
			name:    "saturating counts as safe",
			profile: ArithmeticProfile{SaturatingSub: 1, WrappingAdd: 1},
			want:    0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ratio := tt.profile.SafeOpsRatio()
			assert.InDelta(t, tt.want, ratio, 1e-9)
			assert.GreaterOrEqual(t, ratio, 0.0)
			assert.LessOrEqual(t, ratio, 1.0)
		})
	}
}

func TestArithmeticProfile_MergeIsCommutative(t *testing.T) {
	t.Parallel()

	a := ArithmeticProfile{CheckedAdd: 2, RawDiv: 1, BitwiseOps: 3}
	b := ArithmeticProfile{CheckedAdd: 1, SaturatingMul: 4, RawAdd: 2}

	ab := a
	ab.Merge(b)

	ba := b
	ba.Merge(a)

	assert.Equal(t, ab, ba)
	assert.Equal(t, a.TotalOps()+b.TotalOps(), ab.TotalOps())
}

func TestMathFunctionProfile_TotalCalls(t *testing.T) {
	t.Parallel()

	profile := MathFunctionProfile{Sqrt: 1, Pow: 2, Floor: 1, MinMax: 3}
	assert.Equal(t, 7, profile.TotalCalls())

	other := MathFunctionProfile{Log: 1, Abs: 2}
	profile.Merge(other)
	assert.Equal(t, 10, profile.TotalCalls())
}

func TestSafetyProfile_Counts(t *testing.T) {
	t.Parallel()

	profile := SafetyProfile{
		UnsafeBlocks: 1,
		UnwrapCalls:  3,
		ExpectCalls:  1,
		PanicCalls:   2,
		TodoCalls:    1,
	}

	assert.Equal(t, 4, profile.AbortCalls())
	assert.Equal(t, 3, profile.PanicCallsTotal())
	assert.Equal(t, 8, profile.UnsafeOperations())
}

func TestLineProfile_Total(t *testing.T) {
	t.Parallel()

	profile := LineProfile{Code: 40, Comment: 12, Blank: 8}
	assert.Equal(t, 60, profile.Total())

	profile.Merge(LineProfile{Code: 10})
	assert.Equal(t, 70, profile.Total())
}

func TestVisibilityProfile_Merge(t *testing.T) {
	t.Parallel()

	profile := VisibilityProfile{Public: 2, Private: 1}
	profile.Merge(VisibilityProfile{Public: 1, Private: 4})

	assert.Equal(t, VisibilityProfile{Public: 3, Private: 5}, profile)
	assert.Equal(t, 8, profile.Total())
}
