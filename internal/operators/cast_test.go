package operators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/luz/internal/token"
	"github.com/aledsdavies/luz/internal/value"
)

// TestScalarCasts tests the scalar conversion table, including the
// `typeof (x as T) == T` property from spec §8.
func TestScalarCasts(t *testing.T) {
	tests := []struct {
		name   string
		v      value.Value
		target value.Kind
		want   string
	}{
		{"num_to_str", num(3.5), value.KindStr, "3.5"},
		{"str_to_num", str("42"), value.KindNum, "42"},
		{"str_to_num_garbage", str("nope"), value.KindNum, "null"},
		{"num_to_xl", num(9), value.KindXL, "9"},
		{"str_to_xl", str("123"), value.KindXL, "123"},
		{"bool_to_num", value.Bool(true), value.KindNum, "1"},
		{"num_to_bool", num(0), value.KindBool, "true"}, // 0 is truthy
		{"null_to_bool", value.Null(), value.KindBool, "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cast(tt.v, tt.target, token.Pos{})
			require.Nil(t, err)
			assert.Equal(t, tt.want, value.FormatPlain(got))
			if got.Kind != value.KindNull {
				assert.Equal(t, tt.target, got.Kind, "typeof (x as T) must be T")
			}
		})
	}
}

// TestRangeCasts tests materialisation to aggregates, the space-joined
// string form, and the ran/xran endpoint adjustment.
func TestRangeCasts(t *testing.T) {
	r := value.NewRan(0, 3)

	asVec, err := Cast(r, value.KindVec, token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "![0 1 2]", value.FormatPlain(asVec))

	asArr, err := Cast(r, value.KindArr, token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "[0 1 2]", value.FormatPlain(asArr))

	asStr, err := Cast(r, value.KindStr, token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "0 1 2", asStr.Str)

	asX, err := Cast(r, value.KindXRan, token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "0..=2", value.FormatPlain(asX))

	backToRan, err := Cast(asX, value.KindRan, token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "0..3", value.FormatPlain(backToRan))

	_, operr := Cast(num(1), value.KindRan, token.Pos{})
	require.NotNil(t, operr)
}

// TestAggregateCasts tests container-to-container and string-to-container
// conversion.
func TestAggregateCasts(t *testing.T) {
	v := vec(num(1), num(1), num(2))

	asSet, err := Cast(v, value.KindSet, token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "@{1 2}", value.FormatPlain(asSet))

	asArr, err := Cast(v, value.KindArr, token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "[1 1 2]", value.FormatPlain(asArr))

	chars, err := Cast(str("ab"), value.KindVec, token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "![a b]", value.FormatPlain(chars))

	scalar, err := Cast(num(7), value.KindVec, token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "![7]", value.FormatPlain(scalar))
}

// TestCastToMaybe tests the random-draw cast with a deterministic picker.
func TestCastToMaybe(t *testing.T) {
	pickFirst := func(n int) int { return 0 }
	pickLast := func(n int) int { return n - 1 }

	got, err := CastToMaybe(value.NewRan(5, 8), token.Pos{}, pickFirst)
	require.Nil(t, err)
	assert.True(t, value.Equal(got, num(5)))

	got, err = CastToMaybe(value.NewRan(5, 8), token.Pos{}, pickLast)
	require.Nil(t, err)
	assert.True(t, value.Equal(got, num(7)))

	got, err = CastToMaybe(vec(num(1), num(2)), token.Pos{}, pickLast)
	require.Nil(t, err)
	assert.True(t, value.Equal(got, num(2)))

	got, err = CastToMaybe(str("abc"), token.Pos{}, pickFirst)
	require.Nil(t, err)
	assert.Equal(t, "a", got.Str)

	// Scalars draw a random boolean.
	got, err = CastToMaybe(num(5), token.Pos{}, func(n int) int { return 1 })
	require.Nil(t, err)
	assert.True(t, got.Bool)

	// Empty sources yield null.
	got, err = CastToMaybe(vec(), token.Pos{}, pickFirst)
	require.Nil(t, err)
	assert.Equal(t, value.KindNull, got.Kind)
}
