package operators

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/luz/internal/luzerr"
	"github.com/aledsdavies/luz/internal/token"
	"github.com/aledsdavies/luz/internal/value"
)

func num(f float64) value.Value  { return value.Num(f) }
func xl(i int64) value.Value     { return value.XL(big.NewInt(i)) }
func str(s string) value.Value   { return value.Str(s) }
func vec(items ...value.Value) value.Value {
	return value.Value{Kind: value.KindVec, Agg: value.NewVec(items)}
}
func arr(items ...value.Value) value.Value {
	return value.Value{Kind: value.KindArr, Agg: value.NewArr(items)}
}
func set(items ...value.Value) value.Value {
	return value.Value{Kind: value.KindSet, Agg: value.NewSet(items)}
}

// TestNumericArithmetic tests the num/xl arithmetic table including the
// floor-divide and modulo pair from spec §8 scenario 1.
func TestNumericArithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   token.Kind
		l, r value.Value
		want value.Value
	}{
		{"add", token.PLUS, num(2), num(3), num(5)},
		{"sub", token.MINUS, num(2), num(3), num(-1)},
		{"mul", token.STAR, num(4), num(3), num(12)},
		{"div", token.SLASH, num(7), num(2), num(3.5)},
		{"floordiv", token.FLOORDIV, num(7), num(2), num(3)},
		{"mod", token.PERCENT, num(7), num(2), num(1)},
		{"pow", token.POW, num(2), num(10), num(1024)},
		{"xl_add", token.PLUS, xl(2), xl(3), xl(5)},
		{"xl_floordiv", token.FLOORDIV, xl(7), xl(2), xl(3)},
		{"mixed_promotes_to_num", token.PLUS, xl(2), num(0.5), num(2.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Binary(tt.op, tt.l, tt.r, token.Pos{})
			require.Nil(t, err)
			assert.True(t, value.Equal(got, tt.want), "got %s, want %s", value.FormatPlain(got), value.FormatPlain(tt.want))
		})
	}
}

// TestNaNBecomesNull tests that arithmetic producing NaN yields null.
func TestNaNBecomesNull(t *testing.T) {
	got, err := Binary(token.SLASH, num(0), num(0), token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, value.KindNull, got.Kind)
}

// TestVecAddRemove tests growable-container arithmetic: append on the
// right, prepend on the left, removal of the last occurrence.
func TestVecAddRemove(t *testing.T) {
	v := vec(num(1), num(2))

	appended, err := Binary(token.PLUS, v, num(3), token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "![1 2 3]", value.FormatPlain(appended))
	// The source vec is untouched; + builds a new container.
	assert.Equal(t, "![1 2]", value.FormatPlain(v))

	prepended, err := Binary(token.PLUS, num(0), v, token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "![0 1 2]", value.FormatPlain(prepended))

	removed, err := Binary(token.MINUS, vec(num(1), num(2), num(1)), num(1), token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "![1 2]", value.FormatPlain(removed))
}

// TestSetAddRemove tests order-updated set arithmetic.
func TestSetAddRemove(t *testing.T) {
	s := set(num(1), num(2))

	added, err := Binary(token.PLUS, s, num(3), token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "@{1 2 3}", value.FormatPlain(added))

	dup, err := Binary(token.PLUS, s, num(1), token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "@{1 2}", value.FormatPlain(dup))

	deleted, err := Binary(token.MINUS, s, num(1), token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "@{2}", value.FormatPlain(deleted))
}

// TestArrGrowthFails tests that fixed-size arrays reject + and - with an
// InvalidInstruction suggesting vec.
func TestArrGrowthFails(t *testing.T) {
	a := arr(num(1))
	for _, op := range []token.Kind{token.PLUS, token.MINUS} {
		_, err := Binary(op, a, num(2), token.Pos{})
		require.NotNil(t, err)
		assert.Equal(t, luzerr.InvalidInstructionCode, err.ToLuzErr().Code)
	}
	_, err := Binary(token.PLUS, num(2), a, token.Pos{})
	require.NotNil(t, err)
	assert.Contains(t, err.ToLuzErr().Message, "vec")
}

// TestRangeShiftArithmetic tests `r ± n` (end shifted) and `n + r`
// (start shifted).
func TestRangeShiftArithmetic(t *testing.T) {
	r := value.NewRan(0, 3)

	plus, err := Binary(token.PLUS, r, num(2), token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "0..5", value.FormatPlain(plus))

	minus, err := Binary(token.MINUS, r, num(1), token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "0..2", value.FormatPlain(minus))

	fromLeft, err := Binary(token.PLUS, num(1), r, token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, "1..3", value.FormatPlain(fromLeft))

	_, operr := Binary(token.PLUS, r, str("x"), token.Pos{})
	require.NotNil(t, operr)
}

// TestComparisons tests numeric ordering and the SemanticError for
// non-numeric operands.
func TestComparisons(t *testing.T) {
	got, err := Binary(token.LT, num(1), num(2), token.Pos{})
	require.Nil(t, err)
	assert.True(t, got.Bool)

	got, err = Binary(token.GE, xl(3), num(3), token.Pos{})
	require.Nil(t, err)
	assert.True(t, got.Bool)

	_, err = Binary(token.LT, str("a"), num(1), token.Pos{})
	require.NotNil(t, err)
	assert.Equal(t, luzerr.SemanticErrorCode, err.ToLuzErr().Code)
}

// TestBitwise tests the integer bitwise family including the unsigned
// right shift.
func TestBitwise(t *testing.T) {
	tests := []struct {
		name string
		op   token.Kind
		l, r float64
		want float64
	}{
		{"and", token.AMP, 6, 3, 2},
		{"or", token.PIPE, 6, 3, 7},
		{"xor", token.CARET, 6, 3, 5},
		{"shl", token.SHL, 1, 4, 16},
		{"shr", token.SHR, 16, 2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Binary(tt.op, num(tt.l), num(tt.r), token.Pos{})
			require.Nil(t, err)
			assert.Equal(t, tt.want, got.Num)
		})
	}

	ushr, err := Binary(token.USHR, num(-1), num(60), token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, float64(15), ushr.Num)
}

// TestHas tests membership across ranges, containers, strings and null.
func TestHas(t *testing.T) {
	tests := []struct {
		name string
		l, r value.Value
		want bool
	}{
		{"ran_in", value.NewRan(0, 3), num(2), true},
		{"ran_excludes_end", value.NewRan(0, 3), num(3), false},
		{"xran_includes_end", value.NewXRan(0, 3), num(3), true},
		{"vec", vec(num(1), num(2)), num(2), true},
		{"vec_miss", vec(num(1)), num(9), false},
		{"set", set(str("a")), str("a"), true},
		{"str_substring", str("hello"), str("ell"), true},
		{"null", value.Null(), num(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Binary(token.HAS, tt.l, tt.r, token.Pos{})
			require.Nil(t, err)
			assert.Equal(t, tt.want, got.Bool)
		})
	}
}

// TestUnaryOperators tests - ! ~ and the inc/dec delta helper.
func TestUnaryOperators(t *testing.T) {
	neg, err := Unary(token.MINUS, num(5), token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, float64(-5), neg.Num)

	not, err := Unary(token.NOT, value.Null(), token.Pos{})
	require.Nil(t, err)
	assert.True(t, not.Bool)

	compl, err := Unary(token.TILDE, num(0), token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, float64(-1), compl.Num)

	_, operr := Unary(token.MINUS, str("x"), token.Pos{})
	require.NotNil(t, operr)

	inc, err := IncDec(token.INC, num(7), token.Pos{})
	require.Nil(t, err)
	assert.Equal(t, float64(8), inc.Num)

	dec, err := IncDec(token.DEC, xl(7), token.Pos{})
	require.Nil(t, err)
	assert.True(t, value.Equal(dec, xl(6)))
}
