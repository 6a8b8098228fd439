package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/weft/eval"
	"github.com/simon-lentz/weft/immutable"
)

func callNumbers(t *testing.T, name string, args ...immutable.Value) immutable.Value {
	t.Helper()
	r := eval.NewEvaluator().Registry()
	v, err := r.Call("numbers."+name, args)
	require.NoError(t, err)
	return v
}

func TestNumbersRadixRoundTrip(t *testing.T) {
	v := callNumbers(t, "toBinary", immutable.NewNum(10))
	s, _ := v.Str()
	assert.Equal(t, "1010", s)

	v = callNumbers(t, "fromBinary", immutable.NewStr("1010"))
	n, _ := v.Num()
	assert.Equal(t, 10.0, n)

	v = callNumbers(t, "toHex", immutable.NewNum(255))
	s, _ = v.Str()
	assert.Equal(t, "ff", s)

	v = callNumbers(t, "fromHex", immutable.NewStr("ff"))
	n, _ = v.Num()
	assert.Equal(t, 255.0, n)
}

func TestNumbersFromBinaryRejectsBadDigits(t *testing.T) {
	r := eval.NewEvaluator().Registry()
	_, err := r.Call("numbers.fromBinary", []immutable.Value{immutable.NewStr("102")})
	require.Error(t, err)
}

func TestNumbersPredicates(t *testing.T) {
	v := callNumbers(t, "isOdd", immutable.NewNum(3))
	b, _ := v.Bool()
	assert.True(t, b)

	v = callNumbers(t, "isEven", immutable.NewNum(3))
	b, _ = v.Bool()
	assert.False(t, b)

	v = callNumbers(t, "isInteger", immutable.NewNum(3.0))
	b, _ = v.Bool()
	assert.True(t, b)

	v = callNumbers(t, "isDecimal", immutable.NewNum(3.5))
	b, _ = v.Bool()
	assert.True(t, b)
}

func TestNumbersToFloatToInteger(t *testing.T) {
	v := callNumbers(t, "toFloat", immutable.NewStr("3.5"))
	n, _ := v.Num()
	assert.Equal(t, 3.5, n)

	v = callNumbers(t, "toInteger", immutable.NewStr("3.9"))
	n, _ = v.Num()
	assert.Equal(t, 3.0, n)
}
