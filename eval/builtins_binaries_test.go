package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/weft/eval"
	"github.com/simon-lentz/weft/immutable"
)

func callBinaries(t *testing.T, name string, args ...immutable.Value) immutable.Value {
	t.Helper()
	r := eval.NewEvaluator().Registry()
	v, err := r.Call("binaries."+name, args)
	require.NoError(t, err)
	return v
}

func TestBinariesBase64RoundTrip(t *testing.T) {
	v := callBinaries(t, "toBase64", immutable.NewStr("hello"))
	s, _ := v.Str()
	assert.Equal(t, "aGVsbG8=", s)

	v = callBinaries(t, "fromBase64", immutable.NewStr("aGVsbG8="))
	s, _ = v.Str()
	assert.Equal(t, "hello", s)
}

func TestBinariesHexRoundTrip(t *testing.T) {
	v := callBinaries(t, "toHex", immutable.NewStr("ab"))
	s, _ := v.Str()
	assert.Equal(t, "6162", s)

	v = callBinaries(t, "fromHex", immutable.NewStr("6162"))
	s, _ = v.Str()
	assert.Equal(t, "ab", s)
}

func TestBinariesFromBase64Invalid(t *testing.T) {
	r := eval.NewEvaluator().Registry()
	_, err := r.Call("binaries.fromBase64", []immutable.Value{immutable.NewStr("not base64!!")})
	require.Error(t, err)
}

func TestBinariesSize(t *testing.T) {
	v := callBinaries(t, "size", immutable.NewStr("hello"))
	n, _ := v.Num()
	assert.Equal(t, 5.0, n)
}
