package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/weft/eval"
	"github.com/simon-lentz/weft/immutable"
)

func callRegex(t *testing.T, name string, args ...immutable.Value) immutable.Value {
	t.Helper()
	r := eval.NewEvaluator().Registry()
	v, err := r.Call("regex."+name, args)
	require.NoError(t, err)
	return v
}

func TestRegexMatches(t *testing.T) {
	v := callRegex(t, "matches", immutable.NewStr("hello123"), immutable.NewStr(`^[a-z]+\d+$`))
	b, _ := v.Bool()
	assert.True(t, b)

	v = callRegex(t, "matches", immutable.NewStr("HELLO"), immutable.NewStr(`^[a-z]+$`))
	b, _ = v.Bool()
	assert.False(t, b)
}

func TestRegexFindAndFindAll(t *testing.T) {
	v := callRegex(t, "find", immutable.NewStr("a1 b2 c3"), immutable.NewStr(`\d+`))
	s, _ := v.Str()
	assert.Equal(t, "1", s)

	v = callRegex(t, "findAll", immutable.NewStr("a1 b2 c3"), immutable.NewStr(`\d+`))
	arr, _ := v.Arr()
	assert.Equal(t, 3, arr.Len())
}

func TestRegexFindNoMatchReturnsNull(t *testing.T) {
	v := callRegex(t, "find", immutable.NewStr("abc"), immutable.NewStr(`\d+`))
	assert.True(t, v.IsNull())
}

func TestRegexReplaceAndSplit(t *testing.T) {
	v := callRegex(t, "replace", immutable.NewStr("a1 b2"), immutable.NewStr(`\d`), immutable.NewStr("#"))
	s, _ := v.Str()
	assert.Equal(t, "a# b#", s)

	v = callRegex(t, "split", immutable.NewStr("a,b;;c"), immutable.NewStr(`[,;]+`))
	arr, _ := v.Arr()
	vals, _ := arr.Values()
	require.Len(t, vals, 3)
}

func TestRegexGroups(t *testing.T) {
	v := callRegex(t, "groups", immutable.NewStr("2020-12-31"), immutable.NewStr(`(\d+)-(\d+)-(\d+)`))
	arr, _ := v.Arr()
	require.Equal(t, 4, arr.Len())
	year, _ := arr.Get(1)
	s, _ := year.Str()
	assert.Equal(t, "2020", s)
}
