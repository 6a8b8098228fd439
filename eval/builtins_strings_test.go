package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/weft/eval"
	"github.com/simon-lentz/weft/immutable"
)

func callStrings(t *testing.T, name string, args ...immutable.Value) immutable.Value {
	t.Helper()
	r := eval.NewEvaluator().Registry()
	v, err := r.Call("strings."+name, args)
	require.NoError(t, err)
	return v
}

func TestStringsUpperLower(t *testing.T) {
	v := callStrings(t, "upper", immutable.NewStr("Straße"))
	s, _ := v.Str()
	assert.Equal(t, "STRASSE", s)

	v = callStrings(t, "lower", immutable.NewStr("HELLO"))
	s, _ = v.Str()
	assert.Equal(t, "hello", s)
}

func TestStringsStartsEndsWithCaseInsensitive(t *testing.T) {
	v := callStrings(t, "startswith", immutable.NewStr("Hello World"), immutable.NewStr("hello"))
	b, _ := v.Bool()
	assert.True(t, b)

	v = callStrings(t, "endswith", immutable.NewStr("Hello World"), immutable.NewStr("WORLD"))
	b, _ = v.Bool()
	assert.True(t, b)
}

func TestStringsSubstringAfterUnmatchedReturnsWholeInput(t *testing.T) {
	v := callStrings(t, "substringafter", immutable.NewStr("hello"), immutable.NewStr(","))
	s, _ := v.Str()
	assert.Equal(t, "hello", s)
}

func TestSubstringAfterEmptySeparator(t *testing.T) {
	v := callStrings(t, "substringafter", immutable.NewStr("hello"), immutable.NewStr(""))
	s, _ := v.Str()
	assert.Equal(t, "ello", s)

	v = callStrings(t, "substringafter", immutable.NewStr(""), immutable.NewStr(""))
	s, _ = v.Str()
	assert.Equal(t, "", s)
}

func TestStringsCamelizeDasherizeUnderscore(t *testing.T) {
	v := callStrings(t, "camelize", immutable.NewStr("customer_first_name"))
	s, _ := v.Str()
	assert.Equal(t, "customerFirstName", s)

	v = callStrings(t, "dasherize", immutable.NewStr("customerFirstName"))
	s, _ = v.Str()
	assert.Equal(t, "customer-first-name", s)

	v = callStrings(t, "underscore", immutable.NewStr("customer-first-name"))
	s, _ = v.Str()
	assert.Equal(t, "customer_first_name", s)
}

func TestStringsLeftPadRightPad(t *testing.T) {
	v := callStrings(t, "leftpad", immutable.NewStr("7"), immutable.NewNum(3))
	s, _ := v.Str()
	assert.Equal(t, "  7", s)

	v = callStrings(t, "rightpad", immutable.NewStr("7"), immutable.NewNum(3))
	s, _ = v.Str()
	assert.Equal(t, "7  ", s)
}

func TestStringsSplitAndJoinBy(t *testing.T) {
	v := callStrings(t, "split", immutable.NewStr("a,b,c"), immutable.NewStr(","))
	arr, ok := v.Arr()
	require.True(t, ok)
	assert.Equal(t, 3, arr.Len())
}
