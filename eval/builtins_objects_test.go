package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/weft/eval"
	"github.com/simon-lentz/weft/immutable"
)

// objOf builds an Object preserving the given key order.
func objOf(keys []string, vals []immutable.Value) immutable.Value {
	b := immutable.NewObjectBuilder()
	for i, k := range keys {
		b.SetValue(k, vals[i])
	}
	return immutable.NewObj(b.Build())
}

func callObjects(t *testing.T, name string, args ...immutable.Value) immutable.Value {
	t.Helper()
	r := eval.NewEvaluator().Registry()
	v, err := r.Call("objects."+name, args)
	require.NoError(t, err)
	return v
}

func TestObjectsKeysValuesEntries(t *testing.T) {
	o := objOf([]string{"a", "b"}, []immutable.Value{immutable.NewNum(1), immutable.NewNum(2)})

	v := callObjects(t, "keysOf", o)
	a, _ := v.Arr()
	assert.Equal(t, 2, a.Len())

	v = callObjects(t, "valuesOf", o)
	a, _ = v.Arr()
	assert.Equal(t, 2, a.Len())

	v = callObjects(t, "entriesOf", o)
	a, _ = v.Arr()
	require.Equal(t, 2, a.Len())
	first, _ := a.Get(0)
	fo, _ := first.Obj()
	keyVal, _, _ := fo.GetVisible("key")
	keyStr, _ := keyVal.Str()
	assert.Contains(t, []string{"a", "b"}, keyStr)
}

func TestObjectsMergeLaterWins(t *testing.T) {
	a := objOf([]string{"x"}, []immutable.Value{immutable.NewNum(1)})
	b := objOf([]string{"x", "y"}, []immutable.Value{immutable.NewNum(2), immutable.NewNum(3)})

	v := callObjects(t, "merge", a, b)
	o, _ := v.Obj()
	x, _, _ := o.GetVisible("x")
	xn, _ := x.Num()
	assert.Equal(t, 2.0, xn)
}

func TestObjectsPickOmit(t *testing.T) {
	o := objOf([]string{"a", "b", "c"}, []immutable.Value{immutable.NewNum(1), immutable.NewNum(2), immutable.NewNum(3)})
	keep := immutable.NewArr(immutable.NewArray([]immutable.Value{immutable.NewStr("a"), immutable.NewStr("c")}))

	v := callObjects(t, "pick", o, keep)
	picked, _ := v.Obj()
	assert.Equal(t, []string{"a", "c"}, picked.VisibleKeys())

	v = callObjects(t, "omit", o, keep)
	omitted, _ := v.Obj()
	assert.Equal(t, []string{"b"}, omitted.VisibleKeys())
}

func TestObjectsFromEntriesRoundTrip(t *testing.T) {
	o := objOf([]string{"a"}, []immutable.Value{immutable.NewNum(1)})
	entries := callObjects(t, "entriesOf", o)
	v := callObjects(t, "fromEntries", entries)
	roundTripped, _ := v.Obj()
	a, _, _ := roundTripped.GetVisible("a")
	n, _ := a.Num()
	assert.Equal(t, 1.0, n)
}
