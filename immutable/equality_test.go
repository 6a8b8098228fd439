package immutable

import "testing"

func mustEqual(t *testing.T, a, b Value, want bool) {
	t.Helper()
	got, err := Equal(a, b)
	if err != nil {
		t.Fatalf("Equal() error = %v", err)
	}
	if got != want {
		t.Errorf("Equal(%#v, %#v) = %v, want %v", a, b, got, want)
	}
}

func TestEqualityCrossVariantStrict(t *testing.T) {
	// spec.md §4.1: a number never equals a string.
	mustEqual(t, NewNum(5), NewStr("5"), false)
	mustEqual(t, NewBool(true), NewNum(1), false)
	mustEqual(t, Null, NewBool(false), false)
}

func TestEqualityPrimitives(t *testing.T) {
	mustEqual(t, NewNum(1.5), NewNum(1.5), true)
	mustEqual(t, NewStr("a"), NewStr("a"), true)
	mustEqual(t, NewStr("a"), NewStr("b"), false)
	mustEqual(t, Null, Null, true)
}

func TestEqualityNaN(t *testing.T) {
	nan := NewNum(nan())
	mustEqual(t, nan, nan, true)
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestEqualityArraysElementwise(t *testing.T) {
	a := NewArr(NewArray([]Value{NewNum(1), NewStr("x")}))
	b := NewArr(NewArray([]Value{NewNum(1), NewStr("x")}))
	c := NewArr(NewArray([]Value{NewNum(1), NewStr("y")}))
	mustEqual(t, a, b, true)
	mustEqual(t, a, c, false)
}

func TestEqualityObjectsByVisibleKeySet(t *testing.T) {
	ob1 := NewObjectBuilder()
	ob1.SetValue("a", NewNum(1))
	ob1.Set("hidden", NewMember(VisHidden, NewStr("ignored")))
	o1 := NewObj(ob1.Build())

	ob2 := NewObjectBuilder()
	ob2.SetValue("a", NewNum(1))
	o2 := NewObj(ob2.Build())

	// Differ only in a hidden member: still equal, since equality is over
	// visible keys.
	mustEqual(t, o1, o2, true)

	ob3 := NewObjectBuilder()
	ob3.SetValue("a", NewNum(2))
	o3 := NewObj(ob3.Build())
	mustEqual(t, o1, o3, false)
}

func TestEqualityObjectKeyOrderIrrelevant(t *testing.T) {
	ob1 := NewObjectBuilder()
	ob1.SetValue("a", NewNum(1))
	ob1.SetValue("b", NewNum(2))
	o1 := NewObj(ob1.Build())

	ob2 := NewObjectBuilder()
	ob2.SetValue("b", NewNum(2))
	ob2.SetValue("a", NewNum(1))
	o2 := NewObj(ob2.Build())

	mustEqual(t, o1, o2, true)
}
