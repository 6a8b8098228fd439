package immutable

import (
	"reflect"
	"testing"
)

func TestObjectVisibleKeysPreservesInsertionOrder(t *testing.T) {
	b := NewObjectBuilder()
	b.SetValue("z", NewNum(1))
	b.SetValue("a", NewNum(2))
	b.Set("hidden", NewMember(VisHidden, NewNum(3)))
	b.SetValue("m", NewNum(4))
	o := b.Build()

	got := o.VisibleKeys()
	want := []string{"z", "a", "m"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("VisibleKeys() = %v, want %v", got, want)
	}
	if o.Len() != 4 {
		t.Errorf("Len() = %d, want 4 (includes hidden)", o.Len())
	}
}

func TestObjectBuilderOverwritePreservesPosition(t *testing.T) {
	b := NewObjectBuilder()
	b.SetValue("a", NewNum(1))
	b.SetValue("b", NewNum(2))
	b.SetValue("a", NewNum(99)) // overwrite, should keep position 0
	o := b.Build()

	got := o.VisibleKeys()
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("VisibleKeys() = %v, want %v", got, want)
	}
	v, ok, err := o.GetVisible("a")
	if err != nil || !ok {
		t.Fatalf("GetVisible(a) ok=%v err=%v", ok, err)
	}
	n, _ := v.Num()
	if n != 99 {
		t.Errorf("a = %v, want 99 (last write wins)", n)
	}
}

func TestObjectGetVisibleHidesHiddenMember(t *testing.T) {
	b := NewObjectBuilder()
	b.Set("secret", NewMember(VisHidden, NewStr("shh")))
	o := b.Build()

	if _, ok, _ := o.GetVisible("secret"); ok {
		t.Error("GetVisible should not surface a hidden member")
	}
	if _, ok, _ := o.Get("secret"); !ok {
		t.Error("Get should still surface a hidden member by explicit key")
	}
}

func TestObjectUnconditionalIsVisible(t *testing.T) {
	b := NewObjectBuilder()
	b.Set("always", NewMember(VisUnconditional, NewBool(true)))
	o := b.Build()
	keys := o.VisibleKeys()
	if len(keys) != 1 || keys[0] != "always" {
		t.Errorf("VisibleKeys() = %v, want [always]", keys)
	}
}

func TestObjectMissingKey(t *testing.T) {
	o := NewObjectBuilder().Build()
	if _, ok, _ := o.Get("nope"); ok {
		t.Error("Get on missing key should report ok=false")
	}
}
