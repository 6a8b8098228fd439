package eval_test

import (
	"testing"

	"github.com/simon-lentz/weft/eval"
	"github.com/simon-lentz/weft/immutable"
)

func TestRootScopeLookup(t *testing.T) {
	s := eval.NewRootScope(map[string]immutable.Value{"payload": immutable.NewNum(1)})
	v, ok := s.Lookup("payload")
	if !ok {
		t.Fatal("expected payload to be bound")
	}
	n, _ := v.Num()
	if n != 1 {
		t.Errorf("payload = %v, want 1", n)
	}
	if _, ok := s.Lookup("missing"); ok {
		t.Error("missing should be unbound")
	}
}

func TestWithVarShadowsEnclosingFrame(t *testing.T) {
	root := eval.NewRootScope(map[string]immutable.Value{"x": immutable.NewNum(1)})
	inner := root.WithVar("x", immutable.NewNum(2))

	v, _ := inner.Lookup("x")
	n, _ := v.Num()
	if n != 2 {
		t.Errorf("inner x = %v, want 2 (shadowed)", n)
	}

	v, _ = root.Lookup("x")
	n, _ = v.Num()
	if n != 1 {
		t.Errorf("root x = %v, want 1 (unaffected by shadowing)", n)
	}
}

func TestWithVarChaining(t *testing.T) {
	root := eval.NewRootScope(nil)
	s := root.WithVar("x", immutable.NewNum(1)).WithVar("y", immutable.NewNum(2))

	vx, ok := s.Lookup("x")
	if !ok {
		t.Fatal("x should be visible through the chain")
	}
	nx, _ := vx.Num()
	if nx != 1 {
		t.Errorf("x = %v, want 1", nx)
	}

	vy, _ := s.Lookup("y")
	ny, _ := vy.Num()
	if ny != 2 {
		t.Errorf("y = %v, want 2", ny)
	}
}
