package immutable

import "testing"

func TestValueKinds(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"null", Null, KindNull},
		{"bool", NewBool(true), KindBool},
		{"num", NewNum(3.5), KindNum},
		{"str", NewStr("hi"), KindStr},
		{"arr", NewArr(NewArray(nil)), KindArr},
		{"obj", NewObj(Object{}), KindObj},
		{"func", NewFunc(Func{}), KindFunc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestPrettyName(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Null, "null"},
		{NewBool(false), "boolean"},
		{NewNum(1), "number"},
		{NewStr(""), "string"},
		{NewArr(Array{}), "array"},
		{NewObj(Object{}), "object"},
		{NewFunc(Func{}), "function"},
	}
	for _, tt := range tests {
		if got := tt.v.PrettyName(); got != tt.want {
			t.Errorf("PrettyName() = %q, want %q", got, tt.want)
		}
	}
}

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	if !v.IsNull() {
		t.Error("zero Value should be null")
	}
	if v.PrettyName() != "null" {
		t.Errorf("zero Value PrettyName() = %q, want null", v.PrettyName())
	}
}

func TestAccessorsRejectWrongKind(t *testing.T) {
	s := NewStr("x")
	if _, ok := s.Num(); ok {
		t.Error("Num() on a string should report ok=false")
	}
	if _, ok := s.Bool(); ok {
		t.Error("Bool() on a string should report ok=false")
	}
	if _, ok := s.Arr(); ok {
		t.Error("Arr() on a string should report ok=false")
	}
}
