package immutable

import "fmt"

// Kind identifies which of the seven value variants a [Value] holds.
type Kind int

const (
	// KindNull is the singleton null value.
	KindNull Kind = iota
	// KindBool is a boolean value.
	KindBool
	// KindNum is a 64-bit IEEE-754 double. The variant carries no
	// integer/decimal distinction; predicates such as isInteger derive
	// from whether ceil == floor.
	KindNum
	// KindStr is an immutable UTF-8 string.
	KindStr
	// KindArr is an ordered sequence of lazy cells.
	KindArr
	// KindObj is an ordered mapping from string keys to members.
	KindObj
	// KindFunc is a callable closure with an introspectable parameter list.
	KindFunc
)

// String returns the pretty name used in error messages and in typeOf,
// per spec.md §3.1.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNum:
		return "number"
	case KindStr:
		return "string"
	case KindArr:
		return "array"
	case KindObj:
		return "object"
	case KindFunc:
		return "function"
	default:
		return "unknown"
	}
}

// Value is the tagged union over the script language's six observable
// kinds plus the callable function kind.
//
// A zero Value is the null value. Value is intentionally small (an
// interface-sized word plus a tag) and is passed by value throughout this
// module.
type Value struct {
	kind Kind
	val  any // nil, bool, float64, string, Array, Object, or Func
}

// Null is the singleton null value.
var Null = Value{kind: KindNull}

// NewBool wraps a boolean.
func NewBool(b bool) Value { return Value{kind: KindBool, val: b} }

// NewNum wraps a float64.
func NewNum(n float64) Value { return Value{kind: KindNum, val: n} }

// NewStr wraps a string.
func NewStr(s string) Value { return Value{kind: KindStr, val: s} }

// NewArr wraps an [Array].
func NewArr(a Array) Value { return Value{kind: KindArr, val: a} }

// NewObj wraps an [Object].
func NewObj(o Object) Value { return Value{kind: KindObj, val: o} }

// NewFunc wraps a [Func].
func NewFunc(f Func) Value { return Value{kind: KindFunc, val: f} }

// Kind returns the value's variant.
func (v Value) Kind() Kind { return v.kind }

// PrettyName returns the lowercase textual tag used in error text and by
// typeOf, per spec.md's glossary.
func (v Value) PrettyName() string { return v.kind.String() }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload and whether v is a KindBool value.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.val.(bool), true
}

// Num returns the numeric payload and whether v is a KindNum value.
func (v Value) Num() (float64, bool) {
	if v.kind != KindNum {
		return 0, false
	}
	return v.val.(float64), true
}

// Str returns the string payload and whether v is a KindStr value.
func (v Value) Str() (string, bool) {
	if v.kind != KindStr {
		return "", false
	}
	return v.val.(string), true
}

// Arr returns the array payload and whether v is a KindArr value.
func (v Value) Arr() (Array, bool) {
	if v.kind != KindArr {
		return Array{}, false
	}
	return v.val.(Array), true
}

// Obj returns the object payload and whether v is a KindObj value.
func (v Value) Obj() (Object, bool) {
	if v.kind != KindObj {
		return Object{}, false
	}
	return v.val.(Object), true
}

// Func returns the function payload and whether v is a KindFunc value.
func (v Value) Func() (Func, bool) {
	if v.kind != KindFunc {
		return Func{}, false
	}
	return v.val.(Func), true
}

// GoString renders a debug representation; useful in test failure output
// and %#v formatting. It is not the script-visible string conversion (see
// package eval's toString/joinBy coercions for that).
func (v Value) GoString() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		b, _ := v.Bool()
		return fmt.Sprintf("%t", b)
	case KindNum:
		n, _ := v.Num()
		return fmt.Sprintf("%v", n)
	case KindStr:
		s, _ := v.Str()
		return fmt.Sprintf("%q", s)
	case KindArr:
		a, _ := v.Arr()
		return fmt.Sprintf("array[%d]", a.Len())
	case KindObj:
		o, _ := v.Obj()
		return fmt.Sprintf("object[%d]", o.Len())
	case KindFunc:
		f, _ := v.Func()
		return fmt.Sprintf("function/%d", len(f.Params))
	default:
		return "<invalid>"
	}
}
