package value

import (
	"fmt"
	"math"
	"strings"

	"github.com/simon-lentz/weft/immutable"
)

// Orderable reports whether k participates in the canonical ordering used
// by order, sort, min, and max. Only numbers, strings, and booleans are
// orderable; null, arrays, objects, and functions are not.
func Orderable(k immutable.Kind) bool {
	switch k {
	case immutable.KindNum, immutable.KindStr, immutable.KindBool:
		return true
	default:
		return false
	}
}

type floatClass int

const (
	// Ordered low-to-high to keep Float64Compare deterministic for special values.
	floatClassNegInf floatClass = iota
	floatClassFinite
	floatClassPosInf
	floatClassNaN // sorts after all other float classes
)

func classifyFloat64(v float64) floatClass {
	switch {
	case math.IsNaN(v):
		return floatClassNaN
	case math.IsInf(v, -1):
		return floatClassNegInf
	case math.IsInf(v, 1):
		return floatClassPosInf
	default:
		return floatClassFinite
	}
}

// Float64Compare compares two float64 values and returns 1 if left > right,
// 0 if equal, and -1 if left < right. Special values are ordered as
// -Inf < finite < +Inf < NaN (NaN equals NaN) to keep comparisons
// antisymmetric and total.
func Float64Compare(left, right float64) int {
	leftClass := classifyFloat64(left)
	rightClass := classifyFloat64(right)

	if leftClass != floatClassFinite || rightClass != floatClassFinite {
		if leftClass == rightClass {
			return 0
		}
		if leftClass < rightClass {
			return -1
		}
		return 1
	}

	if left == right {
		return 0
	}
	if left > right {
		return 1
	}
	return -1
}

// ValueOrder returns -1, 0, or 1 according to the canonical order of left
// and right. Both values must carry the same orderable kind (boolean,
// number, or string); anything else — an unorderable kind, or a mismatch
// between two orderable kinds — is an error.
func ValueOrder(left, right immutable.Value) (int, error) {
	if !Orderable(left.Kind()) {
		return 0, fmt.Errorf("value: type %s is not orderable", left.Kind())
	}
	if !Orderable(right.Kind()) {
		return 0, fmt.Errorf("value: type %s is not orderable", right.Kind())
	}
	if left.Kind() != right.Kind() {
		return 0, fmt.Errorf("value: cannot order %s against %s", left.Kind(), right.Kind())
	}

	switch left.Kind() {
	case immutable.KindBool:
		lb, _ := left.Bool()
		rb, _ := right.Bool()
		switch {
		case lb == rb:
			return 0, nil
		case !lb:
			return -1, nil
		default:
			return 1, nil
		}
	case immutable.KindNum:
		lf, _ := left.Num()
		rf, _ := right.Num()
		return Float64Compare(lf, rf), nil
	case immutable.KindStr:
		ls, _ := left.Str()
		rs, _ := right.Str()
		return strings.Compare(ls, rs), nil
	}
	return 0, fmt.Errorf("value: unreachable kind %s", left.Kind())
}

// Less reports whether left is strictly less than right according to
// ValueOrder. Convenience wrapper for sort.Slice-style callers; the
// caller must still handle the error for unorderable inputs.
func Less(left, right immutable.Value) (bool, error) {
	cmp, err := ValueOrder(left, right)
	if err != nil {
		return false, err
	}
	return cmp < 0, nil
}

// IsFinite reports whether f is a finite number (not NaN, +Inf, or -Inf).
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsWholeNumber reports whether f is a finite float64 representing a
// whole number within int64 range. Used by the numbers namespace for
// radix conversions and other integer-only operations over the single
// float64 numeric representation.
func IsWholeNumber(f float64) bool {
	if !IsFinite(f) {
		return false
	}
	if math.Trunc(f) != f {
		return false
	}
	const maxInt64AsFloat = float64(1 << 63)
	const minInt64AsFloat = -float64(1 << 63)
	return f >= minInt64AsFloat && f < maxInt64AsFloat
}

// GetInt64FromFloat extracts an int64 from a float64 that represents a
// whole number. Returns (value, true) if f is a finite whole number
// within int64 range, (0, false) otherwise.
func GetInt64FromFloat(f float64) (int64, bool) {
	if !IsWholeNumber(f) {
		return 0, false
	}
	return int64(f), true
}
