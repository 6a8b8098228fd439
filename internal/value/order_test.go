package value_test

import (
	"math"
	"testing"

	"github.com/simon-lentz/weft/immutable"
	"github.com/simon-lentz/weft/internal/value"
)

func TestOrderableKinds(t *testing.T) {
	tests := []struct {
		k    immutable.Kind
		want bool
	}{
		{immutable.KindNum, true},
		{immutable.KindStr, true},
		{immutable.KindBool, true},
		{immutable.KindNull, false},
		{immutable.KindArr, false},
		{immutable.KindObj, false},
		{immutable.KindFunc, false},
	}
	for _, tt := range tests {
		if got := value.Orderable(tt.k); got != tt.want {
			t.Errorf("Orderable(%v) = %v, want %v", tt.k, got, tt.want)
		}
	}
}

func TestValueOrderNumbers(t *testing.T) {
	cmp, err := value.ValueOrder(immutable.NewNum(1), immutable.NewNum(2))
	if err != nil {
		t.Fatalf("ValueOrder() error = %v", err)
	}
	if cmp >= 0 {
		t.Errorf("ValueOrder(1, 2) = %d, want < 0", cmp)
	}
}

func TestValueOrderStrings(t *testing.T) {
	cmp, err := value.ValueOrder(immutable.NewStr("b"), immutable.NewStr("a"))
	if err != nil {
		t.Fatalf("ValueOrder() error = %v", err)
	}
	if cmp <= 0 {
		t.Errorf("ValueOrder(b, a) = %d, want > 0", cmp)
	}
}

func TestValueOrderBooleans(t *testing.T) {
	cmp, err := value.ValueOrder(immutable.NewBool(false), immutable.NewBool(true))
	if err != nil {
		t.Fatalf("ValueOrder() error = %v", err)
	}
	if cmp >= 0 {
		t.Errorf("ValueOrder(false, true) = %d, want < 0", cmp)
	}
}

func TestValueOrderRejectsMismatchedOrderableKinds(t *testing.T) {
	if _, err := value.ValueOrder(immutable.NewNum(1), immutable.NewStr("1")); err == nil {
		t.Error("ValueOrder(number, string) should error")
	}
}

func TestValueOrderRejectsUnorderableKind(t *testing.T) {
	arr := immutable.NewArr(immutable.NewArray(nil))
	if _, err := value.ValueOrder(arr, arr); err == nil {
		t.Error("ValueOrder(array, array) should error, arrays are not orderable")
	}
}

func TestValueOrderNaNEqualsNaN(t *testing.T) {
	nan := immutable.NewNum(math.NaN())
	cmp, err := value.ValueOrder(nan, nan)
	if err != nil {
		t.Fatalf("ValueOrder() error = %v", err)
	}
	if cmp != 0 {
		t.Errorf("ValueOrder(NaN, NaN) = %d, want 0", cmp)
	}
}

func TestFloat64CompareSpecialValueOrdering(t *testing.T) {
	neg := math.Inf(-1)
	pos := math.Inf(1)
	nan := math.NaN()
	if value.Float64Compare(neg, 0) >= 0 {
		t.Error("-Inf should compare less than a finite value")
	}
	if value.Float64Compare(pos, 0) <= 0 {
		t.Error("+Inf should compare greater than a finite value")
	}
	if value.Float64Compare(nan, pos) <= 0 {
		t.Error("NaN should sort after +Inf")
	}
}

func TestLess(t *testing.T) {
	lt, err := value.Less(immutable.NewNum(1), immutable.NewNum(2))
	if err != nil {
		t.Fatalf("Less() error = %v", err)
	}
	if !lt {
		t.Error("Less(1, 2) = false, want true")
	}
}

func TestIsWholeNumberAndGetInt64FromFloat(t *testing.T) {
	if !value.IsWholeNumber(4) {
		t.Error("IsWholeNumber(4) = false, want true")
	}
	if value.IsWholeNumber(4.5) {
		t.Error("IsWholeNumber(4.5) = true, want false")
	}
	if value.IsWholeNumber(math.NaN()) {
		t.Error("IsWholeNumber(NaN) = true, want false")
	}
	n, ok := value.GetInt64FromFloat(4)
	if !ok || n != 4 {
		t.Errorf("GetInt64FromFloat(4) = (%d, %v), want (4, true)", n, ok)
	}
	if _, ok := value.GetInt64FromFloat(4.5); ok {
		t.Error("GetInt64FromFloat(4.5) should report ok=false")
	}
}
