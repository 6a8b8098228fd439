package value_test

import (
	"testing"

	"github.com/simon-lentz/weft/internal/value"
)

func TestMinMax(t *testing.T) {
	if got := value.Min(3, 5); got != 3 {
		t.Errorf("Min(3, 5) = %d, want 3", got)
	}
	if got := value.Max(3, 5); got != 5 {
		t.Errorf("Max(3, 5) = %d, want 5", got)
	}
	if got := value.Min(-1, -5); got != -5 {
		t.Errorf("Min(-1, -5) = %d, want -5", got)
	}
}
