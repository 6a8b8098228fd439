package eval

import "github.com/simon-lentz/weft/immutable"

// applyArray invokes an array-combinator callback (map, filter, flatMap,
// distinctBy, groupBy, orderBy, firstWith, ...) per §4.3's call-shape
// rule: a 1-parameter callback receives the element; a 2-parameter
// callback receives (element, index). Any other arity is a fatal
// ArityMismatch.
func applyArray(f immutable.Func, elem immutable.Value, index int) (immutable.Value, error) {
	switch f.Arity() {
	case 1:
		return f.Invoke([]immutable.Value{elem})
	case 2:
		return f.Invoke([]immutable.Value{elem, immutable.NewNum(float64(index))})
	default:
		return immutable.Value{}, ArityMismatch("1 or 2", f.Arity())
	}
}

// applyObject invokes an object-combinator callback (filterObject,
// mapObject, mapEntries, everyEntry, someEntry, ...) per §4.3: 1-arg
// receives (value); 2-arg receives (value, key); 3-arg receives
// (value, key, index), index being the position in visible-key
// iteration order. Any other arity is a fatal ArityMismatch.
func applyObject(f immutable.Func, val immutable.Value, key string, index int) (immutable.Value, error) {
	switch f.Arity() {
	case 1:
		return f.Invoke([]immutable.Value{val})
	case 2:
		return f.Invoke([]immutable.Value{val, immutable.NewStr(key)})
	case 3:
		return f.Invoke([]immutable.Value{val, immutable.NewStr(key), immutable.NewNum(float64(index))})
	default:
		return immutable.Value{}, ArityMismatch("1, 2, or 3", f.Arity())
	}
}

// applyFold invokes a foldLeft/foldRight callback. Both directions
// require exactly a 2-parameter callback and fix its argument order as
// (current, previous) per §4.3.
func applyFold(f immutable.Func, current, previous immutable.Value) (immutable.Value, error) {
	if f.Arity() != 2 {
		return immutable.Value{}, ArityMismatch("2", f.Arity())
	}
	return f.Invoke([]immutable.Value{current, previous})
}
