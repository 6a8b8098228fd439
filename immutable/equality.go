package immutable

// Equal implements the structural, cross-variant-strict equality defined
// by spec.md §3.2 and §4.1: a number never equals a string, even when
// their textual forms coincide. Composite values are equal iff their
// forced contents compare equal — arrays element-wise in order, objects
// by identical visible-key sets with equal values per key (key order does
// not matter for equality, only for iteration).
//
// Functions are equal only to themselves is not representable (Go func
// values are not comparable); Equal treats two KindFunc values as equal
// only when both have a nil Call, and unequal otherwise. Scripts are not
// expected to compare functions.
func Equal(a, b Value) (bool, error) {
	if a.kind != b.kind {
		return false, nil
	}
	switch a.kind {
	case KindNull:
		return true, nil
	case KindBool:
		av, _ := a.Bool()
		bv, _ := b.Bool()
		return av == bv, nil
	case KindNum:
		av, _ := a.Num()
		bv, _ := b.Num()
		return numEqual(av, bv), nil
	case KindStr:
		av, _ := a.Str()
		bv, _ := b.Str()
		return av == bv, nil
	case KindArr:
		return arrEqual(a, b)
	case KindObj:
		return objEqual(a, b)
	case KindFunc:
		af, _ := a.Func()
		bf, _ := b.Func()
		return af.Call == nil && bf.Call == nil, nil
	default:
		return false, nil
	}
}

// numEqual treats NaN as equal to NaN, keeping equality a total
// equivalence relation (needed by distinctBy/groupBy bucketing) rather
// than following IEEE-754's NaN != NaN.
func numEqual(a, b float64) bool {
	if a != a && b != b { // both NaN
		return true
	}
	return a == b
}

func arrEqual(a, b Value) (bool, error) {
	aa, _ := a.Arr()
	bb, _ := b.Arr()
	if aa.Len() != bb.Len() {
		return false, nil
	}
	for i := 0; i < aa.Len(); i++ {
		av, err := aa.Get(i)
		if err != nil {
			return false, err
		}
		bv, err := bb.Get(i)
		if err != nil {
			return false, err
		}
		eq, err := Equal(av, bv)
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

func objEqual(a, b Value) (bool, error) {
	ao, _ := a.Obj()
	bo, _ := b.Obj()
	aKeys := ao.VisibleKeys()
	bKeys := bo.VisibleKeys()
	if len(aKeys) != len(bKeys) {
		return false, nil
	}
	for _, k := range aKeys {
		av, ok, err := ao.GetVisible(k)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		bv, ok, err := bo.GetVisible(k)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		eq, err := Equal(av, bv)
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}
