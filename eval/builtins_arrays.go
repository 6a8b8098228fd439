package eval

import (
	"github.com/simon-lentz/weft/immutable"
)

// registerArraysBuiltins installs the `arrays` namespace: supplemental
// array helpers beyond the polymorphic root-namespace combinators
// (countBy, indexOf, slice, range generators, splitAt, partition,
// sumBy, avg), per SPEC_FULL.md's supplement list.
func registerArraysBuiltins(ns *Namespace) {
	ns.register("countBy", 2, 2, builtinCountBy)
	ns.register("indexOf", 2, 2, builtinIndexOf)
	ns.register("slice", 3, 3, builtinSlice)
	ns.register("range", 2, 2, builtinRange)
	ns.register("rangeTo", 2, 2, builtinRange)
	ns.register("until", 2, 2, builtinUntil)
	ns.register("splitAt", 2, 2, builtinSplitAt)
	ns.register("partition", 2, 2, builtinPartition)
	ns.register("sumBy", 2, 2, builtinSumBy)
	ns.register("sum", 1, 1, builtinSum)
	ns.register("avg", 1, 1, builtinAvg)
}

func builtinCountBy(args []immutable.Value) (immutable.Value, error) {
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	count := 0
	for i := 0; i < a.Len(); i++ {
		elem, err := a.Get(i)
		if err != nil {
			return immutable.Value{}, err
		}
		res, err := applyArray(f, elem, i)
		if err != nil {
			return immutable.Value{}, err
		}
		b, ok := res.Bool()
		if !ok {
			return immutable.Value{}, TypeMismatch("Boolean", res.PrettyName())
		}
		if b {
			count++
		}
	}
	return immutable.NewNum(float64(count)), nil
}

func builtinIndexOf(args []immutable.Value) (immutable.Value, error) {
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	vals, err := a.Values()
	if err != nil {
		return immutable.Value{}, err
	}
	for i, v := range vals {
		eq, err := immutable.Equal(v, args[1])
		if err != nil {
			return immutable.Value{}, err
		}
		if eq {
			return immutable.NewNum(float64(i)), nil
		}
	}
	return immutable.NewNum(-1), nil
}

func builtinSlice(args []immutable.Value) (immutable.Value, error) {
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	loF, ok := args[1].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[1].PrettyName())
	}
	hiF, ok := args[2].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[2].PrettyName())
	}
	lo, hi := clampRange(int(loF), int(hiF), a.Len())
	return immutable.NewArr(a.Slice(lo, hi)), nil
}

func clampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// builtinRange produces an inclusive [from, to] integer sequence.
func builtinRange(args []immutable.Value) (immutable.Value, error) {
	from, ok := args[0].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[0].PrettyName())
	}
	to, ok := args[1].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[1].PrettyName())
	}
	return buildRange(int(from), int(to), true), nil
}

// builtinUntil produces an exclusive [from, to) integer sequence.
func builtinUntil(args []immutable.Value) (immutable.Value, error) {
	from, ok := args[0].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[0].PrettyName())
	}
	to, ok := args[1].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[1].PrettyName())
	}
	return buildRange(int(from), int(to), false), nil
}

func buildRange(from, to int, inclusive bool) immutable.Value {
	if inclusive {
		to++
	}
	if to <= from {
		return immutable.NewArr(immutable.NewArray(nil))
	}
	vals := make([]immutable.Value, 0, to-from)
	for i := from; i < to; i++ {
		vals = append(vals, immutable.NewNum(float64(i)))
	}
	return immutable.NewArr(immutable.NewArray(vals))
}

func builtinSplitAt(args []immutable.Value) (immutable.Value, error) {
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	idxF, ok := args[1].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[1].PrettyName())
	}
	idx := int(idxF)
	if idx < 0 {
		idx = 0
	}
	if idx > a.Len() {
		idx = a.Len()
	}
	left := immutable.NewArr(a.Slice(0, idx))
	right := immutable.NewArr(a.Slice(idx, a.Len()))
	return immutable.NewArr(immutable.NewArray([]immutable.Value{left, right})), nil
}

func builtinPartition(args []immutable.Value) (immutable.Value, error) {
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	var yes, no []immutable.Cell
	for i := 0; i < a.Len(); i++ {
		elem, err := a.Get(i)
		if err != nil {
			return immutable.Value{}, err
		}
		res, err := applyArray(f, elem, i)
		if err != nil {
			return immutable.Value{}, err
		}
		b, ok := res.Bool()
		if !ok {
			return immutable.Value{}, TypeMismatch("Boolean", res.PrettyName())
		}
		if b {
			yes = append(yes, a.Cell(i))
		} else {
			no = append(no, a.Cell(i))
		}
	}
	left := immutable.NewArr(immutable.NewLazyArray(yes))
	right := immutable.NewArr(immutable.NewLazyArray(no))
	return immutable.NewArr(immutable.NewArray([]immutable.Value{left, right})), nil
}

func builtinSumBy(args []immutable.Value) (immutable.Value, error) {
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	total := 0.0
	for i := 0; i < a.Len(); i++ {
		elem, err := a.Get(i)
		if err != nil {
			return immutable.Value{}, err
		}
		res, err := applyArray(f, elem, i)
		if err != nil {
			return immutable.Value{}, err
		}
		n, ok := res.Num()
		if !ok {
			return immutable.Value{}, TypeMismatch("Number", res.PrettyName())
		}
		total += n
	}
	return immutable.NewNum(total), nil
}

func builtinSum(args []immutable.Value) (immutable.Value, error) {
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	vals, err := a.Values()
	if err != nil {
		return immutable.Value{}, err
	}
	total := 0.0
	for _, v := range vals {
		n, ok := v.Num()
		if !ok {
			return immutable.Value{}, TypeMismatch("Number", v.PrettyName())
		}
		total += n
	}
	return immutable.NewNum(total), nil
}

func builtinAvg(args []immutable.Value) (immutable.Value, error) {
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	if a.Len() == 0 {
		return immutable.Value{}, DomainError("avg: empty array")
	}
	sum, err := builtinSum(args)
	if err != nil {
		return immutable.Value{}, err
	}
	n, _ := sum.Num()
	return immutable.NewNum(n / float64(a.Len())), nil
}
