package eval

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/simon-lentz/weft/immutable"
	"github.com/simon-lentz/weft/internal/value"
)

// registerCoreBuiltins installs the unqualified `ds` namespace: the
// polymorphic primitives (typeOf, sizeOf, reverse, combine, ...) and the
// higher-order array/object combinators (§4.2-§4.4), grounded on
// instance/eval/builtins.go's builtinMap/builtinFilter/builtinReduce
// family, generalized to this package's BuiltinFunc/Namespace shape.
func registerCoreBuiltins(ns *Namespace, cfg *config) {
	ns.register("typeOf", 1, 1, builtinTypeOf)
	ns.register("sizeOf", 1, 1, builtinSizeOf)
	ns.register("isBlank", 1, 1, builtinIsBlank)
	ns.register("isEmpty", 1, 1, builtinIsEmpty)
	ns.register("contains", 2, 2, builtinContains)
	ns.register("reverse", 1, 1, builtinReverse)
	ns.register("flatten", 1, 1, builtinFlatten)
	ns.register("combine", 2, 2, builtinCombine)
	ns.register("default", 2, 2, builtinDefault)
	ns.register("coalesce", 1, -1, builtinCoalesce)
	ns.register("select", 2, 2, builtinSelect)

	ns.register("map", 2, 2, builtinMap)
	ns.register("filter", 2, 2, builtinFilter)
	ns.register("flatMap", 2, 2, builtinFlatMap)
	ns.register("foldLeft", 3, 3, builtinFoldLeft)
	ns.register("foldRight", 3, 3, builtinFoldRight)
	ns.register("groupBy", 2, 2, builtinGroupBy)
	ns.register("distinctBy", 2, 2, builtinDistinctBy)
	ns.register("orderBy", 2, 2, builtinOrderBy)
	ns.register("zip", 1, -1, builtinZip)
	ns.register("every", 2, 2, builtinEvery)
	ns.register("some", 2, 2, builtinSome)
	ns.register("firstWith", 2, 2, builtinFirstWith)

	ns.register("min", 1, 1, builtinMin)
	ns.register("max", 1, 1, builtinMax)
	ns.register("minBy", 2, 2, builtinMinBy)
	ns.register("maxBy", 2, 2, builtinMaxBy)

	ns.register("join", 4, 4, builtinInnerJoin)
	ns.register("leftJoin", 4, 4, builtinLeftJoin)
	ns.register("outerJoin", 4, 4, builtinOuterJoin)

	ns.register("uuid", 0, 0, builtinUUID)

	registerCoreCodecBuiltins(ns, cfg)
}

func builtinTypeOf(args []immutable.Value) (immutable.Value, error) {
	return immutable.NewStr(args[0].PrettyName()), nil
}

func builtinSizeOf(args []immutable.Value) (immutable.Value, error) {
	v := args[0]
	switch v.Kind() {
	case immutable.KindNull:
		return immutable.NewNum(0), nil
	case immutable.KindStr:
		s, _ := v.Str()
		return immutable.NewNum(float64(utf8.RuneCountInString(s))), nil
	case immutable.KindArr:
		a, _ := v.Arr()
		return immutable.NewNum(float64(a.Len())), nil
	case immutable.KindObj:
		o, _ := v.Obj()
		return immutable.NewNum(float64(len(o.VisibleKeys()))), nil
	default:
		return immutable.Value{}, TypeMismatch("String, Array, or Object", v.PrettyName())
	}
}

func builtinIsBlank(args []immutable.Value) (immutable.Value, error) {
	v := args[0]
	if v.IsNull() {
		return immutable.NewBool(true), nil
	}
	s, ok := v.Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", v.PrettyName())
	}
	return immutable.NewBool(strings.TrimSpace(s) == ""), nil
}

func builtinIsEmpty(args []immutable.Value) (immutable.Value, error) {
	v := args[0]
	switch v.Kind() {
	case immutable.KindNull:
		return immutable.NewBool(true), nil
	case immutable.KindStr:
		s, _ := v.Str()
		return immutable.NewBool(s == ""), nil
	case immutable.KindArr:
		a, _ := v.Arr()
		return immutable.NewBool(a.Len() == 0), nil
	case immutable.KindObj:
		o, _ := v.Obj()
		return immutable.NewBool(len(o.VisibleKeys()) == 0), nil
	default:
		return immutable.Value{}, TypeMismatch("String, Array, or Object", v.PrettyName())
	}
}

// builtinContains implements the testable property `contains(xs, v) ⇔
// ∃ i. xs[i] = v` (§8.3) for arrays, plus substring containment for
// strings.
func builtinContains(args []immutable.Value) (immutable.Value, error) {
	haystack, needle := args[0], args[1]
	switch haystack.Kind() {
	case immutable.KindArr:
		arr, _ := haystack.Arr()
		vals, err := arr.Values()
		if err != nil {
			return immutable.Value{}, err
		}
		for _, v := range vals {
			eq, err := immutable.Equal(v, needle)
			if err != nil {
				return immutable.Value{}, err
			}
			if eq {
				return immutable.NewBool(true), nil
			}
		}
		return immutable.NewBool(false), nil
	case immutable.KindStr:
		s, _ := haystack.Str()
		sub, ok := needle.Str()
		if !ok {
			return immutable.Value{}, TypeMismatch("String", needle.PrettyName())
		}
		return immutable.NewBool(strings.Contains(s, sub)), nil
	default:
		return immutable.Value{}, TypeMismatch("Array or String", haystack.PrettyName())
	}
}

// builtinReverse dispatches polymorphically per §4.2: string (rune
// order), array, or object (insertion order).
func builtinReverse(args []immutable.Value) (immutable.Value, error) {
	v := args[0]
	switch v.Kind() {
	case immutable.KindStr:
		s, _ := v.Str()
		runes := []rune(s)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return immutable.NewStr(string(runes)), nil
	case immutable.KindArr:
		a, _ := v.Arr()
		n := a.Len()
		cells := make([]immutable.Cell, n)
		for i := 0; i < n; i++ {
			cells[i] = a.Cell(n - 1 - i)
		}
		return immutable.NewArr(immutable.NewLazyArray(cells)), nil
	case immutable.KindObj:
		o, _ := v.Obj()
		keys := o.AllKeys()
		b := immutable.NewObjectBuilder()
		for i := len(keys) - 1; i >= 0; i-- {
			k := keys[i]
			vis, _ := o.Visibility(k)
			val, _, err := o.Get(k)
			if err != nil {
				return immutable.Value{}, err
			}
			b.Set(k, immutable.NewMember(vis, val))
		}
		return immutable.NewObj(b.Build()), nil
	default:
		return immutable.Value{}, TypeMismatch("String, Array, or Object", v.PrettyName())
	}
}

// builtinFlatten flattens one level. Each top-level element is forced to
// see whether it is an array; the elements of nested arrays are passed
// through unforced, and non-array elements (null included) are kept as is.
func builtinFlatten(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.Null, nil
	}
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	var cells []immutable.Cell
	for i := 0; i < a.Len(); i++ {
		v, err := a.Get(i)
		if err != nil {
			return immutable.Value{}, err
		}
		if inner, ok := v.Arr(); ok {
			cells = append(cells, inner.Cells()...)
			continue
		}
		cells = append(cells, a.Cell(i))
	}
	return immutable.NewArr(immutable.NewLazyArray(cells)), nil
}

// combine auto-coerces number<->string per §4.1: integers render without
// a fractional part, non-integers via default double formatting.
func combine(a, b immutable.Value) (immutable.Value, error) {
	as, aIsStr := toScalarString(a)
	bs, bIsStr := toScalarString(b)
	if !aIsStr || !bIsStr {
		return immutable.Value{}, TypeMismatch("Number or String", pickMismatched(a, b).PrettyName())
	}
	return immutable.NewStr(as + bs), nil
}

func pickMismatched(a, b immutable.Value) immutable.Value {
	if _, ok := toScalarString(a); !ok {
		return a
	}
	return b
}

// toScalarString renders a number or string value the way combine/joinBy/
// toString do (§4.1): integers without a fractional part, non-integers
// via default double formatting, strings unchanged.
func toScalarString(v immutable.Value) (string, bool) {
	switch v.Kind() {
	case immutable.KindStr:
		s, _ := v.Str()
		return s, true
	case immutable.KindNum:
		n, _ := v.Num()
		if value.IsWholeNumber(n) {
			i, _ := value.GetInt64FromFloat(n)
			return strconv.FormatInt(i, 10), true
		}
		return strconv.FormatFloat(n, 'g', -1, 64), true
	default:
		return "", false
	}
}

func builtinCombine(args []immutable.Value) (immutable.Value, error) {
	return combine(args[0], args[1])
}

func builtinDefault(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return args[1], nil
	}
	return args[0], nil
}

func builtinCoalesce(args []immutable.Value) (immutable.Value, error) {
	for _, a := range args {
		if !a.IsNull() {
			return a, nil
		}
	}
	return immutable.Null, nil
}

// builtinSelect looks up a key in an object, returning null rather than
// erroring on a missing key — the DomainError special case named in §7.
func builtinSelect(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.Null, nil
	}
	o, ok := args[0].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[0].PrettyName())
	}
	key, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	v, ok, err := o.GetVisible(key)
	if err != nil {
		return immutable.Value{}, err
	}
	if !ok {
		return immutable.Null, nil
	}
	return v, nil
}

func asFunc(v immutable.Value) (immutable.Func, error) {
	f, ok := v.Func()
	if !ok {
		return immutable.Func{}, TypeMismatch("Function", v.PrettyName())
	}
	return f, nil
}

// builtinMap implements §4.2's null-propagation (map(null, _) = null) and
// §4.3's arity-selected call shape via applyArray.
func builtinMap(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.Null, nil
	}
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	cells := make([]immutable.Cell, a.Len())
	for i := 0; i < a.Len(); i++ {
		elem, err := a.Get(i)
		if err != nil {
			return immutable.Value{}, err
		}
		idx := i
		e := elem
		cells[i] = immutable.NewThunk(func() (immutable.Value, error) { return applyArray(f, e, idx) })
	}
	return immutable.NewArr(immutable.NewLazyArray(cells)), nil
}

func builtinFilter(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.Null, nil
	}
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	var cells []immutable.Cell
	for i := 0; i < a.Len(); i++ {
		elem, err := a.Get(i)
		if err != nil {
			return immutable.Value{}, err
		}
		keep, err := applyArray(f, elem, i)
		if err != nil {
			return immutable.Value{}, err
		}
		b, ok := keep.Bool()
		if !ok {
			return immutable.Value{}, TypeMismatch("Boolean", keep.PrettyName())
		}
		if b {
			cells = append(cells, a.Cell(i))
		}
	}
	return immutable.NewArr(immutable.NewLazyArray(cells)), nil
}

func builtinFlatMap(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.Null, nil
	}
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	var cells []immutable.Cell
	for i := 0; i < a.Len(); i++ {
		elem, err := a.Get(i)
		if err != nil {
			return immutable.Value{}, err
		}
		mapped, err := applyArray(f, elem, i)
		if err != nil {
			return immutable.Value{}, err
		}
		inner, ok := mapped.Arr()
		if !ok {
			return immutable.Value{}, TypeMismatch("Array", mapped.PrettyName())
		}
		cells = append(cells, inner.Cells()...)
	}
	return immutable.NewArr(immutable.NewLazyArray(cells)), nil
}

func builtinFoldLeft(args []immutable.Value) (immutable.Value, error) {
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	acc := args[2]
	for i := 0; i < a.Len(); i++ {
		elem, err := a.Get(i)
		if err != nil {
			return immutable.Value{}, err
		}
		acc, err = applyFold(f, elem, acc)
		if err != nil {
			return immutable.Value{}, err
		}
	}
	return acc, nil
}

func builtinFoldRight(args []immutable.Value) (immutable.Value, error) {
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	acc := args[2]
	for i := a.Len() - 1; i >= 0; i-- {
		elem, err := a.Get(i)
		if err != nil {
			return immutable.Value{}, err
		}
		acc, err = applyFold(f, elem, acc)
		if err != nil {
			return immutable.Value{}, err
		}
	}
	return acc, nil
}

// groupKey renders a value's discriminator for groupBy/distinctBy
// bucketing. Discrimination is by this string rendering, which is also
// groupBy's result key: discriminators with the same rendering (the
// number 1 and the string "1") share a bucket. Only strings, numbers
// and booleans are accepted.
func groupKey(v immutable.Value) (string, error) {
	switch v.Kind() {
	case immutable.KindStr:
		s, _ := v.Str()
		return s, nil
	case immutable.KindNum:
		s, _ := toScalarString(v)
		return s, nil
	case immutable.KindBool:
		b, _ := v.Bool()
		return strconv.FormatBool(b), nil
	default:
		return "", TypeMismatch("String, Number, or Boolean", v.PrettyName())
	}
}

func builtinGroupBy(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.Null, nil
	}
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	groups := make(map[string][]immutable.Cell)
	var order []string
	for i := 0; i < a.Len(); i++ {
		elem, err := a.Get(i)
		if err != nil {
			return immutable.Value{}, err
		}
		key, err := applyArray(f, elem, i)
		if err != nil {
			return immutable.Value{}, err
		}
		k, err := groupKey(key)
		if err != nil {
			return immutable.Value{}, err
		}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], a.Cell(i))
	}
	b := immutable.NewObjectBuilder()
	for _, k := range order {
		b.SetValue(k, immutable.NewArr(immutable.NewLazyArray(groups[k])))
	}
	return immutable.NewObj(b.Build()), nil
}

// builtinDistinctBy preserves the first occurrence of each discriminator
// value, per §4.3.
func builtinDistinctBy(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.Null, nil
	}
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	seen := make(map[string]bool)
	var cells []immutable.Cell
	for i := 0; i < a.Len(); i++ {
		elem, err := a.Get(i)
		if err != nil {
			return immutable.Value{}, err
		}
		key, err := applyArray(f, elem, i)
		if err != nil {
			return immutable.Value{}, err
		}
		k, err := groupKey(key)
		if err != nil {
			return immutable.Value{}, err
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		cells = append(cells, a.Cell(i))
	}
	return immutable.NewArr(immutable.NewLazyArray(cells)), nil
}

// builtinOrderBy is a stable sort keyed on the callback's result, per
// §4.3, using the canonical ordering of internal/value.
func builtinOrderBy(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.Null, nil
	}
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	type keyed struct {
		key  immutable.Value
		cell immutable.Cell
	}
	entries := make([]keyed, a.Len())
	for i := 0; i < a.Len(); i++ {
		elem, err := a.Get(i)
		if err != nil {
			return immutable.Value{}, err
		}
		k, err := applyArray(f, elem, i)
		if err != nil {
			return immutable.Value{}, err
		}
		entries[i] = keyed{key: k, cell: a.Cell(i)}
	}
	var sortErr error
	sort.SliceStable(entries, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		less, err := value.Less(entries[i].key, entries[j].key)
		if err != nil {
			sortErr = err
			return false
		}
		return less
	})
	if sortErr != nil {
		return immutable.Value{}, sortErr
	}
	cells := make([]immutable.Cell, len(entries))
	for i, e := range entries {
		cells[i] = e.cell
	}
	return immutable.NewArr(immutable.NewLazyArray(cells)), nil
}

func builtinZip(args []immutable.Value) (immutable.Value, error) {
	arrs := make([]immutable.Array, len(args))
	minLen := -1
	for i, v := range args {
		a, ok := v.Arr()
		if !ok {
			return immutable.Value{}, TypeMismatch("Array", v.PrettyName())
		}
		arrs[i] = a
		if minLen < 0 || a.Len() < minLen {
			minLen = a.Len()
		}
	}
	cells := make([]immutable.Cell, minLen)
	for i := 0; i < minLen; i++ {
		tupleCells := make([]immutable.Cell, len(arrs))
		for j, a := range arrs {
			tupleCells[j] = a.Cell(i)
		}
		cells[i] = immutable.NewCell(immutable.NewArr(immutable.NewLazyArray(tupleCells)))
	}
	return immutable.NewArr(immutable.NewLazyArray(cells)), nil
}

func builtinEvery(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.NewBool(true), nil
	}
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
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
		if !b {
			return immutable.NewBool(false), nil
		}
	}
	return immutable.NewBool(true), nil
}

func builtinSome(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.Null, nil
	}
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
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
			return immutable.NewBool(true), nil
		}
	}
	return immutable.NewBool(false), nil
}

func builtinFirstWith(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.Null, nil
	}
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
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
			return elem, nil
		}
	}
	return immutable.Null, nil
}

// requireOrderableArray validates the §4.1 rule that min/max/orderBy
// operate only on an Array of Num, Str, or Bool — producing the exact
// message format §4.1 mandates on violation.
func requireOrderableArray(v immutable.Value) (immutable.Array, error) {
	a, ok := v.Arr()
	if !ok {
		return immutable.Array{}, TypeMismatch("Array", v.PrettyName())
	}
	for i := 0; i < a.Len(); i++ {
		elem, err := a.Get(i)
		if err != nil {
			return immutable.Array{}, err
		}
		if !value.Orderable(elem.Kind()) {
			return immutable.Array{}, TypeMismatch("Array of type String, Boolean, or Number", fmt.Sprintf("Array of type %s", elem.PrettyName()))
		}
	}
	return a, nil
}

// builtinMin/builtinMax promote the empty-array case to an explicit
// DomainError (Open Question #4, see DESIGN.md) rather than faulting on
// a head-of-empty-slice access.
func builtinMin(args []immutable.Value) (immutable.Value, error) {
	a, err := requireOrderableArray(args[0])
	if err != nil {
		return immutable.Value{}, err
	}
	if a.Len() == 0 {
		return immutable.Value{}, DomainError("min: empty array")
	}
	return extremum(a, false)
}

func builtinMax(args []immutable.Value) (immutable.Value, error) {
	a, err := requireOrderableArray(args[0])
	if err != nil {
		return immutable.Value{}, err
	}
	if a.Len() == 0 {
		return immutable.Value{}, DomainError("max: empty array")
	}
	return extremum(a, true)
}

// extremum implements the §4.1 boolean special case: max is true if any
// element is true, min is false if any element is false.
func extremum(a immutable.Array, wantMax bool) (immutable.Value, error) {
	best, err := a.Get(0)
	if err != nil {
		return immutable.Value{}, err
	}
	for i := 1; i < a.Len(); i++ {
		cur, err := a.Get(i)
		if err != nil {
			return immutable.Value{}, err
		}
		cmp, err := value.ValueOrder(cur, best)
		if err != nil {
			return immutable.Value{}, err
		}
		if (wantMax && cmp > 0) || (!wantMax && cmp < 0) {
			best = cur
		}
	}
	return best, nil
}

func builtinMinBy(args []immutable.Value) (immutable.Value, error) {
	return extremumBy(args, false)
}

func builtinMaxBy(args []immutable.Value) (immutable.Value, error) {
	return extremumBy(args, true)
}

func extremumBy(args []immutable.Value, wantMax bool) (immutable.Value, error) {
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	if a.Len() == 0 {
		return immutable.Value{}, DomainError("empty array")
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	best, err := a.Get(0)
	if err != nil {
		return immutable.Value{}, err
	}
	bestKey, err := applyArray(f, best, 0)
	if err != nil {
		return immutable.Value{}, err
	}
	for i := 1; i < a.Len(); i++ {
		cur, err := a.Get(i)
		if err != nil {
			return immutable.Value{}, err
		}
		curKey, err := applyArray(f, cur, i)
		if err != nil {
			return immutable.Value{}, err
		}
		cmp, err := value.ValueOrder(curKey, bestKey)
		if err != nil {
			return immutable.Value{}, err
		}
		if (wantMax && cmp > 0) || (!wantMax && cmp < 0) {
			best, bestKey = cur, curKey
		}
	}
	return best, nil
}

// joinPair builds one {l, r} / {l} / {r} result object for the join
// family (§4.4).
func joinPair(l, r immutable.Value, hasL, hasR bool) immutable.Value {
	b := immutable.NewObjectBuilder()
	if hasL {
		b.SetValue("l", l)
	}
	if hasR {
		b.SetValue("r", r)
	}
	return immutable.NewObj(b.Build())
}

func joinArrays(args []immutable.Value) (immutable.Array, immutable.Array, immutable.Func, immutable.Func, error) {
	left, ok := args[0].Arr()
	if !ok {
		return immutable.Array{}, immutable.Array{}, immutable.Func{}, immutable.Func{}, TypeMismatch("Array", args[0].PrettyName())
	}
	right, ok := args[1].Arr()
	if !ok {
		return immutable.Array{}, immutable.Array{}, immutable.Func{}, immutable.Func{}, TypeMismatch("Array", args[1].PrettyName())
	}
	keyL, err := asFunc(args[2])
	if err != nil {
		return immutable.Array{}, immutable.Array{}, immutable.Func{}, immutable.Func{}, err
	}
	keyR, err := asFunc(args[3])
	if err != nil {
		return immutable.Array{}, immutable.Array{}, immutable.Func{}, immutable.Func{}, err
	}
	return left, right, keyL, keyR, nil
}

// computeJoinKeys applies keyFn to every element of vals, in order.
func computeJoinKeys(keyFn immutable.Func, vals []immutable.Value) ([]immutable.Value, error) {
	keys := make([]immutable.Value, len(vals))
	for i, v := range vals {
		k, err := applyArray(keyFn, v, i)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	return keys, nil
}

// innerJoin computes the cross-product-then-filter inner join, plus the
// residue bitmaps used by the left variant, per §4.4's emission order
// (left-outer then right-inner, stable). Every left/right pair sharing a
// key is emitted — a right row matching N left rows is emitted N times,
// which is correct for innerJoin/leftJoin but not for outerJoin's
// right-side dedup (see outerJoinRows).
func innerJoinRows(left, right immutable.Array, keyL, keyR immutable.Func) ([]immutable.Value, []bool, []bool, error) {
	leftVals, err := left.Values()
	if err != nil {
		return nil, nil, nil, err
	}
	rightVals, err := right.Values()
	if err != nil {
		return nil, nil, nil, err
	}
	leftKeys, err := computeJoinKeys(keyL, leftVals)
	if err != nil {
		return nil, nil, nil, err
	}
	rightKeys, err := computeJoinKeys(keyR, rightVals)
	if err != nil {
		return nil, nil, nil, err
	}
	leftMatched := make([]bool, len(leftVals))
	rightMatched := make([]bool, len(rightVals))
	var rows []immutable.Value
	for i, lv := range leftVals {
		for j, rv := range rightVals {
			eq, err := immutable.Equal(leftKeys[i], rightKeys[j])
			if err != nil {
				return nil, nil, nil, err
			}
			if eq {
				rows = append(rows, joinPair(lv, rv, true, true))
				leftMatched[i] = true
				rightMatched[j] = true
			}
		}
	}
	return rows, leftMatched, rightMatched, nil
}

// outerJoinRows implements §4.4/Open Question #3's right-side dedup: a
// right row is consumed by the first left row it matches and removed
// from the matching pool, so it is never paired with a second left row
// and never separately emitted as unmatched. A left row may still match
// (and consume) several distinct right rows; a left row matching nothing
// left in the pool is emitted paired with Null.
func outerJoinRows(left, right immutable.Array, keyL, keyR immutable.Func) ([]immutable.Value, error) {
	leftVals, err := left.Values()
	if err != nil {
		return nil, err
	}
	rightVals, err := right.Values()
	if err != nil {
		return nil, err
	}
	leftKeys, err := computeJoinKeys(keyL, leftVals)
	if err != nil {
		return nil, err
	}
	rightKeys, err := computeJoinKeys(keyR, rightVals)
	if err != nil {
		return nil, err
	}
	rightConsumed := make([]bool, len(rightVals))
	var rows []immutable.Value
	for i, lv := range leftVals {
		matched := false
		for j, rv := range rightVals {
			if rightConsumed[j] {
				continue
			}
			eq, err := immutable.Equal(leftKeys[i], rightKeys[j])
			if err != nil {
				return nil, err
			}
			if eq {
				rows = append(rows, joinPair(lv, rv, true, true))
				rightConsumed[j] = true
				matched = true
			}
		}
		if !matched {
			rows = append(rows, joinPair(lv, immutable.Null, true, false))
		}
	}
	for j, rv := range rightVals {
		if !rightConsumed[j] {
			rows = append(rows, joinPair(immutable.Null, rv, false, true))
		}
	}
	return rows, nil
}

func builtinInnerJoin(args []immutable.Value) (immutable.Value, error) {
	left, right, keyL, keyR, err := joinArrays(args)
	if err != nil {
		return immutable.Value{}, err
	}
	rows, _, _, err := innerJoinRows(left, right, keyL, keyR)
	if err != nil {
		return immutable.Value{}, err
	}
	return immutable.NewArr(immutable.NewArray(rows)), nil
}

func builtinLeftJoin(args []immutable.Value) (immutable.Value, error) {
	left, right, keyL, keyR, err := joinArrays(args)
	if err != nil {
		return immutable.Value{}, err
	}
	rows, leftMatched, _, err := innerJoinRows(left, right, keyL, keyR)
	if err != nil {
		return immutable.Value{}, err
	}
	leftVals, err := left.Values()
	if err != nil {
		return immutable.Value{}, err
	}
	for i, lv := range leftVals {
		if !leftMatched[i] {
			rows = append(rows, joinPair(lv, immutable.Null, true, false))
		}
	}
	return immutable.NewArr(immutable.NewArray(rows)), nil
}

// builtinOuterJoin preserves the asymmetric right-side dedup named in
// Open Question #3 (see DESIGN.md): a right row that matches anything is
// consumed once and never re-emitted, nor paired with a second left row.
func builtinOuterJoin(args []immutable.Value) (immutable.Value, error) {
	left, right, keyL, keyR, err := joinArrays(args)
	if err != nil {
		return immutable.Value{}, err
	}
	rows, err := outerJoinRows(left, right, keyL, keyR)
	if err != nil {
		return immutable.Value{}, err
	}
	return immutable.NewArr(immutable.NewArray(rows)), nil
}

func builtinUUID(args []immutable.Value) (immutable.Value, error) {
	return immutable.NewStr(uuid.NewString()), nil
}
