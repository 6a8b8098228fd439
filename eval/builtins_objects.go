package eval

import (
	"github.com/simon-lentz/weft/immutable"
)

// registerObjectsBuiltins installs the `objects` namespace: key/value
// accessors and the object-shaped combinators named in §4.3, plus the
// supplemental merge/pick/omit/divideBy helpers SPEC_FULL.md calls for.
func registerObjectsBuiltins(ns *Namespace) {
	ns.register("keysOf", 1, 1, builtinKeysOf)
	ns.register("valuesOf", 1, 1, builtinValuesOf)
	ns.register("entriesOf", 1, 1, builtinEntriesOf)
	ns.register("fromEntries", 1, 1, builtinFromEntries)
	ns.register("merge", 2, 2, builtinMerge)
	ns.register("mergeWith", 3, 3, builtinMergeWith)
	ns.register("pick", 2, 2, builtinPick)
	ns.register("omit", 2, 2, builtinOmit)
	ns.register("divideBy", 2, 2, builtinDivideBy)

	ns.register("filterObject", 2, 2, builtinFilterObject)
	ns.register("mapObject", 2, 2, builtinMapObject)
	ns.register("mapEntries", 2, 2, builtinMapEntries)
	ns.register("everyEntry", 2, 2, builtinEveryEntry)
	ns.register("someEntry", 2, 2, builtinSomeEntry)
}

func builtinKeysOf(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.Null, nil
	}
	o, ok := args[0].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[0].PrettyName())
	}
	keys := o.VisibleKeys()
	vals := make([]immutable.Value, len(keys))
	for i, k := range keys {
		vals[i] = immutable.NewStr(k)
	}
	return immutable.NewArr(immutable.NewArray(vals)), nil
}

func builtinValuesOf(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.Null, nil
	}
	o, ok := args[0].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[0].PrettyName())
	}
	keys := o.VisibleKeys()
	vals := make([]immutable.Value, len(keys))
	for i, k := range keys {
		v, _, err := o.GetVisible(k)
		if err != nil {
			return immutable.Value{}, err
		}
		vals[i] = v
	}
	return immutable.NewArr(immutable.NewArray(vals)), nil
}

func entryObject(key string, val immutable.Value) immutable.Value {
	b := immutable.NewObjectBuilder()
	b.SetValue("key", immutable.NewStr(key))
	b.SetValue("value", val)
	return immutable.NewObj(b.Build())
}

func builtinEntriesOf(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.Null, nil
	}
	o, ok := args[0].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[0].PrettyName())
	}
	keys := o.VisibleKeys()
	vals := make([]immutable.Value, len(keys))
	for i, k := range keys {
		v, _, err := o.GetVisible(k)
		if err != nil {
			return immutable.Value{}, err
		}
		vals[i] = entryObject(k, v)
	}
	return immutable.NewArr(immutable.NewArray(vals)), nil
}

func builtinFromEntries(args []immutable.Value) (immutable.Value, error) {
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	vals, err := a.Values()
	if err != nil {
		return immutable.Value{}, err
	}
	b := immutable.NewObjectBuilder()
	for _, entry := range vals {
		o, ok := entry.Obj()
		if !ok {
			return immutable.Value{}, TypeMismatch("Object", entry.PrettyName())
		}
		keyVal, ok, err := o.GetVisible("key")
		if err != nil {
			return immutable.Value{}, err
		}
		if !ok {
			return immutable.Value{}, DomainError("fromEntries: entry missing key")
		}
		key, ok := keyVal.Str()
		if !ok {
			return immutable.Value{}, TypeMismatch("String", keyVal.PrettyName())
		}
		val, _, err := o.GetVisible("value")
		if err != nil {
			return immutable.Value{}, err
		}
		b.SetValue(key, val)
	}
	return immutable.NewObj(b.Build()), nil
}

// builtinMerge merges b's visible members over a's, later keys winning on
// collision, key order being the concatenation of per-source
// contributions — the same merge discipline mapObject uses (§4.3).
func builtinMerge(args []immutable.Value) (immutable.Value, error) {
	a, ok := args[0].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[0].PrettyName())
	}
	b2, ok := args[1].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[1].PrettyName())
	}
	b := immutable.NewObjectBuilder()
	for _, k := range a.VisibleKeys() {
		v, _, err := a.GetVisible(k)
		if err != nil {
			return immutable.Value{}, err
		}
		b.SetValue(k, v)
	}
	for _, k := range b2.VisibleKeys() {
		v, _, err := b2.GetVisible(k)
		if err != nil {
			return immutable.Value{}, err
		}
		b.SetValue(k, v)
	}
	return immutable.NewObj(b.Build()), nil
}

// builtinMergeWith is like merge but resolves a collision by invoking the
// callback as f(aValue, bValue) instead of letting b silently win.
func builtinMergeWith(args []immutable.Value) (immutable.Value, error) {
	a, ok := args[0].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[0].PrettyName())
	}
	b2, ok := args[1].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[1].PrettyName())
	}
	f, err := asFunc(args[2])
	if err != nil {
		return immutable.Value{}, err
	}
	b := immutable.NewObjectBuilder()
	for _, k := range a.VisibleKeys() {
		v, _, err := a.GetVisible(k)
		if err != nil {
			return immutable.Value{}, err
		}
		b.SetValue(k, v)
	}
	for _, k := range b2.VisibleKeys() {
		bv, _, err := b2.GetVisible(k)
		if err != nil {
			return immutable.Value{}, err
		}
		if av, existed, err := a.GetVisible(k); err == nil && existed {
			merged, err := f.Invoke([]immutable.Value{av, bv})
			if err != nil {
				return immutable.Value{}, err
			}
			b.SetValue(k, merged)
			continue
		}
		b.SetValue(k, bv)
	}
	return immutable.NewObj(b.Build()), nil
}

func keySet(args []immutable.Value, idx int) (map[string]bool, error) {
	a, ok := args[idx].Arr()
	if !ok {
		return nil, TypeMismatch("Array", args[idx].PrettyName())
	}
	vals, err := a.Values()
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		s, ok := v.Str()
		if !ok {
			return nil, TypeMismatch("String", v.PrettyName())
		}
		set[s] = true
	}
	return set, nil
}

func builtinPick(args []immutable.Value) (immutable.Value, error) {
	o, ok := args[0].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[0].PrettyName())
	}
	keep, err := keySet(args, 1)
	if err != nil {
		return immutable.Value{}, err
	}
	b := immutable.NewObjectBuilder()
	for _, k := range o.VisibleKeys() {
		if !keep[k] {
			continue
		}
		v, _, err := o.GetVisible(k)
		if err != nil {
			return immutable.Value{}, err
		}
		b.SetValue(k, v)
	}
	return immutable.NewObj(b.Build()), nil
}

func builtinOmit(args []immutable.Value) (immutable.Value, error) {
	o, ok := args[0].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[0].PrettyName())
	}
	drop, err := keySet(args, 1)
	if err != nil {
		return immutable.Value{}, err
	}
	b := immutable.NewObjectBuilder()
	for _, k := range o.VisibleKeys() {
		if drop[k] {
			continue
		}
		v, _, err := o.GetVisible(k)
		if err != nil {
			return immutable.Value{}, err
		}
		b.SetValue(k, v)
	}
	return immutable.NewObj(b.Build()), nil
}

// builtinDivideBy splits an object's visible members into chunks of size
// n, each chunk itself an object, in insertion order.
func builtinDivideBy(args []immutable.Value) (immutable.Value, error) {
	o, ok := args[0].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[0].PrettyName())
	}
	nF, ok := args[1].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[1].PrettyName())
	}
	n := int(nF)
	if n <= 0 {
		return immutable.Value{}, DomainError("divideBy: chunk size must be positive")
	}
	keys := o.VisibleKeys()
	var chunks []immutable.Value
	for i := 0; i < len(keys); i += n {
		end := i + n
		if end > len(keys) {
			end = len(keys)
		}
		b := immutable.NewObjectBuilder()
		for _, k := range keys[i:end] {
			v, _, err := o.GetVisible(k)
			if err != nil {
				return immutable.Value{}, err
			}
			b.SetValue(k, v)
		}
		chunks = append(chunks, immutable.NewObj(b.Build()))
	}
	return immutable.NewArr(immutable.NewArray(chunks)), nil
}

func builtinFilterObject(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.Null, nil
	}
	o, ok := args[0].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	b := immutable.NewObjectBuilder()
	for i, k := range o.VisibleKeys() {
		v, _, err := o.GetVisible(k)
		if err != nil {
			return immutable.Value{}, err
		}
		keep, err := applyObject(f, v, k, i)
		if err != nil {
			return immutable.Value{}, err
		}
		kb, ok := keep.Bool()
		if !ok {
			return immutable.Value{}, TypeMismatch("Boolean", keep.PrettyName())
		}
		if kb {
			b.SetValue(k, v)
		}
	}
	return immutable.NewObj(b.Build()), nil
}

// builtinMapObject requires the callback to return an object; its
// visible keys are merged into the result (later keys win), per §4.3.
func builtinMapObject(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.Null, nil
	}
	o, ok := args[0].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	b := immutable.NewObjectBuilder()
	for i, k := range o.VisibleKeys() {
		v, _, err := o.GetVisible(k)
		if err != nil {
			return immutable.Value{}, err
		}
		mapped, err := applyObject(f, v, k, i)
		if err != nil {
			return immutable.Value{}, err
		}
		mo, ok := mapped.Obj()
		if !ok {
			return immutable.Value{}, TypeMismatch("Object", mapped.PrettyName())
		}
		for _, mk := range mo.VisibleKeys() {
			mv, _, err := mo.GetVisible(mk)
			if err != nil {
				return immutable.Value{}, err
			}
			b.SetValue(mk, mv)
		}
	}
	return immutable.NewObj(b.Build()), nil
}

// builtinMapEntries collects the callback results into an array, per §4.3.
func builtinMapEntries(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.Null, nil
	}
	o, ok := args[0].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	keys := o.VisibleKeys()
	vals := make([]immutable.Value, len(keys))
	for i, k := range keys {
		v, _, err := o.GetVisible(k)
		if err != nil {
			return immutable.Value{}, err
		}
		mapped, err := applyObject(f, v, k, i)
		if err != nil {
			return immutable.Value{}, err
		}
		vals[i] = mapped
	}
	return immutable.NewArr(immutable.NewArray(vals)), nil
}

func builtinEveryEntry(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.NewBool(true), nil
	}
	o, ok := args[0].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	for i, k := range o.VisibleKeys() {
		v, _, err := o.GetVisible(k)
		if err != nil {
			return immutable.Value{}, err
		}
		res, err := applyObject(f, v, k, i)
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

func builtinSomeEntry(args []immutable.Value) (immutable.Value, error) {
	if args[0].IsNull() {
		return immutable.Null, nil
	}
	o, ok := args[0].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[0].PrettyName())
	}
	f, err := asFunc(args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	for i, k := range o.VisibleKeys() {
		v, _, err := o.GetVisible(k)
		if err != nil {
			return immutable.Value{}, err
		}
		res, err := applyObject(f, v, k, i)
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
