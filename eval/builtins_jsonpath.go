package eval

import (
	"github.com/theory/jsonpath"

	"github.com/simon-lentz/weft/immutable"
)

// registerJSONPathBuiltins installs the `jsonpath` namespace: select and
// selectFirst. Evaluation itself is delegated entirely to
// github.com/theory/jsonpath's RFC 9535 implementation, per §1's "treat
// JsonPath evaluation as a library contract, not something this system
// reimplements" scoping.
func registerJSONPathBuiltins(ns *Namespace) {
	ns.register("select", 2, 2, builtinJSONPathSelect)
	ns.register("selectFirst", 2, 2, builtinJSONPathSelectFirst)
}

func builtinJSONPathSelect(args []immutable.Value) (immutable.Value, error) {
	results, err := jsonPathQuery(args)
	if err != nil {
		return immutable.Value{}, err
	}
	vals := make([]immutable.Value, len(results))
	for i, r := range results {
		v, err := fromNative(r)
		if err != nil {
			return immutable.Value{}, err
		}
		vals[i] = v
	}
	return immutable.NewArr(immutable.NewArray(vals)), nil
}

func builtinJSONPathSelectFirst(args []immutable.Value) (immutable.Value, error) {
	results, err := jsonPathQuery(args)
	if err != nil {
		return immutable.Value{}, err
	}
	if len(results) == 0 {
		return immutable.Null, nil
	}
	return fromNative(results[0])
}

func jsonPathQuery(args []immutable.Value) ([]any, error) {
	query, ok := args[1].Str()
	if !ok {
		return nil, TypeMismatch("String", args[1].PrettyName())
	}
	path, err := jsonpath.Parse(query)
	if err != nil {
		return nil, DomainError("invalid JsonPath expression %q: %s", query, err)
	}
	native, err := toNative(args[0])
	if err != nil {
		return nil, err
	}
	return path.Select(native), nil
}

// toNative converts an immutable.Value to the plain Go values
// (map[string]any, []any, string, float64, bool, nil) that
// github.com/theory/jsonpath operates over.
func toNative(v immutable.Value) (any, error) {
	switch v.Kind() {
	case immutable.KindNull:
		return nil, nil
	case immutable.KindBool:
		b, _ := v.Bool()
		return b, nil
	case immutable.KindNum:
		n, _ := v.Num()
		return n, nil
	case immutable.KindStr:
		s, _ := v.Str()
		return s, nil
	case immutable.KindArr:
		a, _ := v.Arr()
		elems, err := a.Values()
		if err != nil {
			return nil, err
		}
		out := make([]any, len(elems))
		for i, elem := range elems {
			n, err := toNative(elem)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case immutable.KindObj:
		o, _ := v.Obj()
		out := make(map[string]any, len(o.VisibleKeys()))
		for _, k := range o.VisibleKeys() {
			member, ok, err := o.GetVisible(k)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			n, err := toNative(member)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	default:
		return nil, TypeMismatch("Null, Bool, Number, String, Array or Object", v.PrettyName())
	}
}

func fromNative(x any) (immutable.Value, error) {
	switch t := x.(type) {
	case nil:
		return immutable.Null, nil
	case bool:
		return immutable.NewBool(t), nil
	case float64:
		return immutable.NewNum(t), nil
	case int:
		return immutable.NewNum(float64(t)), nil
	case string:
		return immutable.NewStr(t), nil
	case []any:
		vals := make([]immutable.Value, len(t))
		for i, e := range t {
			v, err := fromNative(e)
			if err != nil {
				return immutable.Value{}, err
			}
			vals[i] = v
		}
		return immutable.NewArr(immutable.NewArray(vals)), nil
	case map[string]any:
		b := immutable.NewObjectBuilder()
		for k, e := range t {
			v, err := fromNative(e)
			if err != nil {
				return immutable.Value{}, err
			}
			b.SetValue(k, v)
		}
		return immutable.NewObj(b.Build()), nil
	default:
		return immutable.Value{}, DomainError("jsonpath: unsupported native value of type %T", x)
	}
}
