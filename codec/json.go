package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/simon-lentz/weft/immutable"
)

// jsonCodec implements Reader and Writer for application/json, grounded
// on the teacher's adapter/json package: jsonc preprocessing by default
// (comments/trailing commas tolerated) and json.Decoder.UseNumber() to
// avoid float64 precision loss before this package's own normalization
// takes over (spec.md's Num is float64-only, so json.Number collapses to
// float64 rather than the teacher's int64-or-float64 split).
type jsonCodec struct{}

func (jsonCodec) MediaTypes() []string { return []string{"application/json", "text/json"} }

func (jsonCodec) Read(data []byte, mt MediaType) (immutable.Value, error) {
	strict := false
	if v, ok := mt.Param("strict"); ok && v == "true" {
		strict = true
	}
	processed := data
	if !strict {
		processed = jsonc.ToJSON(data)
	}
	dec := json.NewDecoder(bytes.NewReader(processed))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return immutable.Value{}, fmt.Errorf("codec: invalid json: %w", err)
	}
	return fromJSONAny(raw)
}

func (jsonCodec) Write(v immutable.Value, mt MediaType) ([]byte, error) {
	native, err := toJSONAny(v)
	if err != nil {
		return nil, err
	}
	if indent, ok := mt.Param("indent"); ok && indent != "" {
		return json.MarshalIndent(native, "", indent)
	}
	return json.Marshal(native)
}

// fromJSONAny converts the output of a json.Decoder (with UseNumber) into
// an immutable.Value, collapsing json.Number to float64 per spec.md's
// Num kind.
func fromJSONAny(x any) (immutable.Value, error) {
	switch t := x.(type) {
	case nil:
		return immutable.Null, nil
	case bool:
		return immutable.NewBool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return immutable.Value{}, fmt.Errorf("codec: invalid json number %q: %w", t.String(), err)
		}
		return immutable.NewNum(f), nil
	case string:
		return immutable.NewStr(t), nil
	case []any:
		vals := make([]immutable.Value, len(t))
		for i, e := range t {
			v, err := fromJSONAny(e)
			if err != nil {
				return immutable.Value{}, err
			}
			vals[i] = v
		}
		return immutable.NewArr(immutable.NewArray(vals)), nil
	case map[string]any:
		b := immutable.NewObjectBuilder()
		for k, e := range t {
			v, err := fromJSONAny(e)
			if err != nil {
				return immutable.Value{}, err
			}
			b.SetValue(k, v)
		}
		return immutable.NewObj(b.Build()), nil
	default:
		return immutable.Value{}, fmt.Errorf("codec: unsupported decoded json value of type %T", x)
	}
}

// toJSONAny converts an immutable.Value into the plain Go values
// encoding/json knows how to marshal.
func toJSONAny(v immutable.Value) (any, error) {
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
		for i, e := range elems {
			n, err := toJSONAny(e)
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
			n, err := toJSONAny(member)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("codec: cannot serialize value of kind %s to json", v.PrettyName())
	}
}
