package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/simon-lentz/weft/immutable"
)

// yamlCodec is a thin wrapper over gopkg.in/yaml.v3 — a dependency the
// teacher already carries indirectly (via its test tooling); this codec
// promotes it to direct use. Per spec.md §1, YAML codec internals (anchor/
// alias resolution, style preservation) are the library's concern.
type yamlCodec struct{}

func (yamlCodec) MediaTypes() []string {
	return []string{"application/yaml", "text/yaml", "application/x-yaml"}
}

func (yamlCodec) Read(data []byte, mt MediaType) (immutable.Value, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return immutable.Value{}, fmt.Errorf("codec: invalid yaml: %w", err)
	}
	return fromYAMLAny(raw)
}

func (yamlCodec) Write(v immutable.Value, mt MediaType) ([]byte, error) {
	native, err := toJSONAny(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(native)
}

// fromYAMLAny converts yaml.v3's decoded shape — map[string]any keys,
// but map[any]any can surface for non-string keys — into an
// immutable.Value, rejecting non-string keys since spec.md's Obj is
// string-keyed.
func fromYAMLAny(x any) (immutable.Value, error) {
	switch t := x.(type) {
	case nil:
		return immutable.Null, nil
	case bool:
		return immutable.NewBool(t), nil
	case int:
		return immutable.NewNum(float64(t)), nil
	case float64:
		return immutable.NewNum(t), nil
	case string:
		return immutable.NewStr(t), nil
	case []any:
		vals := make([]immutable.Value, len(t))
		for i, e := range t {
			v, err := fromYAMLAny(e)
			if err != nil {
				return immutable.Value{}, err
			}
			vals[i] = v
		}
		return immutable.NewArr(immutable.NewArray(vals)), nil
	case map[string]any:
		b := immutable.NewObjectBuilder()
		for k, e := range t {
			v, err := fromYAMLAny(e)
			if err != nil {
				return immutable.Value{}, err
			}
			b.SetValue(k, v)
		}
		return immutable.NewObj(b.Build()), nil
	case map[any]any:
		b := immutable.NewObjectBuilder()
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return immutable.Value{}, fmt.Errorf("codec: yaml map has non-string key %v", k)
			}
			v, err := fromYAMLAny(e)
			if err != nil {
				return immutable.Value{}, err
			}
			b.SetValue(ks, v)
		}
		return immutable.NewObj(b.Build()), nil
	default:
		return immutable.Value{}, fmt.Errorf("codec: unsupported decoded yaml value of type %T", x)
	}
}
