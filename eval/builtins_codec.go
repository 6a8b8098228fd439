package eval

import (
	"strings"

	"github.com/simon-lentz/weft/immutable"
)

// registerCoreCodecBuiltins installs ds.read/ds.write/ds.readUrl, the
// format-boundary entry points named in §4.5. They are thin wrappers
// around the CodecProvider/Resolver seams in options.go — this package
// never imports package codec directly (see options.go's CodecProvider
// doc comment for why).
func registerCoreCodecBuiltins(ns *Namespace, cfg *config) {
	ns.register("read", 2, 3, func(args []immutable.Value) (immutable.Value, error) {
		return builtinRead(cfg, args)
	})
	ns.register("write", 2, 3, func(args []immutable.Value) (immutable.Value, error) {
		return builtinWrite(cfg, args)
	})
	ns.register("readUrl", 1, 1, func(args []immutable.Value) (immutable.Value, error) {
		return builtinReadURL(cfg, args)
	})
}

func paramsFromValue(v immutable.Value) (map[string]string, error) {
	if v.IsNull() {
		return nil, nil
	}
	o, ok := v.Obj()
	if !ok {
		return nil, TypeMismatch("Object", v.PrettyName())
	}
	out := make(map[string]string, len(o.VisibleKeys()))
	for _, k := range o.VisibleKeys() {
		val, _, err := o.GetVisible(k)
		if err != nil {
			return nil, err
		}
		s, ok := val.Str()
		if !ok {
			return nil, TypeMismatch("String", val.PrettyName())
		}
		out[k] = s
	}
	return out, nil
}

func builtinRead(cfg *config, args []immutable.Value) (immutable.Value, error) {
	if cfg.codecs == nil {
		return immutable.Value{}, CodecNotFound("unknown/unknown")
	}
	data, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	mediaType, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	var params map[string]string
	if len(args) == 3 {
		p, err := paramsFromValue(args[2])
		if err != nil {
			return immutable.Value{}, err
		}
		params = p
	}
	return cfg.codecs.ReadValue([]byte(data), mediaType, params)
}

func builtinWrite(cfg *config, args []immutable.Value) (immutable.Value, error) {
	if cfg.codecs == nil {
		return immutable.Value{}, CodecNotFound("unknown/unknown")
	}
	mediaType, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	var params map[string]string
	if len(args) == 3 {
		p, err := paramsFromValue(args[2])
		if err != nil {
			return immutable.Value{}, err
		}
		params = p
	}
	out, err := cfg.codecs.WriteValue(args[0], mediaType, params)
	if err != nil {
		return immutable.Value{}, err
	}
	return immutable.NewStr(string(out)), nil
}

// builtinReadURL implements §4.5's two schemes: classpath:// (resolved
// via the Resolver; a missing resource yields "null", which is then
// JSON-parsed per the spec's documented recovery) and any other URL
// (best-effort fetch, body JSON-parsed).
func builtinReadURL(cfg *config, args []immutable.Value) (immutable.Value, error) {
	url, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	if cfg.resolver == nil {
		return immutable.Value{}, DomainError("readUrl: no resolver configured")
	}
	body, err := cfg.resolver.Resolve(url)
	if err != nil {
		if strings.HasPrefix(url, "classpath://") {
			body = []byte("null")
		} else {
			return immutable.Value{}, err
		}
	}
	if cfg.codecs == nil {
		return immutable.Value{}, CodecNotFound("application/json")
	}
	return cfg.codecs.ReadValue(body, "application/json", nil)
}
