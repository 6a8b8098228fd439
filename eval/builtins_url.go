package eval

import (
	"net/url"

	"github.com/simon-lentz/weft/immutable"
)

// registerURLBuiltins installs the `url` namespace: encode, decode,
// and queryParam, thin wrappers over net/url per §1's scoping of
// datetime/period/crypto/url as platform-primitive adapters.
func registerURLBuiltins(ns *Namespace) {
	ns.register("encode", 1, 1, str1(url.QueryEscape))
	ns.register("decode", 1, 1, strErr1(func(s string) (string, error) {
		out, err := url.QueryUnescape(s)
		if err != nil {
			return "", DomainError("invalid URL-encoded input: %s", err)
		}
		return out, nil
	}))
	ns.register("queryParam", 2, 2, builtinQueryParam)
}

// builtinQueryParam extracts a single parameter from a query string
// (with or without a leading "?"), returning null when absent.
func builtinQueryParam(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	name, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	raw := s
	if len(raw) > 0 && raw[0] == '?' {
		raw = raw[1:]
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return immutable.Value{}, DomainError("invalid query string: %s", err)
	}
	if !values.Has(name) {
		return immutable.Null, nil
	}
	return immutable.NewStr(values.Get(name)), nil
}
