package eval

import (
	"encoding/base64"
	"encoding/hex"

	"github.com/simon-lentz/weft/immutable"
)

// registerBinariesBuiltins installs the `binaries` namespace: the
// byte-string codecs spec.md §1 scopes to thin platform wrappers
// (base64/hex in and out of the string representation binary payloads
// travel in at this layer; there is no separate binary Value kind, per
// §2's seven-kind model, so binaries are plain strings end to end).
func registerBinariesBuiltins(ns *Namespace) {
	ns.register("toBase64", 1, 1, str1(func(s string) string {
		return base64.StdEncoding.EncodeToString([]byte(s))
	}))
	ns.register("fromBase64", 1, 1, strErr1(func(s string) (string, error) {
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return "", DomainError("invalid base64 input: %s", err)
		}
		return string(b), nil
	}))
	ns.register("toHex", 1, 1, str1(func(s string) string {
		return hex.EncodeToString([]byte(s))
	}))
	ns.register("fromHex", 1, 1, strErr1(func(s string) (string, error) {
		b, err := hex.DecodeString(s)
		if err != nil {
			return "", DomainError("invalid hex input: %s", err)
		}
		return string(b), nil
	}))
	ns.register("size", 1, 1, builtinBinarySize)
}

func builtinBinarySize(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	return immutable.NewNum(float64(len(s))), nil
}
