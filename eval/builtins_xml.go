package eval

import (
	"github.com/clbanning/mxj/v2"

	"github.com/simon-lentz/weft/immutable"
)

// registerXMLBuiltins installs the `xml` namespace: parse and write, a
// thin function surface over github.com/clbanning/mxj/v2 per §1's
// scoping — XML codec internals (element ordering, namespace handling,
// attribute conventions) are the library's concern, not this system's.
func registerXMLBuiltins(ns *Namespace) {
	ns.register("parse", 1, 1, builtinXMLParse)
	ns.register("write", 1, 1, builtinXMLWrite)
}

func builtinXMLParse(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	m, err := mxj.NewMapXml([]byte(s))
	if err != nil {
		return immutable.Value{}, CodecFailure(err)
	}
	return fromNative(map[string]any(m))
}

func builtinXMLWrite(args []immutable.Value) (immutable.Value, error) {
	o, ok := args[0].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[0].PrettyName())
	}
	native, err := toNative(immutable.NewObj(o))
	if err != nil {
		return immutable.Value{}, err
	}
	m, ok := native.(map[string]any)
	if !ok {
		return immutable.Value{}, DomainError("xml.write: expected an object body")
	}
	b, err := mxj.Map(m).Xml()
	if err != nil {
		return immutable.Value{}, CodecFailure(err)
	}
	return immutable.NewStr(string(b)), nil
}
