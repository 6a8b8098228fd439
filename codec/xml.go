package codec

import (
	"fmt"

	"github.com/clbanning/mxj/v2"

	"github.com/simon-lentz/weft/immutable"
)

// xmlCodec is a thin wrapper over github.com/clbanning/mxj/v2, the same
// library builtins_xml.go uses for the `xml` namespace functions — per
// spec.md §1, XML codec internals (element ordering, namespace handling,
// attribute conventions) are this library's concern, not reimplemented
// here.
type xmlCodec struct{}

func (xmlCodec) MediaTypes() []string { return []string{"application/xml", "text/xml"} }

func (xmlCodec) Read(data []byte, mt MediaType) (immutable.Value, error) {
	m, err := mxj.NewMapXml(data)
	if err != nil {
		return immutable.Value{}, fmt.Errorf("codec: invalid xml: %w", err)
	}
	return fromJSONAny(map[string]any(m))
}

func (xmlCodec) Write(v immutable.Value, mt MediaType) ([]byte, error) {
	o, ok := v.Obj()
	if !ok {
		return nil, fmt.Errorf("codec: xml.write expects an Object, got %s", v.PrettyName())
	}
	native, err := toJSONAny(immutable.NewObj(o))
	if err != nil {
		return nil, err
	}
	m, ok := native.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("codec: xml.write expects an object body")
	}
	return mxj.Map(m).Xml()
}
