package codec

import (
	"strconv"
	"strings"
)

// MediaType is a (type, subtype, parameters) triple per spec.md §3.2,
// with parameters carried in insertion order (the order a reader/writer
// sees them, and the order re-serialized back out, matters for
// round-tripping a dataformat declaration).
type MediaType struct {
	Type    string
	Subtype string
	keys    []string
	vals    map[string]string
}

// NewMediaType constructs a MediaType with no parameters.
func NewMediaType(typ, subtype string) MediaType {
	return MediaType{Type: typ, Subtype: subtype}
}

// ParseMediaType parses an RFC-7231-style media range with parameters,
// e.g. "application/json; q=0.9; charset=utf-8".
func ParseMediaType(s string) (MediaType, error) {
	parts := strings.Split(s, ";")
	full := strings.TrimSpace(parts[0])
	slash := strings.IndexByte(full, '/')
	if slash < 0 {
		return MediaType{}, &ParseError{Input: s, Msg: "missing '/' between type and subtype"}
	}
	mt := MediaType{
		Type:    strings.ToLower(strings.TrimSpace(full[:slash])),
		Subtype: strings.ToLower(strings.TrimSpace(full[slash+1:])),
	}
	if mt.Type == "" || mt.Subtype == "" {
		return MediaType{}, &ParseError{Input: s, Msg: "type and subtype must be non-empty"}
	}
	for _, raw := range parts[1:] {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		eq := strings.IndexByte(raw, '=')
		if eq < 0 {
			return MediaType{}, &ParseError{Input: s, Msg: "malformed parameter " + strconv.Quote(raw)}
		}
		key := strings.TrimSpace(raw[:eq])
		val := strings.Trim(strings.TrimSpace(raw[eq+1:]), `"`)
		mt = mt.WithParam(key, val)
	}
	return mt, nil
}

// Index returns the (type, subtype) pair used to key registry lookups;
// two media types with the same Index are the "same" format per §3.2.
func (m MediaType) Index() string {
	return m.Type + "/" + m.Subtype
}

// Param looks up a parameter value.
func (m MediaType) Param(key string) (string, bool) {
	if m.vals == nil {
		return "", false
	}
	v, ok := m.vals[key]
	return v, ok
}

// ParamKeys returns parameter names in insertion order.
func (m MediaType) ParamKeys() []string {
	return append([]string(nil), m.keys...)
}

// WithParam returns a copy of m with key=val set (overwriting in place if
// key already exists, appending to the order otherwise).
func (m MediaType) WithParam(key, val string) MediaType {
	out := m.clone()
	if out.vals == nil {
		out.vals = make(map[string]string)
	}
	if _, exists := out.vals[key]; !exists {
		out.keys = append(out.keys, key)
	}
	out.vals[key] = val
	return out
}

func (m MediaType) clone() MediaType {
	out := MediaType{Type: m.Type, Subtype: m.Subtype}
	if len(m.keys) > 0 {
		out.keys = append([]string(nil), m.keys...)
		out.vals = make(map[string]string, len(m.vals))
		for k, v := range m.vals {
			out.vals[k] = v
		}
	}
	return out
}

// Quality returns the "q" parameter (spec.md §3.2), defaulting to 1.0
// when absent or unparsable.
func (m MediaType) Quality() float64 {
	raw, ok := m.Param("q")
	if !ok {
		return 1.0
	}
	q, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 1.0
	}
	return q
}

// MergeParams layers other's parameters over m's per §3.3 ("declared
// dataformat default parameters < declared per-input/output parameters
// < the document's own parameters" — call this with the
// higher-precedence side as other). "q" itself is not propagated by
// merges; each layer's own quality is meaningless once merged.
func (m MediaType) MergeParams(other MediaType) MediaType {
	out := m.clone()
	for _, k := range other.keys {
		if k == "q" {
			continue
		}
		v, _ := other.Param(k)
		out = out.WithParam(k, v)
	}
	return out
}

// Params returns a plain map snapshot, e.g. for a Reader/Writer that
// doesn't care about ordering.
func (m MediaType) Params() map[string]string {
	if len(m.vals) == 0 {
		return nil
	}
	out := make(map[string]string, len(m.vals))
	for k, v := range m.vals {
		out[k] = v
	}
	return out
}

// String renders the media type back to its wire form, parameters in
// insertion order.
func (m MediaType) String() string {
	var b strings.Builder
	b.WriteString(m.Type)
	b.WriteByte('/')
	b.WriteString(m.Subtype)
	for _, k := range m.keys {
		b.WriteString("; ")
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(m.vals[k])
	}
	return b.String()
}
