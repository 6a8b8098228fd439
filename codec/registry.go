package codec

import (
	"github.com/simon-lentz/weft/immutable"
)

// Reader decodes bytes of a media type it advertises into a value.
type Reader interface {
	// MediaTypes lists the (type, subtype) indices this reader handles.
	MediaTypes() []string
	Read(data []byte, mt MediaType) (immutable.Value, error)
}

// Writer encodes a value to bytes of a media type it advertises.
type Writer interface {
	MediaTypes() []string
	Write(v immutable.Value, mt MediaType) ([]byte, error)
}

// Registry is the format boundary named in spec.md §4.5: a set of reader
// and writer plugins selected by (type, subtype), each wrapped here to
// satisfy eval.CodecProvider structurally (ReadValue/WriteValue), so the
// eval package never imports this one.
type Registry struct {
	readers map[string]Reader
	writers map[string]Writer
}

// NewRegistry returns an empty Registry. Use RegisterReader/RegisterWriter
// to install plugins, or NewDefaultRegistry for the built-in JSON/XML/
// CSV/YAML set.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader), writers: make(map[string]Writer)}
}

// NewDefaultRegistry returns a Registry pre-populated with the codecs
// this package implements: JSON (full), XML/CSV/YAML (thin wrappers,
// per spec.md §1's scoping of codec internals as out-of-scope).
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterReader(jsonCodec{})
	r.RegisterWriter(jsonCodec{})
	r.RegisterReader(xmlCodec{})
	r.RegisterWriter(xmlCodec{})
	r.RegisterReader(csvCodec{})
	r.RegisterWriter(csvCodec{})
	r.RegisterReader(yamlCodec{})
	r.RegisterWriter(yamlCodec{})
	return r
}

// RegisterReader installs r under every media-type index it advertises,
// overwriting any previous reader at that index.
func (reg *Registry) RegisterReader(r Reader) {
	for _, idx := range r.MediaTypes() {
		reg.readers[idx] = r
	}
}

// RegisterWriter installs w under every media-type index it advertises.
func (reg *Registry) RegisterWriter(w Writer) {
	for _, idx := range w.MediaTypes() {
		reg.writers[idx] = w
	}
}

// ReadValue implements the eval.CodecProvider seam: parse mediaType,
// merge params over it (the caller's params take precedence, per §3.3's
// document-own-parameters-win rule), and dispatch to the reader
// registered for its index.
func (reg *Registry) ReadValue(data []byte, mediaType string, params map[string]string) (immutable.Value, error) {
	mt, err := ParseMediaType(mediaType)
	if err != nil {
		return immutable.Value{}, err
	}
	mt = withExtraParams(mt, params)
	r, ok := reg.readers[mt.Index()]
	if !ok {
		return immutable.Value{}, &NotFoundError{MediaType: mt.Index()}
	}
	return r.Read(data, mt)
}

// WriteValue implements the eval.CodecProvider seam's write half.
func (reg *Registry) WriteValue(v immutable.Value, mediaType string, params map[string]string) ([]byte, error) {
	mt, err := ParseMediaType(mediaType)
	if err != nil {
		return nil, err
	}
	mt = withExtraParams(mt, params)
	w, ok := reg.writers[mt.Index()]
	if !ok {
		return nil, &NotFoundError{MediaType: mt.Index(), Write: true}
	}
	return w.Write(v, mt)
}

func withExtraParams(mt MediaType, params map[string]string) MediaType {
	for k, v := range params {
		mt = mt.WithParam(k, v)
	}
	return mt
}
