package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/weft/codec"
	"github.com/simon-lentz/weft/immutable"
)

func TestXMLReadParsesElementsIntoObject(t *testing.T) {
	r := codec.NewDefaultRegistry()
	v, err := r.ReadValue([]byte(`<person><name>Ada</name></person>`), "application/xml", nil)
	require.NoError(t, err)
	o, ok := v.Obj()
	require.True(t, ok)
	person, ok, err := o.GetVisible("person")
	require.NoError(t, err)
	require.True(t, ok)
	po, ok := person.Obj()
	require.True(t, ok)
	name, ok, err := po.GetVisible("name")
	require.NoError(t, err)
	require.True(t, ok)
	s, _ := name.Str()
	assert.Equal(t, "Ada", s)
}

func TestXMLReadInvalidInputErrors(t *testing.T) {
	r := codec.NewDefaultRegistry()
	_, err := r.ReadValue([]byte(`<unclosed>`), "application/xml", nil)
	require.Error(t, err)
}

func TestXMLWriteRequiresObject(t *testing.T) {
	r := codec.NewDefaultRegistry()
	_, err := r.WriteValue(immutable.NewNum(1), "application/xml", nil)
	require.Error(t, err)
}

func TestXMLWriteRoundTrip(t *testing.T) {
	r := codec.NewDefaultRegistry()
	in, err := r.ReadValue([]byte(`<root><x>1</x></root>`), "application/xml", nil)
	require.NoError(t, err)
	out, err := r.WriteValue(in, "application/xml", nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<root>")
	assert.Contains(t, string(out), "<x>1</x>")
}
