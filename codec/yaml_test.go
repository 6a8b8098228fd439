package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/weft/codec"
)

func TestYAMLReadScalarsAndNesting(t *testing.T) {
	r := codec.NewDefaultRegistry()
	v, err := r.ReadValue([]byte("name: Ada\nage: 30\ntags:\n  - math\n  - engine\n"), "application/yaml", nil)
	require.NoError(t, err)
	o, ok := v.Obj()
	require.True(t, ok)

	name, _, _ := o.GetVisible("name")
	s, _ := name.Str()
	assert.Equal(t, "Ada", s)

	age, _, _ := o.GetVisible("age")
	n, _ := age.Num()
	assert.Equal(t, 30.0, n)

	tags, _, _ := o.GetVisible("tags")
	arr, ok := tags.Arr()
	require.True(t, ok)
	vals, err := arr.Values()
	require.NoError(t, err)
	require.Len(t, vals, 2)
}

func TestYAMLReadInvalidInputErrors(t *testing.T) {
	r := codec.NewDefaultRegistry()
	_, err := r.ReadValue([]byte("key: [unterminated"), "application/yaml", nil)
	require.Error(t, err)
}

func TestYAMLWriteRoundTrip(t *testing.T) {
	r := codec.NewDefaultRegistry()
	in, err := r.ReadValue([]byte("x: 1\n"), "application/yaml", nil)
	require.NoError(t, err)
	out, err := r.WriteValue(in, "application/yaml", nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "x: 1")
}

func TestYAMLAcceptsXYamlMediaTypeAlias(t *testing.T) {
	r := codec.NewDefaultRegistry()
	v, err := r.ReadValue([]byte("x: 1\n"), "application/x-yaml", nil)
	require.NoError(t, err)
	o, ok := v.Obj()
	require.True(t, ok)
	x, _, _ := o.GetVisible("x")
	n, _ := x.Num()
	assert.Equal(t, 1.0, n)
}
