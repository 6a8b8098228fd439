package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/weft/eval"
	"github.com/simon-lentz/weft/immutable"
)

// fakeCodecs is a minimal eval.CodecProvider that round-trips a single
// hard-coded string value, enough to exercise ds.read/ds.write/ds.readUrl
// without pulling in package codec.
type fakeCodecs struct{}

func (fakeCodecs) ReadValue(data []byte, mediaType string, params map[string]string) (immutable.Value, error) {
	return immutable.NewStr(string(data)), nil
}

func (fakeCodecs) WriteValue(v immutable.Value, mediaType string, params map[string]string) ([]byte, error) {
	s, ok := v.Str()
	if !ok {
		return nil, eval.TypeMismatch("String", v.PrettyName())
	}
	return []byte(s), nil
}

type fakeResolver struct {
	data map[string]string
}

func (r fakeResolver) Resolve(url string) ([]byte, error) {
	if b, ok := r.data[url]; ok {
		return []byte(b), nil
	}
	return nil, assertNotFound(url)
}

func assertNotFound(url string) error {
	return &notFoundError{url: url}
}

type notFoundError struct{ url string }

func (e *notFoundError) Error() string { return "not found: " + e.url }

func TestDSReadWriteRoundTrip(t *testing.T) {
	ev := eval.NewEvaluator(eval.WithCodecs(fakeCodecs{}))
	r := ev.Registry()

	v, err := r.Call("ds.read", []immutable.Value{immutable.NewStr(`hello`), immutable.NewStr("application/json")})
	require.NoError(t, err)
	s, _ := v.Str()
	assert.Equal(t, "hello", s)

	out, err := r.Call("ds.write", []immutable.Value{immutable.NewStr("hello"), immutable.NewStr("application/json")})
	require.NoError(t, err)
	s, _ = out.Str()
	assert.Equal(t, "hello", s)
}

func TestDSReadWithoutCodecsIsCodecNotFound(t *testing.T) {
	r := eval.NewEvaluator().Registry()
	_, err := r.Call("ds.read", []immutable.Value{immutable.NewStr("x"), immutable.NewStr("application/json")})
	require.Error(t, err)
}

func TestDSReadURLClasspathHit(t *testing.T) {
	ev := eval.NewEvaluator(
		eval.WithCodecs(fakeCodecs{}),
		eval.WithResolver(fakeResolver{data: map[string]string{"classpath://config.json": "found"}}),
	)
	r := ev.Registry()
	v, err := r.Call("ds.readUrl", []immutable.Value{immutable.NewStr("classpath://config.json")})
	require.NoError(t, err)
	s, _ := v.Str()
	assert.Equal(t, "found", s)
}

func TestDSReadURLClasspathMissFallsBackToNull(t *testing.T) {
	ev := eval.NewEvaluator(
		eval.WithCodecs(fakeCodecs{}),
		eval.WithResolver(fakeResolver{data: map[string]string{}}),
	)
	r := ev.Registry()
	v, err := r.Call("ds.readUrl", []immutable.Value{immutable.NewStr("classpath://missing.json")})
	require.NoError(t, err)
	s, _ := v.Str()
	assert.Equal(t, "null", s)
}

func TestDSReadURLNonClasspathErrorPropagates(t *testing.T) {
	ev := eval.NewEvaluator(
		eval.WithCodecs(fakeCodecs{}),
		eval.WithResolver(fakeResolver{data: map[string]string{}}),
	)
	r := ev.Registry()
	_, err := r.Call("ds.readUrl", []immutable.Value{immutable.NewStr("https://example.com/missing.json")})
	require.Error(t, err)
}
