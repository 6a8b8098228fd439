package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/weft/eval"
	"github.com/simon-lentz/weft/immutable"
)

func callXML(t *testing.T, name string, args ...immutable.Value) immutable.Value {
	t.Helper()
	r := eval.NewEvaluator().Registry()
	v, err := r.Call("xml."+name, args)
	require.NoError(t, err)
	return v
}

func TestXMLParse(t *testing.T) {
	v := callXML(t, "parse", immutable.NewStr(`<person><name>Ada</name></person>`))
	o, _ := v.Obj()
	person, ok, err := o.GetVisible("person")
	require.NoError(t, err)
	require.True(t, ok)
	personObj, _ := person.Obj()
	name, ok, err := personObj.GetVisible("name")
	require.NoError(t, err)
	require.True(t, ok)
	s, _ := name.Str()
	assert.Equal(t, "Ada", s)
}

func TestXMLParseInvalidIsCodecFailure(t *testing.T) {
	r := eval.NewEvaluator().Registry()
	_, err := r.Call("xml.parse", []immutable.Value{immutable.NewStr("<unclosed>")})
	require.Error(t, err)
}

func TestXMLWriteRoundTrip(t *testing.T) {
	o := objOf([]string{"person"}, []immutable.Value{
		objOf([]string{"name"}, []immutable.Value{immutable.NewStr("Ada")}),
	})
	v := callXML(t, "write", o)
	s, _ := v.Str()
	assert.Contains(t, s, "<name>Ada</name>")

	parsed := callXML(t, "parse", v)
	po, _ := parsed.Obj()
	person, _, _ := po.GetVisible("person")
	personObj, _ := person.Obj()
	name, _, _ := personObj.GetVisible("name")
	s, _ = name.Str()
	assert.Equal(t, "Ada", s)
}

func TestXMLWriteRequiresObject(t *testing.T) {
	r := eval.NewEvaluator().Registry()
	_, err := r.Call("xml.write", []immutable.Value{immutable.NewStr("not an object")})
	require.Error(t, err)
}
