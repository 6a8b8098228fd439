package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/weft/codec"
)

func TestResolveInputUsesDeclaredWhenDocumentHasNoType(t *testing.T) {
	script := `/** DataSonnet
input payload application/json; charset=utf-8
dataformat application/json; indent=2
*/
{}`
	h, err := codec.ParseHeader(script)
	require.NoError(t, err)

	resolved := codec.ResolveInput(h, "payload", codec.MediaType{})
	assert.Equal(t, "application/json", resolved.Index())
	indent, _ := resolved.Param("indent")
	assert.Equal(t, "2", indent)
	charset, _ := resolved.Param("charset")
	assert.Equal(t, "utf-8", charset)
}

func TestResolveInputDocumentParamsWinOverDeclared(t *testing.T) {
	script := `/** DataSonnet
input payload application/json; charset=utf-8
*/
{}`
	h, err := codec.ParseHeader(script)
	require.NoError(t, err)

	doc := codec.NewMediaType("application", "json").WithParam("charset", "latin1")
	resolved := codec.ResolveInput(h, "payload", doc)
	charset, _ := resolved.Param("charset")
	assert.Equal(t, "latin1", charset)
}

func TestResolveOutputOverrideWinsOverHeader(t *testing.T) {
	script := `/** DataSonnet
output application/xml
*/
{}`
	h, err := codec.ParseHeader(script)
	require.NoError(t, err)

	override := codec.NewMediaType("application", "json")
	resolved, ok := codec.ResolveOutput(h, &override)
	require.True(t, ok)
	assert.Equal(t, "application/json", resolved.Index())
}

func TestResolveOutputFallsBackToHeaderDeclaration(t *testing.T) {
	script := `/** DataSonnet
output application/xml
*/
{}`
	h, err := codec.ParseHeader(script)
	require.NoError(t, err)

	resolved, ok := codec.ResolveOutput(h, nil)
	require.True(t, ok)
	assert.Equal(t, "application/xml", resolved.Index())
}

func TestResolveOutputNoDeclarationNoOverride(t *testing.T) {
	h, err := codec.ParseHeader("{}")
	require.NoError(t, err)
	_, ok := codec.ResolveOutput(h, nil)
	assert.False(t, ok)
}
