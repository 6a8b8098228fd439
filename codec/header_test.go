package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/weft/codec"
)

func TestParseHeaderNoBlockYieldsEmptyHeader(t *testing.T) {
	h, err := codec.ParseHeader("{ foo: 1 }")
	require.NoError(t, err)
	_, ok := h.DefaultOutputMediaType()
	assert.False(t, ok)
}

func TestParseHeaderInputOutputDataformat(t *testing.T) {
	script := `/** DataSonnet
input payload application/json
input * application/xml
output application/json
dataformat application/json; indent=2
*/
{ x: payload.x }`

	h, err := codec.ParseHeader(script)
	require.NoError(t, err)

	mt, ok := h.DefaultInputMediaType("payload")
	require.True(t, ok)
	assert.Equal(t, "application/json", mt.Index())

	mt, ok = h.DefaultInputMediaType("other")
	require.True(t, ok)
	assert.Equal(t, "application/xml", mt.Index())

	out, ok := h.DefaultOutputMediaType()
	require.True(t, ok)
	assert.Equal(t, "application/json", out.Index())

	defaults := h.DataFormatDefaults("application/json")
	indent, _ := defaults.Param("indent")
	assert.Equal(t, "2", indent)
}

func TestParseHeaderHighestQualityWins(t *testing.T) {
	script := `/** DataSonnet
input payload application/json; q=0.5
input payload application/xml; q=0.9
*/
{}`
	h, err := codec.ParseHeader(script)
	require.NoError(t, err)
	mt, ok := h.DefaultInputMediaType("payload")
	require.True(t, ok)
	assert.Equal(t, "application/xml", mt.Index())
}

func TestParseHeaderMalformedLineErrors(t *testing.T) {
	script := `/** DataSonnet
input payload
*/
{}`
	_, err := codec.ParseHeader(script)
	require.Error(t, err)
}

func TestParseHeaderUnrecognizedKeywordErrors(t *testing.T) {
	script := `/** DataSonnet
bogus payload application/json
*/
{}`
	_, err := codec.ParseHeader(script)
	require.Error(t, err)
}
