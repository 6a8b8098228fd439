package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/weft/codec"
)

func TestParseMediaTypeBasic(t *testing.T) {
	mt, err := codec.ParseMediaType("application/json")
	require.NoError(t, err)
	assert.Equal(t, "application", mt.Type)
	assert.Equal(t, "json", mt.Subtype)
	assert.Equal(t, "application/json", mt.Index())
}

func TestParseMediaTypeWithParams(t *testing.T) {
	mt, err := codec.ParseMediaType(`application/json; q=0.8; charset="utf-8"`)
	require.NoError(t, err)
	assert.Equal(t, 0.8, mt.Quality())
	v, ok := mt.Param("charset")
	require.True(t, ok)
	assert.Equal(t, "utf-8", v)
}

func TestParseMediaTypeMissingSlashErrors(t *testing.T) {
	_, err := codec.ParseMediaType("not-a-media-type")
	require.Error(t, err)
}

func TestMediaTypeQualityDefaultsToOne(t *testing.T) {
	mt, err := codec.ParseMediaType("text/csv")
	require.NoError(t, err)
	assert.Equal(t, 1.0, mt.Quality())
}

func TestMediaTypeWithParamOverwritesInPlace(t *testing.T) {
	mt := codec.NewMediaType("text", "csv").WithParam("separator", ",").WithParam("separator", ";")
	v, _ := mt.Param("separator")
	assert.Equal(t, ";", v)
	assert.Equal(t, []string{"separator"}, mt.ParamKeys())
}

func TestMediaTypeMergeParamsPrecedence(t *testing.T) {
	base := codec.NewMediaType("text", "csv").WithParam("separator", ",")
	override := codec.NewMediaType("text", "csv").WithParam("separator", ";").WithParam("quote", `"`)
	merged := base.MergeParams(override)
	sep, _ := merged.Param("separator")
	quote, _ := merged.Param("quote")
	assert.Equal(t, ";", sep)
	assert.Equal(t, `"`, quote)
}

func TestMediaTypeStringRoundTrip(t *testing.T) {
	mt, err := codec.ParseMediaType("application/json; indent=2")
	require.NoError(t, err)
	assert.Equal(t, "application/json; indent=2", mt.String())
}
