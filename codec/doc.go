// Package codec implements the format boundary (spec.md §3.3-§4.5):
// media-type parsing and parameter layering, the header-block parser for
// a script's /** DataSonnet ... */ prologue, and a pluggable reader/writer
// Registry keyed by media type that the eval package's CodecProvider seam
// depends on structurally, without either package importing the other.
package codec
