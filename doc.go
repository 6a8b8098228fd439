// Package weft provides a lazy, side-effect-free data-transformation
// engine for Go applications.
//
// A weft script is a pure expression over a small value model (Null,
// Bool, Num, Str, Arr, Obj, Func) evaluated against named input
// documents and serialized through a pluggable codec registry keyed by
// media type. Evaluation is single-threaded, cooperative, and
// memoizing: a lazy cell computes its value at most once.
//
// # Architecture Overview
//
// The module is organized into layers with strict dependency ordering:
//
//	Foundation tier (no internal dependencies):
//	  - location: Source positions
//	  - immutable: The value model (Null/Bool/Num/Str/Arr/Obj/Func)
//	  - expr: The evaluator's AST contract
//
//	Core library tier:
//	  - eval: Standard library dispatch, combinators, and the
//	    tree-walking evaluator
//	  - codec: Media-type parsing, header parsing, and the reader/
//	    writer registry satisfying eval's CodecProvider seam
//
// # Entry Point
//
// Transform evaluates a compiled script body against named inputs and
// produces a serialized document:
//
//	import "github.com/simon-lentz/weft"
//
//	doc, err := weft.Transform(script, body, map[string]weft.Input{
//	    "payload": {Data: raw, MediaType: "application/json"},
//	}, "application/json")
//	if err != nil {
//	    // header parse error, codec error, or evaluation Fault
//	}
//	// doc.Data, doc.MediaType hold the result
//
// Compiling script text into body (an [github.com/simon-lentz/weft/expr.Expression])
// is an external collaborator — this package parses only the script's
// header comment block itself.
//
// # Subpackages
//
// See the individual package documentation for detailed usage:
//
//   - [github.com/simon-lentz/weft/location]: Source location tracking
//   - [github.com/simon-lentz/weft/immutable]: The value model
//   - [github.com/simon-lentz/weft/expr]: Evaluator AST contract
//   - [github.com/simon-lentz/weft/eval]: Standard library and evaluator
//   - [github.com/simon-lentz/weft/codec]: Media-type/header parsing and codec registry
package weft
