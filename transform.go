// Package weft implements the public invocation contract of spec.md §6.1:
// transform(script, inputs, outputMediaType) → document.
//
// Compiling script text into an evaluable AST is an external collaborator
// (spec.md §1 scopes the script parser/compiler out of this system), so
// Transform takes the script's already-parsed body as an [expr.Expression]
// alongside the raw script text — the latter supplies only the `/**
// DataSonnet ... */` header comment, which this package parses itself
// (header parsing is a small, self-contained grammar, not the full
// script language).
package weft

import (
	"fmt"

	"github.com/simon-lentz/weft/codec"
	"github.com/simon-lentz/weft/eval"
	"github.com/simon-lentz/weft/expr"
	"github.com/simon-lentz/weft/immutable"
)

// Input is one named input document supplied to a transformation: raw
// bytes plus the media type describing how to decode them. MediaType
// may be empty, in which case the script's header declaration for that
// input name (or an "input *" declaration) supplies it; dataformat
// declarations only contribute default parameters.
type Input struct {
	Data      []byte
	MediaType string
}

// Document is a transformation's result: encoded bytes plus the media
// type they were encoded as.
type Document struct {
	Data      []byte
	MediaType string
}

// Options configures a Transform call.
type Options struct {
	// Codecs resolves the input/output format boundary. A nil Codecs
	// defaults to codec.NewDefaultRegistry() (JSON/XML/CSV/YAML).
	Codecs *codec.Registry
	// Resolver backs readUrl. A nil Resolver means readUrl raises an
	// error for any URL (§4.5 describes it as a best-effort collaborator,
	// not a guaranteed one).
	Resolver eval.Resolver
	// EvalOptions carries additional eval.Option values (eval.WithLogger,
	// eval.WithClock, ...) through to the underlying evaluator, so this
	// package doesn't have to re-declare that plumbing itself.
	EvalOptions []eval.Option
}

// Transform evaluates body against the given inputs, producing a
// document serialized per outputMediaType (or, when it is empty, the
// script header's highest-quality declared output; with neither,
// Transform returns an error), per spec.md §6.1. script supplies only the header comment block; body is
// the already-compiled AST for the expression following it.
func Transform(script string, body expr.Expression, inputs map[string]Input, outputMediaType string) (Document, error) {
	return TransformWith(script, body, inputs, outputMediaType, Options{})
}

// TransformWith is Transform with explicit Options (codec registry,
// readUrl resolver, evaluator options).
func TransformWith(script string, body expr.Expression, inputs map[string]Input, outputMediaType string, opts Options) (Document, error) {
	header, err := codec.ParseHeader(script)
	if err != nil {
		return Document{}, fmt.Errorf("weft: parsing header: %w", err)
	}

	registry := opts.Codecs
	if registry == nil {
		registry = codec.NewDefaultRegistry()
	}

	bindings := make(map[string]immutable.Value, len(inputs))
	for name, in := range inputs {
		document := codec.MediaType{}
		if in.MediaType != "" {
			parsed, err := codec.ParseMediaType(in.MediaType)
			if err != nil {
				return Document{}, fmt.Errorf("weft: input %q media type: %w", name, err)
			}
			document = parsed
		}
		resolved := codec.ResolveInput(header, name, document)
		v, err := registry.ReadValue(in.Data, resolved.String(), nil)
		if err != nil {
			return Document{}, fmt.Errorf("weft: decoding input %q: %w", name, err)
		}
		bindings[name] = v
	}

	evalOpts := append([]eval.Option{eval.WithCodecs(registry)}, opts.EvalOptions...)
	if opts.Resolver != nil {
		evalOpts = append(evalOpts, eval.WithResolver(opts.Resolver))
	}
	evaluator := eval.NewEvaluator(evalOpts...)

	result, err := evaluator.Evaluate(body, eval.NewRootScope(bindings))
	if err != nil {
		return Document{}, fmt.Errorf("weft: evaluating script: %w", err)
	}

	var override *codec.MediaType
	if outputMediaType != "" {
		parsed, err := codec.ParseMediaType(outputMediaType)
		if err != nil {
			return Document{}, fmt.Errorf("weft: output media type: %w", err)
		}
		override = &parsed
	}
	out, ok := codec.ResolveOutput(header, override)
	if !ok {
		return Document{}, fmt.Errorf("weft: no output media type declared or supplied")
	}

	data, err := registry.WriteValue(result, out.String(), nil)
	if err != nil {
		return Document{}, fmt.Errorf("weft: encoding output: %w", err)
	}
	return Document{Data: data, MediaType: out.Index()}, nil
}
