package eval

import (
	"fmt"

	"github.com/simon-lentz/weft/location"
)

// Kind classifies a Fault by the error taxonomy in the engine's error
// handling design: TypeMismatch, ArityMismatch, DomainError,
// CodecNotFound, CodecFailure, and HeaderParseError.
type Kind int

const (
	// KindTypeMismatch indicates a value's variant is wrong for the
	// operator that received it.
	KindTypeMismatch Kind = iota
	// KindArityMismatch indicates a user callback has the wrong
	// parameter count for the combinator calling it.
	KindArityMismatch
	// KindDomainError indicates numerically or structurally invalid
	// input: a bad base conversion, an empty array to min/max, etc.
	KindDomainError
	// KindCodecNotFound indicates no registered plugin advertises the
	// requested media type.
	KindCodecNotFound
	// KindCodecFailure indicates a codec plugin raised its own error.
	KindCodecFailure
	// KindHeaderParseError indicates a malformed header block.
	KindHeaderParseError
)

// String returns a human-readable name for the Kind.
func (k Kind) String() string {
	switch k {
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindArityMismatch:
		return "ArityMismatch"
	case KindDomainError:
		return "DomainError"
	case KindCodecNotFound:
		return "CodecNotFound"
	case KindCodecFailure:
		return "CodecFailure"
	case KindHeaderParseError:
		return "HeaderParseError"
	default:
		return "Unknown"
	}
}

// Fault is the error type produced anywhere in the evaluator or standard
// library. It carries the taxonomy Kind, a message, and the source
// position supplied by the caller (typically the script compiler) —
// per spec.md §3.5, an error is message + enclosing source position; the
// library itself never catches a Fault, it only raises one.
type Fault struct {
	Kind Kind
	Msg  string
	Pos  location.Position
	// Cause, when non-nil, is an underlying error this Fault wraps
	// (e.g. a codec plugin failure).
	Cause error
}

// NewFault constructs a Fault with an unknown source position. Callers
// that have a position (the compiler, or an evaluator frame tracking
// one) should set Pos directly or use NewFaultAt.
func NewFault(kind Kind, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Msg: fmt.Sprintf(format, args...), Pos: location.UnknownPosition()}
}

// NewFaultAt constructs a Fault at a known source position.
func NewFaultAt(kind Kind, pos location.Position, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

func (f *Fault) Error() string {
	if f.Pos.IsZero() {
		return f.Msg
	}
	return fmt.Sprintf("%s (at line %d, column %d)", f.Msg, f.Pos.Line, f.Pos.Column)
}

func (f *Fault) Unwrap() error { return f.Cause }

// TypeMismatch builds the canonical "Expected <kinds>, got: <prettyName>"
// message required by §4.2 rule 1 and the §7 TypeMismatch format.
func TypeMismatch(expectedKinds, gotPrettyName string) *Fault {
	return NewFault(KindTypeMismatch, "Expected %s, got: %s", expectedKinds, gotPrettyName)
}

// ArityMismatch builds the canonical callback-arity error required by
// §4.3: "Expected embedded function to have <allowed> parameters,
// received: N".
func ArityMismatch(allowed string, received int) *Fault {
	return NewFault(KindArityMismatch, "Expected embedded function to have %s parameters, received: %d", allowed, received)
}

// DomainError builds a KindDomainError fault.
func DomainError(format string, args ...any) *Fault {
	return NewFault(KindDomainError, format, args...)
}

// CodecNotFound builds the canonical "No suitable plugin found for mime
// type: <type>/<subtype>" message required by §4.5/§7.
func CodecNotFound(mediaType string) *Fault {
	return NewFault(KindCodecNotFound, "No suitable plugin found for mime type: %s", mediaType)
}

// CodecFailure wraps an underlying plugin error without transforming it,
// per §7's "the engine does not transform these" policy.
func CodecFailure(cause error) *Fault {
	return &Fault{Kind: KindCodecFailure, Msg: cause.Error(), Pos: location.UnknownPosition(), Cause: cause}
}

// HeaderParseError builds a KindHeaderParseError fault.
func HeaderParseError(format string, args ...any) *Fault {
	return NewFault(KindHeaderParseError, format, args...)
}
