package codec

import "fmt"

// ParseError reports a malformed media type string (spec.md §3.2's
// RFC-7231-with-parameters grammar).
type ParseError struct {
	Input string
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("codec: invalid media type %q: %s", e.Input, e.Msg)
}

// HeaderParseError reports a malformed header-block line (spec.md §3.4).
// No recovery is attempted once one occurs.
type HeaderParseError struct {
	Line string
	Msg  string
}

func (e *HeaderParseError) Error() string {
	return fmt.Sprintf("codec: header parse error on line %q: %s", e.Line, e.Msg)
}

// NotFoundError reports that no registered reader or writer advertises
// the requested (type, subtype).
type NotFoundError struct {
	MediaType string
	Write     bool
}

func (e *NotFoundError) Error() string {
	role := "reader"
	if e.Write {
		role = "writer"
	}
	return fmt.Sprintf("codec: no %s registered for media type %q", role, e.MediaType)
}
