package codec

import (
	"strconv"
	"strings"
)

// Header holds the declarations extracted from a script's leading
// /** DataSonnet ... */ comment block (spec.md §3.4):
//
//	input <name> <media-type>   attaches a media type to a named input
//	input * <media-type>        applies to all inputs of that media type
//	output <media-type>         output negotiation candidate
//	dataformat <media-type>     global default parameters
//	preserveOrder=<bool>        recorded in PreserveOrder (default true)
//
// Blank lines and lines starting with "//" are ignored.
type Header struct {
	Inputs        map[string][]MediaType
	InputAll      []MediaType
	Outputs       []MediaType
	DataFormat    []MediaType
	PreserveOrder bool
}

// ParseHeader extracts and parses the header block, if any, from the
// front of script. A script with no header block yields a Header with
// no declarations (PreserveOrder true) and no error. Any other non-blank,
// non-comment line inside the block is a fatal *HeaderParseError.
func ParseHeader(script string) (Header, error) {
	h := Header{Inputs: make(map[string][]MediaType), PreserveOrder: true}

	body, ok := extractBlock(script)
	if !ok {
		return h, nil
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if err := h.parseLine(line); err != nil {
			return Header{}, err
		}
	}
	return h, nil
}

// extractBlock returns the text between "/** DataSonnet" and the closing
// "*/" of the leading block comment, if script begins with one.
func extractBlock(script string) (string, bool) {
	trimmed := strings.TrimLeft(script, " \t\r\n")
	const open = "/** DataSonnet"
	if !strings.HasPrefix(trimmed, open) {
		return "", false
	}
	rest := trimmed[len(open):]
	end := strings.Index(rest, "*/")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

func (h *Header) parseLine(line string) error {
	if v, ok := strings.CutPrefix(line, "preserveOrder="); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return &HeaderParseError{Line: line, Msg: "expected: preserveOrder=true|false"}
		}
		h.PreserveOrder = b
		return nil
	}

	// A media type may carry "; key=value" parameters separated by
	// spaces, so everything after the keyword (and input name) is
	// rejoined before parsing.
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return &HeaderParseError{Line: line, Msg: "expected at least a keyword and a value"}
	}

	switch fields[0] {
	case "input":
		if len(fields) < 3 {
			return &HeaderParseError{Line: line, Msg: "expected: input <name> <media-type>"}
		}
		mt, err := ParseMediaType(strings.Join(fields[2:], " "))
		if err != nil {
			return &HeaderParseError{Line: line, Msg: err.Error()}
		}
		if fields[1] == "*" {
			h.InputAll = append(h.InputAll, mt)
		} else {
			h.Inputs[fields[1]] = append(h.Inputs[fields[1]], mt)
		}
	case "output":
		mt, err := ParseMediaType(strings.Join(fields[1:], " "))
		if err != nil {
			return &HeaderParseError{Line: line, Msg: err.Error()}
		}
		h.Outputs = append(h.Outputs, mt)
	case "dataformat":
		mt, err := ParseMediaType(strings.Join(fields[1:], " "))
		if err != nil {
			return &HeaderParseError{Line: line, Msg: err.Error()}
		}
		h.DataFormat = append(h.DataFormat, mt)
	default:
		return &HeaderParseError{Line: line, Msg: "unrecognized declaration keyword " + fields[0]}
	}
	return nil
}

// DefaultInputMediaType returns the highest-quality media type among the
// declarations for name and all wildcard "input *" declarations, taken
// together (a wildcard with a higher q wins over the name's own). On
// equal quality the earliest candidate wins, the name's own declarations
// coming before the wildcard ones. ok is false if nothing was declared.
func (h Header) DefaultInputMediaType(name string) (MediaType, bool) {
	candidates := append([]MediaType(nil), h.Inputs[name]...)
	candidates = append(candidates, h.InputAll...)
	return highestQuality(candidates)
}

// DefaultOutputMediaType returns the highest-quality declared output
// candidate.
func (h Header) DefaultOutputMediaType() (MediaType, bool) {
	return highestQuality(h.Outputs)
}

// DataFormatDefaults returns the declared default parameters for a given
// media-type index (type/subtype), or a zero MediaType if none declared.
func (h Header) DataFormatDefaults(index string) MediaType {
	for _, mt := range h.DataFormat {
		if mt.Index() == index {
			return mt
		}
	}
	return MediaType{}
}

func highestQuality(candidates []MediaType) (MediaType, bool) {
	if len(candidates) == 0 {
		return MediaType{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Quality() > best.Quality() {
			best = c
		}
	}
	return best, true
}
