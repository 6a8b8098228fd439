package eval

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/simon-lentz/weft/immutable"
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
	titleCaser = cases.Title(language.Und)
)

// registerStringsBuiltins installs the `strings` namespace: §4.8's case
// transforms, plus the supplemental breadth SPEC_FULL.md calls for
// (charCode/fromCharCode, pad/repeat, wrap/unwrap, appendIfMissing/
// prependIfMissing).
func registerStringsBuiltins(ns *Namespace) {
	ns.register("upper", 1, 1, str1(func(s string) string { return upperCaser.String(s) }))
	ns.register("lower", 1, 1, str1(func(s string) string { return lowerCaser.String(s) }))
	ns.register("capitalize", 1, 1, strErr1(capitalizeString))
	ns.register("camelize", 1, 1, strErr1(camelizeString))
	ns.register("dasherize", 1, 1, strErr1(func(s string) (string, error) { return joinTokens(tokenize(s), "-"), nil }))
	ns.register("underscore", 1, 1, strErr1(func(s string) (string, error) { return joinTokens(tokenize(s), "_"), nil }))
	ns.register("pluralize", 1, 1, strErr1(pluralize))
	ns.register("singularize", 1, 1, strErr1(singularize))
	ns.register("ordinalize", 1, 1, builtinOrdinalize)

	ns.register("startsWith", 2, 2, builtinStartsWith)
	ns.register("endsWith", 2, 2, builtinEndsWith)
	ns.register("substringBefore", 2, 2, builtinSubstringBefore)
	ns.register("substringAfter", 2, 2, builtinSubstringAfter)
	ns.register("trim", 1, 1, str1(strings.TrimSpace))
	ns.register("split", 2, 2, builtinSplit)
	ns.register("joinBy", 2, 2, builtinJoinBy)
	ns.register("toString", 1, 1, builtinToString)

	ns.register("leftPad", 2, 3, builtinLeftPad)
	ns.register("rightPad", 2, 3, builtinRightPad)
	ns.register("repeat", 2, 2, builtinRepeat)

	ns.register("charCode", 1, 1, builtinCharCode)
	ns.register("fromCharCode", 1, 1, builtinFromCharCode)

	ns.register("appendIfMissing", 2, 2, builtinAppendIfMissing)
	ns.register("prependIfMissing", 2, 2, builtinPrependIfMissing)
	ns.register("wrap", 2, 2, builtinWrap)
	ns.register("unwrap", 2, 2, builtinUnwrap)

	ns.register("isBlank", 1, 1, builtinIsBlank)
	ns.register("isEmpty", 1, 1, builtinIsEmpty)
}

func str1(f func(string) string) BuiltinFunc {
	return func(args []immutable.Value) (immutable.Value, error) {
		s, ok := args[0].Str()
		if !ok {
			return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
		}
		return immutable.NewStr(f(s)), nil
	}
}

func strErr1(f func(string) (string, error)) BuiltinFunc {
	return func(args []immutable.Value) (immutable.Value, error) {
		s, ok := args[0].Str()
		if !ok {
			return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
		}
		out, err := f(s)
		if err != nil {
			return immutable.Value{}, err
		}
		return immutable.NewStr(out), nil
	}
}

// tokenize implements §4.8's shared tokenization rule: split on runs of
// [_\s-]+ and on lowercase→uppercase transitions.
func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			flush()
		}
		cur.WriteRune(r)
	}
	flush()
	return tokens
}

func joinTokens(tokens []string, sep string) string {
	lowered := make([]string, len(tokens))
	for i, t := range tokens {
		lowered[i] = strings.ToLower(t)
	}
	return strings.Join(lowered, sep)
}

// camelizeString drops leading underscores, lowercases the first
// character of the first token, title-cases subsequent tokens, per §4.8.
func camelizeString(s string) (string, error) {
	tokens := tokenize(s)
	if len(tokens) == 0 {
		return "", nil
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(tokens[0]))
	for _, t := range tokens[1:] {
		lower := strings.ToLower(t)
		if lower == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(lower)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(lower[size:])
	}
	return b.String(), nil
}

// capitalizeString yields Title Case with single spaces, per §4.8.
func capitalizeString(s string) (string, error) {
	tokens := tokenize(s)
	titled := make([]string, len(tokens))
	for i, t := range tokens {
		titled[i] = titleCaser.String(strings.ToLower(t))
	}
	return strings.Join(titled, " "), nil
}

// pluralize applies minimal English heuristics per §4.8: y→ies,
// +es for x-ending, default +s. Weekday names are treated as regular.
func pluralize(s string) (string, error) {
	if s == "" {
		return s, nil
	}
	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "y") && len(s) > 1 && !isVowel(rune(lower[len(lower)-2])):
		return s[:len(s)-1] + "ies", nil
	case strings.HasSuffix(lower, "x") || strings.HasSuffix(lower, "s") ||
		strings.HasSuffix(lower, "ch") || strings.HasSuffix(lower, "sh"):
		return s + "es", nil
	default:
		return s + "s", nil
	}
}

// singularize reverses pluralize's heuristics.
func singularize(s string) (string, error) {
	switch {
	case strings.HasSuffix(s, "ies") && len(s) > 3:
		return s[:len(s)-3] + "y", nil
	case strings.HasSuffix(s, "es") && len(s) > 2:
		return s[:len(s)-2], nil
	case strings.HasSuffix(s, "s") && len(s) > 1:
		return s[:len(s)-1], nil
	default:
		return s, nil
	}
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}

// builtinOrdinalize handles teens specially (11/12/13 → th) and
// otherwise chooses st/nd/rd/th by last digit, per §4.8 and the golden
// scenarios in §8.6.
func builtinOrdinalize(args []immutable.Value) (immutable.Value, error) {
	n, ok := args[0].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[0].PrettyName())
	}
	i := int64(n)
	abs := i
	if abs < 0 {
		abs = -abs
	}
	suffix := "th"
	if abs%100 < 11 || abs%100 > 13 {
		switch abs % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return immutable.NewStr(strconv.FormatInt(i, 10) + suffix), nil
}

// builtinStartsWith/EndsWith uppercase both operands before comparing —
// the one Open Question spec.md §9 answers itself ("intentional
// case-insensitivity; document and keep").
func builtinStartsWith(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	prefix, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	return immutable.NewBool(strings.HasPrefix(upperCaser.String(s), upperCaser.String(prefix))), nil
}

func builtinEndsWith(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	suffix, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	return immutable.NewBool(strings.HasSuffix(upperCaser.String(s), upperCaser.String(suffix))), nil
}

func builtinSubstringBefore(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	sep, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	before, _, found := strings.Cut(s, sep)
	if !found {
		return immutable.NewStr(s), nil
	}
	return immutable.NewStr(before), nil
}

// builtinSubstringAfter resolves Open Question #2 (see DESIGN.md): an
// unmatched separator returns the original string unchanged, but an
// empty separator is a distinct case — it returns the string minus its
// first character, not the string unchanged. strings.Cut("", sep)
// reports found=true for sep == "", so the empty case is handled before
// falling through to Cut.
func builtinSubstringAfter(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	sep, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	if sep == "" {
		if s == "" {
			return immutable.NewStr(""), nil
		}
		_, size := utf8.DecodeRuneInString(s)
		return immutable.NewStr(s[size:]), nil
	}
	_, after, found := strings.Cut(s, sep)
	if !found {
		return immutable.NewStr(s), nil
	}
	return immutable.NewStr(after), nil
}

func builtinSplit(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	sep, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	parts := strings.Split(s, sep)
	vals := make([]immutable.Value, len(parts))
	for i, p := range parts {
		vals[i] = immutable.NewStr(p)
	}
	return immutable.NewArr(immutable.NewArray(vals)), nil
}

// builtinJoinBy coerces elements per §4.1: bool → true/false, integer →
// no fraction, non-integer → default double, string → itself; arrays and
// objects are rejected.
func builtinJoinBy(args []immutable.Value) (immutable.Value, error) {
	a, ok := args[0].Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", args[0].PrettyName())
	}
	sep, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	vals, err := a.Values()
	if err != nil {
		return immutable.Value{}, err
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		s, err := coerceJoinElement(v)
		if err != nil {
			return immutable.Value{}, err
		}
		parts[i] = s
	}
	return immutable.NewStr(strings.Join(parts, sep)), nil
}

func coerceJoinElement(v immutable.Value) (string, error) {
	switch v.Kind() {
	case immutable.KindBool:
		b, _ := v.Bool()
		return strconv.FormatBool(b), nil
	case immutable.KindStr, immutable.KindNum:
		s, _ := toScalarString(v)
		return s, nil
	default:
		return "", TypeMismatch("Boolean, Number, or String", v.PrettyName())
	}
}

// builtinToString mirrors joinBy's single-element coercion, per §4.1.
func builtinToString(args []immutable.Value) (immutable.Value, error) {
	s, err := coerceJoinElement(args[0])
	if err != nil {
		return immutable.Value{}, err
	}
	return immutable.NewStr(s), nil
}

func padArg(args []immutable.Value) (string, int, string, error) {
	s, ok := args[0].Str()
	if !ok {
		return "", 0, "", TypeMismatch("String", args[0].PrettyName())
	}
	width, ok := args[1].Num()
	if !ok {
		return "", 0, "", TypeMismatch("Number", args[1].PrettyName())
	}
	pad := " "
	if len(args) == 3 {
		p, ok := args[2].Str()
		if !ok {
			return "", 0, "", TypeMismatch("String", args[2].PrettyName())
		}
		if p != "" {
			pad = p
		}
	}
	return s, int(width), pad, nil
}

func builtinLeftPad(args []immutable.Value) (immutable.Value, error) {
	s, width, pad, err := padArg(args)
	if err != nil {
		return immutable.Value{}, err
	}
	for utf8.RuneCountInString(s) < width {
		s = pad + s
	}
	return immutable.NewStr(s), nil
}

func builtinRightPad(args []immutable.Value) (immutable.Value, error) {
	s, width, pad, err := padArg(args)
	if err != nil {
		return immutable.Value{}, err
	}
	for utf8.RuneCountInString(s) < width {
		s = s + pad
	}
	return immutable.NewStr(s), nil
}

func builtinRepeat(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	n, ok := args[1].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[1].PrettyName())
	}
	if n < 0 {
		return immutable.Value{}, DomainError("repeat: negative count")
	}
	return immutable.NewStr(strings.Repeat(s, int(n))), nil
}

func builtinCharCode(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	if s == "" {
		return immutable.Value{}, DomainError("charCode: empty string")
	}
	r, _ := utf8.DecodeRuneInString(s)
	return immutable.NewNum(float64(r)), nil
}

func builtinFromCharCode(args []immutable.Value) (immutable.Value, error) {
	n, ok := args[0].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[0].PrettyName())
	}
	return immutable.NewStr(string(rune(int32(n)))), nil
}

func builtinAppendIfMissing(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	suffix, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	if strings.HasSuffix(s, suffix) {
		return immutable.NewStr(s), nil
	}
	return immutable.NewStr(s + suffix), nil
}

func builtinPrependIfMissing(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	prefix, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	if strings.HasPrefix(s, prefix) {
		return immutable.NewStr(s), nil
	}
	return immutable.NewStr(prefix + s), nil
}

func builtinWrap(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	wrapper, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	return immutable.NewStr(wrapper + s + wrapper), nil
}

func builtinUnwrap(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	wrapper, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	if wrapper != "" && strings.HasPrefix(s, wrapper) && strings.HasSuffix(s, wrapper) && len(s) >= 2*len(wrapper) {
		return immutable.NewStr(s[len(wrapper) : len(s)-len(wrapper)]), nil
	}
	return immutable.NewStr(s), nil
}
