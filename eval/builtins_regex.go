package eval

import (
	"regexp"
	"sync"

	"github.com/simon-lentz/weft/immutable"
)

// regexCache memoizes compiled patterns; scripts frequently reuse the
// same literal pattern across many evaluations of a combinator body.
var (
	regexCacheMu sync.Mutex
	regexCache   = map[string]*regexp.Regexp{}
)

func compileRegex(pattern string) (*regexp.Regexp, error) {
	regexCacheMu.Lock()
	re, ok := regexCache[pattern]
	regexCacheMu.Unlock()
	if ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, DomainError("invalid regex pattern %q: %s", pattern, err)
	}
	regexCacheMu.Lock()
	regexCache[pattern] = re
	regexCacheMu.Unlock()
	return re, nil
}

// regexMatches backs the `=~`/`!~` operators (§9's AST contract).
func regexMatches(pattern, s string) (bool, error) {
	re, err := compileRegex(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

// registerRegexBuiltins installs the `regex` namespace: matches, find,
// findAll, groups, replace, and split, the thin function surface over
// regexp that §1 scopes this system to (JsonPath-style evaluation
// internals are out of scope; here the pattern language itself is
// Go's RE2 syntax, delegated entirely to the standard library).
func registerRegexBuiltins(ns *Namespace) {
	ns.register("matches", 2, 2, builtinRegexMatches)
	ns.register("find", 2, 2, builtinRegexFind)
	ns.register("findAll", 2, 2, builtinRegexFindAll)
	ns.register("groups", 2, 2, builtinRegexGroups)
	ns.register("replace", 3, 3, builtinRegexReplace)
	ns.register("split", 2, 2, builtinRegexSplit)
}

func regexArgs(args []immutable.Value) (string, string, error) {
	s, ok := args[0].Str()
	if !ok {
		return "", "", TypeMismatch("String", args[0].PrettyName())
	}
	pattern, ok := args[1].Str()
	if !ok {
		return "", "", TypeMismatch("String", args[1].PrettyName())
	}
	return s, pattern, nil
}

func builtinRegexMatches(args []immutable.Value) (immutable.Value, error) {
	s, pattern, err := regexArgs(args)
	if err != nil {
		return immutable.Value{}, err
	}
	matched, err := regexMatches(pattern, s)
	if err != nil {
		return immutable.Value{}, err
	}
	return immutable.NewBool(matched), nil
}

// builtinRegexFind returns the first match, or null when none is found.
func builtinRegexFind(args []immutable.Value) (immutable.Value, error) {
	s, pattern, err := regexArgs(args)
	if err != nil {
		return immutable.Value{}, err
	}
	re, err := compileRegex(pattern)
	if err != nil {
		return immutable.Value{}, err
	}
	m := re.FindString(s)
	if m == "" && !re.MatchString(s) {
		return immutable.Null, nil
	}
	return immutable.NewStr(m), nil
}

func builtinRegexFindAll(args []immutable.Value) (immutable.Value, error) {
	s, pattern, err := regexArgs(args)
	if err != nil {
		return immutable.Value{}, err
	}
	re, err := compileRegex(pattern)
	if err != nil {
		return immutable.Value{}, err
	}
	matches := re.FindAllString(s, -1)
	vals := make([]immutable.Value, len(matches))
	for i, m := range matches {
		vals[i] = immutable.NewStr(m)
	}
	return immutable.NewArr(immutable.NewArray(vals)), nil
}

// builtinRegexGroups returns the submatches of the first match
// (index 0 is the whole match), or an empty array when there is no
// match, per the teacher's Match builtin shape.
func builtinRegexGroups(args []immutable.Value) (immutable.Value, error) {
	s, pattern, err := regexArgs(args)
	if err != nil {
		return immutable.Value{}, err
	}
	re, err := compileRegex(pattern)
	if err != nil {
		return immutable.Value{}, err
	}
	sub := re.FindStringSubmatch(s)
	vals := make([]immutable.Value, len(sub))
	for i, m := range sub {
		vals[i] = immutable.NewStr(m)
	}
	return immutable.NewArr(immutable.NewArray(vals)), nil
}

func builtinRegexReplace(args []immutable.Value) (immutable.Value, error) {
	s, pattern, err := regexArgs(args)
	if err != nil {
		return immutable.Value{}, err
	}
	replacement, ok := args[2].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[2].PrettyName())
	}
	re, err := compileRegex(pattern)
	if err != nil {
		return immutable.Value{}, err
	}
	return immutable.NewStr(re.ReplaceAllString(s, replacement)), nil
}

func builtinRegexSplit(args []immutable.Value) (immutable.Value, error) {
	s, pattern, err := regexArgs(args)
	if err != nil {
		return immutable.Value{}, err
	}
	re, err := compileRegex(pattern)
	if err != nil {
		return immutable.Value{}, err
	}
	parts := re.Split(s, -1)
	vals := make([]immutable.Value, len(parts))
	for i, p := range parts {
		vals[i] = immutable.NewStr(p)
	}
	return immutable.NewArr(immutable.NewArray(vals)), nil
}
