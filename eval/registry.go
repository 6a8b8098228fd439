package eval

import (
	"strings"

	"github.com/simon-lentz/weft/immutable"
)

// BuiltinFunc is the signature every standard-library entry implements.
// Arguments arrive already forced to [immutable.Value] (laziness below
// that point — e.g. inside an Array's cells — is preserved by the Value
// model itself; a combinator that must not force an element simply never
// calls Cell.Force on it).
type BuiltinFunc func(args []immutable.Value) (immutable.Value, error)

// builtinDef describes one registered entry: its arity bounds and
// implementation. maxArgs of -1 means unlimited.
type builtinDef struct {
	name    string
	minArgs int
	maxArgs int
	fn      BuiltinFunc
}

// Namespace is a named collection of built-in functions, mirroring
// spec.md §6.4's `ds.<name>` namespace convention — grounded on the
// teacher's builtinRegistry/register/lookupBuiltin pattern
// (instance/eval/builtins.go), generalized from one flat registry to one
// per namespace so "strings.upper" and a hypothetical future "arrays" or
// "objects" function of the same name never collide.
type Namespace struct {
	name string
	fns  map[string]builtinDef
}

func newNamespace(name string) *Namespace {
	return &Namespace{name: name, fns: make(map[string]builtinDef)}
}

func (ns *Namespace) register(name string, minArgs, maxArgs int, fn BuiltinFunc) {
	ns.fns[strings.ToLower(name)] = builtinDef{name: name, minArgs: minArgs, maxArgs: maxArgs, fn: fn}
}

func (ns *Namespace) lookup(name string) (builtinDef, bool) {
	d, ok := ns.fns[strings.ToLower(name)]
	return d, ok
}

// call validates arity and invokes the named function.
func (ns *Namespace) call(name string, args []immutable.Value) (immutable.Value, error) {
	def, ok := ns.lookup(name)
	if !ok {
		return immutable.Value{}, NewFault(KindTypeMismatch, "unknown function: %s.%s", ns.name, name)
	}
	if len(args) < def.minArgs || (def.maxArgs >= 0 && len(args) > def.maxArgs) {
		return immutable.Value{}, DomainError("wrong number of arguments to %s.%s: got %d", ns.name, name, len(args))
	}
	return def.fn(args)
}

// Registry holds every namespace exposed under ds: the unqualified root
// namespace (core array/object/string primitives) plus the 13 nested
// namespaces named in spec.md §6.4.
type Registry struct {
	root       *Namespace
	namespaces map[string]*Namespace
}

// NewRegistry builds a Registry with every standard-library namespace
// registered, using cfg for the builtins that need ambient
// configuration (ds.read/ds.write/readUrl need the CodecProvider and
// Resolver; ds.uuid and math.random need no configuration). Pass an empty &config{} via applyOptions
// when no options are needed.
func NewRegistry(cfg *config) *Registry {
	r := &Registry{
		root:       newNamespace("ds"),
		namespaces: make(map[string]*Namespace),
	}
	registerCoreBuiltins(r.root, cfg)

	for _, name := range []string{
		"strings", "arrays", "objects", "numbers", "math",
		"datetime", "period", "binaries", "crypto", "url",
		"jsonpath", "regex", "xml",
	} {
		ns := newNamespace(name)
		r.namespaces[name] = ns
	}
	registerStringsBuiltins(r.namespaces["strings"])
	registerArraysBuiltins(r.namespaces["arrays"])
	registerObjectsBuiltins(r.namespaces["objects"])
	registerNumbersBuiltins(r.namespaces["numbers"])
	registerMathBuiltins(r.namespaces["math"])
	registerDatetimeBuiltins(r.namespaces["datetime"])
	registerPeriodBuiltins(r.namespaces["period"])
	registerBinariesBuiltins(r.namespaces["binaries"])
	registerCryptoBuiltins(r.namespaces["crypto"])
	registerURLBuiltins(r.namespaces["url"])
	registerJSONPathBuiltins(r.namespaces["jsonpath"])
	registerRegexBuiltins(r.namespaces["regex"])
	registerXMLBuiltins(r.namespaces["xml"])
	return r
}

// Call dispatches a qualified call such as "map" (root) or "strings.upper"
// (namespaced) to its implementation. A leading "ds." is optional, so
// "ds.map" and "ds.strings.upper" resolve the same way.
func (r *Registry) Call(qualifiedName string, args []immutable.Value) (immutable.Value, error) {
	ns, name := r.splitName(qualifiedName)
	return ns.call(name, args)
}

// Lookup reports whether qualifiedName resolves to a registered builtin,
// without invoking it, returning the builtin's registered name.
func (r *Registry) Lookup(qualifiedName string) (string, bool) {
	ns, name := r.splitName(qualifiedName)
	def, ok := ns.lookup(name)
	if !ok {
		return "", false
	}
	return def.name, true
}

func (r *Registry) splitName(qualifiedName string) (*Namespace, string) {
	if len(qualifiedName) > 3 && strings.EqualFold(qualifiedName[:3], "ds.") {
		qualifiedName = qualifiedName[3:]
	}
	if i := strings.IndexByte(qualifiedName, '.'); i >= 0 {
		nsName, fn := qualifiedName[:i], qualifiedName[i+1:]
		if ns, ok := r.namespaces[strings.ToLower(nsName)]; ok {
			return ns, fn
		}
	}
	return r.root, qualifiedName
}
