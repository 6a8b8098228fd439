package immutable

import "iter"

// Visibility controls whether an object member participates in visible-key
// iteration (spec.md §3.1). Normal and Unconditional members are visible;
// Hidden members are not, but remain reachable by explicit key lookup.
type Visibility int

const (
	// VisNormal is the default visibility: visible, and suppressed if a
	// later member of the same key overrides it with Hidden.
	VisNormal Visibility = iota
	// VisHidden members are excluded from visible-key iteration and from
	// any operation keyed on "visible keys" (toString, write, keysOf, ...).
	VisHidden
	// VisUnconditional members are always visible, even in contexts that
	// would otherwise suppress a Normal member of the same provenance.
	VisUnconditional
)

// Member is one entry of an [Object]: a visibility flag plus the lazy
// cell producing its value.
type Member struct {
	Visibility Visibility
	cell       Cell
}

// NewMember builds a Member from an already-resolved value.
func NewMember(vis Visibility, v Value) Member {
	return Member{Visibility: vis, cell: NewCell(v)}
}

// NewLazyMember builds a Member from a suspended computation.
func NewLazyMember(vis Visibility, compute func() (Value, error)) Member {
	return Member{Visibility: vis, cell: NewThunk(compute)}
}

// Object is an ordered mapping from string keys to [Member]s.
//
// Visible-key iteration preserves insertion order; this ordering is
// observable and must be stable across all derived objects (spec.md §3.1).
type Object struct {
	keys    []string
	members []Member
	index   map[string]int
}

// NewObject constructs an Object from parallel keys/members slices, in
// the given order. Behavior is undefined if keys contains duplicates; use
// [ObjectBuilder] to build incrementally with overwrite-in-place semantics.
func NewObject(keys []string, members []Member) Object {
	if len(keys) == 0 {
		return Object{}
	}
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		index[k] = i
	}
	return Object{keys: keys, members: members, index: index}
}

// Len returns the total number of members, visible or not.
func (o Object) Len() int { return len(o.keys) }

// Get returns the member value for key, forcing its cell, and whether the
// key exists at all (regardless of visibility).
func (o Object) Get(key string) (Value, bool, error) {
	i, ok := o.index[key]
	if !ok {
		return Value{}, false, nil
	}
	v, err := o.members[i].cell.Force()
	return v, true, err
}

// GetVisible is like Get but treats a Hidden member as absent.
func (o Object) GetVisible(key string) (Value, bool, error) {
	i, ok := o.index[key]
	if !ok || o.members[i].Visibility == VisHidden {
		return Value{}, false, nil
	}
	v, err := o.members[i].cell.Force()
	return v, true, err
}

// Visibility returns the visibility flag for key, if present.
func (o Object) Visibility(key string) (Visibility, bool) {
	i, ok := o.index[key]
	if !ok {
		return VisNormal, false
	}
	return o.members[i].Visibility, true
}

// VisibleKeys returns the keys of Normal/Unconditional members, in
// insertion order.
func (o Object) VisibleKeys() []string {
	keys := make([]string, 0, len(o.keys))
	for i, k := range o.keys {
		if o.members[i].Visibility != VisHidden {
			keys = append(keys, k)
		}
	}
	return keys
}

// AllKeys returns every key, including Hidden ones, in insertion order.
func (o Object) AllKeys() []string {
	return append([]string(nil), o.keys...)
}

// Range iterates all key/member pairs in insertion order, including Hidden
// members. Use [Object.RangeVisible] to skip Hidden members.
func (o Object) Range() iter.Seq2[string, Member] {
	return func(yield func(string, Member) bool) {
		for i, k := range o.keys {
			if !yield(k, o.members[i]) {
				return
			}
		}
	}
}

// RangeVisible iterates visible (Normal/Unconditional) key/member pairs in
// insertion order.
func (o Object) RangeVisible() iter.Seq2[string, Member] {
	return func(yield func(string, Member) bool) {
		for i, k := range o.keys {
			if o.members[i].Visibility == VisHidden {
				continue
			}
			if !yield(k, o.members[i]) {
				return
			}
		}
	}
}

// ObjectBuilder incrementally constructs an [Object], preserving the
// position of a key's first insertion when it is later overwritten (this
// is the convention used by mapEntries/mapObject merging in package eval,
// spec.md §4.3).
type ObjectBuilder struct {
	keys    []string
	members []Member
	index   map[string]int
}

// NewObjectBuilder returns an empty builder.
func NewObjectBuilder() *ObjectBuilder {
	return &ObjectBuilder{index: make(map[string]int)}
}

// Set adds or overwrites the member for key. If key already exists, its
// original position is kept and its member is replaced; otherwise key is
// appended at the end.
func (b *ObjectBuilder) Set(key string, m Member) *ObjectBuilder {
	if i, ok := b.index[key]; ok {
		b.members[i] = m
		return b
	}
	b.index[key] = len(b.keys)
	b.keys = append(b.keys, key)
	b.members = append(b.members, m)
	return b
}

// SetValue is a convenience wrapper around Set for already-resolved values
// with VisNormal visibility.
func (b *ObjectBuilder) SetValue(key string, v Value) *ObjectBuilder {
	return b.Set(key, NewMember(VisNormal, v))
}

// Build finalizes the builder into an immutable Object. The builder must
// not be reused after Build.
func (b *ObjectBuilder) Build() Object {
	return Object{keys: b.keys, members: b.members, index: b.index}
}
