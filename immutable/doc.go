// Package immutable implements the value model of the script language: a
// tagged union over six observable kinds (null, boolean, number, string,
// array, object) plus a seventh callable kind (function).
//
// Values are immutable once constructed. Arrays hold a sequence of [Cell]s
// and objects hold a sequence of keyed [Member]s, each wrapping a [Cell]
// rather than a resolved [Value]. A Cell defers its computation until
// [Cell.Force] is first called, then memoizes the result — this is what
// makes `flatten([[1], null])` preserve the unforced null rather than
// failing on it, and what lets an object member reference a sibling member
// that is never actually read.
//
// # Core Types
//
// [Value] is the tagged union itself; [Kind] identifies which of the seven
// variants a Value holds. [Array] and [Object] are the two composite
// variants, both built from [Cell]s so that their elements/members can be
// constructed from suspended computations. [Func] represents the callable
// variant: a closure plus its introspectable parameter list, used by the
// higher-order combinators in package eval to select a call shape (see
// spec.md §4.3).
//
// # Equality and Ordering
//
// [Equal] implements the structural, cross-variant-strict equality defined
// by spec.md §3.2: numbers by value, strings by codepoint, arrays
// element-wise after forcing, objects by identical visible-key sets with
// equal values per key. Ordering is a separate, narrower concern
// implemented in package internal/value, since only {Num, Str, Bool} admit
// a total order.
//
// # Package Dependencies
//
// Per the foundation rule this package imports only the standard library.
// It must not import eval, expr, or codec.
package immutable
