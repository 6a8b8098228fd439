// Package value provides canonical ordering over [immutable.Value].
//
// # Internal package
//
// This package is internal to the weft module and is not importable by
// external consumers per Go's internal/ package semantics. It backs the
// eval layer's order(), sort(), min(), and max() builtins.
//
// # Ordering
//
// Only three of the seven value kinds participate in a total order:
// booleans, numbers, and strings (false < true; numeric order; then
// lexicographic string order). Arrays, objects, functions, and null are
// not orderable — [ValueOrder] returns an error rather than inventing an
// arbitrary order for them, and ordering across two different orderable
// kinds (e.g. a number against a string) is likewise an error.
//
// Floats are ordered -Inf < finite < +Inf < NaN, with NaN considered
// equal to NaN, so that a slice containing NaN still sorts
// deterministically instead of panicking or comparing inconsistently.
//
// # Stdlib-only
//
// This package depends only on stdlib plus the sibling immutable
// package. It has no third-party dependencies: ordering three primitive
// kinds is arithmetic and string comparison, a concern no pack library
// addresses.
package value
