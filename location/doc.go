// Package location provides Position, the source-location type
// eval.Fault attaches to every error it raises.
//
// # Position
//
// Position identifies a point in a UTF-8 encoded source file:
//   - Line: 1-based line number (0 = unknown)
//   - Column: 1-based column counting Unicode code points (runes), not bytes
//   - Byte: 0-based byte offset (-1 = unknown)
//
// Use IsZero() to check for unknown positions, IsKnown() to check for
// valid line/column, and HasByte() to check for a known byte offset.
// UnknownPosition() is the canonical "no position available" value,
// used whenever a Fault is raised without a caller-supplied position.
//
// # Dependencies
//
// This package depends only on the standard library. It does not
// import any other packages, enabling it to be imported by all other
// packages without cycles.
package location
