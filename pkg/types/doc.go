// Package types defines the core types and interfaces used throughout latch.
// This includes the Mapping declaration, the LinkState classification, and
// the Outcome and report structures produced by a reconciliation run.
//
// # Link Model
//
// latch keeps a set of declared mappings converged: for each mapping the
// link path must be a symbolic link whose recorded target is exactly the
// mapping's source path. Correctness is a string comparison against the
// link's recorded target, never a resolved-path comparison, so a link
// authored by hand with an equivalent but differently spelled target is
// reported as misdirected rather than silently accepted.
//
// # State Classification
//
// Every link path is in exactly one of four states:
//
//  1. Absent - nothing exists at the link path
//  2. Correct - a symlink recording exactly the desired source
//  3. WrongTarget - a symlink recording anything else, including a
//     dangling link; removing it loses no data
//  4. Occupied - a regular file or directory; displacing it requires
//     a backup first
//
// A dangling symlink is never Absent and never Occupied. It carries no
// payload, so reconciliation may remove it without a backup, but it does
// occupy the path and must not be treated as missing.
package types
