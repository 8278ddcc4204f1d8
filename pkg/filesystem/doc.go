// Package filesystem provides the types.FS implementations latch runs
// against: the real OS filesystem for production and an afero-backed
// memory filesystem, extended with symlink recording, for tests.
package filesystem
