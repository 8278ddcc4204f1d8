package types

import (
	"io/fs"
)

// FS is the filesystem interface required for latch operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Displacement operations
	Rename(oldpath, newpath string) error
	Remove(name string) error
	RemoveAll(path string) error

	// Lstat must report the link itself, never what it points at.
	// For testing, memory-backed implementations may fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)
}
