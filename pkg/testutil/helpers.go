package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/latch/pkg/types"
)

// Helpers mirroring the OS-level ones in testutil.go, but operating on a
// types.FS so memory-backed tests can build and inspect trees.

// CreateFileFS creates a file with the given content on fs.
// It fails the test if the file cannot be created.
func CreateFileFS(t *testing.T, fs types.FS, path, content string) {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := fs.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
}

// CreateDirFS creates a directory (and parents) on fs.
func CreateDirFS(t *testing.T, fs types.FS, path string) {
	t.Helper()

	if err := fs.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}
}

// CreateSymlinkFS creates a symbolic link on fs pointing to target.
func CreateSymlinkFS(t *testing.T, fs types.FS, target, link string) {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatalf("Failed to create parent directory for symlink %s: %v", link, err)
	}

	if err := fs.Symlink(target, link); err != nil {
		t.Fatalf("Failed to create symlink %s -> %s: %v", link, target, err)
	}
}

// ReadFileFS reads the content of a file on fs as a string.
func ReadFileFS(t *testing.T, fs types.FS, path string) string {
	t.Helper()

	content, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	return string(content)
}

// SymlinkExistsFS checks if a path on fs is a symbolic link.
func SymlinkExistsFS(t *testing.T, fs types.FS, path string) bool {
	t.Helper()

	info, err := fs.Lstat(path)
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeSymlink != 0
}

// AssertSymlinkFS checks that a symlink on fs points to the expected target.
func AssertSymlinkFS(t *testing.T, fs types.FS, link, expectedTarget string) {
	t.Helper()

	if !SymlinkExistsFS(t, fs, link) {
		t.Fatalf("Symlink %s does not exist", link)
	}

	actualTarget, err := fs.Readlink(link)
	if err != nil {
		t.Fatalf("Failed to read symlink %s: %v", link, err)
	}
	if actualTarget != expectedTarget {
		t.Errorf("Symlink %s target mismatch\nExpected: %s\nActual: %s", link, expectedTarget, actualTarget)
	}
}

// AssertFileContentFS checks that a file on fs has the expected content.
func AssertFileContentFS(t *testing.T, fs types.FS, path, expected string) {
	t.Helper()

	actual := ReadFileFS(t, fs, path)
	if actual != expected {
		t.Errorf("File %s content mismatch\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertNoEntryFS checks that nothing exists at path on fs, not even a
// dangling symlink.
func AssertNoEntryFS(t *testing.T, fs types.FS, path string) {
	t.Helper()

	if _, err := fs.Lstat(path); err == nil {
		t.Errorf("Entry %s exists but should not", path)
	}
}
