package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/latch/pkg/errors"
)

// ValidatePath performs basic validation on a path.
// It checks for:
// - Empty paths
// - Null bytes
// - Excessive path length
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	// Check for null bytes
	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Check path length (common filesystem limit)
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ValidateMappingName ensures a mapping name is valid for use in output
// and backup bookkeeping. Mapping names must:
// - Not be empty
// - Not contain path separators
// - Not be reserved names (. or ..)
// - Not contain control characters
func ValidateMappingName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "mapping name cannot be empty")
	}

	// Check for path separators
	if strings.ContainsAny(name, "/\\") {
		return errors.New(errors.ErrInvalidInput, "mapping name cannot contain path separators")
	}

	// Check for reserved names
	if name == "." || name == ".." {
		return errors.New(errors.ErrInvalidInput, "mapping name cannot be '.' or '..'")
	}

	// Check for control characters
	for _, r := range name {
		if r < 32 {
			return errors.New(errors.ErrInvalidInput,
				"mapping name contains control characters")
		}
	}

	return nil
}

// SanitizePath attempts to clean and make a path safe for use.
// It:
// - Expands a leading tilde
// - Removes redundant separators
// - Resolves . and .. elements
func SanitizePath(path string) string {
	// First expand home directory if present
	path = ExpandHome(path)

	// Clean the path using filepath.Clean
	cleaned := filepath.Clean(path)

	// Ensure we don't return an empty string
	if cleaned == "" {
		return "."
	}

	return cleaned
}

// ContainsPath checks if child is contained within parent.
// Both paths are normalized before comparison.
func ContainsPath(parent, child string) bool {
	// Normalize both paths
	parent = SanitizePath(parent)
	child = SanitizePath(child)

	// Try to get relative path
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}

	// If relative path starts with .., child is outside parent
	return !strings.HasPrefix(rel, "..")
}
