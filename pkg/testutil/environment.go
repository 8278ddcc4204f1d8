// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate test environments with proper dependencies

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/latch/pkg/filesystem"
	"github.com/arthur-debert/latch/pkg/paths"
	"github.com/arthur-debert/latch/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a complete test environment with all dependencies
type TestEnvironment struct {
	// Core paths
	SourceRoot string
	HomeDir    string
	ConfigDir  string
	StateDir   string

	// Core dependencies
	FS    types.FS
	Paths paths.Paths

	// Environment type
	Type EnvType

	// Test context
	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		t:    t,
		Type: envType,
	}

	switch envType {
	case EnvMemoryOnly:
		env.setupMemoryEnvironment()
	case EnvIsolated:
		env.setupIsolatedEnvironment()
	}

	// Set environment variables
	t.Setenv("HOME", env.HomeDir)
	t.Setenv(paths.EnvLatchConfigDir, env.ConfigDir)
	t.Setenv(paths.EnvLatchStateDir, env.StateDir)
	t.Setenv(paths.EnvLatchDataDir, filepath.Join(env.HomeDir, ".local", "share", "latch"))
	t.Setenv(paths.EnvLatchCacheDir, filepath.Join(env.HomeDir, ".cache", "latch"))

	// Ambient scalar overrides would leak into config loading
	for _, name := range []string{"LATCH_SOURCE_ROOT", "LATCH_OVERRIDE_MARKER"} {
		t.Setenv(name, "")
		_ = os.Unsetenv(name)
	}

	// Create core dependencies
	pathsInstance, err := paths.New(env.SourceRoot)
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}
	env.Paths = pathsInstance

	return env
}

// setupMemoryEnvironment configures a pure in-memory environment
func (env *TestEnvironment) setupMemoryEnvironment() {
	env.SourceRoot = "/virtual/central"
	env.HomeDir = "/virtual/home"
	env.ConfigDir = "/virtual/home/.config/latch"
	env.StateDir = "/virtual/home/.local/state/latch"

	// Create memory filesystem. The source root is deliberately not
	// created here: whether it exists is what precondition tests probe,
	// and CreateSource builds it on first use.
	env.FS = filesystem.NewMemory()

	_ = env.FS.MkdirAll(env.HomeDir, 0755)
	_ = env.FS.MkdirAll(env.ConfigDir, 0755)
	_ = env.FS.MkdirAll(env.StateDir, 0755)
}

// setupIsolatedEnvironment configures a real filesystem in temp directory
func (env *TestEnvironment) setupIsolatedEnvironment() {
	tempDir := env.t.TempDir()

	// Set up paths
	env.SourceRoot = filepath.Join(tempDir, "central")
	env.HomeDir = filepath.Join(tempDir, "home")
	env.ConfigDir = filepath.Join(tempDir, "home", ".config", "latch")
	env.StateDir = filepath.Join(tempDir, "home", ".local", "state", "latch")

	// Create real filesystem. As in the memory setup, the source root
	// stays absent until a test creates content under it.
	env.FS = filesystem.NewOS()

	_ = env.FS.MkdirAll(env.HomeDir, 0755)
	_ = env.FS.MkdirAll(env.ConfigDir, 0755)
	_ = env.FS.MkdirAll(env.StateDir, 0755)
}

// CreateSource creates a file under the source root and returns its
// absolute path.
func (env *TestEnvironment) CreateSource(relPath, content string) string {
	env.t.Helper()

	path := filepath.Join(env.SourceRoot, relPath)
	CreateFileFS(env.t, env.FS, path, content)
	return path
}

// LinkPath returns an absolute link path under the environment's home.
func (env *TestEnvironment) LinkPath(relPath string) string {
	return filepath.Join(env.HomeDir, relPath)
}

// Mapping builds a fully resolved mapping from a source file relative to
// the source root and a link path relative to home.
func (env *TestEnvironment) Mapping(name, sourceRel, linkRel string) types.Mapping {
	return types.Mapping{
		Name:     name,
		Source:   filepath.Join(env.SourceRoot, sourceRel),
		LinkPath: env.LinkPath(linkRel),
	}
}
