package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/latch/pkg/errors"
)

// Environment variable names
const (
	// EnvLatchConfigDir overrides the XDG config directory for latch
	EnvLatchConfigDir = "LATCH_CONFIG_DIR"

	// EnvLatchDataDir overrides the XDG data directory for latch
	EnvLatchDataDir = "LATCH_DATA_DIR"

	// EnvLatchCacheDir overrides the XDG cache directory for latch
	EnvLatchCacheDir = "LATCH_CACHE_DIR"

	// EnvLatchStateDir overrides the XDG state directory for latch
	EnvLatchStateDir = "LATCH_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
// IMPORTANT: These constants define latch's on-disk footprint and are NOT
// user-configurable. User-configurable paths belong in pkg/config instead.
const (
	// LatchDirName is the directory name for latch-specific files
	LatchDirName = "latch"

	// ConfigFileName is the primary configuration file name
	ConfigFileName = "latch.toml"

	// ConfigFileNameYAML is the alternate configuration file name
	ConfigFileNameYAML = "latch.yaml"

	// LockFileName is the name of the advisory run lock file
	LockFileName = "latch.lock"

	// LogFileName is the name of the log file
	LogFileName = "latch.log"
)

// Paths provides centralized path management for latch
type Paths interface {
	SourceRoot() string
	ConfigDir() string
	DataDir() string
	CacheDir() string
	StateDir() string
	ConfigFilePath() string
	LockFilePath() string
	LogFilePath() string
	ResolveSource(source string) string
	NormalizePath(path string) (string, error)
}

// paths provides centralized path management for latch
type paths struct {
	// sourceRoot is the root of the shared source tree
	sourceRoot string

	// xdgConfig is the XDG config directory
	xdgConfig string

	// xdgData is the XDG data directory
	xdgData string

	// xdgCache is the XDG cache directory
	xdgCache string

	// xdgState is the XDG state directory
	xdgState string
}

// New creates a new Paths instance rooted at the given source tree.
// The root is tilde-expanded and made absolute; it comes from loaded
// configuration, never from discovery.
func New(sourceRoot string) (Paths, error) {
	if sourceRoot == "" {
		return nil, errors.New(errors.ErrInvalidInput, "source root cannot be empty")
	}

	p := &paths{}

	absRoot, err := filepath.Abs(ExpandHome(sourceRoot))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for source root")
	}
	p.sourceRoot = absRoot

	p.xdgConfig = ConfigDir()
	p.xdgData = DataDir()
	p.xdgCache = CacheDir()
	p.xdgState = StateDir()

	return p, nil
}

// ConfigDir returns the latch config directory, respecting environment overrides
func ConfigDir() string {
	if configDir := os.Getenv(EnvLatchConfigDir); configDir != "" {
		return ExpandHome(configDir)
	}
	return filepath.Join(xdg.ConfigHome, LatchDirName)
}

// DataDir returns the latch data directory, respecting environment overrides
func DataDir() string {
	if dataDir := os.Getenv(EnvLatchDataDir); dataDir != "" {
		return ExpandHome(dataDir)
	}
	return filepath.Join(xdg.DataHome, LatchDirName)
}

// CacheDir returns the latch cache directory, respecting environment overrides
func CacheDir() string {
	if cacheDir := os.Getenv(EnvLatchCacheDir); cacheDir != "" {
		return ExpandHome(cacheDir)
	}
	return filepath.Join(xdg.CacheHome, LatchDirName)
}

// StateDir returns the latch state directory, respecting environment overrides.
// XDG libraries predate XDG_STATE_HOME, so it is checked manually.
func StateDir() string {
	if stateDir := os.Getenv(EnvLatchStateDir); stateDir != "" {
		return ExpandHome(stateDir)
	}
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, LatchDirName)
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".local", "state", LatchDirName)
}

// ExpandHome expands ~ to the home directory
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// SourceRoot returns the root of the shared source tree
func (p *paths) SourceRoot() string {
	return p.sourceRoot
}

// ConfigDir returns the XDG config directory for latch
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// DataDir returns the XDG data directory for latch
func (p *paths) DataDir() string {
	return p.xdgData
}

// CacheDir returns the XDG cache directory for latch
func (p *paths) CacheDir() string {
	return p.xdgCache
}

// StateDir returns the XDG state directory for latch
func (p *paths) StateDir() string {
	return p.xdgState
}

// ConfigFilePath returns the default configuration file location
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// LockFilePath returns the advisory run lock location
func (p *paths) LockFilePath() string {
	return filepath.Join(p.xdgState, LockFileName)
}

// LogFilePath returns the log file location
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// ResolveSource resolves a mapping source against the source root.
// Absolute and tilde paths stand alone; relative paths are joined onto
// the root.
func (p *paths) ResolveSource(source string) string {
	expanded := ExpandHome(source)
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded)
	}
	return filepath.Join(p.sourceRoot, expanded)
}

// NormalizePath expands tilde and returns an absolute, cleaned path
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	expanded := ExpandHome(path)
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
	}

	return abs, nil
}
