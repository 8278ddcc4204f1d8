// Package paths provides centralized path handling for latch.
//
// This package implements the XDG Base Directory specification and provides
// a consistent API for all path operations throughout the latch codebase.
// It handles:
//
//   - Source root normalization for the managed configuration tree
//   - XDG directory structure (config, data, cache, state)
//   - Path normalization and tilde expansion
//   - Lock and log file locations
//
// # Environment Variables
//
// The package respects the following environment variables:
//
//   - LATCH_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/latch)
//   - LATCH_DATA_DIR: Override XDG data directory (default: $XDG_DATA_HOME/latch)
//   - LATCH_CACHE_DIR: Override XDG cache directory (default: $XDG_CACHE_HOME/latch)
//   - LATCH_STATE_DIR: Override XDG state directory (default: $XDG_STATE_HOME/latch)
//
// The source root itself is configuration, not discovery: it always comes in
// through New from the loaded config, and the only transformation applied is
// tilde expansion plus conversion to an absolute path.
//
// # Usage
//
//	import "github.com/arthur-debert/latch/pkg/paths"
//
//	p, err := paths.New("~/conf/central")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	root := p.SourceRoot()      // /home/user/conf/central
//	lock := p.LockFilePath()    // $XDG_STATE_HOME/latch/latch.lock
//	src := p.ResolveSource("global.md") // /home/user/conf/central/global.md
package paths
