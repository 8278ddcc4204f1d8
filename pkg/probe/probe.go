// Package probe classifies what currently occupies a managed link path.
//
// Classification is read-only and exhaustive: a path is absent, a symlink
// recording exactly the desired source, a symlink recording anything else
// (including a dangling one), or occupied by a real file or directory.
// The recorded link target is compared as a literal string; no path
// canonicalization or link traversal happens here, so an equivalent-but-
// differently-spelled target counts as wrong.
package probe

import (
	"os"

	"github.com/arthur-debert/latch/pkg/errors"
	"github.com/arthur-debert/latch/pkg/logging"
	"github.com/arthur-debert/latch/pkg/types"
)

// Prober inspects link paths without mutating anything
type Prober struct {
	fs types.FS
}

// New creates a Prober over the given filesystem
func New(fs types.FS) *Prober {
	return &Prober{fs: fs}
}

// Probe reports the state at linkPath relative to the desired source.
// The returned target is the recorded symlink destination when the path
// is a symlink, empty otherwise.
func (p *Prober) Probe(linkPath, source string) (types.LinkState, string, error) {
	logger := logging.GetLogger("probe")

	info, err := p.fs.Lstat(linkPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Trace().Str("linkPath", linkPath).Msg("nothing at link path")
			return types.LinkAbsent, "", nil
		}
		return "", "", errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", linkPath)
	}

	// A real file or directory sits where the link should go. Removing
	// it could lose data, so it is never conflated with a symlink.
	if info.Mode()&os.ModeSymlink == 0 {
		logger.Trace().Str("linkPath", linkPath).Msg("link path occupied by regular entry")
		return types.LinkOccupied, "", nil
	}

	target, err := p.fs.Readlink(linkPath)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read symlink %s", linkPath)
	}

	if target == source {
		logger.Trace().
			Str("linkPath", linkPath).
			Str("target", target).
			Msg("link records desired source")
		return types.LinkCorrect, target, nil
	}

	// Anything else, dangling links included. A symlink is always safe
	// to remove, so this never escalates to occupied.
	logger.Trace().
		Str("linkPath", linkPath).
		Str("target", target).
		Str("want", source).
		Msg("link records a different target")
	return types.LinkWrongTarget, target, nil
}
