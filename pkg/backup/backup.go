// Package backup names the safety copies made when a real file or
// directory is displaced from a managed link path.
//
// Names follow <originalPath>.backup-<timestamp> with a second-granularity
// stamp. A second-granularity stamp alone is not collision-free (two
// displacements of the same path within one second, or a stale backup from
// an earlier run), so NameFor checks for existence and disambiguates with
// a numeric suffix before handing the name out. It never returns a name
// that is already taken.
package backup

import (
	"fmt"
	"os"
	"time"

	"github.com/arthur-debert/latch/pkg/errors"
	"github.com/arthur-debert/latch/pkg/logging"
	"github.com/arthur-debert/latch/pkg/types"
)

// TimestampFormat is the second-granularity stamp embedded in backup names
const TimestampFormat = "20060102-150405"

// maxAttempts bounds the disambiguation loop. A path with this many
// same-second backups is a configuration problem, not a naming problem.
const maxAttempts = 100

// Namer produces collision-safe backup names
type Namer struct {
	fs types.FS
}

// New creates a Namer over the given filesystem
func New(fs types.FS) *Namer {
	return &Namer{fs: fs}
}

// NameFor returns an unoccupied backup path for the given original path.
// The base form is <originalPath>.backup-<stamp>; when that name is taken
// a numeric suffix disambiguates (.2, .3, ...). Existence is checked with
// Lstat so dangling symlinks count as occupied names.
func (n *Namer) NameFor(originalPath string, now time.Time) (string, error) {
	logger := logging.GetLogger("backup")

	base := fmt.Sprintf("%s.backup-%s", originalPath, now.Format(TimestampFormat))
	candidate := base

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		_, err := n.fs.Lstat(candidate)
		if err != nil {
			if os.IsNotExist(err) {
				if candidate != base {
					logger.Debug().
						Str("path", originalPath).
						Str("backup", candidate).
						Msg("base backup name taken, using disambiguated name")
				}
				return candidate, nil
			}
			return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to check backup path %s", candidate)
		}

		candidate = fmt.Sprintf("%s.%d", base, attempt+1)
	}

	return "", errors.Newf(errors.ErrBackupCollision,
		"no free backup name for %s after %d attempts", originalPath, maxAttempts)
}
