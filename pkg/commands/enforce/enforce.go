// Package enforce wires configuration, paths, locking, and the core
// run together for the mutating `latch enforce` command.
package enforce

import (
	"time"

	"github.com/arthur-debert/latch/pkg/config"
	"github.com/arthur-debert/latch/pkg/core"
	"github.com/arthur-debert/latch/pkg/errors"
	"github.com/arthur-debert/latch/pkg/lock"
	"github.com/arthur-debert/latch/pkg/logging"
	"github.com/arthur-debert/latch/pkg/paths"
	"github.com/arthur-debert/latch/pkg/types"
)

// EnforceOptions holds options for the enforce command
type EnforceOptions struct {
	// ConfigPath is an explicit config file, empty for the standard
	// search locations
	ConfigPath string

	// DryRun reports every planned action without mutating anything
	DryRun bool

	// FileSystem overrides the real filesystem. When set, the run
	// also defaults to no locking since the injected filesystem
	// carries no shared state.
	FileSystem types.FS

	// Lock overrides the default locking choice
	Lock lock.Locker

	// Now stamps backup names, defaulting to time.Now
	Now func() time.Time
}

// EnforceResult carries the run outcome plus the configuration
// provenance the display layer reports alongside it.
type EnforceResult struct {
	Run *types.RunResult

	SourceRoot   string
	ConfigOrigin config.Origin
	ConfigPath   string
}

// FailureError distills a finished run into the process-level error
// worth reporting, nil when nothing needs saying. Per-mapping step
// errors are already visible on their outcomes, so only the silent
// case gets an error here: every apply claimed success yet the
// verification probe found a mapping out of place.
func (r *EnforceResult) FailureError() error {
	if r.Run == nil || r.Run.DryRun {
		return nil
	}
	if len(r.Run.StepErrors()) > 0 {
		return nil
	}
	if failed := r.Run.VerifyFailures(); len(failed) > 0 {
		return errors.Newf(errors.ErrVerifyFailed,
			"%d of %d mappings failed post-run verification", len(failed), len(r.Run.Outcomes))
	}
	return nil
}

// Enforce loads configuration, resolves the declared links, and runs
// the convergence pass.
func Enforce(opts EnforceOptions) (*EnforceResult, error) {
	logger := logging.GetLogger("commands.enforce")

	loaded, err := config.Load(config.LoadOptions{Path: opts.ConfigPath})
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("origin", string(loaded.Origin)).
		Str("configPath", loaded.Path).
		Msg("Configuration loaded")

	p, err := paths.New(loaded.Config.SourceRoot)
	if err != nil {
		return nil, err
	}

	mappings, err := loaded.Config.Resolve(p)
	if err != nil {
		return nil, err
	}

	locker := opts.Lock
	if locker == nil {
		// Only a mutating run on the real filesystem takes the lock
		if opts.FileSystem == nil && !opts.DryRun {
			locker = lock.New(p.LockFilePath())
		} else {
			locker = lock.Noop()
		}
	}

	run, err := core.Enforce(core.EnforceOptions{
		SourceRoot: p.SourceRoot(),
		Mappings:   mappings,
		DryRun:     opts.DryRun,
		FileSystem: opts.FileSystem,
		Lock:       locker,
		Now:        opts.Now,
	})
	if err != nil {
		return nil, err
	}

	return &EnforceResult{
		Run:          run,
		SourceRoot:   p.SourceRoot(),
		ConfigOrigin: loaded.Origin,
		ConfigPath:   loaded.Path,
	}, nil
}
