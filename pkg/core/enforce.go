package core

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/latch/pkg/errors"
	"github.com/arthur-debert/latch/pkg/filesystem"
	"github.com/arthur-debert/latch/pkg/lock"
	"github.com/arthur-debert/latch/pkg/logging"
	"github.com/arthur-debert/latch/pkg/probe"
	"github.com/arthur-debert/latch/pkg/reconcile"
	"github.com/arthur-debert/latch/pkg/types"
)

// EnforceOptions carries everything one convergence run needs. The
// mapping slice arrives fully resolved; nothing here reads config.
type EnforceOptions struct {
	// SourceRoot must exist and be a directory before anything runs
	SourceRoot string

	// Mappings are reconciled sequentially in the order given
	Mappings []types.Mapping

	// DryRun computes every action without touching the filesystem
	DryRun bool

	// FileSystem defaults to the real OS filesystem when nil
	FileSystem types.FS

	// Lock guards the run. Nil means no locking, which is only right
	// for callers operating on an injected filesystem; command wiring
	// passes the real file lock.
	Lock lock.Locker

	// Now stamps backup names, defaulting to time.Now
	Now func() time.Time
}

// Enforce runs the full convergence pass: preconditions, one
// reconciliation per mapping, then a verification re-probe of every
// link. The returned error is only ever fatal (broken configuration
// or a held lock); per-mapping failures live in the result outcomes.
func Enforce(opts EnforceOptions) (*types.RunResult, error) {
	logger := logging.GetLogger("core.enforce")
	done := logging.LogOperationStart(logger, "enforce")
	defer done()

	logger.Info().
		Str("sourceRoot", opts.SourceRoot).
		Int("mappings", len(opts.Mappings)).
		Bool("dryRun", opts.DryRun).
		Msg("Starting enforce run")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	locker := opts.Lock
	if locker == nil {
		locker = lock.Noop()
	}
	if err := locker.Acquire(); err != nil {
		return nil, err
	}
	defer func() {
		if err := locker.Release(); err != nil {
			logger.Warn().Err(err).Msg("Failed to release run lock")
		}
	}()

	if err := checkPreconditions(fs, opts.SourceRoot, opts.Mappings); err != nil {
		return nil, err
	}

	reconciler := reconcile.NewReconciler(&reconcile.ReconcilerOptions{
		FS:     fs,
		DryRun: opts.DryRun,
		Now:    opts.Now,
	})

	result := &types.RunResult{
		Outcomes: make([]types.Outcome, 0, len(opts.Mappings)),
		DryRun:   opts.DryRun,
	}
	for _, m := range opts.Mappings {
		result.Outcomes = append(result.Outcomes, reconciler.Reconcile(m))
	}

	verify(fs, result, logger)

	logger.Info().
		Bool("converged", result.Converged()).
		Int("stepErrors", len(result.StepErrors())).
		Int("exitCode", result.ExitCode()).
		Msg("Enforce run finished")
	return result, nil
}

// checkPreconditions rejects the whole run before any mutation when
// the source side is broken. A missing source root or mapping source
// means the configuration does not describe this machine, and no
// amount of linking can fix that.
func checkPreconditions(fs types.FS, sourceRoot string, mappings []types.Mapping) error {
	info, err := fs.Stat(sourceRoot)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigMissing,
			"source root %s does not exist", sourceRoot)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrConfigMissing,
			"source root %s is not a directory", sourceRoot)
	}

	for _, m := range mappings {
		if _, err := fs.Stat(m.Source); err != nil {
			return errors.Wrapf(err, errors.ErrConfigMissing,
				"mapping %s: source %s does not exist", m.Name, m.Source)
		}
	}
	return nil
}

// verify re-probes every mapping after all applies settled. The pass
// is read-only, so it runs for dry runs too and records what is
// actually on disk. A probe failure here leaves VerifiedState unset,
// which the result counts as non-converged.
func verify(fs types.FS, result *types.RunResult, logger zerolog.Logger) {
	prober := probe.New(fs)
	for i := range result.Outcomes {
		o := &result.Outcomes[i]
		state, _, err := prober.Probe(o.Mapping.LinkPath, o.Mapping.Source)
		if err != nil {
			logger.Warn().Err(err).
				Str("mapping", o.Mapping.Name).
				Msg("Verification probe failed")
			continue
		}
		o.VerifiedState = state
	}
}
