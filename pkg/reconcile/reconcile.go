// Package reconcile drives managed link paths toward their declared state.
//
// Each mapping is handled independently: the prior state is probed, the
// policy for that state is applied, and the path is probed again so the
// outcome records what was actually left behind. A failure in one mapping
// never stops the others; the caller collects outcomes and aggregates.
//
// The policy per prior state:
//
//	absent        create parent directories, then link
//	correct       nothing
//	wrong-target  remove the stale link, then link (no backup; a symlink
//	              carries no displaceable payload)
//	occupied      move the entry to a collision-safe backup name, then link
//
// Kill-safety: if the process dies between the backup move and the link
// creation, the next run probes the path as absent and simply creates the
// link. No duplicate backup is taken.
package reconcile

import (
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/latch/pkg/backup"
	"github.com/arthur-debert/latch/pkg/errors"
	"github.com/arthur-debert/latch/pkg/logging"
	"github.com/arthur-debert/latch/pkg/probe"
	"github.com/arthur-debert/latch/pkg/types"
	"github.com/rs/zerolog"
)

// ReconcilerOptions contains options for the reconciler
type ReconcilerOptions struct {
	FS     types.FS
	DryRun bool

	// Now supplies backup timestamps; defaults to time.Now
	Now func() time.Time
}

// Reconciler applies the convergence policy to one mapping at a time
type Reconciler struct {
	logger zerolog.Logger
	fs     types.FS
	prober *probe.Prober
	namer  *backup.Namer
	dryRun bool
	now    func() time.Time
}

// NewReconciler creates a new reconciler
func NewReconciler(opts *ReconcilerOptions) *Reconciler {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Reconciler{
		logger: logging.GetLogger("reconcile"),
		fs:     opts.FS,
		prober: probe.New(opts.FS),
		namer:  backup.New(opts.FS),
		dryRun: opts.DryRun,
		now:    now,
	}
}

// planFor maps a prior state to the action that converges it
func planFor(state types.LinkState) types.Action {
	switch state {
	case types.LinkCorrect:
		return types.ActionNone
	case types.LinkAbsent:
		return types.ActionCreate
	case types.LinkWrongTarget:
		return types.ActionRelink
	case types.LinkOccupied:
		return types.ActionBackupLink
	}
	return types.ActionNone
}

// Reconcile converges a single mapping and reports what happened.
// Errors are recorded in the outcome, never returned, so one broken
// mapping cannot shadow the rest of a run.
func (r *Reconciler) Reconcile(m types.Mapping) types.Outcome {
	out := types.Outcome{Mapping: m, Action: types.ActionNone}

	state, target, err := r.prober.Probe(m.LinkPath, m.Source)
	if err != nil {
		out.Err = err
		return out
	}
	out.PriorState = state
	out.PriorTarget = target
	out.Action = planFor(state)

	r.logger.Debug().
		Str("mapping", m.Name).
		Str("linkPath", m.LinkPath).
		Str("priorState", string(state)).
		Str("action", string(out.Action)).
		Bool("dryRun", r.dryRun).
		Msg("Reconciling mapping")

	if out.Action == types.ActionNone {
		out.FinalState = state
		return out
	}

	if r.dryRun {
		// Report the plan; the filesystem stays untouched
		out.FinalState = state
		return out
	}

	if err := r.apply(&out); err != nil {
		out.Err = err
	}

	// Re-probe so the outcome shows what the failure (or success) left
	// behind, e.g. transiently absent after a move that was not followed
	// by a link.
	final, _, probeErr := r.prober.Probe(m.LinkPath, m.Source)
	if probeErr == nil {
		out.FinalState = final
	} else if out.Err == nil {
		out.Err = probeErr
	}

	return out
}

// apply performs the mutating steps for the planned action
func (r *Reconciler) apply(out *types.Outcome) error {
	m := out.Mapping

	switch out.PriorState {
	case types.LinkAbsent:
		r.logger.Info().
			Str("mapping", m.Name).
			Str("linkPath", m.LinkPath).
			Msg("Creating link")
		return r.createLink(m)

	case types.LinkWrongTarget:
		r.logger.Info().
			Str("mapping", m.Name).
			Str("linkPath", m.LinkPath).
			Str("staleTarget", out.PriorTarget).
			Msg("Relinking")
		if err := r.fs.Remove(m.LinkPath); err != nil {
			return errors.Wrapf(err, codeFor(err, errors.ErrLinkRemove),
				"failed to remove stale link %s", m.LinkPath)
		}
		return r.createLink(m)

	case types.LinkOccupied:
		backupPath, err := r.namer.NameFor(m.LinkPath, r.now())
		if err != nil {
			return err
		}
		r.logger.Info().
			Str("mapping", m.Name).
			Str("linkPath", m.LinkPath).
			Str("backup", backupPath).
			Msg("Backing up existing entry and linking")
		if err := r.fs.Rename(m.LinkPath, backupPath); err != nil {
			return errors.Wrapf(err, codeFor(err, errors.ErrBackupMove),
				"failed to move %s to backup %s", m.LinkPath, backupPath)
		}
		// Recorded only once the displaced content has landed
		out.BackupPath = backupPath
		return r.createLink(m)
	}

	return nil
}

// createLink ensures the parent directory exists and records the source
// at the link path
func (r *Reconciler) createLink(m types.Mapping) error {
	parentDir := filepath.Dir(m.LinkPath)
	if err := r.fs.MkdirAll(parentDir, 0755); err != nil {
		return errors.Wrapf(err, codeFor(err, errors.ErrDirCreate),
			"failed to create parent directory for %s", m.LinkPath)
	}

	if err := r.fs.Symlink(m.Source, m.LinkPath); err != nil {
		return errors.Wrapf(err, codeFor(err, errors.ErrSymlinkCreate),
			"failed to link %s to %s", m.LinkPath, m.Source)
	}

	return nil
}

// codeFor keeps permission failures distinguishable from ordinary ones
func codeFor(err error, fallback errors.ErrorCode) errors.ErrorCode {
	if os.IsPermission(err) {
		return errors.ErrPermission
	}
	return fallback
}
