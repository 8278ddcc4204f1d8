package types

// Mapping is a single declared pairing of a source file in the managed
// tree and the local path that must link to it. Mappings are declared at
// the start of a run and discarded at the end; the filesystem itself is
// the only durable state.
type Mapping struct {
	// Name identifies the mapping in reports and logs
	Name string

	// Source is the absolute path of the file the link must point to.
	// Configuration resolves relative entries against the source root
	// before a Mapping is constructed.
	Source string

	// LinkPath is the absolute path that must become the symlink
	LinkPath string
}

// LinkState classifies what currently occupies a mapping's link path
type LinkState string

const (
	// LinkAbsent means nothing exists at the link path
	LinkAbsent LinkState = "absent"

	// LinkCorrect means a symlink whose recorded target equals the
	// mapping source exactly
	LinkCorrect LinkState = "correct"

	// LinkWrongTarget means a symlink recording any other target,
	// dangling links included
	LinkWrongTarget LinkState = "wrong-target"

	// LinkOccupied means a regular file or directory sits at the link
	// path and must be displaced to a backup before linking
	LinkOccupied LinkState = "occupied"
)

// Action is the mutation the reconciler chose for a mapping
type Action string

const (
	// ActionNone records an already converged mapping
	ActionNone Action = "none"

	// ActionCreate records parent creation plus a fresh symlink
	ActionCreate Action = "create"

	// ActionRelink records removal of a stale link plus a fresh symlink
	ActionRelink Action = "relink"

	// ActionBackupLink records displacement of existing content to a
	// backup path plus a fresh symlink
	ActionBackupLink Action = "backup-link"
)

// Outcome is the per-mapping record of one reconciliation pass. It is a
// pure return value, produced once per mapping per run and never persisted.
type Outcome struct {
	// Mapping identifies what was reconciled
	Mapping Mapping

	// PriorState is the probed state before any mutation
	PriorState LinkState

	// PriorTarget is the recorded symlink target found before the run,
	// empty unless the prior state was a symlink
	PriorTarget string

	// Action is what the reconciler did, or would do in dry-run mode
	Action Action

	// FinalState is the state the mapping was left in, re-probed after
	// the apply so a partial failure reports what is actually on disk
	FinalState LinkState

	// BackupPath is where displaced content went. Populated if and only
	// if PriorState was LinkOccupied and the move happened.
	BackupPath string

	// VerifiedState is set by the orchestrator's post-run verification
	// pass, which re-probes every mapping after all applies finished
	VerifiedState LinkState

	// Err is the failure that aborted this mapping, nil on success.
	// A failed mapping never prevents sibling mappings from running.
	Err error
}

// Converged reports whether this mapping ended the run verified correct
func (o *Outcome) Converged() bool {
	return o.Err == nil && o.VerifiedState == LinkCorrect
}

// Exit codes for a reconciliation run. EnforceExitPartial distinguishes
// "the run completed but some mappings failed" from fatal configuration
// and verification failures, which share EnforceExitFailure.
const (
	EnforceExitOK      = 0
	EnforceExitFailure = 1
	EnforceExitPartial = 2
)

// RunResult aggregates the outcomes of one enforce run
type RunResult struct {
	// Outcomes holds one entry per mapping, in declaration order
	Outcomes []Outcome

	// DryRun is true when no mutation was performed and every Action
	// reflects what a real run would have done
	DryRun bool
}

// StepErrors returns the outcomes that recorded a per-mapping failure
func (r *RunResult) StepErrors() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// VerifyFailures returns outcomes that reported no step error yet were
// not verified converged by the post-run probe
func (r *RunResult) VerifyFailures() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Err == nil && o.VerifiedState != LinkCorrect {
			failed = append(failed, o)
		}
	}
	return failed
}

// Converged reports whether every mapping ended verified correct
func (r *RunResult) Converged() bool {
	for _, o := range r.Outcomes {
		if !o.Converged() {
			return false
		}
	}
	return true
}

// ExitCode maps the run to the documented process exit codes: 0 when
// fully converged, 2 when the run completed with per-mapping failures,
// 1 when verification failed without any step error. Dry runs report 0
// since nothing was mutated. Fatal configuration errors abort before a
// RunResult exists and exit with EnforceExitFailure at the CLI boundary.
func (r *RunResult) ExitCode() int {
	if r.DryRun {
		return EnforceExitOK
	}
	if len(r.StepErrors()) > 0 {
		return EnforceExitPartial
	}
	if len(r.VerifyFailures()) > 0 {
		return EnforceExitFailure
	}
	return EnforceExitOK
}

// Classification is the operator-facing grouping of link states used by
// the read-only status report
type Classification string

const (
	// ClassActive covers LinkCorrect
	ClassActive Classification = "active"

	// ClassMisdirected covers LinkWrongTarget
	ClassMisdirected Classification = "misdirected"

	// ClassUnlinked covers LinkAbsent and LinkOccupied
	ClassUnlinked Classification = "unlinked"
)

// Classify maps a probed link state to its status classification
func Classify(state LinkState) Classification {
	switch state {
	case LinkCorrect:
		return ClassActive
	case LinkWrongTarget:
		return ClassMisdirected
	default:
		return ClassUnlinked
	}
}

// MappingStatus is one row of the read-only status report
type MappingStatus struct {
	Mapping        Mapping
	State          LinkState
	Classification Classification

	// CurrentTarget is the recorded symlink target when the link path
	// holds a symlink, empty otherwise
	CurrentTarget string
}

// MarkerStatus reports the optional local-override marker file. Absence
// is informational, never an error.
type MarkerStatus struct {
	Path    string
	Present bool
}

// StatusReport is the full result of a status run
type StatusReport struct {
	// Mappings holds one row per declared mapping, in declaration order
	Mappings []MappingStatus

	// Marker is nil when no override marker path is configured
	Marker *MarkerStatus
}

// Converged reports whether every mapping is classified active
func (s *StatusReport) Converged() bool {
	for _, m := range s.Mappings {
		if m.Classification != ClassActive {
			return false
		}
	}
	return true
}
