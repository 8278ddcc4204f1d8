// pkg/core/enforce_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: In-memory filesystem via testutil.TestEnvironment
// PURPOSE: Run orchestration: preconditions, isolation, verification,
// exit codes

package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/latch/pkg/core"
	"github.com/arthur-debert/latch/pkg/errors"
	"github.com/arthur-debert/latch/pkg/testutil"
	"github.com/arthur-debert/latch/pkg/types"
)

// tamperFS creates symlinks pointing somewhere other than asked. The
// apply succeeds, so only the verification pass can catch the drift.
type tamperFS struct {
	types.FS
}

func (f *tamperFS) Symlink(oldname, newname string) error {
	return f.FS.Symlink(oldname+".tampered", newname)
}

// failSymlinkFS fails symlink creation for one specific link path.
type failSymlinkFS struct {
	types.FS
	failPath string
	err      error
}

func (f *failSymlinkFS) Symlink(oldname, newname string) error {
	if newname == f.failPath {
		return f.err
	}
	return f.FS.Symlink(oldname, newname)
}

// recordingLock notes acquire/release calls and can refuse acquisition.
type recordingLock struct {
	acquireErr error
	acquired   bool
	released   bool
}

func (l *recordingLock) Acquire() error {
	if l.acquireErr != nil {
		return l.acquireErr
	}
	l.acquired = true
	return nil
}

func (l *recordingLock) Release() error {
	l.released = true
	return nil
}

func TestEnforceCreatesDeclaredLinks(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	src := env.CreateSource("global.md", "shared instructions")
	m := env.Mapping("global", "global.md", ".config/assistant/global.md")

	result, err := core.Enforce(core.EnforceOptions{
		SourceRoot: env.SourceRoot,
		Mappings:   []types.Mapping{m},
		FileSystem: env.FS,
	})
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 1)

	out := result.Outcomes[0]
	assert.Equal(t, types.ActionCreate, out.Action)
	assert.Equal(t, types.LinkCorrect, out.VerifiedState)
	assert.True(t, result.Converged())
	assert.Equal(t, types.EnforceExitOK, result.ExitCode())

	testutil.AssertSymlinkFS(t, env.FS, m.LinkPath, src)
}

func TestEnforceMissingSourceRootIsFatal(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	m := env.Mapping("global", "global.md", ".config/assistant/global.md")

	result, err := core.Enforce(core.EnforceOptions{
		SourceRoot: env.SourceRoot,
		Mappings:   []types.Mapping{m},
		FileSystem: env.FS,
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigMissing))

	testutil.AssertNoEntryFS(t, env.FS, m.LinkPath)
}

func TestEnforceSourceRootMustBeDirectory(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	testutil.CreateFileFS(t, env.FS, env.SourceRoot, "a file where a tree should be")
	m := env.Mapping("global", "global.md", ".config/assistant/global.md")

	_, err := core.Enforce(core.EnforceOptions{
		SourceRoot: env.SourceRoot,
		Mappings:   []types.Mapping{m},
		FileSystem: env.FS,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigMissing))
}

func TestEnforceMissingMappingSourceAbortsWholeRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.CreateSource("global.md", "shared")
	good := env.Mapping("global", "global.md", ".config/assistant/global.md")
	bad := env.Mapping("ghost", "ghost.md", ".config/ghost.md")

	// The healthy mapping is declared first. A fatal precondition
	// still means it must not be touched.
	result, err := core.Enforce(core.EnforceOptions{
		SourceRoot: env.SourceRoot,
		Mappings:   []types.Mapping{good, bad},
		FileSystem: env.FS,
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigMissing))
	assert.Contains(t, err.Error(), "ghost")

	testutil.AssertNoEntryFS(t, env.FS, good.LinkPath)
}

func TestEnforceKeepsDeclarationOrder(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.CreateSource("a.md", "a")
	env.CreateSource("b.md", "b")
	env.CreateSource("c.md", "c")

	mappings := []types.Mapping{
		env.Mapping("alpha", "a.md", ".config/a.md"),
		env.Mapping("beta", "b.md", ".config/b.md"),
		env.Mapping("gamma", "c.md", ".config/c.md"),
	}

	result, err := core.Enforce(core.EnforceOptions{
		SourceRoot: env.SourceRoot,
		Mappings:   mappings,
		FileSystem: env.FS,
	})
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 3)
	for i, want := range []string{"alpha", "beta", "gamma"} {
		assert.Equal(t, want, result.Outcomes[i].Mapping.Name)
	}
}

func TestEnforceContinuesPastFailedMapping(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.CreateSource("a.md", "a")
	env.CreateSource("b.md", "b")
	env.CreateSource("c.md", "c")

	mappings := []types.Mapping{
		env.Mapping("alpha", "a.md", ".config/a.md"),
		env.Mapping("beta", "b.md", ".config/b.md"),
		env.Mapping("gamma", "c.md", ".config/c.md"),
	}

	fs := &failSymlinkFS{FS: env.FS, failPath: mappings[1].LinkPath, err: assert.AnError}
	result, err := core.Enforce(core.EnforceOptions{
		SourceRoot: env.SourceRoot,
		Mappings:   mappings,
		FileSystem: fs,
	})
	require.NoError(t, err)

	require.Len(t, result.StepErrors(), 1)
	assert.Equal(t, "beta", result.StepErrors()[0].Mapping.Name)
	assert.Equal(t, types.EnforceExitPartial, result.ExitCode())

	// Siblings before and after the failure still converged.
	assert.Equal(t, types.LinkCorrect, result.Outcomes[0].VerifiedState)
	assert.Equal(t, types.LinkCorrect, result.Outcomes[2].VerifiedState)
}

func TestEnforceVerificationCatchesSilentDrift(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.CreateSource("global.md", "shared")
	m := env.Mapping("global", "global.md", ".config/assistant/global.md")

	result, err := core.Enforce(core.EnforceOptions{
		SourceRoot: env.SourceRoot,
		Mappings:   []types.Mapping{m},
		FileSystem: &tamperFS{FS: env.FS},
	})
	require.NoError(t, err)

	require.Empty(t, result.StepErrors())
	require.Len(t, result.VerifyFailures(), 1)
	assert.False(t, result.Converged())
	assert.Equal(t, types.EnforceExitFailure, result.ExitCode())
}

func TestEnforceDryRunTouchesNothing(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.CreateSource("global.md", "shared")
	env.CreateSource("zshrc", "central rc")

	absent := env.Mapping("global", "global.md", ".config/assistant/global.md")
	occupied := env.Mapping("zshrc", "zshrc", ".zshrc")
	testutil.CreateFileFS(t, env.FS, occupied.LinkPath, "custom")

	result, err := core.Enforce(core.EnforceOptions{
		SourceRoot: env.SourceRoot,
		Mappings:   []types.Mapping{absent, occupied},
		DryRun:     true,
		FileSystem: env.FS,
	})
	require.NoError(t, err)

	assert.Equal(t, types.ActionCreate, result.Outcomes[0].Action)
	assert.Equal(t, types.ActionBackupLink, result.Outcomes[1].Action)
	assert.Equal(t, types.EnforceExitOK, result.ExitCode())

	// Verification still reports what is actually on disk.
	assert.Equal(t, types.LinkAbsent, result.Outcomes[0].VerifiedState)
	assert.Equal(t, types.LinkOccupied, result.Outcomes[1].VerifiedState)

	testutil.AssertNoEntryFS(t, env.FS, absent.LinkPath)
	testutil.AssertFileContentFS(t, env.FS, occupied.LinkPath, "custom")
}

func TestEnforceIsIdempotent(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.CreateSource("global.md", "shared")
	m := env.Mapping("global", "global.md", ".config/assistant/global.md")

	opts := core.EnforceOptions{
		SourceRoot: env.SourceRoot,
		Mappings:   []types.Mapping{m},
		FileSystem: env.FS,
	}

	first, err := core.Enforce(opts)
	require.NoError(t, err)
	assert.Equal(t, types.ActionCreate, first.Outcomes[0].Action)

	second, err := core.Enforce(opts)
	require.NoError(t, err)
	assert.Equal(t, types.ActionNone, second.Outcomes[0].Action)
	assert.Equal(t, types.EnforceExitOK, second.ExitCode())
}

func TestEnforceHonorsLock(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.CreateSource("global.md", "shared")
	m := env.Mapping("global", "global.md", ".config/assistant/global.md")

	lk := &recordingLock{}
	_, err := core.Enforce(core.EnforceOptions{
		SourceRoot: env.SourceRoot,
		Mappings:   []types.Mapping{m},
		FileSystem: env.FS,
		Lock:       lk,
	})
	require.NoError(t, err)
	assert.True(t, lk.acquired)
	assert.True(t, lk.released)
}

func TestEnforceHeldLockAbortsBeforeAnyWork(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.CreateSource("global.md", "shared")
	m := env.Mapping("global", "global.md", ".config/assistant/global.md")

	held := errors.New(errors.ErrLockHeld, "another run holds the lock")
	result, err := core.Enforce(core.EnforceOptions{
		SourceRoot: env.SourceRoot,
		Mappings:   []types.Mapping{m},
		FileSystem: env.FS,
		Lock:       &recordingLock{acquireErr: held},
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLockHeld))

	testutil.AssertNoEntryFS(t, env.FS, m.LinkPath)
}
