// pkg/commands/status/status_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: Temp config files, in-memory filesystem
// PURPOSE: Read-only status wiring: config, classification, purity

package status_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	statuscmd "github.com/arthur-debert/latch/pkg/commands/status"
	"github.com/arthur-debert/latch/pkg/errors"
	"github.com/arthur-debert/latch/pkg/paths"
	"github.com/arthur-debert/latch/pkg/testutil"
	"github.com/arthur-debert/latch/pkg/types"
)

func writeRealConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvLatchConfigDir, dir)
	path := filepath.Join(dir, paths.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStatusCommandClassifications(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	src := env.CreateSource("global.md", "shared")
	env.CreateSource("zshrc", "central rc")
	env.CreateSource("gitconfig", "central git")
	writeRealConfig(t, `
source_root = "/virtual/central"

[[link]]
name   = "global"
source = "global.md"
path   = "~/.config/assistant/global.md"

[[link]]
name   = "zshrc"
source = "zshrc"
path   = "~/.zshrc"

[[link]]
name   = "gitconfig"
source = "gitconfig"
path   = "~/.gitconfig"
`)

	// One converged link, one pointing elsewhere, one untouched.
	testutil.CreateSymlinkFS(t, env.FS, src, env.LinkPath(".config/assistant/global.md"))
	testutil.CreateSymlinkFS(t, env.FS, "/old/location/zshrc", env.LinkPath(".zshrc"))

	result, err := statuscmd.Status(statuscmd.StatusOptions{FileSystem: env.FS})
	require.NoError(t, err)

	report := result.Report
	require.Len(t, report.Mappings, 3)
	assert.Equal(t, types.ClassActive, report.Mappings[0].Classification)
	assert.Equal(t, types.ClassMisdirected, report.Mappings[1].Classification)
	assert.Equal(t, "/old/location/zshrc", report.Mappings[1].CurrentTarget)
	assert.Equal(t, types.ClassUnlinked, report.Mappings[2].Classification)
	assert.False(t, report.Converged())
	assert.Nil(t, report.Marker)
}

func TestStatusCommandMarker(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.CreateSource("global.md", "shared")
	writeRealConfig(t, `
source_root = "/virtual/central"
override_marker = "LOCAL_OVERRIDES"
`)

	result, err := statuscmd.Status(statuscmd.StatusOptions{FileSystem: env.FS})
	require.NoError(t, err)
	require.NotNil(t, result.Report.Marker)
	assert.Equal(t, "/virtual/central/LOCAL_OVERRIDES", result.Report.Marker.Path)
	assert.False(t, result.Report.Marker.Present)

	env.CreateSource("LOCAL_OVERRIDES", "machine-local changes live here")
	result, err = statuscmd.Status(statuscmd.StatusOptions{FileSystem: env.FS})
	require.NoError(t, err)
	assert.True(t, result.Report.Marker.Present)
}

func TestStatusCommandIsReadOnly(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.CreateSource("zshrc", "central rc")
	writeRealConfig(t, `
source_root = "/virtual/central"

[[link]]
name   = "zshrc"
source = "zshrc"
path   = "~/.zshrc"
`)
	linkPath := env.LinkPath(".zshrc")
	testutil.CreateFileFS(t, env.FS, linkPath, "custom")

	for i := 0; i < 3; i++ {
		result, err := statuscmd.Status(statuscmd.StatusOptions{FileSystem: env.FS})
		require.NoError(t, err)
		assert.Equal(t, types.ClassUnlinked, result.Report.Mappings[0].Classification)
	}

	// The occupied file survives every status run untouched.
	testutil.AssertFileContentFS(t, env.FS, linkPath, "custom")
}

func TestStatusCommandDoesNotRequireSourceRoot(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	// No source root on disk. Status still reports, since reading the
	// world must work even when the configuration does not match it.
	writeRealConfig(t, `
source_root = "/virtual/central"

[[link]]
name   = "global"
source = "global.md"
path   = "~/.config/assistant/global.md"
`)

	result, err := statuscmd.Status(statuscmd.StatusOptions{FileSystem: env.FS})
	require.NoError(t, err)
	assert.Equal(t, types.ClassUnlinked, result.Report.Mappings[0].Classification)
}

func TestStatusCommandRejectsMalformedConfig(t *testing.T) {
	testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	writeRealConfig(t, `source_root = [boom`)

	_, err := statuscmd.Status(statuscmd.StatusOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}
