// pkg/config/config_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None (in-memory structs, temp HOME)
// PURPOSE: Schema validation, mapping resolution, starter generation

package config

import (
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/latch/pkg/errors"
	"github.com/arthur-debert/latch/pkg/paths"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "~/conf/central", cfg.SourceRoot)
	assert.Empty(t, cfg.OverrideMarker)
	assert.Empty(t, cfg.Links)
}

func TestEmbeddedDefaultsMatchDefault(t *testing.T) {
	var cfg Config
	require.NoError(t, toml.Unmarshal([]byte(GetDefaultsContent()), &cfg))

	assert.Equal(t, Default(), &cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantCode errors.ErrorCode
	}{
		{
			name: "minimal valid",
			cfg:  Config{SourceRoot: "~/conf/central"},
		},
		{
			name: "valid with links",
			cfg: Config{
				SourceRoot: "/srv/central",
				Links: []Link{
					{Name: "global", Source: "global.md", Path: "~/.config/assistant/global.md"},
					{Name: "keybindings", Source: "editor/keys.json", Path: "~/.config/editor/keys.json"},
				},
			},
		},
		{
			name:     "blank source root",
			cfg:      Config{SourceRoot: "   "},
			wantCode: errors.ErrConfigValid,
		},
		{
			name: "link name with separator",
			cfg: Config{
				SourceRoot: "/srv/central",
				Links:      []Link{{Name: "a/b", Source: "x", Path: "~/.x"}},
			},
			wantCode: errors.ErrConfigValid,
		},
		{
			name: "duplicate link names",
			cfg: Config{
				SourceRoot: "/srv/central",
				Links: []Link{
					{Name: "global", Source: "one.md", Path: "~/.one"},
					{Name: "global", Source: "two.md", Path: "~/.two"},
				},
			},
			wantCode: errors.ErrConfigValid,
		},
		{
			name: "empty link source",
			cfg: Config{
				SourceRoot: "/srv/central",
				Links:      []Link{{Name: "global", Path: "~/.one"}},
			},
			wantCode: errors.ErrConfigValid,
		},
		{
			name: "empty link path",
			cfg: Config{
				SourceRoot: "/srv/central",
				Links:      []Link{{Name: "global", Source: "one.md"}},
			},
			wantCode: errors.ErrConfigValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Setenv("HOME", "/home/user")

	p, err := paths.New("/srv/central")
	require.NoError(t, err)

	cfg := Config{
		SourceRoot: "/srv/central",
		Links: []Link{
			{Name: "global", Source: "global.md", Path: "~/.config/assistant/global.md"},
			{Name: "gitconfig", Source: "/opt/shared/gitconfig", Path: "/home/user/.gitconfig"},
		},
	}

	mappings, err := cfg.Resolve(p)
	require.NoError(t, err)
	require.Len(t, mappings, 2)

	assert.Equal(t, "global", mappings[0].Name)
	assert.Equal(t, "/srv/central/global.md", mappings[0].Source)
	assert.Equal(t, "/home/user/.config/assistant/global.md", mappings[0].LinkPath)

	assert.Equal(t, "/opt/shared/gitconfig", mappings[1].Source)
	assert.Equal(t, "/home/user/.gitconfig", mappings[1].LinkPath)
}

func TestResolveRejectsCollidingLinkPaths(t *testing.T) {
	t.Setenv("HOME", "/home/user")

	p, err := paths.New("/srv/central")
	require.NoError(t, err)

	// The two paths differ as written but land on the same location
	// once the tilde expands.
	cfg := Config{
		SourceRoot: "/srv/central",
		Links: []Link{
			{Name: "first", Source: "a.md", Path: "~/.gitconfig"},
			{Name: "second", Source: "b.md", Path: "/home/user/.gitconfig"},
		},
	}

	_, err = cfg.Resolve(p)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	assert.Contains(t, err.Error(), "first")
	assert.Contains(t, err.Error(), "second")
}

func TestMarkerPath(t *testing.T) {
	p, err := paths.New("/srv/central")
	require.NoError(t, err)

	disabled := Config{SourceRoot: "/srv/central"}
	assert.Empty(t, disabled.MarkerPath(p))

	relative := Config{SourceRoot: "/srv/central", OverrideMarker: "LOCAL_OVERRIDES"}
	assert.Equal(t, "/srv/central/LOCAL_OVERRIDES", relative.MarkerPath(p))

	absolute := Config{SourceRoot: "/srv/central", OverrideMarker: "/etc/latch/marker"}
	assert.Equal(t, "/etc/latch/marker", absolute.MarkerPath(p))
}

func TestGenerateConfigContent(t *testing.T) {
	content, err := GenerateConfigContent()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(content, "# latch configuration."))
	assert.Contains(t, content, "# source_root")
	assert.Contains(t, content, "# [[link]]")
	assert.Contains(t, content, "global.md")

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "#"), "line %q is not commented", line)
	}

	// The starter must parse and declare nothing.
	var cfg Config
	require.NoError(t, toml.Unmarshal([]byte(content), &cfg))
	assert.Empty(t, cfg.SourceRoot)
	assert.Empty(t, cfg.Links)
}
