package paths_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/latch/pkg/paths"
	"github.com/arthur-debert/latch/pkg/testutil"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid absolute", "/home/user/file.md", false},
		{"valid relative", "docs/file.md", false},
		{"empty", "", true},
		{"null byte", "/home/user\x00/file", true},
		{"too long", "/" + strings.Repeat("a", 4096), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := paths.ValidatePath(tt.path)
			if tt.wantErr {
				testutil.AssertError(t, err)
			} else {
				testutil.AssertNoError(t, err)
			}
		})
	}
}

func TestValidateMappingName(t *testing.T) {
	tests := []struct {
		name    string
		mapping string
		wantErr bool
	}{
		{"simple", "global", false},
		{"with dashes", "agent-config", false},
		{"with dots", "global.md", false},
		{"empty", "", true},
		{"forward slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"control character", "a\tb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := paths.ValidateMappingName(tt.mapping)
			if tt.wantErr {
				testutil.AssertError(t, err)
			} else {
				testutil.AssertNoError(t, err)
			}
		})
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"redundant separators", "/a//b///c", "/a/b/c"},
		{"dot elements", "/a/./b", "/a/b"},
		{"dotdot elements", "/a/b/../c", "/a/c"},
		{"empty becomes dot", "", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, tt.want, paths.SanitizePath(tt.path))
		})
	}
}

func TestContainsPath(t *testing.T) {
	tests := []struct {
		name   string
		parent string
		child  string
		want   bool
	}{
		{"direct child", "/srv/central", "/srv/central/global.md", true},
		{"nested child", "/srv/central", "/srv/central/a/b/c", true},
		{"same path", "/srv/central", "/srv/central", true},
		{"outside", "/srv/central", "/srv/other/file", false},
		{"escapes via dotdot", "/srv/central", "/srv/central/../other", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paths.ContainsPath(tt.parent, tt.child)
			testutil.AssertEqual(t, tt.want, got)
		})
	}
}
