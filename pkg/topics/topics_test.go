// pkg/topics/topics_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None (in-memory file trees)
// PURPOSE: Topic indexing, flag-style lookup, and the extended help command

package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicTree() fstest.MapFS {
	return fstest.MapFS{
		"linking.md":            &fstest.MapFile{Data: []byte("# Linking\n\nHow links are enforced.")},
		"backups.md":            &fstest.MapFile{Data: []byte("# Backups\n\nWhere displaced files go.")},
		"recovery.txt":          &fstest.MapFile{Data: []byte("Recovery walkthrough")},
		"option-dry-run.md":     &fstest.MapFile{Data: []byte("Preview a run without changes.")},
		"notes.json":            &fstest.MapFile{Data: []byte("not a topic")},
		"advanced/collision.md": &fstest.MapFile{Data: []byte("Backup name collisions")},
	}
}

func TestScanTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(topicTree())
		require.NoError(t, tm.scanTopics())

		tests := []struct {
			name    string
			exists  bool
			content string
		}{
			{"linking", true, "# Linking\n\nHow links are enforced."},
			{"recovery", true, "Recovery walkthrough"},
			{"collision", true, "Backup name collisions"},
			{"notes", false, ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				topic, exists := tm.GetTopic(tt.name)
				assert.Equal(t, tt.exists, exists)
				if exists {
					assert.Equal(t, tt.content, topic.Content)
				}
			})
		}
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(topicTree(), Options{Extensions: []string{".json"}})
		require.NoError(t, tm.scanTopics())

		_, exists := tm.GetTopic("notes")
		assert.True(t, exists)
		_, exists = tm.GetTopic("linking")
		assert.False(t, exists)
	})
}

func TestGetTopicFlagForms(t *testing.T) {
	tm := New(topicTree())
	require.NoError(t, tm.scanTopics())

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"linking", "linking", true},
		{"option-dry-run", "option-dry-run", true},
		{"dry-run", "option-dry-run", true},
		{"--dry-run", "option-dry-run", true},
		{"-dry-run", "option-dry-run", true},
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, exists := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, exists)
			if exists {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestListTopics(t *testing.T) {
	tm := New(topicTree())
	require.NoError(t, tm.scanTopics())

	names := tm.ListTopics()
	assert.Len(t, names, 5)
	assert.Contains(t, names, "linking")
	assert.Contains(t, names, "option-dry-run")
	assert.NotContains(t, names, "notes")
}

func TestNilTopicTree(t *testing.T) {
	tm := New(nil)
	require.NoError(t, tm.scanTopics())
	assert.Empty(t, tm.ListTopics())
}

func newTestRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	rootCmd := &cobra.Command{
		Use:   "testapp",
		Short: "Test application",
	}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "enforce",
		Short: "Converge declared links",
		Run:   func(cmd *cobra.Command, args []string) {},
	})

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	return rootCmd, out
}

func TestInitializeReplacesHelpCommand(t *testing.T) {
	rootCmd, _ := newTestRoot(t)
	require.NoError(t, Initialize(rootCmd, topicTree()))

	helpCmd, _, err := rootCmd.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help", helpCmd.Name())
	assert.Equal(t, "help [command or topic]", helpCmd.Use)
}

func TestHelpServesTopicPage(t *testing.T) {
	rootCmd, out := newTestRoot(t)
	require.NoError(t, Initialize(rootCmd, topicTree()))

	rootCmd.SetArgs([]string{"help", "recovery"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "Recovery walkthrough")
}

func TestHelpResolvesFlagSpelling(t *testing.T) {
	rootCmd, out := newTestRoot(t)
	require.NoError(t, Initialize(rootCmd, topicTree()))

	rootCmd.SetArgs([]string{"help", "dry-run"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "Preview a run without changes.")
}

func TestHelpTopicsListsPages(t *testing.T) {
	rootCmd, out := newTestRoot(t)
	require.NoError(t, Initialize(rootCmd, topicTree()))

	rootCmd.SetArgs([]string{"help", "topics"})
	require.NoError(t, rootCmd.Execute())

	listing := out.String()
	assert.Contains(t, listing, "General topics:")
	assert.Contains(t, listing, "  linking")
	assert.Contains(t, listing, "Option topics:")
	assert.Contains(t, listing, "  --dry-run")
	assert.Contains(t, listing, "testapp help <topic>")
}

func TestHelpWithoutTopicsReportsNone(t *testing.T) {
	rootCmd, out := newTestRoot(t)
	require.NoError(t, Initialize(rootCmd, nil))

	rootCmd.SetArgs([]string{"help", "topics"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "No help topics available.")
}

func TestHelpFallsBackToCommandHelp(t *testing.T) {
	rootCmd, out := newTestRoot(t)
	require.NoError(t, Initialize(rootCmd, topicTree()))

	rootCmd.SetArgs([]string{"help", "not-a-topic"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "Test application")
}

func TestPlainRendererPassesThrough(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "# Raw", r.Render("# Raw", ".md"))
}

func TestGlamourRendererSkipsNonMarkdown(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
}
