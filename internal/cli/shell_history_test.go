package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempHistory points the command bar history at a temp file for the
// duration of the test.
func useTempHistory(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history")
	orig := shellHistoryPath
	shellHistoryPath = func() string { return path }
	t.Cleanup(func() { shellHistoryPath = orig })
	return path
}

func TestReadHistory(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		assert.Nil(t, readHistory(filepath.Join(t.TempDir(), "nope", "history")))
	})

	t.Run("skips blanks and repeats", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history")
		content := "board\n\nitem list --group Core\nitem list --group Core\ngantt --range weekly\nboard\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		assert.Equal(t,
			[]string{"board", "item list --group Core", "gantt --range weekly", "board"},
			readHistory(path))
	})

	t.Run("keeps the newest entries", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history")
		var b strings.Builder
		for i := 0; i < 600; i++ {
			fmt.Fprintf(&b, "item show %d\n", i)
		}
		require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

		lines := readHistory(path)
		require.Len(t, lines, maxHistoryLines)
		assert.Equal(t, "item show 100", lines[0])
		assert.Equal(t, "item show 599", lines[len(lines)-1])
	})
}

func TestShellHistory_AddPersists(t *testing.T) {
	path := useTempHistory(t)

	h := openShellHistory()
	h.add("status list")
	h.add("status list")
	h.add("   ")
	h.add("export -o roadmap.ics")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "status list\nexport -o roadmap.ics\n", string(data))

	assert.Equal(t, []string{"status list", "export -o roadmap.ics"}, openShellHistory().entries)
}

func TestShellHistory_RecallRestoresDraft(t *testing.T) {
	useTempHistory(t)
	h := openShellHistory()
	h.add("board")
	h.add("table")

	got, ok := h.prev("item ad")
	require.True(t, ok)
	assert.Equal(t, "table", got)

	got, _ = h.prev("table")
	assert.Equal(t, "board", got)
	_, ok = h.prev("board")
	assert.False(t, ok, "nothing older than the first entry")

	got, _ = h.next()
	assert.Equal(t, "table", got)
	got, ok = h.next()
	require.True(t, ok)
	assert.Equal(t, "item ad", got)
	_, ok = h.next()
	assert.False(t, ok)
}
