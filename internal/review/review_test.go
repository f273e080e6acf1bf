package review

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirbrooks/tpm/internal/taskpaper"
)

var today = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func parse(t *testing.T, input string) []*taskpaper.Task {
	t.Helper()
	doc, err := taskpaper.Parse(strings.NewReader(input), taskpaper.Options{
		Today: today,
		Delta: taskpaper.DueDelta{Unit: "days", Amount: 3},
	})
	require.NoError(t, err)
	return doc.Tasks
}

const outline = `work:
	- a @prio(high) @start(2024-06-01) @agenda(bob)
	- b @prio(low) @start(2024-06-01) @due(2024-06-01) @waiting(alice) @customer(acme)
`

func TestBuild(t *testing.T) {
	doc := Build(parse(t, outline), today, "\t- sail @project(home)\n", Sections{
		Agenda: true, Waiting: true, Customers: true, Projects: true, Maybe: true,
	})
	assert.True(t, strings.HasPrefix(doc, "# Review\n\n"+taskpaper.HeaderHighPrio))
	for _, want := range []string{
		taskpaper.HeaderOverdue,
		"## Agenda\n\n### bob\n\n- a\n",
		"## Waiting\n\n### alice\n",
		"## Customers\n\n### acme\n",
		"## Projects\n\n### work\n",
		taskpaper.HeaderMaybe + "\n\n- sail\n",
	} {
		assert.Contains(t, doc, want)
	}
}

func TestBuildMinimal(t *testing.T) {
	doc := Build(parse(t, outline), today, "", Sections{})
	assert.NotContains(t, doc, "## Agenda")
	assert.NotContains(t, doc, taskpaper.HeaderMaybe)
	assert.Contains(t, doc, taskpaper.HeaderOverdue)
}

func TestToHTML(t *testing.T) {
	html, err := ToHTML("Review <2024>", "# Review\n\n## Open tasks\n\n- a @due(2024-06-01)\n")
	require.NoError(t, err)
	assert.Contains(t, html, "<title>Review &lt;2024&gt;</title>")
	assert.Contains(t, html, "<h1>Review</h1>")
	assert.Contains(t, html, "<li>a @due(2024-06-01)</li>")
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reviews")
	files, err := Write(dir, today, "# Review\n", true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Review_2024-06-10.md"), files.Markdown)
	assert.Equal(t, filepath.Join(dir, "Review_2024-06-10.html"), files.HTML)

	b, err := os.ReadFile(files.HTML)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<h1>Review</h1>")

	files, err = Write(dir, today, "# Review\n", false)
	require.NoError(t, err)
	assert.Empty(t, files.HTML)
}

func TestWatchRegeneratesOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.txt")
	require.NoError(t, os.WriteFile(path, []byte("work:\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	calls := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{path}, 20*time.Millisecond, log.New(io.Discard, "", 0), func() error {
			calls <- struct{}{}
			return nil
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("work:\n\t- a\n"), 0o644))

	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatal("regenerate was not called")
	}
	cancel()
	require.NoError(t, <-done)
}
