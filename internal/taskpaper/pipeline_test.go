package taskpaper

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pipelineInput = `work:
	- write report @prio(medium) @start(2024-06-01) @due(2024-06-12)
		draft in docs folder
	- call bank @prio(high) @start(2024-06-10)
	- file taxes @prio(high) @start(2024-05-01) @due(2024-06-09) @done
	- learn piano @prio(low) @start(2024-05-01) @maybe
home:
	- fix sink @start(2024-06-02)
	- paint fence @prio(low) @start(2024-06-05) @due(2024-06-20)
Repeat:
	- water plants @repeat(1w) @project(home) @prio(low) @start(2024-06-01)
	- pay rent @repeat(1m) @project(home) @prio(high) @start(2024-06-01)
INBOX:
	- buy milk @prio(medium) @start(2024-06-09)
`

const pipelineOutline = `work:
	- call bank @prio(high) @start(2024-06-10) @today
	- write report @prio(medium) @start(2024-06-01) @due(2024-06-12) @duesoon @note
		draft in docs folder

home:
	- water plants @prio(low) @start(2024-06-08)
	- paint fence @prio(low) @start(2024-06-05) @due(2024-06-20)

Repeat:
	- pay rent @repeat(1m) @project(home) @prio(high) @start(2024-06-01)
	- water plants @repeat(1w) @project(home) @prio(low) @start(2024-06-08)

Error:
	- fix sink @start(2024-06-02)

INBOX:
	- buy milk @prio(medium) @start(2024-06-09)
`

func TestProcess(t *testing.T) {
	res, err := Process(strings.NewReader(pipelineInput), testOpts())
	require.NoError(t, err)

	if diff := cmp.Diff(pipelineOutline, res.Outline); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "\t- file taxes @prio(high) @start(2024-05-01) @due(2024-06-09) @overdue @project(work)\n", res.Archive)
	assert.Equal(t, "\t- learn piano @project(work)\n", res.Maybe)
	assert.Len(t, res.Archived, 1)
	assert.Len(t, res.Deferred, 1)
	assert.Len(t, res.Spawned, 1)
	require.Len(t, res.Doc.Errors, 1)
	assert.Equal(t, 8, res.Doc.Errors[0].Line)
}

func TestProcessIsIdempotent(t *testing.T) {
	first, err := Process(strings.NewReader(pipelineInput), testOpts())
	require.NoError(t, err)
	second, err := Process(strings.NewReader(first.Outline), testOpts())
	require.NoError(t, err)

	if diff := cmp.Diff(first.Outline, second.Outline); diff != "" {
		t.Fatalf("second run changed the outline (-first +second):\n%s", diff)
	}
	assert.Empty(t, second.Archive)
	assert.Empty(t, second.Maybe)
	assert.Empty(t, second.Spawned)
}

func TestProcessEmptyInput(t *testing.T) {
	res, err := Process(strings.NewReader(""), testOpts())
	require.NoError(t, err)
	assert.Equal(t, "Repeat:\n\nError:\n\nINBOX:\n", res.Outline)
	assert.Empty(t, res.Archive)
}

func TestProcessNotesFollowTasks(t *testing.T) {
	input := "work:\n\t- done thing @prio(low) @start(2024-06-01) @done\n\t\twhy it mattered\n"
	res, err := Process(strings.NewReader(input), testOpts())
	require.NoError(t, err)
	assert.Equal(t, "\t- done thing @prio(low) @start(2024-06-01) @project(work) @note\n\t\twhy it mattered\n", res.Archive)
	assert.NotContains(t, res.Outline, "why it mattered")
}

func TestProcessKeepsHeadingNotes(t *testing.T) {
	input := strings.Join([]string{
		"top of file note",
		"work:",
		"\t- a @prio(high) @start(2024-06-01)",
		"home:",
		"\tkeep this context line",
		"\t- b @prio(low) @start(2024-06-01) @done",
		"later:",
		"\tonly a note",
	}, "\n")
	want := `work:
	- a @prio(high) @start(2024-06-01)

home:
	keep this context line

later:
	only a note

Repeat:

Error:

INBOX:
top of file note
`
	res, err := Process(strings.NewReader(input), testOpts())
	require.NoError(t, err)
	if diff := cmp.Diff(want, res.Outline); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "\t- b @prio(low) @start(2024-06-01) @project(home)\n", res.Archive)

	again, err := Process(strings.NewReader(res.Outline), testOpts())
	require.NoError(t, err)
	assert.Equal(t, res.Outline, again.Outline)
}
