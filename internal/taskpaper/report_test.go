package taskpaper

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

const reportInput = `work:
	- a @prio(high) @start(2024-06-01) @due(2024-06-05) @agenda(bob)
	- b @prio(high) @start(2024-06-01) @waiting(alice)
	- c @prio(medium) @start(2024-06-01) @due(2024-06-12) @agenda(bob)
	- d @prio(high) @start(2024-07-01)
	- e @prio(low) @start(2024-06-01) @agenda(carol) @done
Repeat:
	- f @repeat(1w) @project(work) @prio(high) @start(2024-06-01) @due(2024-06-01)
`

func reportTasks(t *testing.T) []*Task {
	return mustParse(t, reportInput).Tasks
}

func TestOverdueList(t *testing.T) {
	want := "## Open tasks - overdue:\n\n- a @agenda(bob) @due(2024-06-05)\n"
	assert.Equal(t, want, OverdueList(reportTasks(t)))
}

func TestHighPriorityList(t *testing.T) {
	want := "## Open tasks with prio high:\n\n- a @agenda(bob) @due(2024-06-05)\n- b @waiting(alice)\n"
	assert.Equal(t, want, HighPriorityList(reportTasks(t), day("2024-06-10")))
}

func TestDailyDigest(t *testing.T) {
	want := `# Tasks for Today

## Overdue tasks

- a @due(2024-06-05)

## Due soon tasks

- c @due(2024-06-12)

## High priority tasks

- b @waiting(alice)
`
	if diff := cmp.Diff(want, DailyDigest(reportTasks(t), day("2024-06-10"))); diff != "" {
		t.Fatalf("digest mismatch (-want +got):\n%s", diff)
	}
}

func TestPushMessage(t *testing.T) {
	msg := PushMessage(reportTasks(t), day("2024-06-10"))
	assert.True(t, strings.HasPrefix(msg, HeaderHighPrio))
	assert.Contains(t, msg, "\n"+HeaderOverdue)
}

func TestReportsOrderByPriorityAcrossGroups(t *testing.T) {
	tasks := mustParse(t, `alpha:
	- slow @prio(low) @start(2024-06-01) @due(2024-06-02)
	- older @prio(high) @start(2024-05-01) @due(2024-06-03)
beta:
	- urgent @prio(high) @start(2024-06-01) @due(2024-06-04)
`).Tasks
	SortTasks(tasks)
	want := "## Open tasks - overdue:\n\n- urgent @due(2024-06-04)\n- older @due(2024-06-03)\n- slow @due(2024-06-02)\n"
	assert.Equal(t, want, OverdueList(tasks))
}

func TestReportsSkipTasksMissingStart(t *testing.T) {
	doc := mustParse(t, reportInput+"INBOX:\n\t- x @prio(high)\n")
	x := doc.Tasks[len(doc.Tasks)-1]
	assert.Equal(t, GroupError, x.Group)

	today := day("2024-06-10")
	for name, out := range map[string]string{
		"high":   HighPriorityList(doc.Tasks, today),
		"digest": DailyDigest(doc.Tasks, today),
		"push":   PushMessage(doc.Tasks, today),
	} {
		assert.NotContains(t, out, "- x", name)
	}
	assert.Equal(t, HighPriorityList(reportTasks(t), today), HighPriorityList(doc.Tasks, today))
}

func TestUniqueValues(t *testing.T) {
	assert.Equal(t, []string{"bob"}, UniqueValues(reportTasks(t), TagAgenda))
	assert.Equal(t, []string{"alice"}, UniqueValues(reportTasks(t), TagWaiting))
	assert.Empty(t, UniqueValues(reportTasks(t), TagCustomer))
}

func TestTaskListByTag(t *testing.T) {
	want := "## Agenda\n\n### bob\n\n- a @due(2024-06-05)\n- c @due(2024-06-12)\n"
	assert.Equal(t, want, TaskListByTag(reportTasks(t), TagAgenda, "Agenda"))
}

func TestTaskListByGroup(t *testing.T) {
	got := TaskListByGroup(reportTasks(t), "Projects")
	assert.True(t, strings.HasPrefix(got, "## Projects\n\n### work\n\n- d\n- a @agenda(bob) @due(2024-06-05)\n"))
	assert.NotContains(t, got, "### Repeat")
	assert.NotContains(t, got, "- e ")
}

func TestMaybeList(t *testing.T) {
	stream := "\t- learn piano @project(work)\n\t\tsome note\n\t- sail @project(home) @customer(x)\n"
	want := "## Maybe list:\n\n- learn piano\n- sail\n"
	assert.Equal(t, want, MaybeList(stream))
}
