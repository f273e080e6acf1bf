package taskpaper

import (
	"sort"
	"strings"
	"time"
)

const (
	HeaderOverdue  = "## Open tasks - overdue:"
	HeaderHighPrio = "## Open tasks with prio high:"
	HeaderMaybe    = "## Maybe list:"
)

var reviewStripTags = []string{
	TagStart.Token(), TagPrio.Token(), TagProject.Token(), TagCustomer.Token(), TagWaiting.Token(),
}

// isActive excludes done tasks and everything parked in a system group
// other than INBOX.
func isActive(t *Task) bool {
	if t.Done {
		return false
	}
	return t.Group == GroupInbox || !IsReserved(t.Group)
}

func started(t *Task, today time.Time) bool {
	return !t.Start.After(Day(today))
}

// listLine drops scheduling tags and re-appends the due date when there is one.
func listLine(t *Task) string {
	text := RemoveTaskParts(t.Text, TagStart.Token(), TagPrio.Token(), TagDue.Token())
	if t.HasDue() {
		text = appendTag(text, TagDue, FormatDate(t.Due))
	}
	return text
}

// bareLine keeps only the words of the task and its due date.
func bareLine(t *Task) string {
	text := RemoveTaskParts(t.Text, "@")
	if t.HasDue() {
		text = appendTag(text, TagDue, FormatDate(t.Due))
	}
	return text
}

func writeSection(b *strings.Builder, header string, lines []string) {
	b.WriteString(header)
	b.WriteString("\n\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
}

// byPriority returns a copy of tasks ordered by priority, then newest start,
// regardless of group.
func byPriority(tasks []*Task) []*Task {
	out := append([]*Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		if ra, rb := out[i].Priority.rank(), out[j].Priority.rank(); ra != rb {
			return ra < rb
		}
		return out[i].Start.After(out[j].Start)
	})
	return out
}

func collect(tasks []*Task, keep func(*Task) bool, line func(*Task) string) []string {
	var out []string
	for _, t := range byPriority(tasks) {
		if isActive(t) && keep(t) {
			out = append(out, line(t))
		}
	}
	return out
}

// OverdueList lists open tasks past their due date.
func OverdueList(tasks []*Task) string {
	var b strings.Builder
	writeSection(&b, HeaderOverdue, collect(tasks, func(t *Task) bool { return t.Overdue }, listLine))
	return b.String()
}

// HighPriorityList lists started high-priority tasks.
func HighPriorityList(tasks []*Task, today time.Time) string {
	var b strings.Builder
	writeSection(&b, HeaderHighPrio, collect(tasks, func(t *Task) bool {
		return t.Priority == PriorityHigh && started(t, today)
	}, listLine))
	return b.String()
}

// DailyDigest is the body of the daily mail.
func DailyDigest(tasks []*Task, today time.Time) string {
	var b strings.Builder
	b.WriteString("# Tasks for Today\n\n")
	writeSection(&b, "## Overdue tasks", collect(tasks, func(t *Task) bool { return t.Overdue }, bareLine))
	b.WriteString("\n")
	writeSection(&b, "## Due soon tasks", collect(tasks, func(t *Task) bool { return t.DueSoon }, bareLine))
	b.WriteString("\n")
	writeSection(&b, "## High priority tasks", collect(tasks, func(t *Task) bool {
		return t.Priority == PriorityHigh && !t.DueSoon && !t.Overdue && started(t, today)
	}, listLine))
	return b.String()
}

// PushMessage joins the high-priority and overdue lists. Callers apply the
// size ceiling of their transport.
func PushMessage(tasks []*Task, today time.Time) string {
	return HighPriorityList(tasks, today) + "\n" + OverdueList(tasks)
}

// UniqueValues returns the distinct values of a valued tag over open tasks,
// in order of first appearance.
func UniqueValues(tasks []*Task, tag TagDescriptor) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range tasks {
		if !isActive(t) {
			continue
		}
		v, ok, err := ExtractTag(t.Text, tag)
		v = strings.TrimSpace(v)
		if !ok || err != nil || v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// TaskListByTag groups open tasks under one subheading per tag value.
func TaskListByTag(tasks []*Task, tag TagDescriptor, headline string) string {
	var b strings.Builder
	b.WriteString("## " + headline + "\n")
	ordered := byPriority(tasks)
	for _, v := range UniqueValues(tasks, tag) {
		b.WriteString("\n### " + v + "\n\n")
		for _, t := range ordered {
			if !isActive(t) {
				continue
			}
			if got, ok, _ := ExtractTag(t.Text, tag); ok && strings.TrimSpace(got) == v {
				b.WriteString(RemoveTaskParts(t.Text, append(reviewStripTags, tag.Token())...))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// TaskListByGroup groups open tasks under one subheading per user group.
func TaskListByGroup(tasks []*Task, headline string) string {
	var b strings.Builder
	b.WriteString("## " + headline + "\n")
	ordered := byPriority(tasks)
	for _, g := range UserGroups(tasks) {
		b.WriteString("\n### " + g + "\n\n")
		for _, t := range ordered {
			if t.Group == g && isActive(t) {
				b.WriteString(listLine(t))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// MaybeList renders the task lines of a maybe stream for review.
func MaybeList(stream string) string {
	var lines []string
	for _, l := range strings.Split(stream, "\n") {
		if ClassifyLine(l) != LineTask {
			continue
		}
		if text := RemoveTaskParts(l, reviewStripTags...); text != "" {
			lines = append(lines, text)
		}
	}
	var b strings.Builder
	writeSection(&b, HeaderMaybe, lines)
	return b.String()
}
