package taskpaper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Interval is a repeat step such as 2w. The zero value means no interval.
type Interval struct {
	Count int
	Unit  byte // 'd', 'w' or 'm'
}

var intervalRe = regexp.MustCompile(`^(\d+)([dwm])$`)

// ParseInterval parses "<digits><d|w|m>".
func ParseInterval(s string) (Interval, error) {
	m := intervalRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidInterval, s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidInterval, s)
	}
	return Interval{Count: n, Unit: m[2][0]}, nil
}

func (iv Interval) IsZero() bool { return iv.Count == 0 }

func (iv Interval) String() string {
	if iv.IsZero() {
		return ""
	}
	return strconv.Itoa(iv.Count) + string(iv.Unit)
}

// Next steps from by one interval. Month steps keep the day of month and
// clamp it to the end of shorter months.
func (iv Interval) Next(from time.Time) time.Time {
	switch iv.Unit {
	case 'd':
		return from.AddDate(0, 0, iv.Count)
	case 'w':
		return from.AddDate(0, 0, 7*iv.Count)
	case 'm':
		return addMonthsClamped(from, iv.Count)
	default:
		return from
	}
}

func addMonthsClamped(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	last := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// ExpandRepeats advances every template in the Repeat group whose next start
// has arrived and appends one fresh task per template to doc. Templates with
// a malformed interval move to the Error group. It returns the new tasks.
func ExpandRepeats(doc *Document, opts Options) []*Task {
	today := Day(opts.Today)
	var spawned []*Task
	for _, tmpl := range doc.Group(GroupRepeat) {
		if !tmpl.Recurring {
			continue
		}
		if tmpl.Interval.IsZero() {
			doc.fail(tmpl, fmt.Errorf("%w: %q", ErrInvalidInterval, tmpl.RepeatSpec))
			continue
		}
		next := tmpl.Interval.Next(tmpl.Start)
		if next.After(today) {
			continue
		}
		dest, ok, _ := ExtractTag(tmpl.Text, TagProject)
		dest = strings.TrimSpace(dest)
		if !ok || dest == "" {
			doc.fail(tmpl, ErrMissingProject)
			continue
		}

		t := &Task{
			ID:       newID(),
			Priority: tmpl.Priority,
			Start:    next,
			Group:    dest,
			Text:     appendTag(RemoveTaskParts(tmpl.Text, TagRepeat.Token(), TagProject.Token(), TagStart.Token()), TagStart, FormatDate(next)),
			Due:      tmpl.Due,
		}
		refresh(t, opts)
		spawned = append(spawned, t)

		tmpl.Start = next
		tmpl.Text = appendTag(RemoveTaskParts(tmpl.Text, TagStart.Token()), TagStart, FormatDate(next))
		refresh(tmpl, opts)
	}
	doc.Tasks = append(doc.Tasks, spawned...)
	return spawned
}

// refresh recomputes flags and presentational tags of a task a stage rewrote.
func refresh(t *Task, opts Options) {
	ComputeState(t, opts.Today, opts.Delta)
	RewriteTask(t)
}
