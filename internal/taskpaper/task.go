package taskpaper

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Reserved group names.
const (
	GroupRepeat  = "Repeat"
	GroupArchive = "Archive"
	GroupMaybe   = "Maybe"
	GroupError   = "Error"
	GroupInbox   = "INBOX"
)

const dateLayout = "2006-01-02"

// FarFuture is the due date of tasks that carry no @due tag.
var FarFuture = time.Date(2999, time.December, 31, 0, 0, 0, 0, time.UTC)

var (
	ErrUnbalancedTag      = errors.New("unbalanced tag")
	ErrMissingRequiredTag = errors.New("missing required tag")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidInterval    = errors.New("invalid repeat interval")
	ErrMissingProject     = errors.New("recurring task without @project")
	timeNow               = func() time.Time { return time.Now().UTC() }
)

// Priority orders tasks inside a group. PriorityNone sorts after Low.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityHigh
	PriorityMedium
	PriorityLow
)

func parsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	case "low":
		return PriorityLow
	default:
		return PriorityNone
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return ""
	}
}

// rank maps PriorityNone past every real priority.
func (p Priority) rank() int {
	if p == PriorityNone {
		return 99
	}
	return int(p)
}

// Task is one dash-prefixed outline line plus its derived state.
// Stages mutate tasks in place by field.
type Task struct {
	ID        string
	Priority  Priority
	Start     time.Time
	Group     string
	Text      string
	Done      bool
	Recurring bool
	Deferred  bool
	Interval  Interval
	// RepeatSpec holds the raw @repeat value, kept for error reports.
	RepeatSpec string
	Due        time.Time
	DueSoon    bool
	Overdue    bool
	Today      bool
	// Line is the 1-based input line number, 0 for generated tasks.
	Line int
}

// HasDue reports whether the task carries a real due date.
func (t *Task) HasDue() bool {
	return !t.Due.IsZero() && !t.Due.Equal(FarFuture)
}

// LineError records an input line that was routed to the Error group.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	if e == nil {
		return "line error"
	}
	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error { return e.Err }

// Document is the parsed outline: tasks in input order and the notes they own.
// Note lines that sit under a heading before its first task belong to the
// group instead and stay under that heading.
type Document struct {
	Tasks      []*Task
	Notes      map[string][]string
	GroupNotes map[string][]string
	Errors     []*LineError

	noteGroups []string
}

func newDocument() *Document {
	return &Document{Notes: map[string][]string{}, GroupNotes: map[string][]string{}}
}

func (d *Document) addGroupNote(group, line string) {
	if _, ok := d.GroupNotes[group]; !ok {
		d.noteGroups = append(d.noteGroups, group)
	}
	d.GroupNotes[group] = append(d.GroupNotes[group], line)
}

// Group returns the tasks currently in group, in slice order.
func (d *Document) Group(name string) []*Task {
	var out []*Task
	for _, t := range d.Tasks {
		if t.Group == name {
			out = append(out, t)
		}
	}
	return out
}

func (d *Document) fail(t *Task, err error) {
	t.Group = GroupError
	d.Errors = append(d.Errors, &LineError{Line: t.Line, Text: t.Text, Err: err})
}

// ParseDate parses a yyyy-mm-dd calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// FormatDate renders a calendar date as yyyy-mm-dd.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

var (
	idMu      sync.Mutex
	idEntropy = ulid.Monotonic(randReader{}, 0)
)

func newID() string {
	idMu.Lock()
	defer idMu.Unlock()
	id, err := ulid.New(ulid.Timestamp(timeNow()), idEntropy)
	if err != nil {
		return fmt.Sprintf("tsk_%d", timeNow().UnixNano())
	}
	return "tsk_" + id.String()
}
