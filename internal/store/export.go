package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amirbrooks/tpm/internal/taskpaper"
)

type TaskRecord struct {
	ID        string   `yaml:"id" json:"id"`
	Group     string   `yaml:"group" json:"group"`
	Text      string   `yaml:"text" json:"text"`
	Priority  string   `yaml:"priority,omitempty" json:"priority,omitempty"`
	Start     string   `yaml:"start,omitempty" json:"start,omitempty"`
	Due       string   `yaml:"due,omitempty" json:"due,omitempty"`
	Repeat    string   `yaml:"repeat,omitempty" json:"repeat,omitempty"`
	Done      bool     `yaml:"done" json:"done"`
	Recurring bool     `yaml:"recurring" json:"recurring"`
	Deferred  bool     `yaml:"deferred" json:"deferred"`
	DueSoon   bool     `yaml:"duesoon" json:"duesoon"`
	Overdue   bool     `yaml:"overdue" json:"overdue"`
	Today     bool     `yaml:"today" json:"today"`
	Notes     []string `yaml:"notes,omitempty" json:"notes,omitempty"`
}

type ErrorRecord struct {
	Line  int    `yaml:"line" json:"line"`
	Text  string `yaml:"text" json:"text"`
	Error string `yaml:"error" json:"error"`
}

// Export is the structured dump of one processed outline.
type Export struct {
	Source    string        `yaml:"source" json:"source"`
	Today     string        `yaml:"today" json:"today"`
	Generated time.Time     `yaml:"generated" json:"generated"`
	Tasks     []TaskRecord  `yaml:"tasks" json:"tasks"`
	Errors    []ErrorRecord `yaml:"errors,omitempty" json:"errors,omitempty"`
}

func NewExport(source string, today time.Time, doc *taskpaper.Document) Export {
	ex := Export{
		Source:    source,
		Today:     taskpaper.FormatDate(today),
		Generated: timeNow(),
		Tasks:     make([]TaskRecord, 0, len(doc.Tasks)),
	}
	for _, t := range doc.Tasks {
		rec := TaskRecord{
			ID:        t.ID,
			Group:     t.Group,
			Text:      t.Text,
			Priority:  t.Priority.String(),
			Repeat:    t.Interval.String(),
			Done:      t.Done,
			Recurring: t.Recurring,
			Deferred:  t.Deferred,
			DueSoon:   t.DueSoon,
			Overdue:   t.Overdue,
			Today:     t.Today,
			Notes:     trimNotes(doc.Notes[t.ID]),
		}
		if !t.Start.IsZero() {
			rec.Start = taskpaper.FormatDate(t.Start)
		}
		if t.HasDue() {
			rec.Due = taskpaper.FormatDate(t.Due)
		}
		ex.Tasks = append(ex.Tasks, rec)
	}
	for _, e := range doc.Errors {
		ex.Errors = append(ex.Errors, ErrorRecord{Line: e.Line, Text: e.Text, Error: e.Err.Error()})
	}
	return ex
}

// Marshal encodes the export as yaml or json.
func (e Export) Marshal(format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "yaml", "yml":
		return yaml.Marshal(e)
	case "json":
		b, err := json.MarshalIndent(e, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: export format %q (use yaml|json)", ErrInvalid, format)
	}
}

func trimNotes(notes []string) []string {
	if len(notes) == 0 {
		return nil
	}
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, strings.TrimSpace(n))
	}
	return out
}
