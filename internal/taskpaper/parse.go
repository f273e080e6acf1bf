package taskpaper

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// Options carries the run inputs every stage needs.
type Options struct {
	Today time.Time
	Delta DueDelta
}

// Parse reads an outline and returns its tasks in input order. Lines that
// fail validation become tasks in the Error group and are listed in
// Document.Errors; only read failures are returned as errors.
func Parse(r io.Reader, opts Options) (*Document, error) {
	doc := newDocument()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	group := GroupInbox
	var owner *Task
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := strings.TrimRight(sc.Text(), "\r")
		switch ClassifyLine(raw) {
		case LineBlank, LineDivider:
			continue
		case LineHeading:
			group = headingName(raw)
			owner = nil
		case LineTask:
			owner = parseTask(doc, raw, lineNo, group, opts)
			doc.Tasks = append(doc.Tasks, owner)
		case LineNote:
			note := strings.TrimRight(raw, " \t")
			if owner == nil {
				doc.addGroupNote(group, note)
				continue
			}
			doc.Notes[owner.ID] = append(doc.Notes[owner.ID], note)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read outline: %w", err)
	}
	return doc, nil
}

func parseTask(doc *Document, raw string, lineNo int, group string, opts Options) *Task {
	t := &Task{
		ID:    newID(),
		Group: group,
		Text:  NormalizeWhitespace(raw),
		Due:   FarFuture,
		Line:  lineNo,
	}
	if !balancedParens(t.Text) {
		doc.fail(t, fmt.Errorf("%w: parentheses do not match", ErrUnbalancedTag))
		return t
	}
	if !HasTag(t.Text, TagPrio) || !HasTag(t.Text, TagStart) {
		doc.fail(t, fmt.Errorf("%w: need @prio and @start", ErrMissingRequiredTag))
		return t
	}

	prio, _, err := ExtractTag(t.Text, TagPrio)
	if err != nil {
		doc.fail(t, err)
		return t
	}
	startRaw, ok, err := ExtractTag(t.Text, TagStart)
	if err != nil {
		doc.fail(t, err)
		return t
	}
	if !ok {
		doc.fail(t, fmt.Errorf("%w: @start has no value", ErrMissingRequiredTag))
		return t
	}
	start, err := ParseDate(startRaw)
	if err != nil {
		doc.fail(t, err)
		return t
	}
	due := FarFuture
	if dueRaw, ok, err := ExtractTag(t.Text, TagDue); err != nil {
		doc.fail(t, err)
		return t
	} else if ok {
		if due, err = ParseDate(dueRaw); err != nil {
			doc.fail(t, err)
			return t
		}
	}

	t.Priority = parsePriority(prio)
	t.Start = start
	t.Due = due
	t.Done = HasTag(t.Text, TagDone)
	t.Deferred = HasTag(t.Text, TagMaybe)
	t.Recurring = HasTag(t.Text, TagRepeat)
	if t.Recurring {
		t.RepeatSpec, _, _ = ExtractTag(t.Text, TagRepeat)
		if iv, err := ParseInterval(t.RepeatSpec); err == nil {
			t.Interval = iv
		}
	}
	ComputeState(t, opts.Today, opts.Delta)

	if t.Recurring {
		if _, ok, _ := ExtractTag(t.Text, TagProject); !ok {
			doc.fail(t, ErrMissingProject)
		}
	}
	return t
}
