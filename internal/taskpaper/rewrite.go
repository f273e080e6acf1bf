package taskpaper

// stateTags are system-managed; any word containing one of them is replaced
// on every run.
var stateTags = []string{TagOverdue.Token(), TagDueSoon.Token(), TagToday.Token()}

// RewriteTask strips stale state tags from the task text and appends one tag
// per set flag in the order overdue, duesoon, today.
func RewriteTask(t *Task) {
	text := RemoveTaskParts(t.Text, stateTags...)
	if t.Overdue {
		text = appendTag(text, TagOverdue, "")
	}
	if t.DueSoon {
		text = appendTag(text, TagDueSoon, "")
	}
	if t.Today {
		text = appendTag(text, TagToday, "")
	}
	t.Text = text
}

// RewriteStateTags applies RewriteTask to every task outside the Error group.
func RewriteStateTags(doc *Document) {
	for _, t := range doc.Tasks {
		if t.Group == GroupError {
			continue
		}
		RewriteTask(t)
	}
}

// MarkNotes keeps the @note marker in sync with note ownership.
func MarkNotes(doc *Document) {
	for _, t := range doc.Tasks {
		if t.Group == GroupError {
			continue
		}
		text := removeExact(t.Text, TagNote.Token())
		if len(doc.Notes[t.ID]) > 0 {
			text = appendTag(text, TagNote, "")
		}
		t.Text = text
	}
}
