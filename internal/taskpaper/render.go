package taskpaper

import "strings"

var trailingGroups = []string{GroupRepeat, GroupError, GroupInbox}

// IsReserved reports whether name is one of the system groups.
func IsReserved(name string) bool {
	switch name {
	case GroupRepeat, GroupArchive, GroupMaybe, GroupError, GroupInbox:
		return true
	default:
		return false
	}
}

// UserGroups lists non-reserved groups in order of first appearance.
func UserGroups(tasks []*Task) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range tasks {
		if IsReserved(t.Group) || seen[t.Group] {
			continue
		}
		seen[t.Group] = true
		out = append(out, t.Group)
	}
	return out
}

// OutlineGroups returns the user groups of the tasks followed by user groups
// that hold only heading notes.
func OutlineGroups(doc *Document) []string {
	groups := UserGroups(doc.Tasks)
	seen := map[string]bool{}
	for _, g := range groups {
		seen[g] = true
	}
	for _, g := range doc.noteGroups {
		if !IsReserved(g) && !seen[g] {
			seen[g] = true
			groups = append(groups, g)
		}
	}
	return groups
}

// RenderOutline writes the outline: the given user groups in order, then
// Repeat, Error and INBOX, which are always present. Archive and Maybe tasks
// are left to RenderStream.
func RenderOutline(doc *Document, groups []string) string {
	var b strings.Builder
	sections := append(append([]string{}, groups...), trailingGroups...)
	for i, name := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(name)
		b.WriteString(":\n")
		writeLines(&b, doc.GroupNotes[name])
		writeTasks(&b, doc, doc.Group(name))
	}
	return b.String()
}

// RenderStream renders the tasks of one group without a heading, for the
// append-only archive and maybe files. Notes found under that group's heading
// in the input come first.
func RenderStream(doc *Document, group string) string {
	var b strings.Builder
	writeLines(&b, doc.GroupNotes[group])
	writeTasks(&b, doc, doc.Group(group))
	return b.String()
}

func writeTasks(b *strings.Builder, doc *Document, tasks []*Task) {
	for _, t := range tasks {
		b.WriteString("\t")
		b.WriteString(t.Text)
		b.WriteString("\n")
		writeLines(b, doc.Notes[t.ID])
	}
}

func writeLines(b *strings.Builder, lines []string) {
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
}
