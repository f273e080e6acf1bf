package taskpaper

import "strings"

// LineKind is the structural role of one outline line.
type LineKind int

const (
	LineBlank LineKind = iota
	LineDivider
	LineHeading
	LineTask
	LineNote
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineDivider:
		return "divider"
	case LineHeading:
		return "heading"
	case LineTask:
		return "task"
	default:
		return "note"
	}
}

// ClassifyLine assigns a kind to a raw line. Headings win over tasks, so
// "- errands:" opens a group.
func ClassifyLine(line string) LineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return LineBlank
	case trimmed == "-":
		return LineDivider
	case strings.HasSuffix(trimmed, ":"):
		return LineHeading
	case strings.HasPrefix(strings.TrimLeft(line, " \t"), "-"):
		return LineTask
	default:
		return LineNote
	}
}

// headingName returns the group name of a heading line.
func headingName(line string) string {
	name := strings.TrimSuffix(strings.TrimSpace(line), ":")
	return strings.TrimSpace(name)
}
