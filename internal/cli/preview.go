package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amirbrooks/tpm/internal/taskpaper"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dueSoonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	todayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// renderPreview shows what a daily run would write, styled for a terminal.
func renderPreview(res *taskpaper.Result, opts taskpaper.Options) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Outline") + "\n\n")
	section := ""
	for _, line := range strings.Split(strings.TrimRight(res.Outline, "\n"), "\n") {
		if taskpaper.ClassifyLine(line) == taskpaper.LineHeading {
			section = strings.TrimSuffix(line, ":")
			b.WriteString(headingStyle.Render(line) + "\n")
			continue
		}
		b.WriteString(styleLine(line, section) + "\n")
	}

	writeStream(&b, "Archive", res.Archive)
	writeStream(&b, "Maybe", res.Maybe)

	b.WriteString("\n" + sectionStyle.Render("Digest") + "\n\n")
	b.WriteString(taskpaper.DailyDigest(res.Doc.Tasks, opts.Today))
	return b.String()
}

func writeStream(b *strings.Builder, title, stream string) {
	if stream == "" {
		return
	}
	b.WriteString("\n" + sectionStyle.Render(title+" (appended)") + "\n\n")
	for _, line := range strings.Split(strings.TrimRight(stream, "\n"), "\n") {
		b.WriteString(dimStyle.Render(line) + "\n")
	}
}

func styleLine(line, section string) string {
	switch {
	case section == taskpaper.GroupError:
		return errorStyle.Render(line)
	case strings.Contains(line, taskpaper.TagOverdue.Token()):
		return overdueStyle.Render(line)
	case strings.Contains(line, taskpaper.TagDueSoon.Token()):
		return dueSoonStyle.Render(line)
	case strings.Contains(line, taskpaper.TagToday.Token()):
		return todayStyle.Render(line)
	default:
		return line
	}
}
