// Package review builds the periodic review document from an outline.
package review

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/amirbrooks/tpm/internal/taskpaper"
)

// Sections selects the optional parts of the document. The high-priority
// and overdue lists are always present.
type Sections struct {
	Agenda    bool
	Waiting   bool
	Customers bool
	Projects  bool
	Maybe     bool
}

// Build assembles the review markdown.
func Build(tasks []*taskpaper.Task, today time.Time, maybeStream string, s Sections) string {
	parts := []string{
		taskpaper.HighPriorityList(tasks, today),
		taskpaper.OverdueList(tasks),
	}
	if s.Agenda {
		parts = append(parts, taskpaper.TaskListByTag(tasks, taskpaper.TagAgenda, "Agenda"))
	}
	if s.Waiting {
		parts = append(parts, taskpaper.TaskListByTag(tasks, taskpaper.TagWaiting, "Waiting"))
	}
	if s.Customers {
		parts = append(parts, taskpaper.TaskListByTag(tasks, taskpaper.TagCustomer, "Customers"))
	}
	if s.Projects {
		parts = append(parts, taskpaper.TaskListByGroup(tasks, "Projects"))
	}
	if s.Maybe {
		parts = append(parts, taskpaper.MaybeList(maybeStream))
	}
	return "# Review\n\n" + strings.Join(parts, "\n")
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 50em; margin: 2em auto; }
li { margin: 0.2em 0; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// ToHTML renders markdown into a standalone page.
func ToHTML(title, markdown string) (string, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(body.String())})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// Files are the paths Write produced.
type Files struct {
	Markdown string
	HTML     string
}

// Write stores Review_<date>.md and, when withHTML is set, Review_<date>.html
// in dir.
func Write(dir string, today time.Time, markdown string, withHTML bool) (Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Files{}, err
	}
	base := filepath.Join(dir, "Review_"+taskpaper.FormatDate(today))
	files := Files{Markdown: base + ".md"}
	if err := atomic.WriteFile(files.Markdown, strings.NewReader(markdown)); err != nil {
		return Files{}, fmt.Errorf("write review: %w", err)
	}
	if !withHTML {
		return files, nil
	}
	html, err := ToHTML("Review "+taskpaper.FormatDate(today), markdown)
	if err != nil {
		return Files{}, err
	}
	files.HTML = base + ".html"
	if err := atomic.WriteFile(files.HTML, strings.NewReader(html)); err != nil {
		return Files{}, fmt.Errorf("write review: %w", err)
	}
	return files, nil
}
