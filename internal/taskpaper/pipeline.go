package taskpaper

import "io"

// Result is one pipeline run over an outline.
type Result struct {
	Doc      *Document
	Outline  string
	Archive  string
	Maybe    string
	Archived []*Task
	Deferred []*Task
	Spawned  []*Task
}

// Process runs every stage over the outline read from r:
// parse, state tags, archive, maybe, repeat, note markers, sort, render.
func Process(r io.Reader, opts Options) (*Result, error) {
	doc, err := Parse(r, opts)
	if err != nil {
		return nil, err
	}
	res := &Result{Doc: doc}
	RewriteStateTags(doc)
	res.Archived = ArchiveDone(doc)
	res.Deferred = DeferMaybe(doc)
	res.Spawned = ExpandRepeats(doc, opts)
	MarkNotes(doc)

	groups := OutlineGroups(doc)
	SortTasks(doc.Tasks)
	res.Outline = RenderOutline(doc, groups)
	res.Archive = RenderStream(doc, GroupArchive)
	res.Maybe = RenderStream(doc, GroupMaybe)
	return res, nil
}
