package taskpaper

// ArchiveDone moves done tasks to the Archive group, recording the group they
// came from in a @project tag. It returns the moved tasks.
func ArchiveDone(doc *Document) []*Task {
	var moved []*Task
	for _, t := range doc.Tasks {
		if !t.Done || t.Group == GroupError || t.Group == GroupArchive {
			continue
		}
		text := RemoveTaskParts(t.Text, TagDone.Token(), TagProject.Token())
		t.Text = appendTag(text, TagProject, t.Group)
		t.Group = GroupArchive
		moved = append(moved, t)
	}
	return moved
}

// DeferMaybe moves @maybe tasks that were not archived to the Maybe group.
// Scheduling tags are dropped since deferred tasks carry no dates.
func DeferMaybe(doc *Document) []*Task {
	var moved []*Task
	for _, t := range doc.Tasks {
		if !t.Deferred || t.Group == GroupError || t.Group == GroupArchive || t.Group == GroupMaybe {
			continue
		}
		text := RemoveTaskParts(t.Text,
			TagMaybe.Token(), TagStart.Token(), TagDue.Token(), TagPrio.Token(), TagProject.Token())
		t.Text = appendTag(text, TagProject, t.Group)
		t.Group = GroupMaybe
		moved = append(moved, t)
	}
	return moved
}
