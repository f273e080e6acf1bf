package taskpaper

import "sort"

// SortTasks orders tasks by group, then priority with unprioritized tasks
// last, then newest start first. Equal keys keep their relative order.
func SortTasks(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if ra, rb := a.Priority.rank(), b.Priority.rank(); ra != rb {
			return ra < rb
		}
		return a.Start.After(b.Start)
	})
}
