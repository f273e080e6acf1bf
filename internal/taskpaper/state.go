package taskpaper

import (
	"fmt"
	"strings"
	"time"
)

// DueDelta is the look-ahead window before a due date in which a task is due soon.
type DueDelta struct {
	Unit   string // days|weeks|months
	Amount int
}

// ParseDueDelta validates unit and amount.
func ParseDueDelta(unit string, amount int) (DueDelta, error) {
	unit = strings.ToLower(strings.TrimSpace(unit))
	switch unit {
	case "day", "days", "d":
		unit = "days"
	case "week", "weeks", "w":
		unit = "weeks"
	case "month", "months", "m":
		unit = "months"
	default:
		return DueDelta{}, fmt.Errorf("unknown due delta unit %q", unit)
	}
	if amount < 0 {
		return DueDelta{}, fmt.Errorf("negative due delta %d", amount)
	}
	return DueDelta{Unit: unit, Amount: amount}, nil
}

// Before returns due minus the delta.
func (d DueDelta) Before(due time.Time) time.Time {
	switch d.Unit {
	case "weeks":
		return due.AddDate(0, 0, -7*d.Amount)
	case "months":
		return due.AddDate(0, -d.Amount, 0)
	default:
		return due.AddDate(0, 0, -d.Amount)
	}
}

func (d DueDelta) String() string {
	return fmt.Sprintf("%d %s", d.Amount, d.Unit)
}

// ComputeState derives the DueSoon, Overdue and Today flags from the task's
// dates relative to today.
func ComputeState(t *Task, today time.Time, delta DueDelta) {
	today = Day(today)
	due := t.Due
	if due.IsZero() {
		due = FarFuture
	}
	alert := delta.Before(due)
	t.DueSoon = !today.Before(alert) && !today.After(due)
	t.Overdue = due.Before(today)
	t.Today = !t.Start.IsZero() && t.Start.Equal(today)
}
