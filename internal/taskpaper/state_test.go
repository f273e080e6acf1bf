package taskpaper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeState(t *testing.T) {
	today := day("2024-06-10")
	threeDays := DueDelta{Unit: "days", Amount: 3}
	tests := []struct {
		name        string
		start, due  string
		delta       DueDelta
		wantSoon    bool
		wantOverdue bool
		wantToday   bool
	}{
		{name: "inside window", start: "2024-06-01", due: "2024-06-12", delta: threeDays, wantSoon: true},
		{name: "window edge", start: "2024-06-01", due: "2024-06-13", delta: threeDays, wantSoon: true},
		{name: "before window", start: "2024-06-01", due: "2024-06-14", delta: threeDays},
		{name: "due today", start: "2024-06-01", due: "2024-06-10", delta: threeDays, wantSoon: true},
		{name: "past due", start: "2024-06-01", due: "2024-06-09", delta: threeDays, wantOverdue: true},
		{name: "starts today", start: "2024-06-10", due: "2999-12-31", delta: threeDays, wantToday: true},
		{name: "weeks", start: "2024-06-01", due: "2024-06-20", delta: DueDelta{Unit: "weeks", Amount: 2}, wantSoon: true},
		{name: "months", start: "2024-06-01", due: "2024-07-05", delta: DueDelta{Unit: "months", Amount: 1}, wantSoon: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{Start: day(tt.start), Due: day(tt.due)}
			ComputeState(task, today, tt.delta)
			assert.Equal(t, tt.wantSoon, task.DueSoon, "duesoon")
			assert.Equal(t, tt.wantOverdue, task.Overdue, "overdue")
			assert.Equal(t, tt.wantToday, task.Today, "today")
		})
	}
}

func TestComputeStateFarFutureNeverFlags(t *testing.T) {
	task := &Task{Start: day("2024-01-01")}
	ComputeState(task, day("2024-06-10"), DueDelta{Unit: "days", Amount: 30})
	assert.False(t, task.DueSoon)
	assert.False(t, task.Overdue)
}

func TestParseDueDelta(t *testing.T) {
	d, err := ParseDueDelta("Weeks", 2)
	require.NoError(t, err)
	assert.Equal(t, DueDelta{Unit: "weeks", Amount: 2}, d)
	assert.Equal(t, "2 weeks", d.String())

	_, err = ParseDueDelta("hours", 1)
	assert.Error(t, err)
	_, err = ParseDueDelta("days", -1)
	assert.Error(t, err)
}
