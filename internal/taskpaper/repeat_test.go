package taskpaper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		in      string
		want    Interval
		wantErr bool
	}{
		{in: "1d", want: Interval{Count: 1, Unit: 'd'}},
		{in: "2w", want: Interval{Count: 2, Unit: 'w'}},
		{in: "12m", want: Interval{Count: 12, Unit: 'm'}},
		{in: " 3d ", want: Interval{Count: 3, Unit: 'd'}},
		{in: "0d", wantErr: true},
		{in: "d", wantErr: true},
		{in: "2y", wantErr: true},
		{in: "weekly", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInterval(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidInterval))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntervalNext(t *testing.T) {
	tests := []struct {
		iv   Interval
		from string
		want string
	}{
		{Interval{Count: 3, Unit: 'd'}, "2024-02-27", "2024-03-01"},
		{Interval{Count: 2, Unit: 'w'}, "2024-06-01", "2024-06-15"},
		{Interval{Count: 1, Unit: 'm'}, "2024-01-31", "2024-02-29"},
		{Interval{Count: 1, Unit: 'm'}, "2023-01-31", "2023-02-28"},
		{Interval{Count: 12, Unit: 'm'}, "2024-06-15", "2025-06-15"},
	}
	for _, tt := range tests {
		t.Run(tt.iv.String()+"/"+tt.from, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.iv.Next(day(tt.from))))
		})
	}
}

func TestExpandRepeats(t *testing.T) {
	doc := mustParse(t, "Repeat:\n"+
		"- water plants @repeat(1w) @project(home) @prio(low) @start(2024-06-01)\n"+
		"- pay rent @repeat(1m) @project(home) @prio(high) @start(2024-06-01)\n")
	opts := testOpts()

	spawned := ExpandRepeats(doc, opts)
	require.Len(t, spawned, 1)
	got := spawned[0]
	assert.Equal(t, "home", got.Group)
	assert.Equal(t, "- water plants @prio(low) @start(2024-06-08)", got.Text)
	assert.Equal(t, day("2024-06-08"), got.Start)
	assert.Equal(t, PriorityLow, got.Priority)
	assert.False(t, got.Recurring)
	assert.False(t, got.Done)
	assert.True(t, got.Interval.IsZero())

	tmpl := doc.Tasks[0]
	assert.Equal(t, GroupRepeat, tmpl.Group)
	assert.Equal(t, "- water plants @repeat(1w) @project(home) @prio(low) @start(2024-06-08)", tmpl.Text)
	assert.Equal(t, day("2024-06-08"), tmpl.Start)
	assert.Equal(t, "- pay rent @repeat(1m) @project(home) @prio(high) @start(2024-06-01)", doc.Tasks[1].Text)
	assert.Len(t, doc.Tasks, 3)

	// One step per run: the advanced template is not due again today.
	assert.Empty(t, ExpandRepeats(doc, opts))
}

func TestExpandRepeatsNoCatchUp(t *testing.T) {
	doc := mustParse(t, "Repeat:\n- standup notes @repeat(1d) @project(work) @prio(medium) @start(2024-06-01)\n")
	spawned := ExpandRepeats(doc, testOpts())
	require.Len(t, spawned, 1)
	assert.Equal(t, day("2024-06-02"), spawned[0].Start)
	assert.Equal(t, day("2024-06-02"), doc.Tasks[0].Start)
}

func TestExpandRepeatsTagsSpawnedTask(t *testing.T) {
	doc := mustParse(t, "Repeat:\n- report @repeat(1w) @project(work) @prio(high) @start(2024-06-03) @due(2024-06-11)\n")
	spawned := ExpandRepeats(doc, testOpts())
	require.Len(t, spawned, 1)
	assert.Equal(t, "- report @prio(high) @due(2024-06-11) @start(2024-06-10) @duesoon @today", spawned[0].Text)
	assert.Equal(t, "- report @repeat(1w) @project(work) @prio(high) @due(2024-06-11) @start(2024-06-10) @duesoon @today", doc.Tasks[0].Text)
}

func TestExpandRepeatsMalformedInterval(t *testing.T) {
	doc := mustParse(t, "Repeat:\n- broken @repeat(fortnightly) @project(home) @prio(low) @start(2024-06-01)\n")
	assert.Empty(t, ExpandRepeats(doc, testOpts()))
	assert.Equal(t, GroupError, doc.Tasks[0].Group)
	require.Len(t, doc.Errors, 1)
	assert.True(t, errors.Is(doc.Errors[0], ErrInvalidInterval))
}

func TestExpandRepeatsIgnoresOtherGroups(t *testing.T) {
	doc := mustParse(t, "home:\n- loose @repeat(1d) @project(home) @prio(low) @start(2024-06-01)\n")
	assert.Empty(t, ExpandRepeats(doc, testOpts()))
	assert.Equal(t, "home", doc.Tasks[0].Group)
}
