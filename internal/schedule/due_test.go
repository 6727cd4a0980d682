package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nhalm/tanktrack/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func taskCompletedOn(last time.Time, frequencyDays int) model.Task {
	return model.Task{
		Name:          "Water Change",
		FrequencyDays: frequencyDays,
		LastCompleted: &last,
		History:       []model.HistoryEntry{{Date: last}},
	}
}

func TestDue_NeverCompleted(t *testing.T) {
	task := model.Task{Name: "Water Change", FrequencyDays: 7}

	// Always overdue, regardless of now.
	for _, now := range []time.Time{
		date(2020, time.January, 1),
		date(2024, time.June, 15),
		date(2999, time.December, 31),
	} {
		s := Due(task, now)
		assert.True(t, s.Overdue, "never-completed task must be overdue at %v", now)
		assert.Equal(t, 0, s.DaysDelta)
	}
}

func TestDue_BoundaryDay(t *testing.T) {
	last := date(2024, time.January, 1)
	task := taskCompletedOn(last, 7)

	tests := []struct {
		name      string
		now       time.Time
		wantOver  bool
		wantDelta int
	}{
		{"day before due", date(2024, time.January, 7), false, -1},
		{"exactly on due date", date(2024, time.January, 8), false, 0},
		{"one day past due", date(2024, time.January, 9), true, 1},
		{"well past due", date(2024, time.January, 20), true, 12},
		{"same day as completion", date(2024, time.January, 1), false, -7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Due(task, tt.now)
			assert.Equal(t, tt.wantOver, s.Overdue)
			assert.Equal(t, tt.wantDelta, s.DaysDelta)
		})
	}
}

func TestDue_IgnoresTimeOfDay(t *testing.T) {
	last := time.Date(2024, time.January, 1, 23, 50, 0, 0, time.Local)
	task := taskCompletedOn(last, 7)

	// 08:00 on the due date is still "due today" even though fewer than
	// 7*24 hours remain.
	now := time.Date(2024, time.January, 8, 8, 0, 0, 0, time.Local)
	s := Due(task, now)
	assert.False(t, s.Overdue)
	assert.Equal(t, 0, s.DaysDelta)
}

func TestDue_AcrossDSTTransitions(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	t.Run("spring forward", func(t *testing.T) {
		// DST starts 2026-03-08: the due date is a 23-hour day.
		last := time.Date(2026, time.March, 7, 0, 0, 0, 0, loc)
		task := taskCompletedOn(last, 1)

		onDue := Due(task, time.Date(2026, time.March, 8, 10, 0, 0, 0, loc))
		assert.False(t, onDue.Overdue)
		assert.Equal(t, 0, onDue.DaysDelta)

		dayAfter := Due(task, time.Date(2026, time.March, 9, 10, 0, 0, 0, loc))
		assert.True(t, dayAfter.Overdue)
		assert.Equal(t, 1, dayAfter.DaysDelta)
	})

	t.Run("fall back", func(t *testing.T) {
		// DST ends 2026-11-01: a 25-hour day sits inside the span.
		last := time.Date(2026, time.October, 31, 0, 0, 0, 0, loc)
		task := taskCompletedOn(last, 1)

		dayAfter := Due(task, time.Date(2026, time.November, 2, 10, 0, 0, 0, loc))
		assert.True(t, dayAfter.Overdue)
		assert.Equal(t, 1, dayAfter.DaysDelta)
	})
}

func TestDueLabel(t *testing.T) {
	assert.Equal(t, "Due 1 days ago", DueLabel(Status{Overdue: true, DaysDelta: 1}))
	assert.Equal(t, "Due 0 days ago", DueLabel(Status{Overdue: true, DaysDelta: 0}))
	assert.Equal(t, "Due in 3 days", DueLabel(Status{Overdue: false, DaysDelta: -3}))
	assert.Equal(t, "Due in 0 days", DueLabel(Status{Overdue: false, DaysDelta: 0}))
}

func TestDue_ExampleScenario(t *testing.T) {
	// Item 1, "Water Change" every 7 days, last completed 2024-01-01,
	// observed at 2024-01-09.
	task := taskCompletedOn(date(2024, time.January, 1), 7)
	s := Due(task, date(2024, time.January, 9))

	assert.True(t, s.Overdue)
	assert.Equal(t, 1, s.DaysDelta)
	assert.Equal(t, "Due 1 days ago", DueLabel(s))
}

func TestOverdueCount(t *testing.T) {
	now := date(2024, time.March, 1)

	items := []model.Item{
		{
			Name: "The Monster",
			Tasks: []model.Task{
				taskCompletedOn(date(2024, time.February, 1), 7),  // overdue
				taskCompletedOn(date(2024, time.February, 28), 30), // fine
			},
		},
		{
			Name: "Monstera",
			Tasks: []model.Task{
				{Name: "Watering", FrequencyDays: 3}, // never completed
			},
		},
		{Name: "Empty"},
	}

	assert.Equal(t, 2, OverdueCount(items, now))
	assert.Equal(t, 1, ItemOverdueCount(items[0], now))
	assert.Equal(t, 1, ItemOverdueCount(items[1], now))
	assert.Equal(t, 0, ItemOverdueCount(items[2], now))
}
