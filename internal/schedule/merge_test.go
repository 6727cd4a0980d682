package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhalm/tanktrack/internal/model"
)

func completedTask(id, name string, frequencyDays int, dates ...time.Time) model.Task {
	task := model.Task{ID: id, Name: name, FrequencyDays: frequencyDays}
	for _, d := range dates {
		task.History = append([]model.HistoryEntry{{Date: d}}, task.History...)
	}
	if len(task.History) > 0 {
		task.LastCompleted = &task.History[0].Date
	}
	return task
}

func TestMergeTasks_MatchedNameKeepsHistory(t *testing.T) {
	existing := []model.Task{
		completedTask("t-1", "Water Change", 7,
			date(2024, time.January, 1),
			date(2024, time.January, 8),
			date(2024, time.January, 15),
		),
	}
	form := []model.Task{
		{Name: "Water Change", FrequencyDays: 14},
	}

	merged := MergeTasks(existing, form)

	require.Len(t, merged, 1)
	got := merged[0]
	assert.Equal(t, "t-1", got.ID, "stable id survives the edit")
	assert.Equal(t, 14, got.FrequencyDays, "frequency comes from the form")
	require.Len(t, got.History, 3)
	assert.True(t, got.LastCompleted.Equal(date(2024, time.January, 15)))
}

func TestMergeTasks_RemovedTaskDropsHistory(t *testing.T) {
	existing := []model.Task{
		completedTask("t-1", "Water Change", 7, date(2024, time.January, 1)),
		completedTask("t-2", "Clean Filter", 30, date(2024, time.January, 5)),
	}
	form := []model.Task{
		{Name: "Water Change", FrequencyDays: 7},
	}

	merged := MergeTasks(existing, form)

	require.Len(t, merged, 1)
	assert.Equal(t, "Water Change", merged[0].Name)
}

func TestMergeTasks_NewTaskStartsEmpty(t *testing.T) {
	existing := []model.Task{
		completedTask("t-1", "Water Change", 7, date(2024, time.January, 1)),
	}
	form := []model.Task{
		{Name: "Water Change", FrequencyDays: 7},
		{Name: "Test Parameters", FrequencyDays: 3},
	}

	merged := MergeTasks(existing, form)

	require.Len(t, merged, 2)
	added := merged[1]
	assert.Equal(t, "Test Parameters", added.Name)
	assert.NotEmpty(t, added.ID)
	assert.NotEqual(t, "t-1", added.ID)
	assert.Empty(t, added.History)
	assert.Nil(t, added.LastCompleted)
}

func TestMergeTasks_RenameLosesHistory(t *testing.T) {
	// Renaming through the form is delete-then-add: the history does not
	// follow the task to its new name.
	existing := []model.Task{
		completedTask("t-1", "Water Change", 7, date(2024, time.January, 1)),
	}
	form := []model.Task{
		{Name: "Weekly Water Change", FrequencyDays: 7},
	}

	merged := MergeTasks(existing, form)

	require.Len(t, merged, 1)
	assert.Empty(t, merged[0].History)
	assert.Nil(t, merged[0].LastCompleted)
	assert.NotEqual(t, "t-1", merged[0].ID)
}

func TestMergeTasks_FormOrderWins(t *testing.T) {
	existing := []model.Task{
		completedTask("t-1", "Water Change", 7, date(2024, time.January, 1)),
		completedTask("t-2", "Clean Filter", 30, date(2024, time.January, 5)),
	}
	form := []model.Task{
		{Name: "Clean Filter", FrequencyDays: 30},
		{Name: "Water Change", FrequencyDays: 7},
	}

	merged := MergeTasks(existing, form)

	require.Len(t, merged, 2)
	assert.Equal(t, "t-2", merged[0].ID)
	assert.Equal(t, "t-1", merged[1].ID)
}

func TestMergeTasks_DoesNotAliasExistingHistory(t *testing.T) {
	existing := []model.Task{
		completedTask("t-1", "Water Change", 7, date(2024, time.January, 1)),
	}
	form := []model.Task{{Name: "Water Change", FrequencyDays: 7}}

	merged := MergeTasks(existing, form)
	merged[0].History[0].Side = "Left"

	assert.Empty(t, existing[0].History[0].Side)
}
