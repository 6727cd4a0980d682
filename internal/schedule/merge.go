package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/nhalm/tanktrack/internal/model"
)

// MergeTasks reconciles an item's stored task list with the redefined
// list submitted through the edit form.
//
// Form tasks are matched to existing tasks by name equality, not by
// position. A matched task keeps the existing history, LastCompleted and
// stable id, and takes the form's frequency. An unmatched form task is
// new: it gets a fresh id and starts with empty history. Existing tasks
// absent from the form are dropped along with their history. Renaming a
// task is therefore indistinguishable from deleting it and adding a new
// one.
func MergeTasks(existing, form []model.Task) []model.Task {
	prev := make(map[string]model.Task, len(existing))
	for _, t := range existing {
		prev[t.Name] = t
	}

	merged := make([]model.Task, 0, len(form))
	for _, f := range form {
		old, ok := prev[f.Name]
		if !ok {
			merged = append(merged, model.Task{
				ID:            uuid.New().String(),
				Name:          f.Name,
				FrequencyDays: f.FrequencyDays,
			})
			continue
		}

		history := make([]model.HistoryEntry, len(old.History))
		copy(history, old.History)
		var last *time.Time
		if old.LastCompleted != nil {
			d := *old.LastCompleted
			last = &d
		}
		merged = append(merged, model.Task{
			ID:            old.ID,
			Name:          f.Name,
			FrequencyDays: f.FrequencyDays,
			LastCompleted: last,
			History:       history,
		})
	}

	return merged
}
