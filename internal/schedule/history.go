package schedule

import (
	"sort"
	"time"

	"github.com/nhalm/tanktrack/internal/model"
)

// Complete records a completion of the task at taskIndex, prepending a
// history entry dated now (side may be empty) and setting LastCompleted.
// Repeated calls append repeated entries; completions are never
// deduplicated, so logging the same task twice in one day is two entries.
//
// The returned item is a copy; the input is untouched. The bool is false
// when taskIndex is out of range, in which case the item is returned
// unchanged.
func Complete(item model.Item, taskIndex int, side string, now time.Time) (model.Item, bool) {
	if taskIndex < 0 || taskIndex >= len(item.Tasks) {
		return item, false
	}

	item.Tasks = cloneTasks(item.Tasks)
	task := &item.Tasks[taskIndex]

	entry := model.HistoryEntry{Date: now, Side: side}
	task.History = append([]model.HistoryEntry{entry}, task.History...)
	task.LastCompleted = &entry.Date

	return item, true
}

// DeleteHistoryEntry removes the entry at historyIndex from the task at
// taskIndex and reconciles LastCompleted from the new newest entry.
// Deletion preserves the descending order, so no re-sort is needed.
// Out-of-range indexes leave the item unchanged and return false.
func DeleteHistoryEntry(item model.Item, taskIndex, historyIndex int) (model.Item, bool) {
	if taskIndex < 0 || taskIndex >= len(item.Tasks) {
		return item, false
	}
	if historyIndex < 0 || historyIndex >= len(item.Tasks[taskIndex].History) {
		return item, false
	}

	item.Tasks = cloneTasks(item.Tasks)
	task := &item.Tasks[taskIndex]

	task.History = append(task.History[:historyIndex:historyIndex], task.History[historyIndex+1:]...)
	reconcileLastCompleted(task)

	return item, true
}

// EditHistoryEntryDate replaces the date of the entry at historyIndex,
// keeping its side label. The new date is supplied as a calendar day and
// normalized to local midnight so day-level computations stay stable
// across repeated edits. Because an edit can move the entry anywhere in
// the ordering, the history is re-sorted descending before LastCompleted
// is reconciled. Out-of-range indexes leave the item unchanged and
// return false.
func EditHistoryEntryDate(item model.Item, taskIndex, historyIndex int, newDate time.Time) (model.Item, bool) {
	if taskIndex < 0 || taskIndex >= len(item.Tasks) {
		return item, false
	}
	if historyIndex < 0 || historyIndex >= len(item.Tasks[taskIndex].History) {
		return item, false
	}

	item.Tasks = cloneTasks(item.Tasks)
	task := &item.Tasks[taskIndex]

	task.History[historyIndex].Date = startOfDay(newDate)
	sortHistory(task.History)
	reconcileLastCompleted(task)

	return item, true
}

// Normalize re-sorts every task's history descending and reconciles
// LastCompleted from it. Imported documents pass through here so the
// engine's invariants hold regardless of what the document claimed.
func Normalize(item model.Item) model.Item {
	item.Tasks = cloneTasks(item.Tasks)
	for i := range item.Tasks {
		sortHistory(item.Tasks[i].History)
		reconcileLastCompleted(&item.Tasks[i])
	}
	return item
}

// reconcileLastCompleted derives LastCompleted from the history head.
// Nil exactly when the history is empty.
func reconcileLastCompleted(task *model.Task) {
	if len(task.History) == 0 {
		task.LastCompleted = nil
		return
	}
	d := task.History[0].Date
	task.LastCompleted = &d
}

// sortHistory orders entries newest first. The sort is stable so entries
// edited onto the same date keep their relative order.
func sortHistory(history []model.HistoryEntry) {
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})
}

// cloneTasks deep-copies the task slice including each history slice, so
// engine operations are whole-value replacements rather than in-place
// mutations of shared state.
func cloneTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		history := make([]model.HistoryEntry, len(out[i].History))
		copy(history, out[i].History)
		out[i].History = history
		if out[i].LastCompleted != nil {
			d := *out[i].LastCompleted
			out[i].LastCompleted = &d
		}
	}
	return out
}
