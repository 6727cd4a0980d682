package store

import (
	"context"
	"time"

	"github.com/nhalm/tanktrack/internal/model"
	"github.com/nhalm/tanktrack/internal/schedule"
)

// CompleteTask records a completion for the task at taskIndex: a new
// history entry dated now is prepended and the task's last-completed
// date moves forward. An out-of-range index is a no-op.
func (s *SQLiteStore) CompleteTask(
	ctx context.Context,
	itemID int64,
	taskIndex int,
	side string,
) (*model.Item, error) {
	return s.applyTaskOp(ctx, itemID, taskIndex, func(item model.Item) (model.Item, bool) {
		return schedule.Complete(item, taskIndex, side, time.Now())
	})
}

// DeleteHistoryEntry removes one completion record and reconciles the
// task's last-completed date from whatever remains. Out-of-range
// indexes are no-ops.
func (s *SQLiteStore) DeleteHistoryEntry(
	ctx context.Context,
	itemID int64,
	taskIndex, historyIndex int,
) (*model.Item, error) {
	return s.applyTaskOp(ctx, itemID, taskIndex, func(item model.Item) (model.Item, bool) {
		return schedule.DeleteHistoryEntry(item, taskIndex, historyIndex)
	})
}

// EditHistoryEntryDate moves a completion record to a new date. The
// history is re-sorted newest first and the last-completed date follows
// the new newest entry.
func (s *SQLiteStore) EditHistoryEntryDate(
	ctx context.Context,
	itemID int64,
	taskIndex, historyIndex int,
	newDate time.Time,
) (*model.Item, error) {
	return s.applyTaskOp(ctx, itemID, taskIndex, func(item model.Item) (model.Item, bool) {
		return schedule.EditHistoryEntryDate(item, taskIndex, historyIndex, newDate)
	})
}

// applyTaskOp loads the item, applies a history operation, and persists
// the touched task row when the operation changed anything. Operations
// that report no change leave the store untouched and return the item
// as loaded.
func (s *SQLiteStore) applyTaskOp(
	ctx context.Context,
	itemID int64,
	taskIndex int,
	op func(model.Item) (model.Item, bool),
) (*model.Item, error) {
	item, err := s.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	updated, ok := op(*item)
	if !ok {
		return item, nil
	}

	if err := s.updateTask(ctx, updated.Tasks[taskIndex]); err != nil {
		return nil, err
	}
	return &updated, nil
}
