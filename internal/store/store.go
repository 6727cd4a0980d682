package store

import (
	"context"
	"time"

	"github.com/nhalm/tanktrack/internal/model"
)

// ItemFilter controls filtering for item queries.
type ItemFilter struct {
	Category *string // category name, or nil (all)
	Query    *string // substring search over item names
}

// Store defines the persistence interface for items, their tasks and
// notes, and the category set. Every mutation that touches task history
// is applied through the schedule engine so its invariants hold for all
// persisted state.
type Store interface {
	// === Items ===

	GetItems(ctx context.Context, filter ItemFilter) ([]model.Item, error)
	GetItemByID(ctx context.Context, id int64) (*model.Item, error)
	CreateItem(ctx context.Context, item model.Item) (*model.Item, error)
	UpdateItem(ctx context.Context, item model.Item) (*model.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	CountItems(ctx context.Context) (int, error)

	// === Task completion & history ===

	CompleteTask(ctx context.Context, itemID int64, taskIndex int, side string) (*model.Item, error)
	DeleteHistoryEntry(ctx context.Context, itemID int64, taskIndex, historyIndex int) (*model.Item, error)
	EditHistoryEntryDate(ctx context.Context, itemID int64, taskIndex, historyIndex int, newDate time.Time) (*model.Item, error)

	// === Notes ===

	AddNote(ctx context.Context, itemID int64, text string) (*model.Item, error)
	DeleteNote(ctx context.Context, itemID, noteID int64) (*model.Item, error)

	// === Categories ===

	GetCategories(ctx context.Context) ([]model.Category, error)

	// === Whole-state operations ===

	Seed(ctx context.Context) error
	ExportState(ctx context.Context) ([]model.Item, []string, error)
	ReplaceAll(ctx context.Context, items []model.Item, categories []string) error

	Close() error
}
