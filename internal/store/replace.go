package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhalm/tanktrack/internal/model"
)

// ExportState returns the full store contents: every item with tasks
// and notes, and the category name list in insertion order.
func (s *SQLiteStore) ExportState(ctx context.Context) ([]model.Item, []string, error) {
	items, err := s.GetItems(ctx, ItemFilter{})
	if err != nil {
		return nil, nil, err
	}
	categories, err := s.GetCategories(ctx)
	if err != nil {
		return nil, nil, err
	}
	return items, model.CategoryNames(categories), nil
}

// ReplaceAll swaps the entire store contents for the given items and
// categories in one transaction. Item ids from the input are kept so an
// export/import round trip is stable. Nothing is written if any row
// fails.
func (s *SQLiteStore) ReplaceAll(
	ctx context.Context,
	items []model.Item,
	categories []string,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"notes", "tasks", "items", "categories"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	now := time.Now().UTC()
	for _, name := range categories {
		if err := ensureCategory(ctx, tx, name); err != nil {
			return err
		}
	}

	for _, item := range items {
		if err := ensureCategory(ctx, tx, item.Category); err != nil {
			return err
		}

		createdAt := item.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO items (id, name, category, type, size, image, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.Name, item.Category, item.Type, item.Size,
			item.Image, createdAt, now,
		); err != nil {
			return fmt.Errorf("importing item %q: %w", item.Name, err)
		}

		for i := range item.Tasks {
			if item.Tasks[i].ID == "" {
				item.Tasks[i].ID = uuid.New().String()
			}
		}
		if err := replaceTasks(ctx, tx, item.ID, item.Tasks); err != nil {
			return err
		}

		for _, note := range item.Notes {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO notes (id, item_id, date, text) VALUES (?, ?, ?, ?)",
				note.ID, item.ID, note.Date, note.Text,
			); err != nil {
				return fmt.Errorf("importing note for item %q: %w", item.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}
