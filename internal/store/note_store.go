package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nhalm/tanktrack/internal/model"
)

// AddNote appends a dated free-text note to an item. Note ids are
// millisecond timestamps, bumped on collision so two quick notes on the
// same item stay distinct.
func (s *SQLiteStore) AddNote(
	ctx context.Context,
	itemID int64,
	text string,
) (*model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("note text must not be empty")
	}

	now := time.Now()
	note := model.Note{
		ID:   now.UnixMilli(),
		Date: now,
		Text: text,
	}

	for {
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO notes (id, item_id, date, text) VALUES (?, ?, ?, ?)",
			note.ID, itemID, note.Date, note.Text,
		)
		if err == nil {
			break
		}
		if isUniqueViolation(err) {
			note.ID++
			continue
		}
		return nil, fmt.Errorf("adding note to item %d: %w", itemID, err)
	}

	return s.GetItemByID(ctx, itemID)
}

// DeleteNote removes a note from an item. Deleting a note that does not
// exist is a no-op.
func (s *SQLiteStore) DeleteNote(
	ctx context.Context,
	itemID, noteID int64,
) (*model.Item, error) {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM notes WHERE item_id = ? AND id = ?", itemID, noteID)
	if err != nil {
		return nil, fmt.Errorf("deleting note %d from item %d: %w", noteID, itemID, err)
	}
	return s.GetItemByID(ctx, itemID)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
