package store

import (
	"context"
	"fmt"

	"github.com/nhalm/tanktrack/internal/model"
)

// GetCategories returns every known category in insertion order.
// Categories persist even after the last item referencing them is gone.
func (s *SQLiteStore) GetCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT name, created_at FROM categories ORDER BY created_at, name")
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
