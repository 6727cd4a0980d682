package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhalm/tanktrack/internal/model"
	"github.com/nhalm/tanktrack/internal/schedule"
)

// GetItems retrieves items matching the filter, each with its ordered
// task list and notes (newest first).
func (s *SQLiteStore) GetItems(
	ctx context.Context,
	filter ItemFilter,
) ([]model.Item, error) {
	var conditions []string
	var args []interface{}

	if filter.Category != nil {
		conditions = append(conditions, "category = ?")
		args = append(args, *filter.Category)
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, "%"+*filter.Query+"%")
	}

	query := "SELECT * FROM items"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		if err := s.loadItemChildren(ctx, &items[i]); err != nil {
			return nil, err
		}
	}

	return items, nil
}

// GetItemByID retrieves a single item with its tasks and notes.
func (s *SQLiteStore) GetItemByID(
	ctx context.Context,
	id int64,
) (*model.Item, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM items WHERE id = ?", id)

	item, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("getting item %d: %w", id, err)
	}

	if err := s.loadItemChildren(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CountItems returns the total number of items.
func (s *SQLiteStore) CountItems(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM items"); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return count, nil
}

// CreateItem inserts a new item with its initial task list, assigning the
// item id and stable task ids. A previously unseen category is inserted
// into the category set in the same transaction.
func (s *SQLiteStore) CreateItem(
	ctx context.Context,
	item model.Item,
) (*model.Item, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, fmt.Errorf("item name must not be empty")
	}
	if strings.TrimSpace(item.Category) == "" {
		return nil, fmt.Errorf("item category must not be empty")
	}

	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	for i := range item.Tasks {
		if item.Tasks[i].ID == "" {
			item.Tasks[i].ID = uuid.New().String()
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := ensureCategory(ctx, tx, item.Category); err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO items (name, category, type, size, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.Name, item.Category, item.Type, item.Size, item.Image,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}
	item.ID, err = result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading new item id: %w", err)
	}

	if err := replaceTasks(ctx, tx, item.ID, item.Tasks); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item create: %w", err)
	}
	return &item, nil
}

// UpdateItem saves an edited item. The submitted task list is reconciled
// with the stored one through schedule.MergeTasks: tasks matched by name
// keep their history, new tasks start empty, and tasks missing from the
// submission are dropped for good. Notes are untouched by an edit.
func (s *SQLiteStore) UpdateItem(
	ctx context.Context,
	item model.Item,
) (*model.Item, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, fmt.Errorf("item name must not be empty")
	}
	if strings.TrimSpace(item.Category) == "" {
		return nil, fmt.Errorf("item category must not be empty")
	}

	existing, err := s.GetItemByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	item.Tasks = schedule.MergeTasks(existing.Tasks, item.Tasks)
	item.Notes = existing.Notes
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := ensureCategory(ctx, tx, item.Category); err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE items SET
			name = ?, category = ?, type = ?, size = ?, image = ?, updated_at = ?
		WHERE id = ?`,
		item.Name, item.Category, item.Type, item.Size, item.Image,
		item.UpdatedAt, item.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item %d: %w", item.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, fmt.Errorf("item %d not found", item.ID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE item_id = ?", item.ID); err != nil {
		return nil, fmt.Errorf("clearing tasks for item %d: %w", item.ID, err)
	}
	if err := replaceTasks(ctx, tx, item.ID, item.Tasks); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item update: %w", err)
	}
	return &item, nil
}

// DeleteItem removes an item by id. Cascades to tasks and notes. The
// item's category stays in the category set even if nothing references
// it anymore.
func (s *SQLiteStore) DeleteItem(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting item %d: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("item %d not found", id)
	}
	return nil
}

// loadItemChildren populates the item's task list (by position) and
// notes (newest first).
func (s *SQLiteStore) loadItemChildren(ctx context.Context, item *model.Item) error {
	taskRows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM tasks WHERE item_id = ? ORDER BY position", item.ID)
	if err != nil {
		return fmt.Errorf("querying tasks for item %d: %w", item.ID, err)
	}
	defer taskRows.Close()

	item.Tasks = nil
	for taskRows.Next() {
		task, err := scanTask(taskRows)
		if err != nil {
			return err
		}
		item.Tasks = append(item.Tasks, task)
	}
	if err := taskRows.Err(); err != nil {
		return err
	}

	noteRows, err := s.db.QueryxContext(ctx,
		"SELECT id, date, text FROM notes WHERE item_id = ? ORDER BY date DESC, id DESC", item.ID)
	if err != nil {
		return fmt.Errorf("querying notes for item %d: %w", item.ID, err)
	}
	defer noteRows.Close()

	item.Notes = nil
	for noteRows.Next() {
		var n model.Note
		if err := noteRows.Scan(&n.ID, &n.Date, &n.Text); err != nil {
			return fmt.Errorf("scanning note row: %w", err)
		}
		item.Notes = append(item.Notes, n)
	}
	return noteRows.Err()
}

// replaceTasks inserts the item's tasks with sequential positions.
// Callers clear existing rows first when replacing.
func replaceTasks(ctx context.Context, tx *sqlx.Tx, itemID int64, tasks []model.Task) error {
	const query = `
		INSERT INTO tasks (id, item_id, position, name, frequency_days, last_completed, history)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing task insert: %w", err)
	}
	defer stmt.Close()

	for pos, t := range tasks {
		history, err := json.Marshal(t.History)
		if err != nil {
			return fmt.Errorf("marshaling history for task %q: %w", t.Name, err)
		}
		if _, err := stmt.ExecContext(ctx,
			t.ID, itemID, pos, t.Name, t.FrequencyDays,
			t.LastCompleted, string(history),
		); err != nil {
			return fmt.Errorf("inserting task %q: %w", t.Name, err)
		}
	}
	return nil
}

// updateTask persists a single task row after an engine operation.
func (s *SQLiteStore) updateTask(ctx context.Context, task model.Task) error {
	history, err := json.Marshal(task.History)
	if err != nil {
		return fmt.Errorf("marshaling history for task %q: %w", task.Name, err)
	}
	_, err = s.db.ExecContext(ctx,
		"UPDATE tasks SET last_completed = ?, history = ? WHERE id = ?",
		task.LastCompleted, string(history), task.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task %q: %w", task.Name, err)
	}
	return nil
}

// ensureCategory inserts the category if it is not yet in the set.
func ensureCategory(ctx context.Context, tx *sqlx.Tx, name string) error {
	_, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO categories (name, created_at) VALUES (?, ?)",
		name, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("ensuring category %q: %w", name, err)
	}
	return nil
}

// scanItem scans an item row from sqlx.Rows or sqlx.Row.
func scanItem(row interface{ Scan(dest ...interface{}) error }) (model.Item, error) {
	var item model.Item
	err := row.Scan(
		&item.ID, &item.Name, &item.Category, &item.Type, &item.Size,
		&item.Image, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return model.Item{}, fmt.Errorf("scanning item row: %w", err)
	}
	return item, nil
}

// scanTask scans a task row, decoding the history JSON column.
func scanTask(row interface{ Scan(dest ...interface{}) error }) (model.Task, error) {
	var (
		task          model.Task
		itemID        int64
		position      int
		lastCompleted sql.NullTime
		historyJSON   string
	)

	err := row.Scan(
		&task.ID, &itemID, &position, &task.Name, &task.FrequencyDays,
		&lastCompleted, &historyJSON,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	if lastCompleted.Valid {
		d := lastCompleted.Time
		task.LastCompleted = &d
	}
	if historyJSON != "" {
		if err := json.Unmarshal([]byte(historyJSON), &task.History); err != nil {
			return model.Task{}, fmt.Errorf("unmarshaling history: %w", err)
		}
	}

	return task, nil
}
