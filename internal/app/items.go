package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhalm/tanktrack/internal/backup"
	"github.com/nhalm/tanktrack/internal/model"
)

// itemLoadedMsg carries an item loaded for the detail view.
type itemLoadedMsg struct {
	item *model.Item
	err  error
}

// mutationDoneMsg carries the item state after a task/history/note
// mutation.
type mutationDoneMsg struct {
	item *model.Item
	err  error
}

// itemSavedMsg is sent after an item is created or updated.
type itemSavedMsg struct {
	item *model.Item
	err  error
}

// itemDeletedMsg is sent after an item is deleted.
type itemDeletedMsg struct{ err error }

// formReadyMsg carries the category options (and, for edits, the item)
// into the form view.
type formReadyMsg struct {
	categories []string
	item       *model.Item
}

// backupDoneMsg is sent after an export attempt.
type backupDoneMsg struct {
	path string
	err  error
}

// importDoneMsg is sent after an import attempt.
type importDoneMsg struct {
	count int
	err   error
}

// loadItem loads one item for the detail view.
func (m *Model) loadItem(id int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		item, err := s.GetItemByID(context.Background(), id)
		return itemLoadedMsg{item: item, err: err}
	}
}

// completeTask records a completion and returns the refreshed item.
func (m *Model) completeTask(itemID int64, taskIndex int, side string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		item, err := s.CompleteTask(context.Background(), itemID, taskIndex, side)
		return mutationDoneMsg{item: item, err: err}
	}
}

// deleteHistoryEntry removes a completion record.
func (m *Model) deleteHistoryEntry(itemID int64, taskIndex, historyIndex int) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		item, err := s.DeleteHistoryEntry(
			context.Background(), itemID, taskIndex, historyIndex)
		return mutationDoneMsg{item: item, err: err}
	}
}

// editHistoryEntry moves a completion record to a new date.
func (m *Model) editHistoryEntry(
	itemID int64,
	taskIndex, historyIndex int,
	date time.Time,
) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		item, err := s.EditHistoryEntryDate(
			context.Background(), itemID, taskIndex, historyIndex, date)
		return mutationDoneMsg{item: item, err: err}
	}
}

// addNote appends a note to the item.
func (m *Model) addNote(itemID int64, text string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		item, err := s.AddNote(context.Background(), itemID, text)
		return mutationDoneMsg{item: item, err: err}
	}
}

// deleteNote removes a note from the item.
func (m *Model) deleteNote(itemID, noteID int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		item, err := s.DeleteNote(context.Background(), itemID, noteID)
		return mutationDoneMsg{item: item, err: err}
	}
}

// createItem persists a new item.
func (m *Model) createItem(item model.Item) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		created, err := s.CreateItem(context.Background(), item)
		return itemSavedMsg{item: created, err: err}
	}
}

// updateItem persists an edited item.
func (m *Model) updateItem(item model.Item) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		updated, err := s.UpdateItem(context.Background(), item)
		return itemSavedMsg{item: updated, err: err}
	}
}

// deleteItem removes an item from the store.
func (m *Model) deleteItem(id int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return itemDeletedMsg{err: s.DeleteItem(context.Background(), id)}
	}
}

// loadFormCategories loads the category options for the form; item is
// non-nil when opening the form in edit mode.
func (m *Model) loadFormCategories(item *model.Item) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		categories, _ := s.GetCategories(context.Background())
		return formReadyMsg{
			categories: model.CategoryNames(categories),
			item:       item,
		}
	}
}

// startEditItem loads an item and the category options, then opens the
// edit form.
func (m *Model) startEditItem(id int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx := context.Background()
		item, err := s.GetItemByID(ctx, id)
		if err != nil {
			return itemSavedMsg{err: err}
		}
		categories, _ := s.GetCategories(ctx)
		return formReadyMsg{
			categories: model.CategoryNames(categories),
			item:       item,
		}
	}
}

// exportBackup writes the full collection to the configured export path.
func (m *Model) exportBackup() tea.Cmd {
	s := m.store
	path := m.config.ExportPath
	return func() tea.Msg {
		items, categories, err := s.ExportState(context.Background())
		if err != nil {
			return backupDoneMsg{err: err}
		}
		if err := backup.WriteFile(path, items, categories); err != nil {
			return backupDoneMsg{err: err}
		}
		return backupDoneMsg{path: path}
	}
}

// importBackup reads the configured export path and replaces the store
// contents. A file that fails to decode leaves the store untouched.
func (m *Model) importBackup() tea.Cmd {
	s := m.store
	path := m.config.ExportPath
	return func() tea.Msg {
		doc, err := backup.ReadFile(path)
		if err != nil {
			return importDoneMsg{err: err}
		}
		if err := s.ReplaceAll(context.Background(), doc.Items, doc.Categories); err != nil {
			return importDoneMsg{err: err}
		}
		return importDoneMsg{count: len(doc.Items)}
	}
}
