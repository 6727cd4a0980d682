package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhalm/tanktrack/internal/model"
	"github.com/nhalm/tanktrack/internal/store"
	"github.com/nhalm/tanktrack/tests/testutil"
)

func newItem(name, category string, tasks ...model.Task) model.Item {
	return model.Item{
		Name:     name,
		Category: category,
		Type:     "Freshwater",
		Size:     "20 Gallon",
		Tasks:    tasks,
	}
}

func TestCreateAndGetItem(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created, err := s.CreateItem(ctx, newItem("Office Tank", "home",
		model.Task{Name: "Water Change", FrequencyDays: 7},
		model.Task{Name: "Clean Glass", FrequencyDays: 14},
	))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := s.GetItemByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Office Tank", got.Name)
	require.Len(t, got.Tasks, 2)
	assert.Equal(t, "Water Change", got.Tasks[0].Name)
	assert.Equal(t, 7, got.Tasks[0].FrequencyDays)
	assert.NotEmpty(t, got.Tasks[0].ID)
	assert.Nil(t, got.Tasks[0].LastCompleted)
	assert.Empty(t, got.Tasks[0].History)

	cats, err := s.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"home"}, model.CategoryNames(cats))
}

func TestCreateItem_Validation(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.CreateItem(ctx, newItem("  ", "home"))
	assert.Error(t, err)

	_, err = s.CreateItem(ctx, newItem("Tank", ""))
	assert.Error(t, err)
}

func TestGetItems_Filter(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.CreateItem(ctx, newItem("Big Tank", "home"))
	require.NoError(t, err)
	_, err = s.CreateItem(ctx, newItem("Crab Cove", "hermit"))
	require.NoError(t, err)

	all, err := s.GetItems(ctx, store.ItemFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	hermit := "hermit"
	filtered, err := s.GetItems(ctx, store.ItemFilter{Category: &hermit})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Crab Cove", filtered[0].Name)

	query := "cove"
	searched, err := s.GetItems(ctx, store.ItemFilter{Query: &query})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, "Crab Cove", searched[0].Name)
}

func TestUpdateItem_MergesTasks(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created, err := s.CreateItem(ctx, newItem("Reef", "home",
		model.Task{Name: "Water Change", FrequencyDays: 7},
		model.Task{Name: "Dose Trace", FrequencyDays: 3},
	))
	require.NoError(t, err)

	completed, err := s.CompleteTask(ctx, created.ID, 0, "")
	require.NoError(t, err)
	require.Len(t, completed.Tasks[0].History, 1)
	keptID := completed.Tasks[0].ID

	edit := *completed
	edit.Name = "Reef Display"
	edit.Tasks = []model.Task{
		{Name: "Water Change", FrequencyDays: 14},
		{Name: "Feed Corals", FrequencyDays: 2},
	}

	updated, err := s.UpdateItem(ctx, edit)
	require.NoError(t, err)
	assert.Equal(t, "Reef Display", updated.Name)
	require.Len(t, updated.Tasks, 2)

	// Matched by name: history and id survive, frequency follows the edit.
	assert.Equal(t, keptID, updated.Tasks[0].ID)
	assert.Equal(t, 14, updated.Tasks[0].FrequencyDays)
	assert.Len(t, updated.Tasks[0].History, 1)
	require.NotNil(t, updated.Tasks[0].LastCompleted)

	// Brand new task starts with nothing.
	assert.Equal(t, "Feed Corals", updated.Tasks[1].Name)
	assert.Empty(t, updated.Tasks[1].History)
	assert.Nil(t, updated.Tasks[1].LastCompleted)

	// "Dose Trace" and its history are gone for good.
	reloaded, err := s.GetItemByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Tasks, 2)
	assert.Equal(t, "Water Change", reloaded.Tasks[0].Name)
	assert.Equal(t, "Feed Corals", reloaded.Tasks[1].Name)
}

func TestUpdateItem_NewCategoryAddedAtomically(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created, err := s.CreateItem(ctx, newItem("Sump", "home"))
	require.NoError(t, err)

	edit := *created
	edit.Category = "basement"
	_, err = s.UpdateItem(ctx, edit)
	require.NoError(t, err)

	cats, err := s.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"home", "basement"}, model.CategoryNames(cats))
}

func TestDeleteItem_KeepsCategory(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created, err := s.CreateItem(ctx, newItem("Quarantine", "hospital"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteItem(ctx, created.ID))

	count, err := s.CountItems(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	cats, err := s.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"hospital"}, model.CategoryNames(cats))

	assert.Error(t, s.DeleteItem(ctx, created.ID))
}

func TestCompleteTask_Persists(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created, err := s.CreateItem(ctx, newItem("Big Tank", "home",
		model.Task{Name: "Water Change", FrequencyDays: 7},
	))
	require.NoError(t, err)

	_, err = s.CompleteTask(ctx, created.ID, 0, "Left")
	require.NoError(t, err)
	_, err = s.CompleteTask(ctx, created.ID, 0, "Right")
	require.NoError(t, err)

	got, err := s.GetItemByID(ctx, created.ID)
	require.NoError(t, err)
	task := got.Tasks[0]
	require.Len(t, task.History, 2)
	assert.Equal(t, "Right", task.History[0].Side)
	assert.Equal(t, "Left", task.History[1].Side)
	require.NotNil(t, task.LastCompleted)
	assert.WithinDuration(t, time.Now(), *task.LastCompleted, time.Minute)
}

func TestCompleteTask_InvalidIndexIsNoOp(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created, err := s.CreateItem(ctx, newItem("Big Tank", "home",
		model.Task{Name: "Water Change", FrequencyDays: 7},
	))
	require.NoError(t, err)

	got, err := s.CompleteTask(ctx, created.ID, 5, "")
	require.NoError(t, err)
	assert.Empty(t, got.Tasks[0].History)
}

func TestDeleteHistoryEntry_ReconcilesLastCompleted(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created, err := s.CreateItem(ctx, newItem("Big Tank", "home",
		model.Task{Name: "Water Change", FrequencyDays: 7},
	))
	require.NoError(t, err)

	_, err = s.CompleteTask(ctx, created.ID, 0, "")
	require.NoError(t, err)
	_, err = s.CompleteTask(ctx, created.ID, 0, "")
	require.NoError(t, err)

	after, err := s.DeleteHistoryEntry(ctx, created.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, after.Tasks[0].History, 1)
	require.NotNil(t, after.Tasks[0].LastCompleted)
	assert.Equal(t, after.Tasks[0].History[0].Date, *after.Tasks[0].LastCompleted)

	after, err = s.DeleteHistoryEntry(ctx, created.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, after.Tasks[0].History)
	assert.Nil(t, after.Tasks[0].LastCompleted)
}

func TestEditHistoryEntryDate_Persists(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created, err := s.CreateItem(ctx, newItem("Big Tank", "home",
		model.Task{Name: "Water Change", FrequencyDays: 7},
	))
	require.NoError(t, err)

	_, err = s.CompleteTask(ctx, created.ID, 0, "")
	require.NoError(t, err)

	moved := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.Local)
	after, err := s.EditHistoryEntryDate(ctx, created.ID, 0, 0, moved)
	require.NoError(t, err)
	assert.Equal(t, moved, after.Tasks[0].History[0].Date)
	require.NotNil(t, after.Tasks[0].LastCompleted)
	assert.Equal(t, moved, *after.Tasks[0].LastCompleted)

	got, err := s.GetItemByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, moved.Equal(got.Tasks[0].History[0].Date))
}

func TestNotes(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created, err := s.CreateItem(ctx, newItem("Big Tank", "home"))
	require.NoError(t, err)

	_, err = s.AddNote(ctx, created.ID, "")
	assert.Error(t, err)

	first, err := s.AddNote(ctx, created.ID, "added root tabs")
	require.NoError(t, err)
	require.Len(t, first.Notes, 1)

	second, err := s.AddNote(ctx, created.ID, "dosed fertilizer")
	require.NoError(t, err)
	require.Len(t, second.Notes, 2)
	assert.Equal(t, "dosed fertilizer", second.Notes[0].Text)

	after, err := s.DeleteNote(ctx, created.ID, second.Notes[0].ID)
	require.NoError(t, err)
	require.Len(t, after.Notes, 1)
	assert.Equal(t, "added root tabs", after.Notes[0].Text)

	// Unknown note id changes nothing.
	after, err = s.DeleteNote(ctx, created.ID, 12345)
	require.NoError(t, err)
	assert.Len(t, after.Notes, 1)
}

func TestSeed(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx))

	count, err := s.CountItems(ctx)
	require.NoError(t, err)
	assert.Greater(t, count, 0)

	cats, err := s.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"home", "hermit", "plants", "meemaw", "rodi"},
		model.CategoryNames(cats))
}

func TestReplaceAll_RoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx))
	created, err := s.GetItems(ctx, store.ItemFilter{})
	require.NoError(t, err)
	_, err = s.CompleteTask(ctx, created[0].ID, 0, "")
	require.NoError(t, err)

	items, categories, err := s.ExportState(ctx)
	require.NoError(t, err)

	dst := testutil.NewTestStore(t)
	require.NoError(t, dst.ReplaceAll(ctx, items, categories))

	gotItems, gotCategories, err := dst.ExportState(ctx)
	require.NoError(t, err)
	assert.Equal(t, categories, gotCategories)
	require.Len(t, gotItems, len(items))
	assert.Equal(t, items[0].ID, gotItems[0].ID)
	assert.Equal(t, items[0].Tasks[0].ID, gotItems[0].Tasks[0].ID)
	assert.Len(t, gotItems[0].Tasks[0].History, 1)
}

func TestReplaceAll_WipesPreviousContents(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx))

	replacement := []model.Item{
		{ID: 42, Name: "Only Tank", Category: "garage", Type: "Coldwater", Size: "55 Gallon",
			Tasks: []model.Task{{Name: "Water Change", FrequencyDays: 10}}},
	}
	require.NoError(t, s.ReplaceAll(ctx, replacement, []string{"garage"}))

	items, categories, err := s.ExportState(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(42), items[0].ID)
	assert.Equal(t, []string{"garage"}, categories)
}
