package store

import (
	"context"
	"fmt"

	"github.com/nhalm/tanktrack/internal/model"
)

var seedCategories = []string{"home", "hermit", "plants", "meemaw", "rodi"}

var seedItems = []model.Item{
	{
		Name: "The Monster", Category: "home", Type: "Freshwater", Size: "135 Gallon",
		Tasks: []model.Task{
			{Name: "Water Change", FrequencyDays: 7},
			{Name: "Clean Canister Filters", FrequencyDays: 30},
		},
	},
	{
		Name: "Bedroom Betta", Category: "home", Type: "Freshwater", Size: "5 Gallon",
		Tasks: []model.Task{
			{Name: "Water Change", FrequencyDays: 7},
		},
	},
	{
		Name: "Main Crabitat", Category: "hermit", Type: "Terrarium", Size: "40 Gallon",
		Tasks: []model.Task{
			{Name: "Mist Enclosure", FrequencyDays: 2},
			{Name: "Change Water Pools", FrequencyDays: 7},
		},
	},
	{
		Name: "Monstera", Category: "plants", Type: "Houseplant", Size: "10 Inch Pot",
		Tasks: []model.Task{
			{Name: "Watering", FrequencyDays: 7},
		},
	},
	{
		Name: "Meemaw's Guppies", Category: "meemaw", Type: "Freshwater", Size: "20 Gallon",
		Tasks: []model.Task{
			{Name: "Water Change", FrequencyDays: 14},
		},
	},
	{
		Name: "Filter 6", Category: "rodi", Type: "Polishing", Size: "Stage 6",
		Tasks: []model.Task{
			{Name: "Replace Filter", FrequencyDays: 180},
		},
	},
}

// Seed populates an empty store with a starter set of items and
// categories. Call only when CountItems reports zero.
func (s *SQLiteStore) Seed(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	for _, name := range seedCategories {
		if err := ensureCategory(ctx, tx, name); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed categories: %w", err)
	}

	for _, item := range seedItems {
		if _, err := s.CreateItem(ctx, item); err != nil {
			return fmt.Errorf("seeding item %q: %w", item.Name, err)
		}
	}
	return nil
}
