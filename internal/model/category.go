package model

import "time"

// Category is a user-extensible grouping label applied to items. The
// category set only ever grows: deleting the last item in a category does
// not remove it.
type Category struct {
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CategoryNames returns just the names, preserving order.
func CategoryNames(categories []Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}
