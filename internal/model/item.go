package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Item is a tracked physical object (tank, pot, filter stage) with one or
// more recurring maintenance tasks and free-text notes.
type Item struct {
	// ID is the unique numeric identifier, assigned at creation and
	// immutable afterwards.
	ID int64 `json:"id" db:"id"`

	// Name is the user-facing label (e.g. "Living Room Tank").
	Name string `json:"name" db:"name"`

	// Category is the key of the category this item belongs to. It is
	// always a member of the current category set.
	Category string `json:"category" db:"category"`

	// Type is free text (e.g. "Freshwater", "Tropical", "Sediment").
	Type string `json:"type" db:"type"`

	// Size is free text; a leading integer is read as capacity in gallons
	// (e.g. "135 Gallon", "Stage 2").
	Size string `json:"size" db:"size"`

	// Image is an optional opaque binary-as-text blob. No behavior
	// depends on it; it only round-trips through storage and export.
	Image string `json:"image,omitempty" db:"image"`

	// Tasks is the ordered task list. Order is meaningful: callers
	// address tasks by position.
	Tasks []Task `json:"tasks" db:"-"`

	// Notes is kept newest first.
	Notes []Note `json:"notes" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Task is a named recurring maintenance action owned by a single item.
type Task struct {
	// ID is a stable identifier assigned when the task is first created.
	// It survives item edits that keep the task (matched by name), unlike
	// the task's position.
	ID string `json:"task_id,omitempty"`

	// Name is free text; it is also the matching key when an item's task
	// list is redefined through the edit form.
	Name string `json:"name"`

	// FrequencyDays is the required number of days between completions.
	FrequencyDays int `json:"frequency"`

	// LastCompleted is the most recent completion instant. It is derived
	// from History and is nil exactly when History is empty.
	LastCompleted *time.Time `json:"lastCompleted"`

	// History holds completion entries, newest first.
	History []HistoryEntry `json:"history"`
}

// taskJSON mirrors Task with a raw lastCompleted so old exports that
// wrote bare "2006-01-02" dates still decode.
type taskJSON struct {
	ID            string          `json:"task_id"`
	Name          string          `json:"name"`
	FrequencyDays int             `json:"frequency"`
	LastCompleted json.RawMessage `json:"lastCompleted"`
	History       []HistoryEntry  `json:"history"`
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var obj taskJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*t = Task{
		ID:            obj.ID,
		Name:          obj.Name,
		FrequencyDays: obj.FrequencyDays,
		History:       obj.History,
	}
	if len(obj.LastCompleted) == 0 || string(obj.LastCompleted) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(obj.LastCompleted, &s); err != nil {
		return fmt.Errorf("lastCompleted is not a date string: %w", err)
	}
	parsed, err := parseHistoryDate(s)
	if err != nil {
		return err
	}
	t.LastCompleted = &parsed
	return nil
}

// HistoryEntry is one recorded completion, optionally tagged with a
// sub-location side label such as "Left" or "Right".
type HistoryEntry struct {
	Date time.Time `json:"date"`
	Side string    `json:"side,omitempty"`
}

// historyEntryJSON is the wire shape of a history entry. Date is kept raw
// because old exports wrote bare "2006-01-02" dates, which time.Time
// refuses to decode directly.
type historyEntryJSON struct {
	Date string  `json:"date"`
	Side *string `json:"side"`
}

// UnmarshalJSON accepts both the object shape {"date":..., "side":...}
// and the bare date-string shape found in old exports. A null side
// decodes to the empty string.
func (e *HistoryEntry) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		t, err := parseHistoryDate(s)
		if err != nil {
			return err
		}
		*e = HistoryEntry{Date: t}
		return nil
	}

	var obj historyEntryJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("history entry is neither an object nor a date string: %w", err)
	}
	t, err := parseHistoryDate(obj.Date)
	if err != nil {
		return err
	}
	e.Date = t
	e.Side = ""
	if obj.Side != nil {
		e.Side = *obj.Side
	}
	return nil
}

// parseHistoryDate reads the date formats legacy exports used.
func parseHistoryDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized history date %q", s)
}

// Note is a free-text annotation on an item.
type Note struct {
	// ID is unique within the item, derived from the creation instant.
	ID int64 `json:"id" db:"id"`

	Date time.Time `json:"date" db:"date"`
	Text string    `json:"text" db:"text"`
}
