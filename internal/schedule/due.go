// Package schedule implements the due-date and completion-history engine.
// All operations are pure: they take model values and return updated
// copies, never mutating their inputs. Callers persist the result.
package schedule

import (
	"fmt"
	"math"
	"time"

	"github.com/nhalm/tanktrack/internal/model"
)

// Status is the derived due state of a single task at a given instant.
type Status struct {
	// Overdue is true when the next due date has passed, and always true
	// for tasks that have never been completed.
	Overdue bool

	// DaysDelta is the signed calendar-day offset between now and the
	// next due date. Positive means the due date has passed; zero means
	// due today. Zero for never-completed tasks.
	DaysDelta int
}

// Due computes the due status of task as of now.
//
// The next due date is lastCompleted + frequency days, compared to now at
// calendar-day granularity. A task completed exactly frequency days ago
// is due today, not overdue; it flips to overdue the following day.
func Due(task model.Task, now time.Time) Status {
	if task.LastCompleted == nil {
		return Status{Overdue: true}
	}

	next := task.LastCompleted.AddDate(0, 0, task.FrequencyDays)
	delta := daysBetween(now, next)
	return Status{
		Overdue:   delta > 0,
		DaysDelta: delta,
	}
}

// DueLabel renders the status the way the item views display it.
func DueLabel(s Status) string {
	if s.Overdue {
		return fmt.Sprintf("Due %d days ago", s.DaysDelta)
	}
	return fmt.Sprintf("Due in %d days", -s.DaysDelta)
}

// ItemOverdueCount returns how many of the item's tasks are overdue.
func ItemOverdueCount(item model.Item, now time.Time) int {
	count := 0
	for _, t := range item.Tasks {
		if Due(t, now).Overdue {
			count++
		}
	}
	return count
}

// OverdueCount sums overdue tasks across all items. Any non-zero result
// puts the collection in the alert state.
func OverdueCount(items []model.Item, now time.Time) int {
	total := 0
	for _, item := range items {
		total += ItemOverdueCount(item, now)
	}
	return total
}

// daysBetween returns the signed number of calendar days from b to a,
// ignoring time of day. The quotient is rounded, not truncated: a DST
// transition makes the span between two midnights 23 or 25 hours, and
// that hour must not swallow a whole day.
func daysBetween(a, b time.Time) int {
	a = startOfDay(a)
	b = startOfDay(b.In(a.Location()))
	return int(math.Round(a.Sub(b).Hours() / 24))
}

// startOfDay truncates t to local midnight.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
