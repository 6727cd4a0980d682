package itemlist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhalm/tanktrack/internal/model"
	"github.com/nhalm/tanktrack/internal/schedule"
	"github.com/nhalm/tanktrack/internal/theme"
)

// Entry wraps a model.Item so it can be used in a bubbles/list.
type Entry struct {
	Item model.Item
}

// FilterValue returns the string used for fuzzy filtering.
func (e Entry) FilterValue() string { return e.Item.Name }

// Title returns the item name for the list.
func (e Entry) Title() string { return e.Item.Name }

// Description returns a short summary line for the list.
func (e Entry) Description() string {
	parts := []string{e.Item.Category, e.Item.Type, e.Item.Size}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering list items.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single list item line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(Entry)
	if !ok {
		return
	}

	it := entry.Item
	isSelected := index == m.Index()
	now := time.Now()

	catBadge := theme.CategoryStyle().Render(it.Category)

	descr := ""
	if it.Type != "" || it.Size != "" {
		descr = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(strings.TrimSpace(it.Type + " " + it.Size))
	}

	// Schedule badge: the most urgent task decides the line's color.
	badge := dueSummary(it, now)

	line := fmt.Sprintf("%s %s  %s  %s", catBadge, it.Name, descr, badge)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// dueSummary renders the item's overdue-count badge, or the soonest
// upcoming due label when nothing is overdue.
func dueSummary(it model.Item, now time.Time) string {
	if len(it.Tasks) == 0 {
		return ""
	}

	overdue := schedule.ItemOverdueCount(it, now)
	if overdue > 0 {
		return theme.DueStyle(true, 0).Render(fmt.Sprintf("%d overdue", overdue))
	}

	// Nothing overdue: show the task due soonest.
	soonest := schedule.Due(it.Tasks[0], now)
	for _, task := range it.Tasks[1:] {
		if s := schedule.Due(task, now); s.DaysDelta > soonest.DaysDelta {
			soonest = s
		}
	}
	return theme.DueStyle(false, soonest.DaysDelta).Render(schedule.DueLabel(soonest))
}
