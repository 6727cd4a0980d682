package itemlist

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhalm/tanktrack/internal/keys"
	"github.com/nhalm/tanktrack/internal/model"
	"github.com/nhalm/tanktrack/internal/store"
	"github.com/nhalm/tanktrack/internal/theme"
)

// ItemsLoadedMsg is sent when items have been loaded from the store.
type ItemsLoadedMsg struct {
	Items      []model.Item
	Categories []string
}

// SelectedItemMsg is sent when a user selects an item to view details.
type SelectedItemMsg struct {
	ItemID int64
}

// Model is the main item list view component.
type Model struct {
	list          list.Model
	store         store.Store
	keys          *keys.KeyMap
	filter        store.ItemFilter
	categories    []string
	categoryIndex int // 0 = all, otherwise categories[categoryIndex-1]
	searchMode    bool
	searchInput   textinput.Model
	width         int
	height        int
}

// New creates a new item list model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	delegate := ItemDelegate{}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Items"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search items..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		store:       s,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of items.
func (m Model) Init() tea.Cmd {
	return m.LoadItems()
}

// Update handles messages for the item list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ItemsLoadedMsg:
		m.categories = msg.Categories
		items := make([]list.Item, len(msg.Items))
		for i, item := range msg.Items {
			items[i] = Entry{Item: item}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		query := m.searchInput.Value()
		if query != "" {
			m.filter.Query = &query
		} else {
			m.filter.Query = nil
		}
		return m, m.LoadItems()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filter.Query = nil
		return m, m.LoadItems()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		entry, ok := m.list.SelectedItem().(Entry)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedItemMsg{ItemID: entry.Item.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleCategory):
		m.cycleCategory()
		return m, m.LoadItems()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// cycleCategory advances the category filter: all -> first category ->
// ... -> last category -> all.
func (m *Model) cycleCategory() {
	m.categoryIndex = (m.categoryIndex + 1) % (len(m.categories) + 1)
	if m.categoryIndex == 0 {
		m.filter.Category = nil
		m.list.Title = "Items"
		return
	}
	name := m.categories[m.categoryIndex-1]
	m.filter.Category = &name
	m.list.Title = "Items: " + name
}

// Searching reports whether the search input currently owns keystrokes.
func (m Model) Searching() bool {
	return m.searchMode
}

// SelectedID returns the id of the currently highlighted item, or false
// when the list is empty.
func (m Model) SelectedID() (int64, bool) {
	entry, ok := m.list.SelectedItem().(Entry)
	if !ok {
		return 0, false
	}
	return entry.Item.ID, true
}

// View renders the item list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no items are available.
func (m Model) renderEmptyState() string {
	hasFilters := m.filter.Category != nil || m.filter.Query != nil

	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if hasFilters {
		return style.Render("No matching items.\nPress tab or esc to clear filters.")
	}

	return style.Render("No items yet.\n\nPress a to add your first tank, plant, or filter.")
}

// LoadItems returns a tea.Cmd that queries the store with the current filter.
func (m Model) LoadItems() tea.Cmd {
	filter := m.filter
	s := m.store
	return func() tea.Msg {
		items, err := s.GetItems(context.Background(), filter)
		if err != nil {
			return ItemsLoadedMsg{}
		}
		categories, err := s.GetCategories(context.Background())
		if err != nil {
			return ItemsLoadedMsg{Items: items}
		}
		return ItemsLoadedMsg{
			Items:      items,
			Categories: model.CategoryNames(categories),
		}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
