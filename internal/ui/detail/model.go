package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhalm/tanktrack/internal/keys"
	"github.com/nhalm/tanktrack/internal/model"
	"github.com/nhalm/tanktrack/internal/schedule"
	"github.com/nhalm/tanktrack/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// CompleteMsg asks the parent to record a completion for a task.
type CompleteMsg struct {
	ItemID    int64
	TaskIndex int
	Side      string
}

// DeleteEntryMsg asks the parent to delete one history entry.
type DeleteEntryMsg struct {
	ItemID       int64
	TaskIndex    int
	HistoryIndex int
}

// EditEntryMsg asks the parent to move a history entry to a new date.
type EditEntryMsg struct {
	ItemID       int64
	TaskIndex    int
	HistoryIndex int
	Date         time.Time
}

// AddNoteMsg asks the parent to append a note to the item.
type AddNoteMsg struct {
	ItemID int64
	Text   string
}

// DeleteNoteMsg asks the parent to remove a note from the item.
type DeleteNoteMsg struct {
	ItemID int64
	NoteID int64
}

// EditItemMsg asks the parent to open the edit form for the item.
type EditItemMsg struct {
	ItemID int64
}

// inputMode says what the text input at the bottom is collecting.
type inputMode int

const (
	inputNone inputMode = iota
	inputEntryDate
	inputNote
)

// Model is the item detail view component.
type Model struct {
	item           *model.Item
	keys           *keys.KeyMap
	taskIndex      int
	historyIndex   int
	historyPreview int
	mode           inputMode
	input          textinput.Model
	inputErr       string
	width          int
	height         int
}

// New creates a new detail view model. historyPreview caps how many
// completion entries are shown per task.
func New(k *keys.KeyMap, historyPreview, width, height int) Model {
	ti := textinput.New()
	ti.Width = width - 4

	if historyPreview <= 0 {
		historyPreview = 5
	}

	return Model{
		keys:           k,
		historyPreview: historyPreview,
		input:          ti,
		width:          width,
		height:         height,
	}
}

// SetItem replaces the displayed item, clamping the task and history
// cursors so they stay valid after mutations shrink either list.
func (m *Model) SetItem(item *model.Item) {
	m.item = item
	if item == nil {
		m.taskIndex = 0
		m.historyIndex = 0
		return
	}
	if m.taskIndex >= len(item.Tasks) {
		m.taskIndex = max(0, len(item.Tasks)-1)
	}
	if len(item.Tasks) > 0 {
		hist := item.Tasks[m.taskIndex].History
		if m.historyIndex >= len(hist) {
			m.historyIndex = max(0, len(hist)-1)
		}
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.mode != inputNone {
		return m.handleInputKeys(keyMsg)
	}
	return m.handleNormalKeys(keyMsg)
}

// handleInputKeys processes keys while the date or note input is open.
func (m Model) handleInputKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = inputNone
		m.inputErr = ""
		m.input.Reset()
		return m, nil

	case "enter":
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput validates and dispatches the pending input.
func (m Model) submitInput() (Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())

	switch m.mode {
	case inputEntryDate:
		date, err := time.ParseInLocation("2006-01-02", value, time.Local)
		if err != nil {
			m.inputErr = "use YYYY-MM-DD"
			return m, nil
		}
		itemID := m.item.ID
		taskIndex, historyIndex := m.taskIndex, m.historyIndex
		m.mode = inputNone
		m.inputErr = ""
		m.input.Reset()
		return m, func() tea.Msg {
			return EditEntryMsg{
				ItemID:       itemID,
				TaskIndex:    taskIndex,
				HistoryIndex: historyIndex,
				Date:         date,
			}
		}

	case inputNote:
		if value == "" {
			m.inputErr = "note is empty"
			return m, nil
		}
		itemID := m.item.ID
		m.mode = inputNone
		m.inputErr = ""
		m.input.Reset()
		return m, func() tea.Msg {
			return AddNoteMsg{ItemID: itemID, Text: value}
		}
	}

	m.mode = inputNone
	return m, nil
}

// handleNormalKeys processes keys in browse mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }
	}

	if m.item == nil {
		return m, nil
	}
	item := m.item

	switch {
	case key.Matches(msg, m.keys.NextTask):
		if m.taskIndex < len(item.Tasks)-1 {
			m.taskIndex++
			m.historyIndex = 0
		}

	case key.Matches(msg, m.keys.PrevTask):
		if m.taskIndex > 0 {
			m.taskIndex--
			m.historyIndex = 0
		}

	case key.Matches(msg, m.keys.Down):
		if visible := m.visibleHistory(); m.historyIndex < visible-1 {
			m.historyIndex++
		}

	case key.Matches(msg, m.keys.Up):
		if m.historyIndex > 0 {
			m.historyIndex--
		}

	case key.Matches(msg, m.keys.Complete):
		if len(item.Tasks) > 0 {
			return m, completeCmd(item.ID, m.taskIndex, "")
		}

	case key.Matches(msg, m.keys.CompleteLeft):
		if m.splitEnabled() {
			return m, completeCmd(item.ID, m.taskIndex, "Left")
		}

	case key.Matches(msg, m.keys.CompleteRight):
		if m.splitEnabled() {
			return m, completeCmd(item.ID, m.taskIndex, "Right")
		}

	case key.Matches(msg, m.keys.DeleteEntry):
		if len(m.currentHistory()) > 0 {
			itemID, taskIndex, historyIndex := item.ID, m.taskIndex, m.historyIndex
			return m, func() tea.Msg {
				return DeleteEntryMsg{
					ItemID:       itemID,
					TaskIndex:    taskIndex,
					HistoryIndex: historyIndex,
				}
			}
		}

	case key.Matches(msg, m.keys.EditEntry):
		if hist := m.currentHistory(); len(hist) > 0 {
			m.mode = inputEntryDate
			m.input.Placeholder = "YYYY-MM-DD"
			m.input.Prompt = "new date: "
			m.input.SetValue(hist[m.historyIndex].Date.Format("2006-01-02"))
			return m, m.input.Focus()
		}

	case key.Matches(msg, m.keys.DeleteNote):
		if len(item.Notes) > 0 {
			itemID, noteID := item.ID, item.Notes[0].ID
			return m, func() tea.Msg {
				return DeleteNoteMsg{ItemID: itemID, NoteID: noteID}
			}
		}

	case key.Matches(msg, m.keys.AddNote):
		m.mode = inputNote
		m.input.Placeholder = "what happened?"
		m.input.Prompt = "note: "
		m.input.Reset()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Edit):
		itemID := item.ID
		return m, func() tea.Msg { return EditItemMsg{ItemID: itemID} }
	}

	return m, nil
}

func completeCmd(itemID int64, taskIndex int, side string) tea.Cmd {
	return func() tea.Msg {
		return CompleteMsg{ItemID: itemID, TaskIndex: taskIndex, Side: side}
	}
}

// splitEnabled reports whether the highlighted task records completions
// per side.
func (m Model) splitEnabled() bool {
	if m.item == nil || len(m.item.Tasks) == 0 {
		return false
	}
	task := m.item.Tasks[m.taskIndex]
	capacity, _ := schedule.Capacity(m.item.Size)
	return schedule.SplitCompletion(task.Name, m.item.Type, capacity)
}

// Typing reports whether the date or note input currently owns keystrokes.
func (m Model) Typing() bool {
	return m.mode != inputNone
}

// visibleHistory returns how many history entries the cursor can reach.
func (m Model) visibleHistory() int {
	n := len(m.currentHistory())
	if n > m.historyPreview {
		n = m.historyPreview
	}
	return n
}

// currentHistory returns the highlighted task's history, or nil.
func (m Model) currentHistory() []model.HistoryEntry {
	if m.item == nil || len(m.item.Tasks) == 0 {
		return nil
	}
	return m.item.Tasks[m.taskIndex].History
}

// View renders the detail view.
func (m Model) View() string {
	if m.item == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No item selected")
	}

	content := m.renderContent()
	if m.mode != inputNone {
		inputLine := m.input.View()
		if m.inputErr != "" {
			inputLine += "  " + lipgloss.NewStyle().
				Foreground(theme.ColorRed).
				Render(m.inputErr)
		}
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", inputLine)
	}

	return theme.DetailPanelStyle.Width(m.width - 4).Render(content)
}

// renderContent builds the full detail content string.
func (m Model) renderContent() string {
	item := m.item
	now := time.Now()
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(item.Name))

	catBadge := theme.CategoryStyle().Render(item.Category)
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	meta := strings.TrimSpace(item.Type + "  " + item.Size)
	sections = append(sections,
		lipgloss.JoinHorizontal(lipgloss.Top, catBadge, "  ", metaStyle.Render(meta)))
	sections = append(sections, "")

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", min(m.width-8, 80)))

	for ti, task := range item.Tasks {
		sections = append(sections, m.renderTask(ti, task, now)...)
		sections = append(sections, "")
	}
	if len(item.Tasks) == 0 {
		sections = append(sections, metaStyle.Italic(true).Render("No tasks. Press e to add some."))
		sections = append(sections, "")
	}

	if len(item.Notes) > 0 {
		sections = append(sections, separator)
		noteHeader := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
		sections = append(sections, noteHeader.Render(fmt.Sprintf("Notes (%d)", len(item.Notes))))
		dateStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
		for _, note := range item.Notes {
			sections = append(sections, fmt.Sprintf(
				"%s  %s",
				dateStyle.Render(note.Date.Format("2006-01-02")),
				note.Text,
			))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTask draws one task block: name, frequency, due state, and the
// most recent completions.
func (m Model) renderTask(ti int, task model.Task, now time.Time) []string {
	var lines []string

	status := schedule.Due(task, now)
	dueBadge := theme.DueStyle(status.Overdue, status.DaysDelta).
		Render(schedule.DueLabel(status))

	marker := "  "
	if ti == m.taskIndex {
		marker = "> "
	}
	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	freqStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	lines = append(lines, fmt.Sprintf(
		"%s%s  %s  %s",
		marker,
		nameStyle.Render(task.Name),
		freqStyle.Render(fmt.Sprintf("every %d days", task.FrequencyDays)),
		dueBadge,
	))

	lastStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	if task.LastCompleted != nil {
		lines = append(lines, "  "+lastStyle.Render(
			"Last: "+task.LastCompleted.Format("2006-01-02")))
	} else {
		lines = append(lines, "  "+lastStyle.Render("Never completed"))
	}

	shown := task.History
	if len(shown) > m.historyPreview {
		shown = shown[:m.historyPreview]
	}
	for hi, entry := range shown {
		cursor := "    "
		if ti == m.taskIndex && hi == m.historyIndex {
			cursor = "  > "
		}
		line := cursor + entry.Date.Format("2006-01-02")
		if entry.Side != "" {
			line += " " + theme.SideLabelStyle.Render(entry.Side)
		}
		lines = append(lines, line)
	}
	if extra := len(task.History) - len(shown); extra > 0 {
		lines = append(lines, "    "+lastStyle.Render(
			fmt.Sprintf("… %d older", extra)))
	}

	return lines
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 4
}
