package itemform

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhalm/tanktrack/internal/model"
	"github.com/nhalm/tanktrack/internal/theme"
)

// newCategorySentinel is the select value that reveals the new-category
// input.
const newCategorySentinel = "+new"

// ItemCreatedMsg is dispatched when a new item is submitted via the form.
type ItemCreatedMsg struct {
	Item model.Item
}

// ItemUpdatedMsg is dispatched when an existing item is submitted via
// the form. Tasks carry only name and frequency; the store reconciles
// them against what it already has.
type ItemUpdatedMsg struct {
	Item model.Item
}

// FormCancelMsg is dispatched when the user cancels the form.
type FormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name        string
	itemType    string
	size        string
	category    string
	newCategory string
	tasksText   string
}

// Model is the Bubble Tea model for the item create/edit form.
type Model struct {
	form        *huh.Form
	fb          *formBindings
	editMode    bool
	editID      int64
	editImage   string
	categories  []string
	defaultFreq int
	width       int
	height      int
}

// New creates a new item form model. defaultFreq fills in for task lines
// that omit a frequency.
func New(defaultFreq, width, height int) Model {
	if defaultFreq <= 0 {
		defaultFreq = 7
	}
	return Model{
		fb:          &formBindings{},
		defaultFreq: defaultFreq,
		width:       width,
		height:      height,
	}
}

// SetCategories sets the categories offered by the form selector.
func (m *Model) SetCategories(categories []string) {
	m.categories = categories
}

// StartCreate initializes the form for creating a new item.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = 0
	*m.fb = formBindings{}
	if len(m.categories) > 0 {
		m.fb.category = m.categories[0]
	} else {
		m.fb.category = newCategorySentinel
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing item.
func (m *Model) StartEdit(item model.Item) tea.Cmd {
	m.editMode = true
	m.editID = item.ID
	m.editImage = item.Image
	*m.fb = formBindings{
		name:      item.Name,
		itemType:  item.Type,
		size:      item.Size,
		category:  item.Category,
		tasksText: tasksToText(item.Tasks),
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the item form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return FormCancelMsg{} }
	}

	return m, cmd
}

// View renders the item form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Item"
	if m.editMode {
		titleText = "Edit Item"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fb := m.fb

	fields := []huh.Field{
		huh.NewInput().
			Title("Name").
			Placeholder("Living Room Tank").
			Value(&fb.name).
			Validate(validateRequired("Name")),
		huh.NewInput().
			Title("Type").
			Placeholder("Freshwater, Tropical, Sediment...").
			Value(&fb.itemType),
		huh.NewInput().
			Title("Size").
			Placeholder("135 Gallon, Stage 2...").
			Value(&fb.size),
		m.categoryField(),
		huh.NewInput().
			Title("New Category").
			Placeholder("only when adding a category").
			Value(&fb.newCategory).
			Validate(func(s string) error {
				if fb.category == newCategorySentinel && strings.TrimSpace(s) == "" {
					return fmt.Errorf("category name is required")
				}
				return nil
			}),
		huh.NewText().
			Title("Tasks").
			Description("one per line: name | days between").
			Placeholder("Water Change | 7\nClean Canister Filters | 30").
			Value(&fb.tasksText).
			Validate(m.validateTasks),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) categoryField() huh.Field {
	var opts []huh.Option[string]
	for _, c := range m.categories {
		opts = append(opts, huh.NewOption(c, c))
	}
	opts = append(opts, huh.NewOption("New category…", newCategorySentinel))

	return huh.NewSelect[string]().
		Title("Category").
		Options(opts...).
		Value(&m.fb.category)
}

func (m Model) handleSubmit() tea.Cmd {
	category := m.fb.category
	if category == newCategorySentinel {
		category = strings.TrimSpace(m.fb.newCategory)
	}

	tasks, _ := m.parseTasks(m.fb.tasksText)

	item := model.Item{
		Name:     strings.TrimSpace(m.fb.name),
		Type:     strings.TrimSpace(m.fb.itemType),
		Size:     strings.TrimSpace(m.fb.size),
		Category: category,
		Tasks:    tasks,
	}

	if m.editMode {
		item.ID = m.editID
		item.Image = m.editImage
		return func() tea.Msg { return ItemUpdatedMsg{Item: item} }
	}
	return func() tea.Msg { return ItemCreatedMsg{Item: item} }
}

// parseTasks reads the task text area: one task per line, "name | days".
// A missing frequency falls back to the configured default. Duplicate
// names are rejected because name is how edits are matched to existing
// tasks.
func (m Model) parseTasks(text string) ([]model.Task, error) {
	var tasks []model.Task
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name := line
		freq := m.defaultFreq
		if idx := strings.LastIndex(line, "|"); idx >= 0 {
			name = strings.TrimSpace(line[:idx])
			freqText := strings.TrimSpace(line[idx+1:])
			if freqText != "" {
				n, err := strconv.Atoi(freqText)
				if err != nil || n <= 0 {
					return nil, fmt.Errorf("%q: days must be a positive number", line)
				}
				freq = n
			}
		}
		if name == "" {
			return nil, fmt.Errorf("%q: task name is missing", line)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate task name %q", name)
		}
		seen[name] = true

		tasks = append(tasks, model.Task{Name: name, FrequencyDays: freq})
	}

	return tasks, nil
}

func (m Model) validateTasks(text string) error {
	_, err := m.parseTasks(text)
	return err
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

// tasksToText renders the task list back into the editable text shape.
func tasksToText(tasks []model.Task) string {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = fmt.Sprintf("%s | %d", t.Name, t.FrequencyDays)
	}
	return strings.Join(lines, "\n")
}
