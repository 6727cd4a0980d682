package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhalm/tanktrack/internal/model"
	"github.com/nhalm/tanktrack/internal/schedule"
	"github.com/nhalm/tanktrack/internal/store"
	"github.com/nhalm/tanktrack/internal/ui"
	"github.com/nhalm/tanktrack/internal/ui/detail"
	helpview "github.com/nhalm/tanktrack/internal/ui/help"
	"github.com/nhalm/tanktrack/internal/ui/itemform"
	"github.com/nhalm/tanktrack/internal/ui/itemlist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewForm
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the persistence layer.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        store.Store
	config       model.AppConfig
	keys         *KeyMap
	itemList     itemlist.Model
	detail       detail.Model
	helpView     helpview.Model
	formView     itemform.Model
	ready        bool
	overdueCount int
	statusMsg    string
}

// New creates a new root application model with the given store and config.
func New(s store.Store, cfg model.AppConfig) Model {
	keys := DefaultKeyMap()

	return Model{
		currentView: ViewList,
		store:       s,
		config:      cfg,
		keys:        keys,
		itemList:    itemlist.New(s, keys, 80, 24),
		detail:      detail.New(keys, cfg.Display.HistoryPreview, 80, 24),
		helpView:    helpview.New(keys, 80, 24),
		formView:    itemform.New(cfg.DefaultFrequencyDays, 80, 24),
	}
}

// Init returns the initial command to load the item list.
func (m Model) Init() tea.Cmd {
	return m.itemList.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.itemList.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case itemlist.ItemsLoadedMsg:
		m.overdueCount = schedule.OverdueCount(msg.Items, time.Now())
		var cmd tea.Cmd
		m.itemList, cmd = m.itemList.Update(msg)
		return m, cmd

	case itemlist.SelectedItemMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		return m, m.loadItem(msg.ItemID)

	case itemLoadedMsg:
		if msg.err != nil {
			m.statusMsg = msg.err.Error()
			m.currentView = ViewList
			return m, nil
		}
		m.detail.SetItem(msg.item)
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewList
		return m, m.itemList.LoadItems()

	case detail.CompleteMsg:
		return m, m.completeTask(msg.ItemID, msg.TaskIndex, msg.Side)

	case detail.DeleteEntryMsg:
		return m, m.deleteHistoryEntry(msg.ItemID, msg.TaskIndex, msg.HistoryIndex)

	case detail.EditEntryMsg:
		return m, m.editHistoryEntry(msg.ItemID, msg.TaskIndex, msg.HistoryIndex, msg.Date)

	case detail.AddNoteMsg:
		return m, m.addNote(msg.ItemID, msg.Text)

	case detail.DeleteNoteMsg:
		return m, m.deleteNote(msg.ItemID, msg.NoteID)

	case detail.EditItemMsg:
		m.previousView = m.currentView
		m.currentView = ViewForm
		return m, m.startEditItem(msg.ItemID)

	case mutationDoneMsg:
		if msg.err != nil {
			m.statusMsg = msg.err.Error()
			return m, nil
		}
		m.detail.SetItem(msg.item)
		return m, nil

	case formReadyMsg:
		m.formView.SetCategories(msg.categories)
		if msg.item != nil {
			return m, m.formView.StartEdit(*msg.item)
		}
		return m, m.formView.StartCreate()

	case itemform.ItemCreatedMsg:
		m.currentView = ViewList
		return m, m.createItem(msg.Item)

	case itemform.ItemUpdatedMsg:
		return m, m.updateItem(msg.Item)

	case itemform.FormCancelMsg:
		m.currentView = m.previousView
		return m, nil

	case itemSavedMsg:
		if msg.err != nil {
			m.statusMsg = msg.err.Error()
			m.currentView = ViewList
			return m, m.itemList.LoadItems()
		}
		if m.previousView == ViewDetail {
			m.currentView = ViewDetail
			m.detail.SetItem(msg.item)
			return m, m.itemList.LoadItems()
		}
		m.currentView = ViewList
		return m, m.itemList.LoadItems()

	case itemDeletedMsg:
		if msg.err != nil {
			m.statusMsg = msg.err.Error()
		}
		m.currentView = ViewList
		return m, m.itemList.LoadItems()

	case backupDoneMsg:
		if msg.err != nil {
			m.statusMsg = "export failed: " + msg.err.Error()
		} else {
			m.statusMsg = "exported to " + msg.path
		}
		return m, nil

	case importDoneMsg:
		if msg.err != nil {
			m.statusMsg = "import failed: " + msg.err.Error()
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("imported %d items", msg.count)
		return m, m.itemList.LoadItems()

	case tea.KeyMsg:
		// While a text input owns keystrokes, everything goes to its view.
		if m.currentView == ViewList && m.itemList.Searching() {
			break
		}
		if m.currentView == ViewDetail && m.detail.Typing() {
			break
		}
		if newModel, cmd, handled := m.handleGlobalKeys(msg); handled {
			return newModel, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that work regardless of the focused
// view. Returns handled=false when the key should fall through.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true

	case "q":
		if m.currentView == ViewList {
			return m, tea.Quit, true
		}

	case "?":
		// Forms own their keystrokes entirely.
		if m.currentView == ViewForm {
			break
		}
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case "a":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewForm
			return m, m.loadFormCategories(nil), true
		}

	case "e":
		if m.currentView == ViewList {
			if id, ok := m.itemList.SelectedID(); ok {
				m.previousView = m.currentView
				m.currentView = ViewForm
				return m, m.startEditItem(id), true
			}
		}

	case "x":
		if m.currentView == ViewList {
			if id, ok := m.itemList.SelectedID(); ok {
				return m, m.deleteItem(id), true
			}
		}

	case "E":
		if m.currentView == ViewList {
			return m, m.exportBackup(), true
		}

	case "I":
		if m.currentView == ViewList {
			return m, m.importBackup(), true
		}
	}

	return m, nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.itemList, cmd = m.itemList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewForm:
		m.formView, cmd = m.formView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("TankTrack", m.headerStatus(), m.overdueCount > 0)
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.itemList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewForm:
		return m.formView.View()
	default:
		return ""
	}
}

// headerStatus renders the right-hand header segment: the overdue
// counter, or calm text when everything is on schedule.
func (m Model) headerStatus() string {
	if m.overdueCount > 0 {
		return fmt.Sprintf("%d overdue", m.overdueCount)
	}
	return "all caught up"
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	// One-shot status messages take over the bar until the next action.
	if m.statusMsg != "" && m.currentView == ViewList {
		return m.statusMsg
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewDetail:
		return "c complete | h/l task | j/k history | d edit date | bksp delete | n note | e edit | esc back"
	case ViewForm:
		return "enter next field | esc cancel"
	default:
		return "q quit | ? help | a add | e edit | x delete | / search | tab category | E export | I import"
	}
}
