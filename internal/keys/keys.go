package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search
	Search key.Binding

	// Category filter cycle
	CycleCategory key.Binding

	// Help toggle
	Help key.Binding

	// Item lifecycle
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding

	// Task actions (detail view)
	Complete      key.Binding
	CompleteLeft  key.Binding
	CompleteRight key.Binding
	EditEntry     key.Binding
	DeleteEntry   key.Binding
	NextTask      key.Binding
	PrevTask      key.Binding

	// Notes
	AddNote    key.Binding
	DeleteNote key.Binding

	// Backup
	Export key.Binding
	Import key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open detail"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		CycleCategory: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle category"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		New: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add item"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete task"),
		),
		CompleteLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "complete left side"),
		),
		CompleteRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "complete right side"),
		),
		EditEntry: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "edit entry date"),
		),
		DeleteEntry: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("bksp", "delete entry"),
		),
		NextTask: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "next task"),
		),
		PrevTask: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "previous task"),
		),
		AddNote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "add note"),
		),
		DeleteNote: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "delete newest note"),
		),
		Export: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export backup"),
		),
		Import: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "import backup"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Search,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.Search, k.CycleCategory, k.Help},
		{k.New, k.Edit, k.Delete, k.AddNote, k.DeleteNote},
		{k.Complete, k.CompleteLeft, k.CompleteRight, k.EditEntry, k.DeleteEntry},
		{k.Export, k.Import},
	}
}
