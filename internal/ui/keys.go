package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the dashboard.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	Escape     key.Binding
	ToggleLogs key.Binding

	// Grid
	Search      key.Binding
	Confirm     key.Binding
	CycleSort   key.Binding
	FlipSort    key.Binding
	SortColumn  key.Binding
	Select      key.Binding
	SelectPage  key.Binding
	ClearSelect key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	FilterPanel key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Focus table/detail"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel or clear search"),
		),
		ToggleLogs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Toggle log pane"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Apply search"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sort by next column"),
		),
		FlipSort: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Flip sort direction"),
		),
		SortColumn: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "Sort by column N"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle selection"),
		),
		SelectPage: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Select visible rows"),
		),
		ClearSelect: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "Clear selection"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right", "pgdown"),
			key.WithHelp("n/→", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left", "pgup"),
			key.WithHelp("p/←", "Previous page"),
		),
		FilterPanel: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle filter panel"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First row"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last row"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings grouped as the help overlay shows them.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.NextPage, k.PrevPage, k.Tab},
		{k.Search, k.Confirm, k.Escape, k.FilterPanel},
		{k.CycleSort, k.FlipSort, k.SortColumn},
		{k.Select, k.SelectPage, k.ClearSelect},
		{k.ToggleLogs, k.CycleTheme, k.Help, k.Quit},
	}
}
