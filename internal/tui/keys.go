package tui

import "github.com/charmbracelet/bubbles/key"

// listKeyMap defines key bindings for the credential list
type listKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Copy     key.Binding
	CopyName key.Binding
	Filter   key.Binding
	Reload   key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Copy, k.CopyName, k.Filter, k.Reload, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Filter},
		{k.Copy, k.CopyName, k.Reload, k.Quit},
	}
}

// deniedKeyMap defines key bindings for the permission screen
type deniedKeyMap struct {
	Grant  key.Binding
	Reload key.Binding
	Quit   key.Binding
}

func (k deniedKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grant, k.Reload, k.Quit}
}

func (k deniedKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Grant, k.Reload, k.Quit}}
}

// loadingKeyMap defines key bindings while a run is in flight
type loadingKeyMap struct {
	Quit key.Binding
}

func (k loadingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

func (k loadingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit}}
}

func newListKeyMap() listKeyMap {
	return listKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Copy: key.NewBinding(
			key.WithKeys("enter", "c"),
			key.WithHelp("enter/c", "copy password"),
		),
		CopyName: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "copy name"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func newDeniedKeyMap(canGrant bool) deniedKeyMap {
	k := deniedKeyMap{
		Grant: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "grant permissions"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	k.Grant.SetEnabled(canGrant)
	return k
}

func newLoadingKeyMap() loadingKeyMap {
	return loadingKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
