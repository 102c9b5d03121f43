package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	create   key.Binding
	remove   key.Binding
	search   key.Binding
	moveUp   key.Binding
	moveDown key.Binding
	play     key.Binding
	stop     key.Binding
	undo     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		create:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new playlist")),
		remove:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		moveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		moveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		play:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play")),
		stop:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		undo:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.create, k.remove, k.search, k.undo},
		{k.moveUp, k.moveDown, k.play, k.stop},
	}
}
