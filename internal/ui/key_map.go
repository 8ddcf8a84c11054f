package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	next   key.Binding
	prev   key.Binding
	cycle  key.Binding
	submit key.Binding
	toggle key.Binding
	again  key.Binding
	logout key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		cycle:  key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "change")),
		submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		toggle: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "switch mode")),
		again:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new quote")),
		logout: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "log out")),
		quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.cycle},
		{k.submit, k.toggle},
		{k.again, k.logout, k.quit},
	}
}
