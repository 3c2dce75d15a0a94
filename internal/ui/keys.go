package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the bindings shown in the short help line. Dispatch itself
// happens in the input modes.
type keyMap struct {
	Move     key.Binding
	Focus    key.Binding
	Edit     key.Binding
	Clear    key.Binding
	ClearAll key.Binding
	Page     key.Binding
	Sort     key.Binding
	Dealer   key.Binding
	Back     key.Binding
	Save     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Move:     key.NewBinding(key.WithKeys("j", "k", "up", "down"), key.WithHelp("j/k", "move")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Edit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit/open")),
		Clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
		ClearAll: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear all")),
		Page:     key.NewBinding(key.WithKeys("n", "p"), key.WithHelp("n/p", "page")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Dealer:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dealer")),
		Back:     key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "back")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^s", "save")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Focus, k.Edit, k.Clear, k.ClearAll, k.Page, k.Sort, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Focus, k.Back},
		{k.Edit, k.Clear, k.ClearAll, k.Save},
		{k.Page, k.Sort, k.Dealer},
		{k.Help, k.Quit},
	}
}

// setPage enables the bindings that apply on the current page
func (k *keyMap) setPage(onListing bool) {
	k.Focus.SetEnabled(onListing)
	k.Clear.SetEnabled(onListing)
	k.ClearAll.SetEnabled(onListing)
	k.Save.SetEnabled(onListing)
	k.Back.SetEnabled(!onListing)
}
