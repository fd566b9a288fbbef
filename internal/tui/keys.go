package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Export     key.Binding
	Accept     key.Binding
	Modify     key.Binding
	Deny       key.Binding
	Regenerate key.Binding
	Undo       key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	PrevCard   key.Binding
	NextCard   key.Binding
	Write      key.Binding
	Help       key.Binding
	Quit       key.Binding

	EditApply  key.Binding
	EditKeep   key.Binding
	EditCancel key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "Export")),
		Accept:     key.NewBinding(key.WithKeys("a", "enter"), key.WithHelp("a", "Accept")),
		Modify:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "Modify")),
		Deny:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "Deny")),
		Regenerate: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Regenerate")),
		Undo:       key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "Undo")),
		PrevPage:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "Prev page")),
		NextPage:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "Next page")),
		PrevCard:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "Prev card")),
		NextCard:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "Next card")),
		Write:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "Write file")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Cheatsheet")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "Quit")),

		EditApply:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Save & apply")),
		EditKeep:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "Keep edit")),
		EditCancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "Cancel")),
	}
}

// reviewHints lists the bindings shown in the legend, in display order.
func (k keyMap) reviewHints() []key.Binding {
	return []key.Binding{
		k.Export, k.Accept, k.Modify, k.Deny, k.Regenerate, k.Undo,
		k.PrevPage, k.NextPage, k.Write, k.Help, k.Quit,
	}
}

func (k keyMap) editHints() []key.Binding {
	return []key.Binding{k.EditApply, k.EditKeep, k.EditCancel}
}
