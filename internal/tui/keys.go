package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit      key.Binding
	reconnect key.Binding
	buildInfo key.Binding
	esc       key.Binding
}

var keys = keyMap{
	quit:      key.NewBinding(key.WithKeys("q", "ctrl+c")),
	reconnect: key.NewBinding(key.WithKeys("r")),
	buildInfo: key.NewBinding(key.WithKeys("v")),
	esc:       key.NewBinding(key.WithKeys("esc")),
}
