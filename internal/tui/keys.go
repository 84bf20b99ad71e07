package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	esc     key.Binding
	tab     key.Binding
	backtab key.Binding
	quit    key.Binding
	version key.Binding
	retry   key.Binding
	export  key.Binding
	recover key.Binding
	push    key.Binding
	pull    key.Binding
	refresh key.Binding
	copy    key.Binding
	keep    key.Binding
	remote  key.Binding
	merge   key.Binding
	setPIN  key.Binding
	change  key.Binding
	disable key.Binding
	yes     key.Binding
	no      key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k")),
	down:    key.NewBinding(key.WithKeys("down", "j")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	tab:     key.NewBinding(key.WithKeys("tab")),
	backtab: key.NewBinding(key.WithKeys("shift+tab")),
	quit:    key.NewBinding(key.WithKeys("q")),
	version: key.NewBinding(key.WithKeys("v")),
	retry:   key.NewBinding(key.WithKeys("r")),
	export:  key.NewBinding(key.WithKeys("e")),
	recover: key.NewBinding(key.WithKeys("x")),
	push:    key.NewBinding(key.WithKeys("p")),
	pull:    key.NewBinding(key.WithKeys("l")),
	refresh: key.NewBinding(key.WithKeys("r")),
	copy:    key.NewBinding(key.WithKeys("c")),
	keep:    key.NewBinding(key.WithKeys("1")),
	remote:  key.NewBinding(key.WithKeys("2")),
	merge:   key.NewBinding(key.WithKeys("3")),
	setPIN:  key.NewBinding(key.WithKeys("s")),
	change:  key.NewBinding(key.WithKeys("c")),
	disable: key.NewBinding(key.WithKeys("d")),
	yes:     key.NewBinding(key.WithKeys("y")),
	no:      key.NewBinding(key.WithKeys("n")),
}
