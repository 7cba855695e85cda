package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// ============================================================================
// Keyboard shortcuts
// ============================================================================

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	SelectAll  key.Binding
	ClearSel   key.Binding
	Start      key.Binding
	Stop       key.Binding
	Pause      key.Binding
	Resume     key.Binding
	Restart    key.Binding
	Remove     key.Binding
	Create     key.Binding
	Rootfs     key.Binding
	Logs       key.Binding
	Info       key.Binding
	Refresh    key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Confirm    key.Binding
	Reject     key.Binding
	Dismiss    key.Binding
	Quit       key.Binding
	Help       key.Binding
	Settings   key.Binding
	ColumnMode key.Binding
	DebugDump  key.Binding
}

var Keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k")),
	Down:       key.NewBinding(key.WithKeys("down", "j")),
	Toggle:     key.NewBinding(key.WithKeys(" ")),
	SelectAll:  key.NewBinding(key.WithKeys("a", "A")),
	ClearSel:   key.NewBinding(key.WithKeys("c", "C")),
	Start:      key.NewBinding(key.WithKeys("s", "S")),
	Stop:       key.NewBinding(key.WithKeys("x", "X")),
	Pause:      key.NewBinding(key.WithKeys("p", "P")),
	Resume:     key.NewBinding(key.WithKeys("u", "U")),
	Restart:    key.NewBinding(key.WithKeys("r", "R")),
	Remove:     key.NewBinding(key.WithKeys("d", "D")),
	Create:     key.NewBinding(key.WithKeys("n", "N")),
	Rootfs:     key.NewBinding(key.WithKeys("o", "O")),
	Logs:       key.NewBinding(key.WithKeys("l", "L")),
	Info:       key.NewBinding(key.WithKeys("i", "I")),
	Refresh:    key.NewBinding(key.WithKeys("f5", "ctrl+r")),
	PageUp:     key.NewBinding(key.WithKeys("pgup", "left", "[")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown", "right", "]")),
	Confirm:    key.NewBinding(key.WithKeys("y", "Y", "enter")),
	Reject:     key.NewBinding(key.WithKeys("n", "N", "esc")),
	Dismiss:    key.NewBinding(key.WithKeys("backspace", "delete")),
	Quit:       key.NewBinding(key.WithKeys("q", "Q", "ctrl+c", "f10")),
	Help:       key.NewBinding(key.WithKeys("f1", "?")),
	Settings:   key.NewBinding(key.WithKeys("f2")),
	ColumnMode: key.NewBinding(key.WithKeys("tab")),
	DebugDump:  key.NewBinding(key.WithKeys("`")),
}
