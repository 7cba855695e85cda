package tui

import (
	"github.com/charmbracelet/bubbles/list"
)

func newHelpList(width, height int) list.Model {
	l := list.New(helpItems(), list.NewDefaultDelegate(), width, height)
	l.Title = "Keyboard shortcuts"
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return l
}

// renderHelp shows a full-screen help view with all keyboard shortcuts
func (m model) renderHelp(width int) string {
	return m.helpList.View()
}

func helpItems() []list.Item {
	return []list.Item{
		item{"↑ / ↓", "Move cursor up/down"},
		item{"← / →", "Navigate between pages"},
		item{"Space", "Select/unselect container under cursor"},
		item{"A", "Select all containers"},
		item{"C", "Clear selection"},
		item{"S", "Start selected containers"},
		item{"X", "Stop selected containers"},
		item{"P", "Pause selected containers"},
		item{"U", "Resume selected containers"},
		item{"R", "Restart selected containers"},
		item{"D", "Delete selected containers (asks first)"},
		item{"Y / Enter", "Confirm the open dialog"},
		item{"N / Esc", "Cancel the open dialog"},
		item{"N", "New container"},
		item{"O", "Open container rootfs on the server host"},
		item{"L", "View/Toggle logs"},
		item{"I", "View/Toggle container info"},
		item{"Tab", "Toggle column selection mode"},
		item{"Enter", "Sort by selected column (in column mode)"},
		item{"Backspace", "Dismiss latest notification"},
		item{"F5", "Refresh now"},
		item{"F2", "Open settings"},
		item{"F1", "Show this help"},
		item{"q", "Quit application"},
		item{"Esc", "Back/Cancel"},
	}
}

type item struct {
	key, desc string
}

func (i item) Title() string       { return i.key }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return "" }
