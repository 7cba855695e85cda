package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ============================================================================
// Async commands
// ============================================================================

// container polling lives in the engine; the only timer here follows the logs panel
func (m model) logsTickCmd(d time.Duration, gen int) tea.Cmd {
	if d < time.Second {
		d = 1 * time.Second
	}
	return m.tick(d, func(time.Time) tea.Msg {
		return logsTickMsg{gen: gen}
	})
}

// fetch logs for a container
func (m model) fetchLogsCmd(id string) tea.Cmd {
	return m.eng.FetchLogs(id)
}
