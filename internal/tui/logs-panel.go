package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
)

func newLogsView(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = normalStyle
	return vp
}

// sizeLogsView keeps the viewport matched to the panel
func (m *model) sizeLogsView(width int) {
	h := m.logPanelHeight - 2 // divider and title
	if h < 1 {
		h = 1
	}
	m.logsView.Width = width
	m.logsView.Height = h
}

func (m *model) setLogs(text string) {
	atBottom := m.logsView.AtBottom() || m.logsView.TotalLineCount() == 0
	text = strings.TrimRight(text, "\n")
	if text == "" {
		text = "  (no logs yet)"
	}
	m.logsView.SetContent(text)
	if atBottom {
		m.logsView.GotoBottom()
	}
}

func (m model) renderLogsPanel(width int) string {
	var b strings.Builder

	b.WriteString(dividerStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n")

	logsTitle := fmt.Sprintf("Logs: %s ", m.logsName)
	if pct := m.logsView.ScrollPercent(); m.logsView.TotalLineCount() > m.logsView.Height {
		logsTitle += fmt.Sprintf("(%3.f%%) ", pct*100)
	}
	if len(logsTitle) < width {
		logsTitle += strings.Repeat(" ", width-len(logsTitle))
	}
	b.WriteString(titleStyle.Render(logsTitle))
	b.WriteString("\n")

	b.WriteString(m.logsView.View())
	b.WriteString("\n")

	return b.String()
}
