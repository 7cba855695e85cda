package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shubh-io/dockboard/internal/notify"
)

func severityStyle(sev notify.Severity) lipgloss.Style {
	switch sev {
	case notify.Success:
		return noteSuccessStyle
	case notify.Warning:
		return noteWarningStyle
	case notify.Error:
		return noteErrorStyle
	default:
		return noteInfoStyle
	}
}

func severityIcon(sev notify.Severity) string {
	switch sev {
	case notify.Success:
		return "✔"
	case notify.Warning:
		return "!"
	case notify.Error:
		return "✘"
	default:
		return "i"
	}
}

// renderNotifications draws the live stack, newest on top
func (m model) renderNotifications(width int) (string, int) {
	entries := m.eng.Notifications()
	maxVisible := m.eng.MaxVisibleNotifications()
	if maxVisible < 1 {
		maxVisible = 1
	}

	var b strings.Builder
	lines := 0
	for i, n := range entries {
		if i == maxVisible {
			more := fmt.Sprintf("  +%d more", len(entries)-maxVisible)
			b.WriteString(normalStyle.Render(padRight(more, width)))
			b.WriteString("\n")
			lines++
			break
		}
		text := fmt.Sprintf(" %s %s", severityIcon(n.Severity), n.Message)
		text = truncateToWidth(text, width)
		b.WriteString(severityStyle(n.Severity).Render(padRight(text, width)))
		b.WriteString("\n")
		lines++
	}
	return b.String(), lines
}

// renderDialog draws the confirmation for the intent at the head of the gate
func (m model) renderDialog(width, height int) string {
	in, ok := m.eng.ActiveIntent()
	if !ok {
		return ""
	}

	var body strings.Builder
	body.WriteString(dialogTitleStyle.Render(in.Title))
	body.WriteString("\n\n")
	body.WriteString(infoValueStyle.Render(in.Message))
	body.WriteString("\n")

	names := in.Names
	if len(names) > 8 {
		names = append(names[:8:8], fmt.Sprintf("… and %d more", len(in.Names)-8))
	}
	for _, n := range names {
		body.WriteString("\n")
		body.WriteString(infoLabelStyle.Render("  • " + n))
	}
	body.WriteString("\n\n")

	body.WriteString(meterBracketStyle.Render("["))
	body.WriteString(footerKeyStyle.Render("y"))
	body.WriteString(meterBracketStyle.Render("]"))
	body.WriteString(footerArrowStyle.Render("→"))
	body.WriteString(footerDescStyle.Render("Yes"))
	body.WriteString("   ")
	body.WriteString(meterBracketStyle.Render("["))
	body.WriteString(footerKeyStyle.Render("n"))
	body.WriteString(meterBracketStyle.Render("]"))
	body.WriteString(footerArrowStyle.Render("→"))
	body.WriteString(footerDescStyle.Render("No"))

	if q := m.eng.QueuedIntents(); q > 0 {
		body.WriteString("\n\n")
		body.WriteString(normalStyle.Render(fmt.Sprintf("%d more waiting", q)))
	}

	box := dialogStyle.Render(body.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
