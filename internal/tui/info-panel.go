package tui

import (
	"fmt"
	"strings"

	"github.com/shubh-io/dockboard/internal/store"
)

func (m model) renderInfoPanel(width int) string {
	var b strings.Builder

	b.WriteString(dividerStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n")

	c, ok := m.eng.Record(m.infoContainer)

	infoTitle := fmt.Sprintf("Container Info: %s ", c.Name)
	if visibleLen(infoTitle) < width {
		infoTitle += strings.Repeat(" ", width-visibleLen(infoTitle))
	}
	b.WriteString(titleStyle.Render(infoTitle))
	b.WriteString("\n")

	maxInfoLines := m.infoPanelHeight - 2 // account for divider and title
	if maxInfoLines < 1 {
		maxInfoLines = 1
	}

	if !ok {
		// deleted while the panel was open
		noContainerMsg := "  Container no longer exists"
		b.WriteString(normalStyle.Render(padRight(noContainerMsg, width)))
		b.WriteString("\n")
		for i := 1; i < maxInfoLines; i++ {
			b.WriteString(normalStyle.Render(strings.Repeat(" ", width)))
			b.WriteString("\n")
		}
		return b.String()
	}

	pending := "─"
	if kinds := m.eng.Pending(c.ID); len(kinds) > 0 {
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = string(k)
		}
		pending = strings.Join(names, ", ")
	}

	// Display container information fields
	infoFields := []struct {
		label string
		value string
	}{
		{"Container ID", c.ID},
		{"Name", c.Name},
		{"Command", c.Command},
		{"Status", c.Status.String()},
		{"PID", c.PID},
		{"Uptime", c.Uptime},
		{"CPU Usage", c.CPU},
		{"Memory Usage", c.Memory},
		{"Resources", c.Resources},
		{"Last Started", c.LastStarted},
		{"Latest Log", c.LatestLog},
		{"Pending", pending},
		{"Allowed", allowedActions(c.Status)},
	}

	// Render info fields with wrapping
	renderedLines := 0
	for _, field := range infoFields {
		if renderedLines >= maxInfoLines {
			break
		}

		value := field.value
		if value == "" {
			value = "─"
		}

		labelRendered := infoLabelStyle.Render(field.label)
		labelPart := fmt.Sprintf("  %s: ", labelRendered)

		valueMaxWidth := width - visibleLen(labelPart)
		valueLines := wrapText(value, valueMaxWidth)

		// First line with label
		line := labelPart
		if len(valueLines) > 0 && valueMaxWidth > 0 {
			line += infoValueStyle.Render(valueLines[0])
		}
		b.WriteString(normalStyle.Render(padRight(line, width)))
		b.WriteString("\n")
		renderedLines++

		// Subsequent lines, indented
		if valueMaxWidth > 0 && len(valueLines) > 1 {
			indent := strings.Repeat(" ", visibleLen(labelPart))
			for i := 1; i < len(valueLines); i++ {
				if renderedLines >= maxInfoLines {
					break
				}
				line := indent + infoValueStyle.Render(valueLines[i])
				b.WriteString(normalStyle.Render(padRight(line, width)))
				b.WriteString("\n")
				renderedLines++
			}
		}
	}

	// Fill remaining lines with empty space
	for i := renderedLines; i < maxInfoLines; i++ {
		b.WriteString(normalStyle.Render(strings.Repeat(" ", width)))
		b.WriteString("\n")
	}

	return b.String()
}

// allowedActions lists what the gating table permits from status
func allowedActions(st store.Status) string {
	var out []string
	for _, k := range store.AllActions {
		if k.AllowedFrom(st) {
			out = append(out, string(k))
		}
	}
	return strings.Join(out, " ")
}

// wrapText performs hard wrapping on a string.
func wrapText(text string, maxWidth int) []string {
	var lines []string
	if maxWidth <= 0 || text == "" {
		lines = append(lines, text)
		return lines
	}

	runes := []rune(text)
	for len(runes) > 0 {
		width := maxWidth
		if len(runes) < width {
			width = len(runes)
		}
		lines = append(lines, string(runes[:width]))
		runes = runes[width:]
	}
	return lines
}
