package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shubh-io/dockboard/internal/config"
)

const settingsRows = 6

func settingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		PollRate:       cfg.Performance.PollRate,
		NudgeInterval:  cfg.Performance.NudgeInterval,
		DisplaySeconds: cfg.Notifications.DisplaySeconds,
		MaxVisible:     cfg.Notifications.MaxVisible,
		ConfirmStop:    slices.Contains(cfg.Actions.Confirm, "stop"),
		ConfirmRestart: slices.Contains(cfg.Actions.Confirm, "restart"),
	}
}

// adjust moves the selected setting one step in dir (-1 or +1)
func (s *Settings) adjust(row, dir int) {
	clamp := func(v, lo, hi int) int {
		return min(max(v, lo), hi)
	}
	switch row {
	case 0:
		s.PollRate = clamp(s.PollRate+dir, 1, 300)
	case 1:
		s.NudgeInterval = clamp(s.NudgeInterval+dir*50, 50, 5000)
	case 2:
		s.DisplaySeconds = clamp(s.DisplaySeconds+dir, 1, 60)
	case 3:
		s.MaxVisible = clamp(s.MaxVisible+dir, 1, 10)
	case 4:
		s.ConfirmStop = !s.ConfirmStop
	case 5:
		s.ConfirmRestart = !s.ConfirmRestart
	}
}

// apply writes the edited values into a copy of cfg
func (s Settings) apply(cfg *config.Config) *config.Config {
	out := *cfg
	out.Performance.PollRate = s.PollRate
	out.Performance.NudgeInterval = s.NudgeInterval
	out.Notifications.DisplaySeconds = s.DisplaySeconds
	out.Notifications.MaxVisible = s.MaxVisible

	confirm := make([]string, 0, len(cfg.Actions.Confirm))
	for _, a := range cfg.Actions.Confirm {
		if a != "stop" && a != "restart" {
			confirm = append(confirm, a)
		}
	}
	if s.ConfirmStop {
		confirm = append(confirm, "stop")
	}
	if s.ConfirmRestart {
		confirm = append(confirm, "restart")
	}
	out.Actions.Confirm = confirm
	return &out
}

func (m model) renderSettings(width int) string {
	var b strings.Builder

	title := titleStyle.Render("┌─ Settings 🛠️─┐")
	padding := (width - visibleLen(title)) / 2
	if padding < 0 {
		padding = 0
	}
	header := strings.Repeat(" ", padding) + title
	if visibleLen(header) < width {
		header += strings.Repeat(" ", width-visibleLen(header))
	}
	b.WriteString(header)
	b.WriteString("\n")

	yesNo := func(v bool) string {
		if v {
			return "yes"
		}
		return "no"
	}
	rows := []string{
		fmt.Sprintf(" %4ds   Refresh Interval", m.settings.PollRate),
		fmt.Sprintf(" %4dms Minimum time between push-triggered refreshes", m.settings.NudgeInterval),
		fmt.Sprintf(" %4ds   Notification display time", m.settings.DisplaySeconds),
		fmt.Sprintf(" %4d    Notifications shown at once", m.settings.MaxVisible),
		fmt.Sprintf(" %4s    Confirm before stop", yesNo(m.settings.ConfirmStop)),
		fmt.Sprintf(" %4s    Confirm before restart", yesNo(m.settings.ConfirmRestart)),
	}

	for i, line := range rows {
		if m.settingsSelected == i {
			// highlight selected
			b.WriteString(selectedStyle.Render(padRight(line, width)))
		} else {
			b.WriteString(normalStyle.Render(padRight(line, width)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(normalStyle.Render("Delete always asks for confirmation. Changes apply after a restart."))
	b.WriteString("\n\n")

	instr := "[←/→] or [+/-] adjust  •  [↑/↓] navigate • [s] save  •   [Esc] cancel"
	if visibleLen(instr) < width {
		instr += strings.Repeat(" ", width-visibleLen(instr))
	}
	b.WriteString(infoValueStyle.Render(instr))
	b.WriteString("\n")

	return b.String()
}
