package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shubh-io/dockboard/internal/api"
	"github.com/shubh-io/dockboard/internal/engine"
)

const (
	fieldName = iota
	fieldCommand
	fieldMem
	fieldCPU
	fieldVolumes
	fieldEnv
	fieldCount
)

var formLabels = [fieldCount]string{"Name", "Command", "Memory (MB)", "CPU (%)", "Volumes", "Environment"}

// createForm collects a new container spec
type createForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newCreateForm() createForm {
	var f createForm
	placeholders := [fieldCount]string{
		"web",
		"python3 -m http.server 8080",
		"optional, e.g. 256",
		"optional, 1-100",
		"host:container, comma separated",
		"KEY=VALUE, comma separated",
	}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.Prompt = ""
		in.CharLimit = 256
		f.inputs[i] = in
	}
	f.inputs[fieldName].CharLimit = 64
	f.inputs[fieldName].Focus()
	return f
}

func (f *createForm) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

func (f createForm) update(msg tea.Msg) (createForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// spec parses the form, catching what the server would reject anyway
func (f createForm) spec() (api.CreateSpec, error) {
	var spec api.CreateSpec
	var err error

	spec.Name = strings.TrimSpace(f.inputs[fieldName].Value())
	spec.Command = strings.TrimSpace(f.inputs[fieldCommand].Value())
	if spec.MemLimit, err = parseLimit("memory", f.inputs[fieldMem].Value()); err != nil {
		return spec, err
	}
	if spec.CPULimit, err = parseLimit("cpu", f.inputs[fieldCPU].Value()); err != nil {
		return spec, err
	}
	spec.Volumes = splitList(f.inputs[fieldVolumes].Value())
	if spec.EnvVars, err = parseEnv(f.inputs[fieldEnv].Value()); err != nil {
		return spec, err
	}
	return spec, engine.ValidateCreate(spec)
}

func (m model) renderCreateForm(width int) string {
	var b strings.Builder

	title := titleStyle.Render("┌─ New container ─┐")
	padding := (width - visibleLen(title)) / 2
	if padding < 0 {
		padding = 0
	}
	b.WriteString(padRight(strings.Repeat(" ", padding)+title, width))
	b.WriteString("\n\n")

	for i, in := range m.form.inputs {
		label := formLabelStyle.Render(formLabels[i])
		if i == m.form.focus {
			label = formFocusedLabelStyle.Render(formLabels[i])
		}
		b.WriteString("  " + label + " " + in.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.form.err != "" {
		b.WriteString(errorStyle.Render("  " + m.form.err))
		b.WriteString("\n")
	}
	instr := "[Tab/↓] next  •  [Shift+Tab/↑] previous  •  [Enter] create  •  [Esc] cancel"
	b.WriteString(infoValueStyle.Render(padRight(instr, width)))
	b.WriteString("\n")

	return b.String()
}
