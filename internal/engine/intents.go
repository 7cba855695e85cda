package engine

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shubh-io/dockboard/internal/api"
	"github.com/shubh-io/dockboard/internal/notify"
	"github.com/shubh-io/dockboard/internal/store"
	"github.com/sirupsen/logrus"
)

// ============================================================================
// Operator intents
// ============================================================================

// Toggle flips selection of one present container
func (e *Engine) Toggle(id string) bool {
	return e.sel.Toggle(id, e.store.Has)
}

func (e *Engine) SelectAll() {
	e.sel.SelectAll(e.store.IDs())
}

func (e *Engine) ClearSelection() {
	e.sel.ClearAll()
}

// IsDestructive reports whether kind has to be confirmed first
func (e *Engine) IsDestructive(kind store.ActionKind) bool {
	return e.destructive[kind]
}

// RequestAction applies kind to every selected container. Destructive kinds wait
// in the confirmation gate; the rest are submitted right away.
func (e *Engine) RequestAction(kind store.ActionKind) tea.Cmd {
	targets := e.sel.IDs()
	log := logrus.WithFields(logrus.Fields{
		"action":  kind,
		"targets": len(targets),
	})

	if len(targets) == 0 {
		log.WithError(ErrEmptySelection).Info("action rejected")
		return e.notify(fmt.Sprintf("Select at least one container to %s", kind), notify.Warning)
	}
	if !e.ActionEnabled(kind) {
		log.WithError(ErrActionDisabled).Info("action rejected")
		return e.notify(fmt.Sprintf("Cannot %s: %v", kind, ErrActionDisabled), notify.Warning)
	}

	if e.destructive[kind] {
		names := make([]string, 0, len(targets))
		for _, id := range targets {
			r, _ := e.store.Get(id)
			names = append(names, r.Name)
		}
		in := newIntent(kind, targets, names)
		e.gate.push(in)
		log.WithField("intent", in.ID).Debug("awaiting confirmation")
		return nil
	}
	return e.SubmitBulk(targets, kind)
}

// Confirm accepts the active intent and submits it
func (e *Engine) Confirm() tea.Cmd {
	in, ok := e.gate.pop()
	if !ok {
		return nil
	}
	logrus.WithFields(logrus.Fields{
		"intent": in.ID,
		"action": in.Kind,
	}).Info("intent confirmed")
	return e.SubmitBulk(in.Targets, in.Kind)
}

// Reject drops the active intent without side effects
func (e *Engine) Reject() {
	if in, ok := e.gate.pop(); ok {
		logrus.WithFields(logrus.Fields{
			"intent": in.ID,
			"action": in.Kind,
		}).Info("intent rejected")
	}
}

// Dismiss is a reject from outside the dialog (esc, click-away)
func (e *Engine) Dismiss() {
	e.Reject()
}

// Refresh polls now and reports the outcome
func (e *Engine) Refresh() tea.Cmd {
	e.announceRefresh = true
	return e.startPoll()
}

// FetchLogs loads the full log text of one container. The result arrives as LogsMsg.
func (e *Engine) FetchLogs(id string) tea.Cmd {
	rec, ok := e.store.Get(id)
	if !ok {
		return e.notify(ErrUnknownContainer.Error(), notify.Warning)
	}
	ctx, a := e.ctx, e.api
	return func() tea.Msg {
		text, err := a.GetLogs(ctx, rec.Name)
		return LogsMsg{ID: rec.ID, Name: rec.Name, Text: text, Err: err}
	}
}

// ValidateCreate checks what can be checked without asking the server
func ValidateCreate(spec api.CreateSpec) error {
	if strings.TrimSpace(spec.Name) == "" {
		return fmt.Errorf("container name is required")
	}
	if strings.ContainsAny(spec.Name, "/ \t") {
		return fmt.Errorf("container name %q must not contain spaces or slashes", spec.Name)
	}
	if strings.TrimSpace(spec.Command) == "" {
		return fmt.Errorf("command is required")
	}
	if spec.MemLimit < 0 || spec.CPULimit < 0 {
		return fmt.Errorf("resource limits must not be negative")
	}
	if spec.CPULimit > 100 {
		return fmt.Errorf("cpu limit is a percentage, got %d", spec.CPULimit)
	}
	return nil
}

// Create asks the server for a new container
func (e *Engine) Create(spec api.CreateSpec) tea.Cmd {
	spec.Name = strings.TrimSpace(spec.Name)
	spec.Command = strings.TrimSpace(spec.Command)
	if err := ValidateCreate(spec); err != nil {
		return e.notify("Cannot create container: "+err.Error(), notify.Warning)
	}
	ctx, a := e.ctx, e.api
	return func() tea.Msg {
		id, err := a.CreateContainer(ctx, spec)
		return createResultMsg{name: spec.Name, id: id, err: err}
	}
}

func (e *Engine) settleCreate(msg createResultMsg) tea.Cmd {
	log := logrus.WithField("container", msg.name)
	if msg.err != nil {
		log.WithError(msg.err).Warn("create failed")
		return e.notify(fmt.Sprintf("Failed to create %s: %s", msg.name, errorText(msg.err)), notify.Error)
	}
	log.WithField("id", msg.id).Info("container created")
	return tea.Batch(
		e.notify(fmt.Sprintf("Created container %s", msg.name), notify.Success),
		e.nudge(),
	)
}

// OpenRootfs asks the server host to open the container's filesystem
func (e *Engine) OpenRootfs(id string) tea.Cmd {
	rec, ok := e.store.Get(id)
	if !ok {
		return e.notify(ErrUnknownContainer.Error(), notify.Warning)
	}
	ctx, a := e.ctx, e.api
	return func() tea.Msg {
		return rootfsResultMsg{name: rec.Name, err: a.OpenRootfs(ctx, rec.Name)}
	}
}

// errorText prefers the server's own wording and drops the op prefix of transport errors
func errorText(err error) string {
	var rej *api.RejectionError
	if errors.As(err, &rej) {
		return rej.Message
	}
	var te *api.TransportError
	if errors.As(err, &te) {
		return te.Err.Error()
	}
	return err.Error()
}
