// Package engine keeps the client-side view of the server consistent.
//
// It merges the periodic container poll with the push event stream into the
// store, tracks in-flight lifecycle commands, gates destructive ones behind a
// confirmation, and produces operator notifications. The engine is driven by a
// bubbletea program: every state change happens inside Update, and the only
// work that may block (network calls) runs in the tea.Cmds it returns.
package engine

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shubh-io/dockboard/internal/api"
	"github.com/shubh-io/dockboard/internal/config"
	"github.com/shubh-io/dockboard/internal/notify"
	"github.com/shubh-io/dockboard/internal/push"
	"github.com/shubh-io/dockboard/internal/store"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// API is the remote mini-docker server as the engine sees it.
type API interface {
	ListContainers(ctx context.Context) ([]api.Container, error)
	CreateContainer(ctx context.Context, spec api.CreateSpec) (string, error)
	DoAction(ctx context.Context, name, action string) (string, error)
	GetLogs(ctx context.Context, name string) (string, error)
	OpenRootfs(ctx context.Context, name string) error
}

// PushSource delivers push events and connection state changes.
type PushSource interface {
	Events() <-chan push.Event
	States() <-chan push.State
}

// TickFunc schedules a message after d. tea.Tick in production.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

type Options struct {
	API    API
	Push   PushSource // optional
	Config *config.Config
	Now    func() time.Time
	Tick   TickFunc
}

// Engine is constructed once at startup and torn down with Close.
type Engine struct {
	api  API
	push PushSource
	cfg  *config.Config

	store   *store.Store
	sel     *store.Selection
	notes   *notify.Center
	actions *coordinator
	gate    *gate

	now  func() time.Time
	tick TickFunc

	ctx    context.Context
	cancel context.CancelFunc

	// reconciliation loop state
	polling         bool
	pollQueued      bool
	nudgeScheduled  bool
	announceRefresh bool
	limiter         *rate.Limiter
	loaded          bool
	lastPollErr     error
	lastPollAt      time.Time
	pushConnected   bool

	destructive map[store.ActionKind]bool
}

func New(opts Options) *Engine {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	tick := opts.Tick
	if tick == nil {
		tick = tea.Tick
	}

	ctx, cancel := context.WithCancel(context.Background())
	st, sel := store.NewWithSelection()

	e := &Engine{
		api:         opts.API,
		push:        opts.Push,
		cfg:         cfg,
		store:       st,
		sel:         sel,
		notes:       notify.NewCenter(cfg.NotificationTTL(), now),
		gate:        &gate{},
		now:         now,
		tick:        tick,
		ctx:         ctx,
		cancel:      cancel,
		limiter:     rate.NewLimiter(rate.Every(cfg.NudgeInterval()), 1),
		destructive: map[store.ActionKind]bool{store.ActionDelete: true},
	}
	e.actions = newCoordinator(ctx, opts.API, cfg.Actions.MaxConcurrent, now)

	for _, name := range cfg.Actions.Confirm {
		if k, ok := store.ParseAction(name); ok {
			e.destructive[k] = true
		} else {
			logrus.WithField("action", name).Warn("config: unknown action in actions.confirm")
		}
	}
	return e
}

// Close stops the worker pool and cancels whatever is still in flight.
func (e *Engine) Close() {
	e.cancel()
	e.actions.close()
}

// Init starts the poll timer, fetches the first snapshot and listens for push events.
func (e *Engine) Init() tea.Cmd {
	return tea.Batch(e.startPoll(), e.scheduleTick(), e.waitForPush())
}

// Update applies one message. It must only be called from the program's update loop.
func (e *Engine) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pollTickMsg:
		return tea.Batch(e.scheduleTick(), e.startPoll())

	case nudgeMsg:
		e.nudgeScheduled = false
		return e.startPoll()

	case snapshotMsg:
		return e.applySnapshot(msg)

	case pushEventMsg:
		return tea.Batch(e.applyPush(msg.ev), e.waitForPush())

	case pushStateMsg:
		return tea.Batch(e.applyPushState(msg.state), e.waitForPush())

	case pushClosedMsg:
		e.pushConnected = false
		logrus.Info("push: source closed")
		return nil

	case actionResultMsg:
		return e.settleAction(msg)

	case createResultMsg:
		return e.settleCreate(msg)

	case rootfsResultMsg:
		if msg.err != nil {
			return e.notify("Failed to open rootfs of "+msg.name+": "+msg.err.Error(), notify.Error)
		}
		return e.notify("Rootfs of "+msg.name+" opened in file explorer", notify.Success)

	case LogsMsg:
		if msg.Err != nil {
			return e.notify("Failed to load logs of "+msg.Name+": "+msg.Err.Error(), notify.Error)
		}
		return nil

	case expireMsg:
		if e.notes.Expire(msg.id) {
			return nil
		}
		// fired early; re-arm for whatever is left
		if left, ok := e.notes.Remaining(msg.id); ok {
			id := msg.id
			return e.tick(left, func(time.Time) tea.Msg { return expireMsg{id: id} })
		}
		return nil
	}
	return nil
}

// ============================================================================
// Notifications
// ============================================================================

// notify records an entry and arms its own expiry timer
func (e *Engine) notify(message string, sev notify.Severity) tea.Cmd {
	entry := e.notes.Notify(message, sev)
	logrus.WithFields(logrus.Fields{
		"severity": sev,
		"id":       entry.ID,
	}).Info("notify: " + message)
	id := entry.ID
	return e.tick(e.notes.TTL(), func(time.Time) tea.Msg { return expireMsg{id: id} })
}

func (e *Engine) DismissNotification(id string) {
	e.notes.Dismiss(id)
}

func (e *Engine) DismissLatestNotification() {
	e.notes.DismissLatest()
}

// ============================================================================
// Reads for the renderer
// ============================================================================

func (e *Engine) Records() []store.Record {
	return e.store.Records()
}

func (e *Engine) Record(id string) (store.Record, bool) {
	return e.store.Get(id)
}

func (e *Engine) Selected(id string) bool {
	return e.sel.Has(id)
}

func (e *Engine) SelectedIDs() []string {
	return e.sel.IDs()
}

func (e *Engine) SelectionLen() int {
	return e.sel.Len()
}

// Pending lists the actions in flight for one container
func (e *Engine) Pending(id string) []store.ActionKind {
	return e.actions.pendingFor(id)
}

func (e *Engine) IsPending(id string, kind store.ActionKind) bool {
	return e.actions.isPending(id, kind)
}

func (e *Engine) PendingCount() int {
	return e.actions.pendingCount()
}

func (e *Engine) Notifications() []notify.Entry {
	return e.notes.Entries()
}

// ActiveIntent is the confirmation currently waiting for the operator, if any
func (e *Engine) ActiveIntent() (Intent, bool) {
	return e.gate.active()
}

func (e *Engine) QueuedIntents() int {
	return e.gate.queued()
}

// Batch returns the aggregated outcome of a bulk submission
func (e *Engine) Batch(id string) (Batch, bool) {
	return e.actions.batch(id)
}

// ActionEnabled applies the gating table to the current selection
func (e *Engine) ActionEnabled(kind store.ActionKind) bool {
	return store.ActionEnabled(kind, e.selectedStatuses())
}

func (e *Engine) selectedStatuses() []store.Status {
	var out []store.Status
	for _, id := range e.sel.IDs() {
		if r, ok := e.store.Get(id); ok {
			out = append(out, r.Status)
		}
	}
	return out
}

func (e *Engine) Loaded() bool {
	return e.loaded
}

func (e *Engine) Polling() bool {
	return e.polling
}

func (e *Engine) LastPollError() error {
	return e.lastPollErr
}

func (e *Engine) LastPollAt() time.Time {
	return e.lastPollAt
}

func (e *Engine) PushConnected() bool {
	return e.pushConnected
}

func (e *Engine) MaxVisibleNotifications() int {
	return e.cfg.Notifications.MaxVisible
}
