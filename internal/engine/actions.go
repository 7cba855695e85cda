package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/alitto/pond"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shubh-io/dockboard/internal/notify"
	"github.com/shubh-io/dockboard/internal/store"
	"github.com/sirupsen/logrus"
)

var (
	ErrActionPending     = errors.New("action already in progress")
	ErrEmptySelection    = errors.New("no containers selected")
	ErrActionDisabled    = errors.New("action not allowed in current state")
	ErrUnknownContainer  = errors.New("container no longer exists")
	errEngineClosed      = errors.New("engine is shutting down")
	errActionInterrupted = errors.New("action interrupted")
)

// completed batches kept around for inspection
const maxBatchHistory = 16

// PendingAction is a lifecycle command that has been sent and not yet answered.
type PendingAction struct {
	ID          string
	ContainerID string
	Name        string
	Kind        store.ActionKind
	SubmittedAt time.Time
	BatchID     string // empty for single submissions
}

type pendingKey struct {
	id   string
	kind store.ActionKind
}

// Outcome is the settled result of one target of a batch.
type Outcome struct {
	ContainerID string
	Name        string
	Err         error
}

// Batch aggregates the per-target outcomes of one bulk submission.
// targets settle independently; a failure never rolls back the others.
type Batch struct {
	ID       string
	Kind     store.ActionKind
	Total    int
	Outcomes []Outcome
}

func (b Batch) Done() bool {
	return len(b.Outcomes) >= b.Total
}

func (b Batch) Failed() int {
	n := 0
	for _, o := range b.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

func (b Batch) Succeeded() int {
	return len(b.Outcomes) - b.Failed()
}

// coordinator keeps the pending set and batch bookkeeping. its maps are only
// touched from the update loop; the worker pool only ever runs remote calls.
type coordinator struct {
	ctx  context.Context
	api  API
	pool *pond.WorkerPool
	now  func() time.Time

	pending map[pendingKey]PendingAction
	batches map[string]*Batch
	done    []string // completed batch ids, oldest first
}

func newCoordinator(ctx context.Context, a API, workers int, now func() time.Time) *coordinator {
	if workers < 1 {
		workers = 1
	}
	pool := pond.New(workers, 256, pond.PanicHandler(func(p any) {
		logrus.WithField("panic", fmt.Sprint(p)).Error("action worker panicked")
	}))
	return &coordinator{
		ctx:     ctx,
		api:     a,
		pool:    pool,
		now:     now,
		pending: make(map[pendingKey]PendingAction),
		batches: make(map[string]*Batch),
	}
}

func (c *coordinator) close() {
	c.pool.StopAndWait()
}

func (c *coordinator) isPending(id string, kind store.ActionKind) bool {
	_, ok := c.pending[pendingKey{id, kind}]
	return ok
}

func (c *coordinator) pendingFor(id string) []store.ActionKind {
	var out []store.ActionKind
	for k := range c.pending {
		if k.id == id {
			out = append(out, k.kind)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (c *coordinator) pendingCount() int {
	return len(c.pending)
}

func (c *coordinator) batch(id string) (Batch, bool) {
	b, ok := c.batches[id]
	if !ok {
		return Batch{}, false
	}
	out := *b
	out.Outcomes = append([]Outcome(nil), b.Outcomes...)
	return out, true
}

// begin records the pending action and returns the command that performs it
func (c *coordinator) begin(rec store.Record, kind store.ActionKind, batchID string) (tea.Cmd, error) {
	key := pendingKey{rec.ID, kind}
	if _, ok := c.pending[key]; ok {
		return nil, ErrActionPending
	}
	p := PendingAction{
		ID:          uuid.NewString(),
		ContainerID: rec.ID,
		Name:        rec.Name,
		Kind:        kind,
		SubmittedAt: c.now(),
		BatchID:     batchID,
	}
	c.pending[key] = p

	logrus.WithFields(logrus.Fields{
		"container": p.Name,
		"action":    p.Kind,
		"pending":   p.ID,
	}).Debug("action submitted")

	ctx, a, pool := c.ctx, c.api, c.pool
	return func() tea.Msg {
		msg, err := "", errActionInterrupted
		if subErr := runOn(pool, func() {
			msg, err = a.DoAction(ctx, p.Name, string(p.Kind))
		}); subErr != nil {
			err = subErr
		}
		return actionResultMsg{pending: p, message: msg, err: err}
	}, nil
}

// settle drops the pending entry and reports the batch if this was its last target
func (c *coordinator) settle(p PendingAction, err error) (Batch, bool) {
	key := pendingKey{p.ContainerID, p.Kind}
	if cur, ok := c.pending[key]; ok && cur.ID == p.ID {
		delete(c.pending, key)
	}
	if p.BatchID == "" {
		return Batch{}, false
	}
	return c.record(p.BatchID, Outcome{ContainerID: p.ContainerID, Name: p.Name, Err: err})
}

func (c *coordinator) newBatch(kind store.ActionKind, total int) string {
	id := uuid.NewString()
	c.batches[id] = &Batch{ID: id, Kind: kind, Total: total}
	return id
}

// record adds an outcome to a batch, returning the batch once it just completed
func (c *coordinator) record(batchID string, o Outcome) (Batch, bool) {
	b, ok := c.batches[batchID]
	if !ok || b.Done() {
		return Batch{}, false
	}
	b.Outcomes = append(b.Outcomes, o)
	if !b.Done() {
		return Batch{}, false
	}
	c.done = append(c.done, batchID)
	for len(c.done) > maxBatchHistory {
		delete(c.batches, c.done[0])
		c.done = c.done[1:]
	}
	done, _ := c.batch(batchID)
	return done, true
}

// runOn executes fn on the pool and waits for it
func runOn(pool *pond.WorkerPool, fn func()) (err error) {
	if pool.Stopped() {
		return errEngineClosed
	}
	// the pool may stop between the check and the submit
	defer func() {
		if r := recover(); r != nil {
			err = errEngineClosed
		}
	}()
	pool.SubmitAndWait(fn)
	return nil
}

// ============================================================================
// Engine side: submission and settlement
// ============================================================================

// Submit sends one lifecycle command. It fails fast, without a remote call, when the
// same action is already in flight for that container.
func (e *Engine) Submit(id string, kind store.ActionKind) (tea.Cmd, error) {
	rec, ok := e.store.Get(id)
	if !ok {
		return nil, ErrUnknownContainer
	}
	return e.actions.begin(rec, kind, "")
}

// SubmitBulk fans out one submission per target. Local rejections are reported per target
// right away; everything else reports as it settles.
func (e *Engine) SubmitBulk(ids []string, kind store.ActionKind) tea.Cmd {
	if len(ids) == 0 {
		return nil
	}
	batchID := e.actions.newBatch(kind, len(ids))

	var cmds []tea.Cmd
	for _, id := range ids {
		rec, ok := e.store.Get(id)
		var (
			cmd tea.Cmd
			err = ErrUnknownContainer
		)
		if ok {
			cmd, err = e.actions.begin(rec, kind, batchID)
		}
		if err == nil {
			cmds = append(cmds, cmd)
			continue
		}

		name := id
		if ok {
			name = rec.Name
		}
		logrus.WithFields(logrus.Fields{
			"container": name,
			"action":    kind,
		}).WithError(err).Info("action rejected locally")
		cmds = append(cmds, e.notify(fmt.Sprintf("Cannot %s %s: %v", kind, name, err), notify.Warning))
		if b, done := e.actions.record(batchID, Outcome{ContainerID: id, Name: name, Err: err}); done {
			cmds = append(cmds, e.summarize(b))
		}
	}
	return tea.Batch(cmds...)
}

func (e *Engine) settleAction(msg actionResultMsg) tea.Cmd {
	p := msg.pending
	fields := logrus.Fields{
		"container": p.Name,
		"action":    p.Kind,
		"pending":   p.ID,
		"took":      e.now().Sub(p.SubmittedAt),
	}

	var cmds []tea.Cmd
	if msg.err != nil {
		logrus.WithFields(fields).WithError(msg.err).Warn("action failed")
		cmds = append(cmds, e.notify(actionFailure(p, msg.err), notify.Error))
	} else {
		logrus.WithFields(fields).Info("action succeeded")
		if p.Kind == store.ActionDelete {
			e.store.Remove(p.ContainerID)
		}
		cmds = append(cmds, e.acknowledge(p, msg.message))
	}

	if b, done := e.actions.settle(p, msg.err); done {
		cmds = append(cmds, e.summarize(b))
	}
	cmds = append(cmds, e.nudge())
	return tea.Batch(cmds...)
}

// acknowledge reports an accepted action. A start is only acknowledged by the
// server; the container_started push carries whether it actually came up.
func (e *Engine) acknowledge(p PendingAction, serverMsg string) tea.Cmd {
	if p.Kind != store.ActionStart {
		return e.notify(fmt.Sprintf("Container %s %s", p.Name, p.Kind.Past()), notify.Success)
	}
	if serverMsg == "" {
		serverMsg = fmt.Sprintf("Starting container %s...", p.Name)
	}
	return e.notify(serverMsg, notify.Info)
}

func actionFailure(p PendingAction, err error) string {
	return fmt.Sprintf("Failed to %s %s: %s", p.Kind, p.Name, errorText(err))
}

// summarize posts one notification for a finished batch of more than one target
func (e *Engine) summarize(b Batch) tea.Cmd {
	if b.Total < 2 {
		return nil
	}
	logrus.WithFields(logrus.Fields{
		"batch":     b.ID,
		"action":    b.Kind,
		"succeeded": b.Succeeded(),
		"failed":    b.Failed(),
	}).Info("batch settled")

	sev := notify.Success
	switch {
	case b.Succeeded() == 0:
		sev = notify.Error
	case b.Failed() > 0:
		sev = notify.Warning
	}
	return e.notify(fmt.Sprintf("%s: %d of %d containers succeeded", b.Kind, b.Succeeded(), b.Total), sev)
}
