package engine

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shubh-io/dockboard/internal/api"
	"github.com/shubh-io/dockboard/internal/notify"
	"github.com/shubh-io/dockboard/internal/push"
	"github.com/shubh-io/dockboard/internal/store"
	"github.com/sirupsen/logrus"
)

// ============================================================================
// Poll
// ============================================================================

func (e *Engine) scheduleTick() tea.Cmd {
	return e.tick(e.cfg.PollInterval(), func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

// startPoll fetches the container list unless a fetch is already in flight,
// in which case exactly one follow-up fetch is queued
func (e *Engine) startPoll() tea.Cmd {
	if e.polling {
		e.pollQueued = true
		return nil
	}
	e.polling = true

	ctx, a := e.ctx, e.api
	return func() tea.Msg {
		containers, err := a.ListContainers(ctx)
		return snapshotMsg{containers: containers, err: err}
	}
}

// nudge asks for an out-of-schedule poll, limited to one per nudge interval.
// a nudge the limiter delays is scheduled once; later nudges fold into it
func (e *Engine) nudge() tea.Cmd {
	if e.nudgeScheduled {
		return nil
	}
	now := e.now()
	delay := e.limiter.ReserveN(now, 1).DelayFrom(now)
	if delay <= 0 {
		return e.startPoll()
	}
	e.nudgeScheduled = true
	return e.tick(delay, func(time.Time) tea.Msg {
		return nudgeMsg{}
	})
}

func (e *Engine) applySnapshot(msg snapshotMsg) tea.Cmd {
	e.polling = false

	var cmds []tea.Cmd
	if msg.err != nil {
		// keep the stale view; the next tick retries
		e.lastPollErr = msg.err
		logrus.WithError(msg.err).Warn("poll failed")
		if e.announceRefresh {
			e.announceRefresh = false
			cmds = append(cmds, e.notify("Failed to refresh containers: "+msg.err.Error(), notify.Error))
		}
	} else {
		records := make([]store.Record, 0, len(msg.containers))
		for _, c := range msg.containers {
			records = append(records, toRecord(c))
		}
		ch := e.store.ApplySnapshot(records)
		e.loaded = true
		e.lastPollErr = nil
		e.lastPollAt = e.now()

		if !ch.Empty() {
			logrus.WithFields(logrus.Fields{
				"added":   len(ch.Added),
				"updated": len(ch.Updated),
				"removed": len(ch.Removed),
			}).Debug("snapshot applied")
		}
		if e.announceRefresh {
			e.announceRefresh = false
			cmds = append(cmds, e.notify("Containers refreshed", notify.Success))
		}
	}

	if e.pollQueued {
		e.pollQueued = false
		cmds = append(cmds, e.startPoll())
	}
	return tea.Batch(cmds...)
}

// toRecord converts the wire form; the server renders "no pid" as "-"
func toRecord(c api.Container) store.Record {
	return store.Record{
		ID:          c.ID,
		Name:        c.Name,
		Command:     c.Command,
		Status:      store.ParseStatus(c.Status),
		PID:         normalizePID(c.PID),
		Uptime:      c.Uptime,
		Resources:   c.Resources,
		CPU:         c.CPU,
		LastStarted: c.LastStarted,
		LatestLog:   store.TruncateLog(c.LatestLog),
	}
}

func normalizePID(pid string) string {
	pid = strings.TrimSpace(pid)
	if pid == "-" {
		return ""
	}
	return pid
}

// ============================================================================
// Push
// ============================================================================

// waitForPush blocks on the push source for exactly one message.
// every push message re-arms it, so at most one waiter exists
func (e *Engine) waitForPush() tea.Cmd {
	if e.push == nil {
		return nil
	}
	events, states := e.push.Events(), e.push.States()
	return func() tea.Msg {
		select {
		case ev, ok := <-events:
			if !ok {
				return pushClosedMsg{}
			}
			return pushEventMsg{ev: ev}
		case st, ok := <-states:
			if !ok {
				return pushClosedMsg{}
			}
			return pushStateMsg{state: st}
		}
	}
}

func (e *Engine) applyPush(ev push.Event) tea.Cmd {
	log := logrus.WithFields(logrus.Fields{
		"event":     ev.Kind,
		"container": ev.Ref,
	})

	switch ev.Kind {
	case push.KindCreated:
		log.Debug("push: container created")
		return tea.Batch(
			e.notify(fmt.Sprintf("Container %s created", ev.Ref), notify.Success),
			e.nudge(),
		)

	case push.KindUpdated:
		return e.nudge()

	case push.KindStarted:
		msg := ev.Message
		if msg == "" {
			msg = fmt.Sprintf("Container %s started", ev.Ref)
		}
		return tea.Batch(e.notify(msg, notify.ParseSeverity(ev.Severity)), e.nudge())
	}

	id, ok := e.store.Resolve(ev.Ref)
	if !ok {
		log.Debug("push: unknown container, ignoring")
		return nil
	}

	switch ev.Kind {
	case push.KindDeleted:
		e.store.Remove(id)
		return nil

	case push.KindStatus:
		before, _ := e.store.Get(id)
		d := statusDelta(ev.Status)
		e.store.ApplyDelta(id, d)
		// the server sends these every second; only a real transition is worth a poll
		if d.Status != nil && *d.Status != before.Status {
			log.WithField("status", d.Status.String()).Debug("push: status changed")
			return e.nudge()
		}
		return nil

	case push.KindLog:
		msg := ev.Message
		e.store.ApplyDelta(id, store.Delta{LatestLog: &msg})
		return nil
	}
	return nil
}

func statusDelta(sf *push.StatusFields) store.Delta {
	var d store.Delta
	if sf == nil {
		return d
	}
	if sf.Status != nil {
		st := store.ParseStatus(*sf.Status)
		d.Status = &st
	}
	if sf.PID != nil {
		pid := normalizePID(string(*sf.PID))
		d.PID = &pid
	}
	d.Uptime = sf.Uptime
	d.CPU = sf.CPU
	d.Memory = sf.Memory
	d.LastStarted = sf.LastStarted
	d.LatestLog = sf.LatestLog
	return d
}

func (e *Engine) applyPushState(st push.State) tea.Cmd {
	was := e.pushConnected
	e.pushConnected = st.Connected

	switch {
	case st.Connected && !was:
		// events may have been missed while we were away
		return e.nudge()
	case !st.Connected && was:
		return e.notify("Live updates disconnected, reconnecting", notify.Warning)
	}
	return nil
}
