package engine

import (
	"github.com/shubh-io/dockboard/internal/api"
	"github.com/shubh-io/dockboard/internal/push"
)

// ============================================================================
// Messages
// ============================================================================

// regular poll timer fired
type pollTickMsg struct{}

// out-of-schedule poll, scheduled when the nudge limiter asked us to wait
type nudgeMsg struct{}

// sent when a container list fetch finishes
type snapshotMsg struct {
	containers []api.Container
	err        error
}

type pushEventMsg struct {
	ev push.Event
}

type pushStateMsg struct {
	state push.State
}

// the push source closed its channels, stop listening
type pushClosedMsg struct{}

// sent when a lifecycle command settles
type actionResultMsg struct {
	pending PendingAction
	message string
	err     error
}

type createResultMsg struct {
	name string
	id   string
	err  error
}

type rootfsResultMsg struct {
	name string
	err  error
}

// a notification's display time is up
type expireMsg struct {
	id string
}

// LogsMsg carries the full log text of one container
type LogsMsg struct {
	ID   string
	Name string
	Text string
	Err  error
}
