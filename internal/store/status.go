package store

import "strings"

// Status is the lifecycle status reported by the server.
type Status int

const (
	StatusUnknown Status = iota
	StatusCreated
	StatusStarting
	StatusRunning
	StatusPaused
	StatusStopped
	StatusError
)

var statusNames = map[Status]string{
	StatusUnknown:  "Unknown",
	StatusCreated:  "Created",
	StatusStarting: "Starting",
	StatusRunning:  "Running",
	StatusPaused:   "Paused",
	StatusStopped:  "Stopped",
	StatusError:    "Error",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "Unknown"
}

// ParseStatus is case-insensitive; anything unrecognized maps to StatusUnknown
func ParseStatus(s string) Status {
	s = strings.TrimSpace(s)
	for st, name := range statusNames {
		if strings.EqualFold(name, s) {
			return st
		}
	}
	return StatusUnknown
}

// ActionKind is a lifecycle command the operator can issue.
type ActionKind string

const (
	ActionStart   ActionKind = "start"
	ActionStop    ActionKind = "stop"
	ActionPause   ActionKind = "pause"
	ActionResume  ActionKind = "resume"
	ActionRestart ActionKind = "restart"
	ActionDelete  ActionKind = "delete"
)

var AllActions = []ActionKind{ActionStart, ActionStop, ActionPause, ActionResume, ActionRestart, ActionDelete}

// statuses from which an action makes sense. nil means any status.
var allowedFrom = map[ActionKind][]Status{
	ActionStart:   {StatusCreated, StatusStopped, StatusPaused, StatusError},
	ActionStop:    {StatusRunning, StatusStarting},
	ActionPause:   {StatusRunning},
	ActionResume:  {StatusPaused},
	ActionRestart: nil,
	ActionDelete:  nil,
}

func ParseAction(s string) (ActionKind, bool) {
	k := ActionKind(strings.ToLower(strings.TrimSpace(s)))
	_, ok := allowedFrom[k]
	return k, ok
}

// Mutating actions change container state and are guarded against double submission.
func (k ActionKind) Mutating() bool {
	_, ok := allowedFrom[k]
	return ok
}

// past tense for notifications ("stopped", "paused", ...)
func (k ActionKind) Past() string {
	switch k {
	case ActionStart:
		return "started"
	case ActionStop:
		return "stopped"
	case ActionPause:
		return "paused"
	case ActionResume:
		return "resumed"
	case ActionRestart:
		return "restarted"
	case ActionDelete:
		return "deleted"
	}
	return string(k)
}

func (k ActionKind) AllowedFrom(s Status) bool {
	allowed, ok := allowedFrom[k]
	if !ok {
		return false
	}
	if allowed == nil {
		return true
	}
	for _, a := range allowed {
		if a == s {
			return true
		}
	}
	return false
}

// ActionEnabled reports whether at least one of the given statuses permits the action.
// This is a client-side hint only; the server has the final word.
func ActionEnabled(k ActionKind, statuses []Status) bool {
	for _, s := range statuses {
		if k.AllowedFrom(s) {
			return true
		}
	}
	return false
}
