package push

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	KindCreated Kind = iota
	KindUpdated
	KindDeleted
	KindStarted // outcome of an asynchronous start, carries a message + severity
	KindStatus
	KindLog
)

var kindNames = map[string]Kind{
	"container_created": KindCreated,
	"container_updated": KindUpdated,
	"container_deleted": KindDeleted,
	"container_started": KindStarted,
	"status_update":     KindStatus,
	"log_update":        KindLog,
}

func (k Kind) String() string {
	for name, v := range kindNames {
		if v == k {
			return name
		}
	}
	return "unknown"
}

// StatusFields is the payload of a status_update. nil means the server did not send it.
type StatusFields struct {
	Status      *string `json:"status"`
	PID         *String `json:"pid"`
	Uptime      *string `json:"uptime"`
	CPU         *string `json:"cpu"`
	Memory      *string `json:"memory"`
	LastStarted *string `json:"last_started"`
	LatestLog   *string `json:"latest_log"`
}

// Event is one decoded push message.
type Event struct {
	Kind     Kind
	Ref      string // container id, or name when the server only sends names
	Status   *StatusFields
	Message  string
	Severity string
}

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type payload struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Message string          `json:"message"`
	Status  json.RawMessage `json:"status"`
}

// Decode parses one websocket text frame.
func Decode(frame []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return Event{}, fmt.Errorf("decode envelope: %w", err)
	}
	kind, ok := kindNames[env.Event]
	if !ok {
		return Event{}, fmt.Errorf("unknown event %q", env.Event)
	}

	var p payload
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return Event{}, fmt.Errorf("decode %s: %w", env.Event, err)
		}
	}

	ev := Event{Kind: kind, Ref: p.ID, Message: p.Message}
	if ev.Ref == "" {
		ev.Ref = p.Name
	}
	if ev.Ref == "" {
		return Event{}, fmt.Errorf("%s: missing container id and name", env.Event)
	}

	// "status" is an object on status_update and a severity string elsewhere
	if len(p.Status) > 0 && string(p.Status) != "null" {
		if kind == KindStatus {
			var sf StatusFields
			if err := json.Unmarshal(p.Status, &sf); err != nil {
				return Event{}, fmt.Errorf("decode status fields: %w", err)
			}
			ev.Status = &sf
		} else {
			var sev string
			if err := json.Unmarshal(p.Status, &sev); err == nil {
				ev.Severity = sev
			}
		}
	}
	if kind == KindStatus && ev.Status == nil {
		return Event{}, fmt.Errorf("status_update for %s without status", ev.Ref)
	}
	return ev, nil
}

// String accepts both JSON strings and numbers (pids come either way)
type String string

func (s *String) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = String(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(string(n), 64); err != nil {
		return err
	}
	*s = String(strings.TrimSpace(string(n)))
	return nil
}
