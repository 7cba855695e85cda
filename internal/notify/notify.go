package notify

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// ParseSeverity maps server-provided severities, defaulting to Info
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case Success, Warning, Error:
		return Severity(s)
	}
	return Info
}

// Entry is one transient message shown to the operator.
type Entry struct {
	ID        string
	Message   string
	Severity  Severity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Center holds live notifications. Each entry expires on its own schedule.
// Like the store, it is only touched from the update loop.
type Center struct {
	ttl     time.Duration
	now     func() time.Time
	entries []Entry // oldest first
}

func NewCenter(ttl time.Duration, now func() time.Time) *Center {
	if now == nil {
		now = time.Now
	}
	return &Center{ttl: ttl, now: now}
}

func (c *Center) TTL() time.Duration {
	return c.ttl
}

// Notify always appends a fresh entry, even if an identical message is live.
func (c *Center) Notify(message string, sev Severity) Entry {
	now := c.now()
	e := Entry{
		ID:        ulid.Make().String(),
		Message:   message,
		Severity:  sev,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}
	c.entries = append(c.entries, e)
	return e
}

// Expire removes the entry if its time is up. Early timers are ignored.
func (c *Center) Expire(id string) bool {
	for i, e := range c.entries {
		if e.ID != id {
			continue
		}
		if c.now().Before(e.ExpiresAt) {
			return false
		}
		c.entries = append(c.entries[:i], c.entries[i+1:]...)
		return true
	}
	return false
}

// Remaining reports how long a live entry still has
func (c *Center) Remaining(id string) (time.Duration, bool) {
	for _, e := range c.entries {
		if e.ID == id {
			return e.ExpiresAt.Sub(c.now()), true
		}
	}
	return 0, false
}

// Dismiss removes an entry right away
func (c *Center) Dismiss(id string) bool {
	for i, e := range c.entries {
		if e.ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Center) DismissLatest() bool {
	if len(c.entries) == 0 {
		return false
	}
	c.entries = c.entries[:len(c.entries)-1]
	return true
}

// Entries returns live entries, newest first
func (c *Center) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for i := len(c.entries) - 1; i >= 0; i-- {
		out = append(out, c.entries[i])
	}
	return out
}

func (c *Center) Len() int {
	return len(c.entries)
}
