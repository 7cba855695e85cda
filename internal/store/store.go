package store

import (
	"github.com/sirupsen/logrus"
)

// ============================================================================
// Records
// ============================================================================

// MaxLogPreview is the display length of Record.LatestLog
const MaxLogPreview = 50

// Record is the client-side view of one container. All fields are in display form.
type Record struct {
	ID          string // stable, never changes for a container
	Name        string // what the server routes on
	Command     string
	Status      Status
	PID         string // empty when no process is running
	Uptime      string
	Resources   string // configured limits, from the poll
	CPU         string
	Memory      string // resident usage, only pushed
	LastStarted string
	LatestLog   string // truncated preview, full text is fetched on demand
}

func (r Record) HasPID() bool {
	return r.PID != ""
}

// Delta names the fields to overwrite on one record. nil fields are left alone.
// every field is a plain replacement, so applying a delta twice is the same as once
type Delta struct {
	Name        *string
	Command     *string
	Status      *Status
	PID         *string
	Uptime      *string
	Resources   *string
	CPU         *string
	Memory      *string
	LastStarted *string
	LatestLog   *string
}

func (d Delta) Empty() bool {
	return d.Name == nil && d.Command == nil && d.Status == nil && d.PID == nil &&
		d.Uptime == nil && d.Resources == nil && d.CPU == nil && d.Memory == nil &&
		d.LastStarted == nil && d.LatestLog == nil
}

// apply overwrites named fields and reports whether anything changed
func (d Delta) apply(r *Record) bool {
	changed := false
	set := func(dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}
	set(&r.Name, d.Name)
	set(&r.Command, d.Command)
	set(&r.PID, d.PID)
	set(&r.Uptime, d.Uptime)
	set(&r.Resources, d.Resources)
	set(&r.CPU, d.CPU)
	set(&r.Memory, d.Memory)
	set(&r.LastStarted, d.LastStarted)
	if d.LatestLog != nil {
		preview := TruncateLog(*d.LatestLog)
		set(&r.LatestLog, &preview)
	}
	if d.Status != nil && r.Status != *d.Status {
		r.Status = *d.Status
		changed = true
	}
	return changed
}

// TruncateLog shortens a log line to the table preview width
func TruncateLog(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxLogPreview {
		return s
	}
	return string(runes[:MaxLogPreview-3]) + "..."
}

// ============================================================================
// Store
// ============================================================================

// Change describes one logical update to the store.
type Change struct {
	Added   []string
	Updated []string
	Removed []string
	Present map[string]struct{}
}

func (c Change) Empty() bool {
	return len(c.Added) == 0 && len(c.Updated) == 0 && len(c.Removed) == 0
}

// Store is the client-side cache of container records.
// It is not safe for concurrent use; the engine only touches it from the update loop.
type Store struct {
	records   map[string]*Record
	order     []string
	observers []func(Change)
}

func New() *Store {
	return &Store{
		records: make(map[string]*Record),
	}
}

// Subscribe registers fn to run after every store mutation, in registration order.
func (s *Store) Subscribe(fn func(Change)) {
	s.observers = append(s.observers, fn)
}

// ApplySnapshot reconciles the store against a full poll result.
// existing records are updated in place, new ones appended, vanished ones dropped
func (s *Store) ApplySnapshot(records []Record) Change {
	seen := make(map[string]struct{}, len(records))
	var ch Change
	newOrder := make([]string, 0, len(records))

	for _, in := range records {
		if in.ID == "" {
			continue
		}
		if _, dup := seen[in.ID]; dup {
			continue
		}
		seen[in.ID] = struct{}{}
		newOrder = append(newOrder, in.ID)

		cur, ok := s.records[in.ID]
		if !ok {
			rec := in
			rec.LatestLog = TruncateLog(rec.LatestLog)
			s.records[in.ID] = &rec
			ch.Added = append(ch.Added, in.ID)
			continue
		}
		if fullDelta(in).apply(cur) {
			ch.Updated = append(ch.Updated, in.ID)
		}
	}

	for _, id := range s.order {
		if _, ok := seen[id]; !ok {
			delete(s.records, id)
			ch.Removed = append(ch.Removed, id)
		}
	}
	s.order = newOrder

	logrus.WithFields(logrus.Fields{
		"added":   len(ch.Added),
		"updated": len(ch.Updated),
		"removed": len(ch.Removed),
	}).Debug("store: snapshot applied")

	s.emit(&ch)
	return ch
}

// ApplyDelta updates named fields of one record. Unknown ids are ignored,
// the record will show up with the next poll.
func (s *Store) ApplyDelta(id string, d Delta) bool {
	cur, ok := s.records[id]
	if !ok {
		return false
	}
	var ch Change
	if d.apply(cur) {
		ch.Updated = []string{id}
	}
	s.emit(&ch)
	return true
}

// Remove drops a record. Removing an unknown id is a no-op.
func (s *Store) Remove(id string) bool {
	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	ch := Change{Removed: []string{id}}
	s.emit(&ch)
	return true
}

func (s *Store) emit(ch *Change) {
	ch.Present = s.present()
	for _, fn := range s.observers {
		fn(*ch)
	}
}

func (s *Store) present() map[string]struct{} {
	out := make(map[string]struct{}, len(s.records))
	for id := range s.records {
		out[id] = struct{}{}
	}
	return out
}

// ============================================================================
// Reads
// ============================================================================

func (s *Store) Get(id string) (Record, bool) {
	r, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	return *r, true
}

// Resolve maps an id or a container name to the record id
func (s *Store) Resolve(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	if _, ok := s.records[ref]; ok {
		return ref, true
	}
	for _, id := range s.order {
		if s.records[id].Name == ref {
			return id, true
		}
	}
	return "", false
}

// Records returns copies in display order
func (s *Store) Records() []Record {
	out := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.records[id])
	}
	return out
}

func (s *Store) IDs() []string {
	return append([]string(nil), s.order...)
}

func (s *Store) Len() int {
	return len(s.order)
}

func (s *Store) Has(id string) bool {
	_, ok := s.records[id]
	return ok
}

// fullDelta is what a poll asserts. Memory is not part of the listing, so a
// snapshot leaves the pushed value in place.
func fullDelta(r Record) Delta {
	return Delta{
		Name:        &r.Name,
		Command:     &r.Command,
		Status:      &r.Status,
		PID:         &r.PID,
		Uptime:      &r.Uptime,
		Resources:   &r.Resources,
		CPU:         &r.CPU,
		LastStarted: &r.LastStarted,
		LatestLog:   &r.LatestLog,
	}
}
