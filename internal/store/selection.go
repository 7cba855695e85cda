package store

import "sort"

// Selection is the set of container ids the operator has ticked.
// It only ever holds ids that the store currently has; New wires the pruning.
type Selection struct {
	ids map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// NewWithSelection builds a store whose selection is pruned on every change
func NewWithSelection() (*Store, *Selection) {
	s := New()
	sel := NewSelection()
	s.Subscribe(func(ch Change) {
		sel.Prune(ch.Present)
	})
	return s, sel
}

// Toggle flips one id; ids unknown to present are never added
func (sel *Selection) Toggle(id string, present func(string) bool) bool {
	if _, ok := sel.ids[id]; ok {
		delete(sel.ids, id)
		return false
	}
	if present != nil && !present(id) {
		return false
	}
	sel.ids[id] = struct{}{}
	return true
}

// SelectAll selects exactly the ids passed in (what is present right now)
func (sel *Selection) SelectAll(present []string) {
	for _, id := range present {
		sel.ids[id] = struct{}{}
	}
}

func (sel *Selection) ClearAll() {
	sel.ids = make(map[string]struct{})
}

// Prune drops every id not in present
func (sel *Selection) Prune(present map[string]struct{}) []string {
	var dropped []string
	for id := range sel.ids {
		if _, ok := present[id]; !ok {
			delete(sel.ids, id)
			dropped = append(dropped, id)
		}
	}
	return dropped
}

func (sel *Selection) Remove(id string) {
	delete(sel.ids, id)
}

func (sel *Selection) Has(id string) bool {
	_, ok := sel.ids[id]
	return ok
}

func (sel *Selection) Len() int {
	return len(sel.ids)
}

// IDs returns the selected ids sorted, so bulk fan-out order is stable
func (sel *Selection) IDs() []string {
	out := make([]string, 0, len(sel.ids))
	for id := range sel.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
