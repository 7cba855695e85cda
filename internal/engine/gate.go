package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shubh-io/dockboard/internal/store"
)

// Intent is a destructive request waiting for the operator's yes or no.
// It carries everything needed to carry it out, so nothing is looked up by name later.
type Intent struct {
	ID      string
	Kind    store.ActionKind
	Targets []string // container ids
	Names   []string
	Title   string
	Message string
}

func newIntent(kind store.ActionKind, targets []string, names []string) Intent {
	verb := strings.ToUpper(string(kind[:1])) + string(kind[1:])
	msg := fmt.Sprintf("%s %d containers?", verb, len(targets))
	if len(targets) == 1 {
		msg = fmt.Sprintf("%s 1 container (%s)?", verb, names[0])
	}
	if kind == store.ActionDelete {
		msg += " This cannot be undone."
	}
	return Intent{
		ID:      uuid.NewString(),
		Kind:    kind,
		Targets: targets,
		Names:   names,
		Title:   "Confirm " + string(kind),
		Message: msg,
	}
}

// gate holds intents in arrival order; only the head is shown
type gate struct {
	queue []Intent
}

func (g *gate) push(in Intent) {
	g.queue = append(g.queue, in)
}

func (g *gate) active() (Intent, bool) {
	if len(g.queue) == 0 {
		return Intent{}, false
	}
	return g.queue[0], true
}

func (g *gate) pop() (Intent, bool) {
	in, ok := g.active()
	if ok {
		g.queue = g.queue[1:]
	}
	return in, ok
}

// queued counts intents behind the active one
func (g *gate) queued() int {
	if len(g.queue) == 0 {
		return 0
	}
	return len(g.queue) - 1
}
