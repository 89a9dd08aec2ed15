// Package inflight tracks the latest request per view so that results of
// superseded requests are discarded rather than shown.
package inflight

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// ErrSuperseded marks a result whose request was replaced by a newer one
// in the same scope.
var ErrSuperseded = eris.New("request superseded")

// Ticket identifies one in-flight request.
type Ticket struct {
	ID     string `json:"id"`
	Scope  string `json:"scope"`
	Params string `json:"params"`
}

type entry struct {
	ticket Ticket
	cancel context.CancelFunc
}

// Tracker holds the current ticket per scope. A scope is typically one
// view in one client session, e.g. "session-1/dossier".
type Tracker struct {
	mu      sync.Mutex
	current map[string]entry
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{current: make(map[string]entry)}
}

// Begin registers a request for scope with the parameters that produced
// it, cancelling whatever was in flight there. The returned context is
// cancelled when the request is superseded or finished.
func (t *Tracker) Begin(ctx context.Context, scope, params string) (context.Context, Ticket) {
	rctx, cancel := context.WithCancel(ctx)
	tk := Ticket{ID: uuid.NewString(), Scope: scope, Params: params}

	t.mu.Lock()
	prev, ok := t.current[scope]
	t.current[scope] = entry{ticket: tk, cancel: cancel}
	t.mu.Unlock()

	if ok {
		prev.cancel()
	}
	return rctx, tk
}

// Current reports whether tk is still the latest request in its scope.
func (t *Tracker) Current(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.current[tk.Scope]
	return ok && e.ticket.ID == tk.ID
}

// Finish releases tk. It returns ErrSuperseded when a newer request took
// over the scope, in which case the caller must drop its result.
func (t *Tracker) Finish(tk Ticket) error {
	t.mu.Lock()
	e, ok := t.current[tk.Scope]
	current := ok && e.ticket.ID == tk.ID
	if current {
		delete(t.current, tk.Scope)
	}
	t.mu.Unlock()

	if !current {
		return eris.Wrapf(ErrSuperseded, "inflight: %s", tk.Scope)
	}
	e.cancel()
	return nil
}

// Len returns the number of scopes with a request in flight.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.current)
}
