// Package confirm implements the two-state confirmation gate placed in front
// of destructive actions.
//
// A Gate is idle or armed. Request arms it for a target (replacing any
// earlier request), Dismiss disarms it, and Accept disarms it and runs the
// bound action exactly once for the armed target.
package confirm

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
)

// ErrNotArmed is returned by Accept when nothing awaits confirmation.
var ErrNotArmed = errors.New("nothing to confirm")

// Action is the destructive operation guarded by a Gate.
type Action func(ctx context.Context, target models.Record) error

type Gate struct {
	action Action

	mu    sync.Mutex
	armed *models.Record
}

func NewGate(action Action) *Gate {
	return &Gate{action: action}
}

// Request arms the gate for target. A previously armed target is dropped
// without running the action.
func (g *Gate) Request(target models.Record) {
	t := target.Clone()
	g.mu.Lock()
	g.armed = &t
	g.mu.Unlock()
}

// Accept disarms the gate and runs the action for the armed target. The gate
// is idle again before the action starts, whatever its outcome.
func (g *Gate) Accept(ctx context.Context) error {
	g.mu.Lock()
	target := g.armed
	g.armed = nil
	g.mu.Unlock()

	if target == nil {
		return ErrNotArmed
	}
	return g.action(ctx, *target)
}

// Dismiss disarms the gate. It reports whether a request was pending.
func (g *Gate) Dismiss() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	was := g.armed != nil
	g.armed = nil
	return was
}

// Pending returns the armed target.
func (g *Gate) Pending() (models.Record, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.armed == nil {
		return models.Record{}, false
	}
	return g.armed.Clone(), true
}
