// Package validate runs live uniqueness checks for a form field while the
// user types.
//
// Every input change either fails a local precondition (state empty, no
// request) or issues a check tagged with a sequence number and the exact
// input. A reply updates the state only when it carries the latest tag and
// that input is still the field's value; anything else is dropped.
package validate

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
	"github.com/dmitrijs2005/nehruadmin/internal/logging"
)

// Checker asks the server whether value is still free for field.
type Checker interface {
	CheckUnique(ctx context.Context, field, value string) (bool, error)
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, field, value string) (bool, error)

func (f CheckerFunc) CheckUnique(ctx context.Context, field, value string) (bool, error) {
	return f(ctx, field, value)
}

// Precondition is the cheap local test an input must pass before a check is
// sent.
type Precondition func(value string) bool

// Normalizer maps the typed input to the value sent to the server.
type Normalizer func(value string) string

type tag struct {
	seq   uint64
	input string
}

type Validator struct {
	field     string
	checker   Checker
	pre       Precondition
	normalize Normalizer
	logger    logging.Logger
	ctx       context.Context

	mu        sync.Mutex
	value     string
	latest    tag
	state     models.ValidationState
	closed    bool
	listeners []func(models.ValidationState)

	notifyMu sync.Mutex
	wg       sync.WaitGroup
}

// Option configures a Validator.
type Option func(*Validator)

// WithNormalizer sets the mapping applied to the input before it is checked.
func WithNormalizer(n Normalizer) Option {
	return func(v *Validator) { v.normalize = n }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(v *Validator) { v.logger = l }
}

// New creates a validator for field. Checks run with ctx; cancelling it
// makes outstanding checks fail, and their replies are still subject to the
// tag rule.
func New(ctx context.Context, field string, checker Checker, pre Precondition, opts ...Option) *Validator {
	v := &Validator{
		field:     field,
		checker:   checker,
		pre:       pre,
		normalize: strings.TrimSpace,
		logger:    logging.Nop(),
		ctx:       ctx,
	}
	for _, o := range opts {
		o(v)
	}
	v.logger = v.logger.With("component", "validate", "field", field)
	return v
}

// OnChange registers fn to be called with the state after every visible
// transition. Calls are serialized and always carry the state current at
// delivery time.
func (v *Validator) OnChange(fn func(models.ValidationState)) {
	v.mu.Lock()
	v.listeners = append(v.listeners, fn)
	v.mu.Unlock()
}

// Input records a new field value and starts a check when the precondition
// holds.
func (v *Validator) Input(value string) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.value = value
	v.latest = tag{seq: v.latest.seq + 1, input: value}

	if !v.pre(value) {
		v.state = models.ValidationState{State: models.CheckEmpty, Input: value}
		v.mu.Unlock()
		v.notify()
		return
	}

	t := v.latest
	v.state = models.ValidationState{State: models.CheckChecking, Input: value}
	v.wg.Add(1)
	v.mu.Unlock()

	v.notify()
	go v.check(t)
}

func (v *Validator) check(t tag) {
	defer v.wg.Done()

	available, err := v.checker.CheckUnique(v.ctx, v.field, v.normalize(t.input))

	v.mu.Lock()
	if v.closed || t != v.latest || t.input != v.value {
		v.mu.Unlock()
		v.logger.Debug(v.ctx, "stale check reply discarded", "input", t.input, "seq", t.seq)
		return
	}
	switch {
	case err != nil:
		v.state = models.ValidationState{State: models.CheckError, Input: t.input, Message: err.Error()}
	case available:
		v.state = models.ValidationState{State: models.CheckAvailable, Input: t.input}
	default:
		v.state = models.ValidationState{State: models.CheckTaken, Input: t.input}
	}
	v.mu.Unlock()

	if err != nil {
		v.logger.Warn(v.ctx, "uniqueness check failed", "error", err)
	}
	v.notify()
}

func (v *Validator) notify() {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	st := v.state
	listeners := append([]func(models.ValidationState){}, v.listeners...)
	v.mu.Unlock()

	for _, fn := range listeners {
		fn(st)
	}
}

// State returns the current validation state.
func (v *Validator) State() models.ValidationState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Value returns the latest input.
func (v *Validator) Value() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// Reset clears the field as if the user erased it.
func (v *Validator) Reset() {
	v.Input("")
}

// Close stops all further transitions; replies that arrive later are
// ignored and listeners are no longer called.
func (v *Validator) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
}

// Wait blocks until every check issued so far has returned.
func (v *Validator) Wait() {
	v.wg.Wait()
}
