// Package guard decides whether a form may be submitted and makes sure at
// most one submission per form is in flight.
package guard

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
	"github.com/dmitrijs2005/nehruadmin/internal/client/upload"
)

// ValidationError is a local failure that blocks a submission before any
// request is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ErrInFlight blocks a submission while another one on the same form runs.
var ErrInFlight = &ValidationError{Reason: "a submission is already in progress"}

// StateSource exposes the state of a live uniqueness check.
type StateSource interface {
	State() models.ValidationState
}

// UniqueGate ties a form field to its live check. A failed check (error
// state) only warns unless Mandatory is set.
type UniqueGate struct {
	Field     string
	Source    StateSource
	Mandatory bool
}

type Rules struct {
	Required             []string
	MinLength            map[string]int
	FileField            string
	FileRequiredOnCreate bool
	Unique               []UniqueGate
}

// RulesFor derives the local rules declared by a resource. Unique gates
// need a live source and are added by the caller.
func RulesFor(res models.Resource) Rules {
	return Rules{
		Required:             res.Required,
		MinLength:            res.MinLength,
		FileField:            res.FileField,
		FileRequiredOnCreate: res.FileRequiredOnCreate,
	}
}

// Form is what the user is about to submit.
type Form struct {
	Fields []upload.Field
	File   *upload.File
	Create bool
}

// Value returns the value of the named field.
func (f Form) Value(name string) string {
	for _, fl := range f.Fields {
		if fl.Name == name {
			return fl.Value
		}
	}
	return ""
}

// Decision is a passing verdict; Warnings carry soft-gate findings.
type Decision struct {
	Warnings []string
}

type Guard struct {
	rules Rules

	mu       sync.Mutex
	inFlight bool
}

func New(rules Rules) *Guard {
	return &Guard{rules: rules}
}

// Evaluate checks form against the rules without submitting anything.
func (g *Guard) Evaluate(form Form) (Decision, error) {
	g.mu.Lock()
	busy := g.inFlight
	g.mu.Unlock()
	if busy {
		return Decision{}, ErrInFlight
	}
	return g.rules.evaluate(form)
}

// Submit runs dispatch when form passes. The guard stays in flight until
// dispatch returns, so a concurrent Submit on the same guard fails with
// ErrInFlight.
func (g *Guard) Submit(ctx context.Context, form Form, dispatch func(ctx context.Context) error) (Decision, error) {
	g.mu.Lock()
	if g.inFlight {
		g.mu.Unlock()
		return Decision{}, ErrInFlight
	}
	dec, err := g.rules.evaluate(form)
	if err != nil {
		g.mu.Unlock()
		return Decision{}, err
	}
	g.inFlight = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.inFlight = false
		g.mu.Unlock()
	}()

	return dec, dispatch(ctx)
}

// InFlight reports whether a submission is outstanding.
func (g *Guard) InFlight() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight
}

func (r Rules) evaluate(form Form) (Decision, error) {
	var dec Decision

	for _, name := range r.Required {
		if strings.TrimSpace(form.Value(name)) == "" {
			return Decision{}, &ValidationError{Field: name, Reason: "is required"}
		}
	}

	for _, name := range slices.Sorted(maps.Keys(r.MinLength)) {
		min := r.MinLength[name]
		v := strings.TrimSpace(form.Value(name))
		if v != "" && len([]rune(v)) < min {
			return Decision{}, &ValidationError{Field: name, Reason: fmt.Sprintf("must be at least %d characters", min)}
		}
	}

	if form.Create && r.FileRequiredOnCreate && form.File == nil {
		return Decision{}, &ValidationError{Field: r.FileField, Reason: "is required"}
	}

	for _, u := range r.Unique {
		value := form.Value(u.Field)
		st := u.Source.State()

		if !st.For(value) {
			return Decision{}, &ValidationError{Field: u.Field, Reason: "is still being checked"}
		}
		switch st.State {
		case models.CheckChecking:
			return Decision{}, &ValidationError{Field: u.Field, Reason: "is still being checked"}
		case models.CheckTaken:
			return Decision{}, &ValidationError{Field: u.Field, Reason: "is already registered"}
		case models.CheckEmpty:
			if strings.TrimSpace(value) != "" {
				return Decision{}, &ValidationError{Field: u.Field, Reason: "has an invalid format"}
			}
		case models.CheckError:
			if u.Mandatory {
				return Decision{}, &ValidationError{Field: u.Field, Reason: "could not be verified"}
			}
			dec.Warnings = append(dec.Warnings, fmt.Sprintf("%s could not be verified; the server will decide", u.Field))
		}
	}

	return dec, nil
}
