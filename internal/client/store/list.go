// Package store keeps the per-resource list of records shown to the user.
//
// A List only changes through the four transitions below, each applied after
// the server confirmed the corresponding operation. No method performs I/O.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
	"github.com/dmitrijs2005/nehruadmin/internal/logging"
)

// ErrDuplicateID is returned by InsertOne when the identifier is already listed.
var ErrDuplicateID = errors.New("record with this id is already listed")

// List is an ordered, identifier-unique collection of records.
type List struct {
	mu      sync.RWMutex
	records []models.Record
	logger  logging.Logger
}

func New(logger logging.Logger) *List {
	return &List{logger: logger.With("component", "store")}
}

// ReplaceAll discards the current contents and keeps records in the given
// order. Later duplicates of an identifier are dropped.
func (l *List) ReplaceAll(records []models.Record) {
	next := make([]models.Record, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			l.logger.Warn(context.Background(), "duplicate id in server list dropped", "id", r.ID)
			continue
		}
		seen[r.ID] = struct{}{}
		next = append(next, r.Clone())
	}

	l.mu.Lock()
	l.records = next
	l.mu.Unlock()
}

// InsertOne appends r. Inserting an identifier that is already present is a
// logic error: the list is left unchanged and ErrDuplicateID is returned.
func (l *List) InsertOne(r models.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexLocked(r.ID) >= 0 {
		l.logger.Error(context.Background(), "insert of an already listed id", "id", r.ID)
		return ErrDuplicateID
	}
	l.records = append(l.records, r.Clone())
	return nil
}

// ReplaceOne swaps the record with the given id, keeping its position. It
// reports false and leaves the list unchanged when id is absent.
func (l *List) ReplaceOne(id string, r models.Record) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		l.logger.Warn(context.Background(), "replace of an absent id ignored", "id", id)
		return false
	}
	r = r.Clone()
	r.ID = id
	l.records[i] = r
	return true
}

// RemoveOne drops the record with the given id; absent ids are a no-op.
func (l *List) RemoveOne(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		return false
	}
	l.records = append(l.records[:i:i], l.records[i+1:]...)
	return true
}

// Get returns a copy of the record with the given id.
func (l *List) Get(id string) (models.Record, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i := l.indexLocked(id); i >= 0 {
		return l.records[i].Clone(), true
	}
	return models.Record{}, false
}

// Records returns a snapshot in display order.
func (l *List) Records() []models.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Record, len(l.records))
	for i, r := range l.records {
		out[i] = r.Clone()
	}
	return out
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

func (l *List) indexLocked(id string) int {
	for i := range l.records {
		if l.records[i].ID == id {
			return i
		}
	}
	return -1
}
