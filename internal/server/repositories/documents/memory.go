package documents

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/nehruadmin/internal/common"
	"github.com/dmitrijs2005/nehruadmin/internal/server/models"
)

// IDGenerator produces the id value of a new document.
type IDGenerator func() any

// ObjectIDs generates 24-character hex string ids.
func ObjectIDs() IDGenerator {
	return func() any {
		return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
	}
}

// Sequence generates integer ids starting at 1.
func Sequence() IDGenerator {
	var n atomic.Int64
	return func() any { return n.Add(1) }
}

// MemoryRepository keeps a collection in memory.
type MemoryRepository struct {
	idField string
	nextID  IDGenerator

	mu    sync.RWMutex
	order []string
	docs  map[string]models.Document
}

func NewMemoryRepository(idField string, ids IDGenerator) *MemoryRepository {
	return &MemoryRepository{
		idField: idField,
		nextID:  ids,
		docs:    make(map[string]models.Document),
	}
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Document, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.docs[k].Clone())
	}
	return out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return d.Clone(), nil
}

func (r *MemoryRepository) FindBy(ctx context.Context, field, value string) (models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, k := range r.order {
		if d := r.docs[k]; d.String(field) == value {
			return d.Clone(), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) Insert(ctx context.Context, doc models.Document) (models.Document, error) {
	d := doc.Clone()
	if d == nil {
		d = models.Document{}
	}
	id := r.nextID()
	key := fmt.Sprint(id)
	d[r.idField] = id

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[key]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.docs[key] = d
	r.order = append(r.order, key)
	return d.Clone(), nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, patch models.Document) (models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	d = d.Clone()
	for k, v := range patch {
		if k == r.idField {
			continue
		}
		d[k] = v
	}
	r.docs[id] = d
	return d.Clone(), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.docs, id)
	r.order = slices.DeleteFunc(r.order, func(k string) bool { return k == id })
	return nil
}

func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
