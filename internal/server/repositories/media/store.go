// Package media stores uploaded binaries served under /media/.
package media

import (
	"context"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/nehruadmin/internal/common"
	"github.com/dmitrijs2005/nehruadmin/internal/server/models"
)

// Prefix is the URL path under which media are served.
const Prefix = "/media/"

type Store interface {
	// Save stores data under folder and returns its path, e.g.
	// "/media/gallery/3f2a_photo.jpg".
	Save(ctx context.Context, folder, name, contentType string, data []byte) (string, error)
	Open(ctx context.Context, p string) (*models.Media, error)
	Delete(ctx context.Context, p string) error
}

type MemoryStore struct {
	mu    sync.RWMutex
	files map[string]*models.Media
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string]*models.Media)}
}

func (s *MemoryStore) Save(ctx context.Context, folder, name, contentType string, data []byte) (string, error) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		base = "file"
	}
	p := Prefix + path.Join(folder, uuid.NewString()[:8]+"_"+base)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[p] = &models.Media{Path: p, ContentType: contentType, Data: append([]byte(nil), data...)}
	return p, nil
}

func (s *MemoryStore) Open(ctx context.Context, p string) (*models.Media, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.files[p]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return m, nil
}

func (s *MemoryStore) Delete(ctx context.Context, p string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[p]; !ok {
		return common.ErrorNotFound
	}
	delete(s.files, p)
	return nil
}
