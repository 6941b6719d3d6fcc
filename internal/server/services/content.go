package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/nehruadmin/internal/common"
	"github.com/dmitrijs2005/nehruadmin/internal/server/models"
	"github.com/dmitrijs2005/nehruadmin/internal/server/repositories/documents"
	"github.com/dmitrijs2005/nehruadmin/internal/server/repositories/media"
)

// RequestError is a rejected request; its message goes back to the caller
// verbatim.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string { return e.Message }

func invalid(msg string) error { return &RequestError{Message: msg} }

// Upload is a received file part.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// Input is a create or update request.
type Input struct {
	Fields map[string]string
	File   *Upload
	// BaseURL is prefixed to media paths, e.g. "http://127.0.0.1:8000".
	BaseURL string
}

// UniqueRule rejects a value already stored in another document.
type UniqueRule struct {
	Field   string
	Message string
}

// Collection describes one content type.
type Collection struct {
	Name    string
	IDField string
	Fields  []string
	// Defaults fill fields the request did not set on create.
	Defaults map[string]any

	Required        []string
	FileField       string
	FileRequired    bool
	RequiredMessage string
	NoChanges       string

	// URLField stores the absolute media link of the file part.
	URLField    string
	MediaFolder string

	Unique      []UniqueRule
	Timestamps  bool
	NewestFirst bool
}

// ContentService implements create/list/update/delete for one collection.
type ContentService struct {
	c     Collection
	docs  documents.Repository
	media media.Store
	now   func() time.Time
}

func NewContentService(c Collection, docs documents.Repository, m media.Store) *ContentService {
	return &ContentService{c: c, docs: docs, media: m, now: time.Now}
}

func (s *ContentService) Collection() Collection { return s.c }

// Len is the number of stored documents.
func (s *ContentService) Len() int { return s.docs.Len() }

func (s *ContentService) List(ctx context.Context) ([]models.Document, error) {
	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.c.NewestFirst {
		slices.Reverse(docs)
		slices.SortStableFunc(docs, func(a, b models.Document) int {
			return strings.Compare(b.String("created_at"), a.String("created_at"))
		})
	}
	return docs, nil
}

func (s *ContentService) Get(ctx context.Context, id string) (models.Document, error) {
	return s.docs.Get(ctx, id)
}

func (s *ContentService) Create(ctx context.Context, in Input) (models.Document, error) {
	for _, f := range s.c.Required {
		if in.Fields[f] == "" {
			return nil, invalid(s.c.RequiredMessage)
		}
	}
	if s.c.FileRequired && in.File == nil {
		return nil, invalid(s.c.RequiredMessage)
	}
	if err := s.checkUnique(ctx, "", in.Fields); err != nil {
		return nil, err
	}

	doc := models.Document{}
	for _, f := range s.c.Fields {
		if v, ok := in.Fields[f]; ok && v != "" {
			doc[f] = v
		} else if d, ok := s.c.Defaults[f]; ok {
			doc[f] = d
		} else {
			doc[f] = nil
		}
	}
	for k, v := range s.c.Defaults {
		if _, ok := doc[k]; !ok {
			doc[k] = v
		}
	}
	if in.File != nil && s.c.FileField != "" {
		link, err := s.saveFile(ctx, in)
		if err != nil {
			return nil, err
		}
		doc[s.c.URLField] = link
	}
	if s.c.Timestamps {
		doc["created_at"] = s.now().UTC().Format(time.RFC3339Nano)
	}
	return s.docs.Insert(ctx, doc)
}

// Update applies the non-empty text fields and, when present, replaces the
// stored file. The old file is removed after the new one is stored.
func (s *ContentService) Update(ctx context.Context, id string, in Input) (models.Document, error) {
	cur, err := s.docs.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := models.Document{}
	for _, f := range s.c.Fields {
		if v := in.Fields[f]; v != "" {
			patch[f] = v
		}
	}
	if err := s.checkUnique(ctx, id, in.Fields); err != nil {
		return nil, err
	}

	var oldLink string
	if in.File != nil && s.c.FileField != "" {
		link, err := s.saveFile(ctx, in)
		if err != nil {
			return nil, err
		}
		oldLink = cur.String(s.c.URLField)
		patch[s.c.URLField] = link
	}
	if len(patch) == 0 {
		return nil, invalid(s.c.NoChanges)
	}

	doc, err := s.docs.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.removeFile(ctx, oldLink)
	return doc, nil
}

func (s *ContentService) Delete(ctx context.Context, id string) error {
	cur, err := s.docs.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.docs.Delete(ctx, id); err != nil {
		return err
	}
	if s.c.URLField != "" {
		s.removeFile(ctx, cur.String(s.c.URLField))
	}
	return nil
}

// IsAvailable reports whether no document holds value in field.
func (s *ContentService) IsAvailable(ctx context.Context, field, value string) (bool, error) {
	_, err := s.docs.FindBy(ctx, field, value)
	if errors.Is(err, common.ErrorNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

func (s *ContentService) checkUnique(ctx context.Context, selfID string, fields map[string]string) error {
	for _, rule := range s.c.Unique {
		v := fields[rule.Field]
		if v == "" {
			continue
		}
		other, err := s.docs.FindBy(ctx, rule.Field, v)
		if errors.Is(err, common.ErrorNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if other.String(s.c.IDField) != selfID {
			return invalid(rule.Message)
		}
	}
	return nil
}

func (s *ContentService) saveFile(ctx context.Context, in Input) (string, error) {
	if len(in.File.Data) == 0 {
		return "", invalid(fmt.Sprintf("%s is empty", s.c.FileField))
	}
	p, err := s.media.Save(ctx, s.c.MediaFolder, in.File.Name, in.File.ContentType, in.File.Data)
	if err != nil {
		return "", fmt.Errorf("save %s: %w", s.c.FileField, err)
	}
	return strings.TrimRight(in.BaseURL, "/") + p, nil
}

// removeFile drops a stored file given its link; unknown links are ignored.
func (s *ContentService) removeFile(ctx context.Context, link string) {
	if link == "" {
		return
	}
	u, err := url.Parse(link)
	if err != nil || !strings.HasPrefix(u.Path, media.Prefix) {
		return
	}
	_ = s.media.Delete(ctx, u.Path)
}
