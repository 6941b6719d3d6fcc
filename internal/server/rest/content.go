package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/nehruadmin/internal/common"
	"github.com/dmitrijs2005/nehruadmin/internal/server/models"
	"github.com/dmitrijs2005/nehruadmin/internal/server/services"
)

type contentHandler struct {
	route
	svc    *services.ContentService
	server *RESTServer
}

func (h *contentHandler) list(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *contentHandler) create(w http.ResponseWriter, r *http.Request) {
	in, err := h.server.readInput(r, h.svc.Collection().FileField)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.server.logger.Info(r.Context(), "document created", "collection", h.collection, "id", doc[h.svc.Collection().IDField])
	writeJSON(w, http.StatusCreated, h.reply(h.createReply, h.created, doc))
}

func (h *contentHandler) update(w http.ResponseWriter, r *http.Request) {
	in, err := h.server.readInput(r, h.svc.Collection().FileField)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.reply(h.updateReply, h.updated, doc))
}

func (h *contentHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.server.logger.Info(r.Context(), "document deleted", "collection", h.collection, "id", id)
	if h.deleteNoBody {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": h.deleted})
}

func (h *contentHandler) reply(style replyStyle, msg string, doc models.Document) any {
	c := h.svc.Collection()
	switch style {
	case replyEnvelope:
		return map[string]any{"message": msg, h.envelope: doc}
	case replyPartial:
		out := map[string]any{"message": msg, c.IDField: doc[c.IDField]}
		if c.URLField != "" {
			out[c.URLField] = doc[c.URLField]
		}
		return out
	}
	return doc
}

func (h *contentHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.server.fail(w, r, h.label, err)
}

// fail maps service errors to responses; unexpected ones are logged.
func (s *RESTServer) fail(w http.ResponseWriter, r *http.Request, label string, err error) {
	var re *services.RequestError
	switch {
	case errors.As(err, &re):
		writeError(w, http.StatusBadRequest, re.Message)
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, label+" not found")
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// readInput accepts multipart, urlencoded and JSON bodies.
func (s *RESTServer) readInput(r *http.Request, fileField string) (services.Input, error) {
	in := services.Input{Fields: map[string]string{}, BaseURL: s.publicURL}

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var raw map[string]any
		if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&raw); err != nil {
			return in, fmt.Errorf("invalid JSON body: %w", err)
		}
		for k, v := range raw {
			if v != nil {
				in.Fields[k] = fmt.Sprint(v)
			}
		}
		return in, nil
	}

	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)
	err := r.ParseMultipartForm(maxUploadBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return in, fmt.Errorf("invalid form body: %w", err)
	}
	for k, v := range r.Form {
		if len(v) > 0 && k != fileField {
			in.Fields[k] = v[0]
		}
	}

	if fileField == "" || r.MultipartForm == nil {
		return in, nil
	}
	f, hdr, err := r.FormFile(fileField)
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil
	}
	if err != nil {
		return in, fmt.Errorf("read %s: %w", fileField, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return in, fmt.Errorf("read %s: %w", fileField, err)
	}
	in.File = &services.Upload{Name: hdr.Filename, ContentType: hdr.Header.Get("Content-Type"), Data: data}
	return in, nil
}
