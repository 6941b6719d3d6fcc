package rest

import (
	"bytes"
	"errors"
	"net/http"
	"path"
	"time"

	"github.com/dmitrijs2005/nehruadmin/internal/common"
)

func (s *RESTServer) serveMedia(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.Media.Open(r.Context(), r.URL.Path)
	if errors.Is(err, common.ErrorNotFound) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		s.fail(w, r, "File", err)
		return
	}
	if m.ContentType != "" {
		w.Header().Set("Content-Type", m.ContentType)
	}
	http.ServeContent(w, r, path.Base(m.Path), time.Time{}, bytes.NewReader(m.Data))
}
