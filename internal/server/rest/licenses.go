package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *RESTServer) checkPhone(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"available": false, "message": "Phone number required"})
		return
	}

	ok, err := s.svc.Licenses.IsAvailable(r.Context(), "phone", phone)
	if err != nil {
		s.fail(w, r, "License", err)
		return
	}
	msg := "Phone number available."
	if !ok {
		msg = "This phone number is already registered."
	}
	writeJSON(w, http.StatusOK, map[string]any{"available": ok, "message": msg})
}

func (s *RESTServer) approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, err := s.svc.Licenses.Approve(r.Context(), id, s.publicURL)
	if err != nil {
		s.fail(w, r, "License", err)
		return
	}
	s.logger.Info(r.Context(), "license approved", "id", id, "pdf", a.PDFURL)
	writeJSON(w, http.StatusOK, map[string]string{
		"message":       a.Message,
		"whatsapp_link": a.WhatsAppLink,
		"pdf_url":       a.PDFURL,
	})
}
