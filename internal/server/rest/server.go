// Package rest exposes the development backend over HTTP with the routes,
// payloads and error shapes the admin client and membership form expect.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/nehruadmin/internal/logging"
	"github.com/dmitrijs2005/nehruadmin/internal/server/repositories/media"
	"github.com/dmitrijs2005/nehruadmin/internal/server/services"
)

const maxUploadBytes = 32 << 20

// Services are the backend operations the router dispatches to.
type Services struct {
	Users    *services.UserService
	Content  map[string]*services.ContentService
	Licenses *services.LicenseService
	Media    media.Store
}

type RESTServer struct {
	logger    logging.Logger
	svc       Services
	publicURL string
	registry  *prometheus.Registry
	metrics   *httpMetrics
}

// NewRESTServer wires the services behind a chi router. Media links are
// built from publicURL.
func NewRESTServer(logger logging.Logger, svc Services, publicURL string) *RESTServer {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &RESTServer{
		logger:    logger.With("component", "rest"),
		svc:       svc,
		publicURL: publicURL,
		registry:  reg,
		metrics:   newHTTPMetrics(reg),
	}
	for name, cs := range svc.Content {
		reg.MustRegister(collectionGauge(name, cs))
	}
	return s
}

// Handler builds the route tree.
func (s *RESTServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.metrics.middleware)
	r.Use(middleware.Recoverer)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Get(media.Prefix+"*", s.serveMedia)

	r.Route("/api", func(r chi.Router) {
		r.Post("/accounts/login/", s.login)
		r.Post("/accounts/token/refresh/", s.refresh)

		for _, rt := range s.routes() {
			s.mount(r, rt)
		}

		if s.svc.Licenses != nil {
			r.Get("/license/check_phone/", s.checkPhone)
			r.With(s.requireAuth).Post("/license/{id}/approve/", s.approve)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"detail": `Method "` + r.Method + `" not allowed.`})
	})
	return r
}

func (s *RESTServer) mount(r chi.Router, rt route) {
	cs, ok := s.svc.Content[rt.collection]
	if !ok {
		return
	}
	h := &contentHandler{route: rt, svc: cs, server: s}

	if rt.publicList {
		r.Get(rt.path, h.list)
	} else {
		r.With(s.requireAuth).Get(rt.path, h.list)
	}
	if rt.publicCreate {
		r.Post(rt.path, h.create)
	} else {
		r.With(s.requireAuth).Post(rt.path, h.create)
	}

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		if !rt.readOnly {
			r.Patch(rt.itemPath, h.update)
			r.Put(rt.itemPath, h.update)
		}
		r.Delete(rt.itemPath, h.delete)
	})
}
