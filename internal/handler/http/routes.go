package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes caps request bodies read by the audit and injection checks.
const maxBodyBytes = 1 << 20

// Init builds the router. Every request is traced and audited; the audit
// hook sits outside the recoverer so panicking handlers are still recorded.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(middleware.RequestSize(maxBodyBytes))
	router.Use(h.withTraceID)
	router.Use(h.withAudit)
	router.Use(middleware.Recoverer)
	router.Use(h.withInjectionCheck)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.root)
		r.Get("/dummy-get", h.dummyGet)
		r.Post("/login", h.login)
		r.Get("/version", h.version)
		r.Method("GET", "/metrics", promhttp.Handler())
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.With(h.auth).Post("/dummy-post", h.dummyPost)
		r.With(h.validateID, h.auth).Delete("/dummy-delete/{id}", h.dummyDelete)
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.notFound)

	return router
}
