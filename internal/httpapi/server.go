// Package httpapi exposes the portal's REST surface: auth, the four record
// modules, and exports, all under /api/v1 with a {"detail": ...} error
// envelope.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"gestor/internal/auth"
	"gestor/internal/core"
	"gestor/internal/export"
	"gestor/internal/metrics"
	"gestor/pkg/domain"
)

// API wires the service layer to HTTP.
type API struct {
	svc     *core.Service
	auth    *auth.Service
	exports *export.Exporter
	logger  *zap.Logger
}

// New constructs the API. logger may not be nil; pass zap.NewNop() in
// tests.
func New(svc *core.Service, authSvc *auth.Service, exports *export.Exporter, logger *zap.Logger) *API {
	return &API{svc: svc, auth: authSvc, exports: exports, logger: logger}
}

// Router builds the chi router with the full middleware chain. reg is
// used both for the /metrics endpoint and the request counter middleware;
// pass nil to skip metrics exposition.
func (a *API) Router(reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(secureHeaders)
	r.Use(requestLogger(a.logger))
	if reg != nil {
		r.Use(metrics.Middleware(reg))
		r.Method(http.MethodGet, "/metrics", metrics.Handler(reg))
	}

	r.Get("/healthz", a.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", a.handleLogin)
		r.Post("/users", a.handleRegister)

		r.Group(func(r chi.Router) {
			r.Use(a.requireBearer)
			for _, m := range domain.Modules() {
				r.Route("/"+string(m), func(r chi.Router) {
					r.Get("/", a.handleList(m))
					r.Post("/", a.handleCreate(m))
					r.Put("/{id}", a.handleUpdate(m))
				})
			}
			r.Post("/exports", a.handleCreateExport)
			r.Get("/exports", a.handleListExports)
			r.Get("/exports/{id}", a.handleGetExport)
		})
	})

	return r
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
