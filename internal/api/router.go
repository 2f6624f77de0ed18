package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"field-ops-service/internal/api/handlers"
	"field-ops-service/internal/platform/logger"
	"field-ops-service/internal/ports"
)

type Deps struct {
	Assignments handlers.AssignmentService
	Dashboard   handlers.DashboardService
	Workers     handlers.WorkerService
	Stores      ports.StoreRepository
	// Gatherer backs /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
	Log      logger.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(deps Deps) http.Handler {
	log := deps.Log
	if log == nil {
		log = logger.NopLogger{}
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	assignments := &handlers.AssignmentHandler{Service: deps.Assignments}
	dashboard := &handlers.DashboardHandler{Service: deps.Dashboard}
	workers := &handlers.WorkerHandler{Service: deps.Workers}
	stores := &handlers.StoreHandler{Repo: deps.Stores}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(log))
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(api chi.Router) {
		api.Route("/assignments", func(ar chi.Router) {
			ar.Get("/", assignments.List)
			ar.Post("/", assignments.Create)
			ar.Route("/{id}", func(one chi.Router) {
				one.Get("/", assignments.Get)
				one.Delete("/", assignments.Delete)
				one.Put("/route", assignments.UpdateRoute)
				one.Post("/finalize", assignments.Finalize)
				one.Get("/vehicle-timestamps", assignments.VehicleTimestamps)
			})
		})

		api.Get("/dashboard", dashboard.Summary)
		api.Get("/dashboard/type", dashboard.ByType)
		api.Get("/workers", workers.List)
		api.Get("/stores", stores.List)
	})

	return r
}
