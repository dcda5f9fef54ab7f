package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dreamteam-fund/dreamteam/internal/auth"
	"github.com/dreamteam-fund/dreamteam/internal/categories"
	"github.com/dreamteam-fund/dreamteam/internal/contributions"
	"github.com/dreamteam-fund/dreamteam/internal/contributors"
	"github.com/dreamteam-fund/dreamteam/internal/entrepreneurs"
	"github.com/dreamteam-fund/dreamteam/internal/observability"
	"github.com/dreamteam-fund/dreamteam/internal/payments"
	"github.com/dreamteam-fund/dreamteam/internal/phones"
	"github.com/dreamteam-fund/dreamteam/internal/regions"
	"github.com/dreamteam-fund/dreamteam/internal/startups"
	"github.com/dreamteam-fund/dreamteam/internal/users"
	"github.com/dreamteam-fund/dreamteam/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger               *slog.Logger
	Config               *Config
	Gate                 *auth.Gate
	AuthHandler          *auth.Handler
	UsersHandler         *users.Handler
	PhonesHandler        *phones.Handler
	EntrepreneursHandler *entrepreneurs.Handler
	ContributorsHandler  *contributors.Handler
	CategoriesHandler    *categories.Handler
	RegionsHandler       *regions.Handler
	StartupsHandler      *startups.Handler
	ContributionsHandler *contributions.Handler
	PaymentsHandler      *payments.Handler
	JobHandler           *jobs.Handler
	Metrics              *observability.Metrics
}

// NewRouter constructs the chi.Router. The gate runs before routing, so
// every request is authenticated and authorized against the route table
// before a handler sees it.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)
	r.Use(params.Gate.Middleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"name":"dreamteam","status":"ok"}`))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/api-docs", handleAPIDocs)

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/users", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r)
		params.UsersHandler.MountRoutes(r)
	})
	r.Route("/phones", params.PhonesHandler.MountRoutes)
	r.Route("/entrepreneurs", params.EntrepreneursHandler.MountRoutes)
	r.Route("/contributors", params.ContributorsHandler.MountRoutes)
	r.Route("/categories", params.CategoriesHandler.MountRoutes)
	r.Route("/regions", params.RegionsHandler.MountRoutes)
	r.Route("/startups", params.StartupsHandler.MountRoutes)
	r.Route("/contributions", params.ContributionsHandler.MountRoutes)
	r.Route("/payments", params.PaymentsHandler.MountRoutes)

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	return r
}
