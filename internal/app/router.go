package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/seasistemi/deliveryops/internal/auth"
	"github.com/seasistemi/deliveryops/internal/customers"
	"github.com/seasistemi/deliveryops/internal/deliveries"
	"github.com/seasistemi/deliveryops/internal/maps"
	"github.com/seasistemi/deliveryops/internal/media"
	"github.com/seasistemi/deliveryops/internal/observability"
	"github.com/seasistemi/deliveryops/internal/routes"
	"github.com/seasistemi/deliveryops/internal/tracking"
	"github.com/seasistemi/deliveryops/internal/users"
	"github.com/seasistemi/deliveryops/internal/vehicles"
	"github.com/seasistemi/deliveryops/internal/zones"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	AuthHandler       *auth.Handler
	UsersHandler      *users.Handler
	VehiclesHandler   *vehicles.Handler
	CustomersHandler  *customers.Handler
	ZonesHandler      *zones.Handler
	DeliveriesHandler *deliveries.Handler
	RoutesHandler     *routes.Handler
	MediaHandler      *media.Handler
	TrackingHandler   *tracking.Handler
	MapsHandler       *maps.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
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

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/user", params.UsersHandler.MountRoutes)
		r.Route("/vehicles", params.VehiclesHandler.MountRoutes)
		r.Route("/customers", params.CustomersHandler.MountRoutes)
		r.Route("/zones", params.ZonesHandler.MountRoutes)
		r.Route("/deliveries", params.DeliveriesHandler.MountRoutes)
		r.Route("/routes", params.RoutesHandler.MountRoutes)
		r.Route("/media", params.MediaHandler.MountRoutes)
		if params.TrackingHandler != nil {
			r.Route("/tracking", params.TrackingHandler.MountRoutes)
		}
		r.Route("/map", params.MapsHandler.MountRoutes)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
