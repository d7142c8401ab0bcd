// Package maps resolves geographic lookups through the backend map service.
package maps

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/seasistemi/deliveryops/internal/platform/httpx"
	"github.com/seasistemi/deliveryops/internal/wordpress"
)

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NearGeoResult is the answer of the near-geo lookup. NearestCustomer is nil
// when nothing lies within the search radius.
type NearGeoResult struct {
	Point           Point            `json:"point"`
	NearestCustomer *NearestCustomer `json:"nearest_customer"`
}

// NearestCustomer identifies the customer closest to the queried point.
type NearestCustomer struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Distance float64 `json:"distance"`
	Point    Point   `json:"point"`
}

// Service proxies map lookups to the backend.
type Service struct {
	wp     *wordpress.Client
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(wp *wordpress.Client, logger *slog.Logger) *Service {
	return &Service{wp: wp, logger: logger}
}

// NearGeo finds the customer nearest to a point.
func (s *Service) NearGeo(ctx context.Context, lat, lng float64) (NearGeoResult, error) {
	result, err := wordpress.PostJSON[NearGeoResult](ctx, s.wp, "/wp-json/ts-map/v1/map-near-geo", map[string]any{
		"lat": lat,
		"lng": lng,
	})
	if err != nil {
		return result, fmt.Errorf("near-geo lookup: %w", err)
	}
	return result, nil
}

// Handler exposes map endpoints.
type Handler struct {
	service  *Service
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, validate: validator.New(), logger: logger}
}

// MountRoutes registers map endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/near-geo", h.nearGeo)
}

type nearGeoRequest struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng *float64 `json:"lng" validate:"required,min=-180,max=180"`
}

func (h *Handler) nearGeo(w http.ResponseWriter, r *http.Request) {
	var req nearGeoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "lat and lng are required coordinates")
		return
	}
	result, err := h.service.NearGeo(r.Context(), *req.Lat, *req.Lng)
	if err != nil {
		h.logger.Error("near-geo lookup", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}
