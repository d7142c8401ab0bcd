package tracking

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/seasistemi/deliveryops/internal/acl"
	"github.com/seasistemi/deliveryops/internal/platform/httpx"
)

// Handler exposes fleet-tracking endpoints.
type Handler struct {
	service *Service
	gate    *acl.Gate
	logger  *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(service *Service, gate *acl.Gate, logger *slog.Logger) *Handler {
	return &Handler{service: service, gate: gate, logger: logger}
}

// MountRoutes registers tracking endpoints behind the vehicle map permission.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.gate.Require(acl.PermVehicleMap))
	r.Get("/devices", h.devices)
	r.Get("/devices/{imei}", h.device)
	r.Get("/devices/{imei}/position", h.position)
	r.Get("/devices/{imei}/history", h.history)
}

func (h *Handler) devices(w http.ResponseWriter, r *http.Request) {
	devices, err := h.service.Devices(r.Context())
	if err != nil {
		h.logger.Error("list devices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, devices)
}

func (h *Handler) device(w http.ResponseWriter, r *http.Request) {
	device, err := h.service.Device(r.Context(), chi.URLParam(r, "imei"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, device)
}

func (h *Handler) position(w http.ResponseWriter, r *http.Request) {
	pos, err := h.service.LastPosition(r.Context(), chi.URLParam(r, "imei"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, pos)
}

type historyResponse struct {
	Positions []Position   `json:"positions"`
	Segments  [][]Position `json:"segments"`
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	start, err := parseMillis(r.URL.Query().Get("start"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid start")
		return
	}
	stop, err := parseMillis(r.URL.Query().Get("stop"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid stop")
		return
	}
	filterType, err := parseFilterType(r.URL.Query().Get("filter_type"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid filter_type")
		return
	}

	positions, err := h.service.History(r.Context(), chi.URLParam(r, "imei"), start, stop, filterType)
	if err != nil {
		h.logger.Error("position history", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, historyResponse{
		Positions: positions,
		Segments:  SplitSegments(positions),
	})
}

func parseMillis(raw string) (time.Time, error) {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

func parseFilterType(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	types := make([]int, 0, len(parts))
	for _, part := range parts {
		t, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}
