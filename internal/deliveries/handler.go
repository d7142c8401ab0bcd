package deliveries

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/seasistemi/deliveryops/internal/acl"
	"github.com/seasistemi/deliveryops/internal/filters"
	"github.com/seasistemi/deliveryops/internal/platform/httpx"
	"github.com/seasistemi/deliveryops/internal/wordpress"
)

// Handler exposes delivery endpoints.
type Handler struct {
	service  *Service
	gate     *acl.Gate
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(service *Service, gate *acl.Gate, logger *slog.Logger) *Handler {
	return &Handler{service: service, gate: gate, validate: validator.New(), logger: logger}
}

// MountRoutes registers delivery endpoints, each behind its permission.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.gate.Require(acl.PermDeliveryList)).Get("/", h.list)
	r.With(h.gate.Require(acl.PermDeliveryList)).Get("/filters", h.filterDefinitions)
	r.With(h.gate.Require(acl.PermDeliveryList)).Get("/zone/{zoneID}", h.byZone)
	r.With(h.gate.Require(acl.PermDeliveryRead)).Get("/route/{routeID}", h.byRoute)
	r.With(h.gate.Require(acl.PermDeliveryRead)).Get("/{id}", h.get)
	r.With(h.gate.Require(acl.PermDeliveryRead)).Get("/{id}/pdf", h.pdf)
	r.With(h.gate.Require(acl.PermDeliveryCreate)).Post("/", h.create)
	r.With(h.gate.Require(acl.PermDeliveryEdit)).Put("/{id}", h.update)
	r.With(h.gate.Require(acl.PermDeliveryDelete)).Delete("/{id}", h.delete)
	r.With(h.gate.Require(acl.PermDeliveryRead)).Post("/{id}/notes", h.addNote)
	r.With(h.gate.Require(acl.PermDeliveryPrepare)).Post("/{id}/prepared", h.check(CheckPrepared))
	r.With(h.gate.Require(acl.PermDeliveryLoad)).Post("/{id}/loaded", h.check(CheckLoaded))
	r.With(h.gate.Require(acl.PermDeliveryDeliver)).Post("/{id}/delivered", h.check(CheckDelivered))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q, err := wordpress.ParseListQuery(r.URL.Query())
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if from, to := r.URL.Query().Get("date_from"), r.URL.Query().Get("date_to"); from != "" || to != "" {
		q.Filters = append(q.Filters, wordpress.Filter{
			Key:     "date",
			Value:   filters.RangeValue(from, to),
			Compare: "BETWEEN",
			Type:    "DATE",
		})
	}
	page, err := h.service.List(r.Context(), q)
	if err != nil {
		h.logger.Error("list deliveries", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *Handler) filterDefinitions(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, FilterDefinitions())
}

func (h *Handler) byZone(w http.ResponseWriter, r *http.Request) {
	q, err := wordpress.ParseListQuery(r.URL.Query())
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	page, err := h.service.ByZone(r.Context(), chi.URLParam(r, "zoneID"), q)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *Handler) byRoute(w http.ResponseWriter, r *http.Request) {
	q, err := wordpress.ParseListQuery(r.URL.Query())
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	page, err := h.service.ByRoute(r.Context(), chi.URLParam(r, "routeID"), q)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	delivery, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, delivery)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	delivery, err := h.service.Create(r.Context(), body)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, delivery)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	var body map[string]any
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	delivery, err := h.service.Update(r.Context(), id, body)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, delivery)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type noteRequest struct {
	Note string `json:"note" validate:"required"`
}

func (h *Handler) addNote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	var req noteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "note is required")
		return
	}
	if err := h.service.AddNote(r.Context(), id, req.Note); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type checkRequest struct {
	Value *bool `json:"value" validate:"required"`
}

func (h *Handler) check(check Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
			return
		}
		var req checkRequest
		if err := httpx.DecodeJSON(r, &req); err != nil || req.Value == nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "value is required")
			return
		}
		if err := h.service.SetCheck(r.Context(), id, check, *req.Value); err != nil {
			httpx.RespondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) pdf(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	result, err := h.service.Pdf(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}
