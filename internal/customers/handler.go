package customers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/seasistemi/deliveryops/internal/acl"
	"github.com/seasistemi/deliveryops/internal/platform/httpx"
	"github.com/seasistemi/deliveryops/internal/wordpress"
)

// Handler exposes customer endpoints.
type Handler struct {
	service *Service
	gate    *acl.Gate
	logger  *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(service *Service, gate *acl.Gate, logger *slog.Logger) *Handler {
	return &Handler{service: service, gate: gate, logger: logger}
}

// MountRoutes registers customer endpoints, each behind its permission.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.gate.Require(acl.PermCustomerList)).Get("/", h.list)
	r.With(h.gate.Require(acl.PermCustomerRead)).Get("/{id}", h.get)
	r.With(h.gate.Require(acl.PermCustomerCreate)).Post("/", h.create)
	r.With(h.gate.Require(acl.PermCustomerEdit)).Put("/{id}", h.update)
	r.With(h.gate.Require(acl.PermCustomerDelete)).Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q, err := wordpress.ParseListQuery(r.URL.Query())
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	page, err := h.service.List(r.Context(), q)
	if err != nil {
		h.logger.Error("list customers", slog.Any("error", err))
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
	customer, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, customer)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	customer, err := h.service.Create(r.Context(), body)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, customer)
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
	customer, err := h.service.Update(r.Context(), id, body)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, customer)
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
