package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/seasistemi/deliveryops/internal/platform/httpx"
)

// Handler exposes the current-user endpoints.
type Handler struct {
	service  *Service
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, validate: validator.New(), logger: logger}
}

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.current)
	r.Get("/can", h.can)
	r.Post("/change-password", h.changePassword)
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Current(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

// can answers the declarative permission gate for the UI. Check failures
// collapse to deny rather than surfacing as errors.
func (h *Handler) can(w http.ResponseWriter, r *http.Request) {
	permission := r.URL.Query().Get("permission")
	allowed, err := h.service.HasPermission(r.Context(), permission)
	if err != nil {
		h.logger.Warn("permission check failed",
			slog.String("permission", permission),
			slog.Any("error", err))
		allowed = false
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"allowed": allowed})
}

type changePasswordRequest struct {
	Password       string `json:"password" validate:"required"`
	RepeatPassword string `json:"repeatPassword" validate:"required"`
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "password and repeatPassword are required")
		return
	}
	if err := h.service.ChangePassword(r.Context(), req.Password, req.RepeatPassword); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
