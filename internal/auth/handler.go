package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/seasistemi/deliveryops/internal/platform/httpx"
)

// SessionInvalidator drops cached per-token session state on logout.
type SessionInvalidator interface {
	InvalidateToken(token string)
}

// Handler exposes login and logout endpoints.
type Handler struct {
	client       *Client
	invalidators []SessionInvalidator
	validate     *validator.Validate
	logger       *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(client *Client, logger *slog.Logger, invalidators ...SessionInvalidator) *Handler {
	return &Handler{
		client:       client,
		invalidators: invalidators,
		validate:     validator.New(),
		logger:       logger,
	}
}

// MountRoutes registers auth routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "username and password are required")
		return
	}

	result, err := h.client.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Warn("login failed", slog.String("username", req.Username), slog.Any("error", err))
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if token := TokenFromContext(r.Context()); token != "" {
		for _, inv := range h.invalidators {
			inv.InvalidateToken(token)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
