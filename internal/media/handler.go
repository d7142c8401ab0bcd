package media

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/seasistemi/deliveryops/internal/acl"
	"github.com/seasistemi/deliveryops/internal/platform/httpx"
	"github.com/seasistemi/deliveryops/internal/wordpress"
)

// maxUploadSize bounds attachment uploads at 32 MiB.
const maxUploadSize = 32 << 20

// Handler exposes attachment endpoints.
type Handler struct {
	service *Service
	gate    *acl.Gate
	logger  *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(service *Service, gate *acl.Gate, logger *slog.Logger) *Handler {
	return &Handler{service: service, gate: gate, logger: logger}
}

// MountRoutes registers attachment endpoints, each behind its permission.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.gate.Require(acl.PermMediaList)).Get("/", h.list)
	r.With(h.gate.Require(acl.PermMediaList)).Get("/parent/{parentID}", h.byParent)
	r.With(h.gate.Require(acl.PermMediaRead)).Get("/{id}", h.get)
	r.With(h.gate.Require(acl.PermMediaCreate)).Post("/", h.upload)
	r.With(h.gate.Require(acl.PermMediaEdit)).Put("/{id}", h.update)
	r.With(h.gate.Require(acl.PermMediaDelete)).Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q, err := wordpress.ParseListQuery(r.URL.Query())
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	page, err := h.service.List(r.Context(), q)
	if err != nil {
		h.logger.Error("list media", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *Handler) byParent(w http.ResponseWriter, r *http.Request) {
	q, err := wordpress.ParseListQuery(r.URL.Query())
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	page, err := h.service.ByParent(r.Context(), chi.URLParam(r, "parentID"), q)
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
	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid multipart payload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "file is required")
		return
	}
	defer file.Close()

	fields := map[string]string{}
	for key, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	item, err := h.service.Upload(r.Context(), header.Filename, file, fields)
	if err != nil {
		h.logger.Error("upload media", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
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
	item, err := h.service.Update(r.Context(), id, body)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
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
