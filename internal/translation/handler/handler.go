// Package handler exposes the translation operations over HTTP. Handlers are
// thin: decode, delegate, encode.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"registrar/internal/translation/models"
	"registrar/internal/translation/service"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/httputil"
	"registrar/pkg/platform/middleware"
)

type Handler struct {
	translations *service.Service
	logger       *slog.Logger
}

func New(translations *service.Service, logger *slog.Logger) *Handler {
	return &Handler{translations: translations, logger: logger}
}

// Register mounts the translation routes on the given router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Route("/{entityType}/{entityID}", func(r chi.Router) {
		r.Post("/", h.handleSave)
		r.Put("/", h.handleReplace)
		r.Get("/", h.handleList)
		r.Delete("/", h.handleDelete)
		r.Get("/{field}/{lang}", h.handleGet)
	})

	r.Mount("/translations", router)
}

type saveRequest struct {
	Fields map[string]string `json:"fields"`
}

type listResponse struct {
	Translations []models.Translation `json:"translations"`
}

// handleSave appends a fresh translation set without clearing existing rows.
func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, h.translations.TranslateAndSave)
}

// handleReplace drops every stored row for the entity before re-creating the
// full set; this is the update path.
func (h *Handler) handleReplace(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, h.translations.ReplaceTranslations)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, entityType, entityID string, fields map[string]string) error) {
	entityType := chi.URLParam(r, "entityType")
	entityID := chi.URLParam(r, "entityID")

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid translation request body", "error", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := op(r.Context(), entityType, entityID, req.Fields); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.translations.GetAllTranslations(r.Context(),
		chi.URLParam(r, "entityType"),
		chi.URLParam(r, "entityID"),
		r.URL.Query().Get("field"),
		r.URL.Query().Get("lang"),
	)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Translations: rows})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	row, err := h.translations.GetTranslation(r.Context(),
		chi.URLParam(r, "entityType"),
		chi.URLParam(r, "entityID"),
		chi.URLParam(r, "field"),
		chi.URLParam(r, "lang"),
	)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, row)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	count, err := h.translations.DeleteTranslations(r.Context(),
		chi.URLParam(r, "entityType"),
		chi.URLParam(r, "entityID"),
	)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"deleted": count})
}
