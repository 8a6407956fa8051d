// Package handler exposes category-rule CRUD over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bcakit/mutasi2xlsx/internal/domain/category"
)

// CategoryHandler handles category-rule requests.
type CategoryHandler struct {
	repo   *category.Repository
	logger *slog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(repo *category.Repository, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{repo: repo, logger: logger}
}

// Register wires the handler's routes onto the mux.
func (h *CategoryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/starter-categories", h.Starter)
	mux.HandleFunc("GET /api/categories", h.List)
	mux.HandleFunc("POST /api/categories", h.Add)
	mux.HandleFunc("PUT /api/categories/{name}", h.Update)
	mux.HandleFunc("DELETE /api/categories/{name}", h.Delete)
}

// Starter returns the built-in default category list.
func (h *CategoryHandler) Starter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, category.StarterRules())
}

// List returns all stored rules in order.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	rules, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list categories", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	writeJSON(w, http.StatusOK, rules)
}

// Add creates a new rule at the end of the list.
func (h *CategoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	var rule category.Rule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.repo.Add(r.Context(), rule); err != nil {
		h.respondStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rule)
}

type updateRequest struct {
	Name     string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// Update renames a rule and/or replaces its keyword list.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.repo.Update(r.Context(), r.PathValue("name"), req.Name, req.Keywords); err != nil {
		h.respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a rule by name.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), r.PathValue("name")); err != nil {
		h.respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, category.ErrRuleNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, category.ErrRuleExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, category.ErrInvalidRule):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("category store error", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "category store error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
