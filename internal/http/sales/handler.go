package sales

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/vendas/internal/auth"
	"github.com/MrJamesThe3rd/vendas/internal/sale"
)

const idempotencyHeader = "Idempotency-Key"

type Handler struct {
	svc *sale.Service
}

func NewHandler(svc *sale.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(middleware.AllowContentType("application/json")).Post("/sales", h.create)
	r.Get("/imports", h.listImports)
	r.Delete("/imports/{id}", h.revertImport)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var sales []sale.Sale
	if err := json.NewDecoder(r.Body).Decode(&sales); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.CreateBatch(r.Context(), sale.CreateBatchParams{
		CompanyID:      auth.CompanyFromContext(r.Context()),
		IdempotencyKey: r.Header.Get(idempotencyHeader),
		Sales:          sales,
	})

	switch {
	case errors.Is(err, sale.ErrEmptyBatch), errors.Is(err, sale.ErrInvalidSale):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, sale.ErrCompanyMismatch):
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	case err != nil:
		slog.Error("failed to create sales", "error", err)
		http.Error(w, "failed to create sales", http.StatusInternalServerError)

		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(toResponse(result.Import)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listImports(w http.ResponseWriter, r *http.Request) {
	imports, err := h.svc.ListImports(r.Context(), auth.CompanyFromContext(r.Context()))
	if err != nil {
		slog.Error("failed to list imports", "error", err)
		http.Error(w, "failed to list imports", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(imports)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) revertImport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid import id", http.StatusBadRequest)
		return
	}

	err = h.svc.RevertImport(r.Context(), auth.CompanyFromContext(r.Context()), id)
	if errors.Is(err, sale.ErrNotFound) {
		http.Error(w, "import not found", http.StatusNotFound)
		return
	}

	if err != nil {
		slog.Error("failed to revert import", "id", id, "error", err)
		http.Error(w, "failed to revert import", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
