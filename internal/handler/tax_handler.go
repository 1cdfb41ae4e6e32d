package handler

import (
	"net/http"

	"backoffice/internal/model"
	"backoffice/internal/service"

	"github.com/rs/zerolog"
)

// TaxHandler handles tax configuration and batch assignment requests.
type TaxHandler struct {
	service service.TaxService
	logger  zerolog.Logger
}

// NewTaxHandler creates a new tax handler.
func NewTaxHandler(service service.TaxService, logger zerolog.Logger) *TaxHandler {
	return &TaxHandler{
		service: service,
		logger:  logger.With().Str("handler", "tax").Logger(),
	}
}

// List handles GET /api/taxes requests.
func (h *TaxHandler) List(w http.ResponseWriter, r *http.Request) {
	taxes, err := h.service.List(r.Context())
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, taxes)
}

// Create handles POST /api/taxes requests.
func (h *TaxHandler) Create(w http.ResponseWriter, r *http.Request) {
	var tax model.Tax
	if err := decodeJSON(w, r, &tax); err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}

	created, err := h.service.Create(r.Context(), tax)
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/taxes/{id} requests.
func (h *TaxHandler) Update(w http.ResponseWriter, r *http.Request) {
	var tax model.Tax
	if err := decodeJSON(w, r, &tax); err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}

	updated, err := h.service.Update(r.Context(), urlParam(r, "id"), tax)
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/taxes/{id} requests.
func (h *TaxHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), urlParam(r, "id")); err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Batch handles POST /api/taxes/{id}/batch requests.
func (h *TaxHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req model.BatchAssignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}

	outcome, err := h.service.AssignBatch(r.Context(), urlParam(r, "id"), req)
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}
