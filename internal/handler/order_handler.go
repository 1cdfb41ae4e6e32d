package handler

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/model"
	"backoffice/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

// List handles GET /api/orders requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.List(r.Context())
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Get handles GET /api/orders/{id} requests.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.Detail(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Transitions handles GET /api/orders/{id}/transitions requests.
func (h *OrderHandler) Transitions(w http.ResponseWriter, r *http.Request) {
	moves, err := h.service.Transitions(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, moves)
}

// UpdateStatus handles PATCH /api/orders/{id}/status requests. A rejected upstream write still answers
// with the unchanged order state and its error notice.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	if req.Status == "" {
		writeFailure(w, r, model.NewValidationError("status", "Status is required"), h.logger)
		return
	}

	actor := middleware.ActorFrom(r.Context())
	result, err := h.service.ApplyTransition(r.Context(), urlParam(r, "id"), req.Status, actor)
	if err != nil {
		if result != nil {
			h.logger.Error().Err(err).Str("order_id", result.OrderID).Msg("status update failed")
			writeJSON(w, statusFor(err), result)
			return
		}
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// History handles GET /api/orders/{id}/history requests.
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	changes, err := h.service.History(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, changes)
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeJSON(w, r, &body); err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}

	detail, err := h.service.Create(r.Context(), body)
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}

// Update handles PUT /api/orders/{id} requests.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeJSON(w, r, &body); err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}

	detail, err := h.service.Update(r.Context(), urlParam(r, "id"), body)
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Delete handles DELETE /api/orders/{id} requests.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), urlParam(r, "id")); err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Payment handles POST /api/orders/{id}/payment requests.
func (h *OrderHandler) Payment(w http.ResponseWriter, r *http.Request) {
	var req model.PaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}

	detail, err := h.service.ProcessPayment(r.Context(), urlParam(r, "id"), req)
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
