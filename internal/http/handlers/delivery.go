package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"delivery-routing/internal/apperr"
	"delivery-routing/internal/logx"
	"delivery-routing/internal/service/delivery"
)

// DeliveryHandler handles HTTP requests for delivery resources.
type DeliveryHandler struct {
	usecase deliveryUsecase
	logger  logx.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(logger logx.Logger, uc deliveryUsecase) *DeliveryHandler {
	return &DeliveryHandler{usecase: uc, logger: logger}
}

// Create handles POST /deliveries.
func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.Create(r.Context(), delivery.CreateParams{
		TenantID:  req.TenantID,
		DriverID:  req.DriverID,
		VehicleID: req.VehicleID,
		OrderIDs:  req.OrderIDs,
	})
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, deliveryToResponse(d))
}

// Get handles GET /deliveries/{id}.
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	d, err := h.usecase.Get(r.Context(), id)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(d))
}

// Transition handles POST /deliveries/{id}/transition.
func (h *DeliveryHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	var req transitionDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.Transition(r.Context(), id, req.Action, req.Reason)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(d))
}

// RemoveOrder handles DELETE /deliveries/{id}/orders/{orderID}.
func (h *DeliveryHandler) RemoveOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	d, err := h.usecase.RemoveOrder(r.Context(), id, chi.URLParam(r, "orderID"))
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(d))
}

// Delete handles DELETE /deliveries/{id}.
func (h *DeliveryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.usecase.Delete(r.Context(), id); err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeUsecaseError maps service sentinels to HTTP status codes.
func writeUsecaseError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		writeError(logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(logger, w, r, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrConflict):
		writeError(logger, w, r, http.StatusConflict, "conflict")
	default:
		writeError(logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
