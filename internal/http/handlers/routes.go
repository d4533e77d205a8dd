package handlers

import (
	"net/http"

	"delivery-routing/internal/logx"
	"delivery-routing/internal/service/freight"
	"delivery-routing/internal/service/routing"
)

// RoutingHandler handles HTTP requests for region assignment, route
// building and route pricing.
type RoutingHandler struct {
	usecase planningUsecase
	logger  logx.Logger
}

// NewRoutingHandler creates a new RoutingHandler.
func NewRoutingHandler(logger logx.Logger, uc planningUsecase) *RoutingHandler {
	return &RoutingHandler{usecase: uc, logger: logger}
}

// AssignRegions handles POST /routes/regions.
func (h *RoutingHandler) AssignRegions(w http.ResponseWriter, r *http.Request) {
	var req assignRegionsRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	orders, err := ordersFromPayload(req.Orders)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	assignment, err := h.usecase.AssignRegions(r.Context(), req.TenantID, orders)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignmentToResponse(assignment))
}

// Optimize handles POST /routes/optimize.
func (h *RoutingHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRouteRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	orders, err := ordersFromPayload(req.Orders)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	stops, summary, err := h.usecase.BuildRoute(r.Context(), req.DepotAddress, orders)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, routeToResponse(stops, summary))
}

// Edit handles POST /routes/edit. Orders arrive in their current
// sequence; the response carries the edited sequence with fresh
// provider metrics.
func (h *RoutingHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req editRouteRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	orders, err := ordersFromPayload(req.Orders)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	edit := routing.Edit{Action: routing.EditAction(req.Action), From: req.From, To: req.To}
	stops, summary, err := h.usecase.EditRoute(r.Context(), req.DepotAddress, orders, edit)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, routeToResponse(stops, summary))
}

// Price handles POST /routes/price.
func (h *RoutingHandler) Price(w http.ResponseWriter, r *http.Request) {
	var req priceRouteRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	orders, err := ordersFromPayload(req.Orders)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	amount, err := h.usecase.PriceRoute(r.Context(), req.TenantID, orders, req.CategoryID)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, priceRouteResponse{FreightValue: freight.Round2(amount)})
}
