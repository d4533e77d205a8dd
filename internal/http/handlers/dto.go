package handlers

import "time"

type orderPayload struct {
	ID         string   `json:"id"`
	PostalCode string   `json:"postal_code"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
	Weight     float64  `json:"weight"`
	Value      float64  `json:"value"`
}

type assignRegionsRequest struct {
	TenantID int64          `json:"tenant_id"`
	Orders   []orderPayload `json:"orders"`
}

type regionBucketResponse struct {
	DirectionID int64    `json:"direction_id"`
	OrderIDs    []string `json:"order_ids"`
}

type assignRegionsResponse struct {
	Directions []regionBucketResponse `json:"directions"`
	Unmatched  []string               `json:"unmatched"`
}

type optimizeRouteRequest struct {
	DepotAddress string         `json:"depot_address"`
	Orders       []orderPayload `json:"orders"`
}

type routeStopResponse struct {
	OrderID string `json:"order_id"`
	Sorting int    `json:"sorting"`
}

type optimizeRouteResponse struct {
	Stops           []routeStopResponse `json:"stops"`
	DistanceMeters  int                 `json:"distance_meters"`
	DurationSeconds int                 `json:"duration_seconds"`
	Degraded        bool                `json:"degraded"`
}

type editRouteRequest struct {
	DepotAddress string         `json:"depot_address"`
	Action       string         `json:"action"`
	From         int            `json:"from"`
	To           int            `json:"to"`
	Orders       []orderPayload `json:"orders"`
}

type priceRouteRequest struct {
	TenantID   int64          `json:"tenant_id"`
	CategoryID int64          `json:"category_id"`
	Orders     []orderPayload `json:"orders"`
}

type priceRouteResponse struct {
	FreightValue float64 `json:"freight_value"`
}

type createDeliveryRequest struct {
	TenantID  int64    `json:"tenant_id"`
	DriverID  int64    `json:"driver_id"`
	VehicleID int64    `json:"vehicle_id"`
	OrderIDs  []string `json:"order_ids"`
}

type transitionDeliveryRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
}

type deliveryOrderResponse struct {
	OrderID string `json:"order_id"`
	Sorting int    `json:"sorting"`
	Status  string `json:"status"`
}

type deliveryResponse struct {
	ID           int64                   `json:"id"`
	TenantID     int64                   `json:"tenant_id"`
	DriverID     int64                   `json:"driver_id"`
	VehicleID    int64                   `json:"vehicle_id"`
	Status       string                  `json:"status"`
	FreightValue float64                 `json:"freight_value"`
	TotalWeight  float64                 `json:"total_weight"`
	TotalValue   float64                 `json:"total_value"`
	RejectReason *string                 `json:"reject_reason,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	CompletedAt  *time.Time              `json:"completed_at,omitempty"`
	Orders       []deliveryOrderResponse `json:"orders"`
}
