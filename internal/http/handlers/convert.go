package handlers

import (
	"fmt"

	"github.com/google/uuid"

	"delivery-routing/internal/domain"
	"delivery-routing/internal/service/freight"
	"delivery-routing/internal/service/regions"
	"delivery-routing/internal/service/routing"
)

func ordersFromPayload(payload []orderPayload) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(payload))
	for _, p := range payload {
		if _, err := uuid.Parse(p.ID); err != nil {
			return nil, fmt.Errorf("order id %q: %w", p.ID, err)
		}
		o := domain.Order{
			ID:         p.ID,
			PostalCode: p.PostalCode,
			Weight:     p.Weight,
			Value:      p.Value,
		}
		if p.Lat != nil && p.Lng != nil {
			o.Coord = &domain.Coordinate{Lat: *p.Lat, Lng: *p.Lng}
		}
		out = append(out, o)
	}
	return out, nil
}

func assignmentToResponse(a regions.Assignment) assignRegionsResponse {
	resp := assignRegionsResponse{
		Directions: make([]regionBucketResponse, 0, len(a.ByDirection)),
		Unmatched:  make([]string, 0, len(a.Unmatched)),
	}
	for id, orders := range a.ByDirection {
		bucket := regionBucketResponse{DirectionID: id, OrderIDs: make([]string, 0, len(orders))}
		for _, o := range orders {
			bucket.OrderIDs = append(bucket.OrderIDs, o.ID)
		}
		resp.Directions = append(resp.Directions, bucket)
	}
	for _, o := range a.Unmatched {
		resp.Unmatched = append(resp.Unmatched, o.ID)
	}
	return resp
}

func routeToResponse(stops []routing.Stop, summary routing.Summary) optimizeRouteResponse {
	resp := optimizeRouteResponse{
		Stops:           make([]routeStopResponse, 0, len(stops)),
		DistanceMeters:  summary.DistanceMeters,
		DurationSeconds: summary.DurationSeconds,
		Degraded:        summary.Degraded,
	}
	for i, s := range stops {
		resp.Stops = append(resp.Stops, routeStopResponse{OrderID: s.OrderID, Sorting: i + 1})
	}
	return resp
}

func deliveryToResponse(d *domain.Delivery) deliveryResponse {
	resp := deliveryResponse{
		ID:           d.ID,
		TenantID:     d.TenantID,
		DriverID:     d.DriverID,
		VehicleID:    d.VehicleID,
		Status:       string(d.Status),
		FreightValue: freight.Round2(d.FreightValue),
		TotalWeight:  freight.Round2(d.TotalWeight),
		TotalValue:   freight.Round2(d.TotalValue),
		RejectReason: d.RejectReason,
		CreatedAt:    d.CreatedAt,
		CompletedAt:  d.CompletedAt,
		Orders:       make([]deliveryOrderResponse, 0, len(d.Orders)),
	}
	for _, o := range d.Orders {
		resp.Orders = append(resp.Orders, deliveryOrderResponse{
			OrderID: o.Order.ID,
			Sorting: o.Sorting,
			Status:  string(o.Order.Status),
		})
	}
	return resp
}
