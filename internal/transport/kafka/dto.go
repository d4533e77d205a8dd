package kafka

import (
	"strings"
	"time"

	"delivery-routing/internal/service/orders"
)

// EventDTO is a data transfer object for orders.Event
type EventDTO struct {
	OrderID    string    `json:"order_id"`
	DeliveryID int64     `json:"delivery_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToDomain converts EventDTO to orders.Event
func ToDomain(dto EventDTO) orders.Event {
	return orders.Event{
		OrderID:    strings.TrimSpace(dto.OrderID),
		DeliveryID: dto.DeliveryID,
		Status:     strings.TrimSpace(dto.Status),
		CreatedAt:  dto.CreatedAt,
	}
}
