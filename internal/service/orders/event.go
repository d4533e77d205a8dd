package orders

import "time"

// Event is a single per-order status event from the driver app.
type Event struct {
	OrderID    string    `json:"order_id"`
	DeliveryID int64     `json:"delivery_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
