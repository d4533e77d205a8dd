package domain

type (
	// OrderStatus represents the per-order lifecycle status.
	OrderStatus string
	// DeliveryStatus represents the delivery state machine status.
	DeliveryStatus string
)

// List of possible order statuses
const (
	OrderWithoutRoute OrderStatus = "WITHOUT_ROUTE"
	OrderPending      OrderStatus = "PENDING"
	OrderRedelivery   OrderStatus = "REDELIVERY"
	OrderOnRoute      OrderStatus = "ON_ROUTE"
	OrderDelivered    OrderStatus = "DELIVERED"
	OrderFailed       OrderStatus = "FAILED"
)

// List of possible delivery statuses
const (
	DeliveryAwaitingRelease DeliveryStatus = "A_LIBERAR"
	DeliveryStarted         DeliveryStatus = "INICIADO"
	DeliveryCompleted       DeliveryStatus = "FINALIZADO"
	DeliveryRejected        DeliveryStatus = "REJEITADO"
)

var allowedOrderStatuses = [...]OrderStatus{
	OrderWithoutRoute, OrderPending, OrderRedelivery,
	OrderOnRoute, OrderDelivered, OrderFailed,
}

var allowedDeliveryStatuses = [...]DeliveryStatus{
	DeliveryAwaitingRelease, DeliveryStarted, DeliveryCompleted, DeliveryRejected,
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether the order reached a final per-order state.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderFailed
}

// Valid checks if the DeliveryStatus is valid
func (s DeliveryStatus) Valid() bool {
	for _, v := range allowedDeliveryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether the delivery reached a final state.
func (s DeliveryStatus) Terminal() bool {
	return s == DeliveryCompleted || s == DeliveryRejected
}

// deliveryTransitions lists the allowed delivery state transitions.
var deliveryTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryAwaitingRelease: {DeliveryStarted, DeliveryRejected},
	DeliveryStarted:         {DeliveryCompleted},
}

// CanTransition reports whether the transition from s to next is allowed.
func (s DeliveryStatus) CanTransition(next DeliveryStatus) bool {
	for _, v := range deliveryTransitions[s] {
		if v == next {
			return true
		}
	}
	return false
}
