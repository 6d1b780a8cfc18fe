package kafka

import "time"

// OrderPaidEvent is emitted once per line item when an order is confirmed
// paid, keyed by order id.
type OrderPaidEvent struct {
	OrderId   string    `json:"order_id"`
	ProductId string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}
