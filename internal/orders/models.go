package orders

import "time"

// Order represents one checkout attempt and its payment/delivery state.
// Line-item snapshots are captured at creation time and never refreshed from
// the catalog, so later catalog edits do not change historical orders.
type Order struct {
	ID              string      `json:"id" bson:"_id"`
	UserID          string      `json:"user_id" bson:"user_id"`
	Items           []OrderItem `json:"order_items" bson:"order_items"`
	ShippingAddress string      `json:"shipping_address,omitempty" bson:"shipping_address,omitempty"`
	PaymentMethod   string      `json:"payment_method,omitempty" bson:"payment_method,omitempty"`
	ItemsPrice      float64     `json:"items_price" bson:"items_price"`
	TaxPrice        float64     `json:"tax_price" bson:"tax_price"`
	ShippingPrice   float64     `json:"shipping_price" bson:"shipping_price"`
	TotalPrice      float64     `json:"total_price" bson:"total_price"`
	IsPaid          bool        `json:"is_paid" bson:"is_paid"`
	PaidAt          *time.Time  `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	PaymentResult   string      `json:"payment_result,omitempty" bson:"payment_result,omitempty"` // opaque provider payload
	IsDelivered     bool        `json:"is_delivered" bson:"is_delivered"`
	DeliveredAt     *time.Time  `json:"delivered_at,omitempty" bson:"delivered_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" bson:"updated_at"`
}

// OrderItem is one product-quantity-price snapshot within an order. ProductID
// may be empty when the referenced product was deleted or never supplied.
type OrderItem struct {
	ProductID string  `json:"product_id,omitempty" bson:"product_id,omitempty"`
	Title     string  `json:"title" bson:"title"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"qty" bson:"qty"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
}
