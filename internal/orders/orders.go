// Package orders is the order store: the durable record of every purchase
// attempt and its lifecycle state. An order is created pending, moves to paid
// by owner-or-admin action, and to delivered by admin action; neither flag is
// ever reverted and no delete path exists.
package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storefront/internal/auth"
)

var (
	ErrNotFound   = errors.New("order not found")
	ErrForbidden  = errors.New("not authorized for this order")
	ErrValidation = errors.New("validation failed")
)

// Store is the persistence boundary for orders. Implementations do not apply
// business rules; Conf does.
type Store interface {
	InsertOrder(ctx context.Context, order Order) error
	GetOrderByID(ctx context.Context, id string) (Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]Order, error)
	ListAllOrders(ctx context.Context) ([]Order, error)
	// SetOrderPaid and SetOrderDelivered each persist only their own field
	// family, so a payment racing a delivery cannot revert the other flag
	// through a stale snapshot. Both return ErrNotFound when the id is absent.
	SetOrderPaid(ctx context.Context, order Order) error
	SetOrderDelivered(ctx context.Context, order Order) error
}

type Conf struct {
	store Store
}

func NewConf(store Store) (*Conf, error) {
	if store == nil {
		return nil, fmt.Errorf("store is nil")
	}
	return &Conf{store: store}, nil
}

type NewOrder struct {
	Items           []OrderItem
	ShippingAddress string
	PaymentMethod   string
	ItemsPrice      float64
	TaxPrice        float64
	ShippingPrice   float64
}

// Create writes a new pending order owned by userID. The caller is
// responsible for the totalPrice invariant; Create only rejects empty item
// lists and non-positive quantities before anything is written.
func (c *Conf) Create(ctx context.Context, userID string, no NewOrder) (Order, error) {
	if len(no.Items) == 0 {
		return Order{}, fmt.Errorf("%w: order items are required", ErrValidation)
	}
	for _, it := range no.Items {
		if it.Quantity < 1 {
			return Order{}, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}
	}
	now := time.Now().UTC()
	order := Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           no.Items,
		ShippingAddress: no.ShippingAddress,
		PaymentMethod:   no.PaymentMethod,
		ItemsPrice:      no.ItemsPrice,
		TaxPrice:        no.TaxPrice,
		ShippingPrice:   no.ShippingPrice,
		TotalPrice:      no.ItemsPrice + no.TaxPrice + no.ShippingPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := c.store.InsertOrder(ctx, order); err != nil {
		return Order{}, fmt.Errorf("inserting order: %w", err)
	}
	return order, nil
}

// GetByID returns the order when the actor owns it or is an admin.
// Not-found and forbidden are surfaced distinctly: an existing order the
// actor may not read is never reported as missing.
func (c *Conf) GetByID(ctx context.Context, id string, actor auth.Claims) (Order, error) {
	order, err := c.store.GetOrderByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if !canAccess(actor, order) {
		return Order{}, ErrForbidden
	}
	return order, nil
}

// ListByOwner returns the user's orders, newest first.
func (c *Conf) ListByOwner(ctx context.Context, userID string) ([]Order, error) {
	return c.store.ListOrdersByUser(ctx, userID)
}

// ListAll returns every order, newest first. Admin gating happens at the
// route; this is the unrestricted read path.
func (c *Conf) ListAll(ctx context.Context) ([]Order, error) {
	return c.store.ListAllOrders(ctx)
}

// MarkPaid sets isPaid/paidAt/paymentResult. Re-invocation overwrites the
// previous payload (last writer wins); there is no guard against concurrent
// double-invocation, so callers must not assume exactly-once confirmation.
func (c *Conf) MarkPaid(ctx context.Context, id string, paymentResult string, actor auth.Claims) (Order, error) {
	order, err := c.store.GetOrderByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if !canAccess(actor, order) {
		return Order{}, ErrForbidden
	}
	now := time.Now().UTC()
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResult = paymentResult
	order.UpdatedAt = now
	if err := c.store.SetOrderPaid(ctx, order); err != nil {
		return Order{}, fmt.Errorf("updating order: %w", err)
	}
	return order, nil
}

// MarkDelivered sets isDelivered/deliveredAt. Admin only; independent of the
// paid flag, so delivery before payment is not prevented.
func (c *Conf) MarkDelivered(ctx context.Context, id string, actor auth.Claims) (Order, error) {
	if !actor.IsAdmin() {
		return Order{}, ErrForbidden
	}
	order, err := c.store.GetOrderByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	now := time.Now().UTC()
	order.IsDelivered = true
	order.DeliveredAt = &now
	order.UpdatedAt = now
	if err := c.store.SetOrderDelivered(ctx, order); err != nil {
		return Order{}, fmt.Errorf("updating order: %w", err)
	}
	return order, nil
}

// canAccess is the single owner-or-admin capability check used by every
// per-order read and write path.
func canAccess(actor auth.Claims, order Order) bool {
	return actor.Subject == order.UserID || actor.IsAdmin()
}
