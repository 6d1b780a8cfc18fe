// Package checkout turns a client cart snapshot into a pending order plus a
// hosted-payment redirect. Totals are computed with decimal arithmetic; the
// supplied prices themselves are taken on trust and not re-validated against
// the catalog, which mirrors the storefront's documented trust boundary.
package checkout

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/orders"
	"storefront/internal/payment"
)

// Item is one client-supplied cart entry. Price is in major currency units.
type Item struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"qty" validate:"gte=1"`
	Image     string  `json:"image"`
}

// Meta carries the optional order-level amounts sent alongside the items.
type Meta struct {
	ShippingPrice float64 `json:"shippingPrice" validate:"gte=0"`
	TaxPrice      float64 `json:"taxPrice" validate:"gte=0"`
}

type Result struct {
	SessionID string
	URL       string
	Order     orders.Order
}

type Conf struct {
	orders     *orders.Conf
	provider   payment.SessionCreator
	currency   string
	successURL string
	cancelURL  string
}

func NewConf(o *orders.Conf, provider payment.SessionCreator, currency, clientURL string) (*Conf, error) {
	if o == nil {
		return nil, fmt.Errorf("orders conf is nil")
	}
	if provider == nil {
		return nil, fmt.Errorf("payment provider is nil")
	}
	return &Conf{
		orders:     o,
		provider:   provider,
		currency:   currency,
		successURL: clientURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  clientURL + "/cart",
	}, nil
}

// Checkout creates a pending order from the supplied items and requests a
// checkout session for it. The order write and the provider call are two
// sequential steps with no transaction spanning them: when the provider call
// fails the already-written order stays pending and is not rolled back.
func (c *Conf) Checkout(ctx context.Context, userID, email string, items []Item, meta Meta) (Result, error) {
	// Configuration failures must surface before any durable write.
	if !c.provider.Enabled() {
		return Result{}, payment.ErrNotConfigured
	}
	if len(items) == 0 {
		return Result{}, fmt.Errorf("%w: order items are required", orders.ErrValidation)
	}

	itemsPrice := decimal.Zero
	orderItems := make([]orders.OrderItem, 0, len(items))
	lineItems := make([]payment.SessionLineItem, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return Result{}, fmt.Errorf("%w: quantity must be at least 1", orders.ErrValidation)
		}
		price := decimal.NewFromFloat(it.Price)
		itemsPrice = itemsPrice.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		orderItems = append(orderItems, orders.OrderItem{
			ProductID: it.ProductID,
			Title:     it.Title,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
		lineItems = append(lineItems, payment.SessionLineItem{
			Name:       it.Title,
			UnitAmount: price.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
			Quantity:   int64(it.Quantity),
			Image:      it.Image,
			ProductID:  it.ProductID,
		})
	}
	itemsTotal, _ := itemsPrice.Float64()

	order, err := c.orders.Create(ctx, userID, orders.NewOrder{
		Items:         orderItems,
		PaymentMethod: "stripe",
		ItemsPrice:    itemsTotal,
		TaxPrice:      meta.TaxPrice,
		ShippingPrice: meta.ShippingPrice,
	})
	if err != nil {
		return Result{}, err
	}

	session, err := c.provider.CreateSession(ctx, payment.SessionRequest{
		Currency:      c.currency,
		LineItems:     lineItems,
		CustomerEmail: email,
		Metadata:      map[string]string{"orderId": order.ID},
		SuccessURL:    c.successURL,
		CancelURL:     c.cancelURL,
	})
	if err != nil {
		// The pending order is intentionally left in place; there is no
		// compensating delete in this design.
		return Result{}, fmt.Errorf("creating payment session for order %s: %w", order.ID, err)
	}

	return Result{SessionID: session.ID, URL: session.URL, Order: order}, nil
}
