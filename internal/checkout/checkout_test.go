package checkout

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/orders"
	"storefront/internal/payment"
)

type fakeProvider struct {
	enabled bool
	err     error
	// last captured request, for asserting what the provider was asked for
	req payment.SessionRequest
	// calls counts CreateSession invocations
	calls int
}

func (f *fakeProvider) Enabled() bool { return f.enabled }

func (f *fakeProvider) CreateSession(_ context.Context, req payment.SessionRequest) (payment.Session, error) {
	f.calls++
	f.req = req
	if f.err != nil {
		return payment.Session{}, f.err
	}
	return payment.Session{ID: "cs_test_1", URL: "https://checkout.example/pay/cs_test_1"}, nil
}

func newTestConf(t *testing.T, provider payment.SessionCreator) (*Conf, *orders.MemoryStore) {
	t.Helper()
	store := orders.NewMemoryStore()
	orderConf, err := orders.NewConf(store)
	if err != nil {
		t.Fatal(err)
	}
	conf, err := NewConf(orderConf, provider, "inr", "http://localhost:3000")
	if err != nil {
		t.Fatal(err)
	}
	return conf, store
}

func TestCheckoutScenario(t *testing.T) {
	provider := &fakeProvider{enabled: true}
	conf, _ := newTestConf(t, provider)

	result, err := conf.Checkout(context.Background(), "u1", "shopper@example.com",
		[]Item{{ProductID: "pA", Title: "Product A", Price: 100, Quantity: 2}},
		Meta{ShippingPrice: 50, TaxPrice: 18},
	)
	if err != nil {
		t.Fatal(err)
	}

	order := result.Order
	if order.ItemsPrice != 200 {
		t.Errorf("expected itemsPrice 200, got %v", order.ItemsPrice)
	}
	if order.TotalPrice != 268 {
		t.Errorf("expected totalPrice 268, got %v", order.TotalPrice)
	}
	if order.IsPaid {
		t.Errorf("expected pending order")
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 || order.Items[0].Price != 100 {
		t.Errorf("unexpected line-item snapshot: %+v", order.Items)
	}

	if len(provider.req.LineItems) != 1 {
		t.Fatalf("expected 1 provider line item, got %d", len(provider.req.LineItems))
	}
	li := provider.req.LineItems[0]
	if li.UnitAmount != 10000 {
		t.Errorf("expected unit amount 10000 minor units, got %d", li.UnitAmount)
	}
	if li.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", li.Quantity)
	}
	if provider.req.Metadata["orderId"] != order.ID {
		t.Errorf("expected order id in session metadata, got %q", provider.req.Metadata["orderId"])
	}
	if provider.req.CustomerEmail != "shopper@example.com" {
		t.Errorf("expected purchaser email on the session request")
	}
	if result.SessionID != "cs_test_1" || result.URL == "" {
		t.Errorf("expected session id and redirect URL, got %+v", result)
	}
}

func TestItemsPriceSumsAllEntries(t *testing.T) {
	provider := &fakeProvider{enabled: true}
	conf, _ := newTestConf(t, provider)

	result, err := conf.Checkout(context.Background(), "u1", "x@example.com", []Item{
		{Title: "A", Price: 19.99, Quantity: 3},
		{Title: "B", Price: 5.01, Quantity: 1},
	}, Meta{})
	if err != nil {
		t.Fatal(err)
	}

	if result.Order.ItemsPrice != 64.98 {
		t.Errorf("expected itemsPrice 64.98, got %v", result.Order.ItemsPrice)
	}
	if result.Order.TotalPrice != 64.98 {
		t.Errorf("shipping and tax default to 0, got total %v", result.Order.TotalPrice)
	}
	if got := provider.req.LineItems[0].UnitAmount; got != 1999 {
		t.Errorf("expected 1999 minor units, got %d", got)
	}
}

func TestEmptyCartRejectedBeforeWrite(t *testing.T) {
	provider := &fakeProvider{enabled: true}
	conf, store := newTestConf(t, provider)

	_, err := conf.Checkout(context.Background(), "u1", "x@example.com", nil, Meta{})
	if !errors.Is(err, orders.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	all, _ := store.ListAllOrders(context.Background())
	if len(all) != 0 {
		t.Errorf("expected no order written, found %d", len(all))
	}
	if provider.calls != 0 {
		t.Errorf("provider must not be called for an empty cart")
	}
}

func TestNotConfiguredFailsBeforeWrite(t *testing.T) {
	conf, store := newTestConf(t, &fakeProvider{enabled: false})

	_, err := conf.Checkout(context.Background(), "u1", "x@example.com",
		[]Item{{Title: "A", Price: 10, Quantity: 1}}, Meta{})
	if !errors.Is(err, payment.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	all, _ := store.ListAllOrders(context.Background())
	if len(all) != 0 {
		t.Errorf("configuration failure must not create any order, found %d", len(all))
	}
}

func TestProviderFailureLeavesPendingOrder(t *testing.T) {
	provider := &fakeProvider{enabled: true, err: errors.New("stripe unavailable")}
	conf, store := newTestConf(t, provider)

	_, err := conf.Checkout(context.Background(), "u1", "x@example.com",
		[]Item{{Title: "A", Price: 10, Quantity: 1}}, Meta{})
	if err == nil {
		t.Fatal("expected provider error to surface")
	}

	// The order write is not rolled back; the record stays pending.
	all, _ := store.ListAllOrders(context.Background())
	if len(all) != 1 {
		t.Fatalf("expected the pending order to remain, found %d", len(all))
	}
	if all[0].IsPaid {
		t.Errorf("orphaned order must remain unpaid")
	}
}
