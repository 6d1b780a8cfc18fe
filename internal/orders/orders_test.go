package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront/internal/auth"
)

func actor(userID string, roles ...string) auth.Claims {
	return auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
		Roles:            append([]string{auth.RoleUser}, roles...),
	}
}

func newTestConf(t *testing.T) (*Conf, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	conf, err := NewConf(store)
	if err != nil {
		t.Fatal(err)
	}
	return conf, store
}

func sampleItems() []OrderItem {
	return []OrderItem{{ProductID: "p1", Title: "Keyboard", Price: 100, Quantity: 2}}
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	conf, store := newTestConf(t)

	_, err := conf.Create(context.Background(), "u1", NewOrder{})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	all, _ := store.ListAllOrders(context.Background())
	if len(all) != 0 {
		t.Errorf("expected no write on validation failure, found %d orders", len(all))
	}
}

func TestCreateStartsPending(t *testing.T) {
	conf, _ := newTestConf(t)

	order, err := conf.Create(context.Background(), "u1", NewOrder{
		Items:         sampleItems(),
		ItemsPrice:    200,
		TaxPrice:      18,
		ShippingPrice: 50,
	})
	if err != nil {
		t.Fatal(err)
	}
	if order.IsPaid || order.IsDelivered {
		t.Errorf("new order must be pending, got isPaid=%v isDelivered=%v", order.IsPaid, order.IsDelivered)
	}
	if order.TotalPrice != 268 {
		t.Errorf("expected total 268, got %v", order.TotalPrice)
	}
	if order.UserID != "u1" {
		t.Errorf("expected owner u1, got %s", order.UserID)
	}
}

func TestGetByIDDistinguishesNotFoundFromForbidden(t *testing.T) {
	conf, _ := newTestConf(t)
	order, err := conf.Create(context.Background(), "u1", NewOrder{Items: sampleItems()})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := conf.GetByID(context.Background(), "missing", actor("u1")); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
	if _, err := conf.GetByID(context.Background(), order.ID, actor("intruder")); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for stranger, got %v", err)
	}
	if _, err := conf.GetByID(context.Background(), order.ID, actor("u1")); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
	if _, err := conf.GetByID(context.Background(), order.ID, actor("someone", auth.RoleAdmin)); err != nil {
		t.Errorf("admin read failed: %v", err)
	}
}

func TestMarkPaidAuthorization(t *testing.T) {
	conf, store := newTestConf(t)
	order, err := conf.Create(context.Background(), "u1", NewOrder{Items: sampleItems()})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := conf.MarkPaid(context.Background(), order.ID, `{"id":"pi_1"}`, actor("intruder")); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	stored, _ := store.GetOrderByID(context.Background(), order.ID)
	if stored.IsPaid {
		t.Errorf("failed authorization must leave isPaid unchanged")
	}

	updated, err := conf.MarkPaid(context.Background(), order.ID, `{"id":"pi_1"}`, actor("u1"))
	if err != nil {
		t.Fatal(err)
	}
	if !updated.IsPaid || updated.PaidAt == nil {
		t.Errorf("expected paid order with paidAt set")
	}
}

func TestMarkPaidLastWriteWins(t *testing.T) {
	conf, _ := newTestConf(t)
	order, err := conf.Create(context.Background(), "u1", NewOrder{Items: sampleItems()})
	if err != nil {
		t.Fatal(err)
	}

	first, err := conf.MarkPaid(context.Background(), order.ID, `{"id":"pi_first"}`, actor("u1"))
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	second, err := conf.MarkPaid(context.Background(), order.ID, `{"id":"pi_second"}`, actor("u1"))
	if err != nil {
		t.Fatal(err)
	}

	if !second.IsPaid {
		t.Errorf("isPaid must remain true")
	}
	if second.PaymentResult != `{"id":"pi_second"}` {
		t.Errorf("expected second payload to win, got %s", second.PaymentResult)
	}
	if !second.PaidAt.After(*first.PaidAt) {
		t.Errorf("expected paidAt refreshed on re-invocation")
	}
}

func TestMarkDeliveredAdminOnly(t *testing.T) {
	conf, _ := newTestConf(t)
	order, err := conf.Create(context.Background(), "u1", NewOrder{Items: sampleItems()})
	if err != nil {
		t.Fatal(err)
	}

	// Even the owner may not mark delivery, paid or not.
	if _, err := conf.MarkDelivered(context.Background(), order.ID, actor("u1")); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for owner, got %v", err)
	}

	updated, err := conf.MarkDelivered(context.Background(), order.ID, actor("ops", auth.RoleAdmin))
	if err != nil {
		t.Fatal(err)
	}
	if !updated.IsDelivered || updated.DeliveredAt == nil {
		t.Errorf("expected delivered order with deliveredAt set")
	}
	if updated.IsPaid {
		t.Errorf("delivery must not touch the paid flag")
	}
}

func TestListByOwnerNewestFirst(t *testing.T) {
	conf, store := newTestConf(t)
	ctx := context.Background()

	for _, ts := range []time.Time{
		time.Now().UTC().Add(-2 * time.Hour),
		time.Now().UTC().Add(-1 * time.Hour),
		time.Now().UTC(),
	} {
		order, err := conf.Create(ctx, "u1", NewOrder{Items: sampleItems()})
		if err != nil {
			t.Fatal(err)
		}
		order.CreatedAt = ts
		if err := store.InsertOrder(ctx, order); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := conf.Create(ctx, "someone-else", NewOrder{Items: sampleItems()}); err != nil {
		t.Fatal(err)
	}

	list, err := conf.ListByOwner(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 orders for u1, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.After(list[i-1].CreatedAt) {
			t.Errorf("orders not sorted newest first at index %d", i)
		}
	}
}

func TestStaleDeliveryWriteKeepsPaidFlag(t *testing.T) {
	conf, store := newTestConf(t)
	ctx := context.Background()

	order, err := conf.Create(ctx, "u1", NewOrder{Items: sampleItems()})
	if err != nil {
		t.Fatal(err)
	}

	// Snapshot read before payment, as a concurrent delivery would see it.
	stale, err := store.GetOrderByID(ctx, order.ID)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := conf.MarkPaid(ctx, order.ID, `{"id":"pi_1"}`, actor("u1")); err != nil {
		t.Fatal(err)
	}

	now := time.Now().UTC()
	stale.IsDelivered = true
	stale.DeliveredAt = &now
	stale.UpdatedAt = now
	if err := store.SetOrderDelivered(ctx, stale); err != nil {
		t.Fatal(err)
	}

	stored, err := store.GetOrderByID(ctx, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !stored.IsPaid || stored.PaidAt == nil || stored.PaymentResult == "" {
		t.Errorf("delivery via a stale snapshot must not revert payment, got %+v", stored)
	}
	if !stored.IsDelivered {
		t.Errorf("expected delivery to land")
	}
}

func TestMarkPaidUnknownOrder(t *testing.T) {
	conf, _ := newTestConf(t)

	if _, err := conf.MarkPaid(context.Background(), "missing", "{}", actor("u1")); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
