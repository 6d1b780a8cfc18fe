// Package payment is the boundary to the hosted checkout provider. The core
// makes exactly one outbound call: create a checkout session for a set of
// price-bearing line items; no other provider surface is consumed directly.
package payment

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no usable provider secret is present.
// Callers are expected to fail fast on it before creating any state.
var ErrNotConfigured = errors.New("payment provider is not configured")

// SessionLineItem carries one cart entry. UnitAmount is in minor currency
// units (price × 100, rounded).
type SessionLineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
	Image      string
	ProductID  string
}

type SessionRequest struct {
	Currency      string
	LineItems     []SessionLineItem
	CustomerEmail string
	// Metadata correlates the session back to our records; the order id
	// travels here and comes back on the provider's completion event.
	Metadata   map[string]string
	SuccessURL string
	CancelURL  string
}

type Session struct {
	ID  string
	URL string
}

// SessionCreator creates a hosted checkout session and returns its id and
// redirect URL. Enabled reports whether the provider is usable at all;
// orchestration checks it before writing anything durable.
type SessionCreator interface {
	Enabled() bool
	CreateSession(ctx context.Context, req SessionRequest) (Session, error)
}
