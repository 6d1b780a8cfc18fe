package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
)

// StripeProvider creates hosted checkout sessions through the Stripe API.
type StripeProvider struct {
	key           string
	webhookSecret string
}

// NewStripeProvider accepts the secret key as-is; a missing key or an
// obvious placeholder (contains "...") yields a provider that reports
// Enabled() == false instead of an error, so the rest of the server can
// start without Stripe.
func NewStripeProvider(secretKey, webhookSecret string) *StripeProvider {
	p := &StripeProvider{webhookSecret: webhookSecret}
	if secretKey != "" && !strings.Contains(secretKey, "...") {
		p.key = secretKey
		stripe.Key = secretKey
	}
	return p
}

func (p *StripeProvider) Enabled() bool {
	return p.key != ""
}

func (p *StripeProvider) CreateSession(ctx context.Context, req SessionRequest) (Session, error) {
	if !p.Enabled() {
		return Session{}, ErrNotConfigured
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, it := range req.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name:     stripe.String(it.Name),
			Metadata: map[string]string{"productId": it.ProductID},
		}
		if it.Image != "" {
			productData.Images = stripe.StringSlice([]string{it.Image})
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(req.Currency),
				UnitAmount:  stripe.Int64(it.UnitAmount),
				ProductData: productData,
			},
			Quantity: stripe.Int64(it.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx, Metadata: req.Metadata},
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:          lineItems,
		CustomerEmail:      stripe.String(req.CustomerEmail),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
	}

	s, err := session.New(params)
	if err != nil {
		return Session{}, fmt.Errorf("creating stripe checkout session: %w", err)
	}
	return Session{ID: s.ID, URL: s.URL}, nil
}

// VerifyEvent checks the webhook signature and returns the decoded event.
func (p *StripeProvider) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	if p.webhookSecret == "" {
		return stripe.Event{}, fmt.Errorf("%w: webhook secret missing", ErrNotConfigured)
	}
	event, err := webhook.ConstructEvent(payload, sigHeader, p.webhookSecret)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("verifying webhook signature: %w", err)
	}
	return event, nil
}
