package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/checkout"
	"storefront/internal/orders"
	"storefront/internal/payment"
	"storefront/internal/users"
	"storefront/pkg/ctxmanage"
	"storefront/pkg/logkey"
)

type checkoutRequest struct {
	Items     []checkout.Item `json:"items" validate:"dive"`
	OrderMeta checkout.Meta   `json:"orderMeta"`
}

// CreateCheckoutSession converts the submitted cart snapshot into a pending
// order plus a hosted-payment redirect URL.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("invalid checkout payload", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false,
			"message": "Each item needs a title, a non-negative price and a quantity of at least 1"})
		return
	}

	user, err := h.u.GetByID(c.Request.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not found"})
			return
		}
		slog.Error("fetching purchaser failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Checkout failed"})
		return
	}

	ctx := c.Request.Context()
	if h.paymentTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.paymentTimeout)
		defer cancel()
	}

	result, err := h.co.Checkout(ctx, claims.Subject, user.Email, req.Items, req.OrderMeta)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrNotConfigured):
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false,
				"message": "Stripe secret key is not configured on the server. Set STRIPE_SECRET_KEY with a valid secret key."})
		case errors.Is(err, orders.ErrValidation):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Order items are required"})
		default:
			slog.Error("checkout failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create checkout session"})
		}
		return
	}

	slog.Info("checkout session created", slog.String(logkey.TraceID, traceId),
		slog.String(logkey.OrderID, result.Order.ID), slog.String("SessionID", result.SessionID))

	c.JSON(http.StatusOK, gin.H{"url": result.URL, "sessionId": result.SessionID})
}
