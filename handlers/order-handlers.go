package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/orders"
	"storefront/pkg/ctxmanage"
	"storefront/pkg/logkey"
)

type createOrderRequest struct {
	OrderItems      []orders.OrderItem `json:"orderItems"`
	ShippingAddress string             `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	ItemsPrice      float64            `json:"itemsPrice" validate:"gte=0"`
	TaxPrice        float64            `json:"taxPrice" validate:"gte=0"`
	ShippingPrice   float64            `json:"shippingPrice" validate:"gte=0"`
}

func (h *Handler) CreateOrder(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("invalid order payload", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Prices must be non-negative"})
		return
	}

	order, err := h.o.Create(c.Request.Context(), claims.Subject, orders.NewOrder{
		Items:           req.OrderItems,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      req.ItemsPrice,
		TaxPrice:        req.TaxPrice,
		ShippingPrice:   req.ShippingPrice,
	})
	if err != nil {
		if errors.Is(err, orders.ErrValidation) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Order items are required"})
			return
		}
		slog.Error("creating order failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Order creation failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

func (h *Handler) MyOrders(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	list, err := h.o.ListByOwner(c.Request.Context(), claims.Subject)
	if err != nil {
		slog.Error("listing own orders failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}
	if list == nil {
		list = []orders.Order{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": list})
}

func (h *Handler) GetOrder(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	order, err := h.o.GetByID(c.Request.Context(), c.Param("id"), claims)
	if err != nil {
		h.orderError(c, traceId, err, "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// PayOrder marks an order paid with the raw request body as the provider
// payload. Re-invocation overwrites the prior payload.
func (h *Handler) PayOrder(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var payload json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		payload = json.RawMessage("{}")
	}

	order, err := h.o.MarkPaid(c.Request.Context(), c.Param("id"), string(payload), claims)
	if err != nil {
		h.orderError(c, traceId, err, "Failed to update order")
		return
	}

	h.publishOrderPaid(c, traceId, order)

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

func (h *Handler) DeliverOrder(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	order, err := h.o.MarkDelivered(c.Request.Context(), c.Param("id"), claims)
	if err != nil {
		h.orderError(c, traceId, err, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

func (h *Handler) ListOrders(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	list, err := h.o.ListAll(c.Request.Context())
	if err != nil {
		slog.Error("listing orders failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}
	if list == nil {
		list = []orders.Order{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": list})
}

// orderError maps the order taxonomy to responses. Forbidden is deliberately
// never reported as not-found.
func (h *Handler) orderError(c *gin.Context, traceId string, err error, fallback string) {
	switch {
	case errors.Is(err, orders.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
	case errors.Is(err, orders.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to view this order"})
	case errors.Is(err, orders.ErrValidation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		slog.Error("order operation failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": fallback})
	}
}
