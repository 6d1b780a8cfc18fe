package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v81"

	"storefront/internal/auth"
	"storefront/internal/orders"
	"storefront/internal/stores/kafka"
	"storefront/pkg/ctxmanage"
	"storefront/pkg/logkey"
)

// systemActor is the identity the webhook acts under: confirmation events
// come from the provider, not from the purchasing user, so the owner check is
// bypassed through the admin role.
var systemActor = auth.Claims{Roles: []string{auth.RoleAdmin}}

// Webhook consumes the provider's payment confirmation. Signature
// verification is mandatory; an unverifiable payload is rejected before any
// state is read.
func (h *Handler) Webhook(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	const maxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		slog.Error("reading webhook body failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	event, err := h.provider.VerifyEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		slog.Error("webhook verification failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "signature verification failed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			slog.Error("decoding checkout session failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
			return
		}

		orderId := session.Metadata["orderId"]
		if orderId == "" {
			slog.Error("completed session without order id", slog.String(logkey.TraceID, traceId), slog.String("SessionID", session.ID))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing order metadata"})
			return
		}

		order, err := h.o.MarkPaid(c.Request.Context(), orderId, string(event.Data.Raw), systemActor)
		if err != nil {
			slog.Error("marking order paid failed", slog.String(logkey.TraceID, traceId),
				slog.String(logkey.OrderID, orderId), slog.String(logkey.ERROR, err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}

		slog.Info("order marked paid", slog.String(logkey.TraceID, traceId),
			slog.String(logkey.OrderID, order.ID), slog.String("SessionID", session.ID))

		h.publishOrderPaid(c, traceId, order)
		c.Status(http.StatusOK)

	default:
		slog.Info("unhandled event type", slog.String(logkey.TraceID, traceId), slog.String("EventType", string(event.Type)))
		c.JSON(http.StatusOK, gin.H{"message": "Event type not handled", "event": event.Type})
	}
}

// publishOrderPaid emits one event per line item; a missing producer or a
// broker failure never fails the request.
func (h *Handler) publishOrderPaid(c *gin.Context, traceId string, order orders.Order) {
	if h.k == nil {
		return
	}
	for _, item := range order.Items {
		data, err := json.Marshal(kafka.OrderPaidEvent{
			OrderId:   order.ID,
			ProductId: item.ProductID,
			Quantity:  item.Quantity,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			slog.Error("marshaling order-paid event failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
			return
		}
		if err := h.k.ProduceMessage(c.Request.Context(), kafka.TopicOrderPaid, []byte(order.ID), data); err != nil {
			slog.Error("producing order-paid event failed", slog.String(logkey.TraceID, traceId),
				slog.String(logkey.OrderID, order.ID), slog.String(logkey.ERROR, err.Error()))
			return
		}
	}
}
