package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"storefront/internal/auth"
	"storefront/internal/checkout"
	"storefront/internal/orders"
	"storefront/internal/payment"
	"storefront/internal/products"
	"storefront/internal/stores/kafka"
	"storefront/internal/users"
	"storefront/middleware"
	"storefront/pkg/metrics"
)

type Handler struct {
	u        *users.Conf
	p        *products.Conf
	o        *orders.Conf
	co       *checkout.Conf
	provider *payment.StripeProvider
	k        *kafka.Conf
	keys     *auth.Keys
	validate *validator.Validate
	// paymentTimeout bounds the outbound provider call per checkout request.
	paymentTimeout time.Duration
}

type Deps struct {
	Users          *users.Conf
	Products       *products.Conf
	Orders         *orders.Conf
	Checkout       *checkout.Conf
	Provider       *payment.StripeProvider
	Kafka          *kafka.Conf
	Keys           *auth.Keys
	PaymentTimeout time.Duration
	Metrics        *metrics.ServerMetrics
	GinMode        string
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		u:              d.Users,
		p:              d.Products,
		o:              d.Orders,
		co:             d.Checkout,
		provider:       d.Provider,
		k:              d.Kafka,
		keys:           d.Keys,
		validate:       validator.New(),
		paymentTimeout: d.PaymentTimeout,
	}
}

// API wires every route onto a fresh engine.
func API(d Deps) *gin.Engine {
	r := gin.New()
	if d.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	m, err := middleware.NewMid(d.Keys)
	if err != nil {
		panic(err)
	}

	h := NewHandler(d)
	r.Use(middleware.Logger(), gin.Recovery())
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", metrics.Handler())
	}

	r.GET("/ping", healthCheck)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", h.Signup)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", m.Authentication(), h.Me)
	}

	productGroup := r.Group("/api/products")
	{
		productGroup.GET("", h.ListProducts)
		productGroup.GET("/:id", h.GetProduct)
		productGroup.Use(m.Authentication())
		productGroup.POST("", m.Authorize(h.CreateProduct, auth.RoleAdmin))
		productGroup.PUT("/:id", m.Authorize(h.UpdateProduct, auth.RoleAdmin))
		productGroup.DELETE("/:id", m.Authorize(h.DeleteProduct, auth.RoleAdmin))
	}

	orderGroup := r.Group("/api/orders")
	orderGroup.Use(m.Authentication())
	{
		orderGroup.POST("", h.CreateOrder)
		orderGroup.GET("/my", h.MyOrders)
		orderGroup.GET("/:id", h.GetOrder)
		orderGroup.PUT("/:id/pay", h.PayOrder)
		orderGroup.PUT("/:id/deliver", m.Authorize(h.DeliverOrder, auth.RoleAdmin))
		orderGroup.GET("", m.Authorize(h.ListOrders, auth.RoleAdmin))
	}

	stripeGroup := r.Group("/api/stripe")
	{
		stripeGroup.POST("/webhook", h.Webhook)
		stripeGroup.POST("/create-checkout-session", m.Authentication(), h.CreateCheckoutSession)
	}

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Backend Running Successfully",
		"timestamp": time.Now().UTC().Format(time.RFC3339)})
}
