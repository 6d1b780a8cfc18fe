package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"storefront/handlers"
	"storefront/internal/auth"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/consul"
	"storefront/internal/orders"
	"storefront/internal/payment"
	"storefront/internal/products"
	"storefront/internal/stores/kafka"
	storemongo "storefront/internal/stores/mongo"
	"storefront/internal/users"
	"storefront/pkg/logkey"
	"storefront/pkg/metrics"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String(logkey.ERROR, err.Error()))
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Read()
	if err != nil {
		return err
	}

	keys, err := auth.NewKeys(cfg.JWTSecret)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var (
		orderStore   orders.Store
		userStore    users.Store
		productStore products.Store
	)
	if cfg.MongoURI != "" {
		db, err := storemongo.Open(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return err
		}
		if orderStore, err = orders.NewMongoStore(db); err != nil {
			return err
		}
		if userStore, err = users.NewMongoStore(ctx, db); err != nil {
			return err
		}
		if productStore, err = products.NewMongoStore(ctx, db); err != nil {
			return err
		}
		slog.Info("using mongo stores", slog.String("Database", cfg.MongoDB))
	} else {
		orderStore = orders.NewMemoryStore()
		userStore = users.NewMemoryStore()
		productStore = products.NewMemoryStore()
		slog.Warn("MONGO_URI not set, using in-memory stores")
	}

	orderConf, err := orders.NewConf(orderStore)
	if err != nil {
		return err
	}
	userConf, err := users.NewConf(userStore)
	if err != nil {
		return err
	}
	productConf, err := products.NewConf(productStore)
	if err != nil {
		return err
	}

	provider := payment.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	if !provider.Enabled() {
		slog.Warn("stripe secret key missing or placeholder, checkout will fail until one is configured")
	}

	checkoutConf, err := checkout.NewConf(orderConf, provider, cfg.Currency, cfg.ClientURL)
	if err != nil {
		return err
	}

	kafkaConf, err := kafka.NewConf(cfg.KafkaBrokers)
	if err != nil {
		return err
	}
	defer kafkaConf.Close()

	if cfg.ConsulAddr != "" {
		client, err := consul.NewClient(cfg.ConsulAddr)
		if err != nil {
			return err
		}
		serviceID := "storefront-" + uuid.NewString()
		if err := consul.RegisterService(client, "storefront", serviceID, "localhost", cfg.Port); err != nil {
			return err
		}
		defer func() {
			if err := consul.DeregisterService(client, serviceID); err != nil {
				slog.Error("consul deregister failed", slog.String(logkey.ERROR, err.Error()))
			}
		}()
	}

	api := handlers.API(handlers.Deps{
		Users:          userConf,
		Products:       productConf,
		Orders:         orderConf,
		Checkout:       checkoutConf,
		Provider:       provider,
		Kafka:          kafkaConf,
		Keys:           keys,
		PaymentTimeout: cfg.PaymentTimeout,
		Metrics:        metrics.NewServerMetrics("api"),
		GinMode:        cfg.GinMode,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	shutdown, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", slog.Int("Port", cfg.Port))
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-shutdown.Done():
		slog.Info("shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}
	return nil
}
