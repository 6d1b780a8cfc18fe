// Package config reads the server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port      int
	ClientURL string
	JWTSecret string

	MongoURI string
	MongoDB  string

	StripeSecretKey     string
	StripeWebhookSecret string
	Currency            string
	// PaymentTimeout bounds the provider call; a timeout is treated as a
	// provider failure.
	PaymentTimeout time.Duration

	KafkaBrokers string
	ConsulAddr   string

	GinMode string
}

func Read() (Config, error) {
	cfg := Config{
		Port:                intEnv("PORT", 5000),
		ClientURL:           getenv("CLIENT_URL", "http://localhost:3000"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		MongoURI:            os.Getenv("MONGO_URI"),
		MongoDB:             getenv("MONGO_DB", "storefront"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		Currency:            getenv("CURRENCY", "inr"),
		PaymentTimeout:      time.Duration(intEnv("PAYMENT_TIMEOUT_MS", 10000)) * time.Millisecond,
		KafkaBrokers:        os.Getenv("KAFKA_BROKERS"),
		ConsulAddr:          os.Getenv("CONSUL_ADDR"),
		GinMode:             os.Getenv("GIN_MODE"),
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
