// storefront-cli is the shopper's client: it keeps a local cart the way the
// browser keeps one in localStorage and drives checkout against the API.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"storefront/internal/cart"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "storefront",
		Short:   "Storefront shopper CLI - local cart and checkout",
		Version: Version,
	}

	rootCmd.PersistentFlags().String("api", envOr("STOREFRONT_API", "http://localhost:5000"), "API base URL")
	rootCmd.PersistentFlags().String("token", os.Getenv("STOREFRONT_TOKEN"), "Bearer token")

	rootCmd.AddCommand(cartCmd())
	rootCmd.AddCommand(checkoutCmd())
	rootCmd.AddCommand(checkoutSuccessCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadCart restores the cart from the fixed local path; a missing or corrupt
// file yields an empty cart.
func loadCart() *cart.Cart {
	return cart.New(cart.NewFileStorage(cartPath()))
}

func cartPath() string {
	if p := os.Getenv("STOREFRONT_CART_FILE"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".storefront", "cart.json")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
