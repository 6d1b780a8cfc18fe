package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

type checkoutPayload struct {
	Items     []checkoutItem `json:"items"`
	OrderMeta checkoutMeta   `json:"orderMeta"`
}

type checkoutItem struct {
	ProductID string  `json:"productId,omitempty"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"qty"`
	Image     string  `json:"image,omitempty"`
}

type checkoutMeta struct {
	ShippingPrice float64 `json:"shippingPrice"`
	TaxPrice      float64 `json:"taxPrice"`
}

func checkoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Send the cart to the server and print the payment redirect URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _ := cmd.Flags().GetString("api")
			token, _ := cmd.Flags().GetString("token")
			shipping, _ := cmd.Flags().GetFloat64("shipping")
			tax, _ := cmd.Flags().GetFloat64("tax")
			if token == "" {
				return fmt.Errorf("a bearer token is required (login first, set STOREFRONT_TOKEN or --token)")
			}

			c := loadCart()
			items := c.Items()
			if len(items) == 0 {
				return fmt.Errorf("cart is empty")
			}

			payload := checkoutPayload{OrderMeta: checkoutMeta{ShippingPrice: shipping, TaxPrice: tax}}
			for _, it := range items {
				payload.Items = append(payload.Items, checkoutItem{
					ProductID: it.ProductID,
					Title:     it.Title,
					Price:     it.Price,
					Quantity:  it.Quantity,
					Image:     it.Image,
				})
			}

			body, err := json.Marshal(payload)
			if err != nil {
				return err
			}
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost,
				api+"/api/stripe/create-checkout-session", bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			client := &http.Client{Timeout: 30 * time.Second}
			resp, err := client.Do(req)
			if err != nil {
				return fmt.Errorf("calling checkout: %w", err)
			}
			defer resp.Body.Close()

			var out struct {
				URL       string `json:"url"`
				SessionID string `json:"sessionId"`
				Message   string `json:"message"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return fmt.Errorf("decoding checkout response: %w", err)
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("checkout failed (%d): %s", resp.StatusCode, out.Message)
			}

			// The cart is cleared on checkout-success, not here: the shopper
			// may still cancel on the provider's page.
			fmt.Printf("session %s\nopen to pay: %s\n", out.SessionID, out.URL)
			return nil
		},
	}
	cmd.Flags().Float64("shipping", 0, "shipping price")
	cmd.Flags().Float64("tax", 0, "tax price")
	return cmd
}

func checkoutSuccessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout-success",
		Short: "Acknowledge a completed payment and clear the local cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			loadCart().Clear()
			fmt.Println("payment acknowledged, cart cleared")
			return nil
		},
	}
}
