package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"storefront/internal/cart"
)

func cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the local cart",
	}
	cmd.AddCommand(cartAddCmd(), cartListCmd(), cartIncCmd(), cartDecCmd(), cartRemoveCmd(), cartClearCmd())
	return cmd
}

func cartAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the cart (quantity 1, or +1 if present)",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			title, _ := cmd.Flags().GetString("title")
			price, _ := cmd.Flags().GetFloat64("price")
			image, _ := cmd.Flags().GetString("image")
			if id == "" || title == "" {
				return fmt.Errorf("--id and --title are required")
			}

			c := loadCart()
			c.Add(cart.Item{ProductID: id, Title: title, Price: price, Image: image})
			fmt.Printf("added %s, cart has %d item(s)\n", title, c.Count())
			return nil
		},
	}
	cmd.Flags().String("id", "", "product id")
	cmd.Flags().String("title", "", "product title")
	cmd.Flags().Float64("price", 0, "unit price")
	cmd.Flags().String("image", "", "image URL")
	return cmd
}

func cartListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the cart contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := loadCart()
			items := c.Items()
			if len(items) == 0 {
				fmt.Println("cart is empty")
				return nil
			}
			for _, it := range items {
				fmt.Printf("%-36s %-30s qty %-3d @ %.2f\n", it.ProductID, it.Title, it.Quantity, it.Price)
			}
			fmt.Printf("total: %s (%d items)\n", c.Total().StringFixed(2), c.Count())
			return nil
		},
	}
}

func cartIncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inc [product-id]",
		Short: "Increase an item's quantity by 1",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := loadCart()
			c.IncreaseQty(args[0])
			fmt.Printf("cart has %d item(s)\n", c.Count())
			return nil
		},
	}
}

func cartDecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dec [product-id]",
		Short: "Decrease an item's quantity by 1 (never below 1)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := loadCart()
			c.DecreaseQty(args[0])
			fmt.Printf("cart has %d item(s)\n", c.Count())
			return nil
		},
	}
}

func cartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [product-id]",
		Short: "Remove an item from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := loadCart()
			c.Remove(args[0])
			fmt.Printf("cart has %d item(s)\n", c.Count())
			return nil
		},
	}
}

func cartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			loadCart().Clear()
			fmt.Println("cart cleared")
			return nil
		},
	}
}
