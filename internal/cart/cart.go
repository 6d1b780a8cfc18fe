// Package cart is the shopper's in-progress selection: a non-authoritative
// list of product/price/quantity entries kept client-side across restarts.
// The cart is an explicit value persisted through an injected Storage port;
// it is never a hidden singleton.
package cart

import (
	"github.com/shopspring/decimal"
)

// Item is one prospective purchase. Price is the unit price at add time; the
// server does not treat it as authoritative.
type Item struct {
	ProductID string  `json:"_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"qty"`
	Image     string  `json:"image,omitempty"`
}

// Storage is the durable-client-storage port (the localStorage analogue).
type Storage interface {
	Load() ([]Item, error)
	Save(items []Item) error
}

type Cart struct {
	items   []Item
	storage Storage
}

// New restores the cart from storage. Absent or corrupt storage yields an
// empty cart; the shopper never sees a storage error.
func New(storage Storage) *Cart {
	c := &Cart{storage: storage}
	if storage != nil {
		if items, err := storage.Load(); err == nil {
			c.items = items
		}
	}
	return c
}

// Add appends the product with quantity 1, or bumps the quantity by 1 when
// the product is already present. A removed product re-added starts at 1; no
// prior quantity is resurrected.
func (c *Cart) Add(item Item) {
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity++
			c.persist()
			return
		}
	}
	item.Quantity = 1
	c.items = append(c.items, item)
	c.persist()
}

func (c *Cart) IncreaseQty(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity++
			break
		}
	}
	c.persist()
}

// DecreaseQty lowers the quantity by 1 but never below 1; removal happens
// only through Remove.
func (c *Cart) DecreaseQty(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID && c.items[i].Quantity > 1 {
			c.items[i].Quantity--
			break
		}
	}
	c.persist()
}

func (c *Cart) Remove(productID string) {
	kept := c.items[:0]
	for _, it := range c.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	c.items = kept
	c.persist()
}

// Clear empties the cart; called on logout and on checkout success.
func (c *Cart) Clear() {
	c.items = nil
	c.persist()
}

func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Count is the sum of quantities across all entries.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Total is Σ(price × qty), computed with decimal arithmetic.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// persist writes through after every mutation; a failing Storage is ignored
// so cart operations never surface an error to the shopper.
func (c *Cart) persist() {
	if c.storage == nil {
		return
	}
	_ = c.storage.Save(c.items)
}
