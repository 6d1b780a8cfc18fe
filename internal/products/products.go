// Package products is the catalog: pass-through CRUD over the document store
// plus paginated listing with category and text filters. Checkout never reads
// the catalog; orders carry their own price snapshots.
package products

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("product not found")

type Store interface {
	InsertProduct(ctx context.Context, p Product) error
	GetProductByID(ctx context.Context, id string) (Product, error)
	UpdateProduct(ctx context.Context, p Product) error
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, filter ListFilter) ([]Product, int64, error)
}

type Conf struct {
	store Store
}

func NewConf(store Store) (*Conf, error) {
	if store == nil {
		return nil, fmt.Errorf("store is nil")
	}
	return &Conf{store: store}, nil
}

func (c *Conf) Create(ctx context.Context, np NewProduct) (Product, error) {
	now := time.Now().UTC()
	p := Product{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(np.Title),
		Description: strings.TrimSpace(np.Description),
		Price:       np.Price,
		Images:      np.Images,
		Category:    strings.ToLower(strings.TrimSpace(np.Category)),
		Brand:       strings.TrimSpace(np.Brand),
		Stock:       np.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.store.InsertProduct(ctx, p); err != nil {
		return Product{}, fmt.Errorf("inserting product: %w", err)
	}
	return p, nil
}

func (c *Conf) GetByID(ctx context.Context, id string) (Product, error) {
	return c.store.GetProductByID(ctx, id)
}

func (c *Conf) Update(ctx context.Context, id string, np NewProduct) (Product, error) {
	p, err := c.store.GetProductByID(ctx, id)
	if err != nil {
		return Product{}, err
	}
	p.Title = strings.TrimSpace(np.Title)
	p.Description = strings.TrimSpace(np.Description)
	p.Price = np.Price
	p.Images = np.Images
	p.Category = strings.ToLower(strings.TrimSpace(np.Category))
	p.Brand = strings.TrimSpace(np.Brand)
	p.Stock = np.Stock
	p.UpdatedAt = time.Now().UTC()
	if err := c.store.UpdateProduct(ctx, p); err != nil {
		return Product{}, fmt.Errorf("updating product: %w", err)
	}
	return p, nil
}

func (c *Conf) Delete(ctx context.Context, id string) error {
	if _, err := c.store.GetProductByID(ctx, id); err != nil {
		return err
	}
	return c.store.DeleteProduct(ctx, id)
}

func (c *Conf) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 12
	}
	filter.Category = strings.ToLower(strings.TrimSpace(filter.Category))

	items, total, err := c.store.ListProducts(ctx, filter)
	if err != nil {
		return ListResult{}, fmt.Errorf("listing products: %w", err)
	}
	pages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	if items == nil {
		items = []Product{}
	}
	return ListResult{Products: items, Page: filter.Page, Pages: pages, Total: total}, nil
}
