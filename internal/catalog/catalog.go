// Package catalog loads the read-only product list once at startup and
// answers lookups against it.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fjod/storefront/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// AllCategories selects every product in ByCategory.
const AllCategories = "All"

type Catalog struct {
	products   []domain.Product
	byID       map[string]int
	categories []domain.Category
}

func Load(ctx context.Context, p Provider) (*Catalog, error) {
	data, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	return New(data.Categories, data.Products)
}

// New validates every product. Duplicate ids and invalid records are
// rejected here so the stores can trust what they receive. Categories are
// derived from the products when none are given.
func New(categories []domain.Category, products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	var errs []error
	for _, p := range products {
		if err := p.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("product %q: %w", p.ID, err))
			continue
		}
		if _, dup := c.byID[p.ID]; dup {
			errs = append(errs, fmt.Errorf("product %q: duplicate id", p.ID))
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p.Clone())
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	if len(categories) > 0 {
		c.categories = append([]domain.Category(nil), categories...)
	} else {
		c.categories = deriveCategories(c.products)
	}
	return c, nil
}

func (c *Catalog) All() []domain.Product {
	return clone(c.products)
}

func (c *Catalog) Get(id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return c.products[i].Clone(), nil
}

// ByCategory matches names case-insensitively; "" and "All" return every
// product.
func (c *Catalog) ByCategory(name string) []domain.Product {
	if name == "" || strings.EqualFold(name, AllCategories) {
		return c.All()
	}
	out := []domain.Product{}
	for _, p := range c.products {
		if strings.EqualFold(p.Category, name) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (c *Catalog) Featured() []domain.Product {
	out := []domain.Product{}
	for _, p := range c.products {
		if p.Featured {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (c *Catalog) Categories() []domain.Category {
	return append([]domain.Category(nil), c.categories...)
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func deriveCategories(products []domain.Product) []domain.Category {
	seen := map[string]bool{}
	out := []domain.Category{}
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, domain.Category{ID: fmt.Sprint(len(out) + 1), Name: p.Category})
	}
	return out
}

func clone(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}
