package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Price              decimal.Decimal  `json:"price"`
	OriginalPrice      *decimal.Decimal `json:"originalPrice,omitempty"`
	DiscountPercentage *int             `json:"discountPercentage,omitempty"`
	Description        string           `json:"description,omitempty"`
	Image              string           `json:"image,omitempty"`
	Images             []string         `json:"images,omitempty"`
	Category           string           `json:"category"`
	Tags               []string         `json:"tags,omitempty"`
	Featured           bool             `json:"featured,omitempty"`
	Rating             *float64         `json:"rating,omitempty"`
	Reviews            *int             `json:"reviews,omitempty"`
}

// Validate checks the invariants a catalog entry must hold before any store
// sees it.
func (p Product) Validate() error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if p.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if !p.Price.IsPositive() {
		errs = append(errs, fmt.Errorf("price must be positive, got %s", p.Price))
	}
	if p.OriginalPrice != nil && p.OriginalPrice.LessThan(p.Price) {
		errs = append(errs, fmt.Errorf("original price %s is below price %s", p.OriginalPrice, p.Price))
	}
	if p.DiscountPercentage != nil && (*p.DiscountPercentage < 0 || *p.DiscountPercentage > 100) {
		errs = append(errs, fmt.Errorf("discount percentage %d out of range", *p.DiscountPercentage))
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		errs = append(errs, fmt.Errorf("rating %.1f out of range", *p.Rating))
	}
	if p.Reviews != nil && *p.Reviews < 0 {
		errs = append(errs, fmt.Errorf("reviews %d is negative", *p.Reviews))
	}
	return errors.Join(errs...)
}

// Clone returns a copy that shares no slices or pointers with p.
func (p Product) Clone() Product {
	c := p
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		c.OriginalPrice = &v
	}
	if p.DiscountPercentage != nil {
		v := *p.DiscountPercentage
		c.DiscountPercentage = &v
	}
	if p.Rating != nil {
		v := *p.Rating
		c.Rating = &v
	}
	if p.Reviews != nil {
		v := *p.Reviews
		c.Reviews = &v
	}
	if p.Images != nil {
		c.Images = append([]string(nil), p.Images...)
	}
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	return c
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}
