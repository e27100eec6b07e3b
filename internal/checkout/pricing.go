package checkout

import (
	"errors"

	"github.com/fjod/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

const DefaultTaxRate = "0.08"

// Pricing holds the rules that turn a cart into order totals. A zero
// FlatShippingFee means shipping is always free.
type Pricing struct {
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{TaxRate: decimal.RequireFromString(DefaultTaxRate)}
}

func (p Pricing) Validate() error {
	var errs []error
	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		errs = append(errs, errors.New("tax rate must be between 0 and 1"))
	}
	if p.FreeShippingThreshold.IsNegative() {
		errs = append(errs, errors.New("free shipping threshold cannot be negative"))
	}
	if p.FlatShippingFee.IsNegative() {
		errs = append(errs, errors.New("flat shipping fee cannot be negative"))
	}
	return errors.Join(errs...)
}

type Quote struct {
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
}

// Quote prices the cart. Amounts are rounded to cents.
func (p Pricing) Quote(cart domain.Cart) Quote {
	subtotal := cart.Subtotal().Round(2)
	tax := subtotal.Mul(p.TaxRate).Round(2)
	shipping := p.shipping(subtotal)
	return Quote{
		ItemCount: cart.ItemCount(),
		Subtotal:  subtotal,
		Tax:       tax,
		Shipping:  shipping,
		Total:     subtotal.Add(tax).Add(shipping),
	}
}

func (p Pricing) shipping(subtotal decimal.Decimal) decimal.Decimal {
	if p.FlatShippingFee.IsZero() || subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FlatShippingFee.Round(2)
}
