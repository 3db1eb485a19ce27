package cart

import (
	"fmt"

	"github.com/angelmondragon/izishop-backend/pkg/config"
	"github.com/angelmondragon/izishop-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Policy holds the pricing rules applied to a cart.
type Policy struct {
	FlatShipping          types.Cents
	FreeShippingThreshold types.Cents
	TaxRate               decimal.Decimal
}

// DefaultPolicy charges 9.99 shipping up to 100.00 and 20% tax.
func DefaultPolicy() Policy {
	return Policy{
		FlatShipping:          999,
		FreeShippingThreshold: 10000,
		TaxRate:               decimal.NewFromFloat(0.20),
	}
}

// PolicyFromConfig converts the pricing section of the config.
func PolicyFromConfig(cfg config.PricingConfig) (Policy, error) {
	rate, err := cfg.TaxRateDecimal()
	if err != nil {
		return Policy{}, err
	}
	if cfg.FlatShippingCents < 0 || cfg.FreeShippingThresholdCents < 0 {
		return Policy{}, fmt.Errorf("pricing amounts must be non-negative")
	}
	return Policy{
		FlatShipping:          types.Cents(cfg.FlatShippingCents),
		FreeShippingThreshold: types.Cents(cfg.FreeShippingThresholdCents),
		TaxRate:               rate,
	}, nil
}

// Shipping is waived strictly above the threshold.
func (p Policy) Shipping(subtotal types.Cents) types.Cents {
	if subtotal > p.FreeShippingThreshold {
		return 0
	}
	return p.FlatShipping
}

// FreeShippingRemaining is the smallest extra spend that waives shipping, or 0 once waived.
func (p Policy) FreeShippingRemaining(subtotal types.Cents) types.Cents {
	if subtotal > p.FreeShippingThreshold {
		return 0
	}
	return p.FreeShippingThreshold - subtotal + 1
}

// Tax rounds half away from zero to the nearest minor unit.
func (p Policy) Tax(subtotal types.Cents) types.Cents {
	return types.Cents(decimal.NewFromInt(int64(subtotal)).Mul(p.TaxRate).Round(0).IntPart())
}

// ComputeTotals derives every total from items. An empty cart owes nothing.
func ComputeTotals(p Policy, items []LineItem) Totals {
	if len(items) == 0 {
		return Totals{}
	}
	var subtotal types.Cents
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	shipping := p.Shipping(subtotal)
	tax := p.Tax(subtotal)
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}
