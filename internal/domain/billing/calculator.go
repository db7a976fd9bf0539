// Package billing computes what a closed service ticket costs.
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultTaxMultiplier applies when configuration does not set one.
const DefaultTaxMultiplier = "1.06"

const centPlaces = 2

// Calculator turns service and part prices into a taxed total. It holds no
// state beyond the multiplier, so one value can be shared by all requests.
type Calculator struct {
	taxMultiplier decimal.Decimal
}

// NewCalculator parses the configured multiplier, e.g. "1.06". Multipliers
// below 1 would discount work and are rejected.
func NewCalculator(taxMultiplier string) (*Calculator, error) {
	if taxMultiplier == "" {
		taxMultiplier = DefaultTaxMultiplier
	}
	m, err := decimal.NewFromString(taxMultiplier)
	if err != nil {
		return nil, fmt.Errorf("invalid tax multiplier %q: %w", taxMultiplier, err)
	}
	if m.LessThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("tax multiplier must be at least 1, got %s", m)
	}
	return &Calculator{taxMultiplier: m}, nil
}

func (c *Calculator) TaxMultiplier() decimal.Decimal {
	return c.taxMultiplier
}

// Compute sums service base prices and part inventory prices, applies the
// tax multiplier and rounds half away from zero to cents. Totals are never
// negative, so this is half-up.
func (c *Calculator) Compute(servicePrices, partPrices []decimal.Decimal) decimal.Decimal {
	subtotal := decimal.Zero
	for _, p := range servicePrices {
		subtotal = subtotal.Add(p)
	}
	for _, p := range partPrices {
		subtotal = subtotal.Add(p)
	}
	return subtotal.Mul(c.taxMultiplier).Round(centPlaces)
}
