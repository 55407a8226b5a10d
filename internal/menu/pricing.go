package menu

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrUnknownSize = errors.New("unknown size code")

// Sizes lists the valid size codes in display order.
var Sizes = []string{"P", "M", "G"}

// PricingTable maps a size code to its unit price.
type PricingTable map[string]decimal.Decimal

// DefaultPrices returns the restaurant's pricing table.
func DefaultPrices() PricingTable {
	return PricingTable{
		"P": decimal.RequireFromString("16.00"),
		"M": decimal.RequireFromString("20.00"),
		"G": decimal.RequireFromString("26.00"),
	}
}

// Price returns the unit price for a size code.
func (p PricingTable) Price(size string) (decimal.Decimal, error) {
	price, ok := p[size]
	if !ok {
		return decimal.Decimal{}, ErrUnknownSize
	}
	return price, nil
}
