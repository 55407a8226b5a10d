package order

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mesaesabores/mesa-backend/internal/cart"
)

// Assemble converts a finalized cart into an immutable submission.
// Validation happens here, before any remote round trip; the items are
// snapshotted by value so later cart mutation cannot affect the result.
func Assemble(c *cart.Cart, customer Customer, payment PaymentMethod) (*Submission, error) {
	if c == nil || c.Len() == 0 {
		return nil, ErrEmptyCart
	}

	lines := c.Items()
	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, Item{
			OptionID:           line.OptionID,
			Title:              line.Title,
			Size:               line.Size,
			Quantity:           line.Quantity,
			UnitPrice:          line.UnitPrice,
			TotalPrice:         line.TotalPrice,
			RemovedIngredients: line.RemovedIngredients,
			Observations:       line.Observations,
		})
	}

	return NewSubmission(customer, payment, items)
}

// NewSubmission validates customer data and builds a submission from
// already-shaped items. The total is recomputed from the item totals;
// a caller-supplied aggregate is never trusted.
func NewSubmission(customer Customer, payment PaymentMethod, items []Item) (*Submission, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(customer.Name) == "" {
		return nil, ErrMissingName
	}
	if strings.TrimSpace(customer.WhatsApp) == "" {
		return nil, ErrMissingWhatsApp
	}
	if strings.TrimSpace(customer.Address) == "" {
		return nil, ErrMissingAddress
	}
	if !payment.Valid() {
		return nil, ErrMissingPayment
	}

	customer.WhatsApp = digitsOnly(customer.WhatsApp)
	if customer.WhatsApp == "" {
		return nil, ErrMissingWhatsApp
	}

	snapshot := make([]Item, len(items))
	copy(snapshot, items)

	total := decimal.Zero
	for _, item := range snapshot {
		total = total.Add(item.TotalPrice)
	}

	return &Submission{
		Customer:      customer,
		PaymentMethod: payment,
		Items:         snapshot,
		TotalPrice:    total,
	}, nil
}

// digitsOnly strips every non-digit character from a phone number.
func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
