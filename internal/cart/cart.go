package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mesaesabores/mesa-backend/internal/menu"
)

// LineItem is one configured dish in a cart. CartID is the only stable
// handle for removal and quantity updates.
type LineItem struct {
	CartID             string          `json:"cartId"`
	OptionID           string          `json:"optionId"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Image              string          `json:"image,omitempty"`
	Quantity           int             `json:"quantity"`
	Size               string          `json:"size"`
	UnitPrice          decimal.Decimal `json:"price"`
	TotalPrice         decimal.Decimal `json:"totalPrice"`
	RemovedIngredients string          `json:"removedIngredients,omitempty"`
	Observations       string          `json:"observations,omitempty"`
}

// Cart is the ordered collection of line items owned by one customer
// session. Insertion order is preserved for display. Single-owner,
// single-writer; no internal locking.
type Cart struct {
	ID     string
	prices menu.PricingTable
	items  []LineItem
}

// New creates an empty cart priced against the given table.
func New(prices menu.PricingTable) *Cart {
	return &Cart{
		ID:     uuid.NewString(),
		prices: prices,
	}
}

// Add validates availability and appends a new line item. It returns
// nil without error when the option is not orderable under the given
// day keys, when the quantity is not positive, or when the size code is
// unknown; the cart is left untouched in all refusal cases. Quantity
// has no upper bound.
func (c *Cart) Add(option menu.Option, dayKey, todayKey string, quantity int, size, removedIngredients, observations string) *LineItem {
	if !menu.IsOrderable(dayKey, todayKey, option) {
		return nil
	}
	if quantity < 1 {
		return nil
	}

	unitPrice, err := c.prices.Price(size)
	if err != nil {
		return nil
	}

	item := LineItem{
		CartID:             uuid.NewString(),
		OptionID:           option.ID,
		Title:              option.Title,
		Description:        option.Description,
		Image:              option.Image,
		Quantity:           quantity,
		Size:               size,
		UnitPrice:          unitPrice,
		TotalPrice:         unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		RemovedIngredients: removedIngredients,
		Observations:       observations,
	}

	c.items = append(c.items, item)
	return &item
}

// Remove deletes the line item with the given cart id. Removal is
// idempotent; unknown ids are a no-op.
func (c *Cart) Remove(cartID string) {
	for i, item := range c.items {
		if item.CartID == cartID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets a new quantity and recomputes the line total.
// A quantity of zero or less removes the item; quantities below one are
// never stored.
func (c *Cart) UpdateQuantity(cartID string, quantity int) {
	if quantity <= 0 {
		c.Remove(cartID)
		return
	}

	for i := range c.items {
		if c.items[i].CartID == cartID {
			c.items[i].Quantity = quantity
			c.items[i].TotalPrice = c.items[i].UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
			return
		}
	}
}

// SetRemovedIngredients edits a line item's removed-ingredients note
// before submission.
func (c *Cart) SetRemovedIngredients(cartID, removedIngredients string) {
	for i := range c.items {
		if c.items[i].CartID == cartID {
			c.items[i].RemovedIngredients = removedIngredients
			return
		}
	}
}

// SetObservations edits a line item's observations before submission.
func (c *Cart) SetObservations(cartID, observations string) {
	for i := range c.items {
		if c.items[i].CartID == cartID {
			c.items[i].Observations = observations
			return
		}
	}
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Len returns the number of line items.
func (c *Cart) Len() int {
	return len(c.items)
}

// Total sums the line totals. Always recomputed, never cached.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.TotalPrice)
	}
	return total
}
