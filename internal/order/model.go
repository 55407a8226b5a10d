package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer chose to pay. Payment is recorded,
// never executed by this system.
type PaymentMethod string

const (
	PaymentPix        PaymentMethod = "pix"
	PaymentCreditCard PaymentMethod = "credit_card"
)

// Valid reports whether the payment method is one of the accepted values.
func (m PaymentMethod) Valid() bool {
	return m == PaymentPix || m == PaymentCreditCard
}

// DisplayLabel returns the customer-facing label. Unknown methods
// render as their raw value.
func (m PaymentMethod) DisplayLabel() string {
	switch m {
	case PaymentPix:
		return "Pix"
	case PaymentCreditCard:
		return "Cartão de Crédito"
	default:
		return string(m)
	}
}

// Customer holds the contact data required for delivery.
type Customer struct {
	Name     string `json:"customer_name"`
	WhatsApp string `json:"customer_whatsapp"`
	Address  string `json:"customer_address"`
}

// Item is one order line as recorded at submission time.
type Item struct {
	OptionID           string          `json:"optionId,omitempty"`
	Title              string          `json:"title"`
	Size               string          `json:"size"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"price"`
	TotalPrice         decimal.Decimal `json:"totalPrice"`
	RemovedIngredients string          `json:"removedIngredients,omitempty"`
	Observations       string          `json:"observations,omitempty"`
}

// Submission is the immutable payload handed to the order store. Build
// one through NewSubmission or Assemble; the total is always recomputed
// from the items.
type Submission struct {
	Customer      Customer        `json:"customer"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Items         []Item          `json:"items"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

// Order is the server-side projection read back by the vendor views.
// Status is the only field the vendor may change; CreatedAt and ID are
// assigned by the store and immutable.
type Order struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_whatsapp"`
	Address       string          `json:"customer_address"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Items         []Item          `json:"items"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

var (
	ErrEmptyCart        = errors.New("cart has no items")
	ErrMissingName      = errors.New("customer name is required")
	ErrMissingWhatsApp  = errors.New("customer whatsapp is required")
	ErrMissingAddress   = errors.New("customer address is required")
	ErrMissingPayment   = errors.New("payment method is required")
	ErrOrderNotFound    = errors.New("order not found")
	ErrAlreadyDelivered = errors.New("order is already delivered")
)

// FromSubmission builds the stored order record. ID and CreatedAt are
// filled by the repository on create.
func FromSubmission(sub *Submission) *Order {
	items := make([]Item, len(sub.Items))
	copy(items, sub.Items)

	return &Order{
		CustomerName:  sub.Customer.Name,
		CustomerPhone: sub.Customer.WhatsApp,
		Address:       sub.Customer.Address,
		PaymentMethod: sub.PaymentMethod,
		Items:         items,
		TotalPrice:    sub.TotalPrice,
		Status:        StatusReceived,
	}
}
