// Package whatsapp renders orders into the text messages sent to the
// vendor's WhatsApp and builds the wa.me deep links that open the chat
// application pre-filled with them.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mesaesabores/mesa-backend/internal/order"
)

// timeLayout mirrors the pt-BR locale rendering used in the customer UI.
const timeLayout = "02/01/2006, 15:04:05"

// Formatter builds order notification messages. It is pure: identical
// input produces a byte-identical message.
type Formatter struct {
	serviceName    string
	vendorWhatsApp string
	pixKey         string
}

// NewFormatter creates a formatter for the given restaurant identity.
func NewFormatter(serviceName, vendorWhatsApp, pixKey string) *Formatter {
	return &Formatter{
		serviceName:    serviceName,
		vendorWhatsApp: vendorWhatsApp,
		pixKey:         pixKey,
	}
}

// Message renders a not-yet-persisted submission, timestamped at the
// given instant. Used at checkout time and as the fallback when the
// order store is unreachable.
func (f *Formatter) Message(sub *order.Submission, at time.Time) string {
	return f.render(sub.Customer.Name, sub.Customer.WhatsApp, sub.Customer.Address,
		sub.Items, sub.TotalPrice.StringFixed(2), sub.PaymentMethod, at)
}

// MessageForOrder renders a previously persisted order using its
// recorded creation time. Shares the itemization with Message so the
// two call sites cannot drift.
func (f *Formatter) MessageForOrder(o *order.Order) string {
	return f.render(o.CustomerName, o.CustomerPhone, o.Address,
		o.Items, o.TotalPrice.StringFixed(2), o.PaymentMethod, o.CreatedAt)
}

// DeepLink wraps a message into a wa.me URL that opens the vendor chat
// pre-filled with it.
func (f *Formatter) DeepLink(message string) string {
	return "https://wa.me/" + f.vendorWhatsApp + "?text=" + url.QueryEscape(message)
}

func (f *Formatter) render(name, whatsapp, address string, items []order.Item, total string, payment order.PaymentMethod, at time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🍽️ *PEDIDO - %s*\n\n", strings.ToUpper(f.serviceName))
	fmt.Fprintf(&b, "👤 *Cliente:* %s\n", name)
	fmt.Fprintf(&b, "📱 *WhatsApp:* %s\n", whatsapp)
	fmt.Fprintf(&b, "📍 *Endereço:* %s\n\n", address)

	b.WriteString("📋 *ITENS DO PEDIDO:*\n")
	writeItems(&b, items)

	fmt.Fprintf(&b, "\n💰 *TOTAL: R$ %s*\n", total)
	fmt.Fprintf(&b, "💳 *Forma de Pagamento:* %s\n\n", payment.DisplayLabel())

	switch payment {
	case order.PaymentPix:
		b.WriteString("*Instruções Pix:*\n")
		fmt.Fprintf(&b, "Chave Pix: %s\n", f.pixKey)
		b.WriteString("Por favor, confirme o pedido e envie o comprovante de pagamento via WhatsApp.\n\n")
	case order.PaymentCreditCard:
		b.WriteString("*Instruções Cartão de Crédito:*\n")
		b.WriteString("O entregador levará a máquina de cartão para pagamento presencial.\n\n")
	}

	fmt.Fprintf(&b, "⏰ Horário do pedido: %s", at.Format(timeLayout))

	return b.String()
}

// writeItems is the single itemization path for both message variants.
func writeItems(b *strings.Builder, items []order.Item) {
	for i, item := range items {
		fmt.Fprintf(b, "\n%d. *%s*\n", i+1, item.Title)
		fmt.Fprintf(b, "   Tamanho: %s - R$ %s\n", item.Size, item.UnitPrice.StringFixed(2))
		fmt.Fprintf(b, "   Quantidade: %d\n", item.Quantity)
		if item.RemovedIngredients != "" {
			fmt.Fprintf(b, "   Retirar: %s\n", item.RemovedIngredients)
		}
		if item.Observations != "" {
			fmt.Fprintf(b, "   Obs: %s\n", item.Observations)
		}
		fmt.Fprintf(b, "   Subtotal: R$ %s\n", item.TotalPrice.StringFixed(2))
	}
}
