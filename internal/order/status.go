package order

import "errors"

var ErrUnknownStatus = errors.New("unknown order status")

// Status is the fulfillment stage of a submitted order.
type Status string

const (
	StatusReceived   Status = "received"
	StatusPaid       Status = "paid"
	StatusPreparing  Status = "preparing"
	StatusReady      Status = "ready"
	StatusDelivering Status = "delivering"
	StatusDelivered  Status = "delivered"
)

// AllStatuses lists every status in canonical fulfillment order.
var AllStatuses = []Status{
	StatusReceived,
	StatusPaid,
	StatusPreparing,
	StatusReady,
	StatusDelivering,
	StatusDelivered,
}

var statusLabels = map[Status]string{
	StatusReceived:   "Pedido Recebido",
	StatusPaid:       "Pagamento Confirmado",
	StatusPreparing:  "Em Preparo",
	StatusReady:      "Pronto para Entrega",
	StatusDelivering: "Saiu para Entrega",
	StatusDelivered:  "Entregue",
}

var statusFlow = map[Status]Status{
	StatusReceived:   StatusPaid,
	StatusPaid:       StatusPreparing,
	StatusPreparing:  StatusReady,
	StatusReady:      StatusDelivering,
	StatusDelivering: StatusDelivered,
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", ErrUnknownStatus
	}
	return s, nil
}

// Valid reports whether the status is one of the six enumerated states.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// DisplayLabel returns the vendor-facing label for the status.
func (s Status) DisplayLabel() string {
	return statusLabels[s]
}

// Next returns the single-step successor in the linear fulfillment
// flow. The second return is false for delivered, the terminal state.
// Direct status assignment (the vendor escape hatch) does not go
// through Next; see Order.SetStatus.
func (s Status) Next() (Status, bool) {
	next, ok := statusFlow[s]
	return next, ok
}
