package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mesaesabores/mesa-backend/internal/order"
	"github.com/mesaesabores/mesa-backend/internal/whatsapp"
)

// OrderRepository is the slice of the order store this service needs.
type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	GetByID(ctx context.Context, id string) (*order.Order, error)
	List(ctx context.Context, status order.Status) ([]order.Order, error)
	CountByStatus(ctx context.Context) (map[order.Status]int, error)
	UpdateStatus(ctx context.Context, id string, status order.Status) error
}

// OrderService handles order intake, vendor status transitions and
// notification lookups.
type OrderService struct {
	repo      OrderRepository
	formatter *whatsapp.Formatter
	now       func() time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(repo OrderRepository, formatter *whatsapp.Formatter) *OrderService {
	return &OrderService{
		repo:      repo,
		formatter: formatter,
		now:       time.Now,
	}
}

// CreateResult is the outcome of an order submission. Message and
// WhatsAppURL are always populated; when Notified is false the store
// rejected the order and the caller should fall back to opening the
// deep link manually.
type CreateResult struct {
	OrderID     string
	Message     string
	WhatsAppURL string
	Notified    bool
}

// Create persists a validated submission and builds the vendor
// notification. On store failure the submission is not lost: the
// result still carries the formatted message and deep link, alongside
// the error.
func (s *OrderService) Create(ctx context.Context, sub *order.Submission) (*CreateResult, error) {
	o := order.FromSubmission(sub)
	o.CreatedAt = s.now().UTC()

	if err := s.repo.Create(ctx, o); err != nil {
		message := s.formatter.Message(sub, o.CreatedAt)
		return &CreateResult{
			Message:     message,
			WhatsAppURL: s.formatter.DeepLink(message),
			Notified:    false,
		}, fmt.Errorf("create order: %w", err)
	}

	message := s.formatter.MessageForOrder(o)
	return &CreateResult{
		OrderID:     o.ID,
		Message:     message,
		WhatsAppURL: s.formatter.DeepLink(message),
		Notified:    true,
	}, nil
}

// Get returns a single order.
func (s *OrderService) Get(ctx context.Context, id string) (*order.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns orders newest first. statusFilter may be empty (all) or
// one of the six statuses.
func (s *OrderService) List(ctx context.Context, statusFilter string) ([]order.Order, error) {
	var status order.Status
	if statusFilter != "" {
		parsed, err := order.ParseStatus(statusFilter)
		if err != nil {
			return nil, err
		}
		status = parsed
	}
	return s.repo.List(ctx, status)
}

// StatusCount pairs an order count with the status display label.
type StatusCount struct {
	Count int    `json:"count"`
	Label string `json:"label"`
}

// Stats returns per-status aggregates for the vendor dashboard. Every
// status appears, zero-filled when it has no orders.
func (s *OrderService) Stats(ctx context.Context) (map[order.Status]StatusCount, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	stats := make(map[order.Status]StatusCount, len(order.AllStatuses))
	for _, status := range order.AllStatuses {
		stats[status] = StatusCount{
			Count: counts[status],
			Label: status.DisplayLabel(),
		}
	}
	return stats, nil
}

// SetStatus assigns any of the six statuses directly, regardless of the
// current one. This is the vendor escape hatch around the linear flow;
// use Advance for the canonical single-step transition.
func (s *OrderService) SetStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	if !status.Valid() {
		return nil, order.ErrUnknownStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Advance moves the order one step along the canonical flow. Delivered
// orders cannot advance.
func (s *OrderService) Advance(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, ok := o.Status.Next()
	if !ok {
		return nil, order.ErrAlreadyDelivered
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// NotificationMessage rebuilds the WhatsApp message for a persisted
// order, for vendor-triggered re-notification.
func (s *OrderService) NotificationMessage(ctx context.Context, id string) (message, deepLink string, err error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", "", err
	}

	message = s.formatter.MessageForOrder(o)
	return message, s.formatter.DeepLink(message), nil
}
