package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mesaesabores/mesa-backend/internal/order"
)

func testOrder(status order.Status, createdAt time.Time) *order.Order {
	return &order.Order{
		CustomerName:  "Maria Silva",
		CustomerPhone: "32984210000",
		Address:       "Rua das Flores, 100",
		PaymentMethod: order.PaymentPix,
		Items: []order.Item{
			{Title: "Opção 01", Size: "M", Quantity: 2,
				UnitPrice: decimal.RequireFromString("20.00"), TotalPrice: decimal.RequireFromString("40.00")},
		},
		TotalPrice: decimal.RequireFromString("40.00"),
		Status:     status,
		CreatedAt:  createdAt,
	}
}

func TestCreateAssignsIDAndTime(t *testing.T) {
	repo := NewInMemoryOrderRepository()
	ctx := context.Background()

	o := testOrder(order.StatusReceived, time.Time{})
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("create: %v", err)
	}

	if o.ID == "" {
		t.Error("expected id to be assigned")
	}
	if o.CreatedAt.IsZero() {
		t.Error("expected created_at to be assigned")
	}

	got, err := repo.GetByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CustomerName != "Maria Silva" {
		t.Errorf("unexpected customer %q", got.CustomerName)
	}
	if len(got.Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(got.Items))
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := NewInMemoryOrderRepository()

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestListNewestFirstAndFiltered(t *testing.T) {
	repo := NewInMemoryOrderRepository()
	ctx := context.Background()

	base := time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)
	oldest := testOrder(order.StatusReceived, base)
	middle := testOrder(order.StatusPaid, base.Add(time.Minute))
	newest := testOrder(order.StatusReceived, base.Add(2*time.Minute))

	for _, o := range []*order.Order{oldest, middle, newest} {
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(all))
	}
	if all[0].ID != newest.ID || all[2].ID != oldest.ID {
		t.Error("orders are not newest first")
	}

	received, err := repo.List(ctx, order.StatusReceived)
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(received) != 2 {
		t.Fatalf("expected 2 received orders, got %d", len(received))
	}
	for _, o := range received {
		if o.Status != order.StatusReceived {
			t.Errorf("filter leaked status %s", o.Status)
		}
	}
}

func TestCountByStatus(t *testing.T) {
	repo := NewInMemoryOrderRepository()
	ctx := context.Background()

	now := time.Now().UTC()
	for i, status := range []order.Status{order.StatusReceived, order.StatusReceived, order.StatusDelivered} {
		if err := repo.Create(ctx, testOrder(status, now.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts[order.StatusReceived] != 2 {
		t.Errorf("received = %d, want 2", counts[order.StatusReceived])
	}
	if counts[order.StatusDelivered] != 1 {
		t.Errorf("delivered = %d, want 1", counts[order.StatusDelivered])
	}
	if counts[order.StatusPreparing] != 0 {
		t.Errorf("preparing = %d, want 0", counts[order.StatusPreparing])
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := NewInMemoryOrderRepository()
	ctx := context.Background()

	o := testOrder(order.StatusReceived, time.Now().UTC())
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.UpdateStatus(ctx, o.ID, order.StatusPaid); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != order.StatusPaid {
		t.Errorf("status = %s, want paid", got.Status)
	}

	if err := repo.UpdateStatus(ctx, "missing", order.StatusPaid); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("unknown id err = %v, want ErrOrderNotFound", err)
	}
	if err := repo.UpdateStatus(ctx, o.ID, "cancelled"); !errors.Is(err, order.ErrUnknownStatus) {
		t.Errorf("invalid status err = %v, want ErrUnknownStatus", err)
	}

	// Failed update must not change the stored status.
	got, _ = repo.GetByID(ctx, o.ID)
	if got.Status != order.StatusPaid {
		t.Errorf("status changed to %s after failed update", got.Status)
	}
}

func TestStoredOrdersAreIsolatedCopies(t *testing.T) {
	repo := NewInMemoryOrderRepository()
	ctx := context.Background()

	o := testOrder(order.StatusReceived, time.Now().UTC())
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Mutating the caller's copy or a read result must not leak into the store.
	o.Items[0].Quantity = 99
	read, _ := repo.GetByID(ctx, o.ID)
	read.Items[0].Quantity = 77

	got, _ := repo.GetByID(ctx, o.ID)
	if got.Items[0].Quantity != 2 {
		t.Errorf("stored quantity mutated to %d", got.Items[0].Quantity)
	}
}
