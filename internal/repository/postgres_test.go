package repository

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mesaesabores/mesa-backend/internal/order"
)

// openTestPostgres connects to the database named by TEST_DATABASE_URL,
// or skips the test when it is not set.
func openTestPostgres(t *testing.T) *PostgresOrderRepository {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	repo, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("OpenPostgres: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestPostgresItemsKeepInsertionOrder(t *testing.T) {
	repo := openTestPostgres(t)
	ctx := context.Background()

	// Enough items that an id-ordered read would almost certainly
	// scramble them; titles encode the expected position.
	var items []order.Item
	for i := 0; i < 12; i++ {
		items = append(items, order.Item{
			Title:      fmt.Sprintf("Opção %02d", i+1),
			Size:       "M",
			Quantity:   1,
			UnitPrice:  decimal.RequireFromString("20.00"),
			TotalPrice: decimal.RequireFromString("20.00"),
		})
	}

	o := &order.Order{
		CustomerName:  "Maria Silva",
		CustomerPhone: "32984210000",
		Address:       "Rua das Flores, 100",
		PaymentMethod: order.PaymentPix,
		Items:         items,
		TotalPrice:    decimal.RequireFromString("240.00"),
		Status:        order.StatusReceived,
	}
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("Create: %v", err)
	}

	stored, err := repo.GetByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if len(stored.Items) != len(items) {
		t.Fatalf("items = %d, want %d", len(stored.Items), len(items))
	}
	for i, it := range stored.Items {
		if want := fmt.Sprintf("Opção %02d", i+1); it.Title != want {
			t.Errorf("item %d title = %s, want %s", i, it.Title, want)
		}
	}
}
