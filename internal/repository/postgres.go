package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/mesaesabores/mesa-backend/internal/order"
)

// Schema holds the bootstrap SQL for local development and tests.
//
//go:embed schema.sql
var Schema string

// PostgresOrderRepository implements OrderRepository backed by Postgres.
type PostgresOrderRepository struct {
	db *sql.DB
}

// OpenPostgres opens and verifies a Postgres connection, then ensures
// the schema exists.
func OpenPostgres(dsn string) (*PostgresOrderRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &PostgresOrderRepository{db: db}, nil
}

// NewPostgresOrderRepository wraps an existing connection.
func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// Close releases the underlying connection pool.
func (r *PostgresOrderRepository) Close() error {
	return r.db.Close()
}

// Create inserts the order and its items in one transaction.
func (r *PostgresOrderRepository) Create(ctx context.Context, o *order.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, customer_name, customer_whatsapp, customer_address, payment_method, total_price, status, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.CustomerName, o.CustomerPhone, o.Address, string(o.PaymentMethod), o.TotalPrice, string(o.Status), o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	// position fixes the display order; item ids are random and carry
	// no ordering.
	for i, it := range o.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, position, option_id, title, size, quantity, unit_price, total_price, removed_ingredients, observations)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			uuid.NewString(), o.ID, i, it.OptionID, it.Title, it.Size, it.Quantity, it.UnitPrice, it.TotalPrice, it.RemovedIngredients, it.Observations,
		)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetByID returns the order or order.ErrOrderNotFound.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	var o order.Order
	var payment, status string

	err := r.db.QueryRowContext(ctx,
		`SELECT id, customer_name, customer_whatsapp, customer_address, payment_method, total_price, status, created_at
         FROM orders WHERE id = $1`,
		id,
	).Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.Address, &payment, &o.TotalPrice, &status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}
	o.PaymentMethod = order.PaymentMethod(payment)
	o.Status = order.Status(status)

	items, err := r.itemsFor(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

// List returns orders newest first, optionally filtered by status.
func (r *PostgresOrderRepository) List(ctx context.Context, status order.Status) ([]order.Order, error) {
	query := `SELECT id, customer_name, customer_whatsapp, customer_address, payment_method, total_price, status, created_at
              FROM orders`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		var o order.Order
		var payment, st string
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.Address, &payment, &o.TotalPrice, &st, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.PaymentMethod = order.PaymentMethod(payment)
		o.Status = order.Status(st)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	for i := range orders {
		items, err := r.itemsFor(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// CountByStatus returns the number of orders per status.
func (r *PostgresOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM orders GROUP BY status`,
	)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	defer rows.Close()

	counts := make(map[order.Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[order.Status(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return counts, nil
}

// UpdateStatus sets the stored status; the database row is untouched on
// failure and unknown ids return order.ErrOrderNotFound.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	if !status.Valid() {
		return order.ErrUnknownStatus
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

func (r *PostgresOrderRepository) itemsFor(ctx context.Context, orderID string) ([]order.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT option_id, title, size, quantity, unit_price, total_price, removed_ingredients, observations
         FROM order_items WHERE order_id = $1 ORDER BY position`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	var items []order.Item
	for rows.Next() {
		var it order.Item
		if err := rows.Scan(&it.OptionID, &it.Title, &it.Size, &it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.RemovedIngredients, &it.Observations); err != nil {
			return nil, fmt.Errorf("scan order_item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return items, nil
}
