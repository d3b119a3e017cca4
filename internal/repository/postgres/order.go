package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/pkg/database"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
)

const orderColumns = `id, user_name, items, total, status, shipping_address, payment_id, created_at, updated_at`

// OrderRepository implements repository.OrderRepository using PostgreSQL.
// Order lines are stored as a JSONB snapshot.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts a new order into the database.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (err error) {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	ctx, end := database.TraceQuery(ctx, "CreateOrder", query)
	defer func() { end(err) }()

	_, err = r.pool.Exec(ctx, query,
		o.ID,
		o.User,
		itemsJSON,
		o.Total,
		o.Status,
		o.ShippingAddress,
		o.PaymentID,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (_ *domain.Order, err error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetOrder", query)
	defer func() { end(err) }()

	o, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	return o, nil
}

// List returns all orders, newest first.
func (r *OrderRepository) List(ctx context.Context) (_ []domain.Order, err error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC, id DESC`

	ctx, end := database.TraceQuery(ctx, "ListOrders", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

// Update writes the mutable fields of an order.
func (r *OrderRepository) Update(ctx context.Context, o *domain.Order) (err error) {
	query := `
		UPDATE orders
		SET status = $1, shipping_address = $2, payment_id = $3, updated_at = $4
		WHERE id = $5`

	ctx, end := database.TraceQuery(ctx, "UpdateOrder", query)
	defer func() { end(err) }()

	ct, err := r.pool.Exec(ctx, query,
		o.Status,
		o.ShippingAddress,
		o.PaymentID,
		o.UpdatedAt,
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", o.ID)
	}

	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o         domain.Order
		itemsJSON []byte
	)
	if err := row.Scan(
		&o.ID,
		&o.User,
		&itemsJSON,
		&o.Total,
		&o.Status,
		&o.ShippingAddress,
		&o.PaymentID,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}

	o.Items = []domain.OrderItem{}
	if itemsJSON != nil {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
	}

	return &o, nil
}
