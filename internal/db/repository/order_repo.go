package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tastyhub/ordering-service/internal/models"
)

// OrderRepository handles order data access
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query := `
		SELECT id, customer_name, customer_phone, customer_note, total_amount, status, created_at
		FROM orders
		WHERE id = $1
	`

	var order models.Order
	err := r.db.GetContext(ctx, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	lines, err := r.getLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	order.SetTimestamp()

	return &order, nil
}

// getLines retrieves the line items for an order in submission order
func (r *OrderRepository) getLines(ctx context.Context, orderID string) ([]models.OrderLine, error) {
	query := `
		SELECT name, price, quantity
		FROM order_lines
		WHERE order_id = $1
		ORDER BY position ASC
	`

	var lines []models.OrderLine
	err := r.db.SelectContext(ctx, &lines, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}

	return lines, nil
}

// List retrieves orders, newest first, with their line items
func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	query := `
		SELECT id, customer_name, customer_phone, customer_note, total_amount, status, created_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT 200
	`

	var orders []models.Order
	err := r.db.SelectContext(ctx, &orders, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	for i := range orders {
		lines, err := r.getLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
		orders[i].SetTimestamp()
	}

	return orders, nil
}

// Create inserts an order and its lines in a single transaction
func (r *OrderRepository) Create(ctx context.Context, order models.Order) (*models.Order, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		INSERT INTO orders (customer_name, customer_phone, customer_note, total_amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, customer_name, customer_phone, customer_note, total_amount, status, created_at
	`

	var created models.Order
	err = tx.GetContext(
		ctx,
		&created,
		query,
		order.CustomerName,
		order.CustomerPhone,
		order.CustomerNote,
		order.TotalAmount,
		order.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for i, line := range order.Lines {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO order_lines (order_id, name, price, quantity, position) VALUES ($1, $2, $3, $4, $5)`,
			created.ID, line.Name, line.Price, line.Quantity, i,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create order line: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	created.Lines = order.Lines
	created.SetTimestamp()

	return &created, nil
}

// UpdateStatus sets the status of an order and returns the updated order
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	query := `
		UPDATE orders
		SET status = $1
		WHERE id = $2
		RETURNING id, customer_name, customer_phone, customer_note, total_amount, status, created_at
	`

	var updated models.Order
	err := r.db.GetContext(ctx, &updated, query, status, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	lines, err := r.getLines(ctx, updated.ID)
	if err != nil {
		return nil, err
	}
	updated.Lines = lines
	updated.SetTimestamp()

	return &updated, nil
}
