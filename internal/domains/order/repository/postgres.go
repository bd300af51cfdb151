package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/order/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// NextOrderNumber implements RepositoryInterface.NextOrderNumber
// One counter row per calendar day; the upsert increment is atomic, so
// concurrent placements get distinct values.
func (r *postgresRepository) NextOrderNumber(ctx context.Context, day time.Time) (int, error) {
	query := `
		INSERT INTO order_counters (day, count)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET count = order_counters.count + 1
		RETURNING count
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, day.Format("2006-01-02")).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to advance order counter: %w", err)
	}
	return count, nil
}

// CreateOrder implements RepositoryInterface.CreateOrder
func (r *postgresRepository) CreateOrder(ctx context.Context, order *model.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin order create: %w", err)
	}
	defer tx.Rollback(ctx)

	insertOrder := `
		INSERT INTO orders (
			id, order_number, user_id,
			full_name, email, phone, full_address,
			currency, subtotal_base, subtotal, delivery_fee, total, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	if err := tx.QueryRow(ctx, insertOrder,
		order.ID,
		order.OrderNumber,
		order.UserID,
		order.Customer.FullName,
		order.Customer.Email,
		order.Customer.Phone,
		order.Customer.FullAddress,
		order.Currency,
		order.SubtotalBase,
		order.Subtotal,
		order.DeliveryFee,
		order.Total,
		order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	insertItem := `
		INSERT INTO order_items (
			id, order_id, slug, product_name, variant_id, size_id,
			color, size_name, quantity, price, subtotal
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if _, err := tx.Exec(ctx, insertItem,
			item.ID,
			item.OrderID,
			item.Slug,
			item.ProductName,
			item.VariantID,
			item.SizeID,
			item.Color,
			item.Size,
			item.Quantity,
			item.Price,
			item.Subtotal,
		); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order create: %w", err)
	}

	return nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `
		SELECT id, order_number, user_id,
		       full_name, email, phone, full_address,
		       currency, subtotal_base, subtotal, delivery_fee, total,
		       status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order model.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.UserID,
		&order.Customer.FullName,
		&order.Customer.Email,
		&order.Customer.Phone,
		&order.Customer.FullAddress,
		&order.Currency,
		&order.SubtotalBase,
		&order.Subtotal,
		&order.DeliveryFee,
		&order.Total,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *postgresRepository) loadItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `
		SELECT id, order_id, slug, product_name, variant_id, size_id,
		       color, size_name, quantity, price, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.Slug,
			&item.ProductName,
			&item.VariantID,
			&item.SizeID,
			&item.Color,
			&item.Size,
			&item.Quantity,
			&item.Price,
			&item.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}

	return items, nil
}

// ListByUser implements RepositoryInterface.ListByUser
func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	query := `
		SELECT id, order_number, user_id,
		       full_name, email, phone, full_address,
		       currency, subtotal_base, subtotal, delivery_fee, total,
		       status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var order model.Order
		if err := rows.Scan(
			&order.ID,
			&order.OrderNumber,
			&order.UserID,
			&order.Customer.FullName,
			&order.Customer.Email,
			&order.Customer.Phone,
			&order.Customer.FullAddress,
			&order.Currency,
			&order.SubtotalBase,
			&order.Subtotal,
			&order.DeliveryFee,
			&order.Total,
			&order.Status,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	return orders, nil
}
