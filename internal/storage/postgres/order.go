package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xenking/shop/internal/storage"
)

const (
	insertOrderSQL = `INSERT INTO orders (id, customer_id, total) VALUES ($1, $2, $3)`

	updateOrderSQL = `UPDATE orders SET customer_id = $2, total = $3 WHERE id = $1`

	getOrderSQL = `SELECT id, customer_id, total FROM orders WHERE id = $1`

	listOrdersSQL = `SELECT id, customer_id, total FROM orders ORDER BY id`

	insertOrderItemSQL = `INSERT INTO order_items (id, order_id, product_id, name, price, quantity, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	deleteOrderItemsSQL = `DELETE FROM order_items WHERE order_id = $1`

	listOrderItemsSQL = `SELECT id, order_id, product_id, name, price, quantity
		FROM order_items WHERE order_id = $1 ORDER BY position`

	listAllOrderItemsSQL = `SELECT id, order_id, product_id, name, price, quantity
		FROM order_items ORDER BY order_id, position`
)

var _ storage.Store[storage.OrderRow] = (*OrderStore)(nil)

// OrderStore implements the orders and order_items tables on PostgreSQL.
// Every write touches both tables inside a single transaction.
type OrderStore struct {
	db *DB
}

// NewOrderStore returns an OrderStore that uses the given DB.
func NewOrderStore(db *DB) *OrderStore {
	return &OrderStore{db: db}
}

// Insert adds the order row and all of its item rows.
func (s *OrderStore) Insert(ctx context.Context, row storage.OrderRow) error {
	return s.db.WithTransaction(ctx, func(ctx context.Context) error {
		q := s.db.querier(ctx)
		if _, err := q.Exec(ctx, insertOrderSQL, row.ID, row.CustomerID, row.Total); err != nil {
			return insertError("order", row.ID, err)
		}
		return insertItems(ctx, q, row)
	})
}

// Update overwrites the order row and replaces its item rows with row.Items.
func (s *OrderStore) Update(ctx context.Context, row storage.OrderRow) error {
	return s.db.WithTransaction(ctx, func(ctx context.Context) error {
		q := s.db.querier(ctx)
		tag, err := q.Exec(ctx, updateOrderSQL, row.ID, row.CustomerID, row.Total)
		if err != nil {
			return fmt.Errorf("updating order %q: %w", row.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("updating order %q: %w", row.ID, storage.ErrNotFound)
		}

		if _, err := q.Exec(ctx, deleteOrderItemsSQL, row.ID); err != nil {
			return fmt.Errorf("deleting items of order %q: %w", row.ID, err)
		}
		return insertItems(ctx, q, row)
	})
}

// Get returns the order row with its items in stored order.
func (s *OrderStore) Get(ctx context.Context, id string) (storage.OrderRow, error) {
	q := s.db.querier(ctx)

	rows, err := q.Query(ctx, getOrderSQL, id)
	if err != nil {
		return storage.OrderRow{}, fmt.Errorf("getting order %q: %w", id, err)
	}
	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		return storage.OrderRow{}, getError("order", id, err)
	}

	rows, err = q.Query(ctx, listOrderItemsSQL, id)
	if err != nil {
		return storage.OrderRow{}, fmt.Errorf("getting items of order %q: %w", id, err)
	}
	o.Items, err = pgx.CollectRows(rows, scanOrderItem)
	if err != nil {
		return storage.OrderRow{}, fmt.Errorf("scanning items of order %q: %w", id, err)
	}
	return o, nil
}

// List returns all orders ordered by id, each with its items loaded.
func (s *OrderStore) List(ctx context.Context) ([]storage.OrderRow, error) {
	q := s.db.querier(ctx)

	rows, err := q.Query(ctx, listOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("scanning orders: %w", err)
	}

	rows, err = q.Query(ctx, listAllOrderItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}
	items, err := pgx.CollectRows(rows, scanOrderItem)
	if err != nil {
		return nil, fmt.Errorf("scanning order items: %w", err)
	}

	return storage.AttachItems(orders, items), nil
}

// insertItems sends all item rows of the order as one batch.
func insertItems(ctx context.Context, q querier, row storage.OrderRow) error {
	b := &pgx.Batch{}
	for i, item := range row.Items {
		b.Queue(insertOrderItemSQL,
			item.ID, row.ID, item.ProductID, item.Name, item.Price, item.Quantity, i,
		)
	}

	results := q.SendBatch(ctx, b)
	for _, item := range row.Items {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return insertError("order item", item.ID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("inserting items of order %q: %w", row.ID, err)
	}
	return nil
}

func scanOrder(row pgx.CollectableRow) (storage.OrderRow, error) {
	var o storage.OrderRow
	err := row.Scan(&o.ID, &o.CustomerID, &o.Total)
	return o, err
}

func scanOrderItem(row pgx.CollectableRow) (storage.OrderItemRow, error) {
	var (
		item     storage.OrderItemRow
		quantity int32
	)
	err := row.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Price, &quantity)
	item.Quantity = int(quantity)
	return item, err
}
