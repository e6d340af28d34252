package repository

import (
	"context"

	"github.com/xenking/shop/internal/domain/order"
	"github.com/xenking/shop/internal/storage"
)

const orderEntity = "order"

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository over the orders and
// order_items tables. An order and its items are always written together.
type OrderRepository struct {
	store storage.Store[storage.OrderRow]
	in    *instruments
}

// NewOrderRepository returns an OrderRepository backed by store.
func NewOrderRepository(store storage.Store[storage.OrderRow], opts ...Option) (*OrderRepository, error) {
	in, err := newInstruments(orderEntity, opts)
	if err != nil {
		return nil, err
	}
	return &OrderRepository{store: store, in: in}, nil
}

// Create stores the order row with its computed total and every item row.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) (err error) {
	ctx, done := r.in.start(ctx, "OrderRepository.Create", "create")
	defer func() { err = done(err) }()

	if err := r.store.Insert(ctx, orderToRow(o)); err != nil {
		return translate(orderEntity, "create", o.ID(), err)
	}
	return nil
}

// Update rewrites the order row and replaces the stored items with the
// current item list.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) (err error) {
	ctx, done := r.in.start(ctx, "OrderRepository.Update", "update")
	defer func() { err = done(err) }()

	if err := r.store.Update(ctx, orderToRow(o)); err != nil {
		return translate(orderEntity, "update", o.ID(), err)
	}
	return nil
}

func (r *OrderRepository) Find(ctx context.Context, id string) (_ *order.Order, err error) {
	ctx, done := r.in.start(ctx, "OrderRepository.Find", "find")
	defer func() { err = done(err) }()

	row, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, translate(orderEntity, "find", id, err)
	}
	o, err := orderFromRow(row)
	if err != nil {
		return nil, translate(orderEntity, "find", id, err)
	}
	return o, nil
}

func (r *OrderRepository) FindAll(ctx context.Context) (_ []*order.Order, err error) {
	ctx, done := r.in.start(ctx, "OrderRepository.FindAll", "find_all")
	defer func() { err = done(err) }()

	rows, err := r.store.List(ctx)
	if err != nil {
		return nil, translate(orderEntity, "find_all", "", err)
	}

	orders := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		o, err := orderFromRow(row)
		if err != nil {
			return nil, translate(orderEntity, "find_all", row.ID, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func orderToRow(o *order.Order) storage.OrderRow {
	items := o.Items()
	row := storage.OrderRow{
		ID:         o.ID(),
		CustomerID: o.CustomerID(),
		Total:      o.Total(),
		Items:      make([]storage.OrderItemRow, 0, len(items)),
	}
	for _, item := range items {
		row.Items = append(row.Items, storage.OrderItemRow{
			ID:        item.ID(),
			OrderID:   o.ID(),
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Price:     item.Price(),
			Quantity:  item.Quantity(),
		})
	}
	return row
}

func orderFromRow(row storage.OrderRow) (*order.Order, error) {
	items := make([]order.Item, 0, len(row.Items))
	for _, r := range row.Items {
		item, err := order.NewItem(r.ID, r.Name, r.Price, r.ProductID, r.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return order.New(row.ID, row.CustomerID, items)
}
