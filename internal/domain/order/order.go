package order

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/xenking/shop/internal/domain"
	"github.com/xenking/shop/internal/domain/product"
)

// Item is a single order line. Name and price are a snapshot of the product
// taken when the line was created; the product is only referenced by id.
type Item struct {
	id        string
	name      string
	price     decimal.Decimal
	productID string
	quantity  int
}

// NewItem constructs an order line. Quantity must be positive and price must
// not be negative.
func NewItem(id, name string, price decimal.Decimal, productID string, quantity int) (Item, error) {
	if quantity <= 0 {
		return Item{}, domain.NewValidationError("order item", "quantity", "Quantity must be greater than 0")
	}
	if price.IsNegative() {
		return Item{}, domain.NewValidationError("order item", "price", "Price must be greater or equal than zero")
	}
	return Item{
		id:        id,
		name:      name,
		price:     price,
		productID: productID,
		quantity:  quantity,
	}, nil
}

// NewItemFor constructs an order line copying the product's current name and price.
func NewItemFor(id string, p *product.Product, quantity int) (Item, error) {
	return NewItem(id, p.Name(), p.Price(), p.ID(), quantity)
}

func (i Item) ID() string             { return i.id }
func (i Item) Name() string           { return i.name }
func (i Item) Price() decimal.Decimal { return i.price }
func (i Item) ProductID() string      { return i.productID }
func (i Item) Quantity() int          { return i.quantity }

// LineTotal returns price × quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// Equal reports whether both items hold the same field values.
func (i Item) Equal(other Item) bool {
	return i.id == other.id &&
		i.name == other.name &&
		i.price.Equal(other.price) &&
		i.productID == other.productID &&
		i.quantity == other.quantity
}

// Order is the aggregate root owning its items. It always holds at least one item.
type Order struct {
	id         string
	customerID string
	items      []Item
}

// New constructs an Order. At least one item is required.
func New(id, customerID string, items []Item) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	return &Order{
		id:         id,
		customerID: customerID,
		items:      slices.Clone(items),
	}, nil
}

func (o *Order) ID() string         { return o.id }
func (o *Order) CustomerID() string { return o.customerID }

// Items returns a copy of the order lines in insertion order.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// AddItem appends a line to the order.
func (o *Order) AddItem(item Item) {
	o.items = append(o.items, item)
}

// Total returns the sum of all line totals.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Equal reports whether both orders hold the same fields and the same items
// in the same order.
func (o *Order) Equal(other *Order) bool {
	if o == nil || other == nil {
		return o == other
	}
	return o.id == other.id &&
		o.customerID == other.customerID &&
		slices.EqualFunc(o.items, other.items, Item.Equal)
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	Find(ctx context.Context, id string) (*Order, error)
	FindAll(ctx context.Context) ([]*Order, error)
}
