package product

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/shop/internal/domain"
)

const entityName = "product"

// Product represents a catalog item available for purchase.
type Product struct {
	id    string
	name  string
	price decimal.Decimal
}

// New constructs a Product. The id and name must be non-empty and the price
// must not be negative.
func New(id, name string, price decimal.Decimal) (*Product, error) {
	p := &Product{id: id, name: name, price: price}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Create constructs a Product with a freshly generated id.
func Create(name string, price decimal.Decimal) (*Product, error) {
	return New(uuid.New().String(), name, price)
}

func (p *Product) validate() error {
	if p.id == "" {
		return domain.NewValidationError(entityName, "id", "Id is required")
	}
	if err := validateName(p.name); err != nil {
		return err
	}
	return validatePrice(p.price)
}

func validateName(name string) error {
	if name == "" {
		return domain.NewValidationError(entityName, "name", "Name is required")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.NewValidationError(entityName, "price", "Price must be greater or equal than zero")
	}
	return nil
}

func (p *Product) ID() string             { return p.id }
func (p *Product) Name() string           { return p.name }
func (p *Product) Price() decimal.Decimal { return p.price }

// ChangeName renames the product.
func (p *Product) ChangeName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	p.name = name
	return nil
}

// ChangePrice sets a new price. Negative prices are rejected.
func (p *Product) ChangePrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	p.price = price
	return nil
}

// Equal reports whether both products hold the same field values.
func (p *Product) Equal(other *Product) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.id == other.id && p.name == other.name && p.price.Equal(other.price)
}

// Repository defines persistence operations for the product catalog.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Find(ctx context.Context, id string) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
}
