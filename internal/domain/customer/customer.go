// Package customer models shop customers: the Customer entity, its Address
// value, creation events and the application service that registers them.
package customer

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xenking/shop/internal/domain"
)

const entityName = "customer"

// Customer is a shop customer. Fields are only mutated through methods that
// keep the invariants: non-empty id and name, and an address before activation.
type Customer struct {
	id           string
	name         string
	address      *Address
	active       bool
	rewardPoints decimal.Decimal
}

// New constructs an active customer without an address.
func New(id, name string) (*Customer, error) {
	c := &Customer{
		id:           id,
		name:         name,
		active:       true,
		rewardPoints: decimal.Zero,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Customer) validate() error {
	if c.id == "" {
		return domain.NewValidationError(entityName, "id", "Id is required")
	}
	return validateName(c.name)
}

func validateName(name string) error {
	if name == "" {
		return domain.NewValidationError(entityName, "name", "Name is required")
	}
	return nil
}

func (c *Customer) ID() string   { return c.id }
func (c *Customer) Name() string { return c.name }

// Address returns the customer's address and whether one is set.
func (c *Customer) Address() (Address, bool) {
	if c.address == nil {
		return Address{}, false
	}
	return *c.address, true
}

func (c *Customer) IsActive() bool                { return c.active }
func (c *Customer) RewardPoints() decimal.Decimal { return c.rewardPoints }

// Rename changes the customer's name.
func (c *Customer) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	c.name = name
	return nil
}

// ChangeAddress replaces the customer's address.
func (c *Customer) ChangeAddress(a Address) {
	c.address = &a
}

// Activate marks the customer active. An address must be set first.
func (c *Customer) Activate() error {
	if c.address == nil {
		return domain.NewValidationError(entityName, "address", "Address is mandatory to activate a customer")
	}
	c.active = true
	return nil
}

// Deactivate marks the customer inactive.
func (c *Customer) Deactivate() {
	c.active = false
}

// AddRewardPoints accrues points. The amount is not validated; callers are
// expected to pass non-negative values.
func (c *Customer) AddRewardPoints(points decimal.Decimal) {
	c.rewardPoints = c.rewardPoints.Add(points)
}

// Equal reports whether both customers hold the same field values.
func (c *Customer) Equal(other *Customer) bool {
	if c == nil || other == nil {
		return c == other
	}
	a, aok := c.Address()
	b, bok := other.Address()
	return c.id == other.id &&
		c.name == other.name &&
		aok == bok && a == b &&
		c.active == other.active &&
		c.rewardPoints.Equal(other.rewardPoints)
}

// State is a plain snapshot of a Customer, used by persistence adapters to
// store and rebuild the entity.
type State struct {
	ID           string
	Name         string
	Address      *Address
	Active       bool
	RewardPoints decimal.Decimal
}

// State returns a snapshot of the customer's fields.
func (c *Customer) State() State {
	s := State{
		ID:           c.id,
		Name:         c.name,
		Active:       c.active,
		RewardPoints: c.rewardPoints,
	}
	if c.address != nil {
		a := *c.address
		s.Address = &a
	}
	return s
}

// Restore rebuilds a Customer from a stored snapshot. The id and name are
// validated; the active flag is taken as stored.
func Restore(s State) (*Customer, error) {
	c := &Customer{
		id:           s.ID,
		name:         s.Name,
		active:       s.Active,
		rewardPoints: s.RewardPoints,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	if s.Address != nil {
		c.ChangeAddress(*s.Address)
	}
	return c, nil
}

// Repository defines persistence operations for customers.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	Find(ctx context.Context, id string) (*Customer, error)
	FindAll(ctx context.Context) ([]*Customer, error)
}
