package customer

import (
	"context"
	"fmt"
	"time"

	"github.com/xenking/shop/internal/event"
)

// Notifier receives customer events. Delivery is fire-and-forget: the
// Service never observes handler failures.
type Notifier interface {
	Notify(ctx context.Context, e event.Event)
}

// Service registers customers and dispatches their lifecycle events.
type Service struct {
	customers Repository
	notifier  Notifier
	now       func() time.Time
}

// NewService creates a customer Service backed by the given repository.
func NewService(customers Repository, notifier Notifier) *Service {
	return &Service{
		customers: customers,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Register creates a customer with a generated id, attaching addr when it is
// non-nil, persists it and dispatches a CreatedEvent.
func (s *Service) Register(ctx context.Context, name string, addr *Address) (*Customer, error) {
	var (
		c   *Customer
		err error
	)
	if addr != nil {
		c, err = CreateWithAddress(name, *addr)
	} else {
		c, err = Create(name)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Add(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Add persists an already constructed customer and dispatches a CreatedEvent.
func (s *Service) Add(ctx context.Context, c *Customer) error {
	if err := s.customers.Create(ctx, c); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	s.notifier.Notify(ctx, NewCreatedEvent(c, s.now()))
	return nil
}

// ChangeAddress moves a stored customer to a new address and dispatches an
// AddressChangedEvent.
func (s *Service) ChangeAddress(ctx context.Context, id string, addr Address) (*Customer, error) {
	c, err := s.customers.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}

	c.ChangeAddress(addr)
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}

	s.notifier.Notify(ctx, NewAddressChangedEvent(c, s.now()))
	return c, nil
}
