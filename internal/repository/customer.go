package repository

import (
	"context"

	"github.com/xenking/shop/internal/domain/customer"
	"github.com/xenking/shop/internal/storage"
)

const customerEntity = "customer"

var _ customer.Repository = (*CustomerRepository)(nil)

// CustomerRepository implements customer.Repository over the customers table.
type CustomerRepository struct {
	store storage.Store[storage.CustomerRow]
	in    *instruments
}

// NewCustomerRepository returns a CustomerRepository backed by store.
func NewCustomerRepository(store storage.Store[storage.CustomerRow], opts ...Option) (*CustomerRepository, error) {
	in, err := newInstruments(customerEntity, opts)
	if err != nil {
		return nil, err
	}
	return &CustomerRepository{store: store, in: in}, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) (err error) {
	ctx, done := r.in.start(ctx, "CustomerRepository.Create", "create")
	defer func() { err = done(err) }()

	if err := r.store.Insert(ctx, customerToRow(c)); err != nil {
		return translate(customerEntity, "create", c.ID(), err)
	}
	return nil
}

// Update overwrites the stored customer. A missing id yields a
// *domain.NotFoundError.
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) (err error) {
	ctx, done := r.in.start(ctx, "CustomerRepository.Update", "update")
	defer func() { err = done(err) }()

	if err := r.store.Update(ctx, customerToRow(c)); err != nil {
		return translate(customerEntity, "update", c.ID(), err)
	}
	return nil
}

func (r *CustomerRepository) Find(ctx context.Context, id string) (_ *customer.Customer, err error) {
	ctx, done := r.in.start(ctx, "CustomerRepository.Find", "find")
	defer func() { err = done(err) }()

	row, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, translate(customerEntity, "find", id, err)
	}
	c, err := customerFromRow(row)
	if err != nil {
		return nil, translate(customerEntity, "find", id, err)
	}
	return c, nil
}

// FindAll returns every stored customer ordered by id.
func (r *CustomerRepository) FindAll(ctx context.Context) (_ []*customer.Customer, err error) {
	ctx, done := r.in.start(ctx, "CustomerRepository.FindAll", "find_all")
	defer func() { err = done(err) }()

	rows, err := r.store.List(ctx)
	if err != nil {
		return nil, translate(customerEntity, "find_all", "", err)
	}

	customers := make([]*customer.Customer, 0, len(rows))
	for _, row := range rows {
		c, err := customerFromRow(row)
		if err != nil {
			return nil, translate(customerEntity, "find_all", row.ID, err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func customerToRow(c *customer.Customer) storage.CustomerRow {
	s := c.State()
	row := storage.CustomerRow{
		ID:           s.ID,
		Name:         s.Name,
		Active:       s.Active,
		RewardPoints: s.RewardPoints,
	}
	if a := s.Address; a != nil {
		row.Address = &storage.AddressRow{
			Street:  a.Street(),
			Number:  a.Number(),
			Zipcode: a.Zip(),
			City:    a.City(),
		}
	}
	return row
}

func customerFromRow(row storage.CustomerRow) (*customer.Customer, error) {
	s := customer.State{
		ID:           row.ID,
		Name:         row.Name,
		Active:       row.Active,
		RewardPoints: row.RewardPoints,
	}
	if a := row.Address; a != nil {
		addr := customer.NewAddress(a.Street, a.Number, a.Zipcode, a.City)
		s.Address = &addr
	}
	return customer.Restore(s)
}
