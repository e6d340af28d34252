package app

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/shop/internal/domain"
	"github.com/xenking/shop/internal/domain/customer"
	"github.com/xenking/shop/internal/domain/order"
	"github.com/xenking/shop/internal/domain/product"
	"github.com/xenking/shop/internal/storage"
)

// SeedData is the content of a seed file.
type SeedData struct {
	Products  []SeedProduct  `json:"products"`
	Customers []SeedCustomer `json:"customers"`
	Orders    []SeedOrder    `json:"orders"`
}

type SeedProduct struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type SeedCustomer struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Address *SeedAddress `json:"address"`
}

type SeedAddress struct {
	Street string `json:"street"`
	Number int    `json:"number"`
	Zip    string `json:"zip"`
	City   string `json:"city"`
}

type SeedOrder struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Items      []SeedOrderItem `json:"items"`
}

type SeedOrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ReadSeedFile parses a seed file. Files ending in .gz are decompressed.
func ReadSeedFile(path string) (*SeedData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open seed file")
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "open gzip reader")
		}
		defer func() { _ = zr.Close() }()
		r = zr
	}

	return DecodeSeed(r)
}

// DecodeSeed parses seed JSON from r.
func DecodeSeed(r io.Reader) (*SeedData, error) {
	var data SeedData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(err, "parse seed JSON")
	}
	return &data, nil
}

// Seeder loads seed data through the domain services and repositories.
type Seeder struct {
	repos     *Repositories
	customers *customer.Service
	lg        *zap.Logger
}

// NewSeeder returns a Seeder that registers customers through svc.
func NewSeeder(repos *Repositories, svc *customer.Service, lg *zap.Logger) *Seeder {
	return &Seeder{repos: repos, customers: svc, lg: lg}
}

// Seed stores products and customers concurrently, then places the orders.
// Entities whose id is already stored are left untouched, except products,
// which are updated.
func (s *Seeder) Seed(ctx context.Context, data *SeedData) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.seedProducts(gctx, data.Products)
	})
	g.Go(func() error {
		return s.seedCustomers(gctx, data.Customers)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return s.seedOrders(ctx, data.Orders)
}

func (s *Seeder) seedProducts(ctx context.Context, products []SeedProduct) error {
	s.lg.Info("Seeding products", zap.Int("count", len(products)))

	for _, sp := range products {
		id := sp.ID
		if id == "" {
			id = uuid.NewString()
		}
		p, err := product.New(id, sp.Name, sp.Price)
		if err != nil {
			return errors.Wrapf(err, "product %q", sp.Name)
		}

		err = s.repos.Products.Create(ctx, p)
		if errors.Is(err, storage.ErrAlreadyExists) {
			err = s.repos.Products.Update(ctx, p)
		}
		if err != nil {
			return errors.Wrapf(err, "upsert product %s", p.ID())
		}
		s.lg.Debug("Upserted product", zap.String("id", p.ID()), zap.String("name", p.Name()))
	}
	return nil
}

func (s *Seeder) seedCustomers(ctx context.Context, customers []SeedCustomer) error {
	s.lg.Info("Seeding customers", zap.Int("count", len(customers)))

	for _, sc := range customers {
		var addr *customer.Address
		if a := sc.Address; a != nil {
			v := customer.NewAddress(a.Street, a.Number, a.Zip, a.City)
			addr = &v
		}

		if sc.ID == "" {
			c, err := s.customers.Register(ctx, sc.Name, addr)
			if err != nil {
				return errors.Wrapf(err, "register customer %q", sc.Name)
			}
			s.lg.Debug("Registered customer", zap.String("id", c.ID()))
			continue
		}

		c, err := customer.New(sc.ID, sc.Name)
		if err != nil {
			return errors.Wrapf(err, "customer %q", sc.ID)
		}
		if addr != nil {
			c.ChangeAddress(*addr)
		}
		err = s.customers.Add(ctx, c)
		if errors.Is(err, storage.ErrAlreadyExists) {
			s.lg.Debug("Customer already stored", zap.String("id", c.ID()))
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "add customer %s", c.ID())
		}
	}
	return nil
}

func (s *Seeder) seedOrders(ctx context.Context, orders []SeedOrder) error {
	s.lg.Info("Seeding orders", zap.Int("count", len(orders)))

	for _, so := range orders {
		if so.ID != "" {
			_, err := s.repos.Orders.Find(ctx, so.ID)
			if err == nil {
				s.lg.Debug("Order already stored", zap.String("id", so.ID))
				continue
			}
			if !errors.Is(err, domain.ErrNotFound) {
				return errors.Wrapf(err, "find order %s", so.ID)
			}
		}
		if err := s.placeOrder(ctx, so); err != nil {
			return err
		}
	}
	return nil
}

// placeOrder builds the order from product snapshots, credits the customer's
// reward points and stores both.
func (s *Seeder) placeOrder(ctx context.Context, so SeedOrder) error {
	c, err := s.repos.Customers.Find(ctx, so.CustomerID)
	if err != nil {
		return errors.Wrapf(err, "find customer %s", so.CustomerID)
	}

	items := make([]order.Item, 0, len(so.Items))
	for _, si := range so.Items {
		p, err := s.repos.Products.Find(ctx, si.ProductID)
		if err != nil {
			return errors.Wrapf(err, "find product %s", si.ProductID)
		}
		item, err := order.NewItemFor(uuid.NewString(), p, si.Quantity)
		if err != nil {
			return errors.Wrapf(err, "item for product %s", si.ProductID)
		}
		items = append(items, item)
	}

	o, err := order.PlaceOrder(c, items)
	if err != nil {
		return errors.Wrapf(err, "place order for customer %s", c.ID())
	}
	if so.ID != "" {
		if o, err = order.New(so.ID, o.CustomerID(), o.Items()); err != nil {
			return errors.Wrapf(err, "order %s", so.ID)
		}
	}

	if err := s.repos.Orders.Create(ctx, o); err != nil {
		return errors.Wrapf(err, "create order %s", o.ID())
	}
	if err := s.repos.Customers.Update(ctx, c); err != nil {
		return errors.Wrapf(err, "update customer %s", c.ID())
	}

	s.lg.Info("Placed order",
		zap.String("id", o.ID()),
		zap.String("customer", c.ID()),
		zap.Stringer("total", o.Total()),
		zap.Stringer("reward_points", c.RewardPoints()),
	)
	return nil
}

// GrandTotal sums the totals of every stored order.
func (s *Seeder) GrandTotal(ctx context.Context) (decimal.Decimal, error) {
	orders, err := s.repos.Orders.FindAll(ctx)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "find orders")
	}
	return order.Total(orders), nil
}
