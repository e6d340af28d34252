package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/xenking/shop/internal/domain/customer"
	"github.com/xenking/shop/internal/event"
)

const seedJSON = `{
  "products": [
    {"id": "p1", "name": "Product 1", "price": "10"},
    {"id": "p2", "name": "Product 2", "price": "2.5"}
  ],
  "customers": [
    {"id": "c1", "name": "Customer 1", "address": {"street": "Street 1", "number": 1, "zip": "Zipcode 1", "city": "City 1"}},
    {"name": "Anonymous"}
  ],
  "orders": [
    {"id": "o1", "customer_id": "c1", "items": [{"product_id": "p1", "quantity": 2}, {"product_id": "p2", "quantity": 4}]},
    {"customer_id": "c1", "items": [{"product_id": "p2", "quantity": 1}]}
  ]
}`

type recordingNotifier struct {
	events []event.Event
}

func (n *recordingNotifier) Notify(_ context.Context, e event.Event) {
	n.events = append(n.events, e)
}

func setupSeeder(t *testing.T) (*Seeder, *Repositories, *recordingNotifier) {
	t.Helper()
	ctx := context.Background()

	backend, err := Open(ctx, zap.NewNop(), &Config{
		Driver:         DriverSQLite,
		SQLitePath:     ":memory:",
		ConnectTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(backend.Close)

	repos, err := NewRepositories(backend.Stores, tracenoop.NewTracerProvider(), metricnoop.NewMeterProvider())
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	return NewSeeder(repos, customer.NewService(repos.Customers, notifier), zap.NewNop()), repos, notifier
}

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()
	seeder, repos, notifier := setupSeeder(t)

	data, err := DecodeSeed(strings.NewReader(seedJSON))
	require.NoError(t, err)
	require.NoError(t, seeder.Seed(ctx, data))

	products, err := repos.Products.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	customers, err := repos.Customers.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 2)
	require.Len(t, notifier.events, 2)
	for _, e := range notifier.events {
		assert.Equal(t, customer.CreatedEventName, e.Name())
	}

	o1, err := repos.Orders.Find(ctx, "o1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(30).Equal(o1.Total()))
	require.Len(t, o1.Items(), 2)
	assert.Equal(t, "p1", o1.Items()[0].ProductID())

	// 30/2 + 2.5/2
	c1, err := repos.Customers.Find(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("16.25").Equal(c1.RewardPoints()), c1.RewardPoints().String())

	total, err := seeder.GrandTotal(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("32.5").Equal(total), total.String())
}

func TestSeeder_SeedTwice(t *testing.T) {
	ctx := context.Background()
	seeder, repos, _ := setupSeeder(t)

	data := &SeedData{
		Products:  []SeedProduct{{ID: "p1", Name: "Product 1", Price: decimal.NewFromInt(10)}},
		Customers: []SeedCustomer{{ID: "c1", Name: "Customer 1"}},
		Orders:    []SeedOrder{{ID: "o1", CustomerID: "c1", Items: []SeedOrderItem{{ProductID: "p1", Quantity: 1}}}},
	}
	require.NoError(t, seeder.Seed(ctx, data))

	data.Products[0].Price = decimal.NewFromInt(12)
	require.NoError(t, seeder.Seed(ctx, data))

	p, err := repos.Products.Find(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(12).Equal(p.Price()))

	orders, err := repos.Orders.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	c, err := repos.Customers.Find(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(c.RewardPoints()))
}

func TestSeeder_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	seeder, _, _ := setupSeeder(t)

	err := seeder.Seed(ctx, &SeedData{
		Customers: []SeedCustomer{{ID: "c1", Name: "Customer 1"}},
		Orders:    []SeedOrder{{CustomerID: "c1", Items: []SeedOrderItem{{ProductID: "missing", Quantity: 1}}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "find product missing")
}

func TestReadSeedFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(plain, []byte(seedJSON), 0o600))

	gz := filepath.Join(dir, "seed.json.gz")
	f, err := os.Create(gz)
	require.NoError(t, err)
	zw := pgzip.NewWriter(f)
	_, err = zw.Write([]byte(seedJSON))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	for _, path := range []string{plain, gz} {
		data, err := ReadSeedFile(path)
		require.NoError(t, err, path)
		assert.Len(t, data.Products, 2)
		assert.Len(t, data.Customers, 2)
		require.Len(t, data.Orders, 2)
		assert.Equal(t, "c1", data.Orders[0].CustomerID)
		assert.True(t, decimal.RequireFromString("2.5").Equal(data.Products[1].Price))
	}

	_, err = ReadSeedFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
