package app

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/shop/internal/repository"
	"github.com/xenking/shop/internal/storage"
	"github.com/xenking/shop/internal/storage/postgres"
	"github.com/xenking/shop/internal/storage/sqlite"
)

// Backend is an opened storage backend with its schema in place.
type Backend struct {
	Stores storage.Stores
	close  func()
}

// Close releases the backend's connections.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open connects to the configured driver, retrying the first ping until
// cfg.ConnectTimeout elapses, and applies migrations.
func Open(ctx context.Context, lg *zap.Logger, cfg *Config) (*Backend, error) {
	switch cfg.Driver {
	case DriverPostgres:
		return openPostgres(ctx, lg, cfg)
	case DriverSQLite:
		return openSQLite(ctx, lg, cfg)
	default:
		return nil, errors.Errorf("unknown driver %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, lg *zap.Logger, cfg *Config) (*Backend, error) {
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "create db pool")
	}

	if err := retryPing(ctx, lg, cfg.ConnectTimeout, pool.Ping); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	if err := postgres.RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "run migrations")
	}

	db := postgres.NewDB(pool)
	return &Backend{Stores: db.Stores(), close: db.Close}, nil
}

func openSQLite(ctx context.Context, lg *zap.Logger, cfg *Config) (*Backend, error) {
	lg.Info("Opening sqlite", zap.String("path", cfg.SQLitePath), zap.String("build", sqlite.BuildMode))

	db, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	if err := retryPing(ctx, lg, cfg.ConnectTimeout, db.PingContext); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping sqlite")
	}

	return &Backend{
		Stores: db.Stores(),
		close:  func() { _ = db.Close() },
	}, nil
}

func retryPing(ctx context.Context, lg *zap.Logger, timeout time.Duration, ping func(context.Context) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = 5 * time.Second

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, ping(ctx)
	},
		backoff.WithBackOff(bo),
		backoff.WithMaxElapsedTime(timeout),
		backoff.WithNotify(func(err error, next time.Duration) {
			lg.Warn("Database not ready", zap.Error(err), zap.Duration("retry_in", next))
		}),
	)
	return err
}

// Repositories groups the domain repositories over one backend.
type Repositories struct {
	Customers *repository.CustomerRepository
	Products  *repository.ProductRepository
	Orders    *repository.OrderRepository
}

// NewRepositories builds the repositories over stores, reporting spans and
// call counts to the given providers.
func NewRepositories(stores storage.Stores, tp trace.TracerProvider, mp metric.MeterProvider) (*Repositories, error) {
	opts := []repository.Option{
		repository.WithTracerProvider(tp),
		repository.WithMeterProvider(mp),
	}

	customers, err := repository.NewCustomerRepository(stores.Customers, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "customer repository")
	}
	products, err := repository.NewProductRepository(stores.Products, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "product repository")
	}
	orders, err := repository.NewOrderRepository(stores.Orders, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "order repository")
	}

	return &Repositories{Customers: customers, Products: products, Orders: orders}, nil
}
