package app

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/xenking/shop/internal/domain/customer"
	"github.com/xenking/shop/internal/event"
	"github.com/xenking/shop/internal/notify"
)

// Run opens the storage backend, wires the domain services and loads the
// configured seed file. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	ctx = zctx.Base(ctx, lg)
	lg.Info("Initializing", zap.String("driver", cfg.Driver))

	backend, err := Open(ctx, lg, cfg)
	if err != nil {
		return errors.Wrap(err, "open backend")
	}
	defer backend.Close()

	repos, err := NewRepositories(backend.Stores, m.TracerProvider(), m.MeterProvider())
	if err != nil {
		return errors.Wrap(err, "create repositories")
	}

	dispatcher := event.NewDispatcher()
	dispatcher.Register(customer.CreatedEventName, notify.SendNotification)
	dispatcher.Register(customer.AddressChangedEventName, notify.SendNotification)

	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL,
			nats.Name("shop-seed"),
			nats.Timeout(10*time.Second),
			nats.RetryOnFailedConnect(true),
			nats.MaxReconnects(5),
			nats.ReconnectWait(2*time.Second),
		)
		if err != nil {
			return errors.Wrap(err, "connect to NATS")
		}
		defer func() {
			if err := nc.Drain(); err != nil {
				lg.Warn("Drain NATS connection", zap.Error(err))
			}
		}()

		publisher := notify.NewPublisher(nc)
		dispatcher.Register(customer.CreatedEventName, publisher)
		dispatcher.Register(customer.AddressChangedEventName, publisher)
	}

	customers := customer.NewService(repos.Customers, dispatcher)
	seeder := NewSeeder(repos, customers, lg)

	lg.Info("Reading seed file", zap.String("path", cfg.SeedFile))
	data, err := ReadSeedFile(cfg.SeedFile)
	if err != nil {
		return errors.Wrap(err, "read seed file")
	}
	if err := seeder.Seed(ctx, data); err != nil {
		return errors.Wrap(err, "seed")
	}

	total, err := seeder.GrandTotal(ctx)
	if err != nil {
		return errors.Wrap(err, "grand total")
	}
	lg.Info("Seed completed", zap.Stringer("orders_total", total))
	return nil
}
