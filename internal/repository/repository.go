// Package repository persists the domain aggregates through the storage
// clients. Each repository maps its entity to and from storage rows and
// translates storage failures into domain errors.
package repository

import (
	"context"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/xenking/shop/internal/domain"
	"github.com/xenking/shop/internal/storage"
)

const instrumentationName = "github.com/xenking/shop/internal/repository"

// Option configures a repository.
type Option func(*options)

type options struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// WithTracerProvider sets the provider used for repository spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithMeterProvider sets the provider used for the repository call counter.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// instruments records one span and one counter increment per repository call.
type instruments struct {
	entity string
	tracer trace.Tracer
	calls  metric.Int64Counter
}

func newInstruments(entity string, opts []Option) (*instruments, error) {
	o := options{
		tracerProvider: tracenoop.NewTracerProvider(),
		meterProvider:  metricnoop.NewMeterProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	calls, err := o.meterProvider.Meter(instrumentationName).Int64Counter("shop.repository.calls",
		metric.WithDescription("Number of repository operations"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create calls counter")
	}

	return &instruments{
		entity: entity,
		tracer: o.tracerProvider.Tracer(instrumentationName),
		calls:  calls,
	}, nil
}

// start opens the span for op. The returned func ends it, records the outcome
// and passes err through.
func (in *instruments) start(ctx context.Context, spanName, op string) (context.Context, func(err error) error) {
	ctx, span := in.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("shop.entity", in.entity)),
	)
	return ctx, func(err error) error {
		outcome := "ok"
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrNotFound):
			outcome = "not_found"
		default:
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		in.calls.Add(ctx, 1, metric.WithAttributes(
			attribute.String("entity", in.entity),
			attribute.String("op", op),
			attribute.String("outcome", outcome),
		))
		span.End()
		return err
	}
}

// translate maps a storage failure for the aggregate id to a domain error.
func translate(entity, op, id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return &domain.NotFoundError{Entity: entity, ID: id}
	}
	return &domain.StorageError{Entity: entity, Op: op, Err: err}
}
