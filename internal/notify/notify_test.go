package notify

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xenking/shop/internal/domain/customer"
	"github.com/xenking/shop/internal/event"
)

var at = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type plainEvent struct{}

func (plainEvent) Name() string          { return "Plain" }
func (plainEvent) OccurredAt() time.Time { return at }

type recordingConn struct {
	subjects []string
	data     [][]byte
	err      error
}

func (c *recordingConn) Publish(subject string, data []byte) error {
	c.subjects = append(c.subjects, subject)
	c.data = append(c.data, data)
	return c.err
}

func observedContext(t *testing.T) (context.Context, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return zctx.Base(context.Background(), zap.New(core)), logs
}

func createdEvent(t *testing.T) customer.CreatedEvent {
	t.Helper()
	c, err := customer.New("c1", "John")
	require.NoError(t, err)
	c.ChangeAddress(customer.NewAddress("Street", 1, "13330-250", "Sao Paulo"))
	return customer.NewCreatedEvent(c, at)
}

func TestEnvelope(t *testing.T) {
	assert.JSONEq(t, `{
		"eventName": "CustomerCreated",
		"payload": {
			"id": "c1",
			"name": "John",
			"address": {"street": "Street", "number": 1, "zip": "13330-250", "city": "Sao Paulo"}
		},
		"occurredAt": "2024-03-01T12:00:00Z"
	}`, string(Envelope(createdEvent(t))))

	assert.JSONEq(t,
		`{"eventName": "Plain", "payload": null, "occurredAt": "2024-03-01T12:00:00Z"}`,
		string(Envelope(plainEvent{})),
	)
}

func TestSendNotification(t *testing.T) {
	ctx, logs := observedContext(t)

	d := event.NewDispatcher()
	d.Register(customer.CreatedEventName, SendNotification)
	d.Notify(ctx, createdEvent(t))

	entries := logs.FilterMessage("Sending notification").All()
	require.Len(t, entries, 1)
	assert.Equal(t, customer.CreatedEventName, entries[0].ContextMap()["event"])

	d.Unregister(customer.CreatedEventName, SendNotification)
	d.Notify(ctx, createdEvent(t))
	assert.Equal(t, 1, logs.FilterMessage("Sending notification").Len())
}

func TestPublisher(t *testing.T) {
	t.Run("publishes envelope", func(t *testing.T) {
		ctx, logs := observedContext(t)
		conn := &recordingConn{}

		NewPublisher(conn).Handle(ctx, createdEvent(t))

		require.Equal(t, []string{"shop.events.CustomerCreated"}, conn.subjects)
		assert.Equal(t, Envelope(createdEvent(t)), conn.data[0])
		assert.Zero(t, logs.Len())
	})

	t.Run("logs publish failure", func(t *testing.T) {
		ctx, logs := observedContext(t)
		conn := &recordingConn{err: errors.New("nats: connection closed")}

		assert.NotPanics(t, func() {
			NewPublisher(conn).Handle(ctx, plainEvent{})
		})

		entries := logs.FilterMessage("Publish event").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "shop.events.Plain", entries[0].ContextMap()["subject"])
	})
}
