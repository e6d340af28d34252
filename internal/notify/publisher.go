package notify

import (
	"context"
	"time"

	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/shop/internal/event"
)

// SubjectPrefix is prepended to the event name to form the NATS subject.
const SubjectPrefix = "shop.events."

// Conn is the part of *nats.Conn the Publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

// PayloadEncoder is implemented by events that can write their payload as JSON.
type PayloadEncoder interface {
	EncodePayload(e *jx.Encoder)
}

// Publisher forwards events to NATS as JSON envelopes.
type Publisher struct {
	conn Conn
}

var _ event.Handler = (*Publisher)(nil)

// NewPublisher returns a Publisher that sends on conn.
func NewPublisher(conn Conn) *Publisher {
	return &Publisher{conn: conn}
}

// Handle publishes e. Failures are logged and otherwise ignored.
func (p *Publisher) Handle(ctx context.Context, e event.Event) {
	subject := SubjectPrefix + e.Name()
	if err := p.conn.Publish(subject, Envelope(e)); err != nil {
		zctx.From(ctx).Warn("Publish event",
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

// Envelope encodes e as {"eventName", "payload", "occurredAt"}. The payload
// is null for events that do not implement PayloadEncoder.
func Envelope(e event.Event) []byte {
	var enc jx.Encoder
	enc.Obj(func(enc *jx.Encoder) {
		enc.Field("eventName", func(enc *jx.Encoder) { enc.Str(e.Name()) })
		enc.Field("payload", func(enc *jx.Encoder) {
			if pe, ok := e.(PayloadEncoder); ok {
				pe.EncodePayload(enc)
				return
			}
			enc.Null()
		})
		enc.Field("occurredAt", func(enc *jx.Encoder) {
			enc.Str(e.OccurredAt().UTC().Format(time.RFC3339Nano))
		})
	})
	return enc.Bytes()
}
