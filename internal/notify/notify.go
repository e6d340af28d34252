// Package notify holds the event handlers that tell the outside world about
// domain events.
package notify

import (
	"context"
	"encoding/json"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/shop/internal/event"
)

// SendNotification logs every event it receives with the logger carried by
// the context.
var SendNotification event.Handler = logHandler{}

type logHandler struct{}

func (logHandler) Handle(ctx context.Context, e event.Event) {
	zctx.From(ctx).Info("Sending notification",
		zap.String("event", e.Name()),
		zap.Any("envelope", json.RawMessage(Envelope(e))),
	)
}
