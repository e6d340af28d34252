package customer

import (
	"time"

	"github.com/go-faster/jx"
)

// Event names dispatched by the customer Service.
const (
	CreatedEventName        = "CustomerCreated"
	AddressChangedEventName = "CustomerAddressChanged"
)

// Payload is the customer data carried by customer events.
type Payload struct {
	ID      string
	Name    string
	Address *Address
}

func payloadOf(c *Customer) Payload {
	p := Payload{ID: c.ID(), Name: c.Name()}
	if a, ok := c.Address(); ok {
		p.Address = &a
	}
	return p
}

// Encode writes the payload as a JSON object. The address key is omitted
// when no address is set.
func (p Payload) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(p.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		if p.Address != nil {
			a := p.Address
			e.Field("address", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("street", func(e *jx.Encoder) { e.Str(a.Street()) })
					e.Field("number", func(e *jx.Encoder) { e.Int(a.Number()) })
					e.Field("zip", func(e *jx.Encoder) { e.Str(a.Zip()) })
					e.Field("city", func(e *jx.Encoder) { e.Str(a.City()) })
				})
			})
		}
	})
}

// CreatedEvent is dispatched after a customer has been registered.
type CreatedEvent struct {
	Payload Payload
	At      time.Time
}

// NewCreatedEvent returns a CreatedEvent for c occurring at the given time.
func NewCreatedEvent(c *Customer, at time.Time) CreatedEvent {
	return CreatedEvent{Payload: payloadOf(c), At: at}
}

func (e CreatedEvent) Name() string          { return CreatedEventName }
func (e CreatedEvent) OccurredAt() time.Time { return e.At }

// EncodePayload writes the event payload as JSON.
func (e CreatedEvent) EncodePayload(enc *jx.Encoder) { e.Payload.Encode(enc) }

// AddressChangedEvent is dispatched after a stored customer moved address.
type AddressChangedEvent struct {
	Payload Payload
	At      time.Time
}

// NewAddressChangedEvent returns an AddressChangedEvent for c.
func NewAddressChangedEvent(c *Customer, at time.Time) AddressChangedEvent {
	return AddressChangedEvent{Payload: payloadOf(c), At: at}
}

func (e AddressChangedEvent) Name() string          { return AddressChangedEventName }
func (e AddressChangedEvent) OccurredAt() time.Time { return e.At }

// EncodePayload writes the event payload as JSON.
func (e AddressChangedEvent) EncodePayload(enc *jx.Encoder) { e.Payload.Encode(enc) }
