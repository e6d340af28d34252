package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/shop/internal/domain"
	"github.com/xenking/shop/internal/domain/customer"
)

// ErrEmptyItems is returned when an order would be left without items.
var ErrEmptyItems = domain.NewValidationError("order", "items", "Order must have at least one item")

// rewardRatio is the share of an order total credited as reward points.
var rewardRatio = decimal.NewFromInt(2)

// Total returns the sum of the totals of the given orders, zero when empty.
func Total(orders []*Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total())
	}
	return total
}

// PlaceOrder builds a new order for the customer with a generated id and
// credits half of its total to the customer's reward points. The customer is
// mutated in place; persisting the order and the customer is up to the caller.
func PlaceOrder(c *customer.Customer, items []Item) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	o, err := New(uuid.New().String(), c.ID(), items)
	if err != nil {
		return nil, err
	}
	c.AddRewardPoints(o.Total().Div(rewardRatio))

	return o, nil
}
