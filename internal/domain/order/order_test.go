package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/shop/internal/domain"
	"github.com/xenking/shop/internal/domain/product"
)

func mustItem(t *testing.T, id string, price int64, productID string, qty int) Item {
	t.Helper()
	item, err := NewItem(id, "Item "+id, decimal.NewFromInt(price), productID, qty)
	require.NoError(t, err)
	return item
}

func TestNewItem(t *testing.T) {
	tests := []struct {
		name      string
		price     decimal.Decimal
		qty       int
		wantField string
	}{
		{name: "valid", price: decimal.NewFromInt(10), qty: 1},
		{name: "free item", price: decimal.Zero, qty: 3},
		{name: "zero quantity", price: decimal.NewFromInt(10), qty: 0, wantField: "quantity"},
		{name: "negative quantity", price: decimal.NewFromInt(10), qty: -2, wantField: "quantity"},
		{name: "negative price", price: decimal.NewFromInt(-10), qty: 1, wantField: "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewItem("i1", "Widget", tt.price, "p1", tt.qty)
			if tt.wantField != "" {
				var ve *domain.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantField, ve.Field)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "i1", item.ID())
			assert.Equal(t, "Widget", item.Name())
			assert.Equal(t, "p1", item.ProductID())
			assert.Equal(t, tt.qty, item.Quantity())
		})
	}
}

func TestItem_LineTotal(t *testing.T) {
	item, err := NewItem("i1", "Widget", decimal.RequireFromString("2.50"), "p1", 4)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(10).Equal(item.LineTotal()))
}

func TestNewItemFor_SnapshotsProduct(t *testing.T) {
	p, err := product.New("p1", "Widget", decimal.NewFromInt(10))
	require.NoError(t, err)

	item, err := NewItemFor("i1", p, 2)
	require.NoError(t, err)

	require.NoError(t, p.ChangeName("Renamed"))
	require.NoError(t, p.ChangePrice(decimal.NewFromInt(99)))

	assert.Equal(t, "Widget", item.Name())
	assert.True(t, decimal.NewFromInt(10).Equal(item.Price()))
	assert.Equal(t, "p1", item.ProductID())
}

func TestNew(t *testing.T) {
	_, err := New("o1", "c1", nil)
	require.ErrorIs(t, err, ErrEmptyItems)
	assert.Equal(t, "Order must have at least one item", err.Error())
	assert.True(t, domain.IsValidation(err))

	_, err = New("o1", "c1", []Item{})
	require.ErrorIs(t, err, ErrEmptyItems)

	o, err := New("o1", "c1", []Item{mustItem(t, "i1", 10, "p1", 1)})
	require.NoError(t, err)
	assert.Equal(t, "o1", o.ID())
	assert.Equal(t, "c1", o.CustomerID())
	assert.Len(t, o.Items(), 1)
}

func TestOrder_Total(t *testing.T) {
	o, err := New("o1", "c1", []Item{
		mustItem(t, "i1", 10, "p1", 2),
		mustItem(t, "i2", 20, "p2", 1),
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(40).Equal(o.Total()))
}

func TestOrder_AddItem(t *testing.T) {
	o, err := New("o1", "c1", []Item{mustItem(t, "i1", 10, "p1", 2)})
	require.NoError(t, err)
	before := o.Total()

	o.AddItem(mustItem(t, "i2", 10, "p1", 2))

	assert.True(t, before.Add(decimal.NewFromInt(20)).Equal(o.Total()))
	items := o.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "i1", items[0].ID())
	assert.Equal(t, "i2", items[1].ID())
}

func TestOrder_ItemsIsolation(t *testing.T) {
	items := []Item{mustItem(t, "i1", 10, "p1", 1)}
	o, err := New("o1", "c1", items)
	require.NoError(t, err)

	items[0] = mustItem(t, "changed", 99, "p9", 9)
	got := o.Items()
	got[0] = mustItem(t, "changed", 99, "p9", 9)

	assert.Equal(t, "i1", o.Items()[0].ID())
	assert.True(t, decimal.NewFromInt(10).Equal(o.Total()))
}

func TestOrder_Equal(t *testing.T) {
	i1 := mustItem(t, "i1", 10, "p1", 1)
	i2 := mustItem(t, "i2", 20, "p2", 1)

	a, _ := New("o1", "c1", []Item{i1, i2})
	b, _ := New("o1", "c1", []Item{i1, i2})
	c, _ := New("o1", "c1", []Item{i2, i1})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "item order is part of the aggregate")

	b.AddItem(i1)
	assert.False(t, a.Equal(b))
}
