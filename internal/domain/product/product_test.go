package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/shop/internal/domain"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		prodName  string
		price     decimal.Decimal
		wantField string
	}{
		{name: "valid", id: "p1", prodName: "Widget", price: decimal.NewFromInt(100)},
		{name: "zero price", id: "p1", prodName: "Freebie", price: decimal.Zero},
		{name: "empty id", id: "", prodName: "Widget", price: decimal.NewFromInt(1), wantField: "id"},
		{name: "empty name", id: "p1", prodName: "", price: decimal.NewFromInt(1), wantField: "name"},
		{name: "negative price", id: "p1", prodName: "Widget", price: decimal.NewFromInt(-1), wantField: "price"},
		{name: "tiny negative price", id: "p1", prodName: "Widget", price: decimal.RequireFromString("-0.01"), wantField: "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.id, tt.prodName, tt.price)
			if tt.wantField != "" {
				var ve *domain.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantField, ve.Field)
				assert.Nil(t, p)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.id, p.ID())
			assert.Equal(t, tt.prodName, p.Name())
			assert.True(t, tt.price.Equal(p.Price()))
		})
	}
}

func TestProduct_ChangeName(t *testing.T) {
	p, err := New("p1", "Product 1", decimal.NewFromInt(100))
	require.NoError(t, err)

	require.NoError(t, p.ChangeName("Product 2"))
	assert.Equal(t, "Product 2", p.Name())

	assert.True(t, domain.IsValidation(p.ChangeName("")))
	assert.Equal(t, "Product 2", p.Name())
}

func TestProduct_ChangePrice(t *testing.T) {
	p, err := New("p1", "Product 1", decimal.NewFromInt(100))
	require.NoError(t, err)

	require.NoError(t, p.ChangePrice(decimal.NewFromInt(150)))
	assert.True(t, decimal.NewFromInt(150).Equal(p.Price()))

	require.NoError(t, p.ChangePrice(decimal.Zero))
	assert.True(t, p.Price().IsZero())

	err = p.ChangePrice(decimal.NewFromInt(-1))
	assert.True(t, domain.IsValidation(err))
	assert.True(t, p.Price().IsZero(), "rejected price must not be applied")
}

func TestCreate(t *testing.T) {
	p, err := Create("Widget", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID())

	_, err = Create("Widget", decimal.NewFromInt(-10))
	assert.True(t, domain.IsValidation(err))
}

func TestProduct_Equal(t *testing.T) {
	a, _ := New("p1", "Widget", decimal.RequireFromString("10"))
	b, _ := New("p1", "Widget", decimal.RequireFromString("10.00"))
	assert.True(t, a.Equal(b), "prices compare by value, not representation")

	require.NoError(t, b.ChangeName("Gadget"))
	assert.False(t, a.Equal(b))
}
