package customer

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
		custName  string
		wantField string
	}{
		{name: "valid", id: "123", custName: "John"},
		{name: "empty id", id: "", custName: "John", wantField: "id"},
		{name: "empty name", id: "123", custName: "", wantField: "name"},
		{name: "both empty", id: "", custName: "", wantField: "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.id, tt.custName)
			if tt.wantField != "" {
				var ve *domain.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantField, ve.Field)
				assert.Nil(t, c)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.id, c.ID())
			assert.Equal(t, tt.custName, c.Name())
			assert.True(t, c.IsActive())
			assert.True(t, decimal.Zero.Equal(c.RewardPoints()))
			_, ok := c.Address()
			assert.False(t, ok)
		})
	}
}

func TestCustomer_Rename(t *testing.T) {
	c, err := New("123", "John")
	require.NoError(t, err)

	require.NoError(t, c.Rename("Jane"))
	assert.Equal(t, "Jane", c.Name())

	err = c.Rename("")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, "Name is required", err.Error())
	assert.Equal(t, "Jane", c.Name(), "failed rename must leave the name untouched")
}

func TestCustomer_Activate(t *testing.T) {
	c, err := New("1", "John")
	require.NoError(t, err)
	c.Deactivate()

	err = c.Activate()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Address is mandatory to activate a customer", ve.Error())
	assert.False(t, c.IsActive())

	c.ChangeAddress(NewAddress("Street 1", 1, "13330-250", "Sao Paulo"))
	require.NoError(t, c.Activate())
	assert.True(t, c.IsActive())
}

func TestCustomer_Deactivate(t *testing.T) {
	c, err := New("1", "John")
	require.NoError(t, err)

	c.Deactivate()
	assert.False(t, c.IsActive())
	c.Deactivate()
	assert.False(t, c.IsActive())
}

func TestCustomer_AddRewardPoints(t *testing.T) {
	c, err := New("1", "Customer 1")
	require.NoError(t, err)

	c.AddRewardPoints(decimal.NewFromInt(10))
	assert.True(t, decimal.NewFromInt(10).Equal(c.RewardPoints()))

	c.AddRewardPoints(decimal.RequireFromString("2.5"))
	assert.True(t, decimal.RequireFromString("12.5").Equal(c.RewardPoints()))
}

func TestCustomer_AddressIsCopied(t *testing.T) {
	c, err := New("1", "John")
	require.NoError(t, err)

	addr := NewAddress("Street", 1, "00000-000", "City")
	c.ChangeAddress(addr)

	got, ok := c.Address()
	require.True(t, ok)
	assert.Equal(t, addr, got)
	assert.Equal(t, "Street, 1, 00000-000 City", got.String())
}

func TestAddress_StructuralEquality(t *testing.T) {
	a := NewAddress("Street", 1, "Zip", "City")
	b := NewAddress("Street", 1, "Zip", "City")
	c := NewAddress("Street", 2, "Zip", "City")

	assert.True(t, a == b)
	assert.False(t, a == c)
}

func TestRestore(t *testing.T) {
	addr := NewAddress("Street", 1, "Zip", "City")
	orig, err := New("1", "John")
	require.NoError(t, err)
	orig.ChangeAddress(addr)
	orig.Deactivate()
	orig.AddRewardPoints(decimal.NewFromInt(7))

	restored, err := Restore(orig.State())
	require.NoError(t, err)
	assert.True(t, orig.Equal(restored))

	_, err = Restore(State{ID: "", Name: "x"})
	assert.True(t, domain.IsValidation(err))
}

func TestCustomer_Equal(t *testing.T) {
	a, _ := New("1", "John")
	b, _ := New("1", "John")
	assert.True(t, a.Equal(b))

	b.ChangeAddress(NewAddress("S", 1, "Z", "C"))
	assert.False(t, a.Equal(b))

	a.ChangeAddress(NewAddress("S", 1, "Z", "C"))
	assert.True(t, a.Equal(b))

	a.AddRewardPoints(decimal.NewFromInt(1))
	assert.False(t, a.Equal(b))

	var nilCustomer *Customer
	assert.False(t, a.Equal(nilCustomer))
}

func TestCreate(t *testing.T) {
	c, err := Create("John")
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID())
	assert.Equal(t, "John", c.Name())
	_, ok := c.Address()
	assert.False(t, ok)

	other, err := Create("John")
	require.NoError(t, err)
	assert.NotEqual(t, c.ID(), other.ID())

	_, err = Create("")
	assert.True(t, domain.IsValidation(err))
}

func TestCreateWithAddress(t *testing.T) {
	addr := NewAddress("Street", 1, "00000-000", "City")
	c, err := CreateWithAddress("John", addr)
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID())
	assert.Equal(t, "John", c.Name())
	got, ok := c.Address()
	require.True(t, ok)
	assert.Equal(t, addr, got)
}

// The scenario from the customer lifecycle: no address, failed activation,
// then activation once an address is set.
func TestCustomer_ActivationScenario(t *testing.T) {
	c, err := Create("John")
	require.NoError(t, err)

	_, ok := c.Address()
	require.False(t, ok)
	require.True(t, domain.IsValidation(c.Activate()))

	c.ChangeAddress(NewAddress("Street", 1, "00000-000", "City"))
	require.NoError(t, c.Activate())
	assert.True(t, c.IsActive())
}
