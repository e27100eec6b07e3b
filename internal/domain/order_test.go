package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

func TestOrderDetails_Valid(t *testing.T) {
	d := OrderDetails{Name: "Jane", Phone: "555-0100", Address: "1 Main St", DeliveryDate: testNow}
	assert.NoError(t, d.Validate(testNow))
}

func TestOrderDetails_TodayEarlierHourIsValid(t *testing.T) {
	d := OrderDetails{Name: "Jane", Phone: "555", Address: "x", DeliveryDate: testNow.Add(-10 * time.Hour)}
	assert.NoError(t, d.Validate(testNow))
}

func TestOrderDetails_ReportsAllFields(t *testing.T) {
	err := OrderDetails{Name: "  "}.Validate(testNow)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 4)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "phone")
	assert.Contains(t, verr.Fields, "address")
	assert.Contains(t, verr.Fields, "deliveryDate")
	assert.Contains(t, err.Error(), "address: address is required")
}

func TestOrderDetails_PastDate(t *testing.T) {
	d := OrderDetails{Name: "Jane", Phone: "555", Address: "x", DeliveryDate: testNow.AddDate(0, 0, -1)}
	err := d.Validate(testNow)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"deliveryDate": "delivery date cannot be in the past"}, verr.Fields)
}

func TestOrderClone_IsolatesItems(t *testing.T) {
	o := Order{
		ID:    "ORDER-1",
		Items: []CartLine{{Product: Product{ID: "a", Price: decimal.NewFromInt(1)}, Quantity: 1}},
	}
	c := o.Clone()
	c.Items[0].Quantity = 50
	assert.Equal(t, 1, o.Items[0].Quantity)
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.True(t, OrderStatusDelivered.IsValid())
	assert.False(t, OrderStatus("cancelled").IsValid())
}

func TestPersistenceError_Unwraps(t *testing.T) {
	base := errors.New("quota exceeded")
	err := &PersistenceError{Op: "write", Key: "cart", Err: base}
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), `persistence write "cart"`)
}

func TestProductValidate(t *testing.T) {
	bad := -1
	p := Product{ID: "", Name: "", Price: decimal.Zero, DiscountPercentage: &bad}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required")
	assert.Contains(t, err.Error(), "price must be positive")
	assert.Contains(t, err.Error(), "discount percentage -1 out of range")

	assert.NoError(t, product("ok", "9.99").Validate())
}
