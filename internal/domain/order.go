package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

type OrderDetails struct {
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	DeliveryDate time.Time `json:"deliveryDate"`
}

// Validate reports every missing or invalid field at once. The delivery date
// is compared by calendar day in now's location.
func (d OrderDetails) Validate(now time.Time) error {
	verr := &ValidationError{}
	if strings.TrimSpace(d.Name) == "" {
		verr.Add("name", "name is required")
	}
	if strings.TrimSpace(d.Phone) == "" {
		verr.Add("phone", "phone is required")
	}
	if strings.TrimSpace(d.Address) == "" {
		verr.Add("address", "address is required")
	}
	switch {
	case d.DeliveryDate.IsZero():
		verr.Add("deliveryDate", "delivery date is required")
	case startOfDay(d.DeliveryDate.In(now.Location())).Before(startOfDay(now)):
		verr.Add("deliveryDate", "delivery date cannot be in the past")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

type Order struct {
	ID           string          `json:"id"`
	Items        []CartLine      `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Shipping     decimal.Decimal `json:"shipping"`
	Total        decimal.Decimal `json:"total"`
	OrderDetails OrderDetails    `json:"orderDetails"`
	CreatedAt    time.Time       `json:"createdAt"`
	Status       OrderStatus     `json:"status"`
}

// Clone deep-copies the order so callers holding it cannot alter history.
func (o Order) Clone() Order {
	c := o
	c.Items = Cart{Lines: o.Items}.Snapshot()
	return c
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
