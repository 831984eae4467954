package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// CanTransitionTo guards the few legal status moves. Orders never leave a
// terminal status (delivered, cancelled).
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next == OrderConfirmed || next == OrderCancelled
	case OrderConfirmed:
		return next == OrderDelivered || next == OrderCancelled
	default:
		return false
	}
}

type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID   primitive.ObjectID `bson:"customer_id" json:"customer_id"`
	RestaurantID primitive.ObjectID `bson:"restaurant_id" json:"restaurant_id"`
	Status       OrderStatus        `bson:"status" json:"status"`
	Items        []OrderItem        `bson:"-" json:"items"`
	Total        decimal.Decimal    `bson:"-" json:"total"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// OrderItem references a product by ID but carries its own unit price,
// snapshotted when the item was added. Later price changes on the product
// never touch existing items.
type OrderItem struct {
	ProductID   primitive.ObjectID `bson:"product_id" json:"product_id"`
	ProductName string             `bson:"product_name" json:"product_name"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal    `bson:"-" json:"unit_price"`
	Subtotal    decimal.Decimal    `bson:"-" json:"subtotal"`
}

// ItemSubtotal derives a line item subtotal. Services call it explicitly
// before every persist; Subtotal is never accepted from a request.
func ItemSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// OrderTotal sums the item subtotals.
func OrderTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}
	return total
}
