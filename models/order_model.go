package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the delivery dimension of an order. It only moves
// forward; Cancelled is reachable from Pending and On the way.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderOnTheWay  OrderStatus = "On the way"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderOnTheWay, OrderDelivered, OrderCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransitionTo reports whether the status may move from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next == OrderOnTheWay || next == OrderDelivered || next == OrderCancelled
	case OrderOnTheWay:
		return next == OrderDelivered || next == OrderCancelled
	case OrderDelivered, OrderCancelled:
		return false
	}
	return false
}

// PaymentStatus is monotonic: once Paid it never reverts.
type PaymentStatus string

const (
	PaymentNotPaid PaymentStatus = "Not Paid"
	PaymentPaid    PaymentStatus = "Paid"
)

type PaymentMethod string

const (
	PaymentOffline PaymentMethod = "Offline"
	PaymentOnline  PaymentMethod = "Online"
)

// OrderItem is one line of the cart snapshot the order was placed from.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"pid" json:"pid"`
	Quantity  int                `bson:"qty" json:"qty"`
}

// Order is a customer order. The shipping fields are a snapshot taken at
// creation time and never change when the user's profile does.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Name          string             `bson:"name" json:"name"`
	Address       string             `bson:"address" json:"address"`
	District      string             `bson:"district" json:"district"`
	Pincode       string             `bson:"pincode" json:"pincode"`
	Number        string             `bson:"number" json:"number"`
	OrderItems    []OrderItem        `bson:"orderItems" json:"orderItems"`
	TotalPrice    float64            `bson:"TotalPrice" json:"TotalPrice"`
	Status        OrderStatus        `bson:"status" json:"status"`
	PaymentStatus PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	PaidAt        *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	DeliveredAt   *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	// GatewayOrderID is the cf_order_id issued by Cashfree when a payment
	// session is created. It doubles as the lookup key for verification.
	GatewayOrderID string    `bson:"cf_order_id,omitempty" json:"cf_order_id,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}
