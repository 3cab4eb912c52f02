package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is a frozen copy of a cart line taken at checkout. Later catalog
// changes never touch it.
type OrderItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id" validate:"required"`
	Name      string             `json:"name" bson:"name" validate:"required"`
	Price     float64            `json:"price" bson:"price" validate:"gte=0"`
	Quantity  int                `json:"quantity" bson:"quantity" validate:"required,min=1"`
	Image     string             `json:"image" bson:"image"`
}

type ShippingAddress struct {
	FullName   string `json:"full_name" bson:"full_name" validate:"required"`
	Address    string `json:"address" bson:"address" validate:"required"`
	City       string `json:"city" bson:"city" validate:"required"`
	State      string `json:"state" bson:"state" validate:"required"`
	PostalCode string `json:"postal_code" bson:"postal_code" validate:"required"`
	Country    string `json:"country" bson:"country" validate:"required"`
}

type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          string             `json:"user_id" bson:"user_id"`
	OrderItems      []OrderItem        `json:"order_items" bson:"order_items"`
	ShippingAddress ShippingAddress    `json:"shipping_address" bson:"shipping_address"`
	TotalPrice      float64            `json:"total_price" bson:"total_price"`
	IsPaid          bool               `json:"is_paid" bson:"is_paid"`
	PaidAt          *time.Time         `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	PaymentResult   *PaymentResult     `json:"payment_result,omitempty" bson:"payment_result,omitempty"`
	IsDelivered     bool               `json:"is_delivered" bson:"is_delivered"`
	DeliveredAt     *time.Time         `json:"delivered_at,omitempty" bson:"delivered_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

type CreateOrderRequest struct {
	OrderItems      []OrderItem     `json:"order_items" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	TotalPrice      float64         `json:"total_price" validate:"gte=0"`
}
