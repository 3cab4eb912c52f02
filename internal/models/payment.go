package models

import "time"

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// PaymentResult records the gateway confirmation bound to an order.
type PaymentResult struct {
	ID           string        `json:"id" bson:"id"`
	Status       PaymentStatus `json:"status" bson:"status"`
	UpdateTime   time.Time     `json:"update_time" bson:"update_time"`
	EmailAddress string        `json:"email_address" bson:"email_address"`
	SessionID    string        `json:"session_id" bson:"session_id"`
	Signature    string        `json:"signature" bson:"signature"`
}

type CreatePaymentIntentRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"omitempty,len=3"`
	Receipt  string  `json:"receipt" validate:"omitempty,max=40"`
}

// PaymentIntent is the gateway session created for a checkout. Amount is in
// minor units.
type PaymentIntent struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	SessionID string `json:"session_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

type PaymentKeyResponse struct {
	Key string `json:"key"`
}

// WebhookEvent is the subset of the gateway's webhook body this service reads.
type WebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment *struct {
			Entity *WebhookPaymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type WebhookPaymentEntity struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Email    string `json:"email"`
}

const (
	WebhookStatusCaptured = "captured"
	WebhookStatusFailed   = "failed"
)
