package model

import "time"

const (
	EventOrderCreated    = "order_created"
	EventPaymentSuccess  = "payment_success"
	EventPaymentRejected = "payment_rejected"
)

// PaymentEvent is pushed to websocket monitors as checkout traffic flows
// through the simulator.
type PaymentEvent struct {
	Type      string    `json:"type"`
	OrderId   string    `json:"orderId"`
	PaymentId string    `json:"paymentId,omitempty"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
