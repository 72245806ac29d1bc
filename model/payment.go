package model

import "time"

// PaymentStatusSuccess is the only status a stored payment ever has.
// Rejected validation attempts never create a payment record.
const PaymentStatusSuccess = "success"

type Payment struct {
	PaymentId string    `json:"paymentId"`
	OrderId   string    `json:"orderId"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	PayTime   time.Time `json:"payTime"`
}

type ValidatePaymentInput struct {
	OrderId  string `json:"orderId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SecurityCheckResult struct {
	DeviceCheck bool   `json:"deviceCheck"`
	RiskLevel   string `json:"riskLevel"`
}

type Stats struct {
	TotalOrders   int     `json:"totalOrders"`
	TotalPayments int     `json:"totalPayments"`
	SuccessRate   float64 `json:"successRate"`
}
