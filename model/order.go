package model

import "time"

const (
	OrderStatusPending = "pending"
	OrderStatusSuccess = "success"
)

// Demo defaults applied when the client omits optional fields.
const (
	DefaultAmount   = 99.99
	DefaultSubject  = "测试商品"
	DefaultBankCard = "**** **** **** 8888"
	BankName        = "模拟测试银行"
)

type Order struct {
	OrderId    string     `json:"orderId"`
	Amount     float64    `json:"amount"`
	Subject    string     `json:"subject"`
	BankCard   string     `json:"bankCard"`
	BankName   string     `json:"bankName"`
	Status     string     `json:"status"`
	CreateTime time.Time  `json:"createTime"`
	PayTime    *time.Time `json:"payTime,omitempty"`
}

type CreateOrderInput struct {
	Amount   float64 `json:"amount" validate:"omitempty,gt=0"`
	Subject  string  `json:"subject"`
	BankCard string  `json:"bankCard"`
}

// QueryResult is the projection returned by the result-query endpoint.
// Payment details are never exposed here.
type QueryResult struct {
	OrderId string     `json:"orderId"`
	Status  string     `json:"status"`
	Amount  float64    `json:"amount"`
	PayTime *time.Time `json:"payTime,omitempty"`
}
