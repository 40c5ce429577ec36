package dto

import "time"

type CreatePaymentRequestDTO struct {
	OrderID int    `json:"orderId" example:"1"`
	Method  string `json:"method" example:"wechat"`
}

type CreatePaymentResponseDTO struct {
	PaymentNo     string            `json:"paymentNo" example:"P20240101120000abcd1234"`
	Amount        float64           `json:"amount" example:"80"`
	Method        string            `json:"method" example:"wechat"`
	Status        string            `json:"status" example:"pending"`
	GatewayParams map[string]string `json:"gatewayParams,omitempty"`
}

type PaymentStatusResponseDTO struct {
	PaymentNo string     `json:"paymentNo"`
	OrderID   int        `json:"orderId"`
	Amount    float64    `json:"amount"`
	Method    string     `json:"method"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
}

type ReconcileResponseDTO struct {
	Checked int `json:"checked"`
	Settled int `json:"settled"`
}

type ProcessRefundRequestDTO struct {
	Approved bool `json:"approved"`
}

type RefundResponseDTO struct {
	RefundNo   string     `json:"refundNo"`
	OrderID    int        `json:"orderId"`
	Amount     float64    `json:"amount"`
	Status     string     `json:"status"`
	Reason     string     `json:"reason,omitempty"`
	RefundedAt *time.Time `json:"refundedAt,omitempty"`
}

type ApplyRefundRequestDTO struct {
	Reason string `json:"reason,omitempty" example:"item damaged"`
}
