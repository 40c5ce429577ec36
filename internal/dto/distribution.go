package dto

import "time"

type IncomeOverviewResponseDTO struct {
	TotalEarnings        float64 `json:"totalEarnings" example:"120.5"`
	PendingEarnings      float64 `json:"pendingEarnings" example:"15"`
	WithdrawableEarnings float64 `json:"withdrawableEarnings" example:"80.5"`
}

type CommissionRecordDTO struct {
	ID          int        `json:"id"`
	OrderNo     string     `json:"orderNo"`
	ProductName string     `json:"productName"`
	OrderAmount float64    `json:"orderAmount"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	SettledAt   *time.Time `json:"settledAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type WithdrawalRequestDTO struct {
	Amount float64 `json:"amount" example:"50"`
}

type WithdrawalResponseDTO struct {
	ID           int        `json:"id"`
	Amount       float64    `json:"amount"`
	Status       string     `json:"status"`
	RejectReason string     `json:"rejectReason,omitempty"`
	ProcessedAt  *time.Time `json:"processedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type ProcessWithdrawalRequestDTO struct {
	Approved     bool   `json:"approved"`
	RejectReason string `json:"rejectReason,omitempty"`
}

type ShareLinkResponseDTO struct {
	URL string `json:"url" example:"https://mall.example.com/product/7?ref=42"`
}
