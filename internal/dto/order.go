package dto

import "time"

type CreateOrderRequestDTO struct {
	ReceiverName    string  `json:"receiverName" example:"Zhang San"`
	ReceiverPhone   string  `json:"receiverPhone" example:"13800000000"`
	ReceiverAddress string  `json:"receiverAddress" example:"1 Example Road"`
	CouponID        *int    `json:"couponId,omitempty"`
	PointsUsed      int     `json:"pointsUsed,omitempty" example:"500"`
	BalanceUsed     float64 `json:"balanceUsed,omitempty" example:"10"`
	ReferrerID      *int    `json:"referrerId,omitempty"`
	Remark          string  `json:"remark,omitempty"`
}

type OrderItemDTO struct {
	ProductID  int     `json:"productId"`
	SKUID      *int    `json:"skuId,omitempty"`
	Name       string  `json:"name"`
	Image      string  `json:"image,omitempty"`
	SpecValues string  `json:"specValues,omitempty"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type LogisticsDTO struct {
	Company    string `json:"company"`
	TrackingNo string `json:"trackingNo"`
	Status     string `json:"status"`
}

type OrderResponseDTO struct {
	ID             int      `json:"id"`
	OrderNo        string   `json:"orderNo"`
	Status         string   `json:"status"`
	TotalAmount    float64  `json:"totalAmount"`
	PayAmount      float64  `json:"payAmount"`
	DiscountAmount float64  `json:"discountAmount"`
	CreatedAt      string   `json:"createdAt"`
	Operations     []string `json:"operations"`
}

type OrderDetailResponseDTO struct {
	ID              int            `json:"id"`
	OrderNo         string         `json:"orderNo"`
	Status          string         `json:"status"`
	TotalAmount     float64        `json:"totalAmount"`
	PayAmount       float64        `json:"payAmount"`
	DiscountAmount  float64        `json:"discountAmount"`
	PointsUsed      int            `json:"pointsUsed"`
	BalanceUsed     float64        `json:"balanceUsed"`
	ReceiverName    string         `json:"receiverName"`
	ReceiverPhone   string         `json:"receiverPhone"`
	ReceiverAddress string         `json:"receiverAddress"`
	Remark          string         `json:"remark,omitempty"`
	Items           []OrderItemDTO `json:"items"`
	Logistics       *LogisticsDTO  `json:"logistics,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	PaidAt          *time.Time     `json:"paidAt,omitempty"`
	ShippedAt       *time.Time     `json:"shippedAt,omitempty"`
	CompletedAt     *time.Time     `json:"completedAt,omitempty"`
	Operations      []string       `json:"operations"`
}

type ShipOrderRequestDTO struct {
	Company    string `json:"company" example:"SF Express"`
	TrackingNo string `json:"trackingNo" example:"SF1234567890"`
}
