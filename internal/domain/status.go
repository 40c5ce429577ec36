package domain

// Order statuses.
const (
	// OrderStatusPendingPayment заказ создан, ожидает оплаты;
	OrderStatusPendingPayment = "pending_payment"
	// OrderStatusPendingShipment заказ оплачен, ожидает отгрузки;
	OrderStatusPendingShipment = "pending_shipment"
	// OrderStatusShipped заказ отгружен;
	OrderStatusShipped = "shipped"
	// OrderStatusCompleted получение подтверждено;
	OrderStatusCompleted = "completed"
	// OrderStatusCancelled заказ отменён до оплаты;
	OrderStatusCancelled = "cancelled"
	// OrderStatusRefunding запрошен возврат;
	OrderStatusRefunding = "refunding"
	// OrderStatusRefunded возврат завершён;
	OrderStatusRefunded = "refunded"
)

// Payment statuses and methods.
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
	PaymentStatusClosed  = "closed"

	PaymentMethodWechat  = "wechat"
	PaymentMethodBalance = "balance"
)

// Refund statuses.
const (
	RefundStatusPending    = "pending"
	RefundStatusProcessing = "processing"
	RefundStatusSuccess    = "success"
	RefundStatusFailed     = "failed"
)

// Commission statuses.
const (
	CommissionStatusPending   = "pending"
	CommissionStatusConfirmed = "confirmed"
	CommissionStatusSettled   = "settled"
	CommissionStatusCancelled = "cancelled"
)

// Coupon statuses.
const (
	CouponStatusUnused = "unused"
	CouponStatusUsed   = "used"
)

// Ledger record types for balance and points mutations.
const (
	RecordTypeOrderPay    = "order_pay"
	RecordTypeOrderCancel = "order_cancel"
	RecordTypeRefund      = "refund"
)

const (
	LogisticsStatusShipped   = "shipped"
	LogisticsStatusDelivered = "delivered"
)

const (
	WithdrawalStatusPending   = "pending"
	WithdrawalStatusApproved  = "approved"
	WithdrawalStatusCompleted = "completed"
	WithdrawalStatusRejected  = "rejected"
)

// orderTransitions is the full order lifecycle. Any transition not listed
// here is illegal and must leave the order untouched.
var orderTransitions = map[string][]string{
	OrderStatusPendingPayment:  {OrderStatusPendingShipment, OrderStatusCancelled},
	OrderStatusPendingShipment: {OrderStatusShipped},
	OrderStatusShipped:         {OrderStatusCompleted},
	OrderStatusCompleted:       {OrderStatusRefunding},
	OrderStatusRefunding:       {OrderStatusRefunded, OrderStatusCompleted},
}

func OrderCanTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

var commissionTransitions = map[string][]string{
	CommissionStatusPending:   {CommissionStatusConfirmed, CommissionStatusCancelled},
	CommissionStatusConfirmed: {CommissionStatusSettled, CommissionStatusCancelled},
}

func CommissionCanTransition(from, to string) bool {
	for _, s := range commissionTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

var withdrawalTransitions = map[string][]string{
	WithdrawalStatusPending:  {WithdrawalStatusApproved, WithdrawalStatusRejected},
	WithdrawalStatusApproved: {WithdrawalStatusCompleted},
}

func WithdrawalCanTransition(from, to string) bool {
	for _, s := range withdrawalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

var allowedOperations = map[string][]string{
	OrderStatusPendingPayment: {"pay", "cancel"},
	OrderStatusShipped:        {"confirm"},
	OrderStatusCompleted:      {"refund", "review"},
}

// AllowedOperations returns the user-facing actions available for an order
// status. The presentation layer uses it to gate buttons; it mirrors
// orderTransitions exactly.
func AllowedOperations(status string) []string {
	ops, ok := allowedOperations[status]
	if !ok {
		return []string{}
	}
	return ops
}
