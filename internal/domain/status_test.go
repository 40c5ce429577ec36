package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pending_payment to pending_shipment", OrderStatusPendingPayment, OrderStatusPendingShipment, true},
		{"pending_payment to cancelled", OrderStatusPendingPayment, OrderStatusCancelled, true},
		{"pending_shipment to shipped", OrderStatusPendingShipment, OrderStatusShipped, true},
		{"shipped to completed", OrderStatusShipped, OrderStatusCompleted, true},
		{"completed to refunding", OrderStatusCompleted, OrderStatusRefunding, true},
		{"refunding to refunded", OrderStatusRefunding, OrderStatusRefunded, true},
		{"refunding back to completed on reject", OrderStatusRefunding, OrderStatusCompleted, true},
		{"pending_payment to shipped skips payment", OrderStatusPendingPayment, OrderStatusShipped, false},
		{"pending_shipment to cancelled after payment", OrderStatusPendingShipment, OrderStatusCancelled, false},
		{"shipped to refunding before receipt", OrderStatusShipped, OrderStatusRefunding, false},
		{"completed to refunded skips refunding", OrderStatusCompleted, OrderStatusRefunded, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPendingPayment, false},
		{"refunded is terminal", OrderStatusRefunded, OrderStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, OrderCanTransition(tt.from, tt.to))
		})
	}
}

func TestCommissionCanTransition(t *testing.T) {
	assert.True(t, CommissionCanTransition(CommissionStatusPending, CommissionStatusConfirmed))
	assert.True(t, CommissionCanTransition(CommissionStatusPending, CommissionStatusCancelled))
	assert.True(t, CommissionCanTransition(CommissionStatusConfirmed, CommissionStatusSettled))
	assert.True(t, CommissionCanTransition(CommissionStatusConfirmed, CommissionStatusCancelled))
	assert.False(t, CommissionCanTransition(CommissionStatusSettled, CommissionStatusCancelled))
	assert.False(t, CommissionCanTransition(CommissionStatusCancelled, CommissionStatusConfirmed))
	assert.False(t, CommissionCanTransition(CommissionStatusPending, CommissionStatusSettled))
}

func TestWithdrawalCanTransition(t *testing.T) {
	assert.True(t, WithdrawalCanTransition(WithdrawalStatusPending, WithdrawalStatusApproved))
	assert.True(t, WithdrawalCanTransition(WithdrawalStatusPending, WithdrawalStatusRejected))
	assert.True(t, WithdrawalCanTransition(WithdrawalStatusApproved, WithdrawalStatusCompleted))
	assert.False(t, WithdrawalCanTransition(WithdrawalStatusRejected, WithdrawalStatusApproved))
	assert.False(t, WithdrawalCanTransition(WithdrawalStatusCompleted, WithdrawalStatusPending))
}

func TestAllowedOperations(t *testing.T) {
	assert.Equal(t, []string{"pay", "cancel"}, AllowedOperations(OrderStatusPendingPayment))
	assert.Equal(t, []string{"confirm"}, AllowedOperations(OrderStatusShipped))
	assert.Equal(t, []string{"refund", "review"}, AllowedOperations(OrderStatusCompleted))
	assert.Empty(t, AllowedOperations(OrderStatusPendingShipment))
	assert.Empty(t, AllowedOperations(OrderStatusCancelled))
	assert.Empty(t, AllowedOperations("unknown"))
}
