package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name           string
		totalAmount    float64
		pointsUsed     int
		balanceUsed    float64
		couponDiscount float64
		expected       Result
	}{
		{
			name:        "no discounts",
			totalAmount: 100.00,
			expected: Result{
				DiscountAmount: 0,
				PayAmount:      100.00,
			},
		},
		{
			name:           "all discount instruments combined",
			totalAmount:    100.00,
			pointsUsed:     500,
			balanceUsed:    10.00,
			couponDiscount: 5.00,
			expected: Result{
				PointsDiscount:  5.00,
				BalanceDiscount: 10.00,
				CouponDiscount:  5.00,
				DiscountAmount:  20.00,
				PayAmount:       80.00,
			},
		},
		{
			name:        "discounts exceeding total clamp to zero",
			totalAmount: 10.00,
			pointsUsed:  5000,
			expected: Result{
				PointsDiscount: 50.00,
				DiscountAmount: 50.00,
				PayAmount:      0,
			},
		},
		{
			name:        "points below redemption unit still count fractionally",
			totalAmount: 10.00,
			pointsUsed:  50,
			expected: Result{
				PointsDiscount: 0.50,
				DiscountAmount: 0.50,
				PayAmount:      9.50,
			},
		},
		{
			name:        "single point",
			totalAmount: 1.00,
			pointsUsed:  1,
			expected: Result{
				PointsDiscount: 0.01,
				DiscountAmount: 0.01,
				PayAmount:      0.99,
			},
		},
		{
			name:           "components rounded before summation",
			totalAmount:    50.00,
			pointsUsed:     333,
			balanceUsed:    3.333,
			couponDiscount: 1.004,
			expected: Result{
				PointsDiscount:  3.33,
				BalanceDiscount: 3.33,
				CouponDiscount:  1.00,
				DiscountAmount:  7.66,
				PayAmount:       42.34,
			},
		},
		{
			name:        "float-unfriendly total",
			totalAmount: 0.1 + 0.2,
			expected: Result{
				PayAmount: 0.30,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.totalAmount, tt.pointsUsed, tt.balanceUsed, tt.couponDiscount)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCalculatePayAmountNeverNegative(t *testing.T) {
	for points := 0; points <= 10000; points += 500 {
		got := Calculate(25.00, points, 13.37, 4.20)
		assert.GreaterOrEqual(t, got.PayAmount, 0.0, "points=%d", points)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.0051))
	assert.Equal(t, 1.0, Round2(1.004))
	assert.Equal(t, -1.01, Round2(-1.0051))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 3.33, Round2(3.333))
}
