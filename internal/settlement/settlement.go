package settlement

import "math"

// PointsPerUnit is the redemption ratio: 100 points knock one unit of
// currency off the payable amount.
const PointsPerUnit = 100

type Result struct {
	PointsDiscount  float64
	BalanceDiscount float64
	CouponDiscount  float64
	DiscountAmount  float64
	PayAmount       float64
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Calculate applies the discount ladder to an order total. Each component is
// rounded to two decimals independently before summation, and the payable
// amount is clamped at zero when discounts exceed the total.
func Calculate(totalAmount float64, pointsUsed int, balanceUsed, couponDiscount float64) Result {
	pointsDiscount := Round2(math.Floor(float64(pointsUsed)) / PointsPerUnit)
	balanceDiscount := Round2(balanceUsed)
	couponDiscount = Round2(couponDiscount)

	discountAmount := Round2(pointsDiscount + balanceDiscount + couponDiscount)
	payAmount := Round2(totalAmount - discountAmount)
	if payAmount < 0 {
		payAmount = 0
	}

	return Result{
		PointsDiscount:  pointsDiscount,
		BalanceDiscount: balanceDiscount,
		CouponDiscount:  couponDiscount,
		DiscountAmount:  discountAmount,
		PayAmount:       payAmount,
	}
}
