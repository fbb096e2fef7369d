package flowsvc

import (
	"fmt"
	"math"
	"strconv"
)

// Service fee rates. Online orders carry 10%, assisted orders 20%.
const (
	onlineServiceFeeRate   = 0.10
	assistedServiceFeeRate = 0.20
)

// Quote is a computed quote for an online order.
type Quote struct {
	Goods       float64
	ServiceFee  float64
	Payable     float64 // goods + service fee
	DeliveryFee float64 // informational; zero when the town is unknown
	Town        string
}

// Estimate is a computed estimate for an assisted order.
type Estimate struct {
	Budget     float64
	ServiceFee float64
	Total      float64
}

// ComputeOnlineQuote prices an online order: goods total plus a 10%
// service fee, rounded half-up at 2 decimals. A known delivery town
// attaches its delivery fee for display; the fee is quoted separately
// and not folded into the payable amount.
func ComputeOnlineQuote(goods float64, town string) Quote {
	fee := roundHalfUp2(goods * onlineServiceFeeRate)
	q := Quote{
		Goods:      roundHalfUp2(goods),
		ServiceFee: fee,
		Payable:    roundHalfUp2(goods + fee),
		Town:       town,
	}
	if town != "" {
		q.DeliveryFee = DeliveryFee(town)
	}
	return q
}

// ComputeAssistedEstimate prices an assisted order: budget plus a 20%
// service fee, rounded half-up at 2 decimals.
func ComputeAssistedEstimate(budget float64) Estimate {
	fee := roundHalfUp2(budget * assistedServiceFeeRate)
	return Estimate{
		Budget:     roundHalfUp2(budget),
		ServiceFee: fee,
		Total:      roundHalfUp2(budget + fee),
	}
}

// FormatRand renders an amount as "R935.00".
func FormatRand(amount float64) string {
	return fmt.Sprintf("R%.2f", amount)
}

// roundHalfUp2 rounds to 2 decimals with ties away from zero, matching
// half-up money rounding.
func roundHalfUp2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
