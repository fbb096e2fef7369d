package flowsvc

import "strings"

// deliveryTowns are the known delivery points in Zimbabwe.
var deliveryTowns = []string{"Harare", "Bulawayo", "Gweru", "Mutare", "Masvingo", "Chinhoyi"}

// deliveryFees are per-town delivery fees in Rand.
var deliveryFees = map[string]float64{
	"harare":   150,
	"bulawayo": 200,
	"gweru":    180,
}

// defaultDeliveryFee covers towns without a dedicated rate.
const defaultDeliveryFee = 250

// deliveryTimelines are per-town delivery estimates.
var deliveryTimelines = map[string]string{
	"harare":   "3 business days",
	"bulawayo": "4 business days",
	"gweru":    "3-5 business days",
}

const defaultDeliveryTimeline = "up to 7 business days"

// DeliveryFee returns the delivery fee for a town.
func DeliveryFee(town string) float64 {
	if fee, ok := deliveryFees[strings.ToLower(town)]; ok {
		return fee
	}
	return defaultDeliveryFee
}

// DeliveryTimeline returns the delivery timeline for a town.
func DeliveryTimeline(town string) string {
	if timeline, ok := deliveryTimelines[strings.ToLower(town)]; ok {
		return timeline
	}
	return defaultDeliveryTimeline
}
