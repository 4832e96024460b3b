package shipments

import (
	"strconv"
	"strings"
)

// Rate modes as sent by the entry form. In fixed mode the rate column holds
// the literal "Fix" and the freight is whatever the user typed in.
const (
	RateTypeCalculated = "calculated"
	RateTypeFixed      = "fixed"
)

// ComputeFreight derives the freight charge from weight (kg), the per-1000-kg
// rate and the delivery charge: (weight/1000)*rate + deliveryCharge, floored
// at zero. An unparseable rate counts as zero.
func ComputeFreight(weight float64, rate string, deliveryCharge float64) float64 {
	f := (weight/1000)*parseAmount(rate) + deliveryCharge
	if f < 0 {
		return 0
	}
	return f
}

// parseAmount: missing or non-numeric amounts are treated as zero so one
// malformed record never aborts a calculation.
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
