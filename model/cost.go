package model

// DateInterval bounds a billing period. The strings are ISO dates as the
// cloud APIs return them.
type DateInterval struct {
	Start *string
	End   *string
}

// CostInfo is one billing period worth of costs.
type CostInfo struct {
	DateInterval
	CostGroup
}

// CostGroup maps a grouping key, usually a service name, to its cost.
type CostGroup map[string]struct {
	Amount float64
	Unit   string
}

// Total sums every group in the period.
func (g CostGroup) Total() float64 {
	var total float64
	for _, entry := range g {
		total += entry.Amount
	}
	return total
}
