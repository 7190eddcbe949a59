package capacity

// Status classifies a utilization percentage.
type Status string

const (
	StatusOverCapacity Status = "over_capacity"
	StatusNearCapacity Status = "near_capacity"
	StatusGood         Status = "good"
	StatusUnder        Status = "under_utilized"
	StatusNoCapacity   Status = "no_capacity"
)

// Utilization band boundaries, in percent.
const (
	OverThreshold = 100.0
	NearThreshold = 90.0
	GoodThreshold = 70.0
)

// ClassifyUtilization maps a utilization percentage to a Status:
// >100 over, >90 near, >70 good, otherwise under.
func ClassifyUtilization(pct float64) Status {
	switch {
	case pct > OverThreshold:
		return StatusOverCapacity
	case pct > NearThreshold:
		return StatusNearCapacity
	case pct > GoodThreshold:
		return StatusGood
	default:
		return StatusUnder
	}
}

// utilization returns assigned/available*100, or 0 when nothing is available.
func utilization(assigned, available float64) float64 {
	if available <= 0 {
		return 0
	}
	return assigned / available * 100
}

func classify(pct float64, available float64) (Status, bool) {
	if available <= 0 {
		return StatusNoCapacity, false
	}
	st := ClassifyUtilization(pct)
	return st, st == StatusOverCapacity
}
