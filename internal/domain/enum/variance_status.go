package enum

// VarianceStatus classifies the cash variance computed at register close
type VarianceStatus string

const (
	VarianceStatusOver  VarianceStatus = "over"
	VarianceStatusShort VarianceStatus = "short"
	VarianceStatusExact VarianceStatus = "exact"
)

// ClassifyVariance maps a signed variance (actual - expected, in minor units)
// to its status.
func ClassifyVariance(variance int64) VarianceStatus {
	switch {
	case variance > 0:
		return VarianceStatusOver
	case variance < 0:
		return VarianceStatusShort
	default:
		return VarianceStatusExact
	}
}
