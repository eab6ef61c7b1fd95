package dto

// ProjectionPoint is one month of the compounding series. Comparison is nil
// when no "my bank" is set.
type ProjectionPoint struct {
	Month      int      `json:"month"`
	Label      string   `json:"label"`
	Potential  float64  `json:"potential"`
	Comparison *float64 `json:"comparison,omitempty"`
}

type ProjectionResult struct {
	Points              []ProjectionPoint `json:"points"`
	TotalGain           float64           `json:"totalGain"`
	ComparisonTotalGain *float64          `json:"comparisonTotalGain,omitempty"`
	PotentialBankName   string            `json:"potentialBankName,omitempty"`
	CurrentBankName     string            `json:"currentBankName,omitempty"`
}
