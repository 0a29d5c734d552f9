package models

// RiskFlag classifies a rolling volatility value against the series mean.
type RiskFlag string

const (
	RiskHigh RiskFlag = "High"
	RiskLow  RiskFlag = "Low"
)

// VolatilityPoint is the rolling standard deviation at one bucket.
// Value is nil for buckets where the trailing window is incomplete; those
// points carry no risk flag.
type VolatilityPoint struct {
	Label BucketLabel
	Value *float64
	Risk  RiskFlag
}

// Defined reports whether the point carries a rolling value.
func (p VolatilityPoint) Defined() bool {
	return p.Value != nil
}
