package model

// StatsSummary aggregates one batch of predictions.
//
// GenuineCount + FakeCount always equals Total, and the two percentages sum
// to 100 within rounding, except for an empty batch where both are 0.
type StatsSummary struct {
	Total             int     `json:"total"`
	GenuineCount      int     `json:"genuine"`
	FakeCount         int     `json:"fake"`
	GenuinePercentage float64 `json:"genuine_percentage"`
	FakePercentage    float64 `json:"fake_percentage"`
}
