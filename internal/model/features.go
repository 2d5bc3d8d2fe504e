// Package model defines the core domain models used throughout the application.
package model

// Canonical feature column names, in the fixed order the classifier expects.
const (
	ColDiagonal    = "diagonal"
	ColHeightLeft  = "height_left"
	ColHeightRight = "height_right"
	ColMarginLow   = "margin_low"
	ColMarginUp    = "margin_up"
	ColLength      = "length"
)

// FeatureColumns lists the six canonical feature names in scoring order.
// Scaler and classifier artifacts are fit against vectors in this order.
var FeatureColumns = []string{
	ColDiagonal,
	ColHeightLeft,
	ColHeightRight,
	ColMarginLow,
	ColMarginUp,
	ColLength,
}

// FeatureCount is the dimensionality of one note's measurement vector.
const FeatureCount = 6

// Features holds the six geometric measurements of a single note, in
// millimeters, after resolution and imputation.
type Features struct {
	Diagonal    float64 `json:"diagonal"`
	HeightLeft  float64 `json:"height_left"`
	HeightRight float64 `json:"height_right"`
	MarginLow   float64 `json:"margin_low"`
	MarginUp    float64 `json:"margin_up"`
	Length      float64 `json:"length"`
}

// Vector returns the measurements as a slice in scoring order.
func (f Features) Vector() []float64 {
	return []float64{f.Diagonal, f.HeightLeft, f.HeightRight, f.MarginLow, f.MarginUp, f.Length}
}

// FeaturesFromVector builds Features from a slice in scoring order.
// The slice must have exactly FeatureCount entries.
func FeaturesFromVector(v []float64) Features {
	return Features{
		Diagonal:    v[0],
		HeightLeft:  v[1],
		HeightRight: v[2],
		MarginLow:   v[3],
		MarginUp:    v[4],
		Length:      v[5],
	}
}
