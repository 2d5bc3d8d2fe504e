package pipeline

import (
	"math"

	"github.com/mverdier/greenback/internal/model"
)

// percentDecimals is the rounding applied to the summary percentages. Both
// percentages in one summary always use the same rounding.
const percentDecimals = 2

// Aggregate computes the summary statistics for an ordered batch of
// predictions. An empty batch reports zero for both percentages instead of
// dividing by zero.
func Aggregate(predictions []model.Prediction) model.StatsSummary {
	total := len(predictions)
	genuine := 0
	for _, p := range predictions {
		if p.Label == model.LabelGenuine {
			genuine++
		}
	}
	fake := total - genuine

	stats := model.StatsSummary{
		Total:        total,
		GenuineCount: genuine,
		FakeCount:    fake,
	}
	if total == 0 {
		return stats
	}

	stats.GenuinePercentage = roundPercent(float64(genuine) / float64(total) * 100)
	stats.FakePercentage = roundPercent(float64(fake) / float64(total) * 100)
	return stats
}

func roundPercent(v float64) float64 {
	shift := math.Pow(10, percentDecimals)
	return math.Round(v*shift) / shift
}
