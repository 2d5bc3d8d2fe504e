package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mverdier/greenback/internal/model"
)

func predictionsWithLabels(labels ...model.Label) []model.Prediction {
	out := make([]model.Prediction, len(labels))
	for i, l := range labels {
		out[i] = model.Prediction{ID: i + 1, Label: l}
	}
	return out
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name        string
		labels      []model.Label
		wantGenuine int
		wantFake    int
		wantGenPct  float64
		wantFakePct float64
	}{
		{
			name:        "mixed batch",
			labels:      []model.Label{model.LabelGenuine, model.LabelFake, model.LabelGenuine, model.LabelGenuine},
			wantGenuine: 3,
			wantFake:    1,
			wantGenPct:  75.0,
			wantFakePct: 25.0,
		},
		{
			name:        "all genuine",
			labels:      []model.Label{model.LabelGenuine, model.LabelGenuine},
			wantGenuine: 2,
			wantGenPct:  100.0,
		},
		{
			name:        "all fake",
			labels:      []model.Label{model.LabelFake},
			wantFake:    1,
			wantFakePct: 100.0,
		},
		{
			name:        "thirds round to two decimals",
			labels:      []model.Label{model.LabelGenuine, model.LabelFake, model.LabelFake},
			wantGenuine: 1,
			wantFake:    2,
			wantGenPct:  33.33,
			wantFakePct: 66.67,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := Aggregate(predictionsWithLabels(tt.labels...))
			assert.Equal(t, len(tt.labels), stats.Total)
			assert.Equal(t, tt.wantGenuine, stats.GenuineCount)
			assert.Equal(t, tt.wantFake, stats.FakeCount)
			assert.Equal(t, stats.Total, stats.GenuineCount+stats.FakeCount)
			assert.InDelta(t, tt.wantGenPct, stats.GenuinePercentage, 1e-9)
			assert.InDelta(t, tt.wantFakePct, stats.FakePercentage, 1e-9)
			assert.InDelta(t, 100.0, stats.GenuinePercentage+stats.FakePercentage, 0.011)
		})
	}
}

func TestAggregateEmptyBatch(t *testing.T) {
	stats := Aggregate(nil)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.GenuineCount)
	assert.Equal(t, 0, stats.FakeCount)
	assert.Zero(t, stats.GenuinePercentage)
	assert.Zero(t, stats.FakePercentage)
}
