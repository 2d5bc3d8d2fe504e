package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mverdier/greenback/internal/common"
	"github.com/mverdier/greenback/internal/model"
)

// Pipeline composes resolution, validation, imputation, scoring, and
// aggregation into the single classification entry point. The scaler and
// classifier are loaded once at startup and shared read-only across calls;
// Classify itself holds no mutable state.
type Pipeline struct {
	scaler     Scaler
	classifier Classifier
}

// New creates a pipeline around the given artifacts.
func New(scaler Scaler, classifier Classifier) (*Pipeline, error) {
	if scaler == nil {
		return nil, fmt.Errorf("%w: scaler is required", common.ErrMissingConfig)
	}
	if classifier == nil {
		return nil, fmt.Errorf("%w: classifier is required", common.ErrMissingConfig)
	}
	return &Pipeline{scaler: scaler, classifier: classifier}, nil
}

// Classify runs the full pipeline over a raw table and returns one prediction
// per row plus the batch summary. IDs are 1-based positions in the resolved
// table. Either every row scores or the whole batch fails; no partial results
// are returned.
func (p *Pipeline) Classify(ctx context.Context, raw *model.Table) (*model.Result, error) {
	resolved := Resolve(raw)

	if err := Validate(resolved); err != nil {
		return nil, err
	}

	features, err := Impute(resolved)
	if err != nil {
		return nil, err
	}

	predictions := make([]model.Prediction, 0, len(features))
	for i, f := range features {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		prediction, err := p.scoreRow(i+1, f)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, prediction)
	}

	stats := Aggregate(predictions)

	slog.Debug("classified batch",
		"rows", stats.Total,
		"genuine", stats.GenuineCount,
		"fake", stats.FakeCount)

	return &model.Result{Predictions: predictions, Stats: stats}, nil
}

// scoreRow scales one imputed row and classifies it. The reported probability
// is the classifier's confidence in the label it assigned: p1 for genuine
// notes, p0 for fake ones.
func (p *Pipeline) scoreRow(id int, f model.Features) (model.Prediction, error) {
	scaled, err := p.scaler.Transform(f.Vector())
	if err != nil {
		return model.Prediction{}, common.NewScoringError("scaler", err)
	}

	class, proba, err := p.classifier.PredictWithConfidence(scaled)
	if err != nil {
		return model.Prediction{}, common.NewScoringError("classifier", err)
	}

	label := model.LabelFake
	probability := proba[0]
	if class == 1 {
		label = model.LabelGenuine
		probability = proba[1]
	}

	return model.Prediction{
		ID:          id,
		Label:       label,
		Probability: probability,
		Features:    f,
		ImageURL:    label.ImageURL(),
	}, nil
}
