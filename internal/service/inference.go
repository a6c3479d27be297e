package service

import (
	"context"
	"errors"
	"fmt"

	fp "failure_predictor"
	"failure_predictor/internal/model"
)

// ErrEmptyPrediction is returned when the model answers with no score for the row.
var ErrEmptyPrediction = errors.New("model returned no prediction")

// InferenceService holds no per-request state; the predictor is shared read-only.
type InferenceService struct {
	predictor model.Predictor
}

func NewInferenceService(predictor model.Predictor) *InferenceService {
	return &InferenceService{predictor: predictor}
}

// HandleSubmit implements the page's request cycle:
//   - reset, or any unknown action, renders the blank form;
//   - predict parses the fields, scores the reading and echoes what was entered.
//
// A validation failure yields a page whose prediction is the "Invalid input: ..."
// message and which echoes nothing.
func (s *InferenceService) HandleSubmit(ctx context.Context, fields fp.FormFields, action fp.Action) (Page, error) {
	if action != fp.ActionPredict {
		return Page{}, nil
	}

	reading, err := fp.ParseForm(fields)
	if err != nil {
		if ve, ok := fp.AsValidationError(err); ok {
			return Page{Prediction: ve.Message()}, nil
		}
		return Page{}, err
	}

	res, err := s.Predict(ctx, reading)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Prediction: string(res.Label),
		Inputs:     echoInputs(res.Reading),
	}, nil
}

// Predict scores one reading as the only row of a model call.
func (s *InferenceService) Predict(ctx context.Context, r fp.SensorReading) (fp.PredictionResult, error) {
	scores, err := s.predictor.Predict(ctx, []fp.FeatureVector{r.Features()})
	if err != nil {
		return fp.PredictionResult{}, fmt.Errorf("predict: %w", err)
	}
	if len(scores) == 0 {
		return fp.PredictionResult{}, ErrEmptyPrediction
	}
	return fp.PredictionResult{
		Label:   fp.LabelFromScore(scores[0]),
		Reading: r,
	}, nil
}
