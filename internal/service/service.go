package service

import (
	"context"

	fp "failure_predictor"
	"failure_predictor/internal/model"
)

// Inference turns submissions into predictions.
type Inference interface {
	// HandleSubmit runs one form submission through reset or predict and
	// returns the page to render. Validation problems are reported on the
	// page; the error is reserved for inference failures.
	HandleSubmit(ctx context.Context, fields fp.FormFields, action fp.Action) (Page, error)

	// Predict classifies an already validated reading.
	Predict(ctx context.Context, r fp.SensorReading) (fp.PredictionResult, error)
}

// Service aggregates the application services.
type Service struct {
	Inference
}

// NewService wires the loaded model into the services.
func NewService(predictor model.Predictor) *Service {
	return &Service{
		Inference: NewInferenceService(predictor),
	}
}
