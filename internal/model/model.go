package model

import (
	"context"
	"errors"
	"fmt"

	fp "failure_predictor"
)

var (
	ErrColumnMismatch = errors.New("feature columns do not match the model")
	ErrBadScaler      = errors.New("invalid scaler")
	ErrNoRows         = errors.New("no rows to predict")
)

// Predictor scores rows with the outlier detector: -1 for an outlier, 1 for an inlier.
// Implementations must be safe for concurrent use.
type Predictor interface {
	Predict(ctx context.Context, rows []fp.FeatureVector) ([]int64, error)
}

// Options locates the artifact and tunes the runtime.
type Options struct {
	Path           string
	MetadataPath   string
	RuntimeLibrary string
	IntraOpThreads int
}

// Model is the loaded artifact. It is created once at start-up and never mutated.
type Model struct {
	session  *onnxSession
	metadata Metadata
}

// Load reads the metadata (if any) and opens an ONNX session for the model file.
// Any failure here means the service cannot serve predictions at all.
func Load(opts Options) (*Model, error) {
	md, err := LoadMetadata(opts.MetadataPath)
	if err != nil {
		return nil, err
	}
	sess, err := newONNXSession(opts.Path, opts.RuntimeLibrary, opts.IntraOpThreads)
	if err != nil {
		return nil, err
	}
	return &Model{session: sess, metadata: md}, nil
}

// Predict runs a single inference over rows and returns one score per row.
func (m *Model) Predict(ctx context.Context, rows []fp.FeatureVector) ([]int64, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if m.metadata.Scaler != nil {
		scaled := make([]fp.FeatureVector, len(rows))
		for i, row := range rows {
			scaled[i] = m.metadata.Scaler.Transform(row)
		}
		rows = scaled
	}

	scores, err := m.session.infer(rows)
	if err != nil {
		return nil, err
	}
	if len(scores) != len(rows) {
		return nil, fmt.Errorf("onnx: got %d scores for %d rows", len(scores), len(rows))
	}
	return scores, nil
}

// Scaled reports whether rows are standardized before inference.
func (m *Model) Scaled() bool { return m.metadata.Scaler != nil }

// InputName and OutputName expose the tensor names resolved from the artifact.
func (m *Model) InputName() string  { return m.session.inputName }
func (m *Model) OutputName() string { return m.session.outputName }

// Close releases the session and the runtime environment.
func (m *Model) Close() error {
	if m.session == nil {
		return nil
	}
	return m.session.close()
}
