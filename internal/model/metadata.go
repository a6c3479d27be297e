package model

import (
	"encoding/json"
	"fmt"
	"os"

	fp "failure_predictor"
)

// Metadata describes how the model artifact was trained. It is optional and
// lives next to the .onnx file.
type Metadata struct {
	Columns []string `json:"columns,omitempty"`
	Scaler  *Scaler  `json:"scaler,omitempty"`
}

// LoadMetadata reads and validates a metadata file. An empty path yields
// empty metadata: raw features, no column check.
func LoadMetadata(path string) (Metadata, error) {
	if path == "" {
		return Metadata{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("read metadata: %w", err)
	}
	var md Metadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return Metadata{}, fmt.Errorf("parse metadata: %w", err)
	}
	if err := md.Validate(); err != nil {
		return Metadata{}, err
	}
	return md, nil
}

// Validate checks the recorded training columns against FeatureColumns and
// the scaler dimensions against the feature width.
func (m Metadata) Validate() error {
	if len(m.Columns) > 0 {
		if len(m.Columns) != fp.FeatureCount {
			return fmt.Errorf("%w: model has %d columns, want %d", ErrColumnMismatch, len(m.Columns), fp.FeatureCount)
		}
		for i, name := range fp.FeatureColumns {
			if m.Columns[i] != name {
				return fmt.Errorf("%w: column %d is %q, want %q", ErrColumnMismatch, i, m.Columns[i], name)
			}
		}
	}
	if m.Scaler != nil {
		return m.Scaler.validate()
	}
	return nil
}
