package model

import (
	"fmt"

	fp "failure_predictor"
)

// Scaler standardizes a row as (x - mean) / scale, column by column.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *Scaler) validate() error {
	if len(s.Mean) != fp.FeatureCount || len(s.Scale) != fp.FeatureCount {
		return fmt.Errorf("%w: scaler needs %d means and scales, got %d and %d",
			ErrBadScaler, fp.FeatureCount, len(s.Mean), len(s.Scale))
	}
	for i, sc := range s.Scale {
		if sc == 0 {
			return fmt.Errorf("%w: zero scale for column %q", ErrBadScaler, fp.FeatureColumns[i])
		}
	}
	return nil
}

// Transform returns the standardized copy of v.
func (s *Scaler) Transform(v fp.FeatureVector) fp.FeatureVector {
	var out fp.FeatureVector
	for i := range v {
		out[i] = (v[i] - s.Mean[i]) / s.Scale[i]
	}
	return out
}
