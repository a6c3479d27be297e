package failure_predictor

import "strings"

// MachineType is the product quality variant of the machine: H(igh), M(edium) or L(ow).
type MachineType string

const (
	MachineTypeH MachineType = "H"
	MachineTypeM MachineType = "M"
	MachineTypeL MachineType = "L"
)

// ParseMachineType trims and upper-cases raw input before matching it against H, M and L.
func ParseMachineType(raw string) (MachineType, error) {
	switch t := MachineType(strings.ToUpper(strings.TrimSpace(raw))); t {
	case MachineTypeH, MachineTypeM, MachineTypeL:
		return t, nil
	default:
		return "", &ValidationError{Kind: InvalidType, Field: FieldType, Value: raw}
	}
}

// FeatureCount is the width of the vector the model was fit on.
const FeatureCount = 8

// FeatureColumns is the column order the model was trained with. Feature
// construction, the model metadata check and the tests all read it from here.
var FeatureColumns = [FeatureCount]string{
	"Air temperature",
	"Process temperature",
	"Rotational speed",
	"Torque",
	"Tool wear",
	"Type_H",
	"Type_L",
	"Type_M",
}

// FeatureVector is one model input row, ordered as FeatureColumns.
type FeatureVector [FeatureCount]float64

// SensorReading is one validated submission.
type SensorReading struct {
	AirTemperature     float64     `json:"air_temperature"`     // K
	ProcessTemperature float64     `json:"process_temperature"` // K
	RotationalSpeed    float64     `json:"rotational_speed"`    // rpm
	Torque             float64     `json:"torque"`              // Nm
	ToolWear           float64     `json:"tool_wear"`           // min
	Type               MachineType `json:"type"`
}

// Features builds the model row. Type is one-hot encoded into the H, L, M slots.
func (r SensorReading) Features() FeatureVector {
	return FeatureVector{
		r.AirTemperature,
		r.ProcessTemperature,
		r.RotationalSpeed,
		r.Torque,
		r.ToolWear,
		indicator(r.Type == MachineTypeH),
		indicator(r.Type == MachineTypeL),
		indicator(r.Type == MachineTypeM),
	}
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Label is the human-readable classification shown to the user.
type Label string

const (
	LabelNormal  Label = "Normal"
	LabelFailure Label = "Failure"
)

// OutlierScore is what the outlier detector returns for an anomalous row.
const OutlierScore = -1

// LabelFromScore maps a raw model score: -1 is a failure, anything else is normal.
func LabelFromScore(score int64) Label {
	if score == OutlierScore {
		return LabelFailure
	}
	return LabelNormal
}

// PredictionResult is the classification together with the reading it was made for.
type PredictionResult struct {
	Label   Label         `json:"prediction"`
	Reading SensorReading `json:"inputs"`
}
