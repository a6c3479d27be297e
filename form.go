package failure_predictor

import (
	"strconv"
	"strings"
)

// Form field names posted by the page.
const (
	FieldAirTemperature     = "air_temperature"
	FieldProcessTemperature = "process_temperature"
	FieldRotationalSpeed    = "rotational_speed"
	FieldTorque             = "torque"
	FieldToolWear           = "tool_wear"
	FieldType               = "type"
	FieldAction             = "action"
)

// Action is the button the user pressed.
type Action string

const (
	ActionPredict Action = "predict"
	ActionReset   Action = "reset"
)

// FormFields is the raw, untyped submission. It is only read by ParseForm.
type FormFields map[string]string

// ParseForm turns raw form text into a SensorReading. Numeric fields are
// parsed in the order the page lists them and the first failure is returned.
func ParseForm(fields FormFields) (SensorReading, error) {
	var (
		r   SensorReading
		err error
	)
	if r.ProcessTemperature, err = parseFloatField(fields, FieldProcessTemperature); err != nil {
		return SensorReading{}, err
	}
	if r.AirTemperature, err = parseFloatField(fields, FieldAirTemperature); err != nil {
		return SensorReading{}, err
	}
	if r.RotationalSpeed, err = parseFloatField(fields, FieldRotationalSpeed); err != nil {
		return SensorReading{}, err
	}
	if r.Torque, err = parseFloatField(fields, FieldTorque); err != nil {
		return SensorReading{}, err
	}
	if r.ToolWear, err = parseFloatField(fields, FieldToolWear); err != nil {
		return SensorReading{}, err
	}

	raw, ok := fields[FieldType]
	if !ok {
		return SensorReading{}, &ValidationError{Kind: MissingField, Field: FieldType}
	}
	if r.Type, err = ParseMachineType(raw); err != nil {
		return SensorReading{}, err
	}
	return r, nil
}

func parseFloatField(fields FormFields, name string) (float64, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, &ValidationError{Kind: MissingField, Field: name}
	}
	text := strings.TrimSpace(raw)
	if isHexLiteral(text) {
		return 0, &ValidationError{Kind: InvalidNumber, Field: name, Value: raw}
	}
	// Out-of-range values such as 1e400 fail with ErrRange and are rejected.
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &ValidationError{Kind: InvalidNumber, Field: name, Value: raw}
	}
	return v, nil
}

// isHexLiteral reports a 0x/0X mantissa after an optional sign. ParseFloat
// accepts hex floats; decimal notation is the only one the form allows.
func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
