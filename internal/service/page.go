package service

import (
	"strconv"

	fp "failure_predictor"
)

// EchoedInput is one row of the "you entered" table.
type EchoedInput struct {
	Label string
	Value string
}

// Page is the render model of the single form page. A zero Page is the blank form.
type Page struct {
	Prediction string
	Inputs     []EchoedInput
}

// Blank reports whether the page carries neither a prediction nor echoed inputs.
func (p Page) Blank() bool {
	return p.Prediction == "" && len(p.Inputs) == 0
}

// echoInputs lists the values as entered, in display order, with the type
// shown as its letter rather than the one-hot columns.
func echoInputs(r fp.SensorReading) []EchoedInput {
	return []EchoedInput{
		{Label: "Air temperature", Value: formatFloat(r.AirTemperature)},
		{Label: "Process temperature", Value: formatFloat(r.ProcessTemperature)},
		{Label: "Rotational speed", Value: formatFloat(r.RotationalSpeed)},
		{Label: "Torque", Value: formatFloat(r.Torque)},
		{Label: "Tool wear", Value: formatFloat(r.ToolWear)},
		{Label: "Type", Value: string(r.Type)},
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
