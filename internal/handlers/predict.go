package handlers

import (
	"net/http"

	fp "failure_predictor"

	"github.com/gin-gonic/gin"
)

// Common response/status constants.
const (
	statusOK = "ok"

	errPredict = "prediction failed"
)

// PredictRequest is the JSON form of one sensor reading.
type PredictRequest struct {
	// Air temperature in K
	AirTemperature *float64 `json:"air_temperature" example:"298.1"`
	// Process temperature in K
	ProcessTemperature *float64 `json:"process_temperature" example:"308.6"`
	// Rotational speed in rpm
	RotationalSpeed *float64 `json:"rotational_speed" example:"1551"`
	// Torque in Nm
	Torque *float64 `json:"torque" example:"42.8"`
	// Tool wear in minutes
	ToolWear *float64 `json:"tool_wear" example:"0"`
	// Machine type. Allowed: H, M, L (case-insensitive)
	Type *string `json:"type" example:"M"`
}

// reading validates the request the same way the form is validated.
func (r PredictRequest) reading() (fp.SensorReading, error) {
	numbers := []struct {
		field string
		v     *float64
	}{
		{fp.FieldProcessTemperature, r.ProcessTemperature},
		{fp.FieldAirTemperature, r.AirTemperature},
		{fp.FieldRotationalSpeed, r.RotationalSpeed},
		{fp.FieldTorque, r.Torque},
		{fp.FieldToolWear, r.ToolWear},
	}
	for _, n := range numbers {
		if n.v == nil {
			return fp.SensorReading{}, &fp.ValidationError{Kind: fp.MissingField, Field: n.field}
		}
	}
	if r.Type == nil {
		return fp.SensorReading{}, &fp.ValidationError{Kind: fp.MissingField, Field: fp.FieldType}
	}
	typ, err := fp.ParseMachineType(*r.Type)
	if err != nil {
		return fp.SensorReading{}, err
	}
	return fp.SensorReading{
		AirTemperature:     *r.AirTemperature,
		ProcessTemperature: *r.ProcessTemperature,
		RotationalSpeed:    *r.RotationalSpeed,
		Torque:             *r.Torque,
		ToolWear:           *r.ToolWear,
		Type:               typ,
	}, nil
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Predict machine failure
// @Description  Scores one reading with the outlier detector. -1 from the model is reported as Failure, anything else as Normal.
// @Tags         prediction
// @Accept       json
// @Produce      json
// @Param        body  body      PredictRequest  true  "Sensor reading"
// @Success      200   {object}  failure_predictor.PredictionResult
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/predict [post]
func (h *Handler) predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fp.InvalidInputPrefix + err.Error()})
		return
	}
	reading, err := req.reading()
	if err != nil {
		h.respondValidation(c, err)
		return
	}
	res, err := h.services.Inference.Predict(c.Request.Context(), reading)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errPredict, "api_prediction_failed", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// respondValidation writes a 400 for validation errors and a 500 for anything else.
func (h *Handler) respondValidation(c *gin.Context, err error) {
	if ve, ok := fp.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message(), "field": ve.Field})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, errPredict, "api_validation_failed", err)
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	h.logError(c, logKey, err, kv...)
	c.JSON(httpCode, gin.H{"error": userMsg})
}

func (h *Handler) logError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	if err != nil {
		h.requestLog(c).Errorw(logKey, append([]interface{}{"err", err}, kv...)...)
	}
}
