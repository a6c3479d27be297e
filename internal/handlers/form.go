package handlers

import (
	"net/http"

	fp "failure_predictor"
	"failure_predictor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	pageTemplate       = "index.html"
	msgPredictionError = "Prediction failed. Please submit the form again."
)

// submittedFields are the only form keys copied out of the request.
var submittedFields = []string{
	fp.FieldProcessTemperature,
	fp.FieldAirTemperature,
	fp.FieldRotationalSpeed,
	fp.FieldTorque,
	fp.FieldToolWear,
	fp.FieldType,
}

// index renders the form. GET and every other non-POST method get the blank page.
func (h *Handler) index(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.HTML(http.StatusOK, pageTemplate, service.Page{})
		return
	}

	fields := make(fp.FormFields, len(submittedFields))
	for _, name := range submittedFields {
		if v, ok := c.GetPostForm(name); ok {
			fields[name] = v
		}
	}
	action := fp.Action(c.PostForm(fp.FieldAction))

	page, err := h.services.Inference.HandleSubmit(c.Request.Context(), fields, action)
	if err != nil {
		h.logError(c, "form_prediction_failed", err)
		c.HTML(http.StatusInternalServerError, pageTemplate, service.Page{Prediction: msgPredictionError})
		return
	}
	if page.Prediction != "" {
		h.requestLog(c).Debugw("form_prediction", "action", action, "result", page.Prediction)
	}
	c.HTML(http.StatusOK, pageTemplate, page)
}
