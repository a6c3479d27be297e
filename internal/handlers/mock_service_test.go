package handlers

import (
	"context"
	"sync"

	fp "failure_predictor"
	"failure_predictor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockInference struct {
	mu sync.Mutex

	page       service.Page
	submitErr  error
	result     fp.PredictionResult
	predictErr error

	submitCalls  int
	lastFields   fp.FormFields
	lastAction   fp.Action
	predictCalls int
	lastReading  fp.SensorReading
}

func (m *mockInference) HandleSubmit(ctx context.Context, fields fp.FormFields, action fp.Action) (service.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitCalls++
	m.lastFields = fields
	m.lastAction = action
	return m.page, m.submitErr
}

func (m *mockInference) Predict(ctx context.Context, r fp.SensorReading) (fp.PredictionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.predictCalls++
	m.lastReading = r
	if m.predictErr != nil {
		return fp.PredictionResult{}, m.predictErr
	}
	res := m.result
	res.Reading = r
	return res, nil
}

// scoreStub is a model.Predictor used to drive the real inference service end to end.
type scoreStub struct {
	score int64
}

func (s scoreStub) Predict(ctx context.Context, rows []fp.FeatureVector) ([]int64, error) {
	out := make([]int64, len(rows))
	for i := range out {
		out[i] = s.score
	}
	return out, nil
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}
