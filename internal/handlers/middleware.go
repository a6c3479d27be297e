package handlers

import (
	"time"

	"failure_predictor/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-ID"
	ctxRequestID    = "requestId"
)

// requestIDMiddleware keeps the caller's X-Request-ID or assigns a new one.
func requestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(headerRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(ctxRequestID, id)
	c.Header(headerRequestID, id)
	c.Next()
}

func requestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}

// requestLog is the handler logger tagged with the request id.
func (h *Handler) requestLog(c *gin.Context) *logger.Logger {
	if h.log == nil {
		return logger.Nop()
	}
	return h.log.With("request_id", requestID(c))
}

// requestLogger writes one line per request after the handler chain ran.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.requestLog(c).Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
	)
}
