package handlers

import (
	"html/template"

	"failure_predictor/internal/logger"
	"failure_predictor/internal/service"
	"failure_predictor/web"

	_ "failure_predictor/docs" // registers the swagger spec

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware, h.requestLogger)
	router.SetHTMLTemplate(template.Must(web.Templates()))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	// The form page answers every method; only POST is a submission.
	router.Any("/", h.index)

	h.registerAPIRoutes(router)

	// Live scoring over WebSocket, same port.
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		// Body example: {"air_temperature":298.1,"process_temperature":308.6,"rotational_speed":1551,"torque":42.8,"tool_wear":0,"type":"M"}
		api.POST("/predict", h.predict)
	}
}
