package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"failure_predictor/internal/config"
	"failure_predictor/internal/handlers"
	"failure_predictor/internal/logger"
	"failure_predictor/internal/model"
	"failure_predictor/internal/server"
	"failure_predictor/internal/service"

	"github.com/gin-gonic/gin"
)

// @title        Machine Failure Predictor API
// @version      1.0
// @description  Scores machine sensor readings with a pre-trained outlier detector.
// @BasePath     /
func main() {
	// configs/config.yml, also when started from cmd/
	cfg, err := config.Load("configs", "../configs")
	if err != nil {
		logger.Get(logger.Options{Level: logger.ErrorLevel}).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if cfg.Log.Level != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	// The model is loaded exactly once; without it there is nothing to serve.
	m, err := model.Load(model.Options{
		Path:           cfg.Model.Path,
		MetadataPath:   cfg.Model.MetadataPath,
		RuntimeLibrary: cfg.Model.RuntimeLibrary,
		IntraOpThreads: cfg.Model.IntraOpThreads,
	})
	if err != nil {
		log.Fatalw("failed to load model", "err", err, "path", cfg.Model.Path)
	}
	defer func() {
		if cerr := m.Close(); cerr != nil {
			log.Errorw("failed to release model", "err", cerr)
		}
	}()
	log.Infow("model_loaded",
		"path", cfg.Model.Path,
		"input", m.InputName(),
		"output", m.OutputName(),
		"scaled", m.Scaled(),
	)

	// wire dependencies
	services := service.NewService(m)
	apiHandler := handlers.NewHandler(services, log)

	srv := server.New(server.Config{
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(srv, cfg, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = config.DefaultPort
		}
		log.Infow("http_server_starting", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, cfg config.Config, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
	_ = log.Sync()
}
