package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"meals_on_wheels/internal/config"
	"meals_on_wheels/internal/events"
	"meals_on_wheels/internal/logger"
	"meals_on_wheels/internal/routes"
)

func main() {
	cfg := config.Load()

	// Initialize structured logging to stdout and a rotating file
	out := logger.Setup(cfg.LogFile, cfg.LogLevel)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to the database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("database initialization failed")
	}

	publisher, err := events.New(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopicPrefix)
	if err != nil {
		log.WithError(err).Warn("MQTT unavailable, meal events disabled")
		publisher = events.NopPublisher{}
	}
	defer publisher.Close()

	r := routes.SetupRouter(routes.Deps{
		Config:    cfg,
		DB:        db,
		Events:    publisher,
		AccessLog: out,
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("Server running at :%s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
