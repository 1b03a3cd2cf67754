package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-backend/config"
	_ "portfolio-backend/docs" // Important for Swagger
	v1 "portfolio-backend/internal/delivery/http/v1"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           Portfolio Backend API
// @version         1.0
// @description     Contact form relay and map data for the portfolio site.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	logger.Init(cfg.IsProduction())
	defer func() { _ = logger.Log.Sync() }()
	logger.Log.Info("Starting portfolio backend",
		zap.String("port", cfg.Port),
		zap.String("mail_provider", cfg.MailProvider),
	)

	// 3. Setup Mail Transport
	sender, err := email.NewSender(cfg, logger.Log)
	if err != nil {
		logger.Log.Fatal("Failed to set up mail transport", zap.Error(err))
	}

	// 4. Setup UseCases
	contactUC := usecase.NewContactUsecase(sender, validation.New(), usecase.ContactOwner{
		Name:     cfg.OwnerName,
		Email:    cfg.ContactEmailTo,
		MailFrom: cfg.MailFrom,
	})
	locationUC := usecase.NewLocationUsecase(cfg.OwnerName, cfg.OfficeLabel, cfg.OfficeLatitude, cfg.OfficeLongitude)
	healthUC := usecase.NewHealthUsecase(cfg.MailProvider)

	// 5. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:  contactUC,
		LocationUC: locationUC,
		HealthUC:   healthUC,
		Logger:     logger.Log,
		Config:     cfg,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Listen failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}
