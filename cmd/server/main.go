package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Hnibbo/hup-backend/internal/api"
	"github.com/Hnibbo/hup-backend/internal/config"
	"github.com/Hnibbo/hup-backend/internal/database"
	"github.com/Hnibbo/hup-backend/internal/handler"
	"github.com/Hnibbo/hup-backend/internal/logger"
	"github.com/Hnibbo/hup-backend/internal/middleware"
	"github.com/Hnibbo/hup-backend/internal/services"
	"github.com/Hnibbo/hup-backend/internal/worker"
	"github.com/joho/godotenv"
)

func main() {
	// Charger .env en local, sans erreur s'il est absent
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis
	rdb, err := database.ConnectRedis(cfg)
	if err != nil {
		logger.Error("Redis connection failed: %v", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Services externes : l'API démarre sans eux, les routes concernées
	// répondent alors 503
	if stripe, err := services.NewStripeService(cfg); err != nil {
		logger.Warning("billing disabled: %v", err)
	} else {
		handler.Stripe = stripe
	}

	if cld, err := services.NewCloudinaryService(cfg); err != nil {
		logger.Warning("media storage disabled: %v", err)
	} else {
		handler.Cloudinary = cld
	}

	// Worker de recalcul de l'énergie des villes
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	energyWorker := worker.NewEnergyWorker()
	energyWorker.Start(ctx)
	defer energyWorker.Stop()

	// Initialize routes
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	corsHandler := middleware.CORSMiddleware(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsHandler,
	}

	go func() {
		logger.Success("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed: %v", err)
			os.Exit(1)
		}
	}()

	// Arrêt propre sur SIGINT / SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("Shutdown failed: %v", err)
	}
}
