package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/vehiql/vehiql-golang/internal/ai"
	"github.com/vehiql/vehiql-golang/internal/cache"
	"github.com/vehiql/vehiql-golang/internal/config"
	"github.com/vehiql/vehiql-golang/internal/database"
	"github.com/vehiql/vehiql-golang/internal/handlers"
	"github.com/vehiql/vehiql-golang/internal/logger"
	"github.com/vehiql/vehiql-golang/internal/routes"
	"github.com/vehiql/vehiql-golang/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	zlog, err := logger.New(false)
	if err != nil {
		log.Fatalf("FATAL: logger init failed: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Open(cfg.MySQLDSN)
	if err != nil {
		zlog.Fatalw("database connection failed", "err", err)
	}
	defer db.Close()
	zlog.Info("database connection established")

	redisCache := cache.New(cfg.RedisAddr)
	if redisCache == nil {
		zlog.Info("redis disabled, filter facets will not be cached")
	}

	aiService, err := ai.NewAIService(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		zlog.Fatalw("gemini client init failed", "err", err)
	}
	defer aiService.Close()

	h := &handlers.Handlers{
		DB:        db,
		AIService: aiService,
		Storage:   storage.New(cfg.CloudName, cfg.CloudAPIKey, cfg.CloudSecret, cfg.CloudFolder),
		Cache:     redisCache,
		Log:       zlog,
		JWTSecret: []byte(cfg.JWTSecret),
	}

	// Hourly sweep that turns stale PENDING/CONFIRMED bookings into
	// NO_SHOW once their date has passed.
	go func() {
		h.ProcessOverdueBookings()
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			h.ProcessOverdueBookings()
		}
	}()

	router := routes.SetupRouter(h, cfg.AllowedOrigin)
	zlog.Infow("starting server", "addr", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		zlog.Fatalw("server exited", "err", err)
	}
}
