package main

import (
	"log"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/service-admin/internal/api"
	"github.com/yourorg/service-admin/internal/auth"
	"github.com/yourorg/service-admin/internal/config"
	"github.com/yourorg/service-admin/internal/db"
	"github.com/yourorg/service-admin/internal/metrics"
)

func main() {
	cfg := config.FromEnv()

	// Structured logger (zap)
	zl := newZap(cfg.LogLevel)
	defer zl.Sync()

	database, err := db.NewDatabase(db.FromEnv())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Seeding is explicit and never runs in production.
	if cfg.SeedData && !cfg.Production() {
		if err := db.Seed(database.DB); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
		zl.Info("seed data applied")
	}

	metrics.Init()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	// Reject request bodies with unknown fields.
	gin.EnableJsonDecoderDisallowUnknownFields()

	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	authSvc := auth.NewService(
		db.NewUserRepo(database.DB),
		db.NewTokenRepo(database.DB),
		cfg.TokenTTL,
	)
	handlers := api.NewHandlers(database, authSvc, zl)
	api.RegisterRoutes(r, handlers, authSvc)

	zl.Info("server starting", zap.String("addr", cfg.Addr), zap.String("env", cfg.Env))
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newZap(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	switch strings.ToLower(level) {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
