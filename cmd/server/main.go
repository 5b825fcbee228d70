package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"ecofeast-backend/internal/audit"
	"ecofeast-backend/internal/auth"
	"ecofeast-backend/internal/cache"
	"ecofeast-backend/internal/chat"
	"ecofeast-backend/internal/config"
	"ecofeast-backend/internal/dashboard"
	"ecofeast-backend/internal/database"
	"ecofeast-backend/internal/forecast"
	"ecofeast-backend/internal/health"
	"ecofeast-backend/internal/llm"
	"ecofeast-backend/internal/logger"
	"ecofeast-backend/internal/menu"
	"ecofeast-backend/internal/models"
	"ecofeast-backend/internal/records"
	"ecofeast-backend/internal/seed"
	"ecofeast-backend/internal/weather"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	for _, w := range cfg.Warnings {
		log.Warn(w)
	}

	db, err := database.Open(cfg.DatabaseDSN, log)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}

	var weatherCache cache.Cache = cache.NewMemory()
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		weatherCache = cache.NewRedis(rdb, "ecofeast:")
		log.Info("redis cache enabled")
	}

	catalog := menu.Default()
	userRepo := auth.NewGormUserRepository(db)
	recordRepo := records.NewGormRepository(db)
	auditStore := audit.NewGormStore(db)

	gemini := llm.NewGeminiClient(llm.GeminiOptions{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	}, log)
	forecastSvc := forecast.NewService(gemini)
	weatherSvc := weather.NewService(
		weather.NewClient(cfg.WeatherBaseURL),
		weatherCache,
		cfg.WeatherCacheTTL,
		cfg.WeatherDefaultLat,
		cfg.WeatherDefaultLon,
		log,
	)

	seeder := seed.NewSeeder(userRepo, recordRepo, catalog.Items(), rand.New(rand.NewSource(time.Now().UnixNano())), time.Now, log)
	if cfg.SeedDemoData {
		if err := seeder.Run(context.Background()); err != nil {
			log.Error("demo seed failed", zap.Error(err))
		}
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: logger.ErrorHandler(log),
		BodyLimit:    10 * 1024 * 1024, // xlsx uploads
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,OPTIONS",
	}))

	api := app.Group("/api")

	// Public
	api.Get("/health", health.HealthHandler())
	api.Get("/gemini-status", health.GeminiStatusHandler(gemini))
	api.Post("/auth/register", auth.RegisterHandler(userRepo, cfg))
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(userRepo, cfg))
	api.Post("/auth/login", auth.LoginHandler(userRepo, cfg))
	api.Get("/weather", weather.WeatherHandler(weatherSvc))
	api.Get("/menu", menu.ListMenuHandler(catalog))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(userRepo))

	// Records
	protected.Get("/records", records.ListRecordsHandler(recordRepo))
	protected.Post("/records", records.CreateRecordHandler(recordRepo, catalog, auditStore, log))
	protected.Get("/records/export", records.ExportRecordsHandler(recordRepo))
	protected.Post("/records/import", records.ImportRecordsHandler(recordRepo, catalog, auditStore, log))

	// Analytics
	protected.Get("/analytics/summary", dashboard.SummaryHandler(recordRepo))
	protected.Get("/analytics/weekday", dashboard.WeekdayHandler(recordRepo))
	protected.Get("/analytics/categories", dashboard.CategoriesHandler(recordRepo))
	protected.Get("/analytics/impact", dashboard.ImpactHandler(recordRepo))
	protected.Get("/analytics/scenarios", dashboard.ScenariosHandler())
	protected.Post("/analytics/what-if", dashboard.WhatIfHandler(recordRepo, catalog))
	protected.Get("/analytics/trend", dashboard.TrendHandler(recordRepo))

	// AI
	protected.Post("/forecast", forecast.ForecastHandler(forecastSvc))
	protected.Post("/chat", chat.ChatHandler(recordRepo, gemini))

	protected.Get("/audit-logs", audit.ListAuditLogsHandler(auditStore))

	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))
	adminRoutes.Post("/seed", seed.RunHandler(seeder))

	log.Info("server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("listen", zap.Error(err))
	}
}
