package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jean612/SoundScape/internal/config"
	"github.com/Jean612/SoundScape/internal/database"
	"github.com/Jean612/SoundScape/internal/handlers"
	"github.com/Jean612/SoundScape/internal/kvstore"
	"github.com/Jean612/SoundScape/internal/logger"
	"github.com/Jean612/SoundScape/internal/middleware"
	"github.com/Jean612/SoundScape/internal/telemetry"
	"github.com/Jean612/SoundScape/pkg/ai"
	"github.com/Jean612/SoundScape/pkg/email"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := logger.Init(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg := config.Load()

	// Initialize OpenTelemetry tracer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracerShutdown, err := telemetry.InitTracer(ctx, "soundscape-api", cfg.OTLPEndpoint)
	if err != nil {
		log.Printf("Failed to initialize tracer: %v", err)
	} else {
		defer func() {
			if err := tracerShutdown(context.Background()); err != nil {
				log.Printf("Error shutting down tracer: %v", err)
			}
		}()
	}

	// Initialize OpenTelemetry metrics
	meterShutdown, err := telemetry.InitMeter(ctx, "soundscape-api", cfg.OTLPEndpoint)
	if err != nil {
		log.Printf("Failed to initialize metrics: %v", err)
	} else {
		defer func() {
			if err := meterShutdown(context.Background()); err != nil {
				log.Printf("Error shutting down metrics: %v", err)
			}
		}()
	}

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Shared expiring key-value store for the AI search cache and rate
	// limit counters, with a background sweep of expired rows
	store := kvstore.NewGormStore(db.DB)
	go store.StartJanitor(ctx, 10*time.Minute)

	go database.StartConnectionPoolMetricsCollector(ctx, db.DB, 30*time.Second)

	// AI provider
	provider, err := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel,
		time.Duration(cfg.OpenAITimeoutSeconds)*time.Second)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}

	mailer := email.NewEmailService(cfg)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "SoundScape API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     `{"time":"${time}","status":${status},"latency":"${latency}","ip":"${ip}","method":"${method}","path":"${path}","user_agent":"${ua}","error":"${error}"}` + "\n",
		TimeFormat: "2006-01-02T15:04:05Z07:00",
	}))
	app.Use(telemetry.New(telemetry.Config{
		ServiceName: "soundscape-api",
	}))
	app.Use(middleware.PrometheusMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowHeaders:     "Accept, Accept-Encoding, Authorization, Content-Type, DNT, Origin, User-Agent, X-Requested-With",
		AllowCredentials: false,
		ExposeHeaders:    "Content-Length, Content-Type",
		MaxAge:           86400,
	}))

	setupRoutes(app, db, cfg, store, provider, mailer)

	port := cfg.ServerPort
	if port == "" {
		port = "3000"
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down server...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, db *database.DB, cfg *config.Config, store kvstore.Store, provider ai.Completer, mailer *email.EmailService) {
	// Health check endpoints for k8s probes
	app.Get("/healthz", handlers.HealthCheck)
	app.Get("/v1/healthz", handlers.HealthCheck)
	app.Get("/v1/readiness", handlers.ReadinessCheck(db))
	app.Get("/v1/liveness", handlers.LivenessCheck)

	// Prometheus scrape endpoint
	app.Get("/metrics", middleware.PrometheusHandler())

	// API v1 group
	v1 := app.Group("/v1")

	// Auth routes (no auth required)
	auth := v1.Group("/auth")
	handlers.SetupAuthRoutes(auth, db, cfg, mailer)

	// Confirmed-account routes
	confirmed := []fiber.Handler{
		middleware.AuthRequired(cfg),
		middleware.EmailConfirmedRequired(db),
	}

	search := v1.Group("/search", confirmed...)
	handlers.SetupSearchRoutes(search, db, cfg, store, provider)

	playlists := v1.Group("/playlists", confirmed...)
	handlers.SetupPlaylistRoutes(playlists, db)

	songs := v1.Group("/songs", confirmed...)
	handlers.SetupSongRoutes(songs, db)
}
