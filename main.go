package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/omar99elnemr/summarizeit/config"
	"github.com/omar99elnemr/summarizeit/extractor"
	"github.com/omar99elnemr/summarizeit/handlers"
	"github.com/omar99elnemr/summarizeit/logger"
	"github.com/omar99elnemr/summarizeit/repository/sqlite"
	"github.com/omar99elnemr/summarizeit/summarizer"
	"github.com/omar99elnemr/summarizeit/summary"
	"github.com/omar99elnemr/summarizeit/validation"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logConfig, err := logger.Init(cfg.LogDir, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Initialize database
	db, err := sqlite.InitDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxConnections)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize repository
	repo, err := sqlite.NewRepository(db)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	// Initialize services
	validator := validation.NewValidator(cfg)

	extractorService := extractor.NewService(extractor.Config{
		FetchTimeout:    cfg.Extractor.FetchTimeout,
		MaxContentChars: cfg.Extractor.MaxContentChars,
		MaxBodyBytes:    cfg.Extractor.MaxBodyBytes,
		CaptionLanguage: cfg.Extractor.CaptionLanguage,
		UserAgent:       cfg.Extractor.UserAgent,
	})

	summarizerService := summarizer.NewService(cfg.Summarizer.APIKey, summarizer.Config{
		Model:          cfg.Summarizer.Model,
		TargetWords:    cfg.Summarizer.TargetWords,
		MaxAttempts:    cfg.Summarizer.MaxAttempts,
		InitialBackoff: cfg.Summarizer.InitialBackoff,
		MaxBackoff:     cfg.Summarizer.MaxBackoff,
	})

	summaryService := summary.NewService(
		repo,
		extractorService,
		summarizerService,
		validator,
		summary.Config{Model: cfg.Summarizer.Model},
	)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: !cfg.Debug,
		StrictRouting:         true,
		CaseSensitive:         true,
		AppName:               "summarizeit " + cfg.Version,
	})

	setupMiddleware(app, cfg, logConfig)

	// Setup routes
	summaryLimiter := rate.NewLimiter(
		rate.Every(time.Minute/time.Duration(max(cfg.RateLimit.RequestsPerMinute, 1))),
		cfg.RateLimit.BurstSize,
	)
	summaryHandler := handlers.NewSummaryHandler(summaryService, validator, summaryLimiter)

	app.Post("/api/summarize", summaryHandler.Summarize)
	app.Get("/api/summaries/:id", summaryHandler.GetSummary)

	// Health check
	app.Get("/health", handlers.HealthCheck)

	// Static front-end
	app.Static("/", cfg.StaticDir)

	// Graceful shutdown setup
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-shutdownChan
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		if err := db.Close(); err != nil {
			log.Printf("Database shutdown error: %v", err)
		}
	}()

	// Start server
	serverAddr := ":" + cfg.ServerPort
	if cfg.Debug {
		log.Printf("Server starting on http://localhost%s", serverAddr)
	}

	if err := app.Listen(serverAddr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

func setupMiddleware(app *fiber.App, cfg *config.Config, logConfig *fiberLogger.Config) {
	if cfg.Middleware.EnableRecover {
		app.Use(recover.New(recover.Config{
			EnableStackTrace: cfg.Debug,
		}))
	}

	if cfg.Middleware.EnableRequestID {
		app.Use(requestid.New(requestid.Config{
			Header: "X-Request-ID",
			Generator: func() string {
				return uuid.New().String()
			},
		}))
	}

	if cfg.Middleware.EnableLogger {
		app.Use(fiberLogger.New(*logConfig))
	}

	if cfg.Middleware.EnableTimeout {
		app.Use(timeout.New(func(c *fiber.Ctx) error {
			return c.Next()
		}, cfg.RequestTimeout))
	}

	if cfg.Middleware.EnableCORS && cfg.CORS.Enabled {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.CORS.AllowedOrigins, ","),
			AllowMethods:     strings.Join(cfg.CORS.AllowedMethods, ","),
			AllowHeaders:     strings.Join(cfg.CORS.AllowedHeaders, ","),
			ExposeHeaders:    strings.Join(cfg.CORS.ExposedHeaders, ","),
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           cfg.CORS.MaxAge,
		}))
	}

	if cfg.Middleware.EnableRateLimit && cfg.RateLimit.Enabled {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit.RequestsPerMinute,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}))
	}

	if cfg.Middleware.EnableCompress {
		app.Use(compress.New(compress.Config{
			Level: compress.LevelDefault,
		}))
	}

	if cfg.Middleware.EnableETag {
		app.Use(etag.New())
	}
}
