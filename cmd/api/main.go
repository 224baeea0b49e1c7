// @title Interview Assistant API
// @version 1.0
// @description Question corpus browsing, interview session state and report export.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"interview-assistant/internal/adapter"
	"interview-assistant/internal/cache"
	"interview-assistant/internal/config"
	"interview-assistant/internal/corpus"
	"interview-assistant/internal/database"
	"interview-assistant/internal/domain"
	"interview-assistant/internal/export"
	"interview-assistant/internal/handler"
	"interview-assistant/internal/index"
	"interview-assistant/internal/logger"
	"interview-assistant/internal/middleware"
	"interview-assistant/internal/service"
	"interview-assistant/internal/session"
	"interview-assistant/internal/validation"

	_ "interview-assistant/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		// Process request
		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

// openStorage connects the configured session backend. When it cannot be
// reached the process keeps running on memory storage; the returned reason is
// then non-empty and sessions report degraded.
func openStorage(cfg *config.Config, appLogger *zap.Logger) (storage domain.SessionStorage, backend string, fallback string, closeFn func()) {
	noop := func() {}
	var cause error

	switch cfg.Storage.Backend {
	case config.StorageRedis:
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			cause = err
			break
		}
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
		return adapter.NewRedisStorageAdapter(redisClient), config.StorageRedis, "", func() { _ = redisClient.Close() }

	case config.StorageSQLite:
		db, err := database.NewSQLiteDB(cfg.SQLite.Path)
		if err != nil {
			cause = err
			break
		}
		if err := database.RunMigrations(db.DB); err != nil {
			_ = db.Close()
			cause = err
			break
		}
		appLogger.Info("Session database ready", zap.String("path", cfg.SQLite.Path))
		return adapter.NewSQLStorageAdapter(db), config.StorageSQLite, "", func() { _ = db.Close() }

	case config.StorageMemory:
		return adapter.NewMemoryStorageAdapter(), config.StorageMemory, "", noop
	}

	appLogger.Warn("Session storage unavailable, falling back to memory storage",
		zap.String("backend", cfg.Storage.Backend),
		zap.Error(cause),
	)
	reason := cfg.Storage.Backend + " storage unavailable at startup"
	return adapter.NewMemoryStorageAdapter(), config.StorageMemory, reason, noop
}

// sessionOptions maps the session config onto store options. The record TTL
// applies whichever backend is active.
func sessionOptions(cfg *config.Config, appLogger *zap.Logger, fallback string) session.Options {
	return session.Options{
		Debounce:     cfg.Session.Debounce,
		WriteTimeout: cfg.Session.WriteTimeout,
		TTL:          cfg.Session.TTL,
		Language:     cfg.Session.Language,
		Logger:       appLogger,
		Fallback:     fallback,
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	questionCorpus, err := corpus.Open(cfg.Corpus)
	if err != nil {
		appLogger.Fatal("Failed to open question corpus", zap.Error(err))
	}
	report := validation.ValidateCorpus(questionCorpus)
	for _, d := range report.Diagnostics {
		if d.Severity == validation.SeverityError {
			appLogger.Error("Corpus check failed", zap.String("diagnostic", d.String()))
		} else {
			appLogger.Warn("Corpus check warning", zap.String("diagnostic", d.String()))
		}
	}
	questionIndex := index.New(questionCorpus)
	appLogger.Info("Question index built", zap.Int("questions", questionIndex.Len()))

	storage, backend, fallback, closeStorage := openStorage(cfg, appLogger)
	defer closeStorage()

	manager := session.NewManager(storage, sessionOptions(cfg, appLogger, fallback))
	exporter := export.NewExporter(export.Options{
		Title:      cfg.Export.ReportTitle,
		PDFEnabled: cfg.Export.PDFEnabled,
		Logger:     appLogger,
	})

	// Initialize services
	catalogService := service.NewCatalogService(questionIndex)
	sessionService := service.NewSessionService(manager, questionIndex, backend)
	reportService := service.NewReportService(manager, questionIndex, exporter)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.RegisterRoutes(app.Group("/api"), handler.Handlers{
		Catalog: handler.NewCatalogHandler(catalogService),
		Session: handler.NewSessionHandler(sessionService),
		Report:  handler.NewReportHandler(reportService),
	})

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("storage", backend))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	// Pending debounced writes are flushed before storage is closed.
	manager.Close()
	appLogger.Info("Server exited gracefully")
}
