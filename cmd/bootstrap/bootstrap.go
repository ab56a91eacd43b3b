package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/serenitycare/appointment-api/config"
	deliveryHttp "github.com/serenitycare/appointment-api/internal/delivery/http"
	"github.com/serenitycare/appointment-api/internal/delivery/http/handler"
	"github.com/serenitycare/appointment-api/internal/delivery/http/middleware"
	"github.com/serenitycare/appointment-api/internal/infrastructure/cache"
	"github.com/serenitycare/appointment-api/internal/infrastructure/database"
	"github.com/serenitycare/appointment-api/internal/jobs"
	"github.com/serenitycare/appointment-api/internal/repository"
	"github.com/serenitycare/appointment-api/internal/seed"
	"github.com/serenitycare/appointment-api/internal/service"
	"github.com/serenitycare/appointment-api/internal/usecase"
	"github.com/serenitycare/appointment-api/pkg/jwt"
	"github.com/serenitycare/appointment-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Scheduler   *jobs.Scheduler
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply database migrations
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	if err := app.initialize(); err != nil {
		return nil, err
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initialize wires repositories, services, usecases, handlers and the server
func (app *App) initialize() error {
	cfg := app.Config
	log := logrus.StandardLogger()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	patientRepo := repository.NewPatientRepository(app.DB)
	appointmentRepo := repository.NewAppointmentRepository(app.DB)

	// Initialize queue simulator
	queueSimulator := service.NewQueueSimulator(app.RedisClient, log, cfg.Queue)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, patientRepo, jwtService, app.RedisClient, cfg.Admin)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, queueSimulator)
	queueUsecase := usecase.NewQueueUsecase(log, appointmentRepo, queueSimulator, cfg.Queue)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	queueHandler := handler.NewQueueHandler(queueUsecase)
	catalogHandler := handler.NewCatalogHandler()

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, app.RedisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, appointmentHandler, queueHandler, catalogHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Initialize job scheduler
	app.Scheduler = jobs.NewScheduler(log, appointmentRepo)

	// Optional demo seeding, explicit and opt-in
	if cfg.App.SeedDemo {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := seed.DemoData(ctx, log, patientRepo, appointmentRepo, queueSimulator); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	app.Server = &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start maintenance jobs
	if err := app.Scheduler.Start(); err != nil {
		logrus.Fatalf("Failed to start job scheduler: %v", err)
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Stop background jobs
	app.Scheduler.Stop()

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
