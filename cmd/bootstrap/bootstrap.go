package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-clinic-appointment/config"
	deliveryHttp "go-clinic-appointment/internal/delivery/http"
	"go-clinic-appointment/internal/delivery/http/handler"
	"go-clinic-appointment/internal/delivery/http/middleware"
	"go-clinic-appointment/internal/infrastructure/cache"
	"go-clinic-appointment/internal/infrastructure/database"
	"go-clinic-appointment/internal/repository"
	"go-clinic-appointment/internal/service"
	"go-clinic-appointment/internal/usecase"
	"go-clinic-appointment/pkg/jwt"
	"go-clinic-appointment/pkg/validator"

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

	slotCache *service.SlotCacheService
	sweeper   *service.CompletionSweeper
	notifier  *service.NotificationService
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

	// Apply pending schema migrations
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
	server := app.initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Clinic timezone for all slot arithmetic
	loc, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Warnf("Unknown timezone %q, falling back to local: %+v", cfg.Booking.Timezone, err)
		loc = time.Local
	}
	slotStep := time.Duration(cfg.Booking.SlotMinutes) * time.Minute

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	shiftTemplateRepo := repository.NewShiftTemplateRepository()
	occupiedSlotRepo := repository.NewOccupiedSlotRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	notificationRepo := repository.NewNotificationRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	app.slotCache = service.NewSlotCacheService(db, redisClient, log)
	app.notifier = service.NewNotificationService(db, log, notificationRepo,
		service.NewLogDispatcher(log), cfg.Booking.NotifyBuffer)
	app.sweeper = service.NewCompletionSweeper(db, log, appointmentRepo, occupiedSlotRepo,
		cfg.Booking.SweepInterval, loc)

	// Warm the occupied-slot mirror before accepting traffic
	syncCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := app.slotCache.SyncOnStartup(syncCtx); err != nil {
		log.Warnf("Occupied-slot mirror sync failed, availability reads fall back to the database: %+v", err)
	}

	app.sweeper.Start()

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, doctorProfileRepo, patientProfileRepo, jwtService, redisClient)
	doctorProfileUsecase := usecase.NewDoctorProfileUsecase(db, log, userRepo, doctorProfileRepo, auditService)
	patientProfileUsecase := usecase.NewPatientProfileUsecase(db, log, userRepo, patientProfileRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, shiftTemplateRepo, occupiedSlotRepo,
		doctorProfileRepo, app.slotCache, slotStep, cfg.Booking.HorizonDays, loc)
	bookingUsecase := usecase.NewBookingUsecase(db, log, appointmentRepo, occupiedSlotRepo,
		shiftTemplateRepo, doctorProfileRepo, patientProfileRepo,
		app.slotCache, app.notifier, auditService, slotStep, loc)
	shiftTemplateUsecase := usecase.NewShiftTemplateUsecase(db, log, shiftTemplateRepo, doctorProfileRepo, auditService)
	notificationUsecase := usecase.NewNotificationUsecase(db, log, notificationRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	doctorHandler := handler.NewDoctorHandler(doctorProfileUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientProfileUsecase, customValidator)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase)
	appointmentHandler := handler.NewAppointmentHandler(bookingUsecase, app.sweeper, customValidator)
	shiftTemplateHandler := handler.NewShiftTemplateHandler(shiftTemplateUsecase, customValidator)
	notificationHandler := handler.NewNotificationHandler(notificationUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, doctorHandler, patientHandler,
		availabilityHandler, appointmentHandler, shiftTemplateHandler, notificationHandler,
		auditLogHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
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

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops background services and closes all connections
func (app *App) Close() {
	if app.sweeper != nil {
		app.sweeper.Stop()
	}
	if app.notifier != nil {
		app.notifier.Stop()
	}
	if app.slotCache != nil {
		app.slotCache.Stop()
	}

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
