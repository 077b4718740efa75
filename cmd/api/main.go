package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/monazzem/amlak-api/docs" // Swagger docs
	"github.com/monazzem/amlak-api/internal/config"
	"github.com/monazzem/amlak-api/internal/database"
	"github.com/monazzem/amlak-api/internal/handlers"
	"github.com/monazzem/amlak-api/internal/jobs"
	"github.com/monazzem/amlak-api/internal/middleware"
	"github.com/monazzem/amlak-api/internal/repository"
	"github.com/monazzem/amlak-api/internal/services"
	"github.com/monazzem/amlak-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Amlak API
// @version 1.0
// @description REST API for the Amlak property rental management system

// @license.name MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.ResendAPIKey == "" || cfg.FromEmail == "" {
		logger.Warn("Resend email disabled: RESEND_API_KEY or FROM_EMAIL not set")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, cfg)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs, cfg)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Redirect root to swagger
		router.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
		})

		// Swagger documentation
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Admin-only routes: everything that mutates records
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				// User management
				admin.GET("/users", h.User.Index)
				admin.POST("/users", h.User.Create)
				admin.GET("/users/:user_id", h.User.Show)
				admin.PUT("/users/:user_id", h.User.Update)
				admin.DELETE("/users/:user_id", h.User.Delete)
				admin.POST("/users/:user_id/toggle_status", h.User.ToggleStatus)

				// Property management
				admin.POST("/properties", h.Property.Create)
				admin.PUT("/properties/:property_id", h.Property.Update)
				admin.DELETE("/properties/:property_id", h.Property.Delete)

				// Tenant management
				admin.POST("/tenants", h.Tenant.Create)
				admin.PUT("/tenants/:tenant_id", h.Tenant.Update)
				admin.DELETE("/tenants/:tenant_id", h.Tenant.Delete)

				// Contracts are created, repaired or deleted, never edited
				admin.POST("/contracts", h.Contract.Create)
				admin.POST("/contracts/:contract_id/regenerate_schedule", h.Contract.RegenerateSchedule)
				admin.DELETE("/contracts/:contract_id", h.Contract.Delete)

				// Payment tracking
				admin.POST("/installments/:installment_id/mark_paid", h.Installment.MarkPaid)

				// Audit log
				admin.GET("/audits", h.Audit.Index)

				// Background jobs
				admin.GET("/jobs/status", h.Job.Status)
			}

			// Read access for all authenticated users
			protected.GET("/properties", h.Property.Index)
			protected.GET("/properties/:property_id", h.Property.Show)
			protected.GET("/tenants", h.Tenant.Index)
			protected.GET("/tenants/:tenant_id", h.Tenant.Show)

			protected.GET("/contracts", h.Contract.Index)
			protected.GET("/contracts/stats", h.Contract.GetStats)
			protected.GET("/contracts/:contract_id", h.Contract.Show)
			protected.GET("/contracts/:contract_id/installments", h.Installment.ByContract)

			protected.GET("/installments", h.Installment.Index)
			protected.GET("/installments/stats", h.Installment.GetStats)
			protected.GET("/installments/overdue", h.Installment.Overdue)
			protected.GET("/installments/:installment_id", h.Installment.Show)

			// Dashboard
			protected.GET("/dashboard/summary", h.Dashboard.Summary)
			protected.GET("/dashboard/revenue", h.Dashboard.Revenue)

			// Reports
			protected.GET("/reports/installments", h.Report.Installments)
			protected.GET("/reports/installments_csv", h.Report.InstallmentsCSV)
			protected.GET("/reports/installments_xlsx", h.Report.InstallmentsXLSX)
			protected.GET("/reports/contracts/:contract_id/statement_pdf", h.Report.ContractStatementPDF)

			// Password change for the current user
			protected.POST("/users/change_password", h.User.ChangePassword)

			// Notifications
			// Static route first so "mark_all_read" is not matched as :notification_id
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notification.Index)
				notifications.POST("/mark_all_read", h.Notification.MarkAllAsRead)
				notifications.POST("/:notification_id/read", h.Notification.MarkAsRead)
				notifications.DELETE("/:notification_id", h.Notification.Delete)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, cfg *config.Config) {
	// Scan for overdue installments and notify
	interval := time.Duration(cfg.OverdueScanMinutes) * time.Minute
	worker.ScheduleEvery(interval, func(ctx context.Context) error {
		logger.Info("[Job] Scanning overdue installments...")
		return svcs.Installment.ScanOverdue(ctx)
	})

	logger.Info("Scheduled recurring jobs")
}
