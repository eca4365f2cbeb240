package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dhima/backoffice-workflows/internal/api/handlers"
	"github.com/dhima/backoffice-workflows/internal/api/middleware"
	"github.com/dhima/backoffice-workflows/internal/dispatch"
	"github.com/dhima/backoffice-workflows/internal/executions"
	"github.com/dhima/backoffice-workflows/internal/logging"
	"github.com/dhima/backoffice-workflows/internal/storage"
	"github.com/dhima/backoffice-workflows/internal/workflows"
	"github.com/dhima/backoffice-workflows/pkg/config"
	"github.com/dhima/backoffice-workflows/platform/events"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Server orchestrates HTTP routing and dependencies for the API service.
type Server struct {
	config    config.App
	logger    logging.Logger
	router    *gin.Engine
	db        *sql.DB
	publisher *events.Publisher
}

// Dependencies are the collaborators the HTTP routes are served by.
type Dependencies struct {
	Workflows  handlers.WorkflowService
	Executions handlers.ExecutionService
	Dispatcher handlers.Dispatcher
	Publisher  handlers.ActionPublisher
	Database   handlers.Pinger
}

// NewServer wires the API dependencies together.
func NewServer() *Server {
	cfg := config.FromEnv()

	// Initialize logger
	logger, err := logging.FromConfig(cfg, "api")
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Set Gin mode based on environment
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	db := connectDatabase(cfg, logger)
	mysqlClient := storage.NewMySQLClient(db)
	zl := logging.Zap(logger)

	dispatcher := dispatch.NewDispatcher(mysqlClient, mysqlClient, zl)
	publisher := events.NewPublisher(cfg.Brokers(), cfg.KafkaActionsTopic, zl)

	server := &Server{
		config:    cfg,
		logger:    logger,
		db:        db,
		publisher: publisher,
	}

	server.setupRouter(Dependencies{
		Workflows:  workflows.NewService(mysqlClient, dispatcher, zl),
		Executions: executions.NewService(mysqlClient, zl),
		Dispatcher: dispatcher,
		Publisher:  publisher,
		Database:   mysqlClient,
	})
	return server
}

// NewServerWithDependencies builds a server around prepared collaborators.
// It does not own a database or broker connection.
func NewServerWithDependencies(cfg config.App, logger logging.Logger, deps Dependencies) *Server {
	server := &Server{config: cfg, logger: logger}
	server.setupRouter(deps)
	return server
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRouter configures the Gin router with middleware and routes.
func (s *Server) setupRouter(deps Dependencies) {
	router := gin.New()

	zapLogger := logging.Zap(s.logger)

	// Global middleware (order matters!)
	// 1. Recovery - must be first to catch panics from other middleware
	router.Use(ginzap.RecoveryWithZap(zapLogger, true))

	// 2. Request ID - inject unique ID for tracing
	router.Use(middleware.RequestID())

	// 3. Logging - log all requests with structured fields
	router.Use(ginzap.Ginzap(zapLogger, time.RFC3339, true))

	// 4. CORS - handle cross-origin requests
	if len(s.config.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     s.config.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader, middleware.AdminUserHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 5. Operator identity forwarded by the back-office gateway
	router.Use(middleware.AdminUser())

	// Health and metrics endpoints (no /api/v1 prefix)
	router.GET("/health", handlers.NewHealthHandler(s.logger, deps.Database).Health)
	router.GET("/metrics", handlers.NewMetricsHandler(s.logger, deps.Executions).Metrics)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		workflowHandler := handlers.NewWorkflowHandler(s.logger, deps.Workflows)
		workflowsRoutes := v1.Group("/workflows")
		{
			workflowsRoutes.POST("", workflowHandler.CreateWorkflow)
			workflowsRoutes.GET("", workflowHandler.ListWorkflows)
			workflowsRoutes.GET("/:id", workflowHandler.GetWorkflow)
			workflowsRoutes.PUT("/:id", workflowHandler.UpdateWorkflow)
			workflowsRoutes.DELETE("/:id", workflowHandler.DeleteWorkflow)
			workflowsRoutes.POST("/:id/test", workflowHandler.TestWorkflow)
		}

		executionHandler := handlers.NewExecutionHandler(deps.Executions, s.logger)
		executionsRoutes := v1.Group("/executions")
		{
			executionsRoutes.GET("", executionHandler.ListExecutions)
			executionsRoutes.GET("/:id", executionHandler.GetExecution)
		}

		triggerHandler := handlers.NewTriggerHandler(s.logger, deps.Dispatcher, deps.Publisher)
		triggersRoutes := v1.Group("/triggers")
		{
			triggersRoutes.GET("", triggerHandler.ListTriggers)
			triggersRoutes.POST("/:trigger/dispatch", triggerHandler.DispatchTrigger)
		}
	}

	s.router = router
}

// Serve listens on the configured port until ctx is cancelled, then drains
// in-flight requests for up to 30 seconds and releases the broker and
// database connections.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + s.config.APIPort,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server",
			zap.String("address", srv.Addr),
			zap.String("environment", s.config.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			s.release()
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Error("server forced to shutdown", zap.Error(err))
	}
	s.release()
	s.logger.Info("server stopped")
	return err
}

// release closes what NewServer opened. Servers built with
// NewServerWithDependencies own nothing.
func (s *Server) release() {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			s.logger.Error("failed to close action publisher", zap.Error(err))
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("failed to close database connection", zap.Error(err))
		}
	}
	_ = s.logger.Sync()
}

func connectDatabase(cfg config.App, logger logging.Logger) *sql.DB {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if cfg.ApplyMigrations {
		if err := storage.Migrate(db); err != nil {
			logger.Fatal("failed to apply migrations", zap.Error(err))
		}
		logger.Info("database migrations applied")
	}

	return db
}
