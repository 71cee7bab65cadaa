package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	calibrationapp "github.com/fabos/server/internal/application/calibration"
	identityapp "github.com/fabos/server/internal/application/identity"
	qdocsapp "github.com/fabos/server/internal/application/qdocs"
	"github.com/fabos/server/internal/domain/qdocs"
	"github.com/fabos/server/internal/infrastructure/auth"
	"github.com/fabos/server/internal/infrastructure/cache"
	"github.com/fabos/server/internal/infrastructure/config"
	"github.com/fabos/server/internal/infrastructure/logger"
	"github.com/fabos/server/internal/infrastructure/persistence"
	"github.com/fabos/server/internal/interfaces/http/handler"
	"github.com/fabos/server/internal/interfaces/http/middleware"
	"github.com/fabos/server/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting FabOS Server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// The revision state machine is static data. Refuse to start if it has
	// been edited into an inconsistent shape.
	if err := qdocs.ValidateTransitionTable(); err != nil {
		log.Fatal("Revision transition table is invalid", zap.Error(err))
	}

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis backs the token blacklist and signup idempotency. When it is
	// unreachable the server still starts with in-memory fallbacks, which
	// lose state on restart and do not share it across instances.
	var (
		tokenBlacklist   auth.TokenBlacklist
		idempotencyStore identityapp.IdempotencyStore
	)
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist and idempotency store",
			zap.Error(err))
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		tokenBlacklist = auth.NewRedisTokenBlacklist(redisClient)
		idempotencyStore = cache.NewRedisIdempotencyStore(redisClient)
		log.Info("Redis connected successfully")
	}

	// Initialize repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	calibrationRepo := persistence.NewGormCalibrationRepository(db.DB)
	revisionRepo := persistence.NewGormRevisionRepository(db.DB)
	transitionRecorder := persistence.NewGormTransitionRecorder(db.DB)
	tenantRegistry := persistence.NewGormTenantRegistry(db.DB)

	// Transaction scopes bind multi-write operations to a single database
	// transaction
	calibrationScope := persistence.NewGormCalibrationTransactionScope(db.DB)
	revisionScope := persistence.NewGormRevisionTransactionScope(db.DB)
	identityScope := persistence.NewGormIdentityTransactionScope(db.DB)

	// Initialize application services
	calibrationService := calibrationapp.NewService(calibrationRepo, calibrationScope, log)
	revisionService := qdocsapp.NewService(revisionRepo, transitionRecorder, revisionScope, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, tenantRepo, jwtService, log)

	signupService := identityapp.NewSignupService(tenantRegistry, identityScope, idempotencyStore, log)
	signupService.SetWorkspaceBaseDomain(cfg.Signup.WorkspaceBaseDomain)
	signupService.SetIdempotencyTTL(cfg.Signup.IdempotencyTTL)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, tokenBlacklist, log)
	signupHandler := handler.NewSignupHandler(signupService)
	calibrationHandler := handler.NewCalibrationHandler(calibrationService)
	revisionHandler := handler.NewRevisionHandler(revisionService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSFromConfig(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes. Login, refresh and
	// the whole signup flow stay public; everything else needs a token.
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = tokenBlacklist
	jwtConfig.Logger = log
	jwtConfig.SkipPaths = append(jwtConfig.SkipPaths,
		"/api/v1/system/ping",
		"/api/v1/system/info",
	)
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Identity domain: authentication
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)

	// Identity domain: workspace signup (public)
	signupRoutes := router.NewDomainGroup("signup", "/signup")
	signupRoutes.POST("", signupHandler.Create)
	signupRoutes.POST("/validate", signupHandler.Validate)
	signupRoutes.GET("/suggestions/:code", signupHandler.SuggestCodes)

	// Calibration domain: drawing-independent operations
	calibrationRoutes := router.NewDomainGroup("calibration", "/calibrations")
	calibrationRoutes.POST("/compute", calibrationHandler.Compute)
	calibrationRoutes.GET("/presets", calibrationHandler.Presets)

	// Drawing-scoped operations (calibration lifecycle, revision listing)
	drawingRoutes := router.NewDomainGroup("drawings", "/drawings")
	drawingRoutes.POST("/:id/calibrations", calibrationHandler.Activate)
	drawingRoutes.POST("/:id/calibrations/preset", calibrationHandler.ApplyPreset)
	drawingRoutes.POST("/:id/calibrations/convert", calibrationHandler.Convert)
	drawingRoutes.GET("/:id/calibrations/active", calibrationHandler.GetActive)
	drawingRoutes.GET("/:id/calibrations", calibrationHandler.History)
	drawingRoutes.GET("/:id/revisions", revisionHandler.ListByDrawing)

	// Quality documents domain: revision workflow
	revisionRoutes := router.NewDomainGroup("qdocs", "/revisions")
	revisionRoutes.POST("", revisionHandler.Create)
	revisionRoutes.GET("/:id", revisionHandler.GetByID)
	revisionRoutes.POST("/:id/transition", revisionHandler.Transition)
	revisionRoutes.GET("/:id/audit", revisionHandler.AuditTrail)

	// Quality documents domain: import vocabulary checks
	importRoutes := router.NewDomainGroup("imports", "/imports")
	importRoutes.POST("/classify", revisionHandler.ClassifyImport)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(authRoutes).
		Register(signupRoutes).
		Register(calibrationRoutes).
		Register(drawingRoutes).
		Register(revisionRoutes).
		Register(importRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
