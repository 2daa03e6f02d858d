package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	companyapp "github.com/cajachica/backend/internal/application/company"
	expenseapp "github.com/cajachica/backend/internal/application/expense"
	reportapp "github.com/cajachica/backend/internal/application/report"
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/cajachica/backend/internal/infrastructure/auth"
	"github.com/cajachica/backend/internal/infrastructure/config"
	"github.com/cajachica/backend/internal/infrastructure/event"
	"github.com/cajachica/backend/internal/infrastructure/logger"
	"github.com/cajachica/backend/internal/infrastructure/persistence"
	"github.com/cajachica/backend/internal/infrastructure/printing"
	"github.com/cajachica/backend/internal/infrastructure/storage"
	"github.com/cajachica/backend/internal/interfaces/http/handler"
	"github.com/cajachica/backend/internal/interfaces/http/middleware"
	"github.com/cajachica/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting caja chica backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	disbursementRepo := persistence.NewGormDisbursementRepository(db.DB)
	reconciliationRepo := persistence.NewGormReconciliationRepository(db.DB)

	eventBus := shared.NewInProcessEventBus()
	eventBus.Subscribe(event.NewAuditSubscriber(log))

	companyService := companyapp.NewService(companyRepo, eventBus)
	disbursementService := expenseapp.NewDisbursementService(disbursementRepo, companyRepo, eventBus)
	reconciliationService := expenseapp.NewReconciliationService(reconciliationRepo, disbursementRepo, companyRepo, eventBus)

	store, err := newArchiveStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize archive store", zap.Error(err))
	}

	spooler, cleanup, err := newSpooler(cfg, store, log)
	if err != nil {
		log.Fatal("Failed to initialize report spooler", zap.Error(err))
	}
	defer cleanup()

	assembler := reportapp.NewAssembler(companyRepo, disbursementRepo, reconciliationRepo)
	allocator := reportapp.NewCorrelativeAllocator(companyRepo, eventBus)
	workflow := reportapp.NewWorkflow(assembler, allocator, spooler, reportapp.WorkflowConfig{
		SpoolTimeout:  cfg.Report.SpoolTimeout,
		CommitTimeout: cfg.Report.CommitTimeout,
		AttemptTTL:    cfg.Report.AttemptTTL,
	}, log)
	dashboardService := reportapp.NewDashboardService(companyRepo, disbursementRepo, reconciliationRepo)

	jwtService := auth.NewJWTService(cfg.JWT)
	verifier, err := auth.NewCredentialVerifier(cfg.Admin)
	if err != nil {
		log.Fatal("Failed to initialize credential verifier", zap.Error(err))
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "up"})
	})

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.RegisterPublic(handler.NewAuthHandler(jwtService, verifier))
	r.Register(handler.NewCompanyHandler(companyService))
	r.Register(handler.NewDisbursementHandler(disbursementService))
	r.Register(handler.NewReconciliationHandler(reconciliationService))
	r.Register(handler.NewReportHandler(workflow, dashboardService))
	r.Setup(middleware.JWTAuthMiddleware(jwtService))

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}

// newArchiveStore builds the archive backend from configuration
func newArchiveStore(cfg *config.Config, log *zap.Logger) (storage.ArchiveStore, error) {
	switch cfg.Archive.Backend {
	case "s3":
		return storage.NewS3ArchiveStore(&cfg.Archive, storage.WithLogger(log))
	default:
		return storage.NewLocalArchiveStore(cfg.Archive.LocalDir, cfg.Archive.URLPrefix)
	}
}

// newSpooler builds the report spooler for the configured PDF engine. The
// returned cleanup releases the browser allocator when one was started.
func newSpooler(cfg *config.Config, store storage.ArchiveStore, log *zap.Logger) (reportapp.Spooler, func(), error) {
	if cfg.Report.PDFEngine == "none" {
		log.Info("PDF engine disabled, spooling HTML documents")
		return printing.NewHTMLSpooler(store, log), func() {}, nil
	}

	renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		DefaultTimeout: cfg.Report.SpoolTimeout,
		Logger:         log,
	})
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := renderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}
	return printing.NewReportSpooler(renderer, store, log), cleanup, nil
}
