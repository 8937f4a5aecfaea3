package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dmt_kiosk_backend/internal/adapters"
	"dmt_kiosk_backend/internal/adapters/storage"
	"dmt_kiosk_backend/internal/admin"
	"dmt_kiosk_backend/internal/content"
	"dmt_kiosk_backend/internal/customers"
	"dmt_kiosk_backend/internal/dashboard"
	"dmt_kiosk_backend/internal/documents"
	"dmt_kiosk_backend/internal/events"
	"dmt_kiosk_backend/internal/feedback"
	apphttp "dmt_kiosk_backend/internal/http"
	"dmt_kiosk_backend/internal/http/router"
	"dmt_kiosk_backend/internal/services"
	"dmt_kiosk_backend/internal/steps"
	"dmt_kiosk_backend/internal/wizard"
	wizardrepo "dmt_kiosk_backend/internal/wizard/repository"
	"dmt_kiosk_backend/migrations"
	"dmt_kiosk_backend/platform/cache"
	"dmt_kiosk_backend/platform/config"
	"dmt_kiosk_backend/platform/db"
	"dmt_kiosk_backend/platform/logger"
	"dmt_kiosk_backend/platform/telemetry"
	"dmt_kiosk_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const shutdownTimeout = 10 * time.Second

// ensureBucket wraps the retry logic for verifying a MinIO bucket exists.
func ensureBucket(ctx context.Context, log *logger.Logger, storageSvc storage.StorageService, bucket string) {
	if err := withRetry(ctx, log, "ensure documents bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, cfg, log)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("failed to flush traces", "error", err)
		}
	}()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	health := []apphttp.HealthChecker{db.NewPoolAdapter(pool)}

	redisClient := initRedis(ctx, cfg, log)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		health = append(health, cache.NewClientAdapter(redisClient))
	}

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	documentStorage := initStorage(ctx, cfg, log)

	catalog, err := content.Load()
	if err != nil {
		log.Error("failed to load content tables", "error", err)
		panic("failed to load content tables: " + err.Error())
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	var wizardStore wizardrepo.SessionStore
	var adminStore admin.SessionStore
	if redisClient != nil {
		wizardStore = wizardrepo.NewRedisStore(redisClient, cfg.GetWizardSessionTTL())
		adminStore = admin.NewRedisStore(redisClient)
	} else {
		wizardStore = wizardrepo.NewMemoryStore(cfg.GetWizardSessionTTL())
		adminStore = admin.NewMemoryStore()
	}

	guard, err := admin.NewGuard(cfg, adminStore, log)
	if err != nil {
		log.Error("failed to initialize admin guard", "error", err)
		panic("failed to initialize admin guard: " + err.Error())
	}
	if cfg.GetAdminSessionTTL() == 0 {
		log.Warn("admin sessions never expire; set ADMIN_SESSION_TTL to limit them")
	}

	contentModule := content.NewModule(catalog)
	customersModule := customers.NewModule(pool, val, log)
	servicesModule := services.NewModule(pool, val, log)
	documentsModule := documents.NewModule(pool, documentStorage, cfg.GetMinioBucketDocuments(), log)
	feedbackModule := feedback.NewModule(pool, val, log)
	stepsModule := steps.NewModule(pool, eventBus, log)
	wizardModule := wizard.NewModule(wizardStore, eventBus, val, cfg.GetPublicBaseURL(), log)
	adminModule := admin.NewModule(guard, val)
	dashboardModule := dashboard.NewModule(
		customersModule.Service(),
		servicesModule.Repository(),
		documentsModule.Repository(),
		feedbackModule.Repository(),
		log,
	)

	// Wizard → persistence modules
	wizardSvc := wizardModule.Service()
	wizardSvc.SetCustomerRegistrar(customersModule.Service())
	wizardSvc.SetServiceOpener(servicesModule.Service())
	wizardSvc.SetDocumentRecorder(documentsModule.Service())
	wizardSvc.SetFeedbackSubmitter(feedbackModule.Service())

	// Customer detail view: customers → services, documents, feedback, steps
	customersModule.Service().SetRelatedReader(adapters.NewCustomerRelatedReader(
		servicesModule.Service(),
		documentsModule.Service(),
		feedbackModule.Service(),
		stepsModule.Service(),
	))

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:          cfg,
		Logger:          log,
		Health:          health,
		EventBus:        eventBus,
		AdminMiddleware: adminModule.Middleware(),
		Modules: []apphttp.Module{
			contentModule,
			wizardModule,
			feedbackModule,
			adminModule,
			dashboardModule,
			customersModule,
			servicesModule,
			documentsModule,
			stepsModule,
		},
	}

	engine := router.New(app)

	// No write timeout: the elapsed stream stays open for the whole visit.
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           otelhttp.NewHandler(engine, cfg.GetServiceName()),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
		eventBus.Wait()
		log.Info("server stopped")
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initRedis returns nil when REDIS_URL is unset; sessions then live in
// process memory.
func initRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) *redis.Client {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; wizard and admin sessions are kept in memory")
		return nil
	}

	var client *redis.Client
	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		c, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			return err
		}
		client = c
		return nil
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	log.Info("redis connection established")
	return client
}

// initStorage returns a nil interface when MinIO is not configured so the
// documents service can tell uploads are disabled.
func initStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) storage.StorageService {
	if !cfg.IsMinIOEnabled() {
		log.Warn("MINIO_ENDPOINT not configured; document file uploads disabled")
		return nil
	}

	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	ensureBucket(ctx, log, storageSvc, cfg.GetMinioBucketDocuments())
	log.Info("storage service initialized", "documentsBucket", cfg.GetMinioBucketDocuments())
	return storageSvc
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
