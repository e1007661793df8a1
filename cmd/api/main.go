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

	"painting_estimator_backend/internal/adapters"
	"painting_estimator_backend/internal/catalog"
	catalogrepo "painting_estimator_backend/internal/catalog/repository"
	"painting_estimator_backend/internal/estimates"
	estimatesvc "painting_estimator_backend/internal/estimates/service"
	"painting_estimator_backend/internal/events"
	apphttp "painting_estimator_backend/internal/http"
	"painting_estimator_backend/internal/http/router"
	"painting_estimator_backend/internal/intake"
	intakerepo "painting_estimator_backend/internal/intake/repository"
	"painting_estimator_backend/internal/notification"
	"painting_estimator_backend/platform/config"
	"painting_estimator_backend/platform/db"
	"painting_estimator_backend/platform/logger"
	"painting_estimator_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	health := map[string]apphttp.HealthChecker{}
	val := validator.New()

	var catalogSource catalogrepo.Source
	if cfg.IsDatabaseEnabled() {
		pool := connectDatabase(ctx, cfg, log)
		defer pool.Close()
		health["database"] = db.NewPoolAdapter(pool)
		catalogSource = catalogrepo.New(pool, val)
	} else {
		catalogSource = catalogrepo.NewFileSource(cfg.GetCatalogFile(), val)
		log.Info("catalog source is a file", "path", cfg.GetCatalogFile())
	}

	ix, err := catalogrepo.LoadIndex(ctx, catalogSource)
	if err != nil {
		log.Error("failed to load catalog", "error", err)
		panic("failed to load catalog: " + err.Error())
	}
	log.Info("catalog loaded", "records", ix.Len())

	sessionStore, closeStore := initSessionStore(ctx, cfg, log)
	defer closeStore()
	if checker, ok := sessionStore.(apphttp.HealthChecker); ok {
		health["sessions"] = checker
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(log)
	notificationModule.RegisterHandlers(eventBus)

	catalogModule := catalog.NewModule(ix, val, log)
	intakeModule := intake.NewModule(sessionStore, eventBus, val, log)
	estimatesModule := estimates.NewModule(ix, pricingFromConfig(cfg), eventBus, val, log)

	// Set session reader on estimates module (breaks circular dependency)
	estimatesModule.SetSessionReader(adapters.NewIntakeSessionReader(intakeModule.Service()))

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   health,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			catalogModule,
			intakeModule,
			estimatesModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		eventBus.Wait()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped", "activity", notificationModule.Activity())
}

func connectDatabase(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) *pgxpool.Pool {
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
	log.Info("database connection established")

	applied, err := db.RunMigrations(ctx, pool)
	if err != nil {
		pool.Close()
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete", "applied", applied)
	return pool
}

// initSessionStore picks Redis when REDIS_URL is set, otherwise an in-memory
// store swept in the background.
func initSessionStore(ctx context.Context, cfg config.SessionStoreConfig, log *logger.Logger) (intakerepo.SessionStore, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; intake sessions are kept in memory")
		store := intakerepo.NewMemoryStore(cfg.GetSessionTTL())
		go sweepSessions(ctx, store, log)
		return store, func() {}
	}

	var store *intakerepo.RedisStore
	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		s, err := intakerepo.NewRedisStore(ctx, cfg.GetRedisURL(), cfg.GetRedisTLSInsecure(), cfg.GetSessionTTL())
		if err != nil {
			return err
		}
		store = s
		return nil
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	log.Info("redis session store initialized", "ttl", cfg.GetSessionTTL())
	return store, func() {
		_ = store.Close()
	}
}

func sweepSessions(ctx context.Context, store *intakerepo.MemoryStore, log *logger.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Sweep(); n > 0 {
				log.Debug("expired intake sessions removed", "count", n, "remaining", store.Len())
			}
		}
	}
}

func pricingFromConfig(cfg config.PricingConfig) estimatesvc.Pricing {
	return estimatesvc.Pricing{
		LaborPricePerHour: cfg.GetLaborPricePerHour(),
		GlobalMarkupPct:   cfg.GetGlobalMarkupPct(),
		ROTRate:           cfg.GetROTRate(),
		ROTCap:            cfg.GetROTCap(),
		MinConfidence:     cfg.GetMinMappingConfidence(),
	}
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
