// Package main is the entry point for the depo API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"depo/internal/config"
	"depo/internal/core/id"
	"depo/internal/domain/auth"
	"depo/internal/domain/catalogs/location"
	"depo/internal/domain/catalogs/unit"
	"depo/internal/domain/catalogs/warehouse"
	"depo/internal/domain/catalogs/warehousetype"
	"depo/internal/domain/form"
	v1 "depo/internal/infrastructure/http/v1"
	"depo/internal/infrastructure/metrics"
	"depo/internal/infrastructure/storage/postgres"
	"depo/internal/infrastructure/storage/postgres/auth_repo"
	"depo/internal/infrastructure/storage/postgres/catalog_repo"
	"depo/pkg/logger"
	"depo/pkg/numerator"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	envFile := flag.String("env", ".env", "path to .env file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	log.Infow("starting depo server", "env", cfg.App.Env)

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.Postgres.DSN)
	poolCfg.MaxConns = cfg.Postgres.MaxConns
	poolCfg.MinConns = cfg.Postgres.MinConns
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if cfg.Postgres.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatalw("failed to apply migrations", "error", err)
		}
		log.Info("migrations applied")
	}

	txm := postgres.NewTxManager(pool)
	auditor, err := postgres.NewAuditService(txm)
	if err != nil {
		log.Fatalw("failed to create audit service", "error", err)
	}
	codes := numerator.New(txm)

	// --- Catalog services ---
	isPiece, err := pieceDetector(cfg)
	if err != nil {
		log.Fatalw("invalid units.piece_rule", "error", err)
	}

	types := warehousetype.NewService(catalog_repo.NewWarehouseTypeRepo(txm), txm, auditor)
	locations := location.NewService(catalog_repo.NewLocationRepo(txm), txm, auditor, codes)
	units := unit.NewService(unit.ServiceConfig{
		Repo:      catalog_repo.NewUnitRepo(txm),
		TxManager: txm,
		Auditor:   auditor,
		IsPiece:   isPiece,
	})
	warehouseRepo := catalog_repo.NewWarehouseRepo(txm)
	warehouses := warehouse.NewService(warehouse.ServiceConfig{
		Repo:      warehouseRepo,
		TxManager: txm,
		Auditor:   auditor,
		Numerator: codes,
		Types:     types,
		Locations: locations,
	})
	types.Hooks().OnBeforeDelete(warehouse.DeleteGuard[*warehousetype.WarehouseType](warehouseRepo, warehouse.RefWarehouseType))
	locations.Hooks().OnBeforeDelete(warehouse.DeleteGuard[*location.Location](warehouseRepo, warehouse.RefLocation))

	// --- Auth ---
	jwtConfig := auth.DefaultJWTConfig(cfg.JWT.Secret)
	jwtConfig.AccessTokenTTL = cfg.JWT.TTL
	jwtService := auth.NewJWTService(jwtConfig)
	authService := auth.NewService(auth_repo.NewUserRepo(txm), txm, jwtService, auth.DefaultServiceConfig())

	// --- Form sessions and metrics ---
	var formMetrics *metrics.Forms
	registry := form.NewRegistry(form.WithExpireHook(func(sid id.ID, s form.Session) {
		formMetrics.Expired(s.Kind())
		log.Infow("form session expired", "kind", s.Kind(), "session_id", sid)
	}))

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		promRegistry := prometheus.NewRegistry()
		promRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		formMetrics = metrics.NewForms(promRegistry, registry.Len)
		metrics.RegisterPool(promRegistry, pool.Stat)
		metricsHandler = promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})
	}

	go registry.Run(ctx, cfg.Forms.SweepInterval, cfg.Forms.IdleTimeout)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:         log,
		DB:             pool,
		JWTValidator:   jwtService,
		AuthService:    authService,
		Registry:       registry,
		Metrics:        formMetrics,
		MetricsHandler: metricsHandler,
		Units:          units,
		Warehouses:     warehouses,
		Locations:      locations,
		WarehouseTypes: types,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Infow("server stopped", "open_sessions", registry.Len())
}

// pieceDetector picks the piece-unit rule: the CEL rule when configured,
// otherwise the sentinel code.
func pieceDetector(cfg config.Config) (unit.PieceDetector, error) {
	if cfg.Units.PieceRule != "" {
		return unit.CELDetector(cfg.Units.PieceRule)
	}
	return unit.SentinelDetector(cfg.Units.PieceSentinel), nil
}
