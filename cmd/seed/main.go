// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"depo/internal/config"
	"depo/internal/core/apperror"
	"depo/internal/core/entity"
	"depo/internal/domain/auth"
	"depo/internal/domain/catalogs/location"
	"depo/internal/domain/catalogs/unit"
	"depo/internal/domain/catalogs/warehouse"
	"depo/internal/domain/catalogs/warehousetype"
	"depo/internal/infrastructure/storage/postgres"
	"depo/internal/infrastructure/storage/postgres/auth_repo"
	"depo/internal/infrastructure/storage/postgres/catalog_repo"
	"depo/pkg/logger"
	"depo/pkg/numerator"
)

// warehouseTypes are the built-in classifications; names match the icon keywords.
var warehouseTypes = []struct{ code, name string }{
	{"RAW", "Hammadde Deposu"},
	{"SPARE", "Yedek Parça Deposu"},
	{"FINISHED", "Mamul Deposu"},
	{"GENERAL", "Genel Depo"},
}

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	envFile := flag.String("env", ".env", "path to .env file (optional)")
	demo := flag.Bool("demo", os.Getenv("SEED_DEMO_DATA") == "true", "also seed a demo location and warehouse")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	ctx := logger.WithLogger(context.Background(), log)

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Postgres.DSN))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalw("failed to apply migrations", "error", err)
	}
	log.Info("connected to database")

	txm := postgres.NewTxManager(pool)
	codes := numerator.New(txm)

	types := warehousetype.NewService(catalog_repo.NewWarehouseTypeRepo(txm), txm, nil)
	for _, wt := range warehouseTypes {
		if err := seedOne(ctx, log, types, wt.code, func() *warehousetype.WarehouseType {
			return warehousetype.NewWarehouseType(wt.code, wt.name)
		}); err != nil {
			log.Fatalw("failed to seed warehouse type", "code", wt.code, "error", err)
		}
	}

	units := unit.NewService(unit.ServiceConfig{Repo: catalog_repo.NewUnitRepo(txm), TxManager: txm})
	piece := cfg.Units.PieceSentinel
	if err := seedOne(ctx, log, units, piece, func() *unit.Unit {
		return unit.NewUnit(piece, "Adet", "Piece")
	}); err != nil {
		log.Fatalw("failed to seed piece unit", "error", err)
	}

	if err := seedAdminUser(ctx, log, txm); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if *demo {
		if err := seedDemoData(ctx, log, txm, codes, types); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

type catalogSeeder[T entity.Entity] interface {
	GetByCode(ctx context.Context, code string) (T, error)
	Create(ctx context.Context, e T) error
}

// seedOne creates the catalog item unless one with code already exists.
func seedOne[T entity.Entity](ctx context.Context, log *logger.Logger, svc catalogSeeder[T], code string, newFn func() T) error {
	_, err := svc.GetByCode(ctx, code)
	if err == nil {
		log.Infow("catalog item already exists", "code", code)
		return nil
	}
	if !apperror.IsNotFound(err) {
		return err
	}
	if err := svc.Create(ctx, newFn()); err != nil {
		return err
	}
	log.Infow("catalog item created", "code", code)
	return nil
}

func seedAdminUser(ctx context.Context, log *logger.Logger, txm *postgres.TxManager) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	jwtService := auth.NewJWTService(auth.DefaultJWTConfig("seed"))
	authService := auth.NewService(auth_repo.NewUserRepo(txm), txm, jwtService, auth.DefaultServiceConfig())

	user, err := authService.CreateUser(ctx, username, password, true)
	if apperror.HasCode(err, apperror.CodeDuplicate) {
		log.Infow("admin user already exists", "username", username)
		return nil
	}
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	log.Infow("admin user created", "username", username, "user_id", user.ID)
	return nil
}

func seedDemoData(ctx context.Context, log *logger.Logger, txm *postgres.TxManager, codes *numerator.Service, types *warehousetype.Service) error {
	log.Info("seeding demo data...")

	locations := location.NewService(catalog_repo.NewLocationRepo(txm), txm, nil, codes)
	warehouses := warehouse.NewService(warehouse.ServiceConfig{
		Repo:      catalog_repo.NewWarehouseRepo(txm),
		TxManager: txm,
		Numerator: codes,
		Types:     types,
		Locations: locations,
	})

	general, err := types.GetByCode(ctx, "GENERAL")
	if err != nil {
		return fmt.Errorf("load GENERAL type: %w", err)
	}

	loc := location.NewLocation("", "Merkez")
	if err := locations.Create(ctx, loc); err != nil {
		return fmt.Errorf("create location: %w", err)
	}

	wh := warehouse.NewWarehouse("", "Ana Depo", general.ID, loc.ID)
	if err := warehouses.Create(ctx, wh); err != nil {
		return fmt.Errorf("create warehouse: %w", err)
	}

	log.Infow("demo data created", "location", loc.Code, "warehouse", wh.Code)
	return nil
}
