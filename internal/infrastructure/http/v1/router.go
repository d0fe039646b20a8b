// Package v1 provides HTTP API version 1.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"depo/internal/domain/catalogs/location"
	"depo/internal/domain/catalogs/unit"
	"depo/internal/domain/catalogs/warehouse"
	"depo/internal/domain/catalogs/warehousetype"
	"depo/internal/domain/form"
	"depo/internal/infrastructure/http/v1/handlers"
	"depo/internal/infrastructure/http/v1/middleware"
	"depo/internal/infrastructure/metrics"
	"depo/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Logger       *logger.Logger
	DB           handlers.Pinger
	JWTValidator middleware.JWTValidator
	AuthService  handlers.Authenticator

	// Registry holds the open dialog sessions
	Registry *form.Registry
	Metrics  *metrics.Forms

	// MetricsHandler serves /metrics when set
	MetricsHandler http.Handler

	Units          *unit.Service
	Warehouses     *warehouse.Service
	Locations      *location.Service
	WarehouseTypes *warehousetype.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.DB)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	if cfg.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerFormRoutes(protected, cfg)
		registerCatalogRoutes(protected, cfg)
	}

	return router
}

func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}
	authHandler := handlers.NewAuthHandler(handlers.NewBaseHandler(), cfg.AuthService)

	public := rg.Group("/auth")
	protected := rg.Group("/auth")
	protected.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(public, protected)
}

// registerFormRoutes registers the dialog session API under /forms/{kind}.
func registerFormRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	forms := rg.Group("/forms")
	base := handlers.NewBaseHandler()

	if cfg.Units != nil {
		handlers.NewFormHandler(base, cfg.Registry, cfg.Metrics, handlers.UnitKind(cfg.Units)).
			RegisterRoutes(forms.Group("/units"))
	}
	if cfg.Warehouses != nil {
		handlers.NewFormHandler(base, cfg.Registry, cfg.Metrics, handlers.WarehouseKind(cfg.Warehouses)).
			RegisterRoutes(forms.Group("/warehouses"))
	}
	if cfg.Locations != nil {
		handlers.NewFormHandler(base, cfg.Registry, cfg.Metrics, handlers.LocationKind(cfg.Locations)).
			RegisterRoutes(forms.Group("/locations"))
	}
}

func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	base := handlers.NewBaseHandler()

	if cfg.Units != nil {
		RegisterCatalogRoutes(catalogs.Group("/units"),
			handlers.NewCatalogHandler[*unit.Unit](base, cfg.Units, nil))
	}
	if cfg.Warehouses != nil {
		RegisterCatalogRoutes(catalogs.Group("/warehouses"),
			handlers.NewCatalogHandler[*warehouse.Warehouse](base, cfg.Warehouses, nil))
	}
	if cfg.Locations != nil {
		RegisterCatalogRoutes(catalogs.Group("/locations"),
			handlers.NewCatalogHandler[*location.Location](base, cfg.Locations, nil))
	}
	if cfg.WarehouseTypes != nil {
		RegisterCatalogRoutes(catalogs.Group("/warehouse-types"),
			handlers.NewCatalogHandler(base, cfg.WarehouseTypes, func(wt *warehousetype.WarehouseType) any {
				return warehousetype.OptionOf(wt)
			}))
	}
}
