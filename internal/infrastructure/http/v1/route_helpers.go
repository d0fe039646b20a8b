package v1

import (
	"github.com/gin-gonic/gin"

	"depo/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the routes every catalog exposes.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Delete(c *gin.Context)
}

// RegisterCatalogRoutes registers catalog reads; deletion requires an admin.
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler) {
	group.GET("", handler.List)
	group.GET("/:id", handler.Get)
	group.DELETE("/:id", middleware.RequireAdmin(), handler.Delete)
}
