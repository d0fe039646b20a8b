package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"depo/internal/core/entity"
	"depo/internal/core/id"
	"depo/internal/domain"
	"depo/internal/infrastructure/http/v1/dto"
)

// CatalogService is the subset of domain.CatalogService the catalog routes use.
type CatalogService[T entity.Entity] interface {
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error)
	GetByID(ctx context.Context, entityID id.ID) (T, error)
	Delete(ctx context.Context, entityID id.ID) error
}

// CatalogHandler serves catalog reads and soft deletion.
type CatalogHandler[T entity.Entity] struct {
	*BaseHandler
	service  CatalogService[T]
	mapToDTO func(entity T) any
}

// NewCatalogHandler creates a catalog handler. A nil mapToDTO renders the entity as is.
func NewCatalogHandler[T entity.Entity](base *BaseHandler, service CatalogService[T], mapToDTO func(T) any) *CatalogHandler[T] {
	if mapToDTO == nil {
		mapToDTO = func(e T) any { return e }
	}
	return &CatalogHandler[T]{BaseHandler: base, service: service, mapToDTO: mapToDTO}
}

// List handles GET /catalog/{kind}
func (h *CatalogHandler[T]) List(c *gin.Context) {
	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", filter.Limit)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", filter.OrderBy)
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"
	filter.ActiveOnly = c.Query("activeOnly") == "true"

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = h.mapToDTO(item)
	}
	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /catalog/{kind}/:id
func (h *CatalogHandler[T]) Get(c *gin.Context) {
	entityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	e, err := h.service.GetByID(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, h.mapToDTO(e))
}

// Delete handles DELETE /catalog/{kind}/:id (soft delete).
func (h *CatalogHandler[T]) Delete(c *gin.Context) {
	entityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), entityID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
