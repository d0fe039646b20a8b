package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"depo/internal/core/apperror"
	appctx "depo/internal/core/context"
	"depo/internal/core/id"
	"depo/internal/domain/form"
	"depo/internal/infrastructure/http/v1/dto"
	"depo/internal/infrastructure/metrics"
	"depo/pkg/logger"
)

// FormKind binds one dialog kind to the session API.
type FormKind[F form.Session, P any] struct {
	// Open creates the dialog; a nil entityID opens it in add mode.
	Open func(ctx context.Context, entityID *id.ID) (F, error)

	// Apply runs the patch through the form setters in a fixed order.
	Apply func(f F, patch P)

	// View renders the dialog state.
	View func(f F) any
}

// FormHandler serves /forms/{kind}/sessions.
type FormHandler[F form.Session, P any] struct {
	*BaseHandler
	registry *form.Registry
	metrics  *metrics.Forms
	kind     FormKind[F, P]
}

// NewFormHandler creates a session handler for one dialog kind.
func NewFormHandler[F form.Session, P any](base *BaseHandler, registry *form.Registry, m *metrics.Forms, kind FormKind[F, P]) *FormHandler[F, P] {
	return &FormHandler[F, P]{BaseHandler: base, registry: registry, metrics: m, kind: kind}
}

func (h *FormHandler[F, P]) respond(c *gin.Context, status int, sid id.ID, f F) {
	c.JSON(status, dto.SessionResponse{
		SessionID: sid.String(),
		Kind:      f.Kind(),
		View:      h.kind.View(f),
	})
}

func (h *FormHandler[F, P]) lookup(c *gin.Context) (id.ID, F, bool) {
	var zero F
	sid, ok := h.ParseID(c, "sid")
	if !ok {
		return sid, zero, false
	}
	f, err := form.Lookup[F](h.registry, sid)
	if err != nil {
		h.Error(c, err)
		return sid, zero, false
	}
	tagSession(c, f.Kind(), sid)
	return sid, f, true
}

// Open handles POST /sessions
func (h *FormHandler[F, P]) Open(c *gin.Context) {
	var req dto.OpenSessionRequest
	if !h.BindOptionalJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	f, err := h.kind.Open(ctx, req.EntityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	sid := h.registry.Put(f)
	tagSession(c, f.Kind(), sid)
	h.metrics.Opened(f.Kind(), f.Mode())
	logger.Info(c.Request.Context(), "form session opened", "mode", f.Mode().String())

	h.respond(c, http.StatusCreated, sid, f)
}

// Get handles GET /sessions/:sid
func (h *FormHandler[F, P]) Get(c *gin.Context) {
	sid, f, ok := h.lookup(c)
	if !ok {
		return
	}
	h.respond(c, http.StatusOK, sid, f)
}

// Patch handles PATCH /sessions/:sid
func (h *FormHandler[F, P]) Patch(c *gin.Context) {
	var patch P
	if !h.BindJSON(c, &patch) {
		return
	}
	sid, f, ok := h.lookup(c)
	if !ok {
		return
	}
	h.kind.Apply(f, patch)
	h.respond(c, http.StatusOK, sid, f)
}

// Submit handles POST /sessions/:sid/submit
// On failure the session stays registered so the user can retry.
func (h *FormHandler[F, P]) Submit(c *gin.Context) {
	sid, f, ok := h.lookup(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	entityID, err := f.Submit(ctx)
	if err != nil {
		h.metrics.Submitted(f.Kind(), submitOutcome(err))
		logger.Info(ctx, "form submit failed", "error", err)
		h.Error(c, err)
		return
	}

	h.registry.Remove(sid)
	h.metrics.Submitted(f.Kind(), metrics.OutcomeOK)
	logger.Info(ctx, "form submitted", "entity_id", entityID)

	h.IDResponse(c, entityID)
}

// Cancel handles DELETE /sessions/:sid
func (h *FormHandler[F, P]) Cancel(c *gin.Context) {
	sid, f, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := f.Cancel(); err != nil {
		h.Error(c, err)
		return
	}

	h.registry.Remove(sid)
	h.metrics.Cancelled(f.Kind())
	logger.Info(c.Request.Context(), "form cancelled")

	h.NoContent(c)
}

// tagSession scopes the request context to the dialog session for logging.
func tagSession(c *gin.Context, kind string, sid id.ID) {
	c.Request = c.Request.WithContext(appctx.WithFormSession(c.Request.Context(), kind, sid.String()))
}

// RegisterRoutes registers the session routes on group.
func (h *FormHandler[F, P]) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/sessions", h.Open)
	group.GET("/sessions/:sid", h.Get)
	group.PATCH("/sessions/:sid", h.Patch)
	group.POST("/sessions/:sid/submit", h.Submit)
	group.DELETE("/sessions/:sid", h.Cancel)
}

// submitOutcome separates gate rejections from submitter failures.
func submitOutcome(err error) string {
	switch {
	case apperror.HasCode(err, apperror.CodeFormNotSubmittable),
		apperror.HasCode(err, apperror.CodeFormInFlight),
		apperror.HasCode(err, apperror.CodeFormClosed):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeFailed
	}
}
