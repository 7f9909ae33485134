package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kilo-recipes/recipe-api/backend/internal/middleware"
	"github.com/kilo-recipes/recipe-api/backend/internal/models"
	"github.com/kilo-recipes/recipe-api/backend/internal/service"
	"github.com/kilo-recipes/recipe-api/backend/internal/types"
)

type namedPtr[T any] interface {
	*T
	models.Named
}

// AttributeHandler serves the tag and ingredient endpoints
type AttributeHandler[T models.Attribute, PT namedPtr[T]] struct {
	svc    service.IAttributeService[T]
	logger *zap.Logger
}

// NewAttributeHandler creates a handler, e.g. NewAttributeHandler[models.Tag](tags, logger)
func NewAttributeHandler[T models.Attribute, PT namedPtr[T]](svc service.IAttributeService[T], logger *zap.Logger) *AttributeHandler[T, PT] {
	return &AttributeHandler[T, PT]{svc: svc, logger: logger}
}

// RegisterRoutes mounts list/detail routes at path on an authenticated group
func (h *AttributeHandler[T, PT]) RegisterRoutes(router gin.IRouter, path string) {
	group := router.Group(path)
	{
		group.GET("/", h.List)
		group.POST("/", h.Create)
		group.GET("/:id/", h.Get)
		group.PUT("/:id/", h.Update)
		group.PATCH("/:id/", h.Update)
		group.DELETE("/:id/", h.Delete)
	}
}

// List returns the caller's rows; ?assigned_only=1 keeps those used by a recipe.
func (h *AttributeHandler[T, PT]) List(c *gin.Context) {
	assignedOnly := false
	if raw := c.Query("assigned_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, h.logger, service.NewValidationError("assigned_only", "Must be 0 or 1."))
			return
		}
		assignedOnly = v
	}

	items, err := h.svc.List(c.Request.Context(), middleware.CurrentUserID(c), assignedOnly)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]types.AttributeResponse, 0, len(items))
	for i := range items {
		out = append(out, types.NewAttributeResponse(PT(&items[i])))
	}
	c.JSON(http.StatusOK, out)
}

// Get returns one owned row
func (h *AttributeHandler[T, PT]) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.svc.Get(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, types.NewAttributeResponse(PT(item)))
}

// Create adds a row for the caller
func (h *AttributeHandler[T, PT]) Create(c *gin.Context) {
	var req types.NameRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindErrors(err).Fields)
		return
	}

	item, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, types.NewAttributeResponse(PT(item)))
}

// Update renames an owned row. PUT and PATCH behave the same since name is
// the only writable field.
func (h *AttributeHandler[T, PT]) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req types.AttributeUpdateRequest
	if err := bindOptional(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, bindErrors(err).Fields)
		return
	}
	if c.Request.Method == http.MethodPut && req.Name == nil {
		respondError(c, h.logger, service.NewValidationError("name", "This field is required."))
		return
	}

	item, err := h.svc.Update(c.Request.Context(), middleware.CurrentUserID(c), id, req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, types.NewAttributeResponse(PT(item)))
}

// Delete removes an owned row
func (h *AttributeHandler[T, PT]) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
