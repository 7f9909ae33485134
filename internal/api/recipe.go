package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kilo-recipes/recipe-api/backend/internal/middleware"
	"github.com/kilo-recipes/recipe-api/backend/internal/service"
	"github.com/kilo-recipes/recipe-api/backend/internal/types"
)

// RecipeHandler serves /recipe/recipes/
type RecipeHandler struct {
	recipeService service.IRecipeService
	imageService  service.IImageService
	maxUpload     int64
	logger        *zap.Logger

	createLimiter gin.HandlerFunc
	uploadLimiter gin.HandlerFunc
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipeService service.IRecipeService, imageService service.IImageService, maxUpload int64, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		imageService:  imageService,
		maxUpload:     maxUpload,
		logger:        logger,
	}
}

// WithRateLimits guards recipe creation and image upload; nil leaves a route unlimited.
func (h *RecipeHandler) WithRateLimits(create, upload gin.HandlerFunc) *RecipeHandler {
	h.createLimiter = create
	h.uploadLimiter = upload
	return h
}

// RegisterRoutes mounts the recipe routes on an authenticated group
func (h *RecipeHandler) RegisterRoutes(router gin.IRouter) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/", h.ListRecipes)
		recipes.POST("/", withLimiter(h.createLimiter, h.CreateRecipe)...)
		recipes.GET("/:id/", h.GetRecipe)
		recipes.PUT("/:id/", h.UpdateRecipe)
		recipes.PATCH("/:id/", h.PatchRecipe)
		recipes.DELETE("/:id/", h.DeleteRecipe)
		recipes.POST("/:id/upload-image/", withLimiter(h.uploadLimiter, h.UploadImage)...)
	}
}

func withLimiter(limiter, handler gin.HandlerFunc) []gin.HandlerFunc {
	if limiter == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{limiter, handler}
}

// ListRecipes lists the caller's recipes, optionally filtered by ?tags= and
// ?ingredients= (comma-separated ids).
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	verr := &service.ValidationError{}
	filter := service.RecipeFilter{
		TagIDs:        parseIDList(verr, "tags", c.Query("tags")),
		IngredientIDs: parseIDList(verr, "ingredients", c.Query("ingredients")),
	}
	if err := verr.Err(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), middleware.CurrentUserID(c), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeListResponse(recipes))
}

// GetRecipe returns the detail representation
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeDetailResponse(recipe, h.imageService.URL))
}

// CreateRecipe creates a recipe owned by the caller
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindErrors(err).Fields)
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), middleware.CurrentUserID(c), recipeInput(&req))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, types.NewRecipeDetailResponse(recipe, h.imageService.URL))
}

// UpdateRecipe replaces the recipe's writable fields
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	h.updateRecipe(c, false)
}

// PatchRecipe updates the fields present in the payload
func (h *RecipeHandler) PatchRecipe(c *gin.Context) {
	h.updateRecipe(c, true)
}

func (h *RecipeHandler) updateRecipe(c *gin.Context, partial bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req types.RecipeRequest
	if err := bindOptional(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, bindErrors(err).Fields)
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), middleware.CurrentUserID(c), id, recipeInput(&req), partial)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeDetailResponse(recipe, h.imageService.URL))
}

// DeleteRecipe deletes an owned recipe
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage stores the multipart "image" file as the recipe's image
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	// Leave some room for the multipart envelope
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+1<<20)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			respondError(c, h.logger, service.NewValidationError("image", "Ensure the file is no larger than "+strconv.FormatInt(h.maxUpload, 10)+" bytes."))
		default:
			respondError(c, h.logger, service.NewValidationError("image", "No file was submitted."))
		}
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer file.Close()

	data, err := service.ReadLimited(file, h.maxUpload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	recipe, err := h.imageService.UploadRecipeImage(c.Request.Context(), middleware.CurrentUserID(c), id, fileHeader.Filename, data)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeDetailResponse(recipe, h.imageService.URL))
}

func recipeInput(req *types.RecipeRequest) service.RecipeInput {
	in := service.RecipeInput{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Link:        req.Link,
		Tags:        types.Names(req.Tags),
		Ingredients: types.Names(req.Ingredients),
	}
	if req.Price != nil {
		in.Price = &req.Price.Decimal
	}
	return in
}

// pathID parses :id; a malformed id is answered like a missing row
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return uint(id), true
}

func parseIDList(verr *service.ValidationError, field, raw string) []uint {
	if raw == "" {
		return nil
	}

	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			verr.Add(field, "A valid integer is required.")
			return nil
		}
		ids = append(ids, uint(id))
	}
	return ids
}
