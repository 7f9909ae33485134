package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kilo-recipes/recipe-api/backend/config"
	"github.com/kilo-recipes/recipe-api/backend/internal/api"
	"github.com/kilo-recipes/recipe-api/backend/internal/database"
	"github.com/kilo-recipes/recipe-api/backend/internal/middleware"
	"github.com/kilo-recipes/recipe-api/backend/internal/models"
	"github.com/kilo-recipes/recipe-api/backend/internal/service"
)

// Dependencies are the long-lived resources the routes are built from.
// Redis may be nil, which disables rate limiting.
type Dependencies struct {
	Config *config.Config
	DB     *database.DB
	Redis  *redis.Client
	Store  service.ObjectStore
	Logger *zap.Logger
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = cfg.MaxUploadSize

	router.Use(
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.CORS(cfg.AllowedOrigins()),
	)
	router.NoRoute(middleware.NotFound)
	router.NoMethod(middleware.MethodNotAllowed)

	// Services
	authService := service.NewAuthService(deps.DB.DB, cfg.JWTSecret, cfg.TokenTTL)
	recipeService := service.NewRecipeService(deps.DB.DB)
	imageService := service.NewImageService(recipeService, deps.Store)
	tagService := service.NewAttributeService[models.Tag](deps.DB.DB)
	ingredientService := service.NewAttributeService[models.Ingredient](deps.DB.DB)

	// Handlers
	userHandler := api.NewUserHandler(authService, deps.Logger)
	recipeHandler := api.NewRecipeHandler(recipeService, imageService, cfg.MaxUploadSize, deps.Logger)
	tagHandler := api.NewAttributeHandler[models.Tag](tagService, deps.Logger)
	ingredientHandler := api.NewAttributeHandler[models.Ingredient](ingredientService, deps.Logger)

	if deps.Redis != nil && cfg.RateLimitEnabled {
		createLimiter := middleware.NewRecipeCreationRateLimiter(deps.Redis, cfg.RateLimitRecipeCreation, cfg.RateLimitWindow, deps.Logger)
		uploadLimiter := middleware.NewImageUploadRateLimiter(deps.Redis, cfg.RateLimitImageUpload, cfg.RateLimitWindow, deps.Logger)
		recipeHandler.WithRateLimits(createLimiter.RateLimitMiddleware(), uploadLimiter.RateLimitMiddleware())
	}

	// Public routes
	router.GET("/", api.Home)
	router.GET("/health", api.HealthCheck(deps.DB))

	authRequired := middleware.AuthMiddleware(authService)
	userHandler.RegisterRoutes(router, authRequired)

	// Protected routes
	recipe := router.Group("/recipe", authRequired)
	{
		recipeHandler.RegisterRoutes(recipe)
		tagHandler.RegisterRoutes(recipe, "/tags")
		ingredientHandler.RegisterRoutes(recipe, "/ingredients")
	}

	return router
}
