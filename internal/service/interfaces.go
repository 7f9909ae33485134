package service

import (
	"context"
	"io"

	"github.com/kilo-recipes/recipe-api/backend/internal/models"
	"github.com/kilo-recipes/recipe-api/backend/internal/types"
)

// ObjectStore persists uploaded media under a key
type ObjectStore interface {
	Save(ctx context.Context, key string, r io.Reader, contentType string) error
	URL(key string) string
}

// IAuthService defines the interface for account and token operations
type IAuthService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	CreateSuperuser(ctx context.Context, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (string, *models.User, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	UserFromToken(ctx context.Context, token string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, userID uint, filter RecipeFilter) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, userID, id uint) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, userID uint, in RecipeInput) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, userID, id uint, in RecipeInput, partial bool) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, id uint) error
}

// IAttributeService defines the interface for tag and ingredient operations
type IAttributeService[T models.Attribute] interface {
	Label() string
	List(ctx context.Context, userID uint, assignedOnly bool) ([]T, error)
	Get(ctx context.Context, userID, id uint) (*T, error)
	Create(ctx context.Context, userID uint, name string) (*T, error)
	Update(ctx context.Context, userID, id uint, name *string) (*T, error)
	Delete(ctx context.Context, userID, id uint) error
}

// IImageService defines the interface for recipe image uploads
type IImageService interface {
	UploadRecipeImage(ctx context.Context, userID, recipeID uint, filename string, data []byte) (*models.Recipe, error)
	URL(key string) string
}

var (
	_ IAuthService                         = (*AuthService)(nil)
	_ IRecipeService                       = (*RecipeService)(nil)
	_ IAttributeService[models.Tag]        = (*AttributeService[models.Tag, *models.Tag])(nil)
	_ IAttributeService[models.Ingredient] = (*AttributeService[models.Ingredient, *models.Ingredient])(nil)
	_ IImageService                        = (*ImageService)(nil)
)
