package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/kilo-recipes/recipe-api/backend/internal/models"
)

const msgInvalidImage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."

// RecipeImageDir is the storage prefix of recipe images
const RecipeImageDir = "uploads/recipe"

// ImageService validates uploaded recipe images and hands them to storage
type ImageService struct {
	recipes *RecipeService
	store   ObjectStore
}

// NewImageService creates a new ImageService instance
func NewImageService(recipes *RecipeService, store ObjectStore) *ImageService {
	return &ImageService{recipes: recipes, store: store}
}

// URL resolves a stored key to the reference returned to clients
func (s *ImageService) URL(key string) string {
	return s.store.URL(key)
}

// UploadRecipeImage stores data as the image of an owned recipe and returns
// the updated recipe. The recipe is left untouched when data is not a
// decodable image.
func (s *ImageService) UploadRecipeImage(ctx context.Context, userID, recipeID uint, filename string, data []byte) (*models.Recipe, error) {
	if _, err := s.recipes.GetRecipe(ctx, userID, recipeID); err != nil {
		return nil, err
	}

	contentType, err := validateImage(data)
	if err != nil {
		return nil, err
	}

	key := RecipeImagePath(filename)
	if err := s.store.Save(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return nil, fmt.Errorf("failed to store recipe image: %w", err)
	}

	return s.recipes.SetImage(ctx, userID, recipeID, key)
}

// RecipeImagePath builds uploads/recipe/<uuid><ext> keeping the original
// extension, lower-cased.
func RecipeImagePath(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(RecipeImageDir, uuid.New().String()+ext)
}

func validateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", NewValidationError("image", "The submitted file is empty.")
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", NewValidationError("image", msgInvalidImage)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", NewValidationError("image", msgInvalidImage)
	}
	return mtype.String(), nil
}

// ReadLimited reads at most limit bytes from r and fails when there is more
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, NewValidationError("image", fmt.Sprintf("Ensure the file is no larger than %d bytes.", limit))
	}
	return data, nil
}
