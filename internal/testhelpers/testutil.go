package testhelpers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kilo-recipes/recipe-api/backend/internal/models"
)

// TestPassword is the plaintext password of users made by CreateTestUser
const TestPassword = "testpass123"

// CreateTestUser creates a test user in the database
func CreateTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestRecipe creates a recipe with the default sample values
func CreateTestRecipe(t *testing.T, db *gorm.DB, userID uint, title string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		UserID:      userID,
		Title:       title,
		TimeMinutes: 22,
		Price:       decimal.RequireFromString("5.25"),
		Link:        "http://example.com/recipe.pdf",
		Description: "Sample recipe description.",
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

// CreateTestTag creates a tag owned by userID
func CreateTestTag(t *testing.T, db *gorm.DB, userID uint, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{UserID: userID, Name: name}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

// CreateTestIngredient creates an ingredient owned by userID
func CreateTestIngredient(t *testing.T, db *gorm.DB, userID uint, name string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{UserID: userID, Name: name}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

// PNGBytes returns a small valid PNG image
func PNGBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// JSONMarshal is a helper function to marshal JSON for testing
func JSONMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal JSON: %v", err)
	}
	return data
}
