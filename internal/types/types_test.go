package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilo-recipes/recipe-api/backend/internal/models"
)

func TestPriceUnmarshal(t *testing.T) {
	var req RecipeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"price": 5.25}`), &req))
	assert.Equal(t, "5.25", req.Price.StringFixed(2))

	req = RecipeRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"price": "4.50"}`), &req))
	assert.Equal(t, "4.50", req.Price.StringFixed(2))

	err := json.Unmarshal([]byte(`{"price": "cheap"}`), &req)
	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "price", fieldErr.Field)
}

func TestNames(t *testing.T) {
	assert.Nil(t, Names(nil))

	refs := []NameRequest{{Name: "Thai"}, {Name: "Dinner"}}
	assert.Equal(t, []string{"Thai", "Dinner"}, *Names(&refs))

	empty := []NameRequest{}
	assert.Equal(t, []string{}, *Names(&empty))
}

func TestRecipeResponses(t *testing.T) {
	recipe := &models.Recipe{
		ID:          3,
		Title:       "Soup",
		TimeMinutes: 10,
		Price:       decimal.RequireFromString("5"),
		Description: "Hot",
		Tags:        []models.Tag{{ID: 1, Name: "Starter"}},
	}

	list := NewRecipeResponse(recipe)
	assert.Equal(t, "5.00", list.Price)
	assert.Equal(t, []AttributeResponse{{ID: 1, Name: "Starter"}}, list.Tags)
	assert.NotNil(t, list.Ingredients)

	detail := NewRecipeDetailResponse(recipe, nil)
	assert.Nil(t, detail.Image)
	assert.Equal(t, "Hot", detail.Description)

	body, err := json.Marshal(detail)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"title":"Soup","time_minutes":10,"price":"5.00","link":"",
		"tags":[{"id":1,"name":"Starter"}],"ingredients":[],"description":"Hot","image":null}`, string(body))

	recipe.Image = "uploads/recipe/x.png"
	detail = NewRecipeDetailResponse(recipe, func(key string) string { return "/media/" + key })
	require.NotNil(t, detail.Image)
	assert.Equal(t, "/media/uploads/recipe/x.png", *detail.Image)
}

func TestUserResponseOmitsPassword(t *testing.T) {
	body, err := json.Marshal(NewUserResponse(&models.User{Email: "a@example.com", Name: "A", PasswordHash: "secret"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@example.com","name":"A"}`, string(body))
}
