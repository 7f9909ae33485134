package types

import (
	"github.com/kilo-recipes/recipe-api/backend/internal/models"
)

// UserResponse is the public representation of an account. It never carries
// the password hash.
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewUserResponse renders an account
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{Email: u.Email, Name: u.Name}
}

// AttributeResponse renders a tag or an ingredient
type AttributeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// NewAttributeResponse renders any Named row
func NewAttributeResponse(n models.Named) AttributeResponse {
	return AttributeResponse{ID: n.GetID(), Name: n.GetName()}
}

// RecipeResponse is the list representation of a recipe
type RecipeResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       string              `json:"price"`
	Link        string              `json:"link"`
	Tags        []AttributeResponse `json:"tags"`
	Ingredients []AttributeResponse `json:"ingredients"`
}

// RecipeDetailResponse adds the description and image reference
type RecipeDetailResponse struct {
	RecipeResponse
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

// ImageURLFunc turns a stored image key into the reference returned to clients
type ImageURLFunc func(key string) string

// NewRecipeResponse renders the list representation
func NewRecipeResponse(r *models.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(2),
		Link:        r.Link,
		Tags:        make([]AttributeResponse, 0, len(r.Tags)),
		Ingredients: make([]AttributeResponse, 0, len(r.Ingredients)),
	}
	for i := range r.Tags {
		resp.Tags = append(resp.Tags, NewAttributeResponse(&r.Tags[i]))
	}
	for i := range r.Ingredients {
		resp.Ingredients = append(resp.Ingredients, NewAttributeResponse(&r.Ingredients[i]))
	}
	return resp
}

// NewRecipeDetailResponse renders the detail representation; imageURL may be nil
// when no storage backend is configured.
func NewRecipeDetailResponse(r *models.Recipe, imageURL ImageURLFunc) RecipeDetailResponse {
	resp := RecipeDetailResponse{
		RecipeResponse: NewRecipeResponse(r),
		Description:    r.Description,
	}
	if r.Image != "" {
		ref := r.Image
		if imageURL != nil {
			ref = imageURL(r.Image)
		}
		resp.Image = &ref
	}
	return resp
}

// NewRecipeListResponse renders a page of recipes
func NewRecipeListResponse(recipes []models.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, NewRecipeResponse(&recipes[i]))
	}
	return out
}
