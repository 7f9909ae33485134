package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kilo-recipes/recipe-api/backend/internal/models"
)

// RecipeInput carries the writable recipe fields. Nil means the field was
// absent from the payload; nil Tags/Ingredients leave the relation untouched
// and an empty slice clears it.
type RecipeInput struct {
	Title       *string
	Description *string
	TimeMinutes *int
	Price       *decimal.Decimal
	Link        *string
	Tags        *[]string
	Ingredients *[]string
}

// RecipeFilter restricts a recipe listing to recipes linked to any of the ids
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ListRecipes returns the owner's recipes, newest first
func (s *RecipeService) ListRecipes(ctx context.Context, userID uint, filter RecipeFilter) ([]models.Recipe, error) {
	db := s.db.WithContext(ctx)
	q := preloadRelations(db).Where("user_id = ?", userID)
	if len(filter.TagIDs) > 0 {
		q = q.Where("id IN (?)", db.Table("recipe_tags").Select("recipe_id").Where("tag_id IN ?", filter.TagIDs))
	}
	if len(filter.IngredientIDs) > 0 {
		q = q.Where("id IN (?)", db.Table("recipe_ingredients").Select("recipe_id").Where("ingredient_id IN ?", filter.IngredientIDs))
	}

	var recipes []models.Recipe
	if err := q.Order("id DESC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe retrieves an owned recipe with its tags and ingredients
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	return s.getRecipe(s.db.WithContext(ctx), userID, id)
}

func (s *RecipeService) getRecipe(db *gorm.DB, userID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := preloadRelations(db).Where("user_id = ?", userID).First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	return &recipe, nil
}

// CreateRecipe creates a recipe for the owner, resolving nested tags and
// ingredients by name.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uint, in RecipeInput) (*models.Recipe, error) {
	recipe := models.Recipe{UserID: userID}
	if err := applyRecipeInput(&recipe, in, true); err != nil {
		return nil, err
	}

	var created *models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		if err := setRelations(tx, &recipe, in); err != nil {
			return err
		}

		var err error
		created, err = s.getRecipe(tx, userID, recipe.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateRecipe changes an owned recipe. A full update requires the same
// fields as a create; a partial one only touches what is set.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, id uint, in RecipeInput, partial bool) (*models.Recipe, error) {
	var updated *models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := s.getRecipe(tx, userID, id)
		if err != nil {
			return err
		}
		if err := applyRecipeInput(recipe, in, !partial); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		if err := setRelations(tx, recipe, in); err != nil {
			return err
		}

		updated, err = s.getRecipe(tx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteRecipe deletes an owned recipe and its association rows. Tags and
// ingredients themselves are kept.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := s.getRecipe(tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Select("Tags", "Ingredients").Delete(recipe).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
}

// SetImage records the storage key of an owned recipe's image
func (s *RecipeService) SetImage(ctx context.Context, userID, id uint, key string) (*models.Recipe, error) {
	var updated *models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := s.getRecipe(tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Model(recipe).Update("image", key).Error; err != nil {
			return fmt.Errorf("failed to set recipe image: %w", err)
		}
		recipe.Image = key
		updated = recipe
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func preloadRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("ingredients.id") })
}

func setRelations(tx *gorm.DB, recipe *models.Recipe, in RecipeInput) error {
	if in.Tags != nil {
		tags, err := resolveNames[models.Tag](tx, recipe.UserID, "tags", *in.Tags)
		if err != nil {
			return err
		}
		if err := replaceAssociation(tx, recipe, "Tags", tags); err != nil {
			return err
		}
	}
	if in.Ingredients != nil {
		ingredients, err := resolveNames[models.Ingredient](tx, recipe.UserID, "ingredients", *in.Ingredients)
		if err != nil {
			return err
		}
		if err := replaceAssociation(tx, recipe, "Ingredients", ingredients); err != nil {
			return err
		}
	}
	return nil
}

func replaceAssociation[T any](tx *gorm.DB, recipe *models.Recipe, name string, items []T) error {
	assoc := tx.Model(recipe).Association(name)
	var err error
	if len(items) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(items)
	}
	if err != nil {
		return fmt.Errorf("failed to set recipe %s: %w", strings.ToLower(name), err)
	}
	return nil
}

// applyRecipeInput copies set fields onto recipe and validates the result
func applyRecipeInput(recipe *models.Recipe, in RecipeInput, full bool) error {
	verr := &ValidationError{}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		switch {
		case title == "":
			verr.Add("title", msgBlank)
		case utf8.RuneCountInString(title) > 255:
			verr.Add("title", msgTooLong)
		}
		recipe.Title = title
	} else if full {
		verr.Add("title", msgRequired)
	}

	if in.TimeMinutes != nil {
		recipe.TimeMinutes = *in.TimeMinutes
	} else if full {
		verr.Add("time_minutes", msgRequired)
	}

	if in.Price != nil {
		for _, msg := range checkPrice(*in.Price) {
			verr.Add("price", msg)
		}
		recipe.Price = *in.Price
	} else if full {
		verr.Add("price", msgRequired)
	}

	if in.Description != nil {
		recipe.Description = *in.Description
	}

	if in.Link != nil {
		link := strings.TrimSpace(*in.Link)
		if utf8.RuneCountInString(link) > 255 {
			verr.Add("link", msgTooLong)
		}
		recipe.Link = link
	}

	return verr.Err()
}

const (
	priceMaxDigits   = 5
	priceMaxDecimals = 2
)

// checkPrice enforces numeric(5,2)
func checkPrice(price decimal.Decimal) []string {
	decimals := 0
	if exp := price.Exponent(); exp < 0 {
		decimals = int(-exp)
	}
	if decimals > priceMaxDecimals {
		return []string{fmt.Sprintf("Ensure that there are no more than %d decimal places.", priceMaxDecimals)}
	}

	whole := price.Abs().Truncate(0)
	wholeDigits := 0
	if !whole.IsZero() {
		wholeDigits = len(whole.String())
	}
	if wholeDigits > priceMaxDigits-priceMaxDecimals {
		return []string{fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", priceMaxDigits-priceMaxDecimals)}
	}
	return nil
}
