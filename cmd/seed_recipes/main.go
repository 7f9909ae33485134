package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kilo-recipes/recipe-api/backend/config"
	"github.com/kilo-recipes/recipe-api/backend/internal/database"
	"github.com/kilo-recipes/recipe-api/backend/internal/logging"
	"github.com/kilo-recipes/recipe-api/backend/internal/models"
	"github.com/kilo-recipes/recipe-api/backend/internal/service"
)

type sampleRecipe struct {
	title       string
	description string
	minutes     int
	price       string
	tags        []string
	ingredients []string
}

var samples = []sampleRecipe{
	{"Thai Vegetable Curry", "Coconut curry with seasonal vegetables.", 35, "8.50", []string{"Vegan", "Thai", "Dinner"}, []string{"Coconut milk", "Red curry paste", "Aubergine"}},
	{"Aubergine with Tahini", "Roasted aubergine, tahini and pomegranate.", 45, "6.00", []string{"Vegetarian", "Dinner"}, []string{"Aubergine", "Tahini", "Pomegranate"}},
	{"Pongal", "South Indian rice and lentil porridge.", 30, "3.25", []string{"Vegetarian", "Breakfast"}, []string{"Rice", "Moong dal", "Ghee", "Salt"}},
	{"Avocado Lime Cheesecake", "No-bake cheesecake.", 60, "12.00", []string{"Vegan", "Dessert"}, []string{"Avocado", "Lime", "Cashews"}},
	{"Eggs Benedict", "Poached eggs on muffins with hollandaise.", 25, "7.40", []string{"Breakfast"}, []string{"Eggs", "English muffin", "Butter", "Salt"}},
}

func main() {
	email := flag.String("email", "", "Owner of the sample recipes")
	flag.Parse()
	if *email == "" {
		log.Fatal("-email is required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, "console")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()

	var owner models.User
	if err := db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(*email)).First(&owner).Error; err != nil {
		logger.Fatal("owner not found", zap.String("email", *email), zap.Error(err))
	}

	recipes := service.NewRecipeService(db.DB)
	for _, s := range samples {
		price := decimal.RequireFromString(s.price)
		tags, ingredients := s.tags, s.ingredients

		recipe, err := recipes.CreateRecipe(ctx, owner.ID, service.RecipeInput{
			Title:       &s.title,
			Description: &s.description,
			TimeMinutes: &s.minutes,
			Price:       &price,
			Tags:        &tags,
			Ingredients: &ingredients,
		})
		if err != nil {
			var verr *service.ValidationError
			if errors.As(err, &verr) {
				logger.Error("invalid sample recipe", zap.String("title", s.title), zap.Any("fields", verr.Fields))
				continue
			}
			logger.Fatal("failed to create recipe", zap.String("title", s.title), zap.Error(err))
		}
		logger.Info("created recipe", zap.Uint("id", recipe.ID), zap.String("title", recipe.Title))
	}
}
