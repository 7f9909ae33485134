package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe belongs to one user; its tags and ingredients share that owner.
type Recipe struct {
	ID          uint `gorm:"primarykey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      uint            `gorm:"not null;index"`
	Title       string          `gorm:"size:255;not null"`
	Description string          `gorm:"type:text;not null;default:''"`
	TimeMinutes int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	Link        string          `gorm:"size:255;not null;default:''"`
	Image       string          `gorm:"size:255"`
	Tags        []Tag           `gorm:"many2many:recipe_tags;"`
	Ingredients []Ingredient    `gorm:"many2many:recipe_ingredients;"`
}

func (r Recipe) String() string { return r.Title }

// Tag is a user-scoped label; names are unique per owner.
type Tag struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UserID    uint   `gorm:"not null;uniqueIndex:idx_tags_user_name"`
	Name      string `gorm:"size:255;not null;uniqueIndex:idx_tags_user_name"`
}

func (t Tag) String() string { return t.Name }

// Ingredient is a user-scoped ingredient; names are unique per owner.
type Ingredient struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UserID    uint   `gorm:"not null;uniqueIndex:idx_ingredients_user_name"`
	Name      string `gorm:"size:255;not null;uniqueIndex:idx_ingredients_user_name"`
}

func (i Ingredient) String() string { return i.Name }
