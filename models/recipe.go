package models

import (
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RecipeImageDir is the storage prefix for uploaded recipe images
const RecipeImageDir = "uploads/recipe"

// Recipe is a user-owned dish referencing tags and ingredients
type Recipe struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"not null;index"`
	Title       string          `gorm:"size:255;not null"`
	TimeMinutes int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	Link        string          `gorm:"size:255"`
	Image       string          `gorm:"size:255"` // storage key, empty when unset
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relations
	User        User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
}

func (r Recipe) String() string {
	return r.Title
}

// TagIDs returns the ids of the attached tags in order
func (r Recipe) TagIDs() []uint {
	ids := make([]uint, 0, len(r.Tags))
	for _, t := range r.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// IngredientIDs returns the ids of the attached ingredients in order
func (r Recipe) IngredientIDs() []uint {
	ids := make([]uint, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ids = append(ids, i.ID)
	}
	return ids
}

// RecipeImagePath builds the storage key for an uploaded image:
// uploads/recipe/<id>.<ext>. An empty ext yields the bare id.
func RecipeImagePath(id, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return path.Join(RecipeImageDir, id)
	}
	return path.Join(RecipeImageDir, id+"."+ext)
}
