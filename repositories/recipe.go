package repositories

import (
	"context"

	apperrors "github.com/alisoliman/recipe-app-api/errors"
	"github.com/alisoliman/recipe-app-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Join tables created by the many2many tags on models.Recipe
const (
	recipeTagsTable        = "recipe_tags"
	recipeIngredientsTable = "recipe_ingredients"
)

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a gorm backed recipe repository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func preloadRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("ingredients.id") })
}

// List retrieves the owner's recipes matching filter
func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)

	db := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("recipes.user_id = ?", filter.OwnerID)

	// Subqueries keep the result distinct when a recipe matches several ids
	if len(filter.TagIDs) > 0 {
		db = db.Where("recipes.id IN (?)",
			r.db.Table(recipeTagsTable).Select("recipe_id").Where("tag_id IN ?", filter.TagIDs))
	}
	if len(filter.IngredientIDs) > 0 {
		db = db.Where("recipes.id IN (?)",
			r.db.Table(recipeIngredientsTable).Select("recipe_id").Where("ingredient_id IN ?", filter.IngredientIDs))
	}

	err := preloadRelations(db).Order("recipes.id DESC").Find(&recipes).Error
	return recipes, err
}

// FindOwned retrieves a recipe by id scoped to its owner
func (r *recipeRepository) FindOwned(ctx context.Context, ownerID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := preloadRelations(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&recipe).Error
	if err != nil {
		return nil, translate(err, "recipe")
	}
	return &recipe, nil
}

// Create inserts the recipe row and its links in one transaction.
// Linked tags and ingredients must already exist.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return replaceLinks(tx, recipe)
	})
}

// Update saves the editable columns and replaces both link sets
func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Recipe{}).
			Where("id = ? AND user_id = ?", recipe.ID, recipe.UserID).
			Updates(map[string]interface{}{
				"title":        recipe.Title,
				"time_minutes": recipe.TimeMinutes,
				"price":        recipe.Price,
				"link":         recipe.Link,
				"image":        recipe.Image,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("recipe")
		}
		return replaceLinks(tx, recipe)
	})
}

// Delete removes the recipe and its links
func (r *recipeRepository) Delete(ctx context.Context, ownerID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Recipe{}).Where("id = ? AND user_id = ?", id, ownerID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.NotFound("recipe")
		}
		if err := tx.Exec("DELETE FROM "+recipeTagsTable+" WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM "+recipeIngredientsTable+" WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

// replaceLinks rewrites the join rows of recipe from its Tags and Ingredients
func replaceLinks(tx *gorm.DB, recipe *models.Recipe) error {
	if err := writeLinks(tx, recipeTagsTable, "tag_id", recipe.ID, recipe.TagIDs()); err != nil {
		return err
	}
	return writeLinks(tx, recipeIngredientsTable, "ingredient_id", recipe.ID, recipe.IngredientIDs())
}

func writeLinks(tx *gorm.DB, table, column string, recipeID uint, ids []uint) error {
	if err := tx.Exec("DELETE FROM "+table+" WHERE recipe_id = ?", recipeID).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, map[string]interface{}{"recipe_id": recipeID, column: id})
	}
	return tx.Table(table).Create(&rows).Error
}
