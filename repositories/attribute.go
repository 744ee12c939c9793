package repositories

import (
	"context"

	"github.com/alisoliman/recipe-app-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type attributeRepository[T any] struct {
	db *gorm.DB
}

// NewAttributeRepository creates a gorm backed repository for T.
// Use NewAttributeRepository[models.Tag] or NewAttributeRepository[models.Ingredient].
func NewAttributeRepository[T any, PT models.AttributeModel[T]](db *gorm.DB) AttributeRepository[T] {
	return &attributeRepository[T]{db: db}
}

func (r *attributeRepository[T]) ListByOwner(ctx context.Context, ownerID uint) ([]T, error) {
	items := make([]T, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("name DESC").
		Order("id DESC").
		Find(&items).Error
	return items, err
}

func (r *attributeRepository[T]) Create(ctx context.Context, item *T) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error, "attribute")
}

func (r *attributeRepository[T]) FindOwned(ctx context.Context, ownerID uint, ids []uint) ([]T, error) {
	items := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", ownerID, ids).
		Order("id").
		Find(&items).Error
	return items, err
}
