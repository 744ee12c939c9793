package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/alisoliman/recipe-app-api/models"
)

// ErrDuplicateKey is returned when a unique constraint rejects a write
var ErrDuplicateKey = errors.New("record already exists")

// UserRepository persists accounts
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]models.User, error)
}

// AttributeRepository persists user-owned attributes (tags, ingredients)
type AttributeRepository[T any] interface {
	// ListByOwner returns the owner's rows ordered by name descending
	ListByOwner(ctx context.Context, ownerID uint) ([]T, error)
	Create(ctx context.Context, item *T) error
	// FindOwned returns the subset of ids that exist and belong to ownerID
	FindOwned(ctx context.Context, ownerID uint, ids []uint) ([]T, error)
}

// RecipeFilter narrows a recipe listing. Within TagIDs and within
// IngredientIDs any match is enough; when both are set a recipe must match both.
type RecipeFilter struct {
	OwnerID       uint
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeRepository persists recipes and their tag/ingredient links
type RecipeRepository interface {
	// List returns matching recipes, newest id first, relations loaded
	List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error)
	// FindOwned returns the recipe only when it belongs to ownerID
	FindOwned(ctx context.Context, ownerID, id uint) (*models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	// Update saves columns and replaces both relation sets
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, ownerID, id uint) error
}

// RevocationList records token ids that must no longer authenticate
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
