package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "github.com/alisoliman/recipe-app-api/errors"
	"github.com/alisoliman/recipe-app-api/models"
	"github.com/alisoliman/recipe-app-api/repositories"
)

const maxNameLength = 255

// AttributeService lists and creates the caller's tags or ingredients
type AttributeService[T any, PT models.AttributeModel[T]] struct {
	repo repositories.AttributeRepository[T]
}

// NewAttributeService creates a service over repo, e.g. NewAttributeService[models.Tag](tags)
func NewAttributeService[T any, PT models.AttributeModel[T]](repo repositories.AttributeRepository[T]) *AttributeService[T, PT] {
	return &AttributeService[T, PT]{repo: repo}
}

// List returns the owner's rows ordered by name descending
func (s *AttributeService[T, PT]) List(ctx context.Context, ownerID uint) ([]T, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list failed: %w", err)
	}
	return items, nil
}

// Create persists a new row named name owned by ownerID
func (s *AttributeService[T, PT]) Create(ctx context.Context, ownerID uint, name string) (*T, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.FieldError("name", "This field may not be blank.")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, apperrors.FieldError("name", fmt.Sprintf("Ensure this field has no more than %d characters.", maxNameLength))
	}

	item := new(T)
	base := PT(item).Base()
	base.Name = name
	base.UserID = ownerID

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create failed: %w", err)
	}
	return item, nil
}

// resolveOwned loads ids from repo and fails with a field error naming the
// first id that does not exist or is not owned by ownerID
func resolveOwned[T any, PT models.AttributeModel[T]](ctx context.Context, repo repositories.AttributeRepository[T], field string, ownerID uint, ids []uint) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}

	found, err := repo.FindOwned(ctx, ownerID, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup %s failed: %w", field, err)
	}

	known := make(map[uint]struct{}, len(found))
	for i := range found {
		known[PT(&found[i]).Base().ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, apperrors.FieldError(field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
		}
	}
	return found, nil
}
