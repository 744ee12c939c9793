package services

import (
	"context"
	"strings"
	"testing"

	"github.com/alisoliman/recipe-app-api/models"
	"github.com/alisoliman/recipe-app-api/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeServiceCreateAndList(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	tags := NewAttributeService[models.Tag](store.Tags())

	_, err := tags.Create(ctx, 1, "Dessert")
	require.NoError(t, err)
	_, err = tags.Create(ctx, 1, "Vegan")
	require.NoError(t, err)
	_, err = tags.Create(ctx, 2, "Fruity")
	require.NoError(t, err)

	list, err := tags.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Vegan", list[0].Name)
	assert.Equal(t, "Dessert", list[1].Name)
	for _, tag := range list {
		assert.Equal(t, uint(1), tag.UserID)
	}
}

func TestAttributeServiceCreateInvalidName(t *testing.T) {
	ingredients := NewAttributeService[models.Ingredient](repositories.NewMemoryStore().Ingredients())

	for _, name := range []string{"", "   ", strings.Repeat("x", 256)} {
		_, err := ingredients.Create(context.Background(), 1, name)
		assert.Contains(t, fieldErrors(t, err), "name")
	}
}

func TestAttributeServiceTrimsName(t *testing.T) {
	ingredients := NewAttributeService[models.Ingredient](repositories.NewMemoryStore().Ingredients())

	item, err := ingredients.Create(context.Background(), 1, "  Cabbage ")
	require.NoError(t, err)
	assert.Equal(t, "Cabbage", item.Name)
	assert.Equal(t, "Cabbage", item.String())
}
