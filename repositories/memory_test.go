package repositories

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/alisoliman/recipe-app-api/errors"
	"github.com/alisoliman/recipe-app-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTag(t *testing.T, repo AttributeRepository[models.Tag], owner uint, name string) models.Tag {
	t.Helper()
	tag := models.Tag{Attribute: models.Attribute{Name: name, UserID: owner}}
	require.NoError(t, repo.Create(context.Background(), &tag))
	return tag
}

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()

	u := &models.User{Email: "ali@test.com"}
	require.NoError(t, users.Create(ctx, u))
	assert.NotZero(t, u.ID)

	err := users.Create(ctx, &models.User{Email: "ALI@test.com"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	found, err := users.FindByEmail(ctx, "ali@test.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = users.FindByID(ctx, 999)
	assert.True(t, apperrors.IsNotFound(err))

	found.Name = "Ali"
	require.NoError(t, users.Update(ctx, found))
	again, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ali", again.Name)
}

func TestMemoryAttributesOrderedAndScoped(t *testing.T) {
	ctx := context.Background()
	tags := NewMemoryStore().Tags()

	newTag(t, tags, 1, "Breakfast")
	newTag(t, tags, 1, "Vegan")
	newTag(t, tags, 2, "Fruity")
	dessert := newTag(t, tags, 1, "Dessert")

	list, err := tags.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Vegan", "Dessert", "Breakfast"}, []string{list[0].Name, list[1].Name, list[2].Name})

	owned, err := tags.FindOwned(ctx, 1, []uint{dessert.ID, 3, dessert.ID, 42})
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, dessert.ID, owned[0].ID)
}

func TestMemoryRecipeFilters(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tags := store.Tags()
	recipes := store.Recipes()

	vegan := newTag(t, tags, 1, "Vegan")
	vegetarian := newTag(t, tags, 1, "Vegetarian")

	ingredient := models.Ingredient{Attribute: models.Attribute{Name: "Feta cheese", UserID: 1}}
	require.NoError(t, store.Ingredients().Create(ctx, &ingredient))

	one := &models.Recipe{UserID: 1, Title: "Thai vegetable curry", Price: decimal.NewFromInt(5), Tags: []models.Tag{vegan}}
	two := &models.Recipe{UserID: 1, Title: "Aubergine with tahini", Price: decimal.NewFromInt(5), Tags: []models.Tag{vegetarian}, Ingredients: []models.Ingredient{ingredient}}
	three := &models.Recipe{UserID: 1, Title: "Fish and chips", Price: decimal.NewFromInt(5)}
	other := &models.Recipe{UserID: 2, Title: "Not mine", Price: decimal.NewFromInt(5), Tags: []models.Tag{vegan}}
	for _, r := range []*models.Recipe{one, two, three, other} {
		require.NoError(t, recipes.Create(ctx, r))
	}

	all, err := recipes.List(ctx, RecipeFilter{OwnerID: 1})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, three.ID, all[0].ID, "newest first")

	byTags, err := recipes.List(ctx, RecipeFilter{OwnerID: 1, TagIDs: []uint{vegan.ID, vegetarian.ID}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{one.ID, two.ID}, []uint{byTags[0].ID, byTags[1].ID})

	both, err := recipes.List(ctx, RecipeFilter{OwnerID: 1, TagIDs: []uint{vegan.ID, vegetarian.ID}, IngredientIDs: []uint{ingredient.ID}})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, two.ID, both[0].ID)

	_, err = recipes.FindOwned(ctx, 1, other.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMemoryRecipeUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tags := store.Tags()
	recipes := store.Recipes()

	tag := newTag(t, tags, 1, "Lunch")
	recipe := &models.Recipe{UserID: 1, Title: "Soup", Price: decimal.NewFromInt(3), Tags: []models.Tag{tag}}
	require.NoError(t, recipes.Create(ctx, recipe))

	recipe.Tags = nil
	recipe.Title = "Better soup"
	require.NoError(t, recipes.Update(ctx, recipe))

	got, err := recipes.FindOwned(ctx, 1, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Better soup", got.Title)
	assert.Empty(t, got.Tags)

	stranger := *recipe
	stranger.UserID = 2
	assert.True(t, apperrors.IsNotFound(recipes.Update(ctx, &stranger)))
	assert.True(t, apperrors.IsNotFound(recipes.Delete(ctx, 2, recipe.ID)))

	require.NoError(t, recipes.Delete(ctx, 1, recipe.ID))
	_, err = recipes.FindOwned(ctx, 1, recipe.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMemoryRevocationList(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	list := NewMemoryRevocationList()
	list.now = func() time.Time { return now }

	require.NoError(t, list.Revoke(ctx, "live", now.Add(time.Hour)))
	require.NoError(t, list.Revoke(ctx, "expired", now.Add(-time.Minute)))

	revoked, err := list.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = list.IsRevoked(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, err = list.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.False(t, revoked)
}
