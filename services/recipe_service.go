package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/alisoliman/recipe-app-api/dto"
	apperrors "github.com/alisoliman/recipe-app-api/errors"
	"github.com/alisoliman/recipe-app-api/models"
	"github.com/alisoliman/recipe-app-api/repositories"
	"github.com/alisoliman/recipe-app-api/storage"
	"github.com/alisoliman/recipe-app-api/utils"
	"github.com/shopspring/decimal"
)

const (
	// DefaultMaxUploadBytes caps image uploads when no limit is configured
	DefaultMaxUploadBytes int64 = 10 << 20

	requiredMessage = "This field is required."
	nullMessage     = "This field may not be null."
	priceMaxDigits  = 5
	pricePlaces     = 2
)

var priceLimit = decimal.New(1, priceMaxDigits-pricePlaces)

// RecipeOption customizes a RecipeService
type RecipeOption func(*RecipeService)

// WithIDGenerator sets the generator used to name uploaded images
func WithIDGenerator(gen utils.IDGenerator) RecipeOption {
	return func(s *RecipeService) { s.newID = gen }
}

// WithMaxUploadBytes sets the image upload size limit
func WithMaxUploadBytes(n int64) RecipeOption {
	return func(s *RecipeService) {
		if n > 0 {
			s.maxUpload = n
		}
	}
}

// RecipeService implements owner-scoped recipe management
type RecipeService struct {
	recipes     repositories.RecipeRepository
	tags        repositories.AttributeRepository[models.Tag]
	ingredients repositories.AttributeRepository[models.Ingredient]
	images      storage.ImageStore
	maxUpload   int64
	newID       utils.IDGenerator
}

// NewRecipeService creates a new recipe service instance
func NewRecipeService(
	recipes repositories.RecipeRepository,
	tags repositories.AttributeRepository[models.Tag],
	ingredients repositories.AttributeRepository[models.Ingredient],
	images storage.ImageStore,
	opts ...RecipeOption,
) *RecipeService {
	s := &RecipeService{
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
		images:      images,
		maxUpload:   DefaultMaxUploadBytes,
		newID:       utils.NewUUID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the recipes matching filter, newest first
func (s *RecipeService) List(ctx context.Context, filter repositories.RecipeFilter) ([]models.Recipe, error) {
	filter.TagIDs = utils.UniqueIDs(filter.TagIDs)
	filter.IngredientIDs = utils.UniqueIDs(filter.IngredientIDs)
	recipes, err := s.recipes.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list recipes failed: %w", err)
	}
	return recipes, nil
}

// Get returns the owner's recipe or a not found error
func (s *RecipeService) Get(ctx context.Context, ownerID, id uint) (*models.Recipe, error) {
	return s.recipes.FindOwned(ctx, ownerID, id)
}

// Create validates req and persists a recipe owned by ownerID
func (s *RecipeService) Create(ctx context.Context, ownerID uint, req dto.RecipeRequest) (*models.Recipe, error) {
	if err := validateRecipe(req, false); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{UserID: ownerID}
	applyRecipeFields(recipe, req, false)
	if err := s.attachRelations(ctx, recipe, req, false); err != nil {
		return nil, err
	}

	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe failed: %w", err)
	}
	return s.recipes.FindOwned(ctx, ownerID, recipe.ID)
}

// Update replaces every editable field of the recipe. Omitted optional
// fields are reset: link becomes empty, tags and ingredients are cleared.
func (s *RecipeService) Update(ctx context.Context, ownerID, id uint, req dto.RecipeRequest) (*models.Recipe, error) {
	return s.save(ctx, ownerID, id, req, false)
}

// Patch changes only the fields present in req. A provided tag or
// ingredient list replaces the current set.
func (s *RecipeService) Patch(ctx context.Context, ownerID, id uint, req dto.RecipeRequest) (*models.Recipe, error) {
	return s.save(ctx, ownerID, id, req, true)
}

func (s *RecipeService) save(ctx context.Context, ownerID, id uint, req dto.RecipeRequest, partial bool) (*models.Recipe, error) {
	recipe, err := s.recipes.FindOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := validateRecipe(req, partial); err != nil {
		return nil, err
	}

	applyRecipeFields(recipe, req, partial)
	if err := s.attachRelations(ctx, recipe, req, partial); err != nil {
		return nil, err
	}

	if err := s.recipes.Update(ctx, recipe); err != nil {
		return nil, fmt.Errorf("update recipe failed: %w", err)
	}
	return s.recipes.FindOwned(ctx, ownerID, id)
}

// Delete removes the recipe and its stored image
func (s *RecipeService) Delete(ctx context.Context, ownerID, id uint) error {
	recipe, err := s.recipes.FindOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.recipes.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.removeImage(ctx, recipe.Image)
	return nil
}

// UploadImage validates r as an image, stores it under a generated key and
// points the recipe at it. The previous image, if any, is removed.
func (s *RecipeService) UploadImage(ctx context.Context, ownerID, id uint, filename string, r io.Reader) (*models.Recipe, error) {
	recipe, err := s.recipes.FindOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxUpload+1))
	if err != nil {
		return nil, fmt.Errorf("read upload failed: %w", err)
	}
	if int64(len(data)) > s.maxUpload {
		return nil, apperrors.FieldError("image", fmt.Sprintf("Ensure the file size does not exceed %d bytes.", s.maxUpload))
	}

	info, ok := inspectImage(data)
	if !ok {
		return nil, apperrors.FieldError("image", invalidImageMessage)
	}

	ext, err := imageExtension(filename, info)
	if err != nil {
		return nil, err
	}

	key := models.RecipeImagePath(s.newID(), ext)
	if err := s.images.Save(ctx, key, bytes.NewReader(data), int64(len(data)), info.ContentType); err != nil {
		return nil, fmt.Errorf("store image failed: %w", err)
	}

	previous := recipe.Image
	recipe.Image = key
	if err := s.recipes.Update(ctx, recipe); err != nil {
		s.removeImage(ctx, key)
		return nil, fmt.Errorf("update recipe failed: %w", err)
	}
	if previous != key {
		s.removeImage(ctx, previous)
	}

	slog.Debug("stored recipe image", "recipeId", id, "key", key, "format", info.Format,
		"width", info.Width, "height", info.Height)
	return recipe, nil
}

// DeleteImage clears the recipe image and removes the stored file
func (s *RecipeService) DeleteImage(ctx context.Context, ownerID, id uint) error {
	recipe, err := s.recipes.FindOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if recipe.Image == "" {
		return nil
	}

	previous := recipe.Image
	recipe.Image = ""
	if err := s.recipes.Update(ctx, recipe); err != nil {
		return fmt.Errorf("update recipe failed: %w", err)
	}
	s.removeImage(ctx, previous)
	return nil
}

// ImageURL resolves a stored image key to its public URL
func (s *RecipeService) ImageURL(key string) string {
	return s.images.URL(key)
}

func (s *RecipeService) removeImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		slog.Warn("failed to remove recipe image", "key", key, "error", err)
	}
}

// attachRelations resolves the requested tag and ingredient ids against the
// owner's rows. On a partial update an omitted list keeps the current set.
func (s *RecipeService) attachRelations(ctx context.Context, recipe *models.Recipe, req dto.RecipeRequest, partial bool) error {
	if req.Tags != nil || !partial {
		tags, err := resolveOwned(ctx, s.tags, "tags", recipe.UserID, utils.UniqueIDs(deref(req.Tags)))
		if err != nil {
			return err
		}
		recipe.Tags = tags
	}
	if req.Ingredients != nil || !partial {
		ingredients, err := resolveOwned(ctx, s.ingredients, "ingredients", recipe.UserID, utils.UniqueIDs(deref(req.Ingredients)))
		if err != nil {
			return err
		}
		recipe.Ingredients = ingredients
	}
	return nil
}

func applyRecipeFields(recipe *models.Recipe, req dto.RecipeRequest, partial bool) {
	if req.Title != nil {
		recipe.Title = strings.TrimSpace(*req.Title)
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	switch {
	case req.Link != nil:
		recipe.Link = strings.TrimSpace(*req.Link)
	case !partial:
		recipe.Link = ""
	}
}

// validateRecipe checks the fields present in req. Unless partial, title,
// time_minutes and price are required.
func validateRecipe(req dto.RecipeRequest, partial bool) error {
	fields := apperrors.Fields{}
	// missing reports an absent or null field; absence is fine on a partial update
	missing := func(name string) {
		switch {
		case req.IsNull(name):
			fields.Add(name, nullMessage)
		case !partial:
			fields.Add(name, requiredMessage)
		}
	}

	if req.Title == nil {
		missing("title")
	} else {
		title := strings.TrimSpace(*req.Title)
		switch {
		case title == "":
			fields.Add("title", "This field may not be blank.")
		case utf8.RuneCountInString(title) > maxNameLength:
			fields.Add("title", fmt.Sprintf("Ensure this field has no more than %d characters.", maxNameLength))
		}
	}

	if req.TimeMinutes == nil {
		missing("time_minutes")
	} else if *req.TimeMinutes < 0 {
		fields.Add("time_minutes", "Ensure this value is greater than or equal to 0.")
	}

	if req.Price == nil {
		missing("price")
	} else {
		price := *req.Price
		switch {
		case !price.Equal(price.Round(pricePlaces)):
			fields.Add("price", fmt.Sprintf("Ensure that there are no more than %d decimal places.", pricePlaces))
		case price.Abs().GreaterThanOrEqual(priceLimit):
			fields.Add("price", fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", priceMaxDigits-pricePlaces))
		}
	}

	for _, name := range []string{"link", "tags", "ingredients"} {
		if req.IsNull(name) {
			fields.Add(name, nullMessage)
		}
	}

	if req.Link != nil && utf8.RuneCountInString(strings.TrimSpace(*req.Link)) > maxNameLength {
		fields.Add("link", fmt.Sprintf("Ensure this field has no more than %d characters.", maxNameLength))
	}

	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return nil
}

func deref(ids *[]uint) []uint {
	if ids == nil {
		return nil
	}
	return *ids
}
