package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/alisoliman/recipe-app-api/dto"
	apperrors "github.com/alisoliman/recipe-app-api/errors"
	"github.com/alisoliman/recipe-app-api/models"
	"github.com/alisoliman/recipe-app-api/repositories"
	"github.com/alisoliman/recipe-app-api/services"
	"github.com/alisoliman/recipe-app-api/utils"
	"github.com/gin-gonic/gin"
)

// multipartOverhead is the room left for multipart headers above the image size limit
const multipartOverhead = 1 << 20

// RecipeController handles recipe-related API endpoints
type RecipeController struct {
	recipeService  *services.RecipeService
	maxUploadBytes int64
}

// NewRecipeController creates a new recipe controller
func NewRecipeController(recipeService *services.RecipeService, maxUploadBytes int64) *RecipeController {
	if maxUploadBytes <= 0 {
		maxUploadBytes = services.DefaultMaxUploadBytes
	}
	return &RecipeController{recipeService: recipeService, maxUploadBytes: maxUploadBytes}
}

// RegisterRoutes registers recipe routes
func (c *RecipeController) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", c.ListRecipes)
		recipes.POST("", c.CreateRecipe)
		recipes.GET("/:id", c.GetRecipe)
		recipes.PUT("/:id", c.UpdateRecipe)
		recipes.PATCH("/:id", c.PatchRecipe)
		recipes.DELETE("/:id", c.DeleteRecipe)
		recipes.POST("/:id/image", c.UploadImage)
		recipes.DELETE("/:id/image", c.DeleteImage)
	}
}

// ListRecipes returns the caller's recipes, optionally filtered by
// comma separated tag and ingredient ids
func (c *RecipeController) ListRecipes(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}

	filter := repositories.RecipeFilter{OwnerID: owner}
	fields := apperrors.Fields{}
	var err error
	if filter.TagIDs, err = utils.ParseIDList(ctx.Query("tags")); err != nil {
		fields.Add("tags", fmt.Sprintf("Enter a comma separated list of ids: %v.", err))
	}
	if filter.IngredientIDs, err = utils.ParseIDList(ctx.Query("ingredients")); err != nil {
		fields.Add("ingredients", fmt.Sprintf("Enter a comma separated list of ids: %v.", err))
	}
	if len(fields) > 0 {
		utils.RespondError(ctx, apperrors.Validation(fields))
		return
	}

	recipes, err := c.recipeService.List(ctx.Request.Context(), filter)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewRecipeSummaries(recipes, c.recipeService.ImageURL))
}

// CreateRecipe creates a recipe owned by the caller
func (c *RecipeController) CreateRecipe(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}

	var req dto.RecipeRequest
	if err := bindJSON(ctx, &req); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	recipe, err := c.recipeService.Create(ctx.Request.Context(), owner, req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewRecipeSummary(recipe, c.recipeService.ImageURL))
}

// GetRecipe returns one recipe with nested tags and ingredients
func (c *RecipeController) GetRecipe(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "recipe")
	if !ok {
		return
	}

	recipe, err := c.recipeService.Get(ctx.Request.Context(), owner, id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewRecipeDetail(recipe, c.recipeService.ImageURL))
}

// UpdateRecipe replaces a recipe
func (c *RecipeController) UpdateRecipe(ctx *gin.Context) {
	c.save(ctx, c.recipeService.Update, bindJSON)
}

// PatchRecipe updates the provided fields of a recipe
func (c *RecipeController) PatchRecipe(ctx *gin.Context) {
	c.save(ctx, c.recipeService.Patch, bindOptionalJSON)
}

type recipeWriter func(ctx context.Context, ownerID, id uint, req dto.RecipeRequest) (*models.Recipe, error)

func (c *RecipeController) save(ctx *gin.Context, write recipeWriter, bind func(*gin.Context, interface{}) error) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "recipe")
	if !ok {
		return
	}

	var req dto.RecipeRequest
	if err := bind(ctx, &req); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	recipe, err := write(ctx.Request.Context(), owner, id, req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewRecipeSummary(recipe, c.recipeService.ImageURL))
}

// DeleteRecipe deletes a recipe and its image
func (c *RecipeController) DeleteRecipe(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "recipe")
	if !ok {
		return
	}

	if err := c.recipeService.Delete(ctx.Request.Context(), owner, id); err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// UploadImage stores the multipart "image" file for a recipe
func (c *RecipeController) UploadImage(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "recipe")
	if !ok {
		return
	}

	// Confirm the recipe is visible before reading the body
	if _, err := c.recipeService.Get(ctx.Request.Context(), owner, id); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxUploadBytes+multipartOverhead)
	header, err := ctx.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondError(ctx, apperrors.FieldError("image",
				fmt.Sprintf("Ensure the file size does not exceed %d bytes.", c.maxUploadBytes)))
			return
		}
		utils.RespondError(ctx, apperrors.FieldError("image", "No file was submitted."))
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.RespondError(ctx, fmt.Errorf("open upload failed: %w", err))
		return
	}
	defer file.Close()

	recipe, err := c.recipeService.UploadImage(ctx.Request.Context(), owner, id, header.Filename, file)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewImageResponse(recipe, c.recipeService.ImageURL))
}

// DeleteImage removes the image of a recipe
func (c *RecipeController) DeleteImage(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "recipe")
	if !ok {
		return
	}

	if err := c.recipeService.DeleteImage(ctx.Request.Context(), owner, id); err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
