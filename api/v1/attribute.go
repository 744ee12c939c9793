package v1

import (
	"net/http"

	"github.com/alisoliman/recipe-app-api/dto"
	"github.com/alisoliman/recipe-app-api/models"
	"github.com/alisoliman/recipe-app-api/services"
	"github.com/alisoliman/recipe-app-api/utils"
	"github.com/gin-gonic/gin"
)

// AttributeController serves list and create for tags or ingredients
type AttributeController[T any, PT models.AttributeModel[T]] struct {
	path    string
	service *services.AttributeService[T, PT]
}

// NewAttributeController creates a controller mounted at path
func NewAttributeController[T any, PT models.AttributeModel[T]](path string, service *services.AttributeService[T, PT]) *AttributeController[T, PT] {
	return &AttributeController[T, PT]{path: path, service: service}
}

// RegisterRoutes registers the attribute routes
func (c *AttributeController[T, PT]) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group(c.path)
	{
		group.GET("", c.List)
		group.POST("", c.Create)
	}
}

// List returns the caller's rows ordered by name descending
func (c *AttributeController[T, PT]) List(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}

	items, err := c.service.List(ctx.Request.Context(), owner)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAttributeResponses[T, PT](items))
}

// Create persists a new row owned by the caller
func (c *AttributeController[T, PT]) Create(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}

	var req dto.AttributeRequest
	if err := bindJSON(ctx, &req); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	item, err := c.service.Create(ctx.Request.Context(), owner, req.Name)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAttributeResponse[T, PT](item))
}
