package v1

import (
	"net/http"

	"github.com/alisoliman/recipe-app-api/dto"
	"github.com/alisoliman/recipe-app-api/middleware"
	"github.com/alisoliman/recipe-app-api/services"
	"github.com/alisoliman/recipe-app-api/utils"
	"github.com/gin-gonic/gin"
)

// AdminController handles staff-only endpoints
type AdminController struct {
	userService *services.UserService
}

// NewAdminController creates a new admin controller
func NewAdminController(userService *services.UserService) *AdminController {
	return &AdminController{userService: userService}
}

// RegisterRoutes registers admin routes
// The router group must already require authentication
func (c *AdminController) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/users", c.ListUsers)
	}
}

// ListUsers returns every account
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.userService.ListUsers(ctx.Request.Context())
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAdminUserResponses(users))
}
