package v1

import (
	"github.com/alisoliman/recipe-app-api/middleware"
	"github.com/alisoliman/recipe-app-api/models"
	"github.com/alisoliman/recipe-app-api/services"
	"github.com/gin-gonic/gin"
)

// Dependencies are the services the v1 controllers are built from
type Dependencies struct {
	Users          *services.UserService
	Tokens         *services.TokenService
	Tags           *services.AttributeService[models.Tag, *models.Tag]
	Ingredients    *services.AttributeService[models.Ingredient, *models.Ingredient]
	Recipes        *services.RecipeService
	MaxUploadBytes int64
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, deps Dependencies) {
	useJSONFieldNames()
	requireAuth := middleware.AuthMiddleware(deps.Tokens, deps.Users)

	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Account endpoints; register and token are public
	authController := NewAuthController(deps.Users, deps.Tokens)
	authController.RegisterRoutes(router, requireAuth)

	authRouter := router.Group("")
	authRouter.Use(requireAuth)

	NewAttributeController("/tags", deps.Tags).RegisterRoutes(authRouter)
	NewAttributeController("/ingredients", deps.Ingredients).RegisterRoutes(authRouter)

	recipeController := NewRecipeController(deps.Recipes, deps.MaxUploadBytes)
	recipeController.RegisterRoutes(authRouter)

	// Admin endpoints - protected by AdminMiddleware
	adminController := NewAdminController(deps.Users)
	adminController.RegisterRoutes(authRouter)
}
