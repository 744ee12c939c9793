package v1

import (
	"net/http"

	"github.com/alisoliman/recipe-app-api/dto"
	apperrors "github.com/alisoliman/recipe-app-api/errors"
	"github.com/alisoliman/recipe-app-api/middleware"
	"github.com/alisoliman/recipe-app-api/services"
	"github.com/alisoliman/recipe-app-api/utils"
	"github.com/gin-gonic/gin"
)

// AuthController handles account and token endpoints
type AuthController struct {
	userService  *services.UserService
	tokenService *services.TokenService
}

// NewAuthController creates a new auth controller
func NewAuthController(userService *services.UserService, tokenService *services.TokenService) *AuthController {
	return &AuthController{userService: userService, tokenService: tokenService}
}

// RegisterRoutes registers user routes; requireAuth guards the profile endpoints
func (c *AuthController) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	user := router.Group("/user")
	{
		user.POST("/create", c.Register)
		user.POST("/token", c.Login)
		user.GET("/me", requireAuth, c.GetCurrentUser)
		user.PATCH("/me", requireAuth, c.UpdateCurrentUser)
		user.POST("/logout", requireAuth, c.Logout)
	}
}

// Register handles user registration
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := bindJSON(ctx, &req); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	user, err := c.userService.Register(ctx.Request.Context(), req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Login handles user authentication
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := bindJSON(ctx, &req); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	user, err := c.userService.Authenticate(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	token, expiresAt, err := c.tokenService.Issue(user)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{Token: token, ExpiresAt: expiresAt})
}

// GetCurrentUser returns the currently authenticated user's profile
func (c *AuthController) GetCurrentUser(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.RespondError(ctx, apperrors.New(apperrors.ErrCodeUnauthorized, "User not authenticated"))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UpdateCurrentUser changes the name or password of the authenticated user
func (c *AuthController) UpdateCurrentUser(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.RespondError(ctx, apperrors.New(apperrors.ErrCodeUnauthorized, "User not authenticated"))
		return
	}

	var req dto.UpdateProfileRequest
	if err := bindOptionalJSON(ctx, &req); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	updated, err := c.userService.UpdateProfile(ctx.Request.Context(), user, req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewUserResponse(updated))
}

// Logout revokes the token presented with the request
func (c *AuthController) Logout(ctx *gin.Context) {
	claims, ok := middleware.CurrentClaims(ctx)
	if !ok {
		utils.RespondError(ctx, apperrors.New(apperrors.ErrCodeUnauthorized, "User not authenticated"))
		return
	}

	if err := c.tokenService.Revoke(ctx.Request.Context(), claims); err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
