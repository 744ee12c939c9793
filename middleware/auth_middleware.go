package middleware

import (
	"context"
	"strings"

	"github.com/alisoliman/recipe-app-api/dto"
	apperrors "github.com/alisoliman/recipe-app-api/errors"
	"github.com/alisoliman/recipe-app-api/models"
	"github.com/alisoliman/recipe-app-api/utils"
	"github.com/gin-gonic/gin"
)

// TokenValidator checks an access token and returns its claims
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*dto.TokenClaims, error)
}

// UserLookup loads the account a token was issued for
type UserLookup interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware authenticates requests carrying
// "Authorization: Bearer <token>" or "Authorization: Token <token>"
func AuthMiddleware(tokens TokenValidator, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			utils.RespondError(c, apperrors.New(apperrors.ErrCodeUnauthorized, "Authentication credentials were not provided."))
			return
		}

		claims, err := tokens.Validate(c.Request.Context(), tokenString)
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		user, err := users.GetUser(c.Request.Context(), claims.UserID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				utils.RespondError(c, apperrors.New(apperrors.ErrCodeUnauthorized, "User not found"))
				return
			}
			utils.RespondError(c, err)
			return
		}
		if !user.IsActive {
			utils.RespondError(c, apperrors.New(apperrors.ErrCodeUnauthorized, "User inactive or deleted."))
			return
		}

		c.Set(utils.ContextKeyUserID, user.ID)
		c.Set(utils.ContextKeyUser, user)
		c.Set(utils.ContextKeyClaims, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	if !strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentUser returns the account set by AuthMiddleware
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(utils.ContextKeyUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// CurrentUserID returns the id of the account set by AuthMiddleware
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(utils.ContextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// CurrentClaims returns the token claims set by AuthMiddleware
func CurrentClaims(c *gin.Context) (*dto.TokenClaims, bool) {
	v, ok := c.Get(utils.ContextKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*dto.TokenClaims)
	return claims, ok
}
