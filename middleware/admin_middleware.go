package middleware

import (
	apperrors "github.com/alisoliman/recipe-app-api/errors"
	"github.com/alisoliman/recipe-app-api/utils"
	"github.com/gin-gonic/gin"
)

// AdminMiddleware creates a middleware that ensures the user is staff
// This middleware should be used after AuthMiddleware
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.RespondError(c, apperrors.New(apperrors.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		if !user.IsStaff {
			utils.RespondError(c, apperrors.New(apperrors.ErrCodeForbidden, "Staff privileges required"))
			return
		}

		c.Next()
	}
}
