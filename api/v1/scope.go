package v1

import (
	apperrors "github.com/alisoliman/recipe-app-api/errors"
	"github.com/alisoliman/recipe-app-api/middleware"
	"github.com/alisoliman/recipe-app-api/utils"
	"github.com/gin-gonic/gin"
)

// ownerID returns the authenticated caller every query is scoped to.
// It writes a 401 and returns false when there is none.
func ownerID(ctx *gin.Context) (uint, bool) {
	id, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.RespondError(ctx, apperrors.New(apperrors.ErrCodeUnauthorized, "Authentication credentials were not provided."))
		return 0, false
	}
	return id, true
}

// pathID parses the :id route parameter. Ids that cannot exist are reported
// as not found.
func pathID(ctx *gin.Context, resource string) (uint, bool) {
	id, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		utils.RespondError(ctx, apperrors.NotFound(resource))
		return 0, false
	}
	return id, true
}
