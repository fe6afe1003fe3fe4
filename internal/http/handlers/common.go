package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studyhours-backend/internal/http/middleware"
	"github.com/yungbote/studyhours-backend/internal/http/response"
	apperr "github.com/yungbote/studyhours-backend/internal/pkg/errors"
	"github.com/yungbote/studyhours-backend/internal/platform/apierr"
)

// reply writes payload with status. A persist failure still carries the
// payload, since the change was applied in memory, but with a 503 and the
// error attached.
func reply(c *gin.Context, status int, payload gin.H, err error) {
	switch {
	case err == nil:
		c.JSON(status, payload)
	case errors.Is(err, apperr.ErrPersist):
		ae := apierr.FromError(err)
		_ = c.Error(err)
		if payload == nil {
			payload = gin.H{}
		}
		payload["error"] = response.APIError{Message: err.Error(), Code: ae.Code}
		c.JSON(ae.Status, payload)
	default:
		response.RespondErr(c, err)
	}
}

func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}

func notFound(c *gin.Context, what string) {
	response.RespondError(c, http.StatusNotFound, "not_found", errors.New(what+" not found"))
}

func userID(c *gin.Context) string {
	return middleware.CurrentUserID(c)
}
