package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studyhours-backend/internal/http/response"
	"github.com/yungbote/studyhours-backend/internal/platform/ctxutil"
)

// HeaderUserID carries the caller identity set by the upstream auth proxy.
const HeaderUserID = "X-User-ID"

// UserIdentity resolves the user id from HeaderUserID, falling back to
// fallback. Requests with neither are rejected.
func UserIdentity(fallback string) gin.HandlerFunc {
	fallback = strings.TrimSpace(fallback)
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if userID == "" {
			userID = fallback
		}
		if userID == "" {
			response.RespondError(c, http.StatusUnauthorized, "missing_user", errors.New("missing "+HeaderUserID+" header"))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(ctxutil.WithUserID(c.Request.Context(), userID))
		c.Set("user_id", userID)
		c.Next()
	}
}

func CurrentUserID(c *gin.Context) string {
	return ctxutil.UserID(c.Request.Context())
}
