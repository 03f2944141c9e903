package v1

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDCtxKey = "user_id"

// HandleAuthMiddleware verifies the bearer token on protected routes
// and stores the authenticated user ID in the request context.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		h.logger.Warn().Msg("authorization header required")
		abort(c, newUnauthorizedError("Authorization required"))
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		h.logger.Warn().Msg("invalid authorization header")
		abort(c, newUnauthorizedError("Invalid authorization header"))
		return
	}

	userID, err := h.auth.ParseToken(parts[1])
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to parse token")
		abort(c, newUnauthorizedError("Invalid token"))
		return
	}

	c.Set(userIDCtxKey, userID)
	c.Next()
}
