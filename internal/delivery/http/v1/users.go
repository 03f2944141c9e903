package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/svara-ai/task-manager-api/internal/models"
	"github.com/svara-ai/task-manager-api/internal/services"
)

// userResponse is the public projection: the password hash and
// timestamps are never exposed.
type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

func (h *handlerImpl) HandleGetAllUsers(c *gin.Context) {
	result, err := h.users.List(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list users")
		abortServerError(c, err)
		return
	}

	users := make([]userResponse, len(result))
	for i, user := range result {
		users[i] = newUserResponse(user)
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *handlerImpl) HandleGetUserByID(c *gin.Context) {
	user, err := h.users.GetByID(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			abort(c, newNotFoundError("User not found"))
			return
		}
		h.logger.Error().
			Err(err).
			Msg("failed to get user")
		abortServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}
