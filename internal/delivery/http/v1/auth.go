package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/svara-ai/task-manager-api/internal/services"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

type authUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type authResponse struct {
	Token string           `json:"token"`
	User  authUserResponse `json:"user"`
}

func newAuthResponse(result *services.AuthResult) authResponse {
	return authResponse{
		Token: result.Token,
		User: authUserResponse{
			ID:    result.User.ID,
			Name:  result.User.Name,
			Email: result.User.Email,
		},
	}
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	var req registerRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}
	h.logger.Info().
		Str("email", req.Email).
		Msg("register request")

	result, err := h.auth.Register(c, services.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			abort(c, newBadRequestError("User already exists"))
			return
		}
		h.logger.Error().
			Err(err).
			Msg("failed to register user")
		abortServerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newAuthResponse(result))
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	result, err := h.auth.Login(c, services.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		// Unknown email and wrong password produce the same response
		// so the endpoint cannot be used for account enumeration.
		if errors.Is(err, services.ErrInvalidCredentials) {
			abort(c, newBadRequestError("Invalid credentials"))
			return
		}
		h.logger.Error().
			Err(err).
			Msg("failed to login")
		abortServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAuthResponse(result))
}

// HandleLogout is a stateless acknowledgement: tokens are not revoked
// server-side.
func (h *handlerImpl) HandleLogout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
