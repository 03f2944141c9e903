package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/svara-ai/task-manager-api/internal/services"
)

type Handler interface {
	HandleRegister(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleCreateProject(c *gin.Context)
	HandleGetProjects(c *gin.Context)
	HandleUpdateProject(c *gin.Context)
	HandleDeleteProject(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasksByProject(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleAssignTask(c *gin.Context)
	HandleGetTasksByAssignee(c *gin.Context)

	HandleGetAllUsers(c *gin.Context)
	HandleGetUserByID(c *gin.Context)
}

type handlerImpl struct {
	logger   zerolog.Logger
	auth     services.AuthService
	projects services.ProjectService
	tasks    services.TaskService
	users    services.UserService
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	projectService services.ProjectService,
	taskService services.TaskService,
	userService services.UserService,
) Handler {
	return &handlerImpl{
		logger:   logger,
		auth:     authService,
		projects: projectService,
		tasks:    taskService,
		users:    userService,
	}
}
