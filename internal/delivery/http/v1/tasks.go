package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/svara-ai/task-manager-api/internal/services"
)

type taskAssigneeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type taskResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      string                `json:"status"`
	Priority    string                `json:"priority"`
	Deadline    time.Time             `json:"deadline"`
	ProjectID   string                `json:"projectId"`
	ProjectName string                `json:"projectName,omitempty"`
	Assignee    *taskAssigneeResponse `json:"assignee"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

func newTaskResponse(detail *services.TaskDetail) taskResponse {
	resp := taskResponse{
		ID:          detail.Task.ID,
		Title:       detail.Task.Title,
		Description: detail.Task.Description,
		Status:      detail.Task.Status,
		Priority:    detail.Task.Priority,
		Deadline:    detail.Task.Deadline,
		ProjectID:   detail.Task.ProjectID,
		ProjectName: detail.ProjectName,
		CreatedAt:   detail.Task.CreatedAt,
		UpdatedAt:   detail.Task.UpdatedAt,
	}
	if detail.Assignee != nil {
		resp.Assignee = &taskAssigneeResponse{
			ID:    detail.Assignee.ID,
			Name:  detail.Assignee.Name,
			Email: detail.Assignee.Email,
		}
	}
	return resp
}

type taskPaginationResponse struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalTasks  int64 `json:"totalTasks"`
}

func newTaskPageResponse(result *services.TaskPage) gin.H {
	tasks := make([]taskResponse, len(result.Tasks))
	for i, detail := range result.Tasks {
		tasks[i] = newTaskResponse(detail)
	}
	return gin.H{
		"tasks": tasks,
		"pagination": taskPaginationResponse{
			CurrentPage: result.Pagination.CurrentPage,
			TotalPages:  result.Pagination.TotalPages,
			TotalTasks:  result.Pagination.Total,
		},
	}
}

type createTaskRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description *string   `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	Deadline    time.Time `json:"deadline" binding:"required"`
	ProjectID   string    `json:"projectId" binding:"required"`
	Assignee    *string   `json:"assignee,omitempty"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	detail, err := h.tasks.Create(c, services.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
		ProjectID:   req.ProjectID,
		Assignee:    req.Assignee,
	})
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(detail))
}

func (h *handlerImpl) HandleGetTasksByProject(c *gin.Context) {
	filter, ok := h.parseTaskFilter(c)
	if !ok {
		return
	}
	page, limit := parsePageQuery(c)

	result, err := h.tasks.ListByProject(c, services.ListTasksByProjectParams{
		ProjectID: c.Param("projectId"),
		Filter:    filter,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks by project")
		abortServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskPageResponse(result))
}

type updateTaskRequest struct {
	Title       *string    `json:"title,omitempty" binding:"omitempty,max=255"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	ProjectID   *string    `json:"projectId,omitempty"`
	Assignee    *string    `json:"assignee,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	detail, err := h.tasks.Update(c, services.UpdateTaskParams{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
		ProjectID:   req.ProjectID,
		Assignee:    req.Assignee,
	})
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(detail))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	err := h.tasks.Delete(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError("Task not found"))
			return
		}
		h.logger.Error().
			Err(err).
			Msg("failed to delete task")
		abortServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

type assignTaskRequest struct {
	Assignee string `json:"assignee" binding:"required"`
}

func (h *handlerImpl) HandleAssignTask(c *gin.Context) {
	var req assignTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	detail, err := h.tasks.Assign(c, c.Param("id"), req.Assignee)
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(detail))
}

func (h *handlerImpl) HandleGetTasksByAssignee(c *gin.Context) {
	page, limit := parsePageQuery(c)

	result, err := h.tasks.ListByAssignee(c, services.ListTasksByAssigneeParams{
		AssigneeID: c.Param("assigneeId"),
		Filter: services.TaskFilter{
			Status:   c.Query("status"),
			Priority: c.Query("priority"),
		},
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks by assignee")
		abortServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskPageResponse(result))
}

// parseTaskFilter reads the by-project filter parameters, including
// the optional deadline range bounds.
func (h *handlerImpl) parseTaskFilter(c *gin.Context) (services.TaskFilter, bool) {
	filter := services.TaskFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Assignee: c.Query("assignee"),
	}

	from, err := parseTimeQuery(c, "startDate")
	if err != nil {
		abort(c, newBadRequestError(err.Error()))
		return filter, false
	}
	filter.DeadlineFrom = from

	to, err := parseTimeQuery(c, "endDate")
	if err != nil {
		abort(c, newBadRequestError(err.Error()))
		return filter, false
	}
	filter.DeadlineTo = to

	return filter, true
}

func (h *handlerImpl) abortTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		abort(c, newNotFoundError("Project not found"))
	case errors.Is(err, services.ErrTaskNotFound):
		abort(c, newNotFoundError("Task not found"))
	case errors.Is(err, services.ErrAssigneeNotFound):
		abort(c, newNotFoundError("Assignee not found"))
	case errors.Is(err, services.ErrDeadlineInPast):
		abort(c, newBadRequestError("Deadline must be in the future"))
	case errors.Is(err, services.ErrInvalidTaskStatus):
		abort(c, newBadRequestError("Invalid task status"))
	case errors.Is(err, services.ErrInvalidTaskPriority):
		abort(c, newBadRequestError("Invalid task priority"))
	default:
		h.logger.Error().
			Err(err).
			Msg("task operation failed")
		abortServerError(c, err)
	}
}
