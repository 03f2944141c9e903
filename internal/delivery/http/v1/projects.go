package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/svara-ai/task-manager-api/internal/models"
	"github.com/svara-ai/task-manager-api/internal/services"
)

type projectResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func newProjectResponse(project *models.Project) projectResponse {
	return projectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
		Status:      project.Status,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

type projectPaginationResponse struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalProjects int64 `json:"totalProjects"`
}

type createProjectRequest struct {
	Name        string     `json:"name" binding:"required,max=255"`
	Description string     `json:"description" binding:"required"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Status      string     `json:"status,omitempty"`
}

func (h *handlerImpl) HandleCreateProject(c *gin.Context) {
	var req createProjectRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	project, err := h.projects.Create(c, services.CreateProjectParams{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidProjectStatus) {
			abort(c, newBadRequestError("Invalid project status"))
			return
		}
		h.logger.Error().
			Err(err).
			Msg("failed to create project")
		abortServerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newProjectResponse(project))
}

func (h *handlerImpl) HandleGetProjects(c *gin.Context) {
	page, limit := parsePageQuery(c)

	result, err := h.projects.List(c, services.ListProjectsParams{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list projects")
		abortServerError(c, err)
		return
	}

	projects := make([]projectResponse, len(result.Projects))
	for i, project := range result.Projects {
		projects[i] = newProjectResponse(project)
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"pagination": projectPaginationResponse{
			CurrentPage:   result.Pagination.CurrentPage,
			TotalPages:    result.Pagination.TotalPages,
			TotalProjects: result.Pagination.Total,
		},
	})
}

type updateProjectRequest struct {
	Name        *string    `json:"name,omitempty" binding:"omitempty,max=255"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

func (h *handlerImpl) HandleUpdateProject(c *gin.Context) {
	var req updateProjectRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	project, err := h.projects.Update(c, services.UpdateProjectParams{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			abort(c, newNotFoundError("Project not found"))
		case errors.Is(err, services.ErrInvalidProjectStatus):
			abort(c, newBadRequestError("Invalid project status"))
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to update project")
			abortServerError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, newProjectResponse(project))
}

func (h *handlerImpl) HandleDeleteProject(c *gin.Context) {
	err := h.projects.Delete(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			abort(c, newNotFoundError("Project not found"))
			return
		}
		h.logger.Error().
			Err(err).
			Msg("failed to delete project")
		abortServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
