package v1

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svara-ai/task-manager-api/internal/models"
	"github.com/svara-ai/task-manager-api/internal/services"
)

func sampleTaskDetail() *services.TaskDetail {
	assignee := "user-1"
	return &services.TaskDetail{
		Task: models.Task{
			ID:          "task-1",
			Title:       "Write landing copy",
			Description: "First draft for review",
			Status:      models.TaskStatusTodo,
			Priority:    models.TaskPriorityHigh,
			Deadline:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			ProjectID:   "project-1",
			Assignee:    &assignee,
			CreatedAt:   time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		},
		Assignee: &services.AssigneeInfo{
			ID:    "user-1",
			Name:  "Alice",
			Email: "alice@example.com",
		},
	}
}

func TestHandleCreateTask(t *testing.T) {
	var got services.CreateTaskParams
	router := newTestRouter(testServices{
		tasks: &stubTaskService{
			createFn: func(_ context.Context, params services.CreateTaskParams) (*services.TaskDetail, error) {
				got = params
				return sampleTaskDetail(), nil
			},
		},
	})

	w := perform(t, router, http.MethodPost, "/api/tasks", map[string]any{
		"title":     "Write landing copy",
		"deadline":  "2026-10-01T00:00:00Z",
		"projectId": "project-1",
		"assignee":  "user-1",
		"priority":  "high",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Write landing copy", got.Title)
	assert.Equal(t, "project-1", got.ProjectID)
	require.NotNil(t, got.Assignee)
	assert.Equal(t, "user-1", *got.Assignee)

	body := decodeBody(t, w)
	assert.Equal(t, "task-1", body["id"])
	assert.Equal(t, "project-1", body["projectId"])
	assert.NotContains(t, body, "projectName")

	assignee, ok := body["assignee"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user-1", assignee["id"])
	assert.Equal(t, "Alice", assignee["name"])
	assert.Equal(t, "alice@example.com", assignee["email"])
}

func TestHandleCreateTask_DeadlineInPast(t *testing.T) {
	router := newTestRouter(testServices{
		tasks: &stubTaskService{
			createFn: func(context.Context, services.CreateTaskParams) (*services.TaskDetail, error) {
				return nil, services.ErrDeadlineInPast
			},
		},
	})

	w := perform(t, router, http.MethodPost, "/api/tasks", map[string]any{
		"title":     "Write landing copy",
		"deadline":  "2020-01-01T00:00:00Z",
		"projectId": "project-1",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Deadline must be in the future", decodeBody(t, w)["message"])
}

func TestHandleCreateTask_ProjectNotFound(t *testing.T) {
	router := newTestRouter(testServices{
		tasks: &stubTaskService{
			createFn: func(context.Context, services.CreateTaskParams) (*services.TaskDetail, error) {
				return nil, services.ErrProjectNotFound
			},
		},
	})

	w := perform(t, router, http.MethodPost, "/api/tasks", map[string]any{
		"title":     "Write landing copy",
		"deadline":  "2026-10-01T00:00:00Z",
		"projectId": "missing",
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Project not found", decodeBody(t, w)["message"])
}

func TestHandleGetTasksByProject_Filter(t *testing.T) {
	var got services.ListTasksByProjectParams
	router := newTestRouter(testServices{
		tasks: &stubTaskService{
			listByProjectFn: func(_ context.Context, params services.ListTasksByProjectParams) (*services.TaskPage, error) {
				got = params
				return &services.TaskPage{
					Tasks: []*services.TaskDetail{sampleTaskDetail()},
					Pagination: services.Pagination{
						CurrentPage: 1,
						TotalPages:  1,
						Total:       1,
					},
				}, nil
			},
		},
	})

	w := perform(t, router, http.MethodGet,
		"/api/tasks/project/project-1?status=todo&priority=high&assignee=user-1&startDate=2026-09-01&endDate=2026-10-01T00:00:00Z",
		nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "project-1", got.ProjectID)
	assert.Equal(t, "todo", got.Filter.Status)
	assert.Equal(t, "high", got.Filter.Priority)
	assert.Equal(t, "user-1", got.Filter.Assignee)
	require.NotNil(t, got.Filter.DeadlineFrom)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), *got.Filter.DeadlineFrom)
	require.NotNil(t, got.Filter.DeadlineTo)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), *got.Filter.DeadlineTo)

	body := decodeBody(t, w)
	pagination, ok := body["pagination"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), pagination["totalTasks"])
}

func TestHandleGetTasksByProject_InvalidDate(t *testing.T) {
	router := newTestRouter(testServices{})

	w := perform(t, router, http.MethodGet, "/api/tasks/project/project-1?startDate=yesterday", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `invalid startDate: "yesterday"`, decodeBody(t, w)["message"])
}

func TestHandleUpdateTask_NotFound(t *testing.T) {
	router := newTestRouter(testServices{
		tasks: &stubTaskService{
			updateFn: func(context.Context, services.UpdateTaskParams) (*services.TaskDetail, error) {
				return nil, services.ErrTaskNotFound
			},
		},
	})

	w := perform(t, router, http.MethodPut, "/api/tasks/missing", map[string]any{
		"status": "done",
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Task not found", decodeBody(t, w)["message"])
}

func TestHandleUpdateTask_InvalidStatus(t *testing.T) {
	router := newTestRouter(testServices{
		tasks: &stubTaskService{
			updateFn: func(context.Context, services.UpdateTaskParams) (*services.TaskDetail, error) {
				return nil, services.ErrInvalidTaskStatus
			},
		},
	})

	w := perform(t, router, http.MethodPut, "/api/tasks/task-1", map[string]any{
		"status": "blocked",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid task status", decodeBody(t, w)["message"])
}

func TestHandleDeleteTask(t *testing.T) {
	router := newTestRouter(testServices{
		tasks: &stubTaskService{
			deleteFn: func(_ context.Context, id string) error {
				if id != "task-1" {
					return services.ErrTaskNotFound
				}
				return nil
			},
		},
	})

	w := perform(t, router, http.MethodDelete, "/api/tasks/task-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Task deleted successfully", decodeBody(t, w)["message"])

	w = perform(t, router, http.MethodDelete, "/api/tasks/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Task not found", decodeBody(t, w)["message"])
}

func TestHandleAssignTask(t *testing.T) {
	router := newTestRouter(testServices{
		tasks: &stubTaskService{
			assignFn: func(_ context.Context, taskID, assigneeID string) (*services.TaskDetail, error) {
				require.Equal(t, "task-1", taskID)
				require.Equal(t, "user-1", assigneeID)
				return sampleTaskDetail(), nil
			},
		},
	})

	w := perform(t, router, http.MethodPut, "/api/tasks/task-1/assign", map[string]any{
		"assignee": "user-1",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assignee, ok := decodeBody(t, w)["assignee"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alice", assignee["name"])
}

func TestHandleAssignTask_AssigneeNotFound(t *testing.T) {
	router := newTestRouter(testServices{
		tasks: &stubTaskService{
			assignFn: func(context.Context, string, string) (*services.TaskDetail, error) {
				return nil, services.ErrAssigneeNotFound
			},
		},
	})

	w := perform(t, router, http.MethodPut, "/api/tasks/task-1/assign", map[string]any{
		"assignee": "missing",
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Assignee not found", decodeBody(t, w)["message"])
}

func TestHandleGetTasksByAssignee(t *testing.T) {
	detail := sampleTaskDetail()
	detail.ProjectName = "Website Redesign"

	var got services.ListTasksByAssigneeParams
	router := newTestRouter(testServices{
		tasks: &stubTaskService{
			listByAssigneeFn: func(_ context.Context, params services.ListTasksByAssigneeParams) (*services.TaskPage, error) {
				got = params
				return &services.TaskPage{
					Tasks: []*services.TaskDetail{detail},
					Pagination: services.Pagination{
						CurrentPage: 1,
						TotalPages:  1,
						Total:       1,
					},
				}, nil
			},
		},
	})

	w := perform(t, router, http.MethodGet, "/api/tasks/assignee/user-1?status=todo", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", got.AssigneeID)
	assert.Equal(t, "todo", got.Filter.Status)

	body := decodeBody(t, w)
	tasks, ok := body["tasks"].([]any)
	require.True(t, ok)
	require.Len(t, tasks, 1)

	task, ok := tasks[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Website Redesign", task["projectName"])
}
