package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/svara-ai/task-manager-api/internal/models"
	"github.com/svara-ai/task-manager-api/internal/services"
)

var errUnexpectedCall = errors.New("unexpected service call")

type stubAuthService struct {
	registerFn func(context.Context, services.RegisterParams) (*services.AuthResult, error)
	loginFn    func(context.Context, services.LoginParams) (*services.AuthResult, error)
	parseFn    func(string) (string, error)
}

func (s *stubAuthService) Register(ctx context.Context, params services.RegisterParams) (*services.AuthResult, error) {
	if s.registerFn == nil {
		return nil, errUnexpectedCall
	}
	return s.registerFn(ctx, params)
}

func (s *stubAuthService) Login(ctx context.Context, params services.LoginParams) (*services.AuthResult, error) {
	if s.loginFn == nil {
		return nil, errUnexpectedCall
	}
	return s.loginFn(ctx, params)
}

func (s *stubAuthService) ParseToken(token string) (string, error) {
	if s.parseFn == nil {
		return "", errUnexpectedCall
	}
	return s.parseFn(token)
}

type stubProjectService struct {
	createFn func(context.Context, services.CreateProjectParams) (*models.Project, error)
	listFn   func(context.Context, services.ListProjectsParams) (*services.ProjectPage, error)
	updateFn func(context.Context, services.UpdateProjectParams) (*models.Project, error)
	deleteFn func(context.Context, string) error
}

func (s *stubProjectService) Create(ctx context.Context, params services.CreateProjectParams) (*models.Project, error) {
	if s.createFn == nil {
		return nil, errUnexpectedCall
	}
	return s.createFn(ctx, params)
}

func (s *stubProjectService) List(ctx context.Context, params services.ListProjectsParams) (*services.ProjectPage, error) {
	if s.listFn == nil {
		return nil, errUnexpectedCall
	}
	return s.listFn(ctx, params)
}

func (s *stubProjectService) Update(ctx context.Context, params services.UpdateProjectParams) (*models.Project, error) {
	if s.updateFn == nil {
		return nil, errUnexpectedCall
	}
	return s.updateFn(ctx, params)
}

func (s *stubProjectService) Delete(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		return errUnexpectedCall
	}
	return s.deleteFn(ctx, id)
}

type stubTaskService struct {
	createFn         func(context.Context, services.CreateTaskParams) (*services.TaskDetail, error)
	listByProjectFn  func(context.Context, services.ListTasksByProjectParams) (*services.TaskPage, error)
	updateFn         func(context.Context, services.UpdateTaskParams) (*services.TaskDetail, error)
	deleteFn         func(context.Context, string) error
	assignFn         func(context.Context, string, string) (*services.TaskDetail, error)
	listByAssigneeFn func(context.Context, services.ListTasksByAssigneeParams) (*services.TaskPage, error)
}

func (s *stubTaskService) Create(ctx context.Context, params services.CreateTaskParams) (*services.TaskDetail, error) {
	if s.createFn == nil {
		return nil, errUnexpectedCall
	}
	return s.createFn(ctx, params)
}

func (s *stubTaskService) ListByProject(ctx context.Context, params services.ListTasksByProjectParams) (*services.TaskPage, error) {
	if s.listByProjectFn == nil {
		return nil, errUnexpectedCall
	}
	return s.listByProjectFn(ctx, params)
}

func (s *stubTaskService) Update(ctx context.Context, params services.UpdateTaskParams) (*services.TaskDetail, error) {
	if s.updateFn == nil {
		return nil, errUnexpectedCall
	}
	return s.updateFn(ctx, params)
}

func (s *stubTaskService) Delete(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		return errUnexpectedCall
	}
	return s.deleteFn(ctx, id)
}

func (s *stubTaskService) Assign(ctx context.Context, taskID, assigneeID string) (*services.TaskDetail, error) {
	if s.assignFn == nil {
		return nil, errUnexpectedCall
	}
	return s.assignFn(ctx, taskID, assigneeID)
}

func (s *stubTaskService) ListByAssignee(ctx context.Context, params services.ListTasksByAssigneeParams) (*services.TaskPage, error) {
	if s.listByAssigneeFn == nil {
		return nil, errUnexpectedCall
	}
	return s.listByAssigneeFn(ctx, params)
}

type stubUserService struct {
	listFn    func(context.Context) ([]*models.User, error)
	getByIDFn func(context.Context, string) (*models.User, error)
}

func (s *stubUserService) List(ctx context.Context) ([]*models.User, error) {
	if s.listFn == nil {
		return nil, errUnexpectedCall
	}
	return s.listFn(ctx)
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	if s.getByIDFn == nil {
		return nil, errUnexpectedCall
	}
	return s.getByIDFn(ctx, id)
}

type testServices struct {
	auth     *stubAuthService
	projects *stubProjectService
	tasks    *stubTaskService
	users    *stubUserService
}

// newTestRouter mounts the handler under the production route layout,
// but without the auth middleware so handlers can be exercised
// directly.
func newTestRouter(svcs testServices) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if svcs.auth == nil {
		svcs.auth = &stubAuthService{}
	}
	if svcs.projects == nil {
		svcs.projects = &stubProjectService{}
	}
	if svcs.tasks == nil {
		svcs.tasks = &stubTaskService{}
	}
	if svcs.users == nil {
		svcs.users = &stubUserService{}
	}
	handler := New(zerolog.Nop(), svcs.auth, svcs.projects, svcs.tasks, svcs.users)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/auth/register", handler.HandleRegister)
	api.POST("/auth/login", handler.HandleLogin)
	api.POST("/auth/logout", handler.HandleLogout)
	api.POST("/projects", handler.HandleCreateProject)
	api.GET("/projects", handler.HandleGetProjects)
	api.PUT("/projects/:id", handler.HandleUpdateProject)
	api.DELETE("/projects/:id", handler.HandleDeleteProject)
	api.POST("/tasks", handler.HandleCreateTask)
	api.GET("/tasks/project/:projectId", handler.HandleGetTasksByProject)
	api.PUT("/tasks/:id", handler.HandleUpdateTask)
	api.DELETE("/tasks/:id", handler.HandleDeleteTask)
	api.PUT("/tasks/:id/assign", handler.HandleAssignTask)
	api.GET("/tasks/assignee/:assigneeId", handler.HandleGetTasksByAssignee)
	api.GET("/users", handler.HandleGetAllUsers)
	api.GET("/users/:id", handler.HandleGetUserByID)
	return router
}

func perform(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
