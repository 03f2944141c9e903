package services

import (
	"context"
	"errors"
	"time"

	"github.com/svara-ai/task-manager-api/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrProjectNotFound      = errors.New("project not found")
	ErrInvalidProjectStatus = errors.New("invalid project status")

	ErrTaskNotFound        = errors.New("task not found")
	ErrAssigneeNotFound    = errors.New("assignee not found")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
	ErrDeadlineInPast      = errors.New("deadline in the past")
)

type AuthService interface {
	// Register creates a user with a hashed password and returns a
	// signed token together with the public user fields.
	//
	// It returns ErrUserAlreadyExists if the email is taken.
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)

	// Login authenticates by email and password. An unknown email and
	// a wrong password both return ErrInvalidCredentials so callers
	// cannot probe which accounts exist.
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)

	// ParseToken verifies a signed token and returns the user ID it
	// was issued for.
	ParseToken(token string) (string, error)
}

type ProjectService interface {
	Create(ctx context.Context, params CreateProjectParams) (*models.Project, error)
	List(ctx context.Context, params ListProjectsParams) (*ProjectPage, error)
	Update(ctx context.Context, params UpdateProjectParams) (*models.Project, error)

	// Delete removes the project and every task referencing it in a
	// single transaction, so a crash cannot orphan tasks.
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, params CreateTaskParams) (*TaskDetail, error)
	ListByProject(ctx context.Context, params ListTasksByProjectParams) (*TaskPage, error)
	Update(ctx context.Context, params UpdateTaskParams) (*TaskDetail, error)
	Delete(ctx context.Context, id string) error
	Assign(ctx context.Context, taskID, assigneeID string) (*TaskDetail, error)
	ListByAssignee(ctx context.Context, params ListTasksByAssigneeParams) (*TaskPage, error)
}

type UserService interface {
	// List returns all users projected to their public fields.
	List(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  models.User
}

type CreateProjectParams struct {
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      string
}

type UpdateProjectParams struct {
	ID          string
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *string
}

type ListProjectsParams struct {
	Status string
	Page   int
	Limit  int
}

type ProjectPage struct {
	Projects   []*models.Project
	Pagination Pagination
}

type CreateTaskParams struct {
	Title       string
	Description *string
	Status      string
	Priority    string
	Deadline    time.Time
	ProjectID   string
	Assignee    *string
}

type UpdateTaskParams struct {
	ID          string
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Deadline    *time.Time
	ProjectID   *string
	Assignee    *string
}

type ListTasksByProjectParams struct {
	ProjectID string
	Filter    TaskFilter
	Page      int
	Limit     int
}

type ListTasksByAssigneeParams struct {
	AssigneeID string
	Filter     TaskFilter
	Page       int
	Limit      int
}

// AssigneeInfo carries the public fields of a task's assignee.
type AssigneeInfo struct {
	ID    string
	Name  string
	Email string
}

// TaskDetail is a task enriched with its assignee and, when listed by
// assignee, the owning project's name.
type TaskDetail struct {
	Task        models.Task
	Assignee    *AssigneeInfo
	ProjectName string
}

type TaskPage struct {
	Tasks      []*TaskDetail
	Pagination Pagination
}
