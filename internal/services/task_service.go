package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/svara-ai/task-manager-api/internal/models"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

// newTaskFromParams applies creation defaults and validates the
// enumerated fields and the deadline. The deadline must not be earlier
// than now; a deadline exactly at now is accepted.
func newTaskFromParams(params CreateTaskParams, now time.Time) (models.Task, error) {
	task := models.Task{
		Title:     strings.TrimSpace(params.Title),
		Status:    models.TaskStatusTodo,
		Priority:  models.TaskPriorityMedium,
		Deadline:  params.Deadline,
		ProjectID: params.ProjectID,
		Assignee:  params.Assignee,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Status != "" {
		if !models.ValidTaskStatus(params.Status) {
			return models.Task{}, ErrInvalidTaskStatus
		}
		task.Status = params.Status
	}
	if params.Priority != "" {
		if !models.ValidTaskPriority(params.Priority) {
			return models.Task{}, ErrInvalidTaskPriority
		}
		task.Priority = params.Priority
	}
	if task.Deadline.Before(now) {
		return models.Task{}, ErrDeadlineInPast
	}
	return task, nil
}

func (s *taskServiceImpl) Create(ctx context.Context, params CreateTaskParams) (*TaskDetail, error) {
	task, err := newTaskFromParams(params, time.Now())
	if err != nil {
		return nil, err
	}

	err = s.projectExists(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}

	var assignee *AssigneeInfo
	if task.Assignee != nil {
		assignee, err = s.lookupAssignee(ctx, *task.Assignee)
		if err != nil {
			return nil, err
		}
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}
	task.ID = taskUUID.String()

	const insertTaskQuery = `
INSERT INTO tasks (id, title, description, status, priority, deadline, project_id, assignee, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Deadline,
		task.ProjectID,
		task.Assignee,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("project_id", task.ProjectID).
		Msg("created task")
	return &TaskDetail{Task: task, Assignee: assignee}, nil
}

func (s *taskServiceImpl) ListByProject(ctx context.Context, params ListTasksByProjectParams) (*TaskPage, error) {
	page, limit := normalizePage(params.Page, params.Limit)

	args := []any{params.ProjectID}
	conds := []string{"t.project_id = $1"}
	conds, args = params.Filter.conditions(conds, args)

	return s.listTasks(ctx, listTasksQuery{
		where:       whereClause(conds),
		args:        args,
		page:        page,
		limit:       limit,
		withProject: false,
	})
}

func (s *taskServiceImpl) ListByAssignee(ctx context.Context, params ListTasksByAssigneeParams) (*TaskPage, error) {
	page, limit := normalizePage(params.Page, params.Limit)

	args := []any{params.AssigneeID}
	conds := []string{"t.assignee = $1"}
	conds, args = params.Filter.conditions(conds, args)

	return s.listTasks(ctx, listTasksQuery{
		where:       whereClause(conds),
		args:        args,
		page:        page,
		limit:       limit,
		withProject: true,
	})
}

type listTasksQuery struct {
	where string
	args  []any
	page  int
	limit int
	// withProject joins projects for the owning project's name.
	withProject bool
}

func (s *taskServiceImpl) listTasks(ctx context.Context, q listTasksQuery) (*TaskPage, error) {
	var total int64
	err := s.pgPool.QueryRow(
		ctx,
		"SELECT COUNT(*) FROM tasks t "+q.where,
		q.args...,
	).Scan(&total)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to count tasks")
		return nil, err
	}

	projectColumn, projectJoin := "''", ""
	if q.withProject {
		projectColumn = "COALESCE(p.name, '')"
		projectJoin = "LEFT JOIN projects p ON p.id = t.project_id"
	}

	selectQuery := fmt.Sprintf(`
SELECT t.id, t.title, t.description, t.status, t.priority, t.deadline,
       t.project_id, t.assignee, t.created_at, t.updated_at,
       u.name, u.email, %s
FROM tasks t
LEFT JOIN users u ON u.id = t.assignee
%s
%s
ORDER BY t.created_at DESC
LIMIT $%d OFFSET $%d
`, projectColumn, projectJoin, q.where, len(q.args)+1, len(q.args)+2)
	args := append(q.args, q.limit, (q.page-1)*q.limit)

	rows, err := s.pgPool.Query(ctx, selectQuery, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*TaskDetail, 0, q.limit)
	for rows.Next() {
		detail := new(TaskDetail)
		var assigneeName, assigneeEmail *string
		err = rows.Scan(
			&detail.Task.ID,
			&detail.Task.Title,
			&detail.Task.Description,
			&detail.Task.Status,
			&detail.Task.Priority,
			&detail.Task.Deadline,
			&detail.Task.ProjectID,
			&detail.Task.Assignee,
			&detail.Task.CreatedAt,
			&detail.Task.UpdatedAt,
			&assigneeName,
			&assigneeEmail,
			&detail.ProjectName,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		if detail.Task.Assignee != nil && assigneeName != nil && assigneeEmail != nil {
			detail.Assignee = &AssigneeInfo{
				ID:    *detail.Task.Assignee,
				Name:  *assigneeName,
				Email: *assigneeEmail,
			}
		}
		tasks = append(tasks, detail)
	}
	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Int64("total", total).
		Msg("selected tasks")

	return &TaskPage{
		Tasks:      tasks,
		Pagination: paginate(total, q.page, q.limit),
	}, nil
}

func (s *taskServiceImpl) Update(ctx context.Context, params UpdateTaskParams) (*TaskDetail, error) {
	if _, err := uuid.Parse(params.ID); err != nil {
		return nil, ErrTaskNotFound
	}

	task := models.Task{ID: params.ID}

	const selectTaskQuery = `
SELECT title, description, status, priority, deadline, project_id, assignee, created_at
FROM tasks
WHERE id = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectTaskQuery,
		task.ID,
	).Scan(
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.Deadline,
		&task.ProjectID,
		&task.Assignee,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("task_id", task.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Msg("failed to select task")
		return nil, err
	}

	if params.Title != nil {
		task.Title = strings.TrimSpace(*params.Title)
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Status != nil {
		if !models.ValidTaskStatus(*params.Status) {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = *params.Status
	}
	if params.Priority != nil {
		if !models.ValidTaskPriority(*params.Priority) {
			return nil, ErrInvalidTaskPriority
		}
		task.Priority = *params.Priority
	}
	// Partial updates that omit the deadline skip the future check.
	if params.Deadline != nil {
		if params.Deadline.Before(time.Now()) {
			return nil, ErrDeadlineInPast
		}
		task.Deadline = *params.Deadline
	}
	if params.ProjectID != nil {
		err = s.projectExists(ctx, *params.ProjectID)
		if err != nil {
			return nil, err
		}
		task.ProjectID = *params.ProjectID
	}

	var assignee *AssigneeInfo
	if params.Assignee != nil {
		assignee, err = s.lookupAssignee(ctx, *params.Assignee)
		if err != nil {
			return nil, err
		}
		task.Assignee = params.Assignee
	} else if task.Assignee != nil {
		assignee, err = s.lookupAssignee(ctx, *task.Assignee)
		if err != nil {
			return nil, err
		}
	}
	task.UpdatedAt = time.Now()

	const updateTaskQuery = `
UPDATE tasks
SET title = $1, description = $2, status = $3, priority = $4, deadline = $5,
    project_id = $6, assignee = $7, updated_at = $8
WHERE id = $9
`
	_, err = s.pgPool.Exec(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Deadline,
		task.ProjectID,
		task.Assignee,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("updated task")
	return &TaskDetail{Task: task, Assignee: assignee}, nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrTaskNotFound
	}

	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := s.pgPool.Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Str("task_id", id).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) Assign(ctx context.Context, taskID, assigneeID string) (*TaskDetail, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, ErrTaskNotFound
	}

	// The assignee is checked before the task is touched, so a failed
	// assignment leaves the task unchanged.
	assignee, err := s.lookupAssignee(ctx, assigneeID)
	if err != nil {
		return nil, err
	}

	task := models.Task{
		ID:        taskID,
		Assignee:  &assignee.ID,
		UpdatedAt: time.Now(),
	}

	const assignTaskQuery = `
UPDATE tasks
SET assignee = $1, updated_at = $2
WHERE id = $3
RETURNING title, description, status, priority, deadline, project_id, created_at
`
	err = s.pgPool.QueryRow(
		ctx,
		assignTaskQuery,
		task.Assignee,
		task.UpdatedAt,
		task.ID,
	).Scan(
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.Deadline,
		&task.ProjectID,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("task_id", task.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Msg("failed to assign task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("assignee", assignee.ID).
		Msg("assigned task")
	return &TaskDetail{Task: task, Assignee: assignee}, nil
}

func (s *taskServiceImpl) projectExists(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrProjectNotFound
	}

	const selectProjectQuery = `
SELECT 1
FROM projects
WHERE id = $1
`
	var one int
	err := s.pgPool.QueryRow(ctx, selectProjectQuery, id).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("project_id", id).
				Msg("project not found")
			return ErrProjectNotFound
		}

		s.logger.Error().
			Err(err).
			Msg("failed to select project")
		return err
	}
	return nil
}

func (s *taskServiceImpl) lookupAssignee(ctx context.Context, id string) (*AssigneeInfo, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrAssigneeNotFound
	}

	assignee := AssigneeInfo{ID: id}

	const selectUserQuery = `
SELECT name, email
FROM users
WHERE id = $1
`
	err := s.pgPool.QueryRow(ctx, selectUserQuery, id).Scan(
		&assignee.Name,
		&assignee.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("user_id", id).
				Msg("assignee not found")
			return nil, ErrAssigneeNotFound
		}

		s.logger.Error().
			Err(err).
			Msg("failed to select assignee")
		return nil, err
	}
	return &assignee, nil
}
