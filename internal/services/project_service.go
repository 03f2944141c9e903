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

type projectServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewProjectService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) ProjectService {
	return &projectServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

// newProjectFromParams applies creation defaults: the start date falls
// back to now, the status to planning. The end date stays nil unless
// provided.
func newProjectFromParams(params CreateProjectParams, now time.Time) (models.Project, error) {
	project := models.Project{
		Name:        strings.TrimSpace(params.Name),
		Description: params.Description,
		StartDate:   now,
		EndDate:     params.EndDate,
		Status:      models.ProjectStatusPlanning,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if params.StartDate != nil {
		project.StartDate = *params.StartDate
	}
	if params.Status != "" {
		if !models.ValidProjectStatus(params.Status) {
			return models.Project{}, ErrInvalidProjectStatus
		}
		project.Status = params.Status
	}
	return project, nil
}

func (s *projectServiceImpl) Create(ctx context.Context, params CreateProjectParams) (*models.Project, error) {
	project, err := newProjectFromParams(params, time.Now())
	if err != nil {
		return nil, err
	}

	projectUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate project uuid")
		return nil, err
	}
	project.ID = projectUUID.String()

	const insertProjectQuery = `
INSERT INTO projects (id, name, description, start_date, end_date, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertProjectQuery,
		project.ID,
		project.Name,
		project.Description,
		project.StartDate,
		project.EndDate,
		project.Status,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert project")
		return nil, err
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Msg("created project")
	return &project, nil
}

func (s *projectServiceImpl) List(ctx context.Context, params ListProjectsParams) (*ProjectPage, error) {
	page, limit := normalizePage(params.Page, params.Limit)

	var (
		conds []string
		args  []any
	)
	if params.Status != "" {
		args = append(args, params.Status)
		conds = append(conds, "status = $1")
	}
	where := whereClause(conds)

	var total int64
	err := s.pgPool.QueryRow(
		ctx,
		"SELECT COUNT(*) FROM projects "+where,
		args...,
	).Scan(&total)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to count projects")
		return nil, err
	}

	selectQuery := fmt.Sprintf(`
SELECT id, name, description, start_date, end_date, status, created_at, updated_at
FROM projects %s
ORDER BY created_at DESC
LIMIT $%d OFFSET $%d
`, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := s.pgPool.Query(ctx, selectQuery, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select projects")
		return nil, err
	}
	defer rows.Close()

	projects := make([]*models.Project, 0, limit)
	for rows.Next() {
		project := new(models.Project)
		err = rows.Scan(
			&project.ID,
			&project.Name,
			&project.Description,
			&project.StartDate,
			&project.EndDate,
			&project.Status,
			&project.CreatedAt,
			&project.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan project")
			return nil, err
		}
		projects = append(projects, project)
	}
	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(projects)).
		Int64("total", total).
		Msg("selected projects")

	return &ProjectPage{
		Projects:   projects,
		Pagination: paginate(total, page, limit),
	}, nil
}

func (s *projectServiceImpl) Update(ctx context.Context, params UpdateProjectParams) (*models.Project, error) {
	if _, err := uuid.Parse(params.ID); err != nil {
		return nil, ErrProjectNotFound
	}

	project := models.Project{ID: params.ID}

	const selectProjectQuery = `
SELECT name, description, start_date, end_date, status, created_at
FROM projects
WHERE id = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectProjectQuery,
		project.ID,
	).Scan(
		&project.Name,
		&project.Description,
		&project.StartDate,
		&project.EndDate,
		&project.Status,
		&project.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("project_id", project.ID).
				Msg("project not found")
			return nil, ErrProjectNotFound
		}

		s.logger.Error().
			Err(err).
			Msg("failed to select project")
		return nil, err
	}

	if params.Name != nil {
		project.Name = strings.TrimSpace(*params.Name)
	}
	if params.Description != nil {
		project.Description = *params.Description
	}
	if params.StartDate != nil {
		project.StartDate = *params.StartDate
	}
	if params.EndDate != nil {
		project.EndDate = params.EndDate
	}
	if params.Status != nil {
		if !models.ValidProjectStatus(*params.Status) {
			return nil, ErrInvalidProjectStatus
		}
		project.Status = *params.Status
	}
	project.UpdatedAt = time.Now()

	const updateProjectQuery = `
UPDATE projects
SET name = $1, description = $2, start_date = $3, end_date = $4, status = $5, updated_at = $6
WHERE id = $7
`
	_, err = s.pgPool.Exec(
		ctx,
		updateProjectQuery,
		project.Name,
		project.Description,
		project.StartDate,
		project.EndDate,
		project.Status,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to update project")
		return nil, err
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Msg("updated project")
	return &project, nil
}

func (s *projectServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrProjectNotFound
	}

	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Tasks go first so the project row is never removed while tasks
	// still reference it.
	const deleteTasksQuery = `
DELETE FROM tasks
WHERE project_id = $1
`
	tag, err := tx.Exec(ctx, deleteTasksQuery, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to delete project tasks")
		return err
	}
	s.logger.Debug().
		Str("project_id", id).
		Int64("affected", tag.RowsAffected()).
		Msg("deleted project tasks")

	const deleteProjectQuery = `
DELETE FROM projects
WHERE id = $1
`
	tag, err = tx.Exec(ctx, deleteProjectQuery, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to delete project")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Str("project_id", id).
			Msg("project not found")
		return ErrProjectNotFound
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return err
	}

	s.logger.Info().
		Str("project_id", id).
		Msg("deleted project")
	return nil
}
