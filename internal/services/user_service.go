package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/svara-ai/task-manager-api/internal/cache"
	"github.com/svara-ai/task-manager-api/internal/models"
)

// Users are never mutated or deleted through the API, so cached
// projections cannot go stale and a long TTL is safe.
const userCacheTTL = time.Hour

type userServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
	cache  cache.Cache
}

// NewUserService builds the user service. The cache may be nil, in
// which case every read goes to postgres.
func NewUserService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
	userCache cache.Cache,
) UserService {
	return &userServiceImpl{
		logger: logger,
		pgPool: pgPool,
		cache:  userCache,
	}
}

func (s *userServiceImpl) List(ctx context.Context) ([]*models.User, error) {
	const selectUsersQuery = `
SELECT id, name, email
FROM users
ORDER BY name
`
	rows, err := s.pgPool.Query(ctx, selectUsersQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select users")
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := new(models.User)
		err = rows.Scan(&user.ID, &user.Name, &user.Email)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan user")
			return nil, err
		}
		users = append(users, user)
	}
	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(users)).
		Msg("selected users")

	return users, nil
}

func (s *userServiceImpl) GetByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrUserNotFound
	}

	cacheKey := "user:" + id
	if s.cache != nil {
		user := new(models.User)
		err := s.cache.GetJSON(ctx, cacheKey, user)
		if err == nil {
			s.logger.Debug().
				Str("user_id", id).
				Msg("user cache hit")
			return user, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn().
				Err(err).
				Msg("failed to read user cache")
		}
	}

	user := &models.User{ID: id}

	const selectUserQuery = `
SELECT name, email
FROM users
WHERE id = $1
`
	err := s.pgPool.QueryRow(ctx, selectUserQuery, id).Scan(
		&user.Name,
		&user.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("user_id", id).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Msg("failed to select user")
		return nil, err
	}

	if s.cache != nil {
		err = s.cache.SetJSON(ctx, cacheKey, user, userCacheTTL)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Msg("failed to write user cache")
		}
	}

	return user, nil
}
