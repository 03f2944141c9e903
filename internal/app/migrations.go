package app

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/svara-ai/task-manager-api/internal/config"
)

// MustRunMigrations applies pending goose migrations. It opens a
// short-lived database/sql connection because goose does not speak the
// pgx pool API.
func MustRunMigrations() {
	cfg := config.Global().Postgres

	db, err := sql.Open("postgres", postgresURL(cfg))
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to open migration connection")
		panic(err)
	}
	defer func() { _ = db.Close() }()

	err = goose.SetDialect("postgres")
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to set goose dialect")
		panic(err)
	}

	err = goose.Up(db, cfg.MigrationsDir)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to run migrations")
		panic(err)
	}

	globalLogger.Info().
		Str("dir", cfg.MigrationsDir).
		Msg("applied migrations")
}
