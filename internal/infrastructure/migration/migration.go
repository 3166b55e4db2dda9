package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/sirupsen/logrus"
)

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *logrus.Logger) error {
	log.Info("starting database migrations")

	migrations := []Migration{
		{
			Name: "create_export_jobs",
			Up:   createExportJobs,
		},
	}

	for _, m := range migrations {
		if err := m.Up(ctx, pool); err != nil {
			log.WithFields(logrus.Fields{"name": m.Name, "error": err}).Error("migration failed")
			return err
		}
		log.WithField("name", m.Name).Info("migration completed")
	}

	return nil
}

// createExportJobs creates the export audit table if it doesn't exist
func createExportJobs(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS export_jobs (
			id UUID PRIMARY KEY,
			status TEXT NOT NULL,
			metadata JSONB DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`

	_, err := pool.Exec(ctx, query)
	return err
}
