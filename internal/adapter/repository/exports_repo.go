package repository

import (
	"context"
	"encoding/json"

	"resume-builder/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// ExportsRepo records export attempts. It is intentionally best-effort: a
// nil pool disables auditing entirely and Save becomes a no-op, so the
// export path never depends on the database being up.
type ExportsRepo struct {
	pool *pgxpool.Pool
}

func NewExportsRepo(pool *pgxpool.Pool) *ExportsRepo {
	return &ExportsRepo{pool: pool}
}

func (r *ExportsRepo) Save(ctx context.Context, j *domain.ExportJob) error {
	if r.pool == nil {
		return nil
	}

	metaB, _ := json.Marshal(j.Metadata)

	_, err := r.pool.Exec(ctx, `INSERT INTO export_jobs (id, status, metadata, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, metadata = EXCLUDED.metadata, updated_at = EXCLUDED.updated_at`,
		j.ID, j.Status, metaB, j.CreatedAt, j.UpdatedAt)
	return err
}
