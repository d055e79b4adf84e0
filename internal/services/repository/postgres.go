package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"leadops_backend/platform/apperr"
)

const serviceColumns = `id, name, description, price, category, features, active, created_at, updated_at`

// Repo is the PostgreSQL-backed catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a PostgreSQL catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

func (r *Repo) Create(ctx context.Context, params CreateParams) (Service, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO services (id, name, description, price, category, features, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING `+serviceColumns,
		uuid.New(), params.Name, params.Description, params.Price, params.Category, params.Features, params.Active,
	)
	return scanService(row)
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Service, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)
	return scanService(row)
}

func (r *Repo) List(ctx context.Context, activeOnly bool) ([]Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanServices(rows)
}

func (r *Repo) Update(ctx context.Context, params UpdateParams) (Service, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE services SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			price       = COALESCE($4, price),
			category    = COALESCE($5, category),
			features    = COALESCE($6, features),
			active      = COALESCE($7, active),
			updated_at  = now()
		WHERE id = $1
		RETURNING `+serviceColumns,
		params.ID, params.Name, params.Description, params.Price, params.Category, params.Features, params.Active,
	)
	return scanService(row)
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("service not found")
	}
	return nil
}

func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE active),
			COALESCE(SUM(price) FILTER (WHERE active), 0)
		FROM services`,
	).Scan(&stats.Total, &stats.Active, &stats.TotalRevenue)
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func scanService(row pgx.Row) (Service, error) {
	var svc Service
	err := row.Scan(
		&svc.ID, &svc.Name, &svc.Description, &svc.Price, &svc.Category,
		&svc.Features, &svc.Active, &svc.CreatedAt, &svc.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Service{}, apperr.NotFound("service not found")
	}
	if err != nil {
		return Service{}, err
	}
	return svc, nil
}

func scanServices(rows pgx.Rows) ([]Service, error) {
	var services []Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}
