package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"leadops_backend/internal/leads/scoring"
	"leadops_backend/platform/apperr"
)

const leadNotFoundMessage = "lead not found"

const leadColumns = `id, name, email, phone, company, message, source, score, priority, status, suggested_approach, nurturing_sequence, notes, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create persists an enriched lead.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Lead, error) {
	sequence, err := json.Marshal(params.NurturingSequence)
	if err != nil {
		return Lead{}, fmt.Errorf("marshal nurturing sequence: %w", err)
	}

	query := `
		INSERT INTO leads (id, name, email, phone, company, message, source, score, priority, status, suggested_approach, nurturing_sequence, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
		RETURNING ` + leadColumns

	row := r.pool.QueryRow(ctx, query,
		uuid.New(), params.Name, params.Email, params.Phone, params.Company,
		params.Message, params.Source, params.Score, params.Priority, StatusNew,
		params.SuggestedApproach, sequence, params.CreatedAt,
	)

	lead, err := scanLead(row)
	if err != nil {
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

// GetByID retrieves a lead by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead by id: %w", err)
	}
	return lead, nil
}

// List retrieves leads with optional filters and pagination, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	conditions := []string{}
	args := []interface{}{}

	addFilter := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	addFilter("priority", params.Priority)
	addFilter("status", params.Status)
	addFilter("source", params.Source)

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM leads"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	query := `SELECT ` + leadColumns + ` FROM leads` + where + ` ORDER BY created_at DESC`
	if params.Limit > 0 {
		args = append(args, params.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, params.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads, err := scanLeads(rows)
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// ListCreatedSince retrieves all leads created at or after the given time.
func (r *Repo) ListCreatedSince(ctx context.Context, since time.Time) ([]Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE created_at >= $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("list leads since: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// Update applies admin edits to a lead.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Lead, error) {
	query := `
		UPDATE leads
		SET status = COALESCE($2, status),
		    priority = COALESCE($3, priority),
		    notes = COALESCE($4, notes),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, params.ID, params.Status, params.Priority, params.Notes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("update lead: %w", err)
	}
	return lead, nil
}

// Delete removes a lead permanently.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}
	return nil
}

// Stats aggregates dashboard counters in a single round trip plus a top-source lookup.
func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE priority = $1),
		       COUNT(*) FILTER (WHERE priority = $2),
		       COUNT(*) FILTER (WHERE priority = $3),
		       COUNT(*) FILTER (WHERE priority = $4),
		       COUNT(*) FILTER (WHERE created_at > now() - interval '7 days'),
		       COALESCE(AVG(score), 0)
		FROM leads`

	var stats Stats
	err := r.pool.QueryRow(ctx, query,
		scoring.PriorityUrgent, scoring.PriorityHigh, scoring.PriorityMedium, scoring.PriorityLow,
	).Scan(&stats.Total, &stats.Urgent, &stats.High, &stats.Medium, &stats.Low, &stats.Recent, &stats.AverageScore)
	if err != nil {
		return Stats{}, fmt.Errorf("lead stats: %w", err)
	}

	topSourceQuery := `
		SELECT source FROM leads
		GROUP BY source
		ORDER BY COUNT(*) DESC, source ASC
		LIMIT 1`

	if err := r.pool.QueryRow(ctx, topSourceQuery).Scan(&stats.TopSource); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return Stats{}, fmt.Errorf("lead top source: %w", err)
	}

	return stats, nil
}

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	var sequence []byte

	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Company,
		&lead.Message, &lead.Source, &lead.Score, &lead.Priority, &lead.Status,
		&lead.SuggestedApproach, &sequence, &lead.Notes, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return Lead{}, err
	}

	if len(sequence) > 0 {
		if err := json.Unmarshal(sequence, &lead.NurturingSequence); err != nil {
			return Lead{}, fmt.Errorf("unmarshal nurturing sequence: %w", err)
		}
	}
	return lead, nil
}

func scanLeads(rows pgx.Rows) ([]Lead, error) {
	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}
