package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dishankaswal/CodeArena/internal/common"
	"github.com/Dishankaswal/CodeArena/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type ContestRepository interface {
	Create(ctx context.Context, contest *model.Contest) error
	FindByID(ctx context.Context, id string) (*model.Contest, error)
	List(ctx context.Context) ([]model.Contest, error)
}

type pgContestRepository struct {
	db *sql.DB
}

func NewPgContestRepository(db *sql.DB) ContestRepository {
	return &pgContestRepository{db: db}
}

func (r *pgContestRepository) Create(ctx context.Context, c *model.Contest) error {
	query := `INSERT INTO contests (id, title, slug, start_time, type, description, gradient, created_by, created_by_email)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Title, c.Slug, c.StartTime, c.Type, c.Description, c.Gradient, c.CreatedByID, c.CreatedByEmail)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for slug
			return fmt.Errorf("contest with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgContestRepository.Create: %w", err)
	}
	return nil
}

func (r *pgContestRepository) FindByID(ctx context.Context, id string) (*model.Contest, error) {
	query := `
        SELECT c.id, c.title, c.slug, c.start_time, c.type, c.description, c.gradient,
               c.created_by, c.created_by_email, c.created_at,
               (SELECT COUNT(*) FROM contest_registrations r WHERE r.contest_id = c.id) AS registered_count
        FROM contests c
        WHERE c.id = $1`

	contest := &model.Contest{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&contest.ID, &contest.Title, &contest.Slug, &contest.StartTime, &contest.Type,
		&contest.Description, &contest.Gradient,
		&contest.CreatedByID, &contest.CreatedByEmail, &contest.CreatedAt,
		&contest.RegisteredCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgContestRepository.FindByID: %w", err)
	}
	return contest, nil
}

func (r *pgContestRepository) List(ctx context.Context) ([]model.Contest, error) {
	query := `
        SELECT c.id, c.title, c.slug, c.start_time, c.type, c.description, c.gradient,
               c.created_by, c.created_by_email, c.created_at,
               (SELECT COUNT(*) FROM contest_registrations r WHERE r.contest_id = c.id) AS registered_count
        FROM contests c
        ORDER BY c.start_time ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgContestRepository.List query: %w", err)
	}
	defer rows.Close()

	contests := []model.Contest{}
	for rows.Next() {
		var c model.Contest
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Slug, &c.StartTime, &c.Type,
			&c.Description, &c.Gradient,
			&c.CreatedByID, &c.CreatedByEmail, &c.CreatedAt,
			&c.RegisteredCount,
		); err != nil {
			return nil, fmt.Errorf("pgContestRepository.List scan: %w", err)
		}
		contests = append(contests, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgContestRepository.List rows.Err: %w", err)
	}
	return contests, nil
}
