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

type RegistrationRepository interface {
	// Find returns ErrNotFound when no registration exists; callers treat
	// that as a normal outcome, not a failure.
	Find(ctx context.Context, contestID, userID string) (*model.Registration, error)
	Create(ctx context.Context, reg *model.Registration) error
	Delete(ctx context.Context, contestID, userID string) error
}

type pgRegistrationRepository struct {
	db *sql.DB
}

func NewPgRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &pgRegistrationRepository{db: db}
}

func (r *pgRegistrationRepository) Find(ctx context.Context, contestID, userID string) (*model.Registration, error) {
	query := `SELECT id, contest_id, user_id, created_at
	          FROM contest_registrations WHERE contest_id = $1 AND user_id = $2`
	reg := &model.Registration{}
	err := r.db.QueryRowContext(ctx, query, contestID, userID).Scan(
		&reg.ID, &reg.ContestID, &reg.UserID, &reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgRegistrationRepository.Find: %w", err)
	}
	return reg, nil
}

func (r *pgRegistrationRepository) Create(ctx context.Context, reg *model.Registration) error {
	query := `INSERT INTO contest_registrations (id, contest_id, user_id)
	          VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, reg.ID, reg.ContestID, reg.UserID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// UNIQUE (contest_id, user_id) caught a racing duplicate.
			return fmt.Errorf("already registered for contest: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgRegistrationRepository.Create: %w", err)
	}
	return nil
}

func (r *pgRegistrationRepository) Delete(ctx context.Context, contestID, userID string) error {
	query := `DELETE FROM contest_registrations WHERE contest_id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, contestID, userID)
	if err != nil {
		return fmt.Errorf("pgRegistrationRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgRegistrationRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
