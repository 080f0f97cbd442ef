package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dishankaswal/CodeArena/internal/common"
	"github.com/Dishankaswal/CodeArena/internal/domain/model"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	FindByID(ctx context.Context, id string) (*model.Question, error)
	ListByContestID(ctx context.Context, contestID string) ([]model.Question, error)
	CountByContestID(ctx context.Context, contestID string) (int, error)
	Delete(ctx context.Context, id string) error
}

type pgQuestionRepository struct {
	db *sql.DB
}

func NewPgQuestionRepository(db *sql.DB) QuestionRepository {
	return &pgQuestionRepository{db: db}
}

func (r *pgQuestionRepository) Create(ctx context.Context, q *model.Question) error {
	var testCases []byte
	if len(q.TestCases) > 0 {
		var err error
		testCases, err = json.Marshal(q.TestCases)
		if err != nil {
			return fmt.Errorf("pgQuestionRepository.Create marshal test cases: %w", err)
		}
	}

	query := `INSERT INTO contest_questions (id, contest_id, title, description, difficulty, points, order_index, test_cases)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		q.ID, q.ContestID, q.Title, q.Description, q.Difficulty, q.Points, q.OrderIndex, testCases)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	query := `SELECT id, contest_id, title, description, difficulty, points, order_index, test_cases, created_at
	          FROM contest_questions WHERE id = $1`

	q := &model.Question{}
	var testCases []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&q.ID, &q.ContestID, &q.Title, &q.Description, &q.Difficulty, &q.Points, &q.OrderIndex, &testCases, &q.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgQuestionRepository.FindByID: %w", err)
	}
	if len(testCases) > 0 {
		if err := json.Unmarshal(testCases, &q.TestCases); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.FindByID unmarshal test cases: %w", err)
		}
	}
	return q, nil
}

func (r *pgQuestionRepository) ListByContestID(ctx context.Context, contestID string) ([]model.Question, error) {
	// Ties on order_index break by insertion time.
	query := `SELECT id, contest_id, title, description, difficulty, points, order_index, test_cases, created_at
	          FROM contest_questions WHERE contest_id = $1 ORDER BY order_index ASC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.ListByContestID query: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		var testCases []byte
		if err := rows.Scan(
			&q.ID, &q.ContestID, &q.Title, &q.Description, &q.Difficulty, &q.Points, &q.OrderIndex, &testCases, &q.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.ListByContestID scan: %w", err)
		}
		if len(testCases) > 0 {
			if err := json.Unmarshal(testCases, &q.TestCases); err != nil {
				return nil, fmt.Errorf("pgQuestionRepository.ListByContestID unmarshal test cases: %w", err)
			}
		}
		questions = append(questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.ListByContestID rows.Err: %w", err)
	}
	return questions, nil
}

func (r *pgQuestionRepository) CountByContestID(ctx context.Context, contestID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contest_questions WHERE contest_id = $1`, contestID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgQuestionRepository.CountByContestID: %w", err)
	}
	return count, nil
}

func (r *pgQuestionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contest_questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
