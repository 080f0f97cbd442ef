package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dishankaswal/CodeArena/internal/common"
	"github.com/Dishankaswal/CodeArena/internal/domain/model"
	"github.com/Dishankaswal/CodeArena/internal/domain/repository"

	"github.com/google/uuid"
)

type QuestionService struct {
	questionRepo repository.QuestionRepository
	contestRepo  repository.ContestRepository
	contests     *ContestService
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	contestRepo repository.ContestRepository,
	contests *ContestService,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		contestRepo:  contestRepo,
		contests:     contests,
	}
}

type AddQuestionRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Difficulty  string           `json:"difficulty"`
	Points      int              `json:"points"`
	TestCases   []model.TestCase `json:"test_cases"`
}

// AddQuestion appends a question to a contest. Only the contest creator may
// add questions; order_index is the question count at insertion time, so
// ordering is append-only.
func (s *QuestionService) AddQuestion(ctx context.Context, callerID, contestID string, req AddQuestionRequest) (*model.Question, error) {
	contest, err := s.contestRepo.FindByID(ctx, contestID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("contest not found: %w", err)
		}
		return nil, fmt.Errorf("failed to load contest: %w", err)
	}
	if contest.CreatedByID != callerID {
		return nil, fmt.Errorf("you do not have permission to add questions to this contest: %w", common.ErrForbidden)
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("title and description are required: %w", common.ErrValidation)
	}

	difficulty := model.QuestionDifficulty(req.Difficulty)
	switch difficulty {
	case "":
		difficulty = model.DifficultyMedium
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		return nil, fmt.Errorf("unknown difficulty %q: %w", req.Difficulty, common.ErrValidation)
	}

	if req.Points < 10 || req.Points%10 != 0 {
		return nil, fmt.Errorf("points must be a positive multiple of 10: %w", common.ErrValidation)
	}

	// Drop test cases that are entirely empty.
	testCases := make([]model.TestCase, 0, len(req.TestCases))
	for _, tc := range req.TestCases {
		if strings.TrimSpace(tc.Input) == "" && strings.TrimSpace(tc.ExpectedOutput) == "" {
			continue
		}
		testCases = append(testCases, tc)
	}

	count, err := s.questionRepo.CountByContestID(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	question := &model.Question{
		ID:          uuid.NewString(),
		ContestID:   contestID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Difficulty:  difficulty,
		Points:      req.Points,
		OrderIndex:  count,
		TestCases:   testCases,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to add question: %w", err)
	}
	return question, nil
}

// ListQuestions returns a contest's questions in display order. Visibility is
// gated on registration; the creator always sees their own questions.
func (s *QuestionService) ListQuestions(ctx context.Context, callerID, contestID string) ([]model.Question, error) {
	contest, err := s.contestRepo.FindByID(ctx, contestID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("contest not found: %w", err)
		}
		return nil, fmt.Errorf("failed to load contest: %w", err)
	}

	if contest.CreatedByID != callerID {
		reg, err := s.contests.GetRegistration(ctx, contestID, callerID)
		if err != nil {
			return nil, err
		}
		if reg == nil {
			return nil, fmt.Errorf("register for the contest to view its questions: %w", common.ErrForbidden)
		}
	}

	return s.questionRepo.ListByContestID(ctx, contestID)
}

// DeleteQuestion removes a question; only the parent contest's creator may.
func (s *QuestionService) DeleteQuestion(ctx context.Context, callerID, questionID string) error {
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("question not found: %w", err)
		}
		return fmt.Errorf("failed to load question: %w", err)
	}
	contest, err := s.contestRepo.FindByID(ctx, question.ContestID)
	if err != nil {
		return fmt.Errorf("failed to load contest: %w", err)
	}
	if contest.CreatedByID != callerID {
		return fmt.Errorf("only the contest creator can delete questions: %w", common.ErrForbidden)
	}
	return s.questionRepo.Delete(ctx, questionID)
}
