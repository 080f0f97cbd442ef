package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dishankaswal/CodeArena/internal/app/evaluator"
	"github.com/Dishankaswal/CodeArena/internal/common"
	"github.com/Dishankaswal/CodeArena/internal/domain/model"
	"github.com/Dishankaswal/CodeArena/internal/domain/repository"
	"github.com/Dishankaswal/CodeArena/internal/platform/judge"
)

type SubmissionService struct {
	questionRepo repository.QuestionRepository
	contestRepo  repository.ContestRepository
	contests     *ContestService
	judge        evaluator.Runner
	evaluator    *evaluator.Evaluator
}

func NewSubmissionService(
	questionRepo repository.QuestionRepository,
	contestRepo repository.ContestRepository,
	contests *ContestService,
	runner evaluator.Runner,
	eval *evaluator.Evaluator,
) *SubmissionService {
	return &SubmissionService{
		questionRepo: questionRepo,
		contestRepo:  contestRepo,
		contests:     contests,
		judge:        runner,
		evaluator:    eval,
	}
}

type ExecuteRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	Stdin    string `json:"stdin"`
}

// Execute runs code once against user-provided stdin.
func (s *SubmissionService) Execute(ctx context.Context, req ExecuteRequest) (*judge.Result, error) {
	if req.Code == "" {
		return nil, fmt.Errorf("code is required: %w", common.ErrValidation)
	}
	return s.judge.Execute(ctx, req.Language, req.Code, req.Stdin)
}

type RunQuestionRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

type RunQuestionResponse struct {
	Results []model.CaseResult `json:"results"`
	Summary string             `json:"summary"`
}

// RunQuestion evaluates code against a question's declared test cases. The
// caller must be registered for the parent contest (or be its creator), and
// the contest must have started. Evaluation stays available after the
// contest ends so questions double as practice material.
func (s *SubmissionService) RunQuestion(ctx context.Context, callerID, questionID string, req RunQuestionRequest) (*RunQuestionResponse, error) {
	if req.Code == "" {
		return nil, fmt.Errorf("code is required: %w", common.ErrValidation)
	}

	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("question not found: %w", err)
		}
		return nil, fmt.Errorf("failed to load question: %w", err)
	}
	contest, err := s.contestRepo.FindByID(ctx, question.ContestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contest: %w", err)
	}

	if contest.CreatedByID != callerID {
		reg, err := s.contests.GetRegistration(ctx, contest.ID, callerID)
		if err != nil {
			return nil, err
		}
		if reg == nil {
			return nil, fmt.Errorf("register for the contest to submit solutions: %w", common.ErrForbidden)
		}
		if contest.PhaseAt(time.Now()) == model.PhaseUpcoming {
			return nil, fmt.Errorf("contest has not started yet: %w", common.ErrForbidden)
		}
	}

	if len(question.TestCases) == 0 {
		return nil, fmt.Errorf("question has no test cases: %w", common.ErrNotFound)
	}

	results := s.evaluator.RunAll(ctx, req.Language, req.Code, question.TestCases)
	return &RunQuestionResponse{
		Results: results,
		Summary: evaluator.Summary(results),
	}, nil
}
