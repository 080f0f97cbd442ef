package service

import (
	"context"
	"testing"
	"time"

	"github.com/Dishankaswal/CodeArena/internal/common"
	"github.com/Dishankaswal/CodeArena/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type questionFixture struct {
	svc         *QuestionService
	contests    *ContestService
	contestRepo *fakeContestRepo
	regRepo     *fakeRegistrationRepo
}

func newQuestionFixture(t *testing.T) *questionFixture {
	t.Helper()
	contestRepo := newFakeContestRepo()
	regRepo := newFakeRegistrationRepo()
	contests := NewContestService(contestRepo, regRepo)
	require.NoError(t, contestRepo.Create(context.Background(), &model.Contest{
		ID:          "c1",
		Title:       "Weekly",
		StartTime:   time.Now().Add(time.Hour),
		CreatedByID: "creator-1",
	}))
	return &questionFixture{
		svc:         NewQuestionService(newFakeQuestionRepo(), contestRepo, contests),
		contests:    contests,
		contestRepo: contestRepo,
		regRepo:     regRepo,
	}
}

func validQuestion() AddQuestionRequest {
	return AddQuestionRequest{
		Title:       "Two Sum",
		Description: "Find two numbers adding to target.",
		Difficulty:  "easy",
		Points:      20,
		TestCases: []model.TestCase{
			{Input: "1 2 3", ExpectedOutput: "3"},
		},
	}
}

func TestAddQuestion(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()

	q, err := f.svc.AddQuestion(ctx, "creator-1", "c1", validQuestion())
	require.NoError(t, err)
	assert.Equal(t, "Two Sum", q.Title)
	assert.Equal(t, model.DifficultyEasy, q.Difficulty)
	assert.Equal(t, 20, q.Points)
	assert.Equal(t, 0, q.OrderIndex)

	q2, err := f.svc.AddQuestion(ctx, "creator-1", "c1", validQuestion())
	require.NoError(t, err)
	assert.Equal(t, 1, q2.OrderIndex, "order index follows insertion order")
}

func TestAddQuestionRequiresCreator(t *testing.T) {
	f := newQuestionFixture(t)

	_, err := f.svc.AddQuestion(context.Background(), "someone-else", "c1", validQuestion())
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestAddQuestionValidation(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()

	req := validQuestion()
	req.Title = "   "
	_, err := f.svc.AddQuestion(ctx, "creator-1", "c1", req)
	assert.ErrorIs(t, err, common.ErrValidation)

	req = validQuestion()
	req.Points = 15
	_, err = f.svc.AddQuestion(ctx, "creator-1", "c1", req)
	assert.ErrorIs(t, err, common.ErrValidation, "points must be a multiple of 10")

	req = validQuestion()
	req.Points = 0
	_, err = f.svc.AddQuestion(ctx, "creator-1", "c1", req)
	assert.ErrorIs(t, err, common.ErrValidation, "points start at 10")

	req = validQuestion()
	req.Difficulty = "impossible"
	_, err = f.svc.AddQuestion(ctx, "creator-1", "c1", req)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAddQuestionDefaultsDifficultyToMedium(t *testing.T) {
	f := newQuestionFixture(t)

	req := validQuestion()
	req.Difficulty = ""
	q, err := f.svc.AddQuestion(context.Background(), "creator-1", "c1", req)
	require.NoError(t, err)
	assert.Equal(t, model.DifficultyMedium, q.Difficulty)
}

func TestAddQuestionDropsEmptyTestCases(t *testing.T) {
	f := newQuestionFixture(t)

	req := validQuestion()
	req.TestCases = []model.TestCase{
		{Input: "1 2", ExpectedOutput: "3"},
		{Input: "  ", ExpectedOutput: ""},
		{Input: "", ExpectedOutput: "0"},
	}
	q, err := f.svc.AddQuestion(context.Background(), "creator-1", "c1", req)
	require.NoError(t, err)
	require.Len(t, q.TestCases, 2, "fully empty cases dropped, partial ones kept")
	assert.Equal(t, "0", q.TestCases[1].ExpectedOutput)
}

func TestListQuestionsVisibility(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddQuestion(ctx, "creator-1", "c1", validQuestion())
	require.NoError(t, err)

	// Unregistered user is refused.
	_, err = f.svc.ListQuestions(ctx, "u1", "c1")
	assert.ErrorIs(t, err, common.ErrForbidden)

	// Creator always sees their own questions.
	qs, err := f.svc.ListQuestions(ctx, "creator-1", "c1")
	require.NoError(t, err)
	assert.Len(t, qs, 1)

	// Registration opens visibility.
	registered, err := f.contests.ToggleRegistration(ctx, "c1", "u1")
	require.NoError(t, err)
	require.True(t, registered)

	qs, err = f.svc.ListQuestions(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Len(t, qs, 1)
}

func TestDeleteQuestion(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()

	q, err := f.svc.AddQuestion(ctx, "creator-1", "c1", validQuestion())
	require.NoError(t, err)

	err = f.svc.DeleteQuestion(ctx, "someone-else", q.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	require.NoError(t, f.svc.DeleteQuestion(ctx, "creator-1", q.ID))

	err = f.svc.DeleteQuestion(ctx, "creator-1", q.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
