package model

import "time"

type QuestionDifficulty string

const (
	DifficultyEasy   QuestionDifficulty = "easy"
	DifficultyMedium QuestionDifficulty = "medium"
	DifficultyHard   QuestionDifficulty = "hard"
)

// Question belongs to exactly one contest. OrderIndex defines stable display
// order, assigned as the question count at insertion time; there is no
// reordering or update operation.
type Question struct {
	ID          string             `json:"id"`
	ContestID   string             `json:"contest_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"` // HTML
	Difficulty  QuestionDifficulty `json:"difficulty"`
	Points      int                `json:"points"`
	OrderIndex  int                `json:"order_index"`
	TestCases   []TestCase         `json:"test_cases,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"output"`
}
