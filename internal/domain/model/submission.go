package model

// CaseResult is the outcome of running submitted code against one test case.
// Results are ephemeral: returned to the caller, never persisted.
type CaseResult struct {
	TestCase       int    `json:"test_case"` // 1-based position
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	ActualOutput   string `json:"actual_output"`
	Passed         bool   `json:"passed"`
	Error          string `json:"error,omitempty"`
}
