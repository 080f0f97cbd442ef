package evaluator

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/Dishankaswal/CodeArena/internal/domain/model"
	"github.com/Dishankaswal/CodeArena/internal/platform/judge"

	"golang.org/x/sync/semaphore"
)

// Runner abstracts the remote judge so tests can substitute a fake.
type Runner interface {
	Execute(ctx context.Context, languageID, sourceCode, stdin string) (*judge.Result, error)
}

// Evaluator runs submitted code against declared test cases. In-flight judge
// calls are capped by maxInFlight; the default of 1 keeps the batch strictly
// sequential so the remote judge is never flooded. One case failing, on the
// judge side or on the wire, never aborts the rest of the batch.
type Evaluator struct {
	judge       Runner
	maxInFlight int64
}

func New(runner Runner, maxInFlight int) *Evaluator {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Evaluator{judge: runner, maxInFlight: int64(maxInFlight)}
}

// RunAll evaluates every test case and returns one result per case, in input
// order regardless of the concurrency setting.
func (e *Evaluator) RunAll(ctx context.Context, languageID, sourceCode string, cases []model.TestCase) []model.CaseResult {
	results := make([]model.CaseResult, len(cases))
	sem := semaphore.NewWeighted(e.maxInFlight)
	var wg sync.WaitGroup

	for i, tc := range cases {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled mid-batch: mark the remaining cases failed.
			for j := i; j < len(cases); j++ {
				results[j] = model.CaseResult{
					TestCase:       j + 1,
					Input:          cases[j].Input,
					ExpectedOutput: strings.TrimSpace(cases[j].ExpectedOutput),
					Passed:         false,
					Error:          err.Error(),
				}
			}
			break
		}
		wg.Add(1)
		go func(i int, tc model.TestCase) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = e.runCase(ctx, i+1, languageID, sourceCode, tc)
		}(i, tc)
	}

	wg.Wait()
	return results
}

func (e *Evaluator) runCase(ctx context.Context, number int, languageID, sourceCode string, tc model.TestCase) model.CaseResult {
	expected := strings.TrimSpace(tc.ExpectedOutput)

	res, err := e.judge.Execute(ctx, languageID, sourceCode, tc.Input)
	if err != nil {
		log.Printf("ERROR: judge call failed for test case %d: %v", number, err)
		return model.CaseResult{
			TestCase:       number,
			Input:          tc.Input,
			ExpectedOutput: expected,
			ActualOutput:   "",
			Passed:         false,
			Error:          err.Error(),
		}
	}

	actual := strings.TrimSpace(res.Stdout)
	result := model.CaseResult{
		TestCase:       number,
		Input:          tc.Input,
		ExpectedOutput: expected,
		ActualOutput:   actual,
		Passed:         actual == expected,
	}
	if res.Stderr != "" {
		result.Error = res.Stderr
	}
	return result
}

// Summary renders the aggregate line for a finished batch.
func Summary(results []model.CaseResult) string {
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	return fmt.Sprintf("%d/%d PASSED", passed, len(results))
}
