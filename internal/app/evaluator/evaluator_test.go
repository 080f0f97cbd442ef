package evaluator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Dishankaswal/CodeArena/internal/domain/model"
	"github.com/Dishankaswal/CodeArena/internal/platform/judge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner maps stdin to a canned result or error.
type fakeRunner struct {
	mu      sync.Mutex
	results map[string]*judge.Result
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) Execute(ctx context.Context, languageID, sourceCode, stdin string) (*judge.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, stdin)
	f.mu.Unlock()
	if err, ok := f.errs[stdin]; ok {
		return nil, err
	}
	if res, ok := f.results[stdin]; ok {
		return res, nil
	}
	return &judge.Result{Stdout: ""}, nil
}

func echoRunner(cases map[string]string) *fakeRunner {
	results := make(map[string]*judge.Result, len(cases))
	for stdin, stdout := range cases {
		results[stdin] = &judge.Result{Stdout: stdout}
	}
	return &fakeRunner{results: results}
}

func TestRunAll_AllPass(t *testing.T) {
	runner := echoRunner(map[string]string{"1": "2", "5": "10"})
	eval := New(runner, 1)

	results := eval.RunAll(context.Background(), "python", "code", []model.TestCase{
		{Input: "1", ExpectedOutput: "2"},
		{Input: "5", ExpectedOutput: "10"},
	})

	require.Len(t, results, 2)
	assert.True(t, results[0].Passed)
	assert.True(t, results[1].Passed)
	assert.Equal(t, "2/2 PASSED", Summary(results))
}

func TestRunAll_TrailingWhitespaceIsIgnored(t *testing.T) {
	runner := echoRunner(map[string]string{"x": "abc\n"})
	eval := New(runner, 1)

	results := eval.RunAll(context.Background(), "python", "code", []model.TestCase{
		{Input: "x", ExpectedOutput: "abc"},
	})

	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)
}

func TestRunAll_InternalWhitespaceIsSignificant(t *testing.T) {
	runner := echoRunner(map[string]string{"x": "a b"})
	eval := New(runner, 1)

	results := eval.RunAll(context.Background(), "python", "code", []model.TestCase{
		{Input: "x", ExpectedOutput: "ab"},
	})

	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Equal(t, "0/1 PASSED", Summary(results))
}

func TestRunAll_ExpectedOutputIsTrimmedToo(t *testing.T) {
	// Program prints "5", author declared "5\n": passes after trim.
	runner := echoRunner(map[string]string{"": "5"})
	eval := New(runner, 1)

	results := eval.RunAll(context.Background(), "python", "code", []model.TestCase{
		{Input: "", ExpectedOutput: "5\n"},
	})

	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)
}

func TestRunAll_PartialFailureContinues(t *testing.T) {
	runner := echoRunner(map[string]string{"1": "ok", "3": "ok"})
	runner.errs = map[string]error{"2": errors.New("judge unreachable")}
	eval := New(runner, 1)

	results := eval.RunAll(context.Background(), "python", "code", []model.TestCase{
		{Input: "1", ExpectedOutput: "ok"},
		{Input: "2", ExpectedOutput: "ok"},
		{Input: "3", ExpectedOutput: "ok"},
	})

	require.Len(t, results, 3)
	assert.True(t, results[0].Passed)
	assert.False(t, results[1].Passed)
	assert.Equal(t, "", results[1].ActualOutput)
	assert.NotEmpty(t, results[1].Error)
	assert.True(t, results[2].Passed)
	assert.Equal(t, "2/3 PASSED", Summary(results))
}

func TestRunAll_SequentialOrdering(t *testing.T) {
	cases := make([]model.TestCase, 5)
	outputs := map[string]string{}
	for i := range cases {
		in := fmt.Sprintf("in-%d", i)
		cases[i] = model.TestCase{Input: in, ExpectedOutput: "out"}
		outputs[in] = "out"
	}
	runner := echoRunner(outputs)
	eval := New(runner, 1)

	results := eval.RunAll(context.Background(), "python", "code", cases)

	require.Len(t, results, 5)
	// With max-in-flight 1 the judge sees the cases in declaration order.
	assert.Equal(t, []string{"in-0", "in-1", "in-2", "in-3", "in-4"}, runner.calls)
	for i, r := range results {
		assert.Equal(t, i+1, r.TestCase)
		assert.Equal(t, cases[i].Input, r.Input)
	}
}

func TestRunAll_ResultsOrderedUnderConcurrency(t *testing.T) {
	cases := make([]model.TestCase, 8)
	outputs := map[string]string{}
	for i := range cases {
		in := fmt.Sprintf("in-%d", i)
		cases[i] = model.TestCase{Input: in, ExpectedOutput: in}
		outputs[in] = in
	}
	runner := echoRunner(outputs)
	eval := New(runner, 4)

	results := eval.RunAll(context.Background(), "python", "code", cases)

	require.Len(t, results, 8)
	for i, r := range results {
		assert.Equal(t, i+1, r.TestCase)
		assert.Equal(t, cases[i].Input, r.Input)
		assert.True(t, r.Passed)
	}
}

func TestRunAll_Idempotent(t *testing.T) {
	runner := echoRunner(map[string]string{"1": "yes", "2": "no"})
	eval := New(runner, 1)
	cases := []model.TestCase{
		{Input: "1", ExpectedOutput: "yes"},
		{Input: "2", ExpectedOutput: "maybe"},
	}

	first := eval.RunAll(context.Background(), "python", "code", cases)
	second := eval.RunAll(context.Background(), "python", "code", cases)

	assert.Equal(t, first, second)
}

func TestRunAll_CancelledContextMarksRemaining(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	eval := New(echoRunner(nil), 1)

	results := eval.RunAll(ctx, "python", "code", []model.TestCase{
		{Input: "1", ExpectedOutput: "x"},
		{Input: "2", ExpectedOutput: "y"},
	})

	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Passed)
		assert.NotEmpty(t, r.Error)
	}
}

func TestRunAll_StderrRecordedWithoutFailingComparison(t *testing.T) {
	runner := &fakeRunner{results: map[string]*judge.Result{
		"x": {Stdout: "ok", Stderr: "warning: deprecated"},
	}}
	eval := New(runner, 1)

	results := eval.RunAll(context.Background(), "python", "code", []model.TestCase{
		{Input: "x", ExpectedOutput: "ok"},
	})

	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)
	assert.Equal(t, "warning: deprecated", results[0].Error)
}

func TestSummary_Empty(t *testing.T) {
	assert.Equal(t, "0/0 PASSED", Summary(nil))
}
