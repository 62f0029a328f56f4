// Package runner drives the sandbox across a lab's test suite and
// aggregates the per-case outcomes into a suite result and a score.
package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/praxis/internal/assessment/domain"
	"github.com/louisbranch/praxis/internal/assessment/sandbox"
)

const tracerName = "github.com/louisbranch/praxis/internal/assessment/runner"

// Executor runs one submission against one test case's input. Satisfied by
// sandbox.Sandbox.
type Executor interface {
	ExecuteSubmission(ctx context.Context, submission domain.Submission, input string, timeout time.Duration) domain.ExecutionResult
}

// ComparePolicy controls how actual output is matched against expected
// output. Trailing whitespace on each line and a trailing newline are always
// ignored.
type ComparePolicy struct {
	CaseInsensitive bool
}

// Runner executes test suites.
type Runner struct {
	executor Executor
	policy   ComparePolicy
	tracer   trace.Tracer
}

// Option configures a Runner.
type Option func(*Runner)

// WithComparePolicy overrides the output comparison policy.
func WithComparePolicy(policy ComparePolicy) Option {
	return func(r *Runner) { r.policy = policy }
}

// New builds a Runner over an executor.
func New(executor Executor, opts ...Option) *Runner {
	r := &Runner{
		executor: executor,
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunSuite executes every test case in order and aggregates the results.
// Case failures are data, not errors; the error return is reserved for a
// missing executor and context cancellation between cases.
func (r *Runner) RunSuite(ctx context.Context, submission domain.Submission, suite domain.TestSuite) (domain.SuiteResults, error) {
	if r.executor == nil {
		return domain.SuiteResults{}, fmt.Errorf("executor is required")
	}

	ctx, span := r.tracer.Start(ctx, "runner.RunSuite", trace.WithAttributes(
		attribute.String("submission.language", string(submission.Language)),
		attribute.Int("suite.test_count", suite.TestCount()),
	))
	defer span.End()

	results := make([]domain.TestResult, 0, suite.TestCount())
	passed := 0
	for _, test := range suite.Tests {
		if err := ctx.Err(); err != nil {
			return domain.SuiteResults{}, fmt.Errorf("run suite: %w", err)
		}
		result := r.runCase(ctx, submission, test)
		if result.Passed {
			passed++
		}
		results = append(results, result)
	}

	aggregate := domain.SuiteResults{
		Results:     results,
		AllPassed:   passed == len(results) && len(results) > 0,
		PassedCount: passed,
		TotalCount:  len(results),
	}
	span.SetAttributes(
		attribute.Int("suite.passed_count", aggregate.PassedCount),
		attribute.Bool("suite.all_passed", aggregate.AllPassed),
	)
	return aggregate, nil
}

func (r *Runner) runCase(ctx context.Context, submission domain.Submission, test domain.TestCase) domain.TestResult {
	ctx, span := r.tracer.Start(ctx, "runner.runCase", trace.WithAttributes(
		attribute.String("test.name", test.Name),
	))
	defer span.End()

	timeout := time.Duration(test.TimeoutMs) * time.Millisecond
	execution := r.executor.ExecuteSubmission(ctx, submission, test.Input, timeout)
	span.SetAttributes(attribute.String("execution.status", execution.Status.String()))

	result := domain.TestResult{
		Name:     test.Name,
		Expected: test.ExpectedOutput,
	}

	switch execution.Status {
	case domain.ExecutionSuccess:
		duration := execution.Duration
		result.Duration = &duration
		result.Actual = execution.Output
		result.Passed = r.outputsMatch(test.ExpectedOutput, execution.Output)
		if !result.Passed {
			result.Error = "Output mismatch"
		}
	case domain.ExecutionTimeout:
		result.Actual = execution.Output
		result.Error = "Execution timed out"
	case domain.ExecutionMemoryExceeded:
		result.Error = "Memory limit exceeded"
	case domain.ExecutionRuntimeError:
		result.Error = execution.Message
	default:
		result.Error = execution.Message
	}
	return result
}

func (r *Runner) outputsMatch(expected, actual string) bool {
	want := normalizeOutput(expected)
	got := normalizeOutput(actual)
	if r.policy.CaseInsensitive {
		return strings.EqualFold(want, got)
	}
	return want == got
}

// normalizeOutput trims trailing whitespace per line and the trailing
// newline so formatting noise does not fail a correct program.
func normalizeOutput(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.Join(lines, "\n")
}

// Score converts suite results into earned points for a lab. Proportional
// labs earn points per passing test; RequireAllPass labs are all or nothing.
func Score(lab domain.Lab, results domain.SuiteResults) int {
	if results.TotalCount == 0 {
		return 0
	}
	if lab.RequireAllPass {
		if results.AllPassed {
			return lab.Points
		}
		return 0
	}
	return lab.Points * results.PassedCount / results.TotalCount
}

var _ Executor = (*sandbox.Sandbox)(nil)
