package domain

import (
	"fmt"
	"strings"
	"time"
)

// ExecutionStatus tags an ExecutionResult. Exactly one tag is active.
type ExecutionStatus int

const (
	// ExecutionUnspecified represents a missing status value.
	ExecutionUnspecified ExecutionStatus = iota
	// ExecutionSuccess means the program ran to completion.
	ExecutionSuccess
	// ExecutionRuntimeError means the submitted program faulted or failed
	// to parse.
	ExecutionRuntimeError
	// ExecutionTimeout means the time budget was exhausted.
	ExecutionTimeout
	// ExecutionMemoryExceeded means the memory budget was exhausted.
	ExecutionMemoryExceeded
	// ExecutionError means the sandbox itself could not run the submission
	// (unsupported language, internal failure).
	ExecutionError
)

// String returns the wire name of the status.
func (s ExecutionStatus) String() string {
	switch s {
	case ExecutionSuccess:
		return "success"
	case ExecutionRuntimeError:
		return "runtime_error"
	case ExecutionTimeout:
		return "timeout"
	case ExecutionMemoryExceeded:
		return "memory_exceeded"
	case ExecutionError:
		return "error"
	default:
		return "unspecified"
	}
}

// ExecutionResult is the classified outcome of one sandboxed execution.
// Resource exhaustion (Timeout, MemoryExceeded) is kept apart from
// RuntimeError because it is not a logical defect in the learner's program
// and is reported with different language.
type ExecutionResult struct {
	Status ExecutionStatus
	// Output holds captured standard output on Success and any partial
	// output on Timeout.
	Output   string
	Duration time.Duration
	// Message holds the diagnostic for RuntimeError and Error.
	Message string
	// Line is the 1-based source line of a RuntimeError when determinable,
	// zero otherwise.
	Line int
	// UsedBytes reports observed memory growth for MemoryExceeded.
	UsedBytes int64
}

// NewSuccess builds a successful execution result.
func NewSuccess(output string, duration time.Duration) ExecutionResult {
	return ExecutionResult{Status: ExecutionSuccess, Output: output, Duration: duration}
}

// NewRuntimeError builds a runtime-error result. Line zero means unknown.
func NewRuntimeError(message string, line int) ExecutionResult {
	return ExecutionResult{Status: ExecutionRuntimeError, Message: message, Line: line}
}

// NewTimeout builds a timeout result carrying partial output.
func NewTimeout(partialOutput string) ExecutionResult {
	return ExecutionResult{Status: ExecutionTimeout, Output: partialOutput}
}

// NewMemoryExceeded builds a memory-exhaustion result.
func NewMemoryExceeded(usedBytes int64) ExecutionResult {
	return ExecutionResult{Status: ExecutionMemoryExceeded, UsedBytes: usedBytes}
}

// NewExecutionError builds a sandbox-failure result.
func NewExecutionError(message string) ExecutionResult {
	return ExecutionResult{Status: ExecutionError, Message: message}
}

// IsSuccess reports whether the execution completed.
func (r ExecutionResult) IsSuccess() bool {
	return r.Status == ExecutionSuccess
}

// ErrorMessage returns the diagnostic for RuntimeError and Error results.
func (r ExecutionResult) ErrorMessage() string {
	switch r.Status {
	case ExecutionRuntimeError, ExecutionError:
		return r.Message
	default:
		return ""
	}
}

// TestResult is the classified outcome of one test case run.
type TestResult struct {
	Name     string
	Passed   bool
	Expected string
	Actual   string
	// Duration is set when the execution completed; nil otherwise.
	Duration *time.Duration
	// Error carries a tag-specific message for non-success executions.
	Error string
}

// Failed reports whether the test did not pass.
func (r TestResult) Failed() bool {
	return !r.Passed
}

// Summary returns a one-line human-readable result.
func (r TestResult) Summary() string {
	if r.Passed {
		return fmt.Sprintf("PASS %s", r.Name)
	}
	if r.Error != "" {
		return fmt.Sprintf("FAIL %s: %s", r.Name, r.Error)
	}
	return fmt.Sprintf("FAIL %s: expected %q, got %q", r.Name, r.Expected, r.Actual)
}

// SuiteResults aggregates the test results of one submission run.
type SuiteResults struct {
	Results     []TestResult
	AllPassed   bool
	PassedCount int
	TotalCount  int
}

// PassRate returns the fraction of tests passed in [0, 1].
func (s SuiteResults) PassRate() float64 {
	if s.TotalCount == 0 {
		return 0
	}
	return float64(s.PassedCount) / float64(s.TotalCount)
}

// FailedTests returns the results that did not pass.
func (s SuiteResults) FailedTests() []TestResult {
	var failed []TestResult
	for _, result := range s.Results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}

// Summary returns a one-line human-readable suite result.
func (s SuiteResults) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d tests passed", s.PassedCount, s.TotalCount)
	fmt.Fprintf(&b, " (%d%%)", int(s.PassRate()*100))
	return b.String()
}
