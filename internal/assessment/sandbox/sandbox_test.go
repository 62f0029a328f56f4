package sandbox

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/praxis/internal/assessment/domain"
)

func newTestSandbox(t *testing.T, config Config) *Sandbox {
	t.Helper()
	s, err := New(config)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"zero timeout", Config{Timeout: 0, MemoryLimitBytes: 1024}, ErrInvalidTimeout},
		{"negative timeout", Config{Timeout: -time.Second, MemoryLimitBytes: 1024}, ErrInvalidTimeout},
		{"zero memory limit", Config{Timeout: time.Second, MemoryLimitBytes: 0}, ErrInvalidMemoryLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.config); !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExecuteSuccess(t *testing.T) {
	s := newTestSandbox(t, DefaultConfig())

	result := s.Execute(context.Background(), `print("hello")`, domain.LanguageLua, "")
	if result.Status != domain.ExecutionSuccess {
		t.Fatalf("Status = %v, want success (message %q)", result.Status, result.Message)
	}
	if result.Output != "hello\n" {
		t.Errorf("Output = %q, want %q", result.Output, "hello\n")
	}
	if result.Duration <= 0 {
		t.Errorf("Duration = %v, want positive", result.Duration)
	}
}

func TestExecutePrintFormatsLikeLua(t *testing.T) {
	s := newTestSandbox(t, DefaultConfig())

	result := s.Execute(context.Background(), `print(1, "two", true)`, domain.LanguageLua, "")
	if result.Status != domain.ExecutionSuccess {
		t.Fatalf("Status = %v, want success (message %q)", result.Status, result.Message)
	}
	if result.Output != "1\ttwo\ttrue\n" {
		t.Errorf("Output = %q, want tab-separated values", result.Output)
	}
}

func TestExecuteReadsInputLines(t *testing.T) {
	s := newTestSandbox(t, DefaultConfig())

	source := `
local a = read()
local b = read()
print(a .. " " .. b)
print(read())
`
	result := s.Execute(context.Background(), source, domain.LanguageLua, "first\nsecond")
	if result.Status != domain.ExecutionSuccess {
		t.Fatalf("Status = %v, want success (message %q)", result.Status, result.Message)
	}
	if result.Output != "first second\nnil\n" {
		t.Errorf("Output = %q, want both lines then nil", result.Output)
	}
}

func TestExecuteTimeout(t *testing.T) {
	config := DefaultConfig()
	config.Timeout = 100 * time.Millisecond
	config.HookInterval = 1000
	s := newTestSandbox(t, config)

	started := time.Now()
	result := s.Execute(context.Background(), `print("partial") while true do end`, domain.LanguageLua, "")
	elapsed := time.Since(started)

	if result.Status != domain.ExecutionTimeout {
		t.Fatalf("Status = %v, want timeout", result.Status)
	}
	if result.Output != "partial\n" {
		t.Errorf("Output = %q, want partial output preserved", result.Output)
	}
	// Cooperative preemption overshoots by at most a few hook intervals.
	if elapsed > 2*time.Second {
		t.Errorf("infinite loop aborted after %v, want bounded overshoot", elapsed)
	}
}

func TestExecuteContextCancellation(t *testing.T) {
	config := DefaultConfig()
	config.HookInterval = 1000
	s := newTestSandbox(t, config)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result := s.Execute(ctx, `while true do end`, domain.LanguageLua, "")
	if result.Status != domain.ExecutionTimeout {
		t.Errorf("Status = %v, want timeout on context cancellation", result.Status)
	}
}

func TestExecuteMemoryExceeded(t *testing.T) {
	config := DefaultConfig()
	config.MemoryLimitBytes = 8 * 1024 * 1024
	config.Timeout = 10 * time.Second
	config.HookInterval = 1000
	s := newTestSandbox(t, config)

	source := `
local t = {}
local i = 1
while true do
	t[i] = string.rep("x", 1024)
	i = i + 1
end
`
	result := s.Execute(context.Background(), source, domain.LanguageLua, "")
	if result.Status != domain.ExecutionMemoryExceeded {
		t.Fatalf("Status = %v, want memory_exceeded (message %q)", result.Status, result.Message)
	}
	if result.UsedBytes <= config.MemoryLimitBytes {
		t.Errorf("UsedBytes = %d, want above the %d limit", result.UsedBytes, config.MemoryLimitBytes)
	}
}

func TestExecuteRuntimeError(t *testing.T) {
	s := newTestSandbox(t, DefaultConfig())

	result := s.Execute(context.Background(), `error("boom")`, domain.LanguageLua, "")
	if result.Status != domain.ExecutionRuntimeError {
		t.Fatalf("Status = %v, want runtime_error", result.Status)
	}
	if !strings.Contains(result.Message, "boom") {
		t.Errorf("Message = %q, want the raised value", result.Message)
	}
	if result.Line != 1 {
		t.Errorf("Line = %d, want 1", result.Line)
	}
}

func TestExecuteSyntaxErrorCarriesLine(t *testing.T) {
	s := newTestSandbox(t, DefaultConfig())

	result := s.Execute(context.Background(), "print(1)\nif true then", domain.LanguageLua, "")
	if result.Status != domain.ExecutionRuntimeError {
		t.Fatalf("Status = %v, want runtime_error", result.Status)
	}
	if result.Line != 2 {
		t.Errorf("Line = %d, want 2 (message %q)", result.Line, result.Message)
	}
}

func TestExecuteNilArithmetic(t *testing.T) {
	s := newTestSandbox(t, DefaultConfig())

	result := s.Execute(context.Background(), `local x = nil + 1`, domain.LanguageLua, "")
	if result.Status != domain.ExecutionRuntimeError {
		t.Fatalf("Status = %v, want runtime_error", result.Status)
	}
	if !strings.Contains(result.Message, "nil") {
		t.Errorf("Message = %q, want a nil arithmetic diagnostic", result.Message)
	}
}

func TestExecuteIsolation(t *testing.T) {
	s := newTestSandbox(t, DefaultConfig())

	tests := []struct {
		name   string
		source string
	}{
		{"io removed", `io.write("x")`},
		{"os removed", `os.execute("ls")`},
		{"require removed", `require("socket")`},
		{"load removed", `load("print(1)")()`},
		{"dofile removed", `dofile("main.lua")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.Execute(context.Background(), tt.source, domain.LanguageLua, "")
			if result.Status != domain.ExecutionRuntimeError {
				t.Errorf("Status = %v, want runtime_error for stripped global", result.Status)
			}
		})
	}
}

func TestExecuteUnsupportedLanguage(t *testing.T) {
	s := newTestSandbox(t, DefaultConfig())

	for _, language := range []domain.Language{domain.LanguagePython, domain.LanguageRust, domain.LanguageJavaScript} {
		result := s.Execute(context.Background(), "print(1)", language, "")
		if result.Status != domain.ExecutionError {
			t.Errorf("%s: Status = %v, want error", language, result.Status)
		}
		if !strings.Contains(result.Message, "not supported") {
			t.Errorf("%s: Message = %q, want unsupported diagnostic", language, result.Message)
		}
	}
}

func TestExecuteOutputTruncated(t *testing.T) {
	config := DefaultConfig()
	config.MaxOutputBytes = 64
	s := newTestSandbox(t, config)

	result := s.Execute(context.Background(), `for i = 1, 1000 do print("line") end`, domain.LanguageLua, "")
	if result.Status != domain.ExecutionSuccess {
		t.Fatalf("Status = %v, want success", result.Status)
	}
	if len(result.Output) > 64 {
		t.Errorf("Output length = %d, want at most the configured limit", len(result.Output))
	}
}

func TestExecuteSubmissionClampsTimeout(t *testing.T) {
	config := DefaultConfig()
	config.Timeout = 10 * time.Second
	config.HookInterval = 1000
	s := newTestSandbox(t, config)

	started := time.Now()
	result := s.ExecuteSubmission(context.Background(), domain.Submission{
		Source:   `while true do end`,
		Language: domain.LanguageLua,
	}, "", 100*time.Millisecond)

	if result.Status != domain.ExecutionTimeout {
		t.Fatalf("Status = %v, want timeout", result.Status)
	}
	if elapsed := time.Since(started); elapsed > 2*time.Second {
		t.Errorf("per-case timeout took %v, want the tighter envelope", elapsed)
	}
}
