package feedback

import (
	"strings"
	"testing"

	"github.com/louisbranch/praxis/internal/assessment/domain"
)

func TestExplainLua(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		category Category
	}{
		{"syntax", `[string "if true then"]:2: 'end' expected near '<eof>'`, CategorySyntax},
		{"nil arithmetic", `[string "..."]:1: attempt to perform arithmetic on a nil value`, CategoryTypeMismatch},
		{"concatenation", `attempt to concatenate a nil value (local 'name')`, CategoryTypeMismatch},
		{"call nil", `attempt to call a nil value (global 'pritn')`, CategoryNotFound},
		{"index nil", `attempt to index a nil value (field 'config')`, CategoryRuntime},
		{"compare", `attempt to compare number with string`, CategoryTypeMismatch},
		{"stack overflow", `stack overflow`, CategoryRuntime},
		{"unmatched", `some novel diagnostic`, CategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			explanation := Explain(tt.message, domain.LanguageLua)
			if explanation.Category != tt.category {
				t.Errorf("Category = %v, want %v", explanation.Category, tt.category)
			}
			if explanation.Summary == "" || explanation.Suggestion == "" {
				t.Error("explanation should carry a summary and a suggestion")
			}
		})
	}
}

func TestExplainRust(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		category Category
	}{
		{"borrow checker", "cannot borrow `x` as mutable because it is also borrowed as immutable", CategoryBorrowChecker},
		{"type mismatch", "expected `i32`, found `&str`", CategoryTypeMismatch},
		{"not found", "cannot find value `foo` in this scope", CategoryNotFound},
		{"overflow", "attempt to add with overflow", CategoryRuntime},
		{"out of bounds", "index out of bounds: the len is 3 but the index is 5", CategoryRuntime},
		{"unwrap", "called `Option::unwrap()` on a `None` value", CategoryRuntime},
		{"unknown", "some unknown error", CategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			explanation := Explain(tt.message, domain.LanguageRust)
			if explanation.Category != tt.category {
				t.Errorf("Category = %v, want %v", explanation.Category, tt.category)
			}
		})
	}
}

func TestExplainRustBorrowSuggestsClone(t *testing.T) {
	explanation := Explain("cannot borrow `v` as mutable", domain.LanguageRust)
	if !strings.Contains(explanation.Suggestion, "clone") {
		t.Errorf("Suggestion = %q, want a clone hint", explanation.Suggestion)
	}
}

func TestExplainPython(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		category Category
	}{
		{"indentation", "IndentationError: unexpected indent", CategorySyntax},
		{"name error", "NameError: name 'foo' is not defined", CategoryNotFound},
		{"type error", "TypeError: unsupported operand type(s) for +: 'int' and 'str'", CategoryTypeMismatch},
		{"index error", "IndexError: list index out of range", CategoryRuntime},
		{"key error", "KeyError: 'missing_key'", CategoryRuntime},
		{"zero division", "ZeroDivisionError: division by zero", CategoryRuntime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			explanation := Explain(tt.message, domain.LanguagePython)
			if explanation.Category != tt.category {
				t.Errorf("Category = %v, want %v", explanation.Category, tt.category)
			}
		})
	}
}

func TestExplainUnknownLanguageFallsBack(t *testing.T) {
	explanation := Explain("TypeError: x is not a function", domain.LanguageJavaScript)
	if explanation.Category != CategoryUnknown {
		t.Errorf("Category = %v, want unknown for a language without rules", explanation.Category)
	}
	if explanation.Detail != "TypeError: x is not a function" {
		t.Errorf("Detail = %q, want the raw diagnostic preserved", explanation.Detail)
	}
}

func TestExplainResult(t *testing.T) {
	timeout := ExplainResult(domain.NewTimeout(""), domain.LanguageLua)
	if timeout.Category != CategoryTimeout {
		t.Errorf("timeout Category = %v, want timeout", timeout.Category)
	}

	memory := ExplainResult(domain.NewMemoryExceeded(1 << 26), domain.LanguageLua)
	if memory.Category != CategoryMemoryExceeded {
		t.Errorf("memory Category = %v, want memory_exceeded", memory.Category)
	}

	fault := ExplainResult(domain.NewRuntimeError("attempt to call a nil value", 3), domain.LanguageLua)
	if fault.Category != CategoryNotFound {
		t.Errorf("runtime Category = %v, want not_found", fault.Category)
	}

	success := ExplainResult(domain.NewSuccess("ok", 0), domain.LanguageLua)
	if success.Category != CategoryUnknown || success.Summary != "" {
		t.Errorf("success explanation = %+v, want zero value", success)
	}
}

func TestCompareOutputs(t *testing.T) {
	tests := []struct {
		name       string
		expected   string
		actual     string
		matches    bool
		difference Difference
		hintPart   string
	}{
		{"match", "hello world", "hello world", true, DifferenceNone, ""},
		{"surrounding whitespace ignored", "  hello  ", "hello", true, DifferenceNone, ""},
		{"whitespace", "hello world", "hello  world", false, DifferenceWhitespace, "spacing"},
		{"case", "Hello World", "hello world", false, DifferenceCase, "capitalization"},
		{"line count", "line1\nline2", "line1", false, DifferenceLineCount, "2 lines"},
		{"content", "hello", "world", false, DifferenceContent, "Line 1 differs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CompareOutputs(tt.expected, tt.actual)
			if result.Matches != tt.matches {
				t.Errorf("Matches = %v, want %v", result.Matches, tt.matches)
			}
			if result.Difference != tt.difference {
				t.Errorf("Difference = %v, want %v", result.Difference, tt.difference)
			}
			if tt.hintPart != "" && !strings.Contains(result.Hint, tt.hintPart) {
				t.Errorf("Hint = %q, want it to mention %q", result.Hint, tt.hintPart)
			}
		})
	}
}
