// Package feedback turns raw execution failures into actionable guidance.
//
// Classification is a deterministic lookup over per-language diagnostic
// patterns; there is no learning layer here. Unknown diagnostics fall back
// to a generic explanation carrying the raw message.
package feedback

import (
	"fmt"
	"strings"

	"github.com/louisbranch/praxis/internal/assessment/domain"
)

// Category is the defect class of an execution failure.
type Category int

const (
	// CategoryUnknown covers diagnostics no pattern matched.
	CategoryUnknown Category = iota
	// CategorySyntax is a parse failure.
	CategorySyntax
	// CategoryTypeMismatch is an operation on a value of the wrong type.
	CategoryTypeMismatch
	// CategoryNotFound is a reference to an undefined name.
	CategoryNotFound
	// CategoryBorrowChecker is a Rust ownership/borrowing defect.
	CategoryBorrowChecker
	// CategoryRuntime is any other fault while running.
	CategoryRuntime
	// CategoryTimeout is a wall-clock budget exhaustion.
	CategoryTimeout
	// CategoryMemoryExceeded is a memory budget exhaustion.
	CategoryMemoryExceeded
)

// String returns the category's wire name.
func (c Category) String() string {
	switch c {
	case CategorySyntax:
		return "syntax_error"
	case CategoryTypeMismatch:
		return "type_mismatch"
	case CategoryNotFound:
		return "not_found"
	case CategoryBorrowChecker:
		return "borrow_checker"
	case CategoryRuntime:
		return "runtime_error"
	case CategoryTimeout:
		return "timeout"
	case CategoryMemoryExceeded:
		return "memory_exceeded"
	default:
		return "unknown"
	}
}

// Explanation is structured, human-actionable feedback for one failure.
type Explanation struct {
	Category   Category
	Summary    string
	Detail     string
	Suggestion string
	Concepts   []string
}

// matcher reports whether a lowercased diagnostic matches a pattern rule.
type matcher func(lower string) bool

func contains(substring string) matcher {
	return func(lower string) bool { return strings.Contains(lower, substring) }
}

func containsAll(substrings ...string) matcher {
	return func(lower string) bool {
		for _, s := range substrings {
			if !strings.Contains(lower, s) {
				return false
			}
		}
		return true
	}
}

func anyOf(matchers ...matcher) matcher {
	return func(lower string) bool {
		for _, m := range matchers {
			if m(lower) {
				return true
			}
		}
		return false
	}
}

type rule struct {
	match   matcher
	explain Explanation
}

// Lua rules match the sandbox VM's native diagnostics.
var luaRules = []rule{
	{
		match: anyOf(contains("syntax error"), contains("unexpected symbol"), contains("'end' expected"), contains("malformed number")),
		explain: Explanation{
			Category:   CategorySyntax,
			Summary:    "Syntax error",
			Detail:     "The program could not be parsed; Lua found a construct it does not understand.",
			Suggestion: "Check the reported line for missing 'end', unbalanced parentheses, or a mistyped keyword.",
			Concepts:   []string{"Syntax", "Blocks"},
		},
	},
	{
		match: contains("attempt to perform arithmetic"),
		explain: Explanation{
			Category:   CategoryTypeMismatch,
			Summary:    "Arithmetic on a non-number",
			Detail:     "An arithmetic operator was applied to a value that is not a number, often a nil variable.",
			Suggestion: "Make sure the variable is assigned a number before using it. tonumber() converts strings.",
			Concepts:   []string{"Types", "nil", "Coercion"},
		},
	},
	{
		match: contains("attempt to concatenate"),
		explain: Explanation{
			Category:   CategoryTypeMismatch,
			Summary:    "Concatenation of a non-string",
			Detail:     "The .. operator needs strings or numbers on both sides.",
			Suggestion: "Convert the value with tostring() before concatenating.",
			Concepts:   []string{"Strings", "Coercion"},
		},
	},
	{
		match: contains("attempt to call"),
		explain: Explanation{
			Category:   CategoryNotFound,
			Summary:    "Call of a non-function",
			Detail:     "Something that is not a function was called, usually because the name is undefined or misspelled.",
			Suggestion: "Check the function name for typos and confirm it is defined before the call site.",
			Concepts:   []string{"Functions", "Scope"},
		},
	},
	{
		match: contains("attempt to index"),
		explain: Explanation{
			Category:   CategoryRuntime,
			Summary:    "Index into a nil value",
			Detail:     "A field or element was read from a value that is nil instead of a table.",
			Suggestion: "Initialize the table before indexing it and check intermediate fields on nested accesses.",
			Concepts:   []string{"Tables", "nil"},
		},
	},
	{
		match: contains("attempt to compare"),
		explain: Explanation{
			Category:   CategoryTypeMismatch,
			Summary:    "Comparison of mismatched types",
			Detail:     "Relational operators require both operands to share a comparable type.",
			Suggestion: "Convert both sides to the same type before comparing.",
			Concepts:   []string{"Types", "Operators"},
		},
	},
	{
		match: contains("stack overflow"),
		explain: Explanation{
			Category:   CategoryRuntime,
			Summary:    "Stack overflow",
			Detail:     "Recursion went too deep, usually from a missing base case.",
			Suggestion: "Add or fix the base case that stops the recursion.",
			Concepts:   []string{"Recursion"},
		},
	},
}

var rustRules = []rule{
	{
		match: contains("cannot borrow"),
		explain: Explanation{
			Category:   CategoryBorrowChecker,
			Summary:    "Borrow checker error",
			Detail:     "Rust's borrow checker prevents data races by ensuring references follow ownership rules.",
			Suggestion: "Consider using .clone() to create an owned copy, or restructure your code to avoid overlapping borrows.",
			Concepts:   []string{"Ownership", "Borrowing", "Lifetimes"},
		},
	},
	{
		match: anyOf(contains("type mismatch"), containsAll("expected", "found")),
		explain: Explanation{
			Category:   CategoryTypeMismatch,
			Summary:    "Type mismatch error",
			Detail:     "The types don't match what the function or operation expects.",
			Suggestion: "Check the function signature and ensure you're passing the correct types. You may need type conversion.",
			Concepts:   []string{"Type System", "Type Inference"},
		},
	},
	{
		match: anyOf(contains("cannot find"), contains("not found")),
		explain: Explanation{
			Category:   CategoryNotFound,
			Summary:    "Item not found",
			Detail:     "The compiler cannot find the variable, function, or type you're referencing.",
			Suggestion: "Check for typos in the name. Ensure the item is in scope or properly imported.",
			Concepts:   []string{"Scope", "Modules", "use statements"},
		},
	},
	{
		match: contains("overflow"),
		explain: Explanation{
			Category:   CategoryRuntime,
			Summary:    "Arithmetic overflow",
			Detail:     "The calculation resulted in a value too large or too small for the data type.",
			Suggestion: "Consider using checked arithmetic methods like checked_add() or a larger integer type.",
			Concepts:   []string{"Integer Types", "Overflow"},
		},
	},
	{
		match: contains("index out of bounds"),
		explain: Explanation{
			Category:   CategoryRuntime,
			Summary:    "Index out of bounds",
			Detail:     "You tried to access an element at an index that doesn't exist in the collection.",
			Suggestion: "Check the length of the collection before accessing. Consider using .get() which returns Option.",
			Concepts:   []string{"Arrays", "Vectors", "Option"},
		},
	},
	{
		match: contains("unwrap"),
		explain: Explanation{
			Category:   CategoryRuntime,
			Summary:    "Unwrap on None/Err",
			Detail:     "Called unwrap() on a None or Err value, which causes a panic.",
			Suggestion: "Use pattern matching, if let, or ? operator instead of unwrap() for proper error handling.",
			Concepts:   []string{"Option", "Result", "Error Handling"},
		},
	},
}

var pythonRules = []rule{
	{
		match: contains("indentationerror"),
		explain: Explanation{
			Category:   CategorySyntax,
			Summary:    "Indentation error",
			Detail:     "Python uses indentation to define code blocks. Your indentation is inconsistent.",
			Suggestion: "Use consistent indentation (4 spaces recommended). Don't mix tabs and spaces.",
			Concepts:   []string{"Code Blocks", "Syntax"},
		},
	},
	{
		match: contains("nameerror"),
		explain: Explanation{
			Category:   CategoryNotFound,
			Summary:    "Name not defined",
			Detail:     "You're using a variable or function that hasn't been defined yet.",
			Suggestion: "Check for typos. Make sure the variable is defined before you use it.",
			Concepts:   []string{"Variables", "Scope"},
		},
	},
	{
		match: contains("typeerror"),
		explain: Explanation{
			Category:   CategoryTypeMismatch,
			Summary:    "Type error",
			Detail:     "An operation was applied to an object of inappropriate type.",
			Suggestion: "Check the types of your variables. You may need to convert between types.",
			Concepts:   []string{"Types", "Type Conversion"},
		},
	},
	{
		match: contains("indexerror"),
		explain: Explanation{
			Category:   CategoryRuntime,
			Summary:    "Index out of range",
			Detail:     "You tried to access a list index that doesn't exist.",
			Suggestion: "Check len() before accessing. Remember Python uses 0-based indexing.",
			Concepts:   []string{"Lists", "Indexing"},
		},
	},
	{
		match: contains("keyerror"),
		explain: Explanation{
			Category:   CategoryRuntime,
			Summary:    "Key not found",
			Detail:     "The dictionary key you're looking for doesn't exist.",
			Suggestion: "Use .get() method which returns None for missing keys, or check with 'in' operator first.",
			Concepts:   []string{"Dictionaries", "Keys"},
		},
	},
	{
		match: contains("zerodivisionerror"),
		explain: Explanation{
			Category:   CategoryRuntime,
			Summary:    "Division by zero",
			Detail:     "You attempted to divide a number by zero.",
			Suggestion: "Add a check before division to ensure the divisor is not zero.",
			Concepts:   []string{"Arithmetic", "Error Handling"},
		},
	},
}

var rulesByLanguage = map[domain.Language][]rule{
	domain.LanguageLua:    luaRules,
	domain.LanguageRust:   rustRules,
	domain.LanguagePython: pythonRules,
}

// Explain classifies an error diagnostic for a language.
func Explain(message string, language domain.Language) Explanation {
	lower := strings.ToLower(message)
	for _, r := range rulesByLanguage[language] {
		if r.match(lower) {
			return r.explain
		}
	}
	return generic(message)
}

// ExplainResult classifies a full execution outcome, covering resource
// exhaustion alongside runtime diagnostics. Successful results yield the
// zero Explanation.
func ExplainResult(result domain.ExecutionResult, language domain.Language) Explanation {
	switch result.Status {
	case domain.ExecutionTimeout:
		return Explanation{
			Category:   CategoryTimeout,
			Summary:    "Execution timed out",
			Detail:     "The program did not finish within its time budget.",
			Suggestion: "Look for loops that never terminate and make sure every loop makes progress toward its exit condition.",
			Concepts:   []string{"Loops", "Termination"},
		}
	case domain.ExecutionMemoryExceeded:
		return Explanation{
			Category:   CategoryMemoryExceeded,
			Summary:    "Memory limit exceeded",
			Detail:     "The program allocated more memory than its budget allows.",
			Suggestion: "Avoid building unbounded collections; process the input incrementally instead of storing it all.",
			Concepts:   []string{"Memory", "Collections"},
		}
	case domain.ExecutionRuntimeError, domain.ExecutionError:
		return Explain(result.Message, language)
	default:
		return Explanation{}
	}
}

func generic(message string) Explanation {
	return Explanation{
		Category:   CategoryUnknown,
		Summary:    "Error occurred",
		Detail:     message,
		Suggestion: "Review your code and check for common mistakes.",
	}
}

// Difference tags the kind of mismatch between expected and actual output.
type Difference int

const (
	// DifferenceNone means the outputs match.
	DifferenceNone Difference = iota
	// DifferenceWhitespace means only spacing differs.
	DifferenceWhitespace
	// DifferenceCase means only letter case differs.
	DifferenceCase
	// DifferenceLineCount means the outputs have different line counts.
	DifferenceLineCount
	// DifferenceContent means the content itself differs.
	DifferenceContent
)

// OutputComparison is the diagnosis of an expected/actual output mismatch.
type OutputComparison struct {
	Matches    bool
	Difference Difference
	Hint       string
}

// CompareOutputs diagnoses why an actual output differs from the expected
// one, from most to least specific cause. Leading and trailing whitespace
// around the whole output is ignored.
func CompareOutputs(expected, actual string) OutputComparison {
	want := strings.TrimSpace(expected)
	got := strings.TrimSpace(actual)

	if want == got {
		return OutputComparison{Matches: true, Difference: DifferenceNone}
	}

	if strings.ReplaceAll(want, " ", "") == strings.ReplaceAll(got, " ", "") {
		return OutputComparison{
			Difference: DifferenceWhitespace,
			Hint:       "Check your spacing - the content is correct but whitespace differs.",
		}
	}

	if strings.EqualFold(want, got) {
		return OutputComparison{
			Difference: DifferenceCase,
			Hint:       "Check capitalization - the content matches but case differs.",
		}
	}

	wantLines := strings.Split(want, "\n")
	gotLines := strings.Split(got, "\n")
	if len(wantLines) != len(gotLines) {
		return OutputComparison{
			Difference: DifferenceLineCount,
			Hint:       fmt.Sprintf("Expected %d lines but got %d.", len(wantLines), len(gotLines)),
		}
	}

	for i := range wantLines {
		if wantLines[i] != gotLines[i] {
			return OutputComparison{
				Difference: DifferenceContent,
				Hint:       fmt.Sprintf("Line %d differs: expected '%s', got '%s'", i+1, wantLines[i], gotLines[i]),
			}
		}
	}

	return OutputComparison{Difference: DifferenceContent}
}
