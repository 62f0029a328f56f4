package grader

import (
	"context"
	"errors"
	"testing"

	"github.com/louisbranch/praxis/internal/assessment/domain"
)

type stubRunner struct {
	results domain.SuiteResults
	err     error

	lastSource string
	lastSuite  domain.TestSuite
}

func (s *stubRunner) RunSuite(_ context.Context, submission domain.Submission, suite domain.TestSuite) (domain.SuiteResults, error) {
	s.lastSource = submission.Source
	s.lastSuite = suite
	return s.results, s.err
}

func passingResults(count int) domain.SuiteResults {
	results := make([]domain.TestResult, count)
	for i := range results {
		results[i] = domain.TestResult{Name: "t", Passed: true}
	}
	return domain.SuiteResults{Results: results, AllPassed: true, PassedCount: count, TotalCount: count}
}

func TestGradeMultipleChoice(t *testing.T) {
	question := domain.MultipleChoice{
		ID:          "q1",
		Prompt:      "Which keyword declares an immutable binding?",
		Options:     []string{"let", "var", "const"},
		Correct:     0,
		Explanation: "let declares an immutable binding",
		Points:      10,
	}
	g := New(nil)

	tests := []struct {
		name       string
		answer     domain.Answer
		correct    bool
		points     int
	}{
		{"correct choice", domain.Choice{Index: 0}, true, 10},
		{"wrong choice", domain.Choice{Index: 1}, false, 0},
		{"type mismatch", domain.Code{Source: "x"}, false, 0},
		{"nil answer", nil, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feedback, err := g.Grade(context.Background(), question, tt.answer)
			if err != nil {
				t.Fatalf("Grade() error = %v", err)
			}
			if feedback.Correct != tt.correct {
				t.Errorf("Correct = %v, want %v", feedback.Correct, tt.correct)
			}
			if feedback.PointsEarned != tt.points {
				t.Errorf("PointsEarned = %d, want %d", feedback.PointsEarned, tt.points)
			}
		})
	}
}

func TestGradeMultipleSelect(t *testing.T) {
	question := domain.MultipleSelect{
		ID:      "q1",
		Options: []string{"a", "b", "c", "d"},
		Correct: []int{0, 2},
		Points:  5,
	}
	g := New(nil)

	tests := []struct {
		name    string
		indexes []int
		correct bool
	}{
		{"exact set", []int{0, 2}, true},
		{"order independent", []int{2, 0}, true},
		{"duplicates collapse", []int{0, 2, 2}, true},
		{"missing index", []int{0}, false},
		{"extra index", []int{0, 2, 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feedback, err := g.Grade(context.Background(), question, domain.MultiChoice{Indexes: tt.indexes})
			if err != nil {
				t.Fatalf("Grade() error = %v", err)
			}
			if feedback.Correct != tt.correct {
				t.Errorf("Correct = %v, want %v", feedback.Correct, tt.correct)
			}
		})
	}
}

func TestGradeOrderingIsPositional(t *testing.T) {
	question := domain.Ordering{
		ID:           "q1",
		Items:        []string{"first", "second", "third"},
		CorrectOrder: []int{2, 0, 1},
		Points:       3,
	}
	g := New(nil)

	feedback, err := g.Grade(context.Background(), question, domain.Order{Positions: []int{2, 0, 1}})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if !feedback.Correct {
		t.Error("exact sequence should grade correct")
	}

	// Same multiset, different positions.
	feedback, err = g.Grade(context.Background(), question, domain.Order{Positions: []int{0, 2, 1}})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if feedback.Correct {
		t.Error("reordered sequence should grade incorrect")
	}
}

func TestGradeMatchingOrderIndependent(t *testing.T) {
	question := domain.Matching{
		ID:           "q1",
		Left:         []string{"map", "filter"},
		Right:        []string{"transform", "select"},
		CorrectPairs: []domain.Pair{{Left: 0, Right: 0}, {Left: 1, Right: 1}},
		Points:       4,
	}
	g := New(nil)

	feedback, err := g.Grade(context.Background(), question, domain.Pairs{
		Pairs: []domain.Pair{{Left: 1, Right: 1}, {Left: 0, Right: 0}},
	})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if !feedback.Correct {
		t.Error("pair set equality should ignore order")
	}

	feedback, err = g.Grade(context.Background(), question, domain.Pairs{
		Pairs: []domain.Pair{{Left: 0, Right: 1}, {Left: 1, Right: 0}},
	})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if feedback.Correct {
		t.Error("swapped pairing should grade incorrect")
	}
}

func TestGradeCodeCompletionBlanks(t *testing.T) {
	question := domain.CodeCompletion{
		ID:       "q1",
		Language: domain.LanguageLua,
		Template: "local sum = {{blank1}}",
		Blanks: []domain.Blank{{
			ID:                "blank1",
			AcceptableAnswers: []string{"a + b", "b + a"},
			Hint:              "Add the two arguments",
		}},
		Points: 5,
	}
	g := New(nil)

	feedback, err := g.Grade(context.Background(), question, domain.Blanks{Filled: map[string]string{"blank1": "b + a"}})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if !feedback.Correct || feedback.PointsEarned != 5 {
		t.Errorf("got %+v, want correct with 5 points", feedback)
	}

	feedback, err = g.Grade(context.Background(), question, domain.Blanks{Filled: map[string]string{"blank1": "a - b"}})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if feedback.Correct {
		t.Error("unacceptable blank should grade incorrect")
	}
	if feedback.Explanation != "Add the two arguments" {
		t.Errorf("Explanation = %q, want the blank's hint", feedback.Explanation)
	}
}

func TestGradeCodeCompletionRunsRenderedTemplate(t *testing.T) {
	runner := &stubRunner{results: passingResults(1)}
	question := domain.CodeCompletion{
		ID:       "q1",
		Language: domain.LanguageLua,
		Template: "print({{blank1}})",
		Blanks:   []domain.Blank{{ID: "blank1", AcceptableAnswers: []string{"1 + 2"}}},
		Tests:    []domain.TestCase{{Name: "sum", ExpectedOutput: "3"}},
		Points:   5,
	}
	g := New(runner)

	feedback, err := g.Grade(context.Background(), question, domain.Blanks{Filled: map[string]string{"blank1": "1 + 2"}})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if !feedback.Correct {
		t.Errorf("got %+v, want correct", feedback)
	}
	if runner.lastSource != "print(1 + 2)" {
		t.Errorf("rendered source = %q, want placeholder substituted", runner.lastSource)
	}
}

func TestGradeFreeformCodeHiddenTests(t *testing.T) {
	runner := &stubRunner{results: passingResults(2)}
	question := domain.FreeformCode{
		ID:       "q1",
		Language: domain.LanguageLua,
		Visible:  []domain.TestCase{{Name: "visible", ExpectedOutput: "1"}},
		Hidden:   []domain.TestCase{{Name: "hidden", ExpectedOutput: "2"}},
		Points:   10,
	}
	g := New(runner)
	answer := domain.Code{Source: "print(1)"}

	if _, err := g.GradePreview(context.Background(), question, answer); err != nil {
		t.Fatalf("GradePreview() error = %v", err)
	}
	if got := runner.lastSuite.TestCount(); got != 1 {
		t.Errorf("preview suite has %d tests, want visible only", got)
	}

	if _, err := g.Grade(context.Background(), question, answer); err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if got := runner.lastSuite.TestCount(); got != 2 {
		t.Errorf("final suite has %d tests, want visible and hidden", got)
	}
}

func TestGradeFreeformCodeRunnerError(t *testing.T) {
	runner := &stubRunner{err: errors.New("sandbox unavailable")}
	question := domain.FreeformCode{ID: "q1", Language: domain.LanguageLua, Points: 10}
	g := New(runner)

	if _, err := g.Grade(context.Background(), question, domain.Code{Source: "print(1)"}); err == nil {
		t.Fatal("Grade() should surface runner errors")
	}
}

func TestGradeQuiz(t *testing.T) {
	quiz := domain.Quiz{
		ID:           "quiz1",
		PassingScore: 0.7,
		Questions: []domain.Question{
			domain.MultipleChoice{ID: "q1", Options: []string{"let", "var", "const"}, Correct: 0, Points: 10},
			domain.MultipleChoice{ID: "q2", Options: []string{"a", "b"}, Correct: 1, Points: 10},
		},
	}
	g := New(nil)

	score, err := g.GradeQuiz(context.Background(), quiz, []domain.Answer{
		domain.Choice{Index: 0},
		nil, // never answered
	})
	if err != nil {
		t.Fatalf("GradeQuiz() error = %v", err)
	}
	if score.PointsEarned != 10 || score.PointsPossible != 20 {
		t.Errorf("points = %d/%d, want 10/20", score.PointsEarned, score.PointsPossible)
	}
	if score.Percentage != 0.5 {
		t.Errorf("Percentage = %v, want 0.5", score.Percentage)
	}
	if score.Passed {
		t.Error("50% should not pass a 70% threshold")
	}
	if score.CorrectCount != 1 || score.TotalQuestions != 2 {
		t.Errorf("counts = %d/%d, want 1/2", score.CorrectCount, score.TotalQuestions)
	}
}

func TestGradeQuizZeroPointsNeverPasses(t *testing.T) {
	g := New(nil)
	score, err := g.GradeQuiz(context.Background(), domain.Quiz{ID: "quiz1", PassingScore: 0}, nil)
	if err != nil {
		t.Fatalf("GradeQuiz() error = %v", err)
	}
	if score.Percentage != 0 || score.Passed {
		t.Errorf("got %+v, want percentage 0 and not passed", score)
	}
}
