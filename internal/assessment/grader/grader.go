// Package grader scores submitted answers against their questions.
//
// Grading of choice, ordering, matching, and blank questions is pure. Code
// questions delegate to a CodeRunner; the preview path runs visible tests
// only, the final path includes hidden tests.
package grader

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/louisbranch/praxis/internal/assessment/domain"
)

// CodeRunner executes a code submission against a test suite. It is
// satisfied by runner.Runner.
type CodeRunner interface {
	RunSuite(ctx context.Context, submission domain.Submission, suite domain.TestSuite) (domain.SuiteResults, error)
}

// Grader scores answers. A mismatched (question, answer) pair grades
// incorrect; it is never an error. Errors surface only when the code runner
// itself fails.
type Grader struct {
	runner CodeRunner
}

// New returns a Grader over the given code runner. A nil runner grades code
// questions incorrect with a diagnostic explanation.
func New(runner CodeRunner) *Grader {
	return &Grader{runner: runner}
}

// Grade scores an answer for final grading. Code questions run their visible
// and hidden tests. A nil answer grades incorrect with zero points.
func (g *Grader) Grade(ctx context.Context, question domain.Question, answer domain.Answer) (domain.Feedback, error) {
	return g.grade(ctx, question, answer, true)
}

// GradePreview scores an answer for immediate feedback. Code questions run
// visible tests only; hidden tests are reserved for Grade.
func (g *Grader) GradePreview(ctx context.Context, question domain.Question, answer domain.Answer) (domain.Feedback, error) {
	return g.grade(ctx, question, answer, false)
}

func (g *Grader) grade(ctx context.Context, question domain.Question, answer domain.Answer, final bool) (domain.Feedback, error) {
	if answer == nil {
		return domain.IncorrectFeedback("No answer submitted"), nil
	}

	switch q := question.(type) {
	case domain.MultipleChoice:
		choice, ok := answer.(domain.Choice)
		if !ok {
			return mismatch(), nil
		}
		if choice.Index == q.Correct {
			return domain.CorrectFeedback(q.Explanation, q.Points), nil
		}
		return domain.IncorrectFeedback(q.Explanation), nil

	case domain.MultipleSelect:
		multi, ok := answer.(domain.MultiChoice)
		if !ok {
			return mismatch(), nil
		}
		if sameIndexSet(q.Correct, multi.Indexes) {
			return domain.CorrectFeedback(q.Explanation, q.Points), nil
		}
		return domain.IncorrectFeedback(q.Explanation), nil

	case domain.Ordering:
		order, ok := answer.(domain.Order)
		if !ok {
			return mismatch(), nil
		}
		if sameSequence(q.CorrectOrder, order.Positions) {
			return domain.CorrectFeedback(q.Explanation, q.Points), nil
		}
		return domain.IncorrectFeedback(q.Explanation), nil

	case domain.Matching:
		pairs, ok := answer.(domain.Pairs)
		if !ok {
			return mismatch(), nil
		}
		if samePairSet(q.CorrectPairs, pairs.Pairs) {
			return domain.CorrectFeedback("", q.Points), nil
		}
		return domain.IncorrectFeedback(""), nil

	case domain.CodeCompletion:
		return g.gradeCompletion(ctx, q, answer)

	case domain.FreeformCode:
		code, ok := answer.(domain.Code)
		if !ok {
			return mismatch(), nil
		}
		suite := domain.TestSuite{Tests: q.Visible}
		if final {
			suite.Tests = append(append([]domain.TestCase{}, q.Visible...), q.Hidden...)
		}
		return g.runCode(ctx, q.Language, code.Source, suite, q.Points)

	default:
		return mismatch(), nil
	}
}

func (g *Grader) gradeCompletion(ctx context.Context, q domain.CodeCompletion, answer domain.Answer) (domain.Feedback, error) {
	filled, ok := answer.(domain.Blanks)
	if !ok {
		return mismatch(), nil
	}
	for _, blank := range q.Blanks {
		if !blank.Acceptable(filled.Filled[blank.ID]) {
			if blank.Hint != "" {
				return domain.IncorrectFeedback(blank.Hint), nil
			}
			return domain.IncorrectFeedback(""), nil
		}
	}
	if len(q.Tests) == 0 {
		return domain.CorrectFeedback("", q.Points), nil
	}
	source := RenderTemplate(q.Template, filled.Filled)
	return g.runCode(ctx, q.Language, source, domain.TestSuite{Tests: q.Tests}, q.Points)
}

func (g *Grader) runCode(ctx context.Context, language domain.Language, source string, suite domain.TestSuite, points int) (domain.Feedback, error) {
	if g.runner == nil {
		return domain.IncorrectFeedback("Code execution is not available"), nil
	}
	results, err := g.runner.RunSuite(ctx, domain.Submission{Source: source, Language: language}, suite)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("run test suite: %w", err)
	}
	if results.AllPassed {
		return domain.CorrectFeedback(results.Summary(), points), nil
	}
	return domain.IncorrectFeedback(results.Summary()), nil
}

// GradeQuiz scores a full attempt. answers is positional: answers[i] belongs
// to quiz.Questions[i] and nil entries grade incorrect. Code questions run
// with hidden tests included.
func (g *Grader) GradeQuiz(ctx context.Context, quiz domain.Quiz, answers []domain.Answer) (domain.Score, error) {
	earned := 0
	correct := 0
	for i, question := range quiz.Questions {
		var answer domain.Answer
		if i < len(answers) {
			answer = answers[i]
		}
		feedback, err := g.Grade(ctx, question, answer)
		if err != nil {
			return domain.Score{}, fmt.Errorf("question %d (%s): %w", i, domain.IDOf(question), err)
		}
		earned += feedback.PointsEarned
		if feedback.Correct {
			correct++
		}
	}
	return domain.ComputeScore(earned, quiz.TotalPoints(), quiz.PassingScore, correct, quiz.QuestionCount()), nil
}

// RenderTemplate substitutes {{id}} placeholders with filled blank values.
func RenderTemplate(template string, filled map[string]string) string {
	rendered := template
	for id, value := range filled {
		rendered = strings.ReplaceAll(rendered, "{{"+id+"}}", value)
	}
	return rendered
}

func mismatch() domain.Feedback {
	return domain.IncorrectFeedback("Invalid answer type")
}

func sameSequence(want, got []int) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

func sameIndexSet(want, got []int) bool {
	wantSet := make(map[int]bool, len(want))
	for _, idx := range want {
		wantSet[idx] = true
	}
	gotSet := make(map[int]bool, len(got))
	for _, idx := range got {
		gotSet[idx] = true
	}
	if len(wantSet) != len(gotSet) {
		return false
	}
	for idx := range wantSet {
		if !gotSet[idx] {
			return false
		}
	}
	return true
}

func samePairSet(want, got []domain.Pair) bool {
	if len(want) != len(got) {
		return false
	}
	sortPairs := func(pairs []domain.Pair) []domain.Pair {
		sorted := append([]domain.Pair{}, pairs...)
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].Left != sorted[j].Left {
				return sorted[i].Left < sorted[j].Left
			}
			return sorted[i].Right < sorted[j].Right
		})
		return sorted
	}
	w := sortPairs(want)
	v := sortPairs(got)
	for i := range w {
		if w[i] != v[i] {
			return false
		}
	}
	return true
}
