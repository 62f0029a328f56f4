package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrQuizEmptyID indicates a quiz without an identifier.
	ErrQuizEmptyID = errors.New("quiz id is required")
	// ErrQuizInvalidPassingScore indicates a passing score outside [0, 1].
	ErrQuizInvalidPassingScore = errors.New("passing score must be between 0 and 1")
)

// Quiz is an ordered sequence of questions with pass criteria. It is created
// once from external content and immutable afterwards.
type Quiz struct {
	ID           QuizID
	Title        string
	Questions    []Question
	PassingScore float64
	// TimeLimit bounds one attempt; zero means no limit. The engine never
	// enforces it itself, see quiz.Engine.Deadline.
	TimeLimit time.Duration
	// MaxAttempts caps attempts; zero means unlimited.
	MaxAttempts int
	Shuffle     bool
}

// Validate checks the quiz and every question against the model invariants.
func (q Quiz) Validate() error {
	if q.ID == "" {
		return ErrQuizEmptyID
	}
	if q.PassingScore < 0 || q.PassingScore > 1 {
		return ErrQuizInvalidPassingScore
	}
	for i, question := range q.Questions {
		if err := question.Validate(); err != nil {
			return fmt.Errorf("question %d (%s): %w", i, IDOf(question), err)
		}
	}
	return nil
}

// TotalPoints sums the point values of every question.
func (q Quiz) TotalPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += PointsOf(question)
	}
	return total
}

// QuestionCount returns the number of questions.
func (q Quiz) QuestionCount() int {
	return len(q.Questions)
}

// Feedback is the immediate grading result for one submitted answer.
type Feedback struct {
	Correct      bool
	PointsEarned int
	Explanation  string
}

// CorrectFeedback builds feedback for a correct answer.
func CorrectFeedback(explanation string, points int) Feedback {
	return Feedback{Correct: true, PointsEarned: points, Explanation: explanation}
}

// IncorrectFeedback builds feedback for an incorrect answer.
func IncorrectFeedback(explanation string) Feedback {
	return Feedback{Correct: false, Explanation: explanation}
}

// Score is the final result of one quiz attempt.
type Score struct {
	PointsEarned   int
	PointsPossible int
	// Percentage is PointsEarned / PointsPossible in [0, 1]. It is defined
	// as 0 when PointsPossible is 0.
	Percentage     float64
	CorrectCount   int
	TotalQuestions int
	Passed         bool
}

// ComputeScore derives a Score from earned points. A zero-point quiz scores
// percentage 0 and never passes.
func ComputeScore(earned, possible int, passingScore float64, correct, total int) Score {
	percentage := 0.0
	if possible > 0 {
		percentage = float64(earned) / float64(possible)
	}
	return Score{
		PointsEarned:   earned,
		PointsPossible: possible,
		Percentage:     percentage,
		CorrectCount:   correct,
		TotalQuestions: total,
		Passed:         percentage >= passingScore && possible > 0,
	}
}
