// Package quiz implements the attempt state machine for one quiz.
//
// An Engine owns a single attempt's mutable state and must be confined to
// one caller; it performs no locking of its own. Grading is synchronous:
// SubmitAnswer returns the full Feedback before the call completes.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/louisbranch/praxis/internal/assessment/domain"
	"github.com/louisbranch/praxis/internal/platform/id"
)

var (
	// ErrAlreadyInProgress indicates Start while an attempt is running.
	ErrAlreadyInProgress = errors.New("quiz attempt already in progress")
	// ErrMaxAttemptsExceeded indicates the quiz's attempt cap was reached.
	ErrMaxAttemptsExceeded = errors.New("maximum attempts reached")
	// ErrNoQuestions indicates a quiz with zero questions.
	ErrNoQuestions = errors.New("quiz has no questions")
	// ErrInvalidState indicates an operation outside its valid states.
	ErrInvalidState = errors.New("invalid state for this operation")
	// ErrOutOfQuestions indicates Next past the last question.
	ErrOutOfQuestions = errors.New("no more questions")
	// ErrNoPreviousQuestion indicates Prev at the first question.
	ErrNoPreviousQuestion = errors.New("no previous question")
	// ErrNotReviewable indicates Review while review is disabled or
	// questions remain unanswered.
	ErrNotReviewable = errors.New("attempt is not reviewable")
)

// State is the engine's lifecycle phase.
type State int

const (
	// StateNotStarted is the initial state.
	StateNotStarted State = iota
	// StateInProgress is an attempt with a current question.
	StateInProgress
	// StateReviewing is a fully-answered attempt awaiting Finish.
	StateReviewing
	// StateCompleted is a finished attempt with a final Score.
	StateCompleted
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in_progress"
	case StateReviewing:
		return "reviewing"
	case StateCompleted:
		return "completed"
	default:
		return "not_started"
	}
}

// Grader scores answers for the engine. Satisfied by grader.Grader.
type Grader interface {
	GradePreview(ctx context.Context, question domain.Question, answer domain.Answer) (domain.Feedback, error)
	GradeQuiz(ctx context.Context, quiz domain.Quiz, answers []domain.Answer) (domain.Score, error)
}

// Engine sequences one quiz attempt at a time.
type Engine struct {
	quiz   domain.Quiz
	grader Grader
	now    func() time.Time
	rng    *rand.Rand
	review bool

	state     State
	order     []int
	current   int
	answers   []domain.Answer
	feedback  []*domain.Feedback
	startedAt time.Time
	attempts  int
	attemptID string

	score    domain.Score
	duration time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects the time source used for startedAt and duration.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithShuffleSeed fixes the question shuffle order for a Shuffle quiz.
func WithShuffleSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithReview enables the Reviewing state between answering and Finish.
func WithReview() Option {
	return func(e *Engine) { e.review = true }
}

// NewEngine builds an engine for one quiz. The quiz is validated once here;
// the engine treats it as immutable afterwards.
func NewEngine(quiz domain.Quiz, g Grader, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, errors.New("grader is required")
	}
	if err := quiz.Validate(); err != nil {
		return nil, fmt.Errorf("validate quiz: %w", err)
	}
	e := &Engine{
		quiz:   quiz,
		grader: g,
		now:    time.Now,
		state:  StateNotStarted,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e, nil
}

// Quiz returns the quiz definition.
func (e *Engine) Quiz() domain.Quiz { return e.quiz }

// State returns the current lifecycle phase.
func (e *Engine) State() State { return e.state }

// Attempts returns the number of attempts started so far.
func (e *Engine) Attempts() int { return e.attempts }

// CanAttempt reports whether another attempt is allowed under MaxAttempts.
func (e *Engine) CanAttempt() bool {
	return e.quiz.MaxAttempts == 0 || e.attempts < e.quiz.MaxAttempts
}

// Start begins a new attempt and returns its first question. Valid from
// NotStarted and Completed; an attempt in flight fails ErrAlreadyInProgress.
func (e *Engine) Start() (domain.Question, error) {
	if e.state == StateInProgress || e.state == StateReviewing {
		return nil, ErrAlreadyInProgress
	}
	if !e.CanAttempt() {
		return nil, ErrMaxAttemptsExceeded
	}
	if e.quiz.QuestionCount() == 0 {
		return nil, ErrNoQuestions
	}

	count := e.quiz.QuestionCount()
	e.order = make([]int, count)
	for i := range e.order {
		e.order[i] = i
	}
	if e.quiz.Shuffle {
		e.rng.Shuffle(count, func(i, j int) {
			e.order[i], e.order[j] = e.order[j], e.order[i]
		})
	}

	attemptID, err := id.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate attempt id: %w", err)
	}

	e.attempts++
	e.attemptID = attemptID
	e.current = 0
	e.answers = make([]domain.Answer, count)
	e.feedback = make([]*domain.Feedback, count)
	e.startedAt = e.now()
	e.score = domain.Score{}
	e.duration = 0
	e.state = StateInProgress

	return e.questionAt(0)
}

// AttemptID returns the identifier of the current or last attempt. It is
// empty before the first Start.
func (e *Engine) AttemptID() string { return e.attemptID }

// CurrentQuestion returns the question at the cursor.
func (e *Engine) CurrentQuestion() (domain.Question, error) {
	if e.state != StateInProgress {
		return nil, ErrInvalidState
	}
	return e.questionAt(e.current)
}

// SubmitAnswer grades the answer against the current question and records it
// at the cursor. Feedback comes from the preview grading path, so code
// questions run visible tests only. Resubmitting overwrites the previous
// answer. The cursor does not advance.
func (e *Engine) SubmitAnswer(ctx context.Context, answer domain.Answer) (domain.Feedback, error) {
	if e.state != StateInProgress {
		return domain.Feedback{}, ErrInvalidState
	}
	question, err := e.questionAt(e.current)
	if err != nil {
		return domain.Feedback{}, err
	}
	feedback, err := e.grader.GradePreview(ctx, question, answer)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("grade answer: %w", err)
	}
	idx := e.order[e.current]
	e.answers[idx] = answer
	e.feedback[idx] = &feedback
	return feedback, nil
}

// Next advances the cursor and returns the new question. At the last
// question it fails ErrOutOfQuestions; the caller should Finish instead.
func (e *Engine) Next() (domain.Question, error) {
	if e.state != StateInProgress {
		return nil, ErrInvalidState
	}
	if e.current+1 >= len(e.order) {
		return nil, ErrOutOfQuestions
	}
	e.current++
	return e.questionAt(e.current)
}

// Prev moves the cursor back and returns the new question.
func (e *Engine) Prev() (domain.Question, error) {
	if e.state != StateInProgress {
		return nil, ErrInvalidState
	}
	if e.current == 0 {
		return nil, ErrNoPreviousQuestion
	}
	e.current--
	return e.questionAt(e.current)
}

// Review transitions to Reviewing and returns the recorded per-question
// feedback in presentation order. It requires WithReview and a fully
// answered attempt.
func (e *Engine) Review() ([]domain.Feedback, error) {
	if e.state != StateInProgress {
		return nil, ErrInvalidState
	}
	if !e.review || !e.allAnswered() {
		return nil, ErrNotReviewable
	}
	collected := make([]domain.Feedback, len(e.order))
	for pos, idx := range e.order {
		collected[pos] = *e.feedback[idx]
	}
	e.state = StateReviewing
	return collected, nil
}

// Finish computes the final score and transitions to Completed. Unanswered
// questions grade incorrect with zero points; code questions run with hidden
// tests included. Once Completed, repeated calls return the cached Score.
func (e *Engine) Finish(ctx context.Context) (domain.Score, error) {
	switch e.state {
	case StateCompleted:
		return e.score, nil
	case StateInProgress, StateReviewing:
	default:
		return domain.Score{}, ErrInvalidState
	}

	score, err := e.grader.GradeQuiz(ctx, e.quiz, e.answers)
	if err != nil {
		return domain.Score{}, fmt.Errorf("grade quiz: %w", err)
	}
	e.score = score
	e.duration = e.now().Sub(e.startedAt)
	e.state = StateCompleted
	return score, nil
}

// Progress reports answered questions as a fraction in [0, 1]. Reviewing and
// Completed report 1.
func (e *Engine) Progress() float64 {
	switch e.state {
	case StateReviewing, StateCompleted:
		return 1
	case StateInProgress:
		answered := 0
		for _, a := range e.answers {
			if a != nil {
				answered++
			}
		}
		return float64(answered) / float64(len(e.answers))
	default:
		return 0
	}
}

// StartedAt returns the start time of the current or last attempt.
func (e *Engine) StartedAt() time.Time { return e.startedAt }

// Deadline returns when the running attempt's time limit lapses. The engine
// never enforces it; the caller is responsible for calling Finish when the
// deadline passes.
func (e *Engine) Deadline() (time.Time, bool) {
	if e.quiz.TimeLimit <= 0 || (e.state != StateInProgress && e.state != StateReviewing) {
		return time.Time{}, false
	}
	return e.startedAt.Add(e.quiz.TimeLimit), true
}

// Duration returns the wall-clock length of the last completed attempt.
func (e *Engine) Duration() time.Duration { return e.duration }

func (e *Engine) allAnswered() bool {
	for _, a := range e.answers {
		if a == nil {
			return false
		}
	}
	return true
}

func (e *Engine) questionAt(pos int) (domain.Question, error) {
	if pos < 0 || pos >= len(e.order) {
		return nil, ErrInvalidState
	}
	return e.quiz.Questions[e.order[pos]], nil
}
