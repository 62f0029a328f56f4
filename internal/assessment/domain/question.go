package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrQuestionInvalidPoints indicates a question with a non-positive point value.
	ErrQuestionInvalidPoints = errors.New("question points must be greater than zero")
	// ErrQuestionCorrectOutOfRange indicates a correct index outside the option list.
	ErrQuestionCorrectOutOfRange = errors.New("correct index is out of range")
	// ErrQuestionPairsNotBijective indicates matching pairs that are not a bijection.
	ErrQuestionPairsNotBijective = errors.New("correct pairs must pair every left item with exactly one right item")
	// ErrQuestionOrderInvalid indicates a correct order that is not a permutation of the items.
	ErrQuestionOrderInvalid = errors.New("correct order must be a permutation of the item indexes")
)

// Question is the closed set of gradeable question variants.
type Question interface {
	// Validate checks the variant's structural invariants.
	Validate() error

	isQuestion()
}

// MultipleChoice asks for exactly one option.
type MultipleChoice struct {
	ID          QuestionID
	Prompt      string
	Options     []string
	Correct     int
	Explanation string
	Points      int
}

// MultipleSelect asks for a set of options; every correct index must be
// selected and nothing else.
type MultipleSelect struct {
	ID          QuestionID
	Prompt      string
	Options     []string
	Correct     []int
	Explanation string
	Points      int
}

// CodeCompletion asks the learner to fill blanks in a code template. When
// test cases are present the rendered template must also pass them.
type CodeCompletion struct {
	ID       QuestionID
	Prompt   string
	Language Language
	Template string
	Blanks   []Blank
	Tests    []TestCase
	Points   int
}

// Ordering asks the learner to arrange items into one exact sequence.
type Ordering struct {
	ID           QuestionID
	Prompt       string
	Items        []string
	CorrectOrder []int
	Explanation  string
	Points       int
}

// Matching asks the learner to pair left items with right items.
type Matching struct {
	ID           QuestionID
	Prompt       string
	Left         []string
	Right        []string
	CorrectPairs []Pair
	Points       int
}

// FreeformCode asks for a full program graded by test cases. Hidden tests
// participate in final grading only, never in pre-submission feedback.
type FreeformCode struct {
	ID          QuestionID
	Prompt      string
	Language    Language
	StarterCode string
	Visible     []TestCase
	Hidden      []TestCase
	Points      int
}

func (MultipleChoice) isQuestion() {}
func (MultipleSelect) isQuestion() {}
func (CodeCompletion) isQuestion() {}
func (Ordering) isQuestion()       {}
func (Matching) isQuestion()       {}
func (FreeformCode) isQuestion()   {}

// Validate checks the single-choice invariants.
func (q MultipleChoice) Validate() error {
	if q.Points <= 0 {
		return ErrQuestionInvalidPoints
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return ErrQuestionCorrectOutOfRange
	}
	return nil
}

// Validate checks the multi-select invariants.
func (q MultipleSelect) Validate() error {
	if q.Points <= 0 {
		return ErrQuestionInvalidPoints
	}
	seen := make(map[int]bool, len(q.Correct))
	for _, idx := range q.Correct {
		if idx < 0 || idx >= len(q.Options) {
			return ErrQuestionCorrectOutOfRange
		}
		if seen[idx] {
			return fmt.Errorf("duplicate correct index %d", idx)
		}
		seen[idx] = true
	}
	return nil
}

// Validate checks the code-completion invariants.
func (q CodeCompletion) Validate() error {
	if q.Points <= 0 {
		return ErrQuestionInvalidPoints
	}
	seen := make(map[string]bool, len(q.Blanks))
	for _, blank := range q.Blanks {
		if blank.ID == "" {
			return errors.New("blank id is required")
		}
		if seen[blank.ID] {
			return fmt.Errorf("duplicate blank id %q", blank.ID)
		}
		seen[blank.ID] = true
	}
	return nil
}

// Validate checks that the correct order is a permutation of the items.
func (q Ordering) Validate() error {
	if q.Points <= 0 {
		return ErrQuestionInvalidPoints
	}
	if len(q.CorrectOrder) != len(q.Items) {
		return ErrQuestionOrderInvalid
	}
	seen := make(map[int]bool, len(q.CorrectOrder))
	for _, idx := range q.CorrectOrder {
		if idx < 0 || idx >= len(q.Items) || seen[idx] {
			return ErrQuestionOrderInvalid
		}
		seen[idx] = true
	}
	return nil
}

// Validate checks that the pairs form a bijection between left and right.
func (q Matching) Validate() error {
	if q.Points <= 0 {
		return ErrQuestionInvalidPoints
	}
	if len(q.CorrectPairs) != len(q.Left) || len(q.Left) != len(q.Right) {
		return ErrQuestionPairsNotBijective
	}
	left := make(map[int]bool, len(q.CorrectPairs))
	right := make(map[int]bool, len(q.CorrectPairs))
	for _, pair := range q.CorrectPairs {
		if pair.Left < 0 || pair.Left >= len(q.Left) || pair.Right < 0 || pair.Right >= len(q.Right) {
			return ErrQuestionPairsNotBijective
		}
		if left[pair.Left] || right[pair.Right] {
			return ErrQuestionPairsNotBijective
		}
		left[pair.Left] = true
		right[pair.Right] = true
	}
	return nil
}

// Validate checks the freeform-code invariants.
func (q FreeformCode) Validate() error {
	if q.Points <= 0 {
		return ErrQuestionInvalidPoints
	}
	if !q.Language.Valid() {
		return fmt.Errorf("unknown language %q", string(q.Language))
	}
	return nil
}

// IDOf returns the identifier of any question variant.
func IDOf(q Question) QuestionID {
	switch v := q.(type) {
	case MultipleChoice:
		return v.ID
	case MultipleSelect:
		return v.ID
	case CodeCompletion:
		return v.ID
	case Ordering:
		return v.ID
	case Matching:
		return v.ID
	case FreeformCode:
		return v.ID
	default:
		return ""
	}
}

// PromptOf returns the prompt of any question variant.
func PromptOf(q Question) string {
	switch v := q.(type) {
	case MultipleChoice:
		return v.Prompt
	case MultipleSelect:
		return v.Prompt
	case CodeCompletion:
		return v.Prompt
	case Ordering:
		return v.Prompt
	case Matching:
		return v.Prompt
	case FreeformCode:
		return v.Prompt
	default:
		return ""
	}
}

// PointsOf returns the point value of any question variant.
func PointsOf(q Question) int {
	switch v := q.(type) {
	case MultipleChoice:
		return v.Points
	case MultipleSelect:
		return v.Points
	case CodeCompletion:
		return v.Points
	case Ordering:
		return v.Points
	case Matching:
		return v.Points
	case FreeformCode:
		return v.Points
	default:
		return 0
	}
}

// Pair joins a left item index with a right item index.
type Pair struct {
	Left  int
	Right int
}

// Blank is one fill-in slot of a code completion template.
type Blank struct {
	ID                string
	AcceptableAnswers []string
	Hint              string
}

// Acceptable reports whether the submitted text matches any acceptable answer.
func (b Blank) Acceptable(answer string) bool {
	for _, candidate := range b.AcceptableAnswers {
		if candidate == answer {
			return true
		}
	}
	return false
}
