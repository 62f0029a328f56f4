package codec

import (
	"fmt"

	"github.com/louisbranch/praxis/internal/assessment/domain"
)

// Question type tags.
const (
	typeMultipleChoice = "multiple_choice"
	typeMultipleSelect = "multiple_select"
	typeCodeCompletion = "code_completion"
	typeOrdering       = "ordering"
	typeMatching       = "matching"
	typeFreeformCode   = "freeform_code"
)

type wirePair struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

type wireBlank struct {
	ID                string   `json:"id"`
	AcceptableAnswers []string `json:"acceptable_answers"`
	Hint              string   `json:"hint,omitempty"`
}

type wireTestCase struct {
	Name           string `json:"name"`
	Input          string `json:"input,omitempty"`
	ExpectedOutput string `json:"expected_output"`
	TimeoutMs      int    `json:"timeout_ms,omitempty"`
}

type wireQuestion struct {
	Type        string         `json:"type"`
	ID          string         `json:"id"`
	Prompt      string         `json:"prompt"`
	Points      int            `json:"points"`
	Options     []string       `json:"options,omitempty"`
	Correct     *int           `json:"correct,omitempty"`
	CorrectSet  []int          `json:"correct_set,omitempty"`
	Explanation string         `json:"explanation,omitempty"`
	Language    string         `json:"language,omitempty"`
	Template    string         `json:"template,omitempty"`
	Blanks      []wireBlank    `json:"blanks,omitempty"`
	Tests       []wireTestCase `json:"tests,omitempty"`
	Items       []string       `json:"items,omitempty"`
	Order       []int          `json:"correct_order,omitempty"`
	Left        []string       `json:"left,omitempty"`
	Right       []string       `json:"right,omitempty"`
	Pairs       []wirePair     `json:"correct_pairs,omitempty"`
	StarterCode string         `json:"starter_code,omitempty"`
	Visible     []wireTestCase `json:"visible_tests,omitempty"`
	Hidden      []wireTestCase `json:"hidden_tests,omitempty"`
}

func pairsToWire(pairs []domain.Pair) []wirePair {
	out := make([]wirePair, len(pairs))
	for i, p := range pairs {
		out[i] = wirePair{Left: p.Left, Right: p.Right}
	}
	return out
}

func pairsFromWire(pairs []wirePair) []domain.Pair {
	out := make([]domain.Pair, len(pairs))
	for i, p := range pairs {
		out[i] = domain.Pair{Left: p.Left, Right: p.Right}
	}
	return out
}

func testsToWire(tests []domain.TestCase) []wireTestCase {
	if tests == nil {
		return nil
	}
	out := make([]wireTestCase, len(tests))
	for i, t := range tests {
		out[i] = wireTestCase{Name: t.Name, Input: t.Input, ExpectedOutput: t.ExpectedOutput, TimeoutMs: t.TimeoutMs}
	}
	return out
}

func testsFromWire(tests []wireTestCase) []domain.TestCase {
	if tests == nil {
		return nil
	}
	out := make([]domain.TestCase, len(tests))
	for i, t := range tests {
		out[i] = domain.TestCase{Name: t.Name, Input: t.Input, ExpectedOutput: t.ExpectedOutput, TimeoutMs: t.TimeoutMs}
	}
	return out
}

func questionToWire(q domain.Question) (wireQuestion, error) {
	switch v := q.(type) {
	case domain.MultipleChoice:
		correct := v.Correct
		return wireQuestion{
			Type:        typeMultipleChoice,
			ID:          string(v.ID),
			Prompt:      v.Prompt,
			Points:      v.Points,
			Options:     v.Options,
			Correct:     &correct,
			Explanation: v.Explanation,
		}, nil
	case domain.MultipleSelect:
		return wireQuestion{
			Type:        typeMultipleSelect,
			ID:          string(v.ID),
			Prompt:      v.Prompt,
			Points:      v.Points,
			Options:     v.Options,
			CorrectSet:  v.Correct,
			Explanation: v.Explanation,
		}, nil
	case domain.CodeCompletion:
		blanks := make([]wireBlank, len(v.Blanks))
		for i, b := range v.Blanks {
			blanks[i] = wireBlank{ID: b.ID, AcceptableAnswers: b.AcceptableAnswers, Hint: b.Hint}
		}
		return wireQuestion{
			Type:     typeCodeCompletion,
			ID:       string(v.ID),
			Prompt:   v.Prompt,
			Points:   v.Points,
			Language: string(v.Language),
			Template: v.Template,
			Blanks:   blanks,
			Tests:    testsToWire(v.Tests),
		}, nil
	case domain.Ordering:
		return wireQuestion{
			Type:        typeOrdering,
			ID:          string(v.ID),
			Prompt:      v.Prompt,
			Points:      v.Points,
			Items:       v.Items,
			Order:       v.CorrectOrder,
			Explanation: v.Explanation,
		}, nil
	case domain.Matching:
		return wireQuestion{
			Type:   typeMatching,
			ID:     string(v.ID),
			Prompt: v.Prompt,
			Points: v.Points,
			Left:   v.Left,
			Right:  v.Right,
			Pairs:  pairsToWire(v.CorrectPairs),
		}, nil
	case domain.FreeformCode:
		return wireQuestion{
			Type:        typeFreeformCode,
			ID:          string(v.ID),
			Prompt:      v.Prompt,
			Points:      v.Points,
			Language:    string(v.Language),
			StarterCode: v.StarterCode,
			Visible:     testsToWire(v.Visible),
			Hidden:      testsToWire(v.Hidden),
		}, nil
	default:
		return wireQuestion{}, fmt.Errorf("%w: %T", ErrUnknownVariant, q)
	}
}

func questionFromWire(w wireQuestion) (domain.Question, error) {
	switch w.Type {
	case typeMultipleChoice:
		correct := 0
		if w.Correct != nil {
			correct = *w.Correct
		}
		return domain.MultipleChoice{
			ID:          domain.QuestionID(w.ID),
			Prompt:      w.Prompt,
			Options:     w.Options,
			Correct:     correct,
			Explanation: w.Explanation,
			Points:      w.Points,
		}, nil
	case typeMultipleSelect:
		return domain.MultipleSelect{
			ID:          domain.QuestionID(w.ID),
			Prompt:      w.Prompt,
			Options:     w.Options,
			Correct:     w.CorrectSet,
			Explanation: w.Explanation,
			Points:      w.Points,
		}, nil
	case typeCodeCompletion:
		blanks := make([]domain.Blank, len(w.Blanks))
		for i, b := range w.Blanks {
			blanks[i] = domain.Blank{ID: b.ID, AcceptableAnswers: b.AcceptableAnswers, Hint: b.Hint}
		}
		return domain.CodeCompletion{
			ID:       domain.QuestionID(w.ID),
			Prompt:   w.Prompt,
			Language: domain.Language(w.Language),
			Template: w.Template,
			Blanks:   blanks,
			Tests:    testsFromWire(w.Tests),
			Points:   w.Points,
		}, nil
	case typeOrdering:
		return domain.Ordering{
			ID:           domain.QuestionID(w.ID),
			Prompt:       w.Prompt,
			Items:        w.Items,
			CorrectOrder: w.Order,
			Explanation:  w.Explanation,
			Points:       w.Points,
		}, nil
	case typeMatching:
		return domain.Matching{
			ID:           domain.QuestionID(w.ID),
			Prompt:       w.Prompt,
			Left:         w.Left,
			Right:        w.Right,
			CorrectPairs: pairsFromWire(w.Pairs),
			Points:       w.Points,
		}, nil
	case typeFreeformCode:
		return domain.FreeformCode{
			ID:          domain.QuestionID(w.ID),
			Prompt:      w.Prompt,
			Language:    domain.Language(w.Language),
			StarterCode: w.StarterCode,
			Visible:     testsFromWire(w.Visible),
			Hidden:      testsFromWire(w.Hidden),
			Points:      w.Points,
		}, nil
	default:
		return nil, fmt.Errorf("%w: question type %q", ErrUnknownVariant, w.Type)
	}
}

func questionsToWire(questions []domain.Question) ([]wireQuestion, error) {
	if questions == nil {
		return nil, nil
	}
	out := make([]wireQuestion, len(questions))
	for i, q := range questions {
		w, err := questionToWire(q)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		out[i] = w
	}
	return out, nil
}

func questionsFromWire(wires []wireQuestion) ([]domain.Question, error) {
	if wires == nil {
		return nil, nil
	}
	out := make([]domain.Question, len(wires))
	for i, w := range wires {
		q, err := questionFromWire(w)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		out[i] = q
	}
	return out, nil
}
