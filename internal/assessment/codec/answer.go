package codec

import (
	"encoding/json"
	"fmt"

	"github.com/louisbranch/praxis/internal/assessment/domain"
)

// Answer type tags.
const (
	typeChoice      = "choice"
	typeMultiChoice = "multi_choice"
	typeOrder       = "order"
	typePairs       = "pairs"
	typeCode        = "code"
	typeBlanks      = "blanks"
)

type wireAnswer struct {
	Type      string            `json:"type"`
	Index     int               `json:"index,omitempty"`
	Indexes   []int             `json:"indexes,omitempty"`
	Positions []int             `json:"positions,omitempty"`
	Pairs     []wirePair        `json:"pairs,omitempty"`
	Source    string            `json:"source,omitempty"`
	Filled    map[string]string `json:"filled,omitempty"`
}

func answerToWire(a domain.Answer) (wireAnswer, error) {
	switch v := a.(type) {
	case domain.Choice:
		return wireAnswer{Type: typeChoice, Index: v.Index}, nil
	case domain.MultiChoice:
		return wireAnswer{Type: typeMultiChoice, Indexes: v.Indexes}, nil
	case domain.Order:
		return wireAnswer{Type: typeOrder, Positions: v.Positions}, nil
	case domain.Pairs:
		return wireAnswer{Type: typePairs, Pairs: pairsToWire(v.Pairs)}, nil
	case domain.Code:
		return wireAnswer{Type: typeCode, Source: v.Source}, nil
	case domain.Blanks:
		return wireAnswer{Type: typeBlanks, Filled: v.Filled}, nil
	default:
		return wireAnswer{}, fmt.Errorf("%w: %T", ErrUnknownVariant, a)
	}
}

func answerFromWire(w wireAnswer) (domain.Answer, error) {
	switch w.Type {
	case typeChoice:
		return domain.Choice{Index: w.Index}, nil
	case typeMultiChoice:
		return domain.MultiChoice{Indexes: w.Indexes}, nil
	case typeOrder:
		return domain.Order{Positions: w.Positions}, nil
	case typePairs:
		return domain.Pairs{Pairs: pairsFromWire(w.Pairs)}, nil
	case typeCode:
		return domain.Code{Source: w.Source}, nil
	case typeBlanks:
		return domain.Blanks{Filled: w.Filled}, nil
	default:
		return nil, fmt.Errorf("%w: answer type %q", ErrUnknownVariant, w.Type)
	}
}

// EncodeAnswer wraps one answer in an envelope.
func EncodeAnswer(a domain.Answer) ([]byte, error) {
	w, err := answerToWire(a)
	if err != nil {
		return nil, err
	}
	return encode(KindAnswer, w)
}

// DecodeAnswer opens an answer envelope.
func DecodeAnswer(data []byte) (domain.Answer, error) {
	payload, err := open(data, KindAnswer)
	if err != nil {
		return nil, err
	}
	var w wireAnswer
	if err := json.Unmarshal(payload, &w); err != nil {
		return nil, fmt.Errorf("unmarshal answer payload: %w", err)
	}
	return answerFromWire(w)
}

// EncodeAnswers wraps an ordered answer list in a single envelope. Nil
// entries (unanswered questions) are preserved as JSON nulls.
func EncodeAnswers(answers []domain.Answer) ([]byte, error) {
	wires := make([]*wireAnswer, len(answers))
	for i, a := range answers {
		if a == nil {
			continue
		}
		w, err := answerToWire(a)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %w", i, err)
		}
		wires[i] = &w
	}
	return encode(KindAnswers, wires)
}

// DecodeAnswers opens an answer-list envelope, preserving nil entries.
func DecodeAnswers(data []byte) ([]domain.Answer, error) {
	payload, err := open(data, KindAnswers)
	if err != nil {
		return nil, err
	}
	var wires []*wireAnswer
	if err := json.Unmarshal(payload, &wires); err != nil {
		return nil, fmt.Errorf("unmarshal answers payload: %w", err)
	}
	answers := make([]domain.Answer, len(wires))
	for i, w := range wires {
		if w == nil {
			continue
		}
		a, err := answerFromWire(*w)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %w", i, err)
		}
		answers[i] = a
	}
	return answers, nil
}
