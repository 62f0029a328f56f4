package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/louisbranch/praxis/internal/assessment/domain"
)

type wireQuiz struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Questions    []wireQuestion `json:"questions"`
	PassingScore float64        `json:"passing_score"`
	TimeLimitMs  int64          `json:"time_limit_ms,omitempty"`
	MaxAttempts  int            `json:"max_attempts,omitempty"`
	Shuffle      bool           `json:"shuffle,omitempty"`
}

// EncodeQuiz wraps a quiz definition in an envelope.
func EncodeQuiz(q domain.Quiz) ([]byte, error) {
	questions, err := questionsToWire(q.Questions)
	if err != nil {
		return nil, err
	}
	return encode(KindQuiz, wireQuiz{
		ID:           string(q.ID),
		Title:        q.Title,
		Questions:    questions,
		PassingScore: q.PassingScore,
		TimeLimitMs:  q.TimeLimit.Milliseconds(),
		MaxAttempts:  q.MaxAttempts,
		Shuffle:      q.Shuffle,
	})
}

// DecodeQuiz opens a quiz envelope and validates the decoded definition.
func DecodeQuiz(data []byte) (domain.Quiz, error) {
	payload, err := open(data, KindQuiz)
	if err != nil {
		return domain.Quiz{}, err
	}
	var w wireQuiz
	if err := json.Unmarshal(payload, &w); err != nil {
		return domain.Quiz{}, fmt.Errorf("unmarshal quiz payload: %w", err)
	}
	questions, err := questionsFromWire(w.Questions)
	if err != nil {
		return domain.Quiz{}, err
	}
	quiz := domain.Quiz{
		ID:           domain.QuizID(w.ID),
		Title:        w.Title,
		Questions:    questions,
		PassingScore: w.PassingScore,
		TimeLimit:    time.Duration(w.TimeLimitMs) * time.Millisecond,
		MaxAttempts:  w.MaxAttempts,
		Shuffle:      w.Shuffle,
	}
	if err := quiz.Validate(); err != nil {
		return domain.Quiz{}, fmt.Errorf("decoded quiz: %w", err)
	}
	return quiz, nil
}
