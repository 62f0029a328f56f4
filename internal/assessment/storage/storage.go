// Package storage defines the content catalog contracts. The catalog holds
// quiz and lab definitions only; learner history is out of scope.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/praxis/internal/assessment/domain"
)

// ErrNotFound indicates a missing catalog entry.
var ErrNotFound = errors.New("not found")

// QuizSummary is one catalog listing row for a quiz.
type QuizSummary struct {
	ID            domain.QuizID
	Title         string
	QuestionCount int
	UpdatedAt     time.Time
}

// LabSummary is one catalog listing row for a lab.
type LabSummary struct {
	ID        domain.LabID
	Title     string
	Language  domain.Language
	TestCount int
	UpdatedAt time.Time
}

// QuizStore persists quiz definitions.
type QuizStore interface {
	PutQuiz(ctx context.Context, quiz domain.Quiz) error
	GetQuiz(ctx context.Context, id domain.QuizID) (domain.Quiz, error)
	ListQuizzes(ctx context.Context) ([]QuizSummary, error)
	DeleteQuiz(ctx context.Context, id domain.QuizID) error
}

// LabStore persists lab definitions.
type LabStore interface {
	PutLab(ctx context.Context, lab domain.Lab) error
	GetLab(ctx context.Context, id domain.LabID) (domain.Lab, error)
	ListLabs(ctx context.Context) ([]LabSummary, error)
	DeleteLab(ctx context.Context, id domain.LabID) error
}

// CatalogStore is the combined content catalog.
type CatalogStore interface {
	QuizStore
	LabStore
}
