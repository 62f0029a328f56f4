// Package boundary maps the assessment packages' sentinel errors onto the
// coded error type surfaced at the library boundary. Domain packages keep
// plain sentinels; callers that need machine-readable codes classify here.
package boundary

import (
	stderrors "errors"

	"github.com/louisbranch/praxis/internal/assessment/codec"
	"github.com/louisbranch/praxis/internal/assessment/domain"
	"github.com/louisbranch/praxis/internal/assessment/quiz"
	"github.com/louisbranch/praxis/internal/assessment/sandbox"
	"github.com/louisbranch/praxis/internal/assessment/storage"
	"github.com/louisbranch/praxis/internal/platform/errors"
)

var codesBySentinel = []struct {
	sentinel error
	code     errors.Code
}{
	{quiz.ErrAlreadyInProgress, errors.CodeQuizAlreadyInProgress},
	{quiz.ErrInvalidState, errors.CodeQuizInvalidState},
	{quiz.ErrOutOfQuestions, errors.CodeQuizOutOfQuestions},
	{quiz.ErrNoPreviousQuestion, errors.CodeQuizNoPreviousQuestion},
	{quiz.ErrMaxAttemptsExceeded, errors.CodeQuizMaxAttempts},
	{quiz.ErrNoQuestions, errors.CodeQuizNoQuestions},
	{quiz.ErrNotReviewable, errors.CodeQuizNotReviewable},
	{domain.ErrQuizEmptyID, errors.CodeQuizInvalidDefinition},
	{domain.ErrQuizInvalidPassingScore, errors.CodeQuizInvalidDefinition},
	{domain.ErrQuestionInvalidPoints, errors.CodeQuizInvalidDefinition},
	{domain.ErrQuestionCorrectOutOfRange, errors.CodeQuizInvalidDefinition},
	{domain.ErrQuestionPairsNotBijective, errors.CodeQuizInvalidDefinition},
	{domain.ErrQuestionOrderInvalid, errors.CodeQuizInvalidDefinition},
	{domain.ErrLabEmptyID, errors.CodeLabInvalidDefinition},
	{domain.ErrLabInvalidPoints, errors.CodeLabInvalidDefinition},
	{sandbox.ErrInvalidTimeout, errors.CodeSandboxInvalidTimeout},
	{sandbox.ErrInvalidMemoryLimit, errors.CodeSandboxInvalidMemoryLimit},
	{codec.ErrUnknownVersion, errors.CodeCodecUnknownVersion},
	{codec.ErrUnknownKind, errors.CodeCodecUnknownKind},
	{codec.ErrUnknownVariant, errors.CodeCodecUnknownVariant},
	{storage.ErrNotFound, errors.CodeNotFound},
}

// Classify wraps err into a coded boundary error. Errors that match no known
// sentinel classify as CodeUnknown; a nil err returns nil.
func Classify(err error) *errors.Error {
	if err == nil {
		return nil
	}
	for _, entry := range codesBySentinel {
		if stderrors.Is(err, entry.sentinel) {
			return errors.Wrap(entry.code, err.Error(), err)
		}
	}
	return errors.Wrap(errors.CodeUnknown, err.Error(), err)
}
