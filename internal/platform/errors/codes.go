package errors

import (
	stderrors "errors"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Quiz protocol errors
	CodeQuizAlreadyInProgress  Code = "QUIZ_ALREADY_IN_PROGRESS"
	CodeQuizInvalidState       Code = "QUIZ_INVALID_STATE"
	CodeQuizOutOfQuestions     Code = "QUIZ_OUT_OF_QUESTIONS"
	CodeQuizNoPreviousQuestion Code = "QUIZ_NO_PREVIOUS_QUESTION"
	CodeQuizMaxAttempts        Code = "QUIZ_MAX_ATTEMPTS_EXCEEDED"
	CodeQuizNoQuestions        Code = "QUIZ_NO_QUESTIONS"
	CodeQuizNotReviewable      Code = "QUIZ_NOT_REVIEWABLE"

	// Definition errors
	CodeQuizInvalidDefinition Code = "QUIZ_INVALID_DEFINITION"
	CodeLabInvalidDefinition  Code = "LAB_INVALID_DEFINITION"

	// Sandbox configuration errors
	CodeSandboxInvalidTimeout     Code = "SANDBOX_INVALID_TIMEOUT"
	CodeSandboxInvalidMemoryLimit Code = "SANDBOX_INVALID_MEMORY_LIMIT"

	// Codec errors
	CodeCodecUnknownVersion Code = "CODEC_UNKNOWN_VERSION"
	CodeCodecUnknownKind    Code = "CODEC_UNKNOWN_KIND"
	CodeCodecUnknownVariant Code = "CODEC_UNKNOWN_VARIANT"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a boundary error.
func GetCode(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}
