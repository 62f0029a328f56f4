// Package domain defines the assessment value types shared by the quiz
// engine, the grader, and the lab execution pipeline.
//
// Question, Answer, and ExecutionResult are closed variant sets: every
// variant lives in this package and consumers match over them exhaustively.
// All types are plain values; construction is validated with the Validate
// methods rather than builders.
package domain
