package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrLabEmptyID indicates a lab without an identifier.
	ErrLabEmptyID = errors.New("lab id is required")
	// ErrLabInvalidPoints indicates a lab with a non-positive point allocation.
	ErrLabInvalidPoints = errors.New("lab points must be greater than zero")
)

// Lab is a hands-on coding exercise graded by its test suite.
type Lab struct {
	ID               LabID
	Title            string
	Description      string
	Language         Language
	Difficulty       Difficulty
	EstimatedMinutes int
	// Points is the lab's point allocation, distributed across test cases.
	Points int
	// RequireAllPass switches scoring from proportional to all-or-nothing.
	RequireAllPass bool
	Suite          TestSuite
}

// Validate checks the lab definition.
func (l Lab) Validate() error {
	if l.ID == "" {
		return ErrLabEmptyID
	}
	if l.Points <= 0 {
		return ErrLabInvalidPoints
	}
	if !l.Language.Valid() {
		return fmt.Errorf("unknown language %q", string(l.Language))
	}
	for i, test := range l.Suite.Tests {
		if test.Name == "" {
			return fmt.Errorf("test %d: name is required", i)
		}
	}
	return nil
}

// TestSuite is the ordered collection of test cases for a lab.
type TestSuite struct {
	Tests []TestCase
}

// TestCount returns the number of test cases.
func (s TestSuite) TestCount() int {
	return len(s.Tests)
}

// TestCase is one input/expected-output check for a code submission.
type TestCase struct {
	Name           string
	Input          string
	ExpectedOutput string
	// TimeoutMs bounds this case's execution; zero falls back to the
	// sandbox default.
	TimeoutMs int
}

// Submission is one code submission supplied per test run. The sandbox does
// not retain it.
type Submission struct {
	Source   string
	Language Language
}
