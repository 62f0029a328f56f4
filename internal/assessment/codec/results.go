package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/louisbranch/praxis/internal/assessment/domain"
)

type wireScore struct {
	PointsEarned   int     `json:"points_earned"`
	PointsPossible int     `json:"points_possible"`
	Percentage     float64 `json:"percentage"`
	CorrectCount   int     `json:"correct_count"`
	TotalQuestions int     `json:"total_questions"`
	Passed         bool    `json:"passed"`
}

// EncodeScore wraps a final score in an envelope.
func EncodeScore(s domain.Score) ([]byte, error) {
	return encode(KindScore, wireScore{
		PointsEarned:   s.PointsEarned,
		PointsPossible: s.PointsPossible,
		Percentage:     s.Percentage,
		CorrectCount:   s.CorrectCount,
		TotalQuestions: s.TotalQuestions,
		Passed:         s.Passed,
	})
}

// DecodeScore opens a score envelope.
func DecodeScore(data []byte) (domain.Score, error) {
	payload, err := open(data, KindScore)
	if err != nil {
		return domain.Score{}, err
	}
	var w wireScore
	if err := json.Unmarshal(payload, &w); err != nil {
		return domain.Score{}, fmt.Errorf("unmarshal score payload: %w", err)
	}
	return domain.Score{
		PointsEarned:   w.PointsEarned,
		PointsPossible: w.PointsPossible,
		Percentage:     w.Percentage,
		CorrectCount:   w.CorrectCount,
		TotalQuestions: w.TotalQuestions,
		Passed:         w.Passed,
	}, nil
}

type wireTestResult struct {
	Name       string `json:"name"`
	Passed     bool   `json:"passed"`
	Expected   string `json:"expected,omitempty"`
	Actual     string `json:"actual,omitempty"`
	DurationMs *int64 `json:"duration_ms,omitempty"`
	Error      string `json:"error,omitempty"`
}

type wireSuiteResults struct {
	Results     []wireTestResult `json:"results"`
	AllPassed   bool             `json:"all_passed"`
	PassedCount int              `json:"passed_count"`
	TotalCount  int              `json:"total_count"`
}

// EncodeSuiteResults wraps a suite result in an envelope.
func EncodeSuiteResults(s domain.SuiteResults) ([]byte, error) {
	results := make([]wireTestResult, len(s.Results))
	for i, r := range s.Results {
		w := wireTestResult{
			Name:     r.Name,
			Passed:   r.Passed,
			Expected: r.Expected,
			Actual:   r.Actual,
			Error:    r.Error,
		}
		if r.Duration != nil {
			ms := r.Duration.Milliseconds()
			w.DurationMs = &ms
		}
		results[i] = w
	}
	return encode(KindSuiteResults, wireSuiteResults{
		Results:     results,
		AllPassed:   s.AllPassed,
		PassedCount: s.PassedCount,
		TotalCount:  s.TotalCount,
	})
}

// DecodeSuiteResults opens a suite-results envelope.
func DecodeSuiteResults(data []byte) (domain.SuiteResults, error) {
	payload, err := open(data, KindSuiteResults)
	if err != nil {
		return domain.SuiteResults{}, err
	}
	var w wireSuiteResults
	if err := json.Unmarshal(payload, &w); err != nil {
		return domain.SuiteResults{}, fmt.Errorf("unmarshal suite results payload: %w", err)
	}
	results := make([]domain.TestResult, len(w.Results))
	for i, r := range w.Results {
		result := domain.TestResult{
			Name:     r.Name,
			Passed:   r.Passed,
			Expected: r.Expected,
			Actual:   r.Actual,
			Error:    r.Error,
		}
		if r.DurationMs != nil {
			duration := time.Duration(*r.DurationMs) * time.Millisecond
			result.Duration = &duration
		}
		results[i] = result
	}
	if len(results) == 0 {
		results = nil
	}
	return domain.SuiteResults{
		Results:     results,
		AllPassed:   w.AllPassed,
		PassedCount: w.PassedCount,
		TotalCount:  w.TotalCount,
	}, nil
}
