package codec

import (
	"encoding/json"
	"fmt"

	"github.com/louisbranch/praxis/internal/assessment/domain"
)

type wireLab struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description,omitempty"`
	Language         string         `json:"language"`
	Difficulty       int            `json:"difficulty,omitempty"`
	EstimatedMinutes int            `json:"estimated_minutes,omitempty"`
	Points           int            `json:"points"`
	RequireAllPass   bool           `json:"require_all_pass,omitempty"`
	Tests            []wireTestCase `json:"tests"`
}

// EncodeLab wraps a lab definition in an envelope.
func EncodeLab(l domain.Lab) ([]byte, error) {
	return encode(KindLab, wireLab{
		ID:               string(l.ID),
		Title:            l.Title,
		Description:      l.Description,
		Language:         string(l.Language),
		Difficulty:       int(l.Difficulty),
		EstimatedMinutes: l.EstimatedMinutes,
		Points:           l.Points,
		RequireAllPass:   l.RequireAllPass,
		Tests:            testsToWire(l.Suite.Tests),
	})
}

// DecodeLab opens a lab envelope and validates the decoded definition.
func DecodeLab(data []byte) (domain.Lab, error) {
	payload, err := open(data, KindLab)
	if err != nil {
		return domain.Lab{}, err
	}
	var w wireLab
	if err := json.Unmarshal(payload, &w); err != nil {
		return domain.Lab{}, fmt.Errorf("unmarshal lab payload: %w", err)
	}
	lab := domain.Lab{
		ID:               domain.LabID(w.ID),
		Title:            w.Title,
		Description:      w.Description,
		Language:         domain.Language(w.Language),
		Difficulty:       domain.Difficulty(w.Difficulty),
		EstimatedMinutes: w.EstimatedMinutes,
		Points:           w.Points,
		RequireAllPass:   w.RequireAllPass,
		Suite:            domain.TestSuite{Tests: testsFromWire(w.Tests)},
	}
	if err := lab.Validate(); err != nil {
		return domain.Lab{}, fmt.Errorf("decoded lab: %w", err)
	}
	return lab, nil
}
