// Package labrun parses labrun command flags and runs a code submission
// against a lab's test suite.
package labrun

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/louisbranch/praxis/internal/assessment/codec"
	"github.com/louisbranch/praxis/internal/assessment/domain"
	"github.com/louisbranch/praxis/internal/assessment/feedback"
	"github.com/louisbranch/praxis/internal/assessment/feedback/i18n"
	"github.com/louisbranch/praxis/internal/assessment/runner"
	"github.com/louisbranch/praxis/internal/assessment/sandbox"
	entrypoint "github.com/louisbranch/praxis/internal/platform/cmd"
)

// ErrTestsFailed indicates the suite ran but at least one test failed.
var ErrTestsFailed = errors.New("tests failed")

// Config holds labrun command configuration.
type Config struct {
	LabPath    string `env:"PRAXIS_LABRUN_LAB"`
	SourcePath string `env:"PRAXIS_LABRUN_SUBMISSION"`
	Locale     string `env:"PRAXIS_LABRUN_LOCALE" envDefault:"en-US"`
	Sandbox    sandbox.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.LabPath, "lab", cfg.LabPath, "path to lab definition file")
	fs.StringVar(&cfg.SourcePath, "submission", cfg.SourcePath, "path to submission source file")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for failure explanations")
	fs.DurationVar(&cfg.Sandbox.Timeout, "sandbox-timeout", cfg.Sandbox.Timeout, "per-test wall-clock limit")
	fs.Int64Var(&cfg.Sandbox.MemoryLimitBytes, "sandbox-memory", cfg.Sandbox.MemoryLimitBytes, "per-test memory limit in bytes")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the submission against the lab suite and prints per-test
// results, an explanation for the first failure, and the earned points.
// ErrTestsFailed signals a completed run with at least one failing test.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if cfg.LabPath == "" {
		return errors.New("lab path is required")
	}
	if cfg.SourcePath == "" {
		return errors.New("source path is required")
	}

	labData, err := os.ReadFile(cfg.LabPath)
	if err != nil {
		return fmt.Errorf("read lab: %w", err)
	}
	lab, err := codec.DecodeLab(labData)
	if err != nil {
		return fmt.Errorf("decode lab: %w", err)
	}
	source, err := os.ReadFile(cfg.SourcePath)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	box, err := sandbox.New(cfg.Sandbox)
	if err != nil {
		return err
	}
	localizer, err := i18n.New()
	if err != nil {
		return err
	}

	submission := domain.Submission{Source: string(source), Language: lab.Language}
	results, err := runner.New(box).RunSuite(ctx, submission, lab.Suite)
	if err != nil {
		return err
	}

	for _, result := range results.Results {
		fmt.Fprintln(out, result.Summary())
	}
	fmt.Fprintf(out, "\n%s, %d/%d points\n", results.Summary(), runner.Score(lab, results), lab.Points)

	if results.AllPassed {
		return nil
	}
	if failed := results.FailedTests(); len(failed) > 0 {
		printExplanation(out, explainFailure(failed[0], lab.Language, localizer, cfg.Locale))
	}
	return ErrTestsFailed
}

// explainFailure explains the first failing test. Error text is classified
// and localized; a clean output mismatch gets a diff hint instead.
func explainFailure(result domain.TestResult, language domain.Language, localizer *i18n.Localizer, locale string) feedback.Explanation {
	if result.Error != "" && result.Error != "Output mismatch" {
		return localizer.Localize(feedback.Explain(result.Error, language), locale)
	}
	comparison := feedback.CompareOutputs(result.Expected, result.Actual)
	return feedback.Explanation{
		Category:   feedback.CategoryUnknown,
		Summary:    "Output does not match the expected result",
		Detail:     comparison.Hint,
		Suggestion: "Compare your program's output against the expected output character by character",
	}
}

func printExplanation(out io.Writer, explanation feedback.Explanation) {
	fmt.Fprintf(out, "\n%s\n", explanation.Summary)
	if explanation.Detail != "" {
		fmt.Fprintf(out, "  %s\n", explanation.Detail)
	}
	if explanation.Suggestion != "" {
		fmt.Fprintf(out, "  Suggestion: %s\n", explanation.Suggestion)
	}
}
