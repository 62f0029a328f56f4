// Package quizrun parses quizrun command flags and replays a recorded answer
// set against a quiz definition.
package quizrun

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/louisbranch/praxis/internal/assessment/codec"
	"github.com/louisbranch/praxis/internal/assessment/domain"
	"github.com/louisbranch/praxis/internal/assessment/grader"
	"github.com/louisbranch/praxis/internal/assessment/quiz"
	"github.com/louisbranch/praxis/internal/assessment/runner"
	"github.com/louisbranch/praxis/internal/assessment/sandbox"
	entrypoint "github.com/louisbranch/praxis/internal/platform/cmd"
)

// ErrNotPassed indicates the attempt completed below the passing score.
var ErrNotPassed = errors.New("quiz not passed")

// Config holds quizrun command configuration.
type Config struct {
	QuizPath    string `env:"PRAXIS_QUIZRUN_QUIZ"`
	AnswersPath string `env:"PRAXIS_QUIZRUN_ANSWERS"`
	Sandbox     sandbox.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.QuizPath, "quiz", cfg.QuizPath, "path to quiz definition file")
	fs.StringVar(&cfg.AnswersPath, "answers", cfg.AnswersPath, "path to recorded answers file")
	fs.DurationVar(&cfg.Sandbox.Timeout, "sandbox-timeout", cfg.Sandbox.Timeout, "per-execution wall-clock limit for code questions")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run replays the answers against the quiz and prints per-question feedback
// followed by the attempt score. ErrNotPassed signals a completed attempt
// below the passing score.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if cfg.QuizPath == "" {
		return errors.New("quiz path is required")
	}
	if cfg.AnswersPath == "" {
		return errors.New("answers path is required")
	}

	quizDef, err := loadQuiz(cfg.QuizPath)
	if err != nil {
		return err
	}
	answers, err := loadAnswers(cfg.AnswersPath)
	if err != nil {
		return err
	}
	if len(answers) != len(quizDef.Questions) {
		return fmt.Errorf("answer count %d does not match question count %d", len(answers), len(quizDef.Questions))
	}

	// Recorded answers are positional against the definition order, so the
	// replay never shuffles.
	quizDef.Shuffle = false

	box, err := sandbox.New(cfg.Sandbox)
	if err != nil {
		return err
	}
	g := grader.New(runner.New(box))
	engine, err := quiz.NewEngine(quizDef, g)
	if err != nil {
		return err
	}
	if _, err := engine.Start(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (attempt %s)\n\n", quizDef.Title, engine.AttemptID())

	for i, answer := range answers {
		question, err := engine.CurrentQuestion()
		if err != nil {
			return err
		}
		if answer != nil {
			fb, err := engine.SubmitAnswer(ctx, answer)
			if err != nil {
				return fmt.Errorf("question %d: %w", i, err)
			}
			printFeedback(out, i, question, fb)
		} else {
			fmt.Fprintf(out, "%d. %s\n   (no answer)\n", i+1, domain.PromptOf(question))
		}
		if i < len(answers)-1 {
			if _, err := engine.Next(); err != nil {
				return err
			}
		}
	}

	score, err := engine.Finish(ctx)
	if err != nil {
		return err
	}
	printScore(out, score)
	if !score.Passed {
		return ErrNotPassed
	}
	return nil
}

func loadQuiz(path string) (domain.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("read quiz: %w", err)
	}
	quizDef, err := codec.DecodeQuiz(data)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("decode quiz: %w", err)
	}
	return quizDef, nil
}

func loadAnswers(path string) ([]domain.Answer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	answers, err := codec.DecodeAnswers(data)
	if err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return answers, nil
}

func printFeedback(out io.Writer, index int, question domain.Question, fb domain.Feedback) {
	mark := "✗"
	if fb.Correct {
		mark = "✓"
	}
	fmt.Fprintf(out, "%d. %s\n   %s %s (%d pts)\n", index+1, domain.PromptOf(question), mark, fb.Explanation, fb.PointsEarned)
}

func printScore(out io.Writer, score domain.Score) {
	verdict := "FAILED"
	if score.Passed {
		verdict = "PASSED"
	}
	fmt.Fprintf(out, "\nScore: %d/%d (%d%%), %d/%d correct: %s\n",
		score.PointsEarned, score.PointsPossible, int(score.Percentage*100),
		score.CorrectCount, score.TotalQuestions, verdict)
}
