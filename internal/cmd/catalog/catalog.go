// Package catalog parses catalog command flags and manages the SQLite
// content catalog: importing definition files, exporting stored definitions,
// listing, and deleting.
package catalog

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/louisbranch/praxis/internal/assessment/codec"
	"github.com/louisbranch/praxis/internal/assessment/domain"
	"github.com/louisbranch/praxis/internal/assessment/storage/sqlite"
	entrypoint "github.com/louisbranch/praxis/internal/platform/cmd"
)

// Config holds catalog command configuration.
type Config struct {
	DBPath string `env:"PRAXIS_CATALOG_DB_PATH" envDefault:"data/catalog.db"`

	Import     string
	ExportQuiz string
	ExportLab  string
	DeleteQuiz string
	DeleteLab  string
	List       bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The catalog SQLite database path")
	fs.StringVar(&cfg.Import, "import", "", "import a quiz or lab definition file")
	fs.StringVar(&cfg.ExportQuiz, "export-quiz", "", "print the stored quiz with the given id")
	fs.StringVar(&cfg.ExportLab, "export-lab", "", "print the stored lab with the given id")
	fs.StringVar(&cfg.DeleteQuiz, "delete-quiz", "", "delete the stored quiz with the given id")
	fs.StringVar(&cfg.DeleteLab, "delete-lab", "", "delete the stored lab with the given id")
	fs.BoolVar(&cfg.List, "list", false, "list stored quizzes and labs")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes exactly one catalog operation against the store.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case cfg.Import != "":
		return importFile(ctx, store, cfg.Import, out)
	case cfg.ExportQuiz != "":
		return exportQuiz(ctx, store, domain.QuizID(cfg.ExportQuiz), out)
	case cfg.ExportLab != "":
		return exportLab(ctx, store, domain.LabID(cfg.ExportLab), out)
	case cfg.DeleteQuiz != "":
		return store.DeleteQuiz(ctx, domain.QuizID(cfg.DeleteQuiz))
	case cfg.DeleteLab != "":
		return store.DeleteLab(ctx, domain.LabID(cfg.DeleteLab))
	case cfg.List:
		return list(ctx, store, out)
	default:
		return errors.New("one of -import, -export-quiz, -export-lab, -delete-quiz, -delete-lab, or -list is required")
	}
}

// importFile stores one definition file, dispatching on its envelope kind.
func importFile(ctx context.Context, store *sqlite.Store, path string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read definition: %w", err)
	}
	kind, err := codec.Kind(data)
	if err != nil {
		return fmt.Errorf("inspect definition: %w", err)
	}
	switch kind {
	case codec.KindQuiz:
		quiz, err := codec.DecodeQuiz(data)
		if err != nil {
			return fmt.Errorf("decode quiz: %w", err)
		}
		if err := store.PutQuiz(ctx, quiz); err != nil {
			return err
		}
		fmt.Fprintf(out, "imported quiz %s (%d questions)\n", quiz.ID, quiz.QuestionCount())
		return nil
	case codec.KindLab:
		lab, err := codec.DecodeLab(data)
		if err != nil {
			return fmt.Errorf("decode lab: %w", err)
		}
		if err := store.PutLab(ctx, lab); err != nil {
			return err
		}
		fmt.Fprintf(out, "imported lab %s (%d tests)\n", lab.ID, lab.Suite.TestCount())
		return nil
	default:
		return fmt.Errorf("definition kind %q is not importable", kind)
	}
}

func exportQuiz(ctx context.Context, store *sqlite.Store, id domain.QuizID, out io.Writer) error {
	quiz, err := store.GetQuiz(ctx, id)
	if err != nil {
		return err
	}
	payload, err := codec.EncodeQuiz(quiz)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(payload))
	return err
}

func exportLab(ctx context.Context, store *sqlite.Store, id domain.LabID, out io.Writer) error {
	lab, err := store.GetLab(ctx, id)
	if err != nil {
		return err
	}
	payload, err := codec.EncodeLab(lab)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(payload))
	return err
}

func list(ctx context.Context, store *sqlite.Store, out io.Writer) error {
	quizzes, err := store.ListQuizzes(ctx)
	if err != nil {
		return err
	}
	labs, err := store.ListLabs(ctx)
	if err != nil {
		return err
	}
	for _, summary := range quizzes {
		fmt.Fprintf(out, "quiz\t%s\t%s\t%d questions\t%s\n",
			summary.ID, summary.Title, summary.QuestionCount, summary.UpdatedAt.Format("2006-01-02 15:04"))
	}
	for _, summary := range labs {
		fmt.Fprintf(out, "lab\t%s\t%s\t%s\t%d tests\t%s\n",
			summary.ID, summary.Title, summary.Language, summary.TestCount, summary.UpdatedAt.Format("2006-01-02 15:04"))
	}
	if len(quizzes) == 0 && len(labs) == 0 {
		fmt.Fprintln(out, "catalog is empty")
	}
	return nil
}
