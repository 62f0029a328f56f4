// Package sqlite provides the SQLite-backed content catalog. Definitions
// are stored as versioned codec envelopes keyed by id, with summary columns
// for listing without decoding.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/praxis/internal/assessment/codec"
	"github.com/louisbranch/praxis/internal/assessment/domain"
	"github.com/louisbranch/praxis/internal/assessment/storage"
	"github.com/louisbranch/praxis/internal/assessment/storage/sqlite/migrations"
	sqlitemigrate "github.com/louisbranch/praxis/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed catalog persistence.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock injects the time source used for updated_at stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens a catalog SQLite store and applies migrations.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	for _, opt := range opts {
		opt(store)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutQuiz validates and upserts one quiz definition.
func (s *Store) PutQuiz(ctx context.Context, quiz domain.Quiz) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := quiz.Validate(); err != nil {
		return fmt.Errorf("validate quiz: %w", err)
	}
	payload, err := codec.EncodeQuiz(quiz)
	if err != nil {
		return fmt.Errorf("encode quiz: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO quizzes (id, title, question_count, payload, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	title = excluded.title,
	question_count = excluded.question_count,
	payload = excluded.payload,
	updated_at = excluded.updated_at
`,
		string(quiz.ID),
		quiz.Title,
		quiz.QuestionCount(),
		string(payload),
		s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put quiz: %w", err)
	}
	return nil
}

// GetQuiz loads one quiz definition.
func (s *Store) GetQuiz(ctx context.Context, id domain.QuizID) (domain.Quiz, error) {
	if err := ctx.Err(); err != nil {
		return domain.Quiz{}, err
	}
	var payload string
	row := s.sqlDB.QueryRowContext(ctx, `SELECT payload FROM quizzes WHERE id = ?`, string(id))
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return domain.Quiz{}, fmt.Errorf("quiz %s: %w", id, storage.ErrNotFound)
		}
		return domain.Quiz{}, fmt.Errorf("get quiz: %w", err)
	}
	quiz, err := codec.DecodeQuiz([]byte(payload))
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("decode quiz %s: %w", id, err)
	}
	return quiz, nil
}

// ListQuizzes lists quiz summaries, most recently updated first.
func (s *Store) ListQuizzes(ctx context.Context) ([]storage.QuizSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, title, question_count, updated_at
FROM quizzes
ORDER BY updated_at DESC, id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var summaries []storage.QuizSummary
	for rows.Next() {
		var summary storage.QuizSummary
		var id string
		var updatedAt int64
		if err := rows.Scan(&id, &summary.Title, &summary.QuestionCount, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz summary: %w", err)
		}
		summary.ID = domain.QuizID(id)
		summary.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quizzes: %w", err)
	}
	return summaries, nil
}

// DeleteQuiz removes one quiz definition.
func (s *Store) DeleteQuiz(ctx context.Context, id domain.QuizID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("quiz %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// PutLab validates and upserts one lab definition.
func (s *Store) PutLab(ctx context.Context, lab domain.Lab) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := lab.Validate(); err != nil {
		return fmt.Errorf("validate lab: %w", err)
	}
	payload, err := codec.EncodeLab(lab)
	if err != nil {
		return fmt.Errorf("encode lab: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO labs (id, title, language, test_count, payload, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	title = excluded.title,
	language = excluded.language,
	test_count = excluded.test_count,
	payload = excluded.payload,
	updated_at = excluded.updated_at
`,
		string(lab.ID),
		lab.Title,
		string(lab.Language),
		lab.Suite.TestCount(),
		string(payload),
		s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put lab: %w", err)
	}
	return nil
}

// GetLab loads one lab definition.
func (s *Store) GetLab(ctx context.Context, id domain.LabID) (domain.Lab, error) {
	if err := ctx.Err(); err != nil {
		return domain.Lab{}, err
	}
	var payload string
	row := s.sqlDB.QueryRowContext(ctx, `SELECT payload FROM labs WHERE id = ?`, string(id))
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return domain.Lab{}, fmt.Errorf("lab %s: %w", id, storage.ErrNotFound)
		}
		return domain.Lab{}, fmt.Errorf("get lab: %w", err)
	}
	lab, err := codec.DecodeLab([]byte(payload))
	if err != nil {
		return domain.Lab{}, fmt.Errorf("decode lab %s: %w", id, err)
	}
	return lab, nil
}

// ListLabs lists lab summaries, most recently updated first.
func (s *Store) ListLabs(ctx context.Context) ([]storage.LabSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, title, language, test_count, updated_at
FROM labs
ORDER BY updated_at DESC, id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list labs: %w", err)
	}
	defer rows.Close()

	var summaries []storage.LabSummary
	for rows.Next() {
		var summary storage.LabSummary
		var id, language string
		var updatedAt int64
		if err := rows.Scan(&id, &summary.Title, &language, &summary.TestCount, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan lab summary: %w", err)
		}
		summary.ID = domain.LabID(id)
		summary.Language = domain.Language(language)
		summary.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate labs: %w", err)
	}
	return summaries, nil
}

// DeleteLab removes one lab definition.
func (s *Store) DeleteLab(ctx context.Context, id domain.LabID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM labs WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete lab: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete lab: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lab %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

var _ storage.CatalogStore = (*Store)(nil)
