package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/exp/slog"

	"quizshare/internal/domain/quiz"
	"quizshare/internal/domain/sync"
)

const uniqueViolation = "23505"

// queryer is the slice of pgxpool.Pool the repository uses. Narrowed to an
// interface so tests can stand in for the pool.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// QuizRepository persists the shared quiz collection, keyed by stable id.
// Updates are version-guarded so concurrent per-key read-modify-writes
// serialize through the reconciler's retry loop.
type QuizRepository struct {
	db  queryer
	log *slog.Logger
}

func NewQuizRepository(storage *Storage, log *slog.Logger) *QuizRepository {
	return &QuizRepository{
		db:  storage.Pool(),
		log: log.With("component", "quiz_repository"),
	}
}

const quizColumns = `
	stable_id, local_id, title, description, questions, timer_seconds,
	category, visibility, version, created_at, last_taken, history`

func (r *QuizRepository) List(ctx context.Context) ([]quiz.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes ORDER BY created_at, stable_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list quizzes", "error", err)
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	return r.scanQuizzes(rows)
}

func (r *QuizRepository) ListPublic(ctx context.Context) ([]quiz.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE visibility ORDER BY created_at, stable_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list public quizzes", "error", err)
		return nil, fmt.Errorf("list public quizzes: %w", err)
	}
	defer rows.Close()

	return r.scanQuizzes(rows)
}

func (r *QuizRepository) GetByStableID(ctx context.Context, stableID string) (*quiz.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE stable_id = $1`

	row := r.db.QueryRow(ctx, query, stableID)
	q, err := r.scanQuiz(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sync.ErrNotFound
		}
		r.log.Error("failed to get quiz", "stable_id", stableID, "error", err)
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	return q, nil
}

func (r *QuizRepository) Insert(ctx context.Context, q *quiz.Quiz) error {
	const query = `
		INSERT INTO quizzes (stable_id, local_id, title, description, questions,
		                     timer_seconds, category, visibility, version,
		                     created_at, last_taken, history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	questions, history, err := marshalPayload(q)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, query,
		q.StableID, q.LocalID, q.Title, q.Description, questions,
		q.TimerSeconds, q.Category, q.Public, q.Version,
		q.CreatedAt, q.LastTaken, history,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			// Lost an insert race on the primary key; the reconciler
			// re-reads and retries.
			return sync.ErrVersionConflict
		}
		r.log.Error("failed to insert quiz", "stable_id", q.StableID, "error", err)
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

func (r *QuizRepository) Update(ctx context.Context, q *quiz.Quiz, expectedVersion int) error {
	const query = `
		UPDATE quizzes
		SET local_id = $1, title = $2, description = $3, questions = $4,
		    timer_seconds = $5, category = $6, visibility = $7, version = $8,
		    created_at = $9, last_taken = $10, history = $11, updated_at = NOW()
		WHERE stable_id = $12 AND version = $13`

	questions, history, err := marshalPayload(q)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, query,
		q.LocalID, q.Title, q.Description, questions,
		q.TimerSeconds, q.Category, q.Public, q.Version,
		q.CreatedAt, q.LastTaken, history,
		q.StableID, expectedVersion,
	)
	if err != nil {
		r.log.Error("failed to update quiz", "stable_id", q.StableID, "error", err)
		return fmt.Errorf("update quiz: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sync.ErrVersionConflict
	}
	return nil
}

func (r *QuizRepository) Delete(ctx context.Context, stableID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM quizzes WHERE stable_id = $1`, stableID)
	if err != nil {
		r.log.Error("failed to delete quiz", "stable_id", stableID, "error", err)
		return false, fmt.Errorf("delete quiz: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func marshalPayload(q *quiz.Quiz) (questions, history []byte, err error) {
	questions, err = json.Marshal(q.Questions)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal questions: %w", err)
	}
	history, err = json.Marshal(q.History)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal history: %w", err)
	}
	return questions, history, nil
}

func (r *QuizRepository) scanQuiz(row pgx.Row) (*quiz.Quiz, error) {
	var q quiz.Quiz
	var questions, history []byte
	var lastTaken *time.Time

	err := row.Scan(
		&q.StableID, &q.LocalID, &q.Title, &q.Description, &questions,
		&q.TimerSeconds, &q.Category, &q.Public, &q.Version,
		&q.CreatedAt, &lastTaken, &history,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(questions, &q.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &q.History); err != nil {
			return nil, fmt.Errorf("unmarshal history: %w", err)
		}
	}
	q.LastTaken = lastTaken
	return &q, nil
}

func (r *QuizRepository) scanQuizzes(rows pgx.Rows) ([]quiz.Quiz, error) {
	var quizzes []quiz.Quiz
	for rows.Next() {
		q, err := r.scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quizzes: %w", err)
	}
	return quizzes, nil
}
