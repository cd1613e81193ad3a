package client

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"quizshare/internal/domain/quiz"
)

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	storage := &SQLiteStorage{db: db}

	if err := storage.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS quizzes (
			local_id TEXT PRIMARY KEY,
			stable_id TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			questions TEXT NOT NULL,
			timer_seconds INTEGER NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT '',
			visibility BOOLEAN NOT NULL DEFAULT 0,
			version INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			last_taken DATETIME,
			password_hash TEXT NOT NULL DEFAULT '',
			history TEXT NOT NULL DEFAULT '[]'
		);

		CREATE INDEX IF NOT EXISTS idx_quizzes_stable ON quizzes(stable_id);
		CREATE INDEX IF NOT EXISTS idx_quizzes_visibility ON quizzes(visibility);
	`)

	return err
}

func (s *SQLiteStorage) SaveQuiz(q *quiz.Quiz) error {
	questionsJSON, err := json.Marshal(q.Questions)
	if err != nil {
		return fmt.Errorf("failed to serialize questions: %w", err)
	}
	historyJSON, err := json.Marshal(q.History)
	if err != nil {
		return fmt.Errorf("failed to serialize history: %w", err)
	}

	var lastTaken any
	if q.LastTaken != nil {
		lastTaken = q.LastTaken.Format(time.RFC3339)
	}

	var exists bool
	err = s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM quizzes WHERE local_id = ?)", q.LocalID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check quiz existence: %w", err)
	}

	if exists {
		_, err = s.db.Exec(`
			UPDATE quizzes
			SET stable_id = ?, title = ?, description = ?, questions = ?,
			    timer_seconds = ?, category = ?, visibility = ?, version = ?,
			    last_taken = ?, password_hash = ?, history = ?
			WHERE local_id = ?
		`, q.StableID, q.Title, q.Description, questionsJSON,
			q.TimerSeconds, q.Category, q.Public, q.Version,
			lastTaken, q.Password, historyJSON, q.LocalID)
	} else {
		_, err = s.db.Exec(`
			INSERT INTO quizzes (local_id, stable_id, title, description, questions,
			                     timer_seconds, category, visibility, version,
			                     created_at, last_taken, password_hash, history)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, q.LocalID, q.StableID, q.Title, q.Description, questionsJSON,
			q.TimerSeconds, q.Category, q.Public, q.Version,
			q.CreatedAt.Format(time.RFC3339), lastTaken, q.Password, historyJSON)
	}

	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	return nil
}

const quizColumns = `local_id, stable_id, title, description, questions,
	timer_seconds, category, visibility, version, created_at, last_taken,
	password_hash, history`

func (s *SQLiteStorage) GetQuiz(localID string) (*quiz.Quiz, error) {
	row := s.db.QueryRow(
		"SELECT "+quizColumns+" FROM quizzes WHERE local_id = ?", localID)

	q, err := scanQuiz(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("quiz not found: %s", localID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return q, nil
}

func (s *SQLiteStorage) ListQuizzes() ([]quiz.Quiz, error) {
	rows, err := s.db.Query(
		"SELECT " + quizColumns + " FROM quizzes ORDER BY created_at, local_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []quiz.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		quizzes = append(quizzes, *q)
	}

	return quizzes, rows.Err()
}

func (s *SQLiteStorage) DeleteQuiz(localID string) error {
	_, err := s.db.Exec("DELETE FROM quizzes WHERE local_id = ?", localID)
	if err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) CountQuizzes() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM quizzes").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count quizzes: %w", err)
	}
	return count, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row rowScanner) (*quiz.Quiz, error) {
	var q quiz.Quiz
	var questionsJSON, historyJSON, createdAt string
	var lastTaken sql.NullString

	err := row.Scan(&q.LocalID, &q.StableID, &q.Title, &q.Description,
		&questionsJSON, &q.TimerSeconds, &q.Category, &q.Public, &q.Version,
		&createdAt, &lastTaken, &q.Password, &historyJSON)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(questionsJSON), &q.Questions); err != nil {
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}
	if err := json.Unmarshal([]byte(historyJSON), &q.History); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}

	// A corrupt timestamp must not come back as a zero value: createdAt
	// drives merge precedence when versions tie.
	q.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if lastTaken.Valid {
		t, err := time.Parse(time.RFC3339, lastTaken.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last_taken: %w", err)
		}
		q.LastTaken = &t
	}

	return &q, nil
}
