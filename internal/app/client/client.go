package client

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"quizshare/internal/app/client/config"
	"quizshare/internal/domain/quiz"
	"quizshare/internal/idgen"
)

// App is the client application: a local quiz collection plus a sync path
// to the shared server.
type App struct {
	config      *config.Config
	log         *slog.Logger
	httpClient  *httpClient
	storage     Storage
	ids         idgen.Generator
	syncService *SyncService
	mu          gosync.Mutex
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	httpCl, err := NewHTTPClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize HTTP client: %w", err)
	}

	storage, err := NewSQLiteStorage(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	app := &App{
		config:     cfg,
		log:        log,
		httpClient: httpCl,
		storage:    storage,
		ids:        idgen.UUID{},
	}
	app.syncService = NewSyncService(app)

	return app, nil
}

func (a *App) Close() error {
	return a.storage.Close()
}

// CheckConnection verifies the server is reachable.
func (a *App) CheckConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return a.httpClient.HealthCheck(ctx)
}

// CreateQuiz stores a new local-only quiz and returns it.
func (a *App) CreateQuiz(title, description, category string, timerSeconds int, questions []quiz.Question) (*quiz.Quiz, error) {
	q := &quiz.Quiz{
		LocalID:      a.ids.NewID(),
		Title:        title,
		Description:  description,
		Questions:    questions,
		TimerSeconds: timerSeconds,
		Category:     category,
		CreatedAt:    time.Now().UTC(),
	}

	if err := quiz.Validate(*q); err != nil {
		return nil, err
	}

	if err := a.storage.SaveQuiz(q); err != nil {
		return nil, fmt.Errorf("failed to save quiz: %w", err)
	}

	return q, nil
}

// ListQuizzes returns the whole local collection.
func (a *App) ListQuizzes() ([]quiz.Quiz, error) {
	return a.storage.ListQuizzes()
}

// GetQuiz returns one local quiz.
func (a *App) GetQuiz(localID string) (*quiz.Quiz, error) {
	return a.storage.GetQuiz(localID)
}

// UpdateQuiz replaces an existing quiz's content. Edits to a published quiz
// bump its version so the server accepts the replacement.
func (a *App) UpdateQuiz(q *quiz.Quiz) error {
	if err := quiz.Validate(*q); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	stored, err := a.storage.GetQuiz(q.LocalID)
	if err != nil {
		return err
	}

	if stored.StableID != "" {
		q.StableID = stored.StableID
		q.Version = stored.Version + 1
	}
	q.CreatedAt = stored.CreatedAt
	q.Password = stored.Password
	q.History = stored.History
	q.LastTaken = stored.LastTaken

	return a.storage.SaveQuiz(q)
}

// SetVisibility flips a quiz between public and private. The change takes
// effect on the server at the next sync.
func (a *App) SetVisibility(localID string, public bool) error {
	q, err := a.storage.GetQuiz(localID)
	if err != nil {
		return err
	}
	if q.Public == public {
		return nil
	}

	q.Public = public
	return a.storage.SaveQuiz(q)
}

// DeleteQuiz removes a quiz locally. When the quiz was published and
// alsoShared is set, its shared record is retracted as well.
func (a *App) DeleteQuiz(ctx context.Context, localID string, alsoShared bool) error {
	q, err := a.storage.GetQuiz(localID)
	if err != nil {
		return err
	}

	if err := a.storage.DeleteQuiz(localID); err != nil {
		return err
	}

	if alsoShared && q.StableID != "" {
		found, err := a.httpClient.DeleteShared(ctx, q.StableID)
		if err != nil {
			a.log.Warn("failed to retract shared record", "stable_id", q.StableID, "error", err)
			return nil
		}
		if found {
			a.log.Info("retracted shared record", "stable_id", q.StableID)
		}
	}

	return nil
}

// RecordAttempt appends a run through the quiz to its history.
func (a *App) RecordAttempt(localID string, score, total int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	q, err := a.storage.GetQuiz(localID)
	if err != nil {
		return err
	}

	q.RecordAttempt(quiz.Attempt{
		TakenAt: time.Now().UTC(),
		Score:   score,
		Total:   total,
	})

	return a.storage.SaveQuiz(q)
}

// SetPassword protects a quiz's edits with a password. Only the bcrypt hash
// is stored.
func (a *App) SetPassword(localID, password string) error {
	q, err := a.storage.GetQuiz(localID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	q.Password = string(hash)
	return a.storage.SaveQuiz(q)
}

// CheckPassword verifies the edit password of a protected quiz. Quizzes
// without a password always pass.
func (a *App) CheckPassword(localID, password string) error {
	q, err := a.storage.GetQuiz(localID)
	if err != nil {
		return err
	}
	if q.Password == "" {
		return nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(q.Password), []byte(password)); err != nil {
		return fmt.Errorf("wrong password")
	}
	return nil
}

// Sync runs one sync round against the server.
func (a *App) Sync(ctx context.Context) (*SyncResult, error) {
	return a.syncService.Sync(ctx)
}

// FetchPublic pulls the server's public set without pushing local changes
// and merges it into the local collection.
func (a *App) FetchPublic(ctx context.Context) (*SyncResult, error) {
	local, err := a.storage.ListQuizzes()
	if err != nil {
		return nil, fmt.Errorf("failed to list local quizzes: %w", err)
	}

	resp, err := a.httpClient.FetchPublic(ctx)
	if err != nil {
		return nil, err
	}

	merged, removed := mergeCollections(local, resp.Quizzes, a.ids)
	for _, localID := range removed {
		if err := a.storage.DeleteQuiz(localID); err != nil {
			return nil, fmt.Errorf("failed to remove merged duplicate: %w", err)
		}
	}
	for i := range merged {
		if err := a.storage.SaveQuiz(&merged[i]); err != nil {
			return nil, fmt.Errorf("failed to save quiz %q: %w", merged[i].LocalID, err)
		}
	}

	return &SyncResult{
		Received: len(resp.Quizzes),
		Merged:   len(merged),
		Removed:  len(removed),
	}, nil
}
