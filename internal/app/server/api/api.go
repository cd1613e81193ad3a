package api

import (
	healthAPI "quizshare/internal/app/server/api/http/health"
	"quizshare/internal/app/server/api/http/middleware"
	"quizshare/internal/app/server/api/http/middleware/logger"
	quizAPI "quizshare/internal/app/server/api/http/quiz"
	syncAPI "quizshare/internal/app/server/api/http/sync"
	"quizshare/internal/domain/sync"
	"quizshare/internal/idgen"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health *healthAPI.Handler
	Quiz   *quizAPI.Handler
	Sync   *syncAPI.Handler
}

// New builds a *chi.Mux with all operations registered through huma.
func New(repo sync.Repository, ids idgen.Generator, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Quizshare API", "1.0.0")

	API := humachi.New(mux, config)

	h := handlers(repo, ids, log)
	h.Health.SetupRoutes(API)
	h.Quiz.SetupRoutes(API)
	h.Sync.SetupRoutes(API)

	return mux
}

func handlers(repo sync.Repository, ids idgen.Generator, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	syncService := sync.NewService(repo, ids, log, nil)

	middlewares.Add(loggerMW.Middleware())
	quizHandler := quizAPI.NewHandler(syncService, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	syncHandler := syncAPI.NewHandler(syncService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Quiz:   quizHandler,
		Sync:   syncHandler,
	}
}
