package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"quizshare/internal/app/server/api"
	"quizshare/internal/config"
	"quizshare/internal/domain/sync"
	"quizshare/internal/idgen"
	"quizshare/internal/infrastructure/storage/memory"
	"quizshare/internal/infrastructure/storage/postgres"
	"quizshare/internal/utils/logger"
)

func main() {
	conf := config.MustLoad()
	log := logger.New(conf.Env)

	repo, cleanup, err := buildRepository(conf, log)
	if err != nil {
		log.Error("storage init failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	mux := api.New(repo, idgen.UUID{}, log)

	server := &http.Server{
		Addr:    conf.Server.RunAddress,
		Handler: mux,
	}

	go func() {
		log.Info("server started", "address", conf.Server.RunAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}

// buildRepository picks the shared store backend. An empty DATABASE_URI runs
// the server on the in-memory store, which is enough for local development.
func buildRepository(conf *config.Config, log *slog.Logger) (sync.Repository, func(), error) {
	if conf.DB.DatabaseURI == "" {
		log.Warn("DATABASE_URI is empty, using in-memory shared store")
		return memory.New(), func() {}, nil
	}

	storage, err := postgres.New(conf)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := storage.Close(); err != nil {
			log.Error("closing storage", "error", err)
		}
	}
	return postgres.NewQuizRepository(storage, log), cleanup, nil
}
