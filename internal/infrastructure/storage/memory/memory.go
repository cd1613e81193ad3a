// Package memory provides an in-memory shared store. It backs tests and the
// server's storeless mode; the reconciler sees the same capability contract
// as the relational backend, version guard included.
package memory

import (
	"context"
	gosync "sync"

	"quizshare/internal/domain/quiz"
	"quizshare/internal/domain/sync"
)

type Storage struct {
	mu      gosync.RWMutex
	quizzes map[string]*quiz.Quiz
	order   []string
}

func New() *Storage {
	return &Storage{
		quizzes: make(map[string]*quiz.Quiz),
	}
}

func (s *Storage) List(_ context.Context) ([]quiz.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]quiz.Quiz, 0, len(s.quizzes))
	for _, id := range s.order {
		if q, ok := s.quizzes[id]; ok {
			out = append(out, *q.Clone())
		}
	}
	return out, nil
}

func (s *Storage) ListPublic(_ context.Context) ([]quiz.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]quiz.Quiz, 0, len(s.quizzes))
	for _, id := range s.order {
		if q, ok := s.quizzes[id]; ok && q.Public {
			out = append(out, *q.Clone())
		}
	}
	return out, nil
}

func (s *Storage) GetByStableID(_ context.Context, stableID string) (*quiz.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quizzes[stableID]
	if !ok {
		return nil, sync.ErrNotFound
	}
	return q.Clone(), nil
}

func (s *Storage) Insert(_ context.Context, q *quiz.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quizzes[q.StableID]; ok {
		return sync.ErrVersionConflict
	}
	s.quizzes[q.StableID] = q.Clone()
	s.order = append(s.order, q.StableID)
	return nil
}

func (s *Storage) Update(_ context.Context, q *quiz.Quiz, expectedVersion int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.quizzes[q.StableID]
	if !ok || stored.Version != expectedVersion {
		return sync.ErrVersionConflict
	}
	s.quizzes[q.StableID] = q.Clone()
	return nil
}

func (s *Storage) Delete(_ context.Context, stableID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quizzes[stableID]; !ok {
		return false, nil
	}
	delete(s.quizzes, stableID)
	for i, id := range s.order {
		if id == stableID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}
