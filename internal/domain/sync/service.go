package sync

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"quizshare/internal/domain/quiz"
	"quizshare/internal/idgen"
)

// Servicer is the reconciliation contract exposed to transports.
type Servicer interface {
	// Sync reconciles a client batch against the shared store and returns
	// the full current public set.
	Sync(ctx context.Context, req SyncRequest) (*SyncResponse, error)

	// ListPublic returns the full current public set.
	ListPublic(ctx context.Context) (*ListResponse, error)

	// Delete removes the shared record under a stable id if present.
	Delete(ctx context.Context, stableID string) (*DeleteResponse, error)

	// Cleanup runs the deduplicator against the whole shared store and
	// reports the count removed.
	Cleanup(ctx context.Context) (*CleanupResponse, error)
}

// ServiceConfig tunes the reconciler.
type ServiceConfig struct {
	// UpsertRetries bounds the per-key retry loop on version conflicts.
	UpsertRetries int
	// DedupThreshold is the similarity threshold for server-side passes.
	DedupThreshold float64
}

// Service reconciles client batches against the shared store. All engine
// work (fingerprints, similarity, precedence) is pure; the repository is the
// only I/O boundary and the only source of reported failures.
type Service struct {
	repo   Repository
	ids    idgen.Generator
	log    *slog.Logger
	config *ServiceConfig
}

func NewService(repo Repository, ids idgen.Generator, log *slog.Logger, config *ServiceConfig) *Service {
	if config == nil {
		config = &ServiceConfig{
			UpsertRetries:  3,
			DedupThreshold: quiz.DefaultThreshold,
		}
	}
	return &Service{
		repo:   repo,
		ids:    ids,
		log:    log.With("component", "sync_service"),
		config: config,
	}
}

// Sync runs one reconciliation call: filter the batch to well-formed public
// members, upsert them by stable id, purge retracted records, and respond
// with the authoritative public set. The steps are strictly sequential; the
// purge depends on the unfiltered input the filter discarded.
func (s *Service) Sync(ctx context.Context, req SyncRequest) (*SyncResponse, error) {
	filtered, dropped, err := s.filter(ctx, req.Quizzes)
	if err != nil {
		return nil, err
	}
	rejected := append(append([]RejectedQuiz(nil), req.Malformed...), dropped...)

	for i := range filtered {
		if err := s.upsert(ctx, &filtered[i]); err != nil {
			return nil, fmt.Errorf("upsert %q: %w", filtered[i].StableID, err)
		}
	}

	if err := s.purge(ctx, req.Quizzes); err != nil {
		return nil, err
	}

	public, err := s.repo.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public: %w", err)
	}

	s.log.Info("sync completed",
		"received", len(req.Quizzes)+len(req.Malformed),
		"upserted", len(filtered),
		"rejected", len(rejected),
		"public", len(public),
	)

	return &SyncResponse{
		Status:   "Ok",
		Quizzes:  public,
		Rejected: rejected,
	}, nil
}

// ListPublic returns the full current public set.
func (s *Service) ListPublic(ctx context.Context) (*ListResponse, error) {
	public, err := s.repo.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public: %w", err)
	}
	return &ListResponse{Status: "Ok", Quizzes: public}, nil
}

// Delete removes the shared record under the stable id if present.
func (s *Service) Delete(ctx context.Context, stableID string) (*DeleteResponse, error) {
	found, err := s.repo.Delete(ctx, stableID)
	if err != nil {
		return nil, fmt.Errorf("delete %q: %w", stableID, err)
	}
	return &DeleteResponse{Status: "Ok", Found: found}, nil
}

// Cleanup runs only the deduplicator over the entire shared store and
// deletes the losers. No filtering or purge step. Idempotent: a second pass
// over the survivors removes nothing.
func (s *Service) Cleanup(ctx context.Context) (*CleanupResponse, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shared store: %w", err)
	}

	res := quiz.Deduplicate(all, s.config.DedupThreshold)

	removed := 0
	for _, loser := range res.Removed {
		if loser.StableID == "" {
			continue
		}
		found, err := s.repo.Delete(ctx, loser.StableID)
		if err != nil {
			return nil, fmt.Errorf("cleanup delete %q: %w", loser.StableID, err)
		}
		if found {
			removed++
		}
	}

	s.log.Info("cleanup completed", "examined", len(all), "removed", removed)
	return &CleanupResponse{Status: "Ok", Removed: removed}, nil
}

// filter validates the batch, keeps public members only and ensures every
// kept member carries a stable id. A member lacking one first tries to adopt
// the id of a content-equivalent shared record (a retried publish must not
// mint a second identity); only unmatched members get a fresh id.
func (s *Service) filter(ctx context.Context, batch []quiz.Quiz) ([]quiz.Quiz, []RejectedQuiz, error) {
	var rejected []RejectedQuiz
	var filtered []quiz.Quiz

	var shared []quiz.Quiz
	byFingerprint := make(map[string]string)
	loadShared := func() error {
		if shared != nil {
			return nil
		}
		var err error
		shared, err = s.repo.List(ctx)
		if err != nil {
			return fmt.Errorf("list shared store: %w", err)
		}
		for _, sq := range shared {
			fp := quiz.Fingerprint(sq)
			if _, ok := byFingerprint[fp]; !ok {
				byFingerprint[fp] = sq.StableID
			}
		}
		return nil
	}

	for _, in := range batch {
		if err := quiz.Validate(in); err != nil {
			var verr *quiz.ValidationError
			if errors.As(err, &verr) {
				rejected = append(rejected, RejectedQuiz{LocalID: verr.LocalID, Fields: verr.Fields})
				s.log.Debug("dropped malformed quiz", "local_id", verr.LocalID, "fields", verr.Fields)
			}
			continue
		}
		if !in.Public {
			continue
		}
		if in.StableID == "" {
			if err := loadShared(); err != nil {
				return nil, nil, err
			}
			in.StableID = s.adoptStableID(in, shared, byFingerprint)
		}
		filtered = append(filtered, in)
	}

	return filtered, rejected, nil
}

func (s *Service) adoptStableID(in quiz.Quiz, shared []quiz.Quiz, byFingerprint map[string]string) string {
	if id, ok := byFingerprint[quiz.Fingerprint(in)]; ok {
		return id
	}
	title := quiz.Normalize(in.Title)
	for _, sq := range shared {
		if quiz.Normalize(sq.Title) != title {
			continue
		}
		if _, dup := quiz.Match(in, sq, s.config.DedupThreshold); dup {
			return sq.StableID
		}
	}
	return s.ids.NewID()
}

// upsert performs the per-key read-modify-write. Version-guarded writes
// serialize concurrent syncs touching the same stable id; a conflicting
// write re-reads and retries up to the configured bound.
func (s *Service) upsert(ctx context.Context, in *quiz.Quiz) error {
	for attempt := 0; attempt < s.config.UpsertRetries; attempt++ {
		stored, err := s.repo.GetByStableID(ctx, in.StableID)
		switch {
		case errors.Is(err, ErrNotFound):
			fresh := in.Clone()
			if fresh.Version <= 0 {
				fresh.Version = 1
			}
			err = s.repo.Insert(ctx, fresh)
			if errors.Is(err, ErrVersionConflict) {
				continue // lost an insert race, re-read
			}
			return err
		case err != nil:
			return err
		}

		if quiz.FirstWins(*stored, *in) {
			// The stored copy stays authoritative.
			return nil
		}

		next := in.Clone()
		// The shared store owns its version counter; the incoming value is
		// ignored on write.
		next.Version = stored.Version + 1
		err = s.repo.Update(ctx, next, stored.Version)
		if errors.Is(err, ErrVersionConflict) {
			continue
		}
		return err
	}
	return fmt.Errorf("retries exhausted: %w", ErrVersionConflict)
}

// purge retracts previously published content. Every private member of the
// original, unfiltered batch has its shared record deleted, then a defensive
// sweep removes any shared record left with private visibility.
func (s *Service) purge(ctx context.Context, batch []quiz.Quiz) error {
	for _, in := range batch {
		if in.Public || in.StableID == "" {
			continue
		}
		found, err := s.repo.Delete(ctx, in.StableID)
		if err != nil {
			return fmt.Errorf("purge %q: %w", in.StableID, err)
		}
		if found {
			s.log.Info("retracted private quiz", "stable_id", in.StableID)
		}
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list shared store: %w", err)
	}
	for _, sq := range all {
		if sq.Public {
			continue
		}
		if _, err := s.repo.Delete(ctx, sq.StableID); err != nil {
			return fmt.Errorf("sweep %q: %w", sq.StableID, err)
		}
		s.log.Warn("swept private quiz out of shared store", "stable_id", sq.StableID)
	}
	return nil
}
