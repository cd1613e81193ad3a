package client

import (
	"context"
	"fmt"

	"quizshare/internal/domain/quiz"
	"quizshare/internal/domain/sync"
	"quizshare/internal/idgen"
)

// SyncService pushes the local collection to the server and merges the
// returned public set back in.
type SyncService struct {
	app *App
}

// SyncResult summarizes one sync round.
type SyncResult struct {
	Sent     int
	Received int
	Rejected int
	Merged   int
	Removed  int
}

func NewSyncService(app *App) *SyncService {
	return &SyncService{app: app}
}

// Sync sends every local quiz to the server, merges the response into the
// local collection and persists the result. Local duplicates that lose the
// merge are removed.
func (s *SyncService) Sync(ctx context.Context) (*SyncResult, error) {
	local, err := s.app.storage.ListQuizzes()
	if err != nil {
		return nil, fmt.Errorf("failed to list local quizzes: %w", err)
	}

	resp, err := s.app.httpClient.Sync(ctx, sync.SyncRequest{Quizzes: local})
	if err != nil {
		return nil, fmt.Errorf("sync request failed: %w", err)
	}

	merged, removed := mergeCollections(local, resp.Quizzes, s.app.ids)

	for _, localID := range removed {
		if err := s.app.storage.DeleteQuiz(localID); err != nil {
			return nil, fmt.Errorf("failed to remove merged duplicate: %w", err)
		}
	}
	for i := range merged {
		if err := s.app.storage.SaveQuiz(&merged[i]); err != nil {
			return nil, fmt.Errorf("failed to save quiz %q: %w", merged[i].LocalID, err)
		}
	}

	s.app.log.Info("sync completed",
		"sent", len(local),
		"received", len(resp.Quizzes),
		"rejected", len(resp.Rejected),
		"merged", len(merged),
		"removed", len(removed),
	)

	return &SyncResult{
		Sent:     len(local),
		Received: len(resp.Quizzes),
		Rejected: len(resp.Rejected),
		Merged:   len(merged),
		Removed:  len(removed),
	}, nil
}

// mergeCollections folds the server's public set into the local collection.
// Local and remote copies of the same logical quiz collapse to the
// precedence winner; device-only state (attempt history, last-taken stamp,
// edit password) survives on the winner. A remote copy carries its creator's
// localId, which never displaces this device's: the merged record keeps the
// id of a local class member, and only quizzes with no local counterpart get
// a fresh one. The second return value lists local ids whose records were
// absorbed into a winner stored under a different id.
func mergeCollections(local, remote []quiz.Quiz, ids idgen.Generator) ([]quiz.Quiz, []string) {
	localIDs := make(map[string]bool, len(local))
	for _, l := range local {
		if l.LocalID != "" {
			localIDs[l.LocalID] = true
		}
	}

	combined := make([]quiz.Quiz, 0, len(local)+len(remote))
	combined = append(combined, local...)
	combined = append(combined, remote...)

	classes := quiz.Classes(combined, quiz.MergeThreshold)

	var merged []quiz.Quiz
	var removed []string

	for _, class := range classes {
		winner := class[0]
		for _, member := range class[1:] {
			winner, _ = quiz.Prefer(winner, member)
		}
		out := winner.Clone()

		// The winner settles under this device's identity; remaining local
		// members of the class are duplicates to drop. Foreign ids on remote
		// members are ignored.
		out.LocalID = ""
		for _, member := range class {
			if !localIDs[member.LocalID] {
				continue
			}
			if out.LocalID == "" {
				out.LocalID = member.LocalID
			} else if member.LocalID != out.LocalID {
				removed = append(removed, member.LocalID)
			}
		}
		if out.LocalID == "" {
			out.LocalID = ids.NewID()
		}

		for _, member := range class {
			if out.StableID == "" && member.StableID != "" {
				out.StableID = member.StableID
			}
			if len(member.History) > len(out.History) {
				out.History = append([]quiz.Attempt(nil), member.History...)
			}
			if member.LastTaken != nil && (out.LastTaken == nil || member.LastTaken.After(*out.LastTaken)) {
				t := *member.LastTaken
				out.LastTaken = &t
			}
			if out.Password == "" && member.Password != "" {
				out.Password = member.Password
			}
			if out.CreatedAt.IsZero() && !member.CreatedAt.IsZero() {
				out.CreatedAt = member.CreatedAt
			}
		}

		merged = append(merged, *out)
	}

	return merged, removed
}
